package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App         AppConfig
	HTTP        HTTPConfig
	CategoryAPI CategoryAPIConfig
	Images      ImageConfig
	JWT         JWTConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP del panel.
type HTTPConfig struct {
	Host                  string
	Port                  int
	RequestTimeoutSeconds int // tiempo máximo de las llamadas al API por petición
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RequestTimeout duración máxima de una petición del panel contra el API.
func (c HTTPConfig) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// CategoryAPIConfig configuración del servicio remoto de categorías.
type CategoryAPIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// Timeout timeout de red del cliente HTTP.
func (c CategoryAPIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ImageConfig base contra la que se resuelven las rutas relativas de imágenes.
type ImageConfig struct {
	BaseURL string
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret string
	Issuer string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, CATEGORY_API_BASE_URL, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	apiBase := strings.TrimRight(getString(v, "CATEGORY_API_BASE_URL", "http://localhost:8081/api"), "/")

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "category-admin"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:                  getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:                  getInt(v, "HTTP_PORT", 8080),
			RequestTimeoutSeconds: getInt(v, "HTTP_REQUEST_TIMEOUT_SECONDS", 15),
		},
		CategoryAPI: CategoryAPIConfig{
			BaseURL:        apiBase,
			TimeoutSeconds: getInt(v, "CATEGORY_API_TIMEOUT_SECONDS", 10),
		},
		Images: ImageConfig{
			BaseURL: strings.TrimRight(getString(v, "IMAGE_BASE_URL", apiBase), "/"),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", "category-admin"),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
