package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/category-admin/internal/application/dto"
	"github.com/jhoicas/category-admin/internal/application/ports"
	"github.com/jhoicas/category-admin/pkg/imageurl"
	"github.com/jhoicas/category-admin/pkg/jwt"
)

// Locals keys del operador autenticado en Fiber.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalRole     = "role"
	LocalToken    = "auth_token"
)

// AuthCookie cookie con el token del operador (mismo nombre que el parámetro de las imágenes).
const AuthCookie = imageurl.TokenParam

// DeniedHandler responde a una petición rechazada por autenticación, rol o CSRF.
type DeniedHandler func(c *fiber.Ctx, status int, body dto.ErrorResponse) error

// DenyJSON respuesta por defecto: dto.ErrorResponse en JSON.
func DenyJSON(c *fiber.Ctx, status int, body dto.ErrorResponse) error {
	return c.Status(status).JSON(body)
}

// AuthMiddleware valida el JWT del operador (Bearer o cookie auth_token), carga los claims en Locals
// y deja el token en el contexto de usuario para reenviarlo al API de categorías.
// Con deny nil los rechazos se responden con DenyJSON.
func AuthMiddleware(jwtSecret, issuer string, deny DeniedHandler) fiber.Handler {
	if deny == nil {
		deny = DenyJSON
	}
	return func(c *fiber.Ctx) error {
		tokenString, ok := extractToken(c)
		if !ok {
			return deny(c, fiber.StatusUnauthorized, dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header o cookie auth_token requerido"})
		}
		if tokenString == "" {
			return deny(c, fiber.StatusUnauthorized, dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		claims, err := jwt.Parse(jwtSecret, issuer, tokenString)
		if err != nil {
			return deny(c, fiber.StatusUnauthorized, dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUsername, claims.Username)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalToken, tokenString)
		c.SetUserContext(ports.ContextWithToken(c.UserContext(), tokenString))
		return c.Next()
	}
}

// extractToken ok=false si no llegó ninguna credencial; token "" si el header está mal formado.
func extractToken(c *fiber.Ctx) (string, bool) {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", true
		}
		return strings.TrimSpace(parts[1]), true
	}
	if cookie := strings.TrimSpace(c.Cookies(AuthCookie)); cookie != "" {
		return cookie, true
	}
	return "", false
}

// RequireRole autoriza solo a los roles indicados. Debe ir después de AuthMiddleware.
func RequireRole(deny DeniedHandler, roles ...string) fiber.Handler {
	if deny == nil {
		deny = DenyJSON
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return deny(c, fiber.StatusUnauthorized, dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return deny(c, fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetUsername nombre visible del operador.
func GetUsername(c *fiber.Ctx) string { return localString(c, LocalUsername) }

// GetRole rol del operador.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetToken token crudo del operador; lo necesita la preparación de URLs de imágenes.
func GetToken(c *fiber.Ctx) string { return localString(c, LocalToken) }
