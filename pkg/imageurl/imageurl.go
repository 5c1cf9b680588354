// Package imageurl convierte referencias de imagen en URLs absolutas y autenticadas.
package imageurl

import (
	"net/url"
	"strings"
)

// TokenParam nombre del parámetro de query con el que el API acepta el token en recursos estáticos.
const TokenParam = "auth_token"

// Preparer prepara URLs contra una base fija y el token del operador actual.
type Preparer struct {
	BaseURL string
	Token   string
}

// Prepare atajo de Prepare(raw, p.BaseURL, p.Token).
func (p Preparer) Prepare(raw string) string {
	return Prepare(raw, p.BaseURL, p.Token)
}

// Prepare devuelve la URL completa de una imagen.
//   - Rutas relativas se concatenan a baseURL ("/img/a.png" -> "https://api.x/img/a.png").
//   - Si la URL resultante apunta al mismo origen que baseURL se añade auth_token=<token>.
//   - URLs absolutas de otro origen, data: y blob: se devuelven sin cambios.
func Prepare(raw, baseURL, token string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "data:") || strings.HasPrefix(lower, "blob:") {
		return raw
	}

	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || base.Host == "" {
		return raw
	}

	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	var target *url.URL
	switch {
	case ref.IsAbs():
		target = ref
	case ref.Host != "": // "//cdn.y/a.png"
		target = ref
		target.Scheme = base.Scheme
	default:
		joined := strings.TrimRight(base.String(), "/") + "/" + strings.TrimLeft(raw, "/")
		target, err = url.Parse(joined)
		if err != nil {
			return raw
		}
	}

	if !sameOrigin(base, target) {
		return raw
	}
	if token == "" {
		return target.String()
	}
	target.RawQuery = withToken(target.RawQuery, token)
	return target.String()
}

// withToken agrega auth_token al final de la query sin reordenar ni reescapar el resto
// (las URLs firmadas dependen del orden). Un auth_token previo se descarta.
func withToken(rawQuery, token string) string {
	kept := make([]string, 0, strings.Count(rawQuery, "&")+2)
	if rawQuery != "" {
		for _, part := range strings.Split(rawQuery, "&") {
			key, _, _ := strings.Cut(part, "=")
			if k, err := url.QueryUnescape(key); err == nil && k == TokenParam {
				continue
			}
			kept = append(kept, part)
		}
	}
	kept = append(kept, TokenParam+"="+url.QueryEscape(token))
	return strings.Join(kept, "&")
}

func sameOrigin(a, b *url.URL) bool {
	return strings.EqualFold(a.Scheme, b.Scheme) && strings.EqualFold(a.Host, b.Host)
}
