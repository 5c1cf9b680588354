package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/jhoicas/category-admin/internal/application/dto"
)

const (
	// CSRFField campo oculto del formulario con el token.
	CSRFField = "_csrf"
	// CSRFCookie cookie de doble envío que acompaña al token.
	CSRFCookie = "csrf_"

	localCSRF = "csrf"
)

// CSRFMiddleware protege los POST autenticados con la cookie auth_token. Las peticiones con
// Authorization quedan fuera: el navegador no adjunta esa cabecera por su cuenta.
// El token se acepta en la cabecera X-Csrf-Token o en el campo _csrf del formulario.
func CSRFMiddleware(deny DeniedHandler) fiber.Handler {
	if deny == nil {
		deny = DenyJSON
	}
	fromHeader := csrf.CsrfFromHeader(csrf.HeaderName)
	fromForm := csrf.CsrfFromForm(CSRFField)
	return csrf.New(csrf.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Get(fiber.HeaderAuthorization) != ""
		},
		CookieName:     CSRFCookie,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		Expiration:     2 * time.Hour,
		ContextKey:     localCSRF,
		Extractor: func(c *fiber.Ctx) (string, error) {
			if tok, err := fromHeader(c); err == nil {
				return tok, nil
			}
			return fromForm(c)
		},
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return deny(c, fiber.StatusForbidden, dto.ErrorResponse{Code: "INVALID_CSRF", Message: "el formulario expiró o no es válido; recarga la página"})
		},
	})
}

// CSRFToken token vigente de la petición ("" si la petición no usa cookie de sesión).
func CSRFToken(c *fiber.Ctx) string {
	return localString(c, localCSRF)
}
