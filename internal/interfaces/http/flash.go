package http

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/category-admin/internal/application/ports"
)

const flashCookie = "flash"

// setFlash guarda un aviso para la siguiente página (patrón post/redirect/get).
func setFlash(c *fiber.Ctx, n ports.Notice) {
	raw, err := json.Marshal(n)
	if err != nil {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/admin",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(time.Minute),
	})
}

// popFlash lee y borra el aviso pendiente.
func popFlash(c *fiber.Ctx) *ports.Notice {
	value := c.Cookies(flashCookie)
	if value == "" {
		return nil
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/admin",
		HTTPOnly: true,
		Expires:  time.Unix(0, 0),
	})
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var n ports.Notice
	if err := json.Unmarshal(raw, &n); err != nil || n.Message == "" {
		return nil
	}
	return &n
}
