package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/category-admin/internal/application/dto"
	"github.com/jhoicas/category-admin/internal/application/ports"
)

//go:embed templates/*.html
var templateFS embed.FS

// Views páginas del panel. Cada página se parsea junto al layout para que los bloques
// "header"/"footer" no colisionen entre páginas.
type Views struct {
	pages map[string]*template.Template
}

// NewViews parsea las plantillas embebidas.
func NewViews() (*Views, error) {
	pages := map[string]*template.Template{}
	for _, name := range []string{"category_list", "category_edit", "error"} {
		tpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsear plantilla %s: %w", name, err)
		}
		pages[name] = tpl
	}
	return &Views{pages: pages}, nil
}

// Render ejecuta la página en un buffer y la envía con el status indicado.
func (v *Views) Render(c *fiber.Ctx, status int, page string, data any) error {
	tpl, ok := v.pages[page]
	if !ok {
		return fmt.Errorf("plantilla desconocida: %s", page)
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, page+".html", data); err != nil {
		return fmt.Errorf("renderizar %s: %w", page, err)
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

// pageBase datos comunes a todas las páginas.
type pageBase struct {
	Title    string
	Username string
	Notices  ports.NoticeList
}

type errorPage struct {
	pageBase
	Message string
}

// Denied rechazo de acceso: página de error para navegadores, JSON para clientes del API.
func (v *Views) Denied(c *fiber.Ctx, status int, body dto.ErrorResponse) error {
	if c.Accepts(fiber.MIMEApplicationJSON, fiber.MIMETextHTML) != fiber.MIMETextHTML {
		return DenyJSON(c, status, body)
	}
	title := "Acceso denegado"
	if status == fiber.StatusUnauthorized {
		title = "Sesión requerida"
	}
	return v.renderError(c, status, title, body.Message)
}

func (v *Views) renderError(c *fiber.Ctx, status int, title, message string) error {
	return v.Render(c, status, "error", errorPage{
		pageBase: pageBase{Title: title, Username: GetUsername(c)},
		Message:  message,
	})
}
