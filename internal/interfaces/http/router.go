package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/category-admin/internal/application/ports"
)

// Roles con acceso al panel.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// BodyLimit límite del cuerpo de las peticiones. Supera el máximo por imagen para que los
// archivos grandes lleguen a la validación del widget y se informen al operador.
const BodyLimit = 50 * 1024 * 1024

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryService ports.CategoryService
	Views           *Views
	ImageBaseURL    string
	JWTSecret       string
	JWTIssuer       string
	RequestTimeout  time.Duration
	Logger          zerolog.Logger
}

// Router registra las páginas del panel y la API del widget de imágenes.
func Router(app *fiber.App, deps RouterDeps) {
	deny := deps.Views.Denied
	auth := []fiber.Handler{
		AuthMiddleware(deps.JWTSecret, deps.JWTIssuer, deny),
		RequireRole(deny, RoleAdmin, RoleEditor),
		CSRFMiddleware(deny),
	}

	// Páginas de categorías (protegido)
	admin := app.Group("/admin", auth...)
	categoryHandler := NewCategoryHandler(deps.CategoryService, deps.Views, deps.RequestTimeout, deps.Logger)
	admin.Get("/categories", categoryHandler.List)
	admin.Get("/categories/new", categoryHandler.New)
	admin.Post("/categories", categoryHandler.Create)
	admin.Get("/categories/:id/edit", categoryHandler.Edit)
	admin.Post("/categories/:id", categoryHandler.Update)

	// Widget de imágenes (protegido)
	images := app.Group("/api/images", auth...)
	imageHandler := NewImageHandler(deps.ImageBaseURL)
	images.Post("/", imageHandler.Upload)
	images.Post("/thumbnails", imageHandler.Thumbnails)
	images.Post("/remove", imageHandler.Remove)
}
