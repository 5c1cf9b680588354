package ports

import (
	"context"

	"github.com/jhoicas/category-admin/internal/application/dto"
)

// CategoryService puerto de salida hacia el API remoto de categorías.
// El adaptador HTTP vive en infrastructure/categoryapi; los tests usan el mock generado.
// Todas las llamadas respetan la cancelación del contexto.
type CategoryService interface {
	// GetAllCategories devuelve el listado completo (id + nombre) para el selector de padre.
	GetAllCategories(ctx context.Context) ([]dto.CategorySummaryResponse, error)
	// GetCategoryByID devuelve la envoltura del API; Status distinto de SUCCESS significa que no se pudo leer.
	GetCategoryByID(ctx context.Context, id int64) (*dto.Envelope[dto.CategoryResponse], error)
	CreateCategory(ctx context.Context, payload dto.CategoryPayload) (*dto.Envelope[dto.CategoryResponse], error)
	UpdateCategory(ctx context.Context, id int64, payload dto.CategoryPayload) (*dto.Envelope[dto.CategoryResponse], error)
}

//go:generate mockgen -source=category_service.go -destination=mock/category_service_mock.go -package=mock
