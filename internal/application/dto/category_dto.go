package dto

import "time"

// StatusSuccess valor de Envelope.Status cuando el API aceptó la operación.
const StatusSuccess = "SUCCESS"

// Envelope envoltura estándar de respuesta del API de categorías: {status, message, data}.
type Envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    *T     `json:"data,omitempty"`
}

// OK indica si la respuesta trae status SUCCESS.
func (e *Envelope[T]) OK() bool {
	return e != nil && e.Status == StatusSuccess
}

// CategoryRefResponse referencia a la categoría padre dentro de CategoryResponse.
type CategoryRefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// CategoryResponse categoría tal como la devuelve el API.
type CategoryResponse struct {
	ID             int64                `json:"id"`
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	ParentCategory *CategoryRefResponse `json:"parentCategory,omitempty"`
	Status         string               `json:"status"`
	CreatedAt      *time.Time           `json:"createdAt,omitempty"`
	UpdatedAt      *time.Time           `json:"updatedAt,omitempty"`
	CreatedBy      string               `json:"createdBy,omitempty"`
	LastModifiedBy string               `json:"lastModifiedBy,omitempty"`
}

// CategorySummaryResponse elemento del listado de categorías.
type CategorySummaryResponse struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	ParentCategoryID *int64 `json:"parentCategoryId,omitempty"`
}

// CategoryPayload cuerpo de alta/edición. ParentCategoryID nil se omite del JSON (no se envía null).
type CategoryPayload struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	ParentCategoryID *int64 `json:"parentCategoryId,omitempty"`
	Status           string `json:"status"`
}
