package entity

import "time"

// CategoryStatus visibilidad de la categoría en el catálogo.
type CategoryStatus string

const (
	CategoryStatusActive   CategoryStatus = "ACTIVE"
	CategoryStatusInactive CategoryStatus = "INACTIVE"
)

// Valid indica si el estado es uno de los reconocidos por el API.
func (s CategoryStatus) Valid() bool {
	return s == CategoryStatusActive || s == CategoryStatusInactive
}

// CategoryRef referencia mínima a otra categoría (padre).
type CategoryRef struct {
	ID   int64
	Name string
}

// Category nodo del árbol de clasificación de productos. La copia autoritativa vive en el API remoto.
type Category struct {
	ID             int64
	Name           string
	Description    string
	Parent         *CategoryRef // nil si es raíz
	Status         CategoryStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CreatedBy      string
	LastModifiedBy string
}

// ParentID id del padre o nil.
func (c *Category) ParentID() *int64 {
	if c == nil || c.Parent == nil {
		return nil
	}
	id := c.Parent.ID
	return &id
}

// CategorySummary proyección id+nombre usada para el selector de categoría padre.
// ParentID solo viene cuando el API lo incluye en el listado.
type CategorySummary struct {
	ID       int64
	Name     string
	ParentID *int64
}
