package taxonomy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/category-admin/internal/domain/entity"
	"github.com/jhoicas/category-admin/internal/domain/taxonomy"
)

func ptr(v int64) *int64 { return &v }

// sampleTree:
//
//	1 ─┬─ 2 ── 4
//	   └─ 3
//	5 (raíz independiente)
func sampleTree() []entity.CategorySummary {
	return []entity.CategorySummary{
		{ID: 1, Name: "Ropa"},
		{ID: 2, Name: "Calzado", ParentID: ptr(1)},
		{ID: 3, Name: "Camisas", ParentID: ptr(1)},
		{ID: 4, Name: "Tenis", ParentID: ptr(2)},
		{ID: 5, Name: "Hogar"},
	}
}

func TestDescendants(t *testing.T) {
	got := taxonomy.Descendants(sampleTree(), 1)
	assert.Len(t, got, 3)
	assert.Contains(t, got, int64(2))
	assert.Contains(t, got, int64(3))
	assert.Contains(t, got, int64(4))

	assert.Empty(t, taxonomy.Descendants(sampleTree(), 5))
	assert.Empty(t, taxonomy.Descendants(sampleTree(), 99))
}

func TestDescendants_CicloExistenteNoBloquea(t *testing.T) {
	nodes := []entity.CategorySummary{
		{ID: 1, ParentID: ptr(2)},
		{ID: 2, ParentID: ptr(1)},
	}
	got := taxonomy.Descendants(nodes, 1)
	assert.Len(t, got, 1)
	assert.Contains(t, got, int64(2))
}

func TestCreatesCycle(t *testing.T) {
	nodes := sampleTree()
	assert.True(t, taxonomy.CreatesCycle(nodes, 1, 1), "una categoría no puede ser su propio padre")
	assert.True(t, taxonomy.CreatesCycle(nodes, 1, 4), "un nieto no puede ser padre del abuelo")
	assert.False(t, taxonomy.CreatesCycle(nodes, 4, 1))
	assert.False(t, taxonomy.CreatesCycle(nodes, 2, 5))
}
