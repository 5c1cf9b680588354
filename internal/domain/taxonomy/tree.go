package taxonomy

import "github.com/jhoicas/category-admin/internal/domain/entity"

// Descendants devuelve los ids que cuelgan (a cualquier profundidad) de root.
// Solo conoce las relaciones presentes en nodes; un listado sin ParentID produce un conjunto vacío.
// Ciclos ya existentes en los datos no provocan bucles.
func Descendants(nodes []entity.CategorySummary, root int64) map[int64]struct{} {
	children := make(map[int64][]int64, len(nodes))
	for _, n := range nodes {
		if n.ParentID != nil {
			children[*n.ParentID] = append(children[*n.ParentID], n.ID)
		}
	}

	out := make(map[int64]struct{})
	queue := []int64{root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range children[cur] {
			if child == root {
				continue
			}
			if _, seen := out[child]; seen {
				continue
			}
			out[child] = struct{}{}
			queue = append(queue, child)
		}
	}
	return out
}

// CreatesCycle indica si asignar parentID como padre de id cerraría un ciclo.
func CreatesCycle(nodes []entity.CategorySummary, id, parentID int64) bool {
	if id == parentID {
		return true
	}
	_, isDescendant := Descendants(nodes, id)[parentID]
	return isDescendant
}
