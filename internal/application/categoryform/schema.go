package categoryform

import (
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/category-admin/internal/application/dto"
	"github.com/jhoicas/category-admin/internal/domain/entity"
	"github.com/jhoicas/category-admin/internal/domain/taxonomy"
)

// Nombres de campo tal como los usa el formulario HTML.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldParent      = "parentCategoryId"
	FieldStatus      = "status"
)

var validate = validator.New()

// FormData proyección local del formulario; vive solo mientras dura la edición.
type FormData struct {
	Name             string
	Description      string
	ParentCategoryID *int64
	Status           entity.CategoryStatus
}

// Normalized recorta espacios y normaliza a NFC los textos libres.
func (d FormData) Normalized() FormData {
	d.Name = norm.NFC.String(strings.TrimSpace(d.Name))
	d.Description = norm.NFC.String(strings.TrimSpace(d.Description))
	if d.Status == "" {
		d.Status = entity.CategoryStatusActive
	}
	return d
}

// Payload cuerpo de la petición; el padre nil queda fuera del JSON.
func (d FormData) Payload() dto.CategoryPayload {
	return dto.CategoryPayload{
		Name:             d.Name,
		Description:      d.Description,
		ParentCategoryID: d.ParentCategoryID,
		Status:           string(d.Status),
	}
}

// ParentValue valor del select ("" si no hay padre).
func (d FormData) ParentValue() string {
	if d.ParentCategoryID == nil {
		return ""
	}
	return strconv.FormatInt(*d.ParentCategoryID, 10)
}

// ParseParentID convierte el valor del select; cualquier cosa que no sea un número queda en nil.
func ParseParentID(raw string) *int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

// FieldErrors mensajes por campo; solo el primero que falla en cada campo.
type FieldErrors map[string]string

// Fields nombres de campo con error, ordenados.
func (f FieldErrors) Fields() []string {
	out := make([]string, 0, len(f))
	for k := range f {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ValidationError el formulario no pasó el esquema; no se hizo ninguna llamada al API.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "formulario inválido: " + strings.Join(e.Fields.Fields(), ", ")
}

// Rule predicado sobre el formulario con el mensaje que se muestra junto al campo.
type Rule struct {
	Field   string
	Check   func(FormData) bool
	Message string
}

// Schema reglas evaluadas en orden antes de enviar.
type Schema []Rule

// Validate devuelve nil si todas las reglas pasan.
func (s Schema) Validate(d FormData) FieldErrors {
	var errs FieldErrors
	for _, r := range s {
		if _, already := errs[r.Field]; already {
			continue
		}
		if r.Check(d) {
			continue
		}
		if errs == nil {
			errs = FieldErrors{}
		}
		errs[r.Field] = r.Message
	}
	return errs
}

// NewSchema esquema base: nombre y descripción obligatorios, padre opcional.
func NewSchema() Schema {
	return Schema{
		{
			Field:   FieldName,
			Check:   func(d FormData) bool { return validate.Var(strings.TrimSpace(d.Name), "required") == nil },
			Message: "El nombre es obligatorio",
		},
		{
			Field:   FieldDescription,
			Check:   func(d FormData) bool { return validate.Var(strings.TrimSpace(d.Description), "required") == nil },
			Message: "La descripción es obligatoria",
		},
		{
			Field: FieldParent,
			Check: func(d FormData) bool {
				return d.ParentCategoryID == nil || validate.Var(*d.ParentCategoryID, "gt=0") == nil
			},
			Message: "La categoría padre no es válida",
		},
		{
			Field:   FieldStatus,
			Check:   func(d FormData) bool { return validate.Var(string(d.Status), "oneof=ACTIVE INACTIVE") == nil },
			Message: "El estado debe ser ACTIVE o INACTIVE",
		},
	}
}

// NewEditSchema añade la regla anti-ciclos para la categoría id usando el árbol conocido.
func NewEditSchema(id int64, tree []entity.CategorySummary) Schema {
	return append(NewSchema(), Rule{
		Field: FieldParent,
		Check: func(d FormData) bool {
			return d.ParentCategoryID == nil || !taxonomy.CreatesCycle(tree, id, *d.ParentCategoryID)
		},
		Message: "Una categoría no puede depender de sí misma ni de una de sus subcategorías",
	})
}
