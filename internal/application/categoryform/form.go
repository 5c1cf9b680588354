package categoryform

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/category-admin/internal/application/dto"
	"github.com/jhoicas/category-admin/internal/application/ports"
	"github.com/jhoicas/category-admin/internal/domain"
	"github.com/jhoicas/category-admin/internal/domain/entity"
	"github.com/jhoicas/category-admin/internal/domain/taxonomy"
)

// ListPath destino tras guardar con éxito.
const ListPath = "/admin/categories"

const (
	msgSaving         = "Guardando categoría..."
	msgCreated        = "Categoría creada correctamente"
	msgUpdated        = "Categoría actualizada correctamente"
	msgSaveFailed     = "No se pudo guardar la categoría"
	auditTimeLayout   = "02/01/2006 15:04"
	auditMissingValue = "—"
)

// Mode alta o edición, según venga id en la ruta.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Audit metadatos de auditoría en formato de presentación.
type Audit struct {
	CreatedAt      string
	UpdatedAt      string
	CreatedBy      string
	LastModifiedBy string
}

// Result resultado de un envío aceptado. Category es nil si el API no devolvió la categoría.
type Result struct {
	Redirect string
	Category *dto.CategoryResponse
}

// RejectedError el API respondió con status distinto de SUCCESS.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string { return e.Message }

// Form estado y comportamiento del formulario de categoría durante una sesión de edición.
// No es seguro para uso concurrente; se crea uno por petición.
type Form struct {
	svc        ports.CategoryService
	id         *int64
	data       FormData
	audit      Audit
	categories []entity.CategorySummary
	loaded     bool
}

// New construye el formulario; id nil significa alta.
func New(svc ports.CategoryService, id *int64) *Form {
	return &Form{
		svc:  svc,
		id:   id,
		data: FormData{Status: entity.CategoryStatusActive},
	}
}

// Mode modo del formulario.
func (f *Form) Mode() Mode {
	if f.id == nil {
		return ModeCreate
	}
	return ModeEdit
}

// ID id en edición.
func (f *Form) ID() (int64, bool) {
	if f.id == nil {
		return 0, false
	}
	return *f.id, true
}

// Title encabezado de la página contenedora.
func (f *Form) Title() string {
	if f.id == nil {
		return "Crear categoría"
	}
	return fmt.Sprintf("Editar categoría #%d", *f.id)
}

// Data valores actuales de los campos.
func (f *Form) Data() FormData { return f.data }

// Audit metadatos de la categoría cargada (vacío en alta).
func (f *Form) Audit() Audit { return f.audit }

// Loaded indica si ya terminaron las dos cargas iniciales.
func (f *Form) Loaded() bool { return f.loaded }

// Load pide en paralelo el listado y, en edición, la categoría. Si una falla se cancela la otra;
// la cancelación de ctx corta ambas y nada se escribe en el formulario.
func (f *Form) Load(ctx context.Context) error {
	var (
		list []dto.CategorySummaryResponse
		env  *dto.Envelope[dto.CategoryResponse]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := f.svc.GetAllCategories(gctx)
		if err != nil {
			return fmt.Errorf("listar categorías: %w", err)
		}
		list = out
		return nil
	})
	if f.id != nil {
		id := *f.id
		g.Go(func() error {
			out, err := f.svc.GetCategoryByID(gctx, id)
			if err != nil {
				return fmt.Errorf("obtener categoría %d: %w", id, err)
			}
			env = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if f.id != nil {
		if !env.OK() || env.Data == nil {
			msg := "categoría no encontrada"
			if env != nil && env.Message != "" {
				msg = env.Message
			}
			return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
		}
		f.populate(toCategory(env.Data))
	}
	f.categories = ToSummaries(list)
	f.loaded = true
	return nil
}

func (f *Form) populate(c *entity.Category) {
	f.data = FormData{
		Name:             c.Name,
		Description:      c.Description,
		ParentCategoryID: c.ParentID(),
		Status:           c.Status,
	}
	if !f.data.Status.Valid() {
		f.data.Status = entity.CategoryStatusActive
	}
	f.audit = Audit{
		CreatedAt:      formatAuditTime(c.CreatedAt),
		UpdatedAt:      formatAuditTime(c.UpdatedAt),
		CreatedBy:      orMissing(c.CreatedBy),
		LastModifiedBy: orMissing(c.LastModifiedBy),
	}
}

// ParentOptions candidatos del selector de padre. En edición excluye la propia categoría y sus
// descendientes conocidos.
func (f *Form) ParentOptions() []entity.CategorySummary {
	if f.id == nil {
		out := make([]entity.CategorySummary, len(f.categories))
		copy(out, f.categories)
		return out
	}
	excluded := taxonomy.Descendants(f.categories, *f.id)
	out := make([]entity.CategorySummary, 0, len(f.categories))
	for _, c := range f.categories {
		if c.ID == *f.id {
			continue
		}
		if _, skip := excluded[c.ID]; skip {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Schema esquema vigente según el modo.
func (f *Form) Schema() Schema {
	if f.id == nil {
		return NewSchema()
	}
	return NewEditSchema(*f.id, f.categories)
}

// Submit valida, arma el payload y llama a crear o actualizar. Los avisos van a n en orden:
// "guardando" y luego éxito o error. Un *ValidationError no produce llamadas ni avisos.
func (f *Form) Submit(ctx context.Context, in FormData, n ports.Notifier) (*Result, error) {
	in = in.Normalized()
	f.data = in

	if errs := f.Schema().Validate(in); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	payload := in.Payload()
	n.Notify(ports.NoticeInfo, msgSaving)

	var (
		env *dto.Envelope[dto.CategoryResponse]
		err error
	)
	if f.id == nil {
		env, err = f.svc.CreateCategory(ctx, payload)
	} else {
		env, err = f.svc.UpdateCategory(ctx, *f.id, payload)
	}
	if err != nil {
		msg := err.Error()
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "El servicio de categorías tardó demasiado en responder"
		}
		n.Notify(ports.NoticeError, msg)
		return nil, err
	}
	if !env.OK() {
		msg := msgSaveFailed
		if env != nil && env.Message != "" {
			msg = env.Message
		}
		n.Notify(ports.NoticeError, msg)
		return nil, &RejectedError{Message: msg}
	}

	if f.id == nil {
		n.Notify(ports.NoticeSuccess, msgCreated)
	} else {
		n.Notify(ports.NoticeSuccess, msgUpdated)
	}
	return &Result{Redirect: ListPath, Category: env.Data}, nil
}

func toCategory(r *dto.CategoryResponse) *entity.Category {
	c := &entity.Category{
		ID:             r.ID,
		Name:           r.Name,
		Description:    r.Description,
		Status:         entity.CategoryStatus(r.Status),
		CreatedBy:      r.CreatedBy,
		LastModifiedBy: r.LastModifiedBy,
	}
	if r.ParentCategory != nil {
		c.Parent = &entity.CategoryRef{ID: r.ParentCategory.ID, Name: r.ParentCategory.Name}
	}
	if r.CreatedAt != nil {
		c.CreatedAt = *r.CreatedAt
	}
	if r.UpdatedAt != nil {
		c.UpdatedAt = *r.UpdatedAt
	}
	return c
}

// ToSummaries convierte el listado del API; también lo usa la página de listado.
func ToSummaries(in []dto.CategorySummaryResponse) []entity.CategorySummary {
	out := make([]entity.CategorySummary, 0, len(in))
	for _, s := range in {
		out = append(out, entity.CategorySummary{ID: s.ID, Name: s.Name, ParentID: s.ParentCategoryID})
	}
	return out
}

func formatAuditTime(t time.Time) string {
	if t.IsZero() {
		return auditMissingValue
	}
	return t.Format(auditTimeLayout)
}

func orMissing(s string) string {
	if s == "" {
		return auditMissingValue
	}
	return s
}
