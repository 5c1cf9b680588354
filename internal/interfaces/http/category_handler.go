package http

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/category-admin/internal/application/categoryform"
	"github.com/jhoicas/category-admin/internal/application/ports"
	"github.com/jhoicas/category-admin/internal/domain"
	"github.com/jhoicas/category-admin/internal/domain/entity"
)

// CategoryHandler páginas de listado y edición de categorías (protegido).
type CategoryHandler struct {
	svc     ports.CategoryService
	views   *Views
	timeout time.Duration
	log     zerolog.Logger
}

// NewCategoryHandler construye el handler. timeout limita cada petición contra el API.
func NewCategoryHandler(svc ports.CategoryService, views *Views, timeout time.Duration, log zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, views: views, timeout: timeout, log: log}
}

type categoryRow struct {
	ID         int64
	Name       string
	ParentName string
}

type listPage struct {
	pageBase
	Rows []categoryRow
}

type parentOption struct {
	ID       int64
	Name     string
	Selected bool
}

type editPage struct {
	pageBase
	Action        string
	CSRF          string
	Edit          bool
	Form          categoryform.FormData
	Active        bool
	ParentOptions []parentOption
	Errors        categoryform.FieldErrors
	Audit         categoryform.Audit
}

// requestContext contexto de la petición con timeout; se cancela al terminar el handler,
// de modo que ninguna respuesta tardía del API escribe sobre un formulario descartado.
func (h *CategoryHandler) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), h.timeout)
}

// List GET /admin/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	page := listPage{pageBase: pageBase{Title: "Categorías", Username: GetUsername(c)}}
	if n := popFlash(c); n != nil {
		page.Notices = append(page.Notices, *n)
	}

	list, err := h.svc.GetAllCategories(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("listar categorías")
		return h.views.renderError(c, statusFor(err), "Categorías", "No se pudo obtener el listado: "+err.Error())
	}

	summaries := categoryform.ToSummaries(list)
	names := make(map[int64]string, len(summaries))
	for _, s := range summaries {
		names[s.ID] = s.Name
	}
	for _, s := range summaries {
		row := categoryRow{ID: s.ID, Name: s.Name}
		if s.ParentID != nil {
			row.ParentName = names[*s.ParentID]
		}
		page.Rows = append(page.Rows, row)
	}
	return h.views.Render(c, fiber.StatusOK, "category_list", page)
}

// New GET /admin/categories/new
func (h *CategoryHandler) New(c *fiber.Ctx) error {
	return h.show(c, nil)
}

// Edit GET /admin/categories/:id/edit
func (h *CategoryHandler) Edit(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return h.views.renderError(c, fiber.StatusBadRequest, "Categoría", "El id de la categoría no es válido")
	}
	return h.show(c, &id)
}

// Create POST /admin/categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	return h.submit(c, nil)
}

// Update POST /admin/categories/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return h.views.renderError(c, fiber.StatusBadRequest, "Categoría", "El id de la categoría no es válido")
	}
	return h.submit(c, &id)
}

func (h *CategoryHandler) show(c *fiber.Ctx, id *int64) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	form := categoryform.New(h.svc, id)
	if err := form.Load(ctx); err != nil {
		return h.loadFailed(c, form, err)
	}
	return h.renderForm(c, fiber.StatusOK, form, nil, nil)
}

func (h *CategoryHandler) submit(c *fiber.Ctx, id *int64) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	form := categoryform.New(h.svc, id)
	if err := form.Load(ctx); err != nil {
		return h.loadFailed(c, form, err)
	}

	var notices ports.NoticeList
	res, err := form.Submit(ctx, bindForm(c), &notices)
	if err != nil {
		var verr *categoryform.ValidationError
		if errors.As(err, &verr) {
			return h.renderForm(c, fiber.StatusUnprocessableEntity, form, verr.Fields, notices)
		}
		h.log.Warn().Err(err).Str("title", form.Title()).Msg("guardar categoría")
		return h.renderForm(c, fiber.StatusBadGateway, form, nil, notices)
	}

	ev := h.log.Info().Str("user", GetUsername(c)).Str("title", form.Title())
	if res.Category != nil {
		ev = ev.Int64("category_id", res.Category.ID)
	}
	ev.Msg("categoría guardada")

	if last := notices.Last(); last != nil {
		setFlash(c, *last)
	}
	return c.Redirect(res.Redirect, fiber.StatusSeeOther)
}

func (h *CategoryHandler) loadFailed(c *fiber.Ctx, form *categoryform.Form, err error) error {
	h.log.Error().Err(err).Str("title", form.Title()).Msg("cargar formulario de categoría")
	msg := "No se pudo cargar el formulario: " + err.Error()
	return h.views.renderError(c, statusFor(err), form.Title(), msg)
}

func (h *CategoryHandler) renderForm(c *fiber.Ctx, status int, form *categoryform.Form, errs categoryform.FieldErrors, notices ports.NoticeList) error {
	data := form.Data()
	page := editPage{
		pageBase: pageBase{Title: form.Title(), Username: GetUsername(c), Notices: notices},
		Action:   "/admin/categories",
		CSRF:     CSRFToken(c),
		Edit:     form.Mode() == categoryform.ModeEdit,
		Form:     data,
		Active:   data.Status == entity.CategoryStatusActive,
		Errors:   errs,
		Audit:    form.Audit(),
	}
	if id, ok := form.ID(); ok {
		page.Action = "/admin/categories/" + strconv.FormatInt(id, 10)
	}
	for _, opt := range form.ParentOptions() {
		page.ParentOptions = append(page.ParentOptions, parentOption{
			ID:       opt.ID,
			Name:     opt.Name,
			Selected: data.ParentCategoryID != nil && *data.ParentCategoryID == opt.ID,
		})
	}
	return h.views.Render(c, status, "category_edit", page)
}

// bindForm lee los campos del formulario. El estado viene de un toggle independiente:
// marcado => ACTIVE, ausente => INACTIVE.
func bindForm(c *fiber.Ctx) categoryform.FormData {
	status := entity.CategoryStatusInactive
	if strings.EqualFold(c.FormValue(categoryform.FieldStatus), string(entity.CategoryStatusActive)) {
		status = entity.CategoryStatusActive
	}
	return categoryform.FormData{
		Name:             c.FormValue(categoryform.FieldName),
		Description:      c.FormValue(categoryform.FieldDescription),
		ParentCategoryID: categoryform.ParseParentID(c.FormValue(categoryform.FieldParent)),
		Status:           status,
	}
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	}
	return fiber.StatusBadGateway
}
