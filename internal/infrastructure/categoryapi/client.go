package categoryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/category-admin/internal/application/dto"
	"github.com/jhoicas/category-admin/internal/application/ports"
	"github.com/jhoicas/category-admin/internal/domain"
	"github.com/jhoicas/category-admin/pkg/config"
)

// Verificar en tiempo de compilación que Client implementa CategoryService.
var _ ports.CategoryService = (*Client)(nil)

const (
	pathCategories = "/categories"
	pathCategory   = "/categories/{id}"
)

// Client adaptador HTTP del servicio remoto de categorías sobre resty.
// No reintenta: cada fallo vuelve al operador, que decide reenviar.
type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

// NewClient construye el cliente con la base y el timeout configurados.
func NewClient(cfg config.CategoryAPIConfig, log zerolog.Logger) *Client {
	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout()).
		SetHeader("Accept", "application/json")
	return &Client{http: rc, log: log}
}

// GetAllCategories GET /categories. Acepta tanto un arreglo plano como la envoltura {status, data}.
func (c *Client) GetAllCategories(ctx context.Context) ([]dto.CategorySummaryResponse, error) {
	resp, err := c.request(ctx).Get(pathCategories)
	if err != nil {
		return nil, c.transportError(ctx, http.MethodGet, pathCategories, err)
	}
	c.logResponse(resp)
	if resp.IsError() {
		return nil, statusError(resp)
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) > 0 && body[0] == '[' {
		var list []dto.CategorySummaryResponse
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("categoryapi: decodificar listado: %w", err)
		}
		return list, nil
	}

	var env dto.Envelope[[]dto.CategorySummaryResponse]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("categoryapi: decodificar listado: %w", err)
	}
	if !env.OK() {
		msg := env.Message
		if msg == "" {
			msg = "status " + env.Status
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrUpstream, msg)
	}
	if env.Data == nil {
		return []dto.CategorySummaryResponse{}, nil
	}
	return *env.Data, nil
}

// GetCategoryByID GET /categories/{id}.
func (c *Client) GetCategoryByID(ctx context.Context, id int64) (*dto.Envelope[dto.CategoryResponse], error) {
	return c.envelope(ctx, http.MethodGet, id, nil)
}

// CreateCategory POST /categories.
func (c *Client) CreateCategory(ctx context.Context, payload dto.CategoryPayload) (*dto.Envelope[dto.CategoryResponse], error) {
	return c.envelope(ctx, http.MethodPost, 0, payload)
}

// UpdateCategory PUT /categories/{id}.
func (c *Client) UpdateCategory(ctx context.Context, id int64, payload dto.CategoryPayload) (*dto.Envelope[dto.CategoryResponse], error) {
	return c.envelope(ctx, http.MethodPut, id, payload)
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if tok := ports.TokenFromContext(ctx); tok != "" {
		req.SetAuthToken(tok)
	}
	return req
}

// envelope ejecuta la llamada y devuelve la envoltura tal cual. Un 4xx/5xx con envoltura legible
// se devuelve sin error para que el formulario muestre el mensaje del servidor.
func (c *Client) envelope(ctx context.Context, method string, id int64, body any) (*dto.Envelope[dto.CategoryResponse], error) {
	path := pathCategories
	req := c.request(ctx)
	if id > 0 {
		path = pathCategory
		req.SetPathParam("id", strconv.FormatInt(id, 10))
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, c.transportError(ctx, method, path, err)
	}
	c.logResponse(resp)

	raw := bytes.TrimSpace(resp.Body())
	if len(raw) == 0 {
		if resp.IsError() {
			return nil, statusError(resp)
		}
		return &dto.Envelope[dto.CategoryResponse]{Status: dto.StatusSuccess}, nil
	}

	// Una categoría sin envoltura también trae "status" (ACTIVE/INACTIVE): se distingue por la forma.
	var shape bodyShape
	if err := json.Unmarshal(raw, &shape); err != nil {
		if resp.IsError() {
			return nil, statusError(resp)
		}
		return nil, fmt.Errorf("categoryapi: decodificar respuesta: %w", err)
	}

	if shape.bareCategory() {
		if resp.IsError() {
			return nil, statusError(resp)
		}
		var cat dto.CategoryResponse
		if err := json.Unmarshal(raw, &cat); err != nil {
			return nil, fmt.Errorf("categoryapi: decodificar categoría: %w", err)
		}
		return &dto.Envelope[dto.CategoryResponse]{Status: dto.StatusSuccess, Data: &cat}, nil
	}

	var env dto.Envelope[dto.CategoryResponse]
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.IsError() {
			return nil, statusError(resp)
		}
		return nil, fmt.Errorf("categoryapi: decodificar respuesta: %w", err)
	}
	if env.Status == "" {
		if resp.IsError() {
			return nil, statusError(resp)
		}
		return nil, fmt.Errorf("%w: respuesta sin status", domain.ErrUpstream)
	}
	return &env, nil
}

// bodyShape campos que separan una envoltura {status, message, data} de una categoría suelta.
type bodyShape struct {
	ID   *int64          `json:"id"`
	Data json.RawMessage `json:"data"`
}

func (b bodyShape) bareCategory() bool {
	return b.ID != nil && b.Data == nil
}

func (c *Client) transportError(ctx context.Context, method, path string, err error) error {
	c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("categoryapi: llamada fallida")
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("categoryapi: %s %s: %w", method, path, ctxErr)
	}
	var urlErr interface{ Timeout() bool }
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Errorf("categoryapi: %s %s: %w", method, path, context.DeadlineExceeded)
	}
	return fmt.Errorf("categoryapi: %s %s: %w", method, path, err)
}

func (c *Client) logResponse(resp *resty.Response) {
	ev := c.log.Debug()
	if resp.IsError() {
		ev = c.log.Warn()
	}
	ev.Str("method", resp.Request.Method).
		Str("url", resp.Request.URL).
		Int("status", resp.StatusCode()).
		Dur("latency", resp.Time()).
		Msg("categoryapi")
}

func statusError(resp *resty.Response) error {
	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return fmt.Errorf("categoryapi: HTTP %d: %w", resp.StatusCode(), domain.ErrUnauthorized)
	case http.StatusForbidden:
		return fmt.Errorf("categoryapi: HTTP %d: %w", resp.StatusCode(), domain.ErrForbidden)
	case http.StatusNotFound:
		return fmt.Errorf("categoryapi: HTTP %d: %w", resp.StatusCode(), domain.ErrNotFound)
	}
	return fmt.Errorf("categoryapi: HTTP %d: %w", resp.StatusCode(), domain.ErrUpstream)
}
