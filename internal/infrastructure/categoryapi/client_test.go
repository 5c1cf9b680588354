package categoryapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/category-admin/internal/application/dto"
	"github.com/jhoicas/category-admin/internal/application/ports"
	"github.com/jhoicas/category-admin/internal/domain"
	"github.com/jhoicas/category-admin/internal/infrastructure/categoryapi"
	"github.com/jhoicas/category-admin/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newClient(t *testing.T, h http.HandlerFunc) *categoryapi.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return categoryapi.NewClient(config.CategoryAPIConfig{BaseURL: srv.URL, TimeoutSeconds: 2}, zerolog.Nop())
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func ptr(v int64) *int64 { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Listado
// ──────────────────────────────────────────────────────────────────────────────

func TestGetAllCategories_ArregloPlanoYToken(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/categories", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, `[{"id":1,"name":"Ropa"},{"id":2,"name":"Calzado","parentCategoryId":1}]`)
	})

	ctx := ports.ContextWithToken(context.Background(), "tok-123")
	list, err := client.GetAllCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []dto.CategorySummaryResponse{
		{ID: 1, Name: "Ropa"},
		{ID: 2, Name: "Calzado", ParentCategoryID: ptr(1)},
	}, list)
}

func TestGetAllCategories_Envoltura(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"), "sin token en el contexto no se envía Authorization")
		writeJSON(w, http.StatusOK, `{"status":"SUCCESS","data":[{"id":3,"name":"Hogar"}]}`)
	})
	list, err := client.GetAllCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []dto.CategorySummaryResponse{{ID: 3, Name: "Hogar"}}, list)
}

func TestGetAllCategories_EnvolturaConError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"status":"ERROR","message":"mantenimiento"}`)
	})
	_, err := client.GetAllCategories(context.Background())
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "mantenimiento")
}

func TestGetAllCategories_HTTP401(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	_, err := client.GetAllCategories(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Categoría individual, alta y edición
// ──────────────────────────────────────────────────────────────────────────────

func TestGetCategoryByID(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/categories/5", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"status":"SUCCESS","data":{"id":5,"name":"Shoes","description":"d","parentCategory":{"id":2},"status":"ACTIVE","createdAt":"2024-03-01T10:30:00Z","createdBy":"ana"}}`)
	})
	env, err := client.GetCategoryByID(context.Background(), 5)
	require.NoError(t, err)
	require.True(t, env.OK())
	require.NotNil(t, env.Data.ParentCategory)
	assert.Equal(t, int64(2), env.Data.ParentCategory.ID)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), env.Data.CreatedAt.UTC())
	assert.Equal(t, "ana", env.Data.CreatedBy)
}

func TestGetCategoryByID_CategoriaSinEnvoltura(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":5,"name":"Shoes","description":"d","status":"ACTIVE"}`)
	})
	env, err := client.GetCategoryByID(context.Background(), 5)
	require.NoError(t, err)
	require.True(t, env.OK())
	require.NotNil(t, env.Data)
	assert.Equal(t, "Shoes", env.Data.Name)
	assert.Equal(t, "ACTIVE", env.Data.Status)
}

func TestCreateCategory_CategoriaCreadaSinEnvoltura(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `{"id":11,"name":"Tenis","description":"x","status":"INACTIVE"}`)
	})
	env, err := client.CreateCategory(context.Background(), dto.CategoryPayload{Name: "Tenis", Description: "x", Status: "INACTIVE"})
	require.NoError(t, err)
	require.True(t, env.OK(), "el status de la categoría no es el de la envoltura")
	require.NotNil(t, env.Data)
	assert.Equal(t, int64(11), env.Data.ID)
	assert.Equal(t, "INACTIVE", env.Data.Status)
}

func TestCreateCategory_RespuestaSinStatus(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"ok":true}`)
	})
	_, err := client.CreateCategory(context.Background(), dto.CategoryPayload{Name: "S", Description: "d", Status: "ACTIVE"})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestCreateCategory_OmitePadreNulo(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/categories", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "parentCategoryId")
		assert.Equal(t, "Tenis", body["name"])
		assert.Equal(t, "ACTIVE", body["status"])
		writeJSON(w, http.StatusCreated, `{"status":"SUCCESS","message":"creada","data":{"id":11,"name":"Tenis"}}`)
	})
	env, err := client.CreateCategory(context.Background(), dto.CategoryPayload{Name: "Tenis", Description: "x", Status: "ACTIVE"})
	require.NoError(t, err)
	assert.True(t, env.OK())
	assert.Equal(t, int64(11), env.Data.ID)
}

func TestUpdateCategory_EnviaPadre(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/categories/5", r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(2), body["parentCategoryId"])
		writeJSON(w, http.StatusOK, `{"status":"SUCCESS"}`)
	})
	env, err := client.UpdateCategory(context.Background(), 5, dto.CategoryPayload{Name: "S", Description: "d", ParentCategoryID: ptr(2), Status: "INACTIVE"})
	require.NoError(t, err)
	assert.True(t, env.OK())
}

func TestUpdateCategory_ErrorConEnvolturaSeDevuelveSinError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, `{"status":"ERROR","message":"Nombre duplicado"}`)
	})
	env, err := client.UpdateCategory(context.Background(), 5, dto.CategoryPayload{Name: "S", Description: "d", Status: "ACTIVE"})
	require.NoError(t, err)
	assert.False(t, env.OK())
	assert.Equal(t, "Nombre duplicado", env.Message)
}

func TestCreateCategory_Error500SinCuerpo(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := client.CreateCategory(context.Background(), dto.CategoryPayload{Name: "S", Description: "d", Status: "ACTIVE"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestGetCategoryByID_ContextoCancelado(t *testing.T) {
	release := make(chan struct{})
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.GetCategoryByID(ctx, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
