package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/category-admin/internal/application/ports"
	apphttp "github.com/jhoicas/category-admin/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/category-admin/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testUsername  = "ana"
	testIssuer    = "category-admin-test"
	testExpMin    = 60
)

// buildAuthApp construye una aplicación Fiber mínima con AuthMiddleware + RequireRole
// y un handler dummy que devuelve 200 si pasa los middlewares.
func buildAuthApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, testIssuer, nil),
		apphttp.RequireRole(nil, allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"ok":        true,
				"role":      apphttp.GetRole(c),
				"user_id":   apphttp.GetUserID(c),
				"username":  apphttp.GetUsername(c),
				"ctx_token": ports.TokenFromContext(c.UserContext()),
				"token":     apphttp.GetToken(c),
			})
		},
	)
	return app
}

// rawToken genera un JWT con el rol indicado.
func rawToken(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

func doAuthRequest(t *testing.T, app *fiber.App, authHeader, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: apphttp.AuthCookie, Value: cookie})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_BearerCargaClaimsYToken(t *testing.T) {
	app := buildAuthApp(apphttp.RoleAdmin)
	tok := rawToken(t, apphttp.RoleAdmin)
	resp := doAuthRequest(t, app, "Bearer "+tok, "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testUsername, body["username"])
	assert.Equal(t, tok, body["token"])
	assert.Equal(t, tok, body["ctx_token"], "el token debe viajar en el contexto hacia el API")
}

func TestAuthMiddleware_AceptaCookie(t *testing.T) {
	app := buildAuthApp(apphttp.RoleEditor)
	resp := doAuthRequest(t, app, "", rawToken(t, apphttp.RoleEditor))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_SinCredenciales_Retorna401(t *testing.T) {
	app := buildAuthApp(apphttp.RoleAdmin)
	resp := doAuthRequest(t, app, "", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	app := buildAuthApp(apphttp.RoleAdmin)
	for _, header := range []string{"Token abc", "Bearer ", "Bearer token.invalido.aqui"} {
		resp := doAuthRequest(t, app, header, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "INVALID_TOKEN", header)
		resp.Body.Close()
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_ViewerBloqueadoEnPanel(t *testing.T) {
	app := buildAuthApp(apphttp.RoleAdmin, apphttp.RoleEditor)
	resp := doAuthRequest(t, app, "Bearer "+rawToken(t, "viewer"), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildAuthApp(apphttp.RoleAdmin)
	resp := doAuthRequest(t, app, "Bearer "+rawToken(t, ""), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// JWT pkg
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	claims, err := pkgjwt.Parse(testJWTSecret, testIssuer, rawToken(t, apphttp.RoleEditor))
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testUsername, claims.Username)
	assert.Equal(t, apphttp.RoleEditor, claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, apphttp.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)
	_, err = pkgjwt.Parse(testJWTSecret, testIssuer, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	_, err := pkgjwt.Parse("otro-secret-completamente-distinto", testIssuer, rawToken(t, apphttp.RoleAdmin))
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestJWT_EmisorDistinto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, apphttp.RoleAdmin, "otro-servicio", testExpMin)
	require.NoError(t, err)
	_, err = pkgjwt.Parse(testJWTSecret, testIssuer, tok)
	assert.Error(t, err, "un token de otro emisor no es válido para el panel")

	claims, err := pkgjwt.Parse(testJWTSecret, "", tok)
	require.NoError(t, err, "sin emisor configurado no se valida iss")
	assert.Equal(t, "otro-servicio", claims.Issuer)
}

func TestAuthMiddleware_EmisorDistinto(t *testing.T) {
	app := buildAuthApp(apphttp.RoleAdmin)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, apphttp.RoleAdmin, "otro-servicio", testExpMin)
	require.NoError(t, err)

	resp := doAuthRequest(t, app, "Bearer "+tok, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWT_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, testUsername, apphttp.RoleAdmin, testIssuer, testExpMin)
	assert.Error(t, err)
}
