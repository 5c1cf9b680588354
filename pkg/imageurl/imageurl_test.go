package imageurl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/category-admin/pkg/imageurl"
)

func TestPrepare(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		base  string
		token string
		want  string
	}{
		{"ruta relativa con token", "/img/a.png", "https://api.x", "T", "https://api.x/img/a.png?auth_token=T"},
		{"ruta relativa sin barra inicial", "img/a.png", "https://api.x/", "T", "https://api.x/img/a.png?auth_token=T"},
		{"base con path", "/uploads/a.png", "https://api.x/api", "T", "https://api.x/api/uploads/a.png?auth_token=T"},
		{"absoluta de otro origen", "https://cdn.y/a.png", "https://api.x", "T", "https://cdn.y/a.png"},
		{"absoluta del mismo origen", "https://api.x/img/b.png", "https://api.x", "T", "https://api.x/img/b.png?auth_token=T"},
		{"conserva query existente", "/img/a.png?w=100", "https://api.x", "T", "https://api.x/img/a.png?w=100&auth_token=T"},
		{"respeta orden y escapes de url firmada", "/img/a.png?z=1&a=b%2Fc&sig=Zx9", "https://api.x", "T", "https://api.x/img/a.png?z=1&a=b%2Fc&sig=Zx9&auth_token=T"},
		{"reemplaza token previo intermedio", "/img/a.png?w=1&auth_token=old&h=2", "https://api.x", "T", "https://api.x/img/a.png?w=1&h=2&auth_token=T"},
		{"escapa el token", "/img/a.png", "https://api.x", "a+b/c", "https://api.x/img/a.png?auth_token=a%2Bb%2Fc"},
		{"reemplaza token previo", "/img/a.png?auth_token=old", "https://api.x", "T", "https://api.x/img/a.png?auth_token=T"},
		{"sin token", "/img/a.png", "https://api.x", "", "https://api.x/img/a.png"},
		{"vacía", "  ", "https://api.x", "T", ""},
		{"data uri", "data:image/png;base64,AAAA", "https://api.x", "T", "data:image/png;base64,AAAA"},
		{"blob", "blob:https://app/123", "https://api.x", "T", "blob:https://app/123"},
		{"sin base configurada", "/img/a.png", "", "T", "/img/a.png"},
		{"protocolo relativo foráneo", "//cdn.y/a.png", "https://api.x", "T", "//cdn.y/a.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, imageurl.Prepare(tt.raw, tt.base, tt.token))
		})
	}
}

func TestPreparer_UsaBaseYToken(t *testing.T) {
	p := imageurl.Preparer{BaseURL: "https://api.x", Token: "T"}
	assert.Equal(t, "https://api.x/img/a.png?auth_token=T", p.Prepare("/img/a.png"))
	assert.Equal(t, "https://cdn.y/a.png", p.Prepare("https://cdn.y/a.png"))
}
