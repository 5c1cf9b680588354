package ports

import "context"

type tokenKey struct{}

// ContextWithToken adjunta el token del operador al contexto para que los adaptadores lo reenvíen.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext token del operador o "" si no hay.
func TokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	tok, _ := ctx.Value(tokenKey{}).(string)
	return tok
}
