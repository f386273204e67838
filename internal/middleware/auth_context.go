package middleware

import (
	"context"
	"net/http"
	"strings"

	"medicine-reminder/internal/ports/auth"
)

// DebugUserHeader sólo se acepta sin verifier (modo dev).
const DebugUserHeader = "X-Debug-User-ID"

type ctxKey string

const claimsKey ctxKey = "claims"

// AuthContext carga claims en el contexto y nunca corta el request:
// cada handler decide si devuelve 401.
//   - verifier == nil: toma el usuario de X-Debug-User-ID.
//   - verifier != nil: sólo Authorization: Bearer <jwt>; el header de debug se ignora.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if uid := strings.TrimSpace(r.Header.Get(DebugUserHeader)); uid != "" {
					r = r.WithContext(WithClaims(r.Context(), auth.Claims{UserID: uid}))
				}
				next.ServeHTTP(w, r)
				return
			}

			if token := bearerToken(r.Header.Get("Authorization")); token != "" {
				if claims, err := verifier.Verify(r.Context(), token); err == nil {
					r = r.WithContext(WithClaims(r.Context(), claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
