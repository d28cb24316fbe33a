package middleware

import (
	"context"
	"net/http"
	"strings"

	"teledetect-platform/internal/model"
	"teledetect-platform/pkg/apierror"
)

// userVerifier is the slice of the auth service the middleware needs: the
// full verification (token decode plus revocation check plus identity load)
// as one operation.
type userVerifier interface {
	Verify(ctx context.Context, tokenString string) (model.User, error)
}

type contextKey string

const userContextKey contextKey = "auth_user"

type AuthMiddleware struct {
	verifier userVerifier
}

func NewAuthMiddleware(verifier userVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := BearerToken(r)
		if !ok {
			writeAPIError(w, apierror.Unauthorized("Missing or invalid authorization header"))
			return
		}

		user, err := m.verifier.Verify(r.Context(), tokenString)
		if err != nil {
			writeAPIError(w, apierror.Unauthorized("Invalid or expired token"))
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) RequireRoles(allowedRoles ...string) func(http.Handler) http.Handler {
	roleSet := map[string]struct{}{}
	for _, role := range allowedRoles {
		roleSet[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				writeAPIError(w, apierror.Unauthorized("Authentication required"))
				return
			}

			if _, allowed := roleSet[strings.ToLower(user.Role)]; !allowed {
				writeAPIError(w, apierror.Forbidden("Access denied"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func UserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userContextKey).(model.User)
	return user, ok
}

// BearerToken extracts the token from an Authorization: Bearer header.
func BearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return "", false
	}

	tokenString := strings.TrimSpace(header[7:])
	return tokenString, tokenString != ""
}
