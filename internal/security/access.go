package security

import (
	"auth-service/internal/apperr"
	"auth-service/internal/model"
	"net/http"
	"slices"
)

// Authorize : роль из claims входит в список разрешенных.
// Без ввода-вывода, subject не учитывается
func Authorize(claims *model.Claims, allowed []model.Role) bool {
	if claims == nil {
		return false
	}
	return slices.Contains(allowed, claims.Role)
}

// RequireRoles : 401 без claims, 403 если роль не разрешена.
// Ставится после AuthenticateAccess
func RequireRoles(writeError ErrorWriter, roles ...model.Role) func(http.Handler) http.Handler {
	allowed := slices.Clone(roles)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := AccessClaimsFromContext(r.Context())
			if !ok {
				writeError(w, r, apperr.ErrInvalidCredential)
				return
			}

			if !Authorize(claims, allowed) {
				writeError(w, r, apperr.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
