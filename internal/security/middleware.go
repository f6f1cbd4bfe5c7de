package security

import (
	"auth-service/internal/apperr"
	"auth-service/internal/model"
	"auth-service/internal/ports"
	"context"
	"fmt"
	"net/http"
	"strings"
)

type contextKey string

const (
	accessClaimsKey  contextKey = "accessClaims"
	refreshClaimsKey contextKey = "refreshClaims"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// ErrorWriter : централизованная запись ошибки, см. util.WriteError
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// RecordLiveness : проверка, что запись refresh токена еще существует
// и принадлежит subject токена
type RecordLiveness interface {
	ConfirmLive(ctx context.Context, recordID, userID int64) (bool, error)
}

// AuthenticateAccess : достает access токен из cookie (или заголовка Authorization),
// проверяет его и кладет claims в контекст
func AuthenticateAccess(verifier ports.TokenVerifier, writeError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := verifier.Verify(accessTokenFromRequest(r))
			if err != nil {
				writeError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAccessClaims(r.Context(), claims)))
		})
	}
}

// ParseRefresh : проверяет только подпись и срок refresh токена из cookie
func ParseRefresh(verifier ports.TokenVerifier, writeError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := verifier.Verify(cookieValue(r, RefreshTokenCookie))
			if err != nil {
				writeError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithRefreshClaims(r.Context(), claims)))
		})
	}
}

// ValidateRefresh : ParseRefresh плюс проверка, что запись не удалена.
// Токен с верной подписью, но без записи, считается отозванным
func ValidateRefresh(verifier ports.TokenVerifier, liveness RecordLiveness, writeError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ParseRefresh(verifier, writeError)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, _ := RefreshClaimsFromContext(r.Context())

			live, err := liveness.ConfirmLive(r.Context(), claims.RefreshRecordID, claims.Subject)
			if err != nil {
				writeError(w, r, err)
				return
			}
			if !live {
				writeError(w, r, fmt.Errorf("%w: refresh record %d revoked", apperr.ErrInvalidCredential, claims.RefreshRecordID))
				return
			}

			next.ServeHTTP(w, r)
		}))
	}
}

func accessTokenFromRequest(r *http.Request) string {
	if token := cookieValue(r, AccessTokenCookie); token != "" {
		return token
	}

	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func WithAccessClaims(ctx context.Context, claims *model.Claims) context.Context {
	return context.WithValue(ctx, accessClaimsKey, claims)
}

func WithRefreshClaims(ctx context.Context, claims *model.Claims) context.Context {
	return context.WithValue(ctx, refreshClaimsKey, claims)
}

func AccessClaimsFromContext(ctx context.Context) (*model.Claims, bool) {
	claims, ok := ctx.Value(accessClaimsKey).(*model.Claims)
	return claims, ok && claims != nil
}

func RefreshClaimsFromContext(ctx context.Context) (*model.Claims, bool) {
	claims, ok := ctx.Value(refreshClaimsKey).(*model.Claims)
	return claims, ok && claims != nil
}
