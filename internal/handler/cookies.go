package handler

import (
	"auth-service/config"
	"auth-service/internal/model"
	"auth-service/internal/security"
	"net/http"
	"time"
)

// CookieWriter : доставка токенов клиенту через cookie
type CookieWriter struct {
	domain     string
	secure     bool
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewCookieWriter(cookieCfg *config.CookieConfig, jwtCfg *config.JWTConfig) *CookieWriter {
	return &CookieWriter{
		domain:     cookieCfg.Domain,
		secure:     cookieCfg.Secure,
		accessTTL:  jwtCfg.AccessTTL(),
		refreshTTL: jwtCfg.RefreshTTL(),
	}
}

func (c *CookieWriter) SetTokens(w http.ResponseWriter, tokens *model.TokensPair) {
	http.SetCookie(w, c.cookie(security.AccessTokenCookie, tokens.AccessToken, int(c.accessTTL.Seconds())))
	http.SetCookie(w, c.cookie(security.RefreshTokenCookie, tokens.RefreshToken, int(c.refreshTTL.Seconds())))
}

// Clear : Max-Age < 0, браузер удаляет обе cookie
func (c *CookieWriter) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie(security.AccessTokenCookie, "", -1))
	http.SetCookie(w, c.cookie(security.RefreshTokenCookie, "", -1))
}

func (c *CookieWriter) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	}
}
