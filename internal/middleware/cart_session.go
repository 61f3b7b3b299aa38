package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CtxCartSessionKey = "cart_session" // string

	cartSessionCookie = "cart_session"
	cartSessionTTL    = 30 * 24 * time.Hour
)

// カートのセッションIDをCookieで配る。初回アクセスで発行する。
func CartSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sessionID string

			cookie, err := c.Cookie(cartSessionCookie)
			if err == nil && cookie.Value != "" {
				sessionID = cookie.Value
			} else {
				sessionID = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     cartSessionCookie,
					Value:    sessionID,
					Path:     "/",
					Expires:  time.Now().Add(cartSessionTTL),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(CtxCartSessionKey, sessionID)
			return next(c)
		}
	}
}
