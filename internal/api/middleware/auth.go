package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SessionCookie is the name of the httponly session cookie, the primary token
// transport. The Authorization header is kept as a legacy path for API
// clients that predate the cookie scheme.
const SessionCookie = "sid"

// Context keys set on successful verification.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// Auth validates the session token and injects the principal into context.
// A missing credential yields 401; a present but invalid or expired one
// yields 403.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusForbidden, "invalid or expired session token")
			}

			c.Set(CtxUserID, claims["sub"])
			c.Set(CtxRole, claims["role"])

			return next(c)
		}
	}
}

// tokenFromRequest prefers the session cookie and falls back to a bearer
// Authorization header.
func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
