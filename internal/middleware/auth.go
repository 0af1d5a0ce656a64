package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const UserIDKey = "user_id"

// BearerAuth resolves the Authorization bearer token to a user id and stores
// it on the context. Unknown or missing tokens get the storefront's 401
// envelope.
func BearerAuth(resolve func(token string) (int64, bool)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]any{"success": false, "message": "missing token"})
			}
			userID, ok := resolve(token)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]any{"success": false, "message": "token expired"})
			}
			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}
