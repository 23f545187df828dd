package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUsername returns the username the Auth middleware stored on the context.
// An empty value means the middleware did not run or the token was malformed.
func ctxUsername(c echo.Context) (string, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return username, nil
}
