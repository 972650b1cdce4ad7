package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxActor extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: role must be
// non-empty (presence proves the middleware ran). Email may be empty for
// legacy tokens; handlers that stamp the acting actor tolerate that.
func ctxActor(c echo.Context) (role, email string, err error) {
	role, _ = c.Get("role").(string)
	if role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ = c.Get("email").(string)
	return role, email, nil
}
