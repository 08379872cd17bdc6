package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/artkulinaria/staffing-backoffice/internal/core/ports"
)

// ctxActor extracts the actor injected by the Auth middleware and
// performs a fast-fail check before any service call: the role claim
// must be non-empty (presence proves the middleware ran).
func ctxActor(c echo.Context) (ports.Actor, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	id, _ := c.Get("actor_id").(string)
	name, _ := c.Get("actor_name").(string)

	return ports.Actor{ID: id, Name: name, Role: role}, nil
}
