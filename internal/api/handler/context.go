package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/backoffice/user-admin-api/internal/core/domain"
)

// ctxActor extracts the actor injected by the Auth middleware and performs a
// fast-fail check before any service call: a populated ID proves the
// middleware ran and the token carried a subject.
func ctxActor(c echo.Context) (domain.Actor, error) {
	actor, ok := c.Get("actor").(domain.Actor)
	if !ok || actor.ID == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}
