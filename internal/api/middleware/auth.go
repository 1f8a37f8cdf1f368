package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/backoffice/user-admin-api/internal/core/domain"
)

// Auth validates the bearer JWT and injects the Actor into the Echo context.
// The perms claim carries the effective permission names computed at login.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("actor", actorFromClaims(claims))
			return next(c)
		}
	}
}

func actorFromClaims(claims jwt.MapClaims) domain.Actor {
	actor := domain.Actor{}
	actor.ID, _ = claims["sub"].(string)
	actor.Email, _ = claims["email"].(string)
	actor.Name, _ = claims["name"].(string)

	if raw, ok := claims["perms"].([]interface{}); ok {
		perms := make([]string, 0, len(raw))
		for _, p := range raw {
			if s, ok := p.(string); ok {
				perms = append(perms, s)
			}
		}
		actor.Permissions = perms
	}
	return actor
}
