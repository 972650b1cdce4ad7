package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/staffdesk/admin-api/internal/core/ports"
)

// Auth validates the JWT, rejects revoked tokens, and injects the session
// claims into context for downstream handlers.
func Auth(jwtSecret string, tokens ports.TokenStore) echo.MiddlewareFunc {
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

			// A logged-out token stays syntactically valid until expiry;
			// the revocation list is what actually ends the session.
			if tokens != nil {
				jti, _ := claims["jti"].(string)
				if jti != "" {
					revoked, err := tokens.IsRevoked(c.Request().Context(), jti)
					if err != nil {
						return echo.NewHTTPError(http.StatusUnauthorized, "session check failed")
					}
					if revoked {
						return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
					}
				}
			}

			c.Set("user_id", claims["sub"])
			c.Set("email", claims["email"])
			c.Set("role", claims["role"])
			c.Set("token", parts[1])

			return next(c)
		}
	}
}
