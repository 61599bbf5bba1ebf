package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/secure_notes/internal/models"
	"github.com/Skotchmaster/secure_notes/internal/repo"
	"github.com/Skotchmaster/secure_notes/internal/service"
)

const userContextKey = "current_user"

type RequireAuth struct {
	Tokens *service.TokenService
	Repo   *repo.GormRepo
}

func New(tokens *service.TokenService, r *repo.GormRepo) *RequireAuth {
	return &RequireAuth{Tokens: tokens, Repo: r}
}

// Middleware resolves the bearer access token into the full user record and
// stores it in the request context. Every failure mode is the same 401: a
// refresh token in the access slot, a forged or expired token, or a user
// deleted after issuance.
func (m *RequireAuth) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		userID, err := m.Tokens.DecodeAccess(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		user, err := m.Repo.GetUserByID(c.Request().Context(), userID)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

func bearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// CurrentUser returns the identity resolved by Middleware. Handlers behind the
// middleware may assume it is non-nil.
func CurrentUser(c echo.Context) *models.User {
	if u, ok := c.Get(userContextKey).(*models.User); ok {
		return u
	}
	return nil
}
