package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/secure_notes/internal/middleware/auth"
)

type Deps struct {
	AuthHandler *AuthHTTP
	NoteHandler *NoteHTTP
	Auth        *auth.RequireAuth
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "Healthy"})
	})

	authGroup := e.Group("/auth")
	authGroup.POST("/signup", d.AuthHandler.Signup)
	authGroup.POST("/login", d.AuthHandler.Login)
	authGroup.POST("/refresh", d.AuthHandler.Refresh)

	notes := e.Group("/notes", d.Auth.Middleware)
	notes.GET("", d.NoteHandler.List)
	notes.POST("", d.NoteHandler.Create)
	if d.NoteHandler.Svc.Searchable() {
		notes.GET("/search", d.NoteHandler.Search)
	}
	notes.GET("/:id", d.NoteHandler.Get)
	notes.PUT("/:id", d.NoteHandler.Update)
	notes.DELETE("/:id", d.NoteHandler.Delete)
}
