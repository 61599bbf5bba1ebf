package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/secure_notes/internal/logging"
	"github.com/Skotchmaster/secure_notes/internal/middleware/auth"
	"github.com/Skotchmaster/secure_notes/internal/repo"
	"github.com/Skotchmaster/secure_notes/internal/service"
	"github.com/Skotchmaster/secure_notes/internal/util"
)

const maxTitleLen = 200

type NoteHTTP struct {
	Svc *service.NoteService
}

type createNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type updateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (h *NoteHTTP) List(c echo.Context) error {
	user := auth.CurrentUser(c)

	limit := parseIntDefault(c.QueryParam("limit"), util.DefaultLimit)
	offset := parseIntDefault(c.QueryParam("offset"), 0)
	limit, offset = util.Clamp(limit, offset)

	notes, err := h.Svc.List(c.Request().Context(), user.ID, c.QueryParam("q"), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list notes")
	}

	return c.JSON(http.StatusOK, notes)
}

func (h *NoteHTTP) Create(c echo.Context) error {
	user := auth.CurrentUser(c)

	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Title == nil || req.Content == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "title and content required")
	}
	if len(*req.Title) > maxTitleLen {
		return echo.NewHTTPError(http.StatusBadRequest, "title must be at most 200 characters")
	}

	note, err := h.Svc.Create(c.Request().Context(), user.ID, *req.Title, *req.Content)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create note")
	}

	return c.JSON(http.StatusCreated, note)
}

func (h *NoteHTTP) Get(c echo.Context) error {
	user := auth.CurrentUser(c)

	id, err := noteID(c)
	if err != nil {
		return err
	}

	note, err := h.Svc.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return noteError(err)
	}

	return c.JSON(http.StatusOK, note)
}

func (h *NoteHTTP) Update(c echo.Context) error {
	user := auth.CurrentUser(c)

	id, err := noteID(c)
	if err != nil {
		return err
	}

	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Title != nil && len(*req.Title) > maxTitleLen {
		return echo.NewHTTPError(http.StatusBadRequest, "title must be at most 200 characters")
	}

	note, err := h.Svc.Update(c.Request().Context(), user.ID, id, req.Title, req.Content)
	if err != nil {
		return noteError(err)
	}

	return c.JSON(http.StatusOK, note)
}

func (h *NoteHTTP) Delete(c echo.Context) error {
	user := auth.CurrentUser(c)

	id, err := noteID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(c.Request().Context(), user.ID, id); err != nil {
		return noteError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Search serves the Elasticsearch-backed endpoint. Deployments without ES get
// a 404 route-not-registered instead; see router.go.
func (h *NoteHTTP) Search(c echo.Context) error {
	user := auth.CurrentUser(c)

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query required")
	}

	limit := parseIntDefault(c.QueryParam("limit"), util.DefaultLimit)
	offset := parseIntDefault(c.QueryParam("offset"), 0)
	limit, offset = util.Clamp(limit, offset)

	total, notes, err := h.Svc.Search(c.Request().Context(), user.ID, q, offset, limit)
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("search_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "notes": notes})
}

func noteID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Note not found")
	}
	return uint(id), nil
}

func noteError(err error) error {
	if errors.Is(err, repo.ErrNoteNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Note not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "note operation failed")
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
