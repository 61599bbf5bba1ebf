package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	authmw "github.com/Skotchmaster/secure_notes/internal/middleware/auth"
	"github.com/Skotchmaster/secure_notes/internal/models"
	"github.com/Skotchmaster/secure_notes/internal/repo"
	"github.com/Skotchmaster/secure_notes/internal/service"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Note{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	r := repo.New(db)
	tokens := service.NewTokenService([]byte("test-secret"), 30*time.Minute, 7*24*time.Hour)
	authSvc := &service.AuthService{Repo: r, Tokens: tokens}
	noteSvc := &service.NoteService{Repo: r}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler: &AuthHTTP{Svc: authSvc},
		NoteHandler: &NoteHTTP{Svc: noteSvc},
		Auth:        authmw.New(tokens, r),
	})

	return &testEnv{T: t, E: e, DB: db}
}

func (env *testEnv) doJSON(method, path, token string, payload any) *httptest.ResponseRecorder {
	env.T.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(env.T, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) signup(email, password string) *httptest.ResponseRecorder {
	return env.doJSON("POST", "/auth/signup", "", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (env *testEnv) login(email, password string) (*httptest.ResponseRecorder, service.TokenPair) {
	rec := env.doJSON("POST", "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})

	var pair service.TokenPair
	if rec.Code == 200 {
		require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &pair))
	}
	return rec, pair
}
