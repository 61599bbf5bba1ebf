package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/secure_notes/internal/models"
	"github.com/Skotchmaster/secure_notes/internal/service"
)

func TestSignup(t *testing.T) {
	env := newTestEnv(t)

	rec := env.signup("a@x.com", "longenough1")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "User created", resp["message"])

	var user models.User
	require.NoError(t, env.DB.Where("email = ?", "a@x.com").First(&user).Error)
	require.NotEqual(t, "longenough1", user.PasswordHash)
}

func TestSignup_Validation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.signup("not-an-email", "longenough1")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.signup("a@x.com", "short")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	require.NoError(t, env.DB.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count, "no user persists for rejected input")
}

func TestSignup_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	rec := env.signup("a@x.com", "longenough1")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.signup("a@x.com", "otherpassword")
	require.Equal(t, http.StatusConflict, rec.Code)

	var count int64
	require.NoError(t, env.DB.Model(&models.User{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusCreated, env.signup("a@x.com", "longenough1").Code)

	rec, pair := env.login("a@x.com", "longenough1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, "bearer", pair.TokenType)
}

func TestLogin_SameStatusForUnknownEmailAndWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusCreated, env.signup("a@x.com", "longenough1").Code)

	recUnknown, _ := env.login("nobody@x.com", "longenough1")
	recWrongPw, _ := env.login("a@x.com", "wrongpassword")

	require.Equal(t, http.StatusUnauthorized, recUnknown.Code)
	require.Equal(t, http.StatusUnauthorized, recWrongPw.Code)
	require.Equal(t, recUnknown.Body.String(), recWrongPw.Body.String())
}

func TestRefresh(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusCreated, env.signup("a@x.com", "longenough1").Code)
	_, pair := env.login("a@x.com", "longenough1")

	rec := env.doJSON("POST", "/auth/refresh", "", map[string]string{
		"refresh_token": pair.RefreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var newPair service.TokenPair
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &newPair))
	require.NotEmpty(t, newPair.AccessToken)
	require.NotEmpty(t, newPair.RefreshToken)

	// rotation without invalidation: the old refresh token still works
	rec = env.doJSON("POST", "/auth/refresh", "", map[string]string{
		"refresh_token": pair.RefreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusCreated, env.signup("a@x.com", "longenough1").Code)
	_, pair := env.login("a@x.com", "longenough1")

	rec := env.doJSON("POST", "/auth/refresh", "", map[string]string{
		"refresh_token": pair.AccessToken,
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefresh_UserDeleted(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusCreated, env.signup("a@x.com", "longenough1").Code)
	_, pair := env.login("a@x.com", "longenough1")

	require.NoError(t, env.DB.Where("email = ?", "a@x.com").Delete(&models.User{}).Error)

	rec := env.doJSON("POST", "/auth/refresh", "", map[string]string{
		"refresh_token": pair.RefreshToken,
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefresh_MissingBody(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON("POST", "/auth/refresh", "", map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
