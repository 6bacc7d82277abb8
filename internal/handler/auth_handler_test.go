package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guidanceoffice/discipline-backend/internal/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEndpoint(t *testing.T) {
	r, db := newTestEnv()

	w, env := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"email":    "guidance@school.edu",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var data struct {
		User struct {
			ID    int    `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	decodeData(t, env, &data)
	assert.NotZero(t, data.User.ID)
	assert.Equal(t, "guidance@school.edu", data.User.Email)
	assert.Equal(t, 1, db.UserCount())

	// Password hash must never leave the server.
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRegisterEndpoint_DuplicateEmail(t *testing.T) {
	r, db := newTestEnv()

	body := gin.H{"email": "guidance@school.edu", "password": "secret123"}
	w, _ := doJSON(t, r, http.MethodPost, "/auth/register", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(t, r, http.MethodPost, "/auth/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.ErrDuplicateEmail, env.Error.Code)
	assert.Equal(t, 1, db.UserCount())
}

func TestRegisterEndpoint_Validation(t *testing.T) {
	r, _ := newTestEnv()

	w, env := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.ErrValidation, env.Error.Code)
	assert.Contains(t, env.Error.Fields, "email")
	assert.Contains(t, env.Error.Fields, "password")
}

func TestLoginEndpoint(t *testing.T) {
	r, _ := newTestEnv()

	w, _ := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"email":    "guidance@school.edu",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"email":    "guidance@school.edu",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	decodeData(t, env, &data)
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "guidance@school.edu", data.User.Email)
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	r, _ := newTestEnv()

	w, _ := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"email":    "guidance@school.edu",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Wrong password and unknown account must be indistinguishable.
	for _, body := range []gin.H{
		{"email": "guidance@school.edu", "password": "wrong-pass"},
		{"email": "nobody@school.edu", "password": "secret123"},
	} {
		w, env := doJSON(t, r, http.MethodPost, "/auth/login", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, response.ErrInvalidCredentials, env.Error.Code)
	}
}
