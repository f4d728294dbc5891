package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndMe(t *testing.T) {
	r := setupServer(t)

	w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "alex",
		"full_name": "Alex Petrov",
		"email":    "alex@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registered struct {
		Token string `json:"token"`
		User  struct {
			FullName string `json:"full_name"`
			Role     string `json:"role"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	decodeBody(t, w, &registered)

	assert.Equal(t, "Alex Petrov", registered.User.FullName)
	assert.Equal(t, "researcher", registered.User.Role)
	assert.Equal(t, "alex@example.com", registered.User.Email)

	w = doRequest(t, r, http.MethodGet, "/api/auth/me", registered.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me struct {
		User struct {
			FullName string `json:"full_name"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	decodeBody(t, w, &me)
	assert.Equal(t, "Alex Petrov", me.User.FullName)
	assert.Equal(t, "researcher", me.User.Role)
}

func TestRegister_ProfileNameFallsBackToEmail(t *testing.T) {
	r := setupServer(t)

	w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "jane.doe@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registered struct {
		User struct {
			FullName string `json:"full_name"`
		} `json:"user"`
	}
	decodeBody(t, w, &registered)
	assert.Equal(t, "jane.doe", registered.User.FullName)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r := setupServer(t)
	registerUser(t, r, "alex", "alex@example.com")

	w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "other",
		"email":    "alex@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	r := setupServer(t)
	registerUser(t, r, "alex", "alex@example.com")

	w := doRequest(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alex@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alex@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthRequired(t *testing.T) {
	r := setupServer(t)

	w := doRequest(t, r, http.MethodGet, "/api/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/projects", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
