package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/forceboard-dev/forceboard/db"
	"github.com/forceboard-dev/forceboard/internal/auth"
	"github.com/forceboard-dev/forceboard/internal/config"
	"github.com/forceboard-dev/forceboard/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupServer wires the full router against a fresh in-memory database with
// foreign keys enforced, so cascade and check behavior is exercised for real.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	require.NoError(t, auth.InitJWTSecret("test-secret"))

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	db.DB = gdb
	require.NoError(t, db.MigrateDatabase())

	cfg := &config.Config{
		AllowedOrigins: []string{"http://localhost:3000"},
	}

	return router.NewRouter(cfg)
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// registerUser creates an account through the API and returns its token.
func registerUser(t *testing.T, r *gin.Engine, name, email string) string {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.Token)

	return resp.Token
}

// createProject returns the new project's id.
func createProject(t *testing.T, r *gin.Engine, token, name string) uint {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/projects", token, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID uint `json:"id"`
	}
	decodeBody(t, w, &resp)
	return resp.ID
}

func createInterview(t *testing.T, r *gin.Engine, token string, projectID uint, participant string, age *int) uint {
	t.Helper()

	body := gin.H{"participant_name": participant}
	if age != nil {
		body["participant_age"] = *age
	}

	w := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/interviews", projectID), token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID uint `json:"id"`
	}
	decodeBody(t, w, &resp)
	return resp.ID
}

func createStory(t *testing.T, r *gin.Engine, token string, interviewID uint, title string) uint {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/interviews/%d/stories", interviewID), token, gin.H{
		"title":       title,
		"situation_a": "current situation",
		"situation_b": "desired situation",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID uint `json:"id"`
	}
	decodeBody(t, w, &resp)
	return resp.ID
}

func createForce(t *testing.T, r *gin.Engine, token string, storyID uint, forceType, description string) uint {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/stories/%d/forces", storyID), token, gin.H{
		"type":        forceType,
		"description": description,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID uint `json:"id"`
	}
	decodeBody(t, w, &resp)
	return resp.ID
}

func createGroup(t *testing.T, r *gin.Engine, token string, projectID uint, name, groupType string, leftover bool) uint {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/groups", projectID), token, gin.H{
		"name":        name,
		"type":        groupType,
		"is_leftover": leftover,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID uint `json:"id"`
	}
	decodeBody(t, w, &resp)
	return resp.ID
}

func intPtr(v int) *int {
	return &v
}
