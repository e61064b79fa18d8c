package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/hospital-platform/internal/repository/memory"
	authservice "github.com/careops/hospital-platform/internal/service/auth"
	"github.com/careops/hospital-platform/pkg/security"
	"github.com/careops/hospital-platform/pkg/token"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hasher := security.NewBcryptHasher(4)
	store := memory.NewCredentialStore()
	require.NoError(t, store.Seed(map[string]string{"admin": "admin123"}, hasher))

	tokens := token.NewService("test-secret", time.Hour)
	svc := authservice.NewService(store, hasher, tokens, zerolog.Nop())

	engine := gin.New()
	NewHandler(svc).RegisterRoutes(engine)
	return engine
}

func postJSON(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

type authBody struct {
	Success bool `json:"success"`
	Data    struct {
		Token     string `json:"token"`
		Username  string `json:"username"`
		ExpiresIn int64  `json:"expiresIn"`
	} `json:"data"`
}

func TestLoginSuccess(t *testing.T) {
	engine := newTestRouter(t)

	w := postJSON(engine, "/auth/login", `{"username":"admin","password":"admin123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body authBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Data.Token)
	assert.Equal(t, "admin", body.Data.Username)
	assert.Greater(t, body.Data.ExpiresIn, int64(0))
}

func TestLoginWrongPassword(t *testing.T) {
	engine := newTestRouter(t)

	w := postJSON(engine, "/auth/login", `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	engine := newTestRouter(t)

	w := postJSON(engine, "/auth/login", `{"username":"ghost","password":"whatever"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginMissingFields(t *testing.T) {
	engine := newTestRouter(t)

	w := postJSON(engine, "/auth/login", `{"username":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterThenLogin(t *testing.T) {
	engine := newTestRouter(t)

	w := postJSON(engine, "/auth/register", `{"username":"nurse","password":"nurse123"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var body authBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Data.Token)

	w = postJSON(engine, "/auth/login", `{"username":"nurse","password":"nurse123"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	engine := newTestRouter(t)

	w := postJSON(engine, "/auth/register", `{"username":"admin","password":"another123"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterShortPassword(t *testing.T) {
	engine := newTestRouter(t)

	w := postJSON(engine, "/auth/register", `{"username":"shorty","password":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidate(t *testing.T) {
	engine := newTestRouter(t)

	w := postJSON(engine, "/auth/login", `{"username":"admin","password":"admin123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var body authBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	req := httptest.NewRequest(http.MethodPost, "/auth/validate", nil)
	req.Header.Set("Authorization", "Bearer "+body.Data.Token)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var verdict struct {
		Valid    bool   `json:"valid"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verdict))
	assert.True(t, verdict.Valid)
	assert.Equal(t, "admin", verdict.Username)
}

func TestValidateBadToken(t *testing.T) {
	engine := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/validate", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var verdict struct {
		Valid   bool   `json:"valid"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verdict))
	assert.False(t, verdict.Valid)
	assert.NotEmpty(t, verdict.Message)
}
