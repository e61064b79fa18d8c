package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/hospital-platform/internal/config"
	"github.com/careops/hospital-platform/pkg/token"
)

type countingVerifier struct {
	subject string
	err     error
	calls   int
}

func (v *countingVerifier) Verify(string) (string, error) {
	v.calls++
	return v.subject, v.err
}

func newTestProxy(t *testing.T, target string, verifier TokenVerifier, public []string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	table, err := NewTable(config.GatewayConfig{
		Routes: []config.RouteConfig{
			{Prefix: "/api/", Target: target, AuthRequired: true},
			{Prefix: "/open/", Target: target, AuthRequired: false},
		},
	})
	require.NoError(t, err)

	filter := NewFilter(verifier, public, zerolog.Nop())
	proxy := NewProxy(table, filter, zerolog.Nop())

	engine := gin.New()
	engine.NoRoute(proxy.Handle)
	return engine
}

// doThrough serves the engine for real so forwarded requests carry a
// cancellable context, which ReverseProxy requires.
func doThrough(t *testing.T, engine *gin.Engine, method, path string, headers map[string]string) *http.Response {
	t.Helper()

	gw := httptest.NewServer(engine)
	t.Cleanup(gw.Close)

	req, err := http.NewRequest(method, gw.URL+path, nil)
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestMissingTokenNeverReachesUpstream(t *testing.T) {
	hits := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer upstream.Close()

	verifier := &countingVerifier{}
	engine := newTestProxy(t, upstream.URL, verifier, nil)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/patients/1", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, hits)

	var body struct {
		Timestamp time.Time `json:"timestamp"`
		Status    int       `json:"status"`
		Error     string    `json:"error"`
		Message   string    `json:"message"`
		Path      string    `json:"path"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusUnauthorized, body.Status)
	assert.Equal(t, "Unauthorized", body.Error)
	assert.Equal(t, "/api/patients/1", body.Path)
	assert.NotEmpty(t, body.Message)
	assert.False(t, body.Timestamp.IsZero())
}

func TestInvalidTokenRejected(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be reached")
	}))
	defer upstream.Close()

	engine := newTestProxy(t, upstream.URL, &countingVerifier{err: token.ErrInvalidToken}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/patients/1", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifiedIdentityForwarded(t *testing.T) {
	var gotUser string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = r.Header.Get(HeaderUserName)
	}))
	defer upstream.Close()

	engine := newTestProxy(t, upstream.URL, &countingVerifier{subject: "alice"}, nil)

	// A spoofed inbound identity must be replaced, not passed through.
	resp := doThrough(t, engine, http.MethodGet, "/api/patients/1", map[string]string{
		"Authorization": "Bearer good",
		HeaderUserName:  "mallory",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", gotUser)
}

func TestPublicPrefixSkipsVerifier(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer upstream.Close()

	verifier := &countingVerifier{err: token.ErrInvalidToken}
	engine := newTestProxy(t, upstream.URL, verifier, []string{"/api/public/"})

	resp := doThrough(t, engine, http.MethodGet, "/api/public/info", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, verifier.calls)
}

func TestUnauthenticatedRouteStripsIdentity(t *testing.T) {
	var gotUser string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = r.Header.Get(HeaderUserName)
	}))
	defer upstream.Close()

	engine := newTestProxy(t, upstream.URL, &countingVerifier{}, nil)

	resp := doThrough(t, engine, http.MethodGet, "/open/catalog", map[string]string{
		HeaderUserName: "mallory",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, gotUser)
}

func TestUnmatchedPathIs404(t *testing.T) {
	engine := newTestProxy(t, "http://localhost:1", &countingVerifier{}, nil)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTableFirstMatchWins(t *testing.T) {
	table, err := NewTable(config.GatewayConfig{
		Routes: []config.RouteConfig{
			{Prefix: "/api/patients/reports", Target: "http://reports:9000"},
			{Prefix: "/api/patients", Target: "http://patients:8081"},
		},
	})
	require.NoError(t, err)

	route, ok := table.Match("/api/patients/reports/2024")
	require.True(t, ok)
	assert.Equal(t, "http://reports:9000", route.Target.String())

	route, ok = table.Match("/api/patients/42")
	require.True(t, ok)
	assert.Equal(t, "http://patients:8081", route.Target.String())

	_, ok = table.Match("/api/invoices")
	assert.False(t, ok)
}

func TestTableRejectsRelativeTarget(t *testing.T) {
	_, err := NewTable(config.GatewayConfig{
		Routes: []config.RouteConfig{{Prefix: "/api/", Target: "patients:8081"}},
	})
	assert.Error(t, err)
}
