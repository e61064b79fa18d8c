package gateway

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HeaderUserName carries the verified caller identity to upstream services.
// The filter always strips the inbound value first, so upstreams can trust
// it was set here and nowhere else.
const HeaderUserName = "X-User-Name"

// TokenVerifier is the slice of the token service the filter needs.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// rejection mirrors the error body upstream services emit for edge
// failures, so clients parse one shape everywhere.
type rejection struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// Filter authenticates proxied requests. Public prefixes bypass
// verification entirely; everything else needs a valid bearer token before
// it is allowed near an upstream.
type Filter struct {
	verifier TokenVerifier
	public   []string
	logger   zerolog.Logger
}

func NewFilter(verifier TokenVerifier, publicEndpoints []string, logger zerolog.Logger) *Filter {
	return &Filter{verifier: verifier, public: publicEndpoints, logger: logger}
}

func (f *Filter) Public(path string) bool {
	for _, prefix := range f.public {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Authenticate verifies the request for a protected route and stamps the
// caller identity header. It reports false after writing the rejection, in
// which case the request must not be forwarded.
func (f *Filter) Authenticate(c *gin.Context) bool {
	c.Request.Header.Del(HeaderUserName)

	if f.Public(c.Request.URL.Path) {
		return true
	}

	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		f.reject(c, "missing or malformed authorization header")
		return false
	}

	subject, err := f.verifier.Verify(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		f.logger.Warn().
			Str("path", c.Request.URL.Path).
			Msg("rejected request with invalid token")
		f.reject(c, "token is invalid or expired")
		return false
	}

	c.Request.Header.Set(HeaderUserName, subject)
	return true
}

func (f *Filter) reject(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, rejection{
		Timestamp: time.Now().UTC(),
		Status:    http.StatusUnauthorized,
		Error:     http.StatusText(http.StatusUnauthorized),
		Message:   message,
		Path:      c.Request.URL.Path,
	})
}
