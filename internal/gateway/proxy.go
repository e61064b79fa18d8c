package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Proxy forwards matched requests to their upstream service, running the
// auth filter first for protected routes.
type Proxy struct {
	table   *Table
	filter  *Filter
	proxies map[string]*httputil.ReverseProxy
	logger  zerolog.Logger
}

func NewProxy(table *Table, filter *Filter, logger zerolog.Logger) *Proxy {
	proxies := make(map[string]*httputil.ReverseProxy)
	for _, route := range table.Routes() {
		key := route.Target.String()
		if _, ok := proxies[key]; ok {
			continue
		}
		proxies[key] = newReverseProxy(route.Target, logger)
	}
	return &Proxy{table: table, filter: filter, proxies: proxies, logger: logger}
}

// Handle is the catch-all for requests no local route claimed.
func (p *Proxy) Handle(c *gin.Context) {
	path := c.Request.URL.Path

	route, ok := p.table.Match(path)
	if !ok {
		c.JSON(http.StatusNotFound, rejection{
			Timestamp: time.Now().UTC(),
			Status:    http.StatusNotFound,
			Error:     http.StatusText(http.StatusNotFound),
			Message:   "no route for path",
			Path:      path,
		})
		return
	}

	if route.AuthRequired {
		if !p.filter.Authenticate(c) {
			return
		}
	} else {
		// Unauthenticated routes still never carry a spoofed identity.
		c.Request.Header.Del(HeaderUserName)
	}

	p.proxies[route.Target.String()].ServeHTTP(c.Writer, c.Request)
}

func newReverseProxy(target *url.URL, logger zerolog.Logger) *httputil.ReverseProxy {
	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error().Err(err).
			Str("target", target.String()).
			Str("path", r.URL.Path).
			Msg("upstream request failed")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_ = writeJSON(w, rejection{
			Timestamp: time.Now().UTC(),
			Status:    http.StatusBadGateway,
			Error:     http.StatusText(http.StatusBadGateway),
			Message:   "upstream service unavailable",
			Path:      r.URL.Path,
		})
	}
	return proxy
}

func writeJSON(w http.ResponseWriter, v interface{}) error {
	return json.NewEncoder(w).Encode(v)
}
