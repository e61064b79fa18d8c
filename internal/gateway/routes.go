package gateway

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/careops/hospital-platform/internal/config"
)

// Route binds a path prefix to an upstream service.
type Route struct {
	Prefix       string
	Target       *url.URL
	AuthRequired bool
}

// Table is the ordered route list. Match walks it top to bottom and the
// first prefix hit wins, so operators list specific prefixes before broad
// ones.
type Table struct {
	routes []Route
}

func NewTable(cfg config.GatewayConfig) (*Table, error) {
	routes := make([]Route, 0, len(cfg.Routes))
	for _, rc := range cfg.Routes {
		target, err := url.Parse(rc.Target)
		if err != nil {
			return nil, fmt.Errorf("invalid route target %q: %w", rc.Target, err)
		}
		if target.Scheme == "" || target.Host == "" {
			return nil, fmt.Errorf("route target %q must be an absolute URL", rc.Target)
		}
		routes = append(routes, Route{
			Prefix:       rc.Prefix,
			Target:       target,
			AuthRequired: rc.AuthRequired,
		})
	}
	return &Table{routes: routes}, nil
}

func (t *Table) Match(path string) (*Route, bool) {
	for i := range t.routes {
		if strings.HasPrefix(path, t.routes[i].Prefix) {
			return &t.routes[i], true
		}
	}
	return nil, false
}

func (t *Table) Routes() []Route {
	return t.routes
}
