// Package module mounts self-contained HTTP surfaces under path prefixes.
// Each module carries its own router and middleware stack; the router
// dispatches by first path segment and falls back to a native mux.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/aeolab/beacon/pkg/middleware"
)

// Module is an HTTP handler mounted at a single-level prefix. Requests are
// dispatched to the inner router with the prefix stripped.
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System
}

// New creates a Module at prefix (e.g. "/api"). Panics on an empty,
// unrooted, or multi-level prefix; mounting is a wiring error, not a
// runtime condition.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
	}
}

// Prefix returns the module's mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use adds middleware to the module's stack.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
}

// Handler returns the inner router wrapped in the module's middleware.
func (m *Module) Handler() http.Handler {
	return m.middleware.Apply(m.router)
}

// Serve strips the mount prefix and dispatches to the inner router.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	inner := req.Clone(req.Context())
	inner.URL = new(url.URL)
	*inner.URL = *req.URL
	inner.URL.Path = stripPrefix(req.URL.Path, m.prefix)
	inner.URL.RawPath = ""

	m.Handler().ServeHTTP(w, inner)
}

func stripPrefix(path, prefix string) string {
	stripped := path[len(prefix):]
	if stripped == "" {
		return "/"
	}
	return stripped
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix cannot be empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	}
	if strings.Count(prefix, "/") != 1 {
		return fmt.Errorf("module prefix must be a single-level sub-path: %s", prefix)
	}
	return nil
}
