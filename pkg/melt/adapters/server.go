// Package adapters mounts a melt Dispatcher on third-party HTTP servers. Each
// adapter forwards every request it receives to the dispatcher, which performs
// its own route lookup.
package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/melt-go/melt/pkg/melt"
)

// Server is a host HTTP server that can serve a melt Dispatcher
type Server interface {
	// Mount forwards every request to d
	Mount(d *melt.Dispatcher)

	// Start listens on addr and blocks until the server stops
	Start(addr string) error

	// Stop shuts the server down gracefully
	Stop(ctx context.Context) error

	// Name returns the adapter name
	Name() string

	// Handler returns the server as a net/http handler, for tests and embedding
	Handler() http.Handler
}

// Engines lists the names accepted by NewServer
var Engines = []string{"echo", "gin", "fiber", "chi"}

// NewServer creates a default-configured adapter for the named engine
func NewServer(engine string) (Server, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "echo", "":
		return NewDefaultEchoAdapter(), nil
	case "gin":
		return NewDefaultGinAdapter(), nil
	case "fiber":
		return NewDefaultFiberAdapter(), nil
	case "chi":
		return NewDefaultChiAdapter(), nil
	default:
		return nil, fmt.Errorf("unknown engine %q, expected one of %s", engine, strings.Join(Engines, ", "))
	}
}

func dispatchHTTP(d *melt.Dispatcher, r *http.Request, query url.Values) melt.Result {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return melt.Result{
			Status:      http.StatusInternalServerError,
			Body:        "Internal Server Error: " + err.Error(),
			ContentType: melt.ContentTypeText,
		}
	}
	return d.Dispatch(&melt.Request{
		Context: r.Context(),
		Method:  r.Method,
		Path:    r.URL.Path,
		Query:   query,
		Body:    string(body),
	})
}

// httpServer wraps a handler in an http.Server so engines without their own
// shutdown support can stop gracefully. A stop that lands before start keeps
// the server from ever serving.
type httpServer struct {
	mu      sync.Mutex
	server  *http.Server
	stopped bool
}

func (s *httpServer) start(addr string, h http.Handler) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	srv := &http.Server{Addr: addr, Handler: h}
	s.server = srv
	s.mu.Unlock()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *httpServer) stop(ctx context.Context) error {
	s.mu.Lock()
	s.stopped = true
	srv := s.server
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
