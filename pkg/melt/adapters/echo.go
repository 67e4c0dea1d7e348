package adapters

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/melt-go/melt/pkg/melt"
)

// EchoAdapter serves a Dispatcher from Echo v4
type EchoAdapter struct {
	engine *echo.Echo
}

// NewEchoAdapter creates a new Echo adapter
func NewEchoAdapter(e *echo.Echo) *EchoAdapter {
	return &EchoAdapter{engine: e}
}

// NewDefaultEchoAdapter creates a new Echo adapter with default Echo instance
func NewDefaultEchoAdapter() *EchoAdapter {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	return &EchoAdapter{engine: e}
}

// Mount forwards every request to d
func (ea *EchoAdapter) Mount(d *melt.Dispatcher) {
	MountEcho(ea.engine, d)
}

// Start starts the server
func (ea *EchoAdapter) Start(addr string) error {
	if err := ea.engine.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop stops the server
func (ea *EchoAdapter) Stop(ctx context.Context) error {
	return ea.engine.Shutdown(ctx)
}

// Name returns the adapter name
func (ea *EchoAdapter) Name() string {
	return "Echo"
}

// Handler returns the Echo instance
func (ea *EchoAdapter) Handler() http.Handler {
	return ea.engine
}

// GetEngine returns the underlying Echo instance
func (ea *EchoAdapter) GetEngine() *echo.Echo {
	return ea.engine
}

// MountEcho registers a catch-all route on e that forwards to d
func MountEcho(e *echo.Echo, d *melt.Dispatcher) {
	handler := func(c echo.Context) error {
		res := dispatchHTTP(d, c.Request(), c.QueryParams())
		return c.Blob(res.Status, res.ContentType, []byte(res.Body))
	}
	e.Any("/", handler)
	e.Any("/*", handler)
}
