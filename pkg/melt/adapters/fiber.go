package adapters

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/melt-go/melt/pkg/melt"
)

// FiberAdapter serves a Dispatcher from Fiber v2
type FiberAdapter struct {
	app *fiber.App
}

// NewFiberAdapter creates a new Fiber adapter
func NewFiberAdapter(app *fiber.App) *FiberAdapter {
	return &FiberAdapter{app: app}
}

// NewDefaultFiberAdapter creates a new Fiber adapter with default configuration
func NewDefaultFiberAdapter() *FiberAdapter {
	return &FiberAdapter{app: fiber.New(fiber.Config{DisableStartupMessage: true})}
}

// Mount forwards every request to d
func (fa *FiberAdapter) Mount(d *melt.Dispatcher) {
	MountFiber(fa.app, d)
}

// Start starts the Fiber server
func (fa *FiberAdapter) Start(addr string) error {
	return fa.app.Listen(addr)
}

// Stop stops the Fiber server
func (fa *FiberAdapter) Stop(ctx context.Context) error {
	return fa.app.ShutdownWithContext(ctx)
}

// Name returns the adapter name
func (fa *FiberAdapter) Name() string {
	return "Fiber"
}

// Handler converts the Fiber app into a net/http handler
func (fa *FiberAdapter) Handler() http.Handler {
	return adaptor.FiberApp(fa.app)
}

// GetApp returns the underlying Fiber app
func (fa *FiberAdapter) GetApp() *fiber.App {
	return fa.app
}

// MountFiber registers a catch-all handler on app that forwards to d
func MountFiber(app *fiber.App, d *melt.Dispatcher) {
	app.Use(func(c *fiber.Ctx) error {
		// malformed pairs are dropped, the valid ones kept
		query, _ := url.ParseQuery(string(c.Request().URI().QueryString()))
		res := d.Dispatch(&melt.Request{
			Context: c.UserContext(),
			Method:  c.Method(),
			Path:    c.Path(),
			Query:   query,
			Body:    string(c.Body()),
		})
		c.Set(fiber.HeaderContentType, res.ContentType)
		return c.Status(res.Status).SendString(res.Body)
	})
}
