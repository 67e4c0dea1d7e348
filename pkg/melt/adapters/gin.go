package adapters

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/melt-go/melt/pkg/melt"
)

// GinAdapter serves a Dispatcher from Gin
type GinAdapter struct {
	engine *gin.Engine
	server httpServer
}

// NewGinAdapter creates a new Gin adapter
func NewGinAdapter(g *gin.Engine) *GinAdapter {
	return &GinAdapter{engine: g}
}

// NewDefaultGinAdapter creates a new Gin adapter with a recovery-only engine
func NewDefaultGinAdapter() *GinAdapter {
	g := gin.New()
	g.Use(gin.Recovery())
	return &GinAdapter{engine: g}
}

// Mount forwards every request to d
func (ga *GinAdapter) Mount(d *melt.Dispatcher) {
	MountGin(ga.engine, d)
}

// Start starts the Gin server
func (ga *GinAdapter) Start(addr string) error {
	return ga.server.start(addr, ga.engine)
}

// Stop stops the Gin server through its wrapping http.Server
func (ga *GinAdapter) Stop(ctx context.Context) error {
	return ga.server.stop(ctx)
}

// Name returns the adapter name
func (ga *GinAdapter) Name() string {
	return "Gin"
}

// Handler returns the Gin engine
func (ga *GinAdapter) Handler() http.Handler {
	return ga.engine
}

// GetEngine returns the underlying Gin engine
func (ga *GinAdapter) GetEngine() *gin.Engine {
	return ga.engine
}

// MountGin forwards every request gin does not route itself to d
func MountGin(g *gin.Engine, d *melt.Dispatcher) {
	g.HandleMethodNotAllowed = false
	g.NoRoute(func(c *gin.Context) {
		res := dispatchHTTP(d, c.Request, c.Request.URL.Query())
		c.Data(res.Status, res.ContentType, []byte(res.Body))
	})
}
