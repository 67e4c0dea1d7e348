package meltfx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/melt-go/melt/pkg/melt"
	"github.com/melt-go/melt/pkg/melt/adapters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

type pingController struct{}

func pingCatalog() *melt.Catalog {
	c := melt.NewCatalog()
	c.Add("fx.web", melt.Definition{
		Name:    "PingController",
		Kind:    melt.KindStruct,
		Type:    melt.TypeOf[*pingController](),
		Markers: []melt.Marker{melt.Controller},
		Factory: melt.Construct(func() *pingController { return &pingController{} }),
		Routes: []melt.RouteSpec{{
			Path:    "/ping",
			Handler: "Ping",
			Invoke: func(context.Context, any, melt.Args) (any, error) {
				return "pong", nil
			},
		}},
	})
	return c
}

// fakeServer records lifecycle calls and serves through the mounted dispatcher
type fakeServer struct {
	dispatcher *melt.Dispatcher
	started    chan string
	stopped    bool
}

func (s *fakeServer) Mount(d *melt.Dispatcher) { s.dispatcher = d }
func (s *fakeServer) Start(addr string) error  { s.started <- addr; return nil }
func (s *fakeServer) Stop(context.Context) error {
	s.stopped = true
	return nil
}
func (s *fakeServer) Name() string           { return "Fake" }
func (s *fakeServer) Handler() http.Handler { return s.dispatcher }

func TestModule_ProvidesRefreshedContext(t *testing.T) {
	var (
		ctx        *melt.Context
		dispatcher *melt.Dispatcher
		registry   *melt.Registry
	)

	app := fxtest.New(t,
		fx.Supply(pingCatalog(), zap.NewNop()),
		fx.Supply(Config{Namespaces: []string{"fx"}}),
		Module,
		fx.Populate(&ctx, &dispatcher, &registry),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.True(t, ctx.Refreshed())
	assert.Equal(t, 1, registry.Len())
	res := dispatcher.Dispatch(&melt.Request{Method: "GET", Path: "/ping"})
	assert.Equal(t, "pong", res.Body)
}

func TestModule_NilCatalogFailsStart(t *testing.T) {
	app := fx.New(
		fx.NopLogger,
		fx.Provide(func() *melt.Catalog { return nil }),
		Module,
		fx.Invoke(func(*melt.Context) {}),
	)

	assert.ErrorIs(t, app.Err(), melt.ErrNilCatalog)
}

func TestServerModule_Lifecycle(t *testing.T) {
	server := &fakeServer{started: make(chan string, 1)}

	app := fxtest.New(t,
		fx.Supply(pingCatalog()),
		fx.Supply(ServerConfig{Addr: ":9999"}),
		fx.Provide(func() adapters.Server { return server }),
		Module,
		ServerModule,
	)
	app.RequireStart()

	assert.Equal(t, ":9999", <-server.started)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))
	assert.Equal(t, "pong", rec.Body.String())

	app.RequireStop()
	require.True(t, server.stopped)
}
