// Package meltfx wires a refreshed melt context into an fx application.
package meltfx

import (
	"context"

	"github.com/melt-go/melt/pkg/melt"
	"github.com/melt-go/melt/pkg/melt/adapters"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config controls how the context is refreshed
type Config struct {
	// Namespaces are scanned on refresh; empty scans the whole catalog
	Namespaces []string

	BeanOverride  bool
	RouteOverride bool
}

// ContextParams are the inputs of NewContext
type ContextParams struct {
	fx.In

	Catalog  *melt.Catalog
	Config   Config        `optional:"true"`
	Logger   *zap.Logger   `optional:"true"`
	Reporter melt.Reporter `optional:"true"`
}

// ContextResult exposes the context and its stages to the graph
type ContextResult struct {
	fx.Out

	Context    *melt.Context
	Registry   *melt.Registry
	Router     *melt.Router
	Dispatcher *melt.Dispatcher
}

// NewContext builds and refreshes a melt context
func NewContext(p ContextParams) (ContextResult, error) {
	ctx := melt.NewContext(p.Catalog,
		melt.WithLogger(p.Logger),
		melt.WithReporter(p.Reporter),
		melt.WithBeanOverride(p.Config.BeanOverride),
		melt.WithRouteOverride(p.Config.RouteOverride),
	)
	if err := ctx.Refresh(p.Config.Namespaces...); err != nil {
		return ContextResult{}, err
	}

	return ContextResult{
		Context:    ctx,
		Registry:   ctx.Registry(),
		Router:     ctx.Router(),
		Dispatcher: ctx.Dispatcher(),
	}, nil
}

// Module provides *melt.Context, *melt.Registry, *melt.Router and *melt.Dispatcher
var Module = fx.Module("melt",
	fx.Provide(NewContext),
)

// ServerConfig is the listen address of the host server
type ServerConfig struct {
	Addr string
}

// ServerParams are the inputs of RegisterServer
type ServerParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Server     adapters.Server
	Dispatcher *melt.Dispatcher
	Config     ServerConfig
	Logger     *zap.Logger `optional:"true"`
}

// RegisterServer mounts the dispatcher and ties the server to the fx lifecycle.
// A server that fails after start shuts the application down.
func RegisterServer(p ServerParams) {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	p.Server.Mount(p.Dispatcher)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info("starting server",
				zap.String("engine", p.Server.Name()),
				zap.String("addr", p.Config.Addr))
			go func() {
				if err := p.Server.Start(p.Config.Addr); err != nil {
					logger.Error("server stopped", zap.Error(err))
					_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping server", zap.String("engine", p.Server.Name()))
			return p.Server.Stop(ctx)
		},
	})
}

// ServerModule serves the dispatcher through the provided adapters.Server
var ServerModule = fx.Module("melt-server",
	fx.Invoke(RegisterServer),
)
