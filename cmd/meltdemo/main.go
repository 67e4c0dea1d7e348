// Command meltdemo serves the demo controllers through the configured engine.
package main

import (
	"fmt"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/melt-go/melt/internal/config"
	"github.com/melt-go/melt/internal/demo/controller"
	"github.com/melt-go/melt/internal/demo/repository"
	"github.com/melt-go/melt/internal/demo/service"
	"github.com/melt-go/melt/pkg/melt"
	"github.com/melt-go/melt/pkg/melt/adapters"
	"github.com/melt-go/melt/pkg/melt/meltfx"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "meltdemo: %v\n", err)
		os.Exit(1)
	}
	logger, err := cfg.Logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "meltdemo: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	fx.New(options(cfg, logger)).Run()
}

// catalog collects the generated registrations of the demo packages
func catalog() *melt.Catalog {
	c := melt.NewCatalog()
	repository.RegisterComponents(c)
	service.RegisterComponents(c)
	controller.RegisterComponents(c)
	return c
}

func options(cfg *config.Config, logger *zap.Logger) fx.Option {
	return fx.Options(
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l}
		}),
		fx.Supply(logger, catalog()),
		fx.Supply(
			meltfx.Config{Namespaces: []string{cfg.Namespace}},
			meltfx.ServerConfig{Addr: cfg.Addr},
		),
		fx.Provide(func() (adapters.Server, error) {
			return adapters.NewServer(cfg.Engine)
		}),
		meltfx.Module,
		meltfx.ServerModule,
		fx.Invoke(logMappings),
	)
}

// logMappings prints the route table once the context is refreshed
func logMappings(router *melt.Router, logger *zap.Logger) {
	for _, binding := range router.Routes() {
		logger.Info("route",
			zap.String("route", binding.Route.Key),
			zap.String("handler", binding.Bean.Name+"."+binding.Handler))
	}
}
