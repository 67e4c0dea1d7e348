package melt

import (
	"iter"
	"sync"

	"go.uber.org/zap"
)

// Option configures a Context
type Option func(*options)

type options struct {
	logger        *zap.Logger
	reporter      Reporter
	beanOverride  bool
	routeOverride bool
}

// WithLogger sets the logger used by every stage
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithReporter adds a reporter that receives every failure
func WithReporter(r Reporter) Option {
	return func(o *options) {
		o.reporter = r
	}
}

// WithBeanOverride lets a later bean replace an earlier one with the same name or type
func WithBeanOverride(enabled bool) Option {
	return func(o *options) {
		o.beanOverride = enabled
	}
}

// WithRouteOverride lets a later route replace an earlier one with the same key
func WithRouteOverride(enabled bool) Option {
	return func(o *options) {
		o.routeOverride = enabled
	}
}

// Context runs the startup pipeline once and owns its results
type Context struct {
	mu        sync.Mutex
	catalog   *Catalog
	opts      options
	failures  *Collector
	reporter  Reporter
	refreshed bool

	scanner    *Scanner
	registry   *Registry
	injector   *Injector
	router     *Router
	dispatcher *Dispatcher
}

// NewContext creates a context over catalog
func NewContext(catalog *Catalog, opts ...Option) *Context {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	failures := &Collector{}
	reporter := MultiReporter(failures, NewLogReporter(o.logger), o.reporter)

	c := &Context{
		catalog:  catalog,
		opts:     o,
		failures: failures,
		reporter: reporter,
	}
	c.registry = NewRegistry(reporter, o.logger, o.beanOverride)
	c.injector = NewInjector(c.registry, reporter, o.logger)
	c.router = NewRouter(reporter, o.logger, o.routeOverride)
	c.dispatcher = NewDispatcher(c.router, o.logger)
	if catalog != nil {
		c.scanner = NewScanner(catalog, reporter, o.logger)
	}
	return c
}

// Refresh scans the given namespaces (every namespace when none is given),
// registers components, injects dependencies and builds the route table.
// Failures of individual units are reported and never abort the refresh.
func (c *Context) Refresh(namespaces ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.catalog == nil {
		return ErrNilCatalog
	}
	if c.refreshed {
		return ErrAlreadyRefreshed
	}
	c.refreshed = true

	if len(namespaces) == 0 {
		namespaces = []string{""}
	}
	log := c.opts.logger
	log.Info("melt: refreshing context", zap.Strings("namespaces", namespaces))

	c.registry.Register(c.scan(namespaces))
	log.Info("melt: beans registered", zap.Int("beans", c.registry.Len()))

	c.injector.Inject(c.registry.Beans())
	report := c.injector.Verify()
	log.Info("melt: dependencies injected",
		zap.Int("resolved", len(report.Resolved)),
		zap.Int("unresolved", len(report.Unresolved)))

	// route failures are already reported
	_ = c.router.Build(c.registry.BeansWithMarker(HandlerMarkers...))
	for _, binding := range c.router.Routes() {
		log.Info("melt: mapped", zap.String("route", binding.Route.Key), zap.String("handler", binding.Bean.Name+"."+binding.Handler))
	}

	log.Info("melt: context refreshed", zap.Int("failures", len(c.failures.Failures())))
	return nil
}

// scan chains the namespaces, yielding each qualified type once
func (c *Context) scan(namespaces []string) iter.Seq[Descriptor] {
	return func(yield func(Descriptor) bool) {
		seen := make(map[string]bool)
		for _, ns := range namespaces {
			for desc := range c.scanner.Scan(ns) {
				if seen[desc.QualifiedName] {
					continue
				}
				seen[desc.QualifiedName] = true
				if !yield(desc) {
					return
				}
			}
		}
	}
}

// Refreshed reports whether Refresh has run
func (c *Context) Refreshed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshed
}

// Catalog returns the catalog the context scans
func (c *Context) Catalog() *Catalog {
	return c.catalog
}

// Registry returns the bean registry
func (c *Context) Registry() *Registry {
	return c.registry
}

// Injector returns the injector
func (c *Context) Injector() *Injector {
	return c.injector
}

// Router returns the router
func (c *Context) Router() *Router {
	return c.router
}

// Dispatcher returns the request dispatcher
func (c *Context) Dispatcher() *Dispatcher {
	return c.dispatcher
}

// Logger returns the configured logger
func (c *Context) Logger() *zap.Logger {
	return c.opts.logger
}

// Failures returns every failure reported so far
func (c *Context) Failures() []*Failure {
	return c.failures.Failures()
}

// FailuresByStage returns the failures reported by one stage
func (c *Context) FailuresByStage(stage Stage) []*Failure {
	return c.failures.ByStage(stage)
}
