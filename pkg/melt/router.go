package melt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Invoker calls a handler method on its owning bean with bound arguments
type Invoker func(ctx context.Context, bean any, args Args) (any, error)

// RouteSpec is a route declared by a handler type
type RouteSpec struct {
	// Method is the HTTP verb; empty means GET
	Method string

	// Path is the route pattern, e.g. /users/{id}
	Path string

	// Handler is the name of the handler method
	Handler string

	Params []ParamSpec
	Invoke Invoker
}

// Route is a compiled route table entry
type Route struct {
	Key     string
	Method  string
	Pattern *PathPattern
}

// Path returns the pattern as declared
func (r Route) Path() string {
	return r.Pattern.Raw()
}

// HandlerBinding ties a route to the bean and method serving it. Bindings are
// shared by every request and never mutated after Build.
type HandlerBinding struct {
	Bean    *Bean
	Route   Route
	Handler string
	Params  []ParamSpec
	invoke  Invoker
}

// Invoke calls the handler with already-bound arguments
func (b *HandlerBinding) Invoke(ctx context.Context, args Args) (any, error) {
	return b.invoke(ctx, b.Bean.Instance, args)
}

// String returns a printable description of the binding
func (b *HandlerBinding) String() string {
	return fmt.Sprintf("%s -> %s.%s", b.Route.Key, b.Bean.Name, b.Handler)
}

// RouteKey builds the table key for a verb and pattern
func RouteKey(method, path string) string {
	return NormalizeMethod(method) + ":" + path
}

// NormalizeMethod upper-cases a verb; an empty verb is GET
func NormalizeMethod(method string) string {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		return "GET"
	}
	return method
}

// Router owns the route table. Build writes it, everything else only reads.
type Router struct {
	routes   []*HandlerBinding
	static   map[string]*HandlerBinding
	override bool
	reporter Reporter
	logger   *zap.Logger
}

// NewRouter creates an empty router. With override set, a later route with an
// existing key replaces the earlier one instead of being rejected.
func NewRouter(reporter Reporter, logger *zap.Logger, override bool) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		static:   make(map[string]*HandlerBinding),
		override: override,
		reporter: orNop(reporter),
		logger:   logger,
	}
}

// Build replaces the route table with the routes declared by handlerBeans.
// Rejected routes are reported and skipped; the returned error joins them.
func (r *Router) Build(handlerBeans []*Bean) error {
	r.routes = nil
	r.static = make(map[string]*HandlerBinding)

	var errs []error
	for _, bean := range handlerBeans {
		for _, spec := range bean.Descriptor.Definition.Routes {
			binding, err := compileRoute(bean, spec)
			if err != nil {
				errs = append(errs, r.fail(bean, spec, err))
				continue
			}
			if err := r.add(binding); err != nil {
				errs = append(errs, r.fail(bean, spec, err))
				continue
			}
			r.logger.Debug("melt: route mapped",
				zap.String("route", binding.Route.Key),
				zap.String("bean", bean.Name),
				zap.String("handler", binding.Handler))
		}
	}

	r.logger.Info("melt: route table built", zap.Int("routes", len(r.routes)))
	return errors.Join(errs...)
}

func (r *Router) fail(bean *Bean, spec RouteSpec, err error) error {
	f := &Failure{
		Stage:   StageRoute,
		Subject: RouteKey(spec.Method, spec.Path),
		Detail:  bean.Name + "." + spec.Handler,
		Err:     err,
	}
	r.reporter.Report(f)
	return f
}

func compileRoute(bean *Bean, spec RouteSpec) (*HandlerBinding, error) {
	if spec.Invoke == nil {
		return nil, ErrNoInvoker
	}
	pattern, err := CompilePath(spec.Path)
	if err != nil {
		return nil, err
	}
	for _, p := range spec.Params {
		if p.Kind == PathVariable && pattern.VariableIndex(p.LookupKey()) < 0 {
			return nil, fmt.Errorf("%w: {%s} is not in %q", ErrUnknownPathVariable, p.LookupKey(), spec.Path)
		}
	}

	method := NormalizeMethod(spec.Method)
	return &HandlerBinding{
		Bean: bean,
		Route: Route{
			Key:     RouteKey(method, spec.Path),
			Method:  method,
			Pattern: pattern,
		},
		Handler: spec.Handler,
		Params:  append([]ParamSpec(nil), spec.Params...),
		invoke:  spec.Invoke,
	}, nil
}

func (r *Router) add(binding *HandlerBinding) error {
	for i, existing := range r.routes {
		if existing.Route.Key != binding.Route.Key {
			continue
		}
		if !r.override {
			return fmt.Errorf("%w: already mapped to %s.%s", ErrDuplicateRoute, existing.Bean.Name, existing.Handler)
		}
		r.routes[i] = binding
		if binding.Route.Pattern.IsStatic() {
			r.static[binding.Route.Key] = binding
		}
		return nil
	}

	r.routes = append(r.routes, binding)
	if binding.Route.Pattern.IsStatic() {
		r.static[binding.Route.Key] = binding
	}
	return nil
}

// Lookup finds the binding for method and path. Variable-free routes are
// matched exactly first; pattern routes of the same verb are then tried in
// registration order.
func (r *Router) Lookup(method, path string) (*HandlerBinding, bool) {
	method = NormalizeMethod(method)
	if binding, ok := r.static[method+":"+path]; ok {
		return binding, true
	}

	for _, binding := range r.routes {
		if binding.Route.Method != method || binding.Route.Pattern.IsStatic() {
			continue
		}
		if _, ok := binding.Route.Pattern.Match(path); ok {
			return binding, true
		}
	}
	return nil, false
}

// Bind extracts the arguments of binding from req
func (r *Router) Bind(binding *HandlerBinding, req *Request) (Args, error) {
	return bindArgs(binding.Route.Pattern, binding.Params, req)
}

// Routes returns every binding in registration order
func (r *Router) Routes() []*HandlerBinding {
	return append([]*HandlerBinding(nil), r.routes...)
}

// Len returns the number of routes
func (r *Router) Len() int {
	return len(r.routes)
}
