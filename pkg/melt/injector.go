package melt

import (
	"fmt"

	"go.uber.org/zap"
)

// InjectionTarget is one autowired dependency of one bean and its outcome
type InjectionTarget struct {
	Bean       *Bean
	Dependency Dependency
	Required   bool

	// Resolved is the bean that was injected, nil on failure
	Resolved *Bean
	Err      error
}

// Injected reports whether the dependency was filled
func (t InjectionTarget) Injected() bool {
	return t.Err == nil && t.Resolved != nil
}

// Injector fills declared dependencies with beans from a Registry
type Injector struct {
	registry *Registry
	targets  []InjectionTarget
	reporter Reporter
	logger   *zap.Logger
}

// NewInjector creates an injector resolving against registry
func NewInjector(registry *Registry, reporter Reporter, logger *zap.Logger) *Injector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Injector{
		registry: registry,
		reporter: orNop(reporter),
		logger:   logger,
	}
}

// Inject resolves every dependency of every bean. An unresolved dependency is
// reported and left at its zero value.
func (i *Injector) Inject(beans []*Bean) []InjectionTarget {
	var targets []InjectionTarget
	for _, bean := range beans {
		for _, dep := range bean.Descriptor.Definition.Dependencies {
			target := InjectionTarget{Bean: bean, Dependency: dep, Required: true}
			target.Resolved, target.Err = i.inject(bean, dep)
			if target.Err != nil {
				target.Resolved = nil
				i.reporter.Report(&Failure{
					Stage:   StageInject,
					Subject: bean.Name,
					Detail:  fmt.Sprintf("%s %s", dep.Field, typeName(dep.Type)),
					Err:     target.Err,
				})
			} else {
				i.logger.Debug("melt: dependency injected",
					zap.String("bean", bean.Name),
					zap.String("field", dep.Field),
					zap.String("dependency", target.Resolved.Name))
			}
			targets = append(targets, target)
		}
	}
	i.targets = append(i.targets, targets...)
	return targets
}

func (i *Injector) inject(bean *Bean, dep Dependency) (resolved *Bean, err error) {
	if dep.Set == nil {
		return nil, fmt.Errorf("%w: no setter for %s", ErrNotAssignable, dep.Field)
	}

	resolved, err = i.resolve(dep)
	if err != nil {
		return nil, err
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrSetterPanic, rec)
		}
	}()
	dep.Set(bean.Instance, resolved.Instance)
	return resolved, nil
}

func (i *Injector) resolve(dep Dependency) (*Bean, error) {
	if dep.Qualifier == "" {
		return i.registry.ByType(dep.Type)
	}

	bean, ok := i.registry.ByName(dep.Qualifier)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBeanNotFound, dep.Qualifier)
	}
	if dep.Type != nil && !bean.Type.AssignableTo(dep.Type) {
		return nil, fmt.Errorf("%w: %s is %s, want %s", ErrNotAssignable, bean.Name, typeName(bean.Type), typeName(dep.Type))
	}
	return bean, nil
}

// Targets returns every target recorded so far
func (i *Injector) Targets() []InjectionTarget {
	return append([]InjectionTarget(nil), i.targets...)
}

// InjectionReport summarizes recorded injections
type InjectionReport struct {
	Resolved   []InjectionTarget
	Unresolved []InjectionTarget
}

// OK reports whether every dependency was injected
func (r InjectionReport) OK() bool {
	return len(r.Unresolved) == 0
}

// Verify walks the recorded targets without changing any bean
func (i *Injector) Verify() InjectionReport {
	var report InjectionReport
	for _, t := range i.targets {
		if t.Injected() {
			report.Resolved = append(report.Resolved, t)
		} else {
			report.Unresolved = append(report.Unresolved, t)
		}
	}
	return report
}
