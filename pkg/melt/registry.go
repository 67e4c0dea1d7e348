package melt

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"sort"

	"go.uber.org/zap"
)

// Bean is the singleton instance of a component type
type Bean struct {
	Name       string
	Type       reflect.Type
	Instance   any
	Descriptor Descriptor
}

// HasMarker reports whether the bean's type carries m directly or through a stereotype
func (b *Bean) HasMarker(m Marker) bool {
	return b.Descriptor.HasMarker(m)
}

// Registry owns every bean for the lifetime of the context. It is written
// during Register and read-only afterwards.
type Registry struct {
	beans    []*Bean
	byType   map[reflect.Type]*Bean
	byName   map[string]*Bean
	override bool
	reporter Reporter
	logger   *zap.Logger
}

// NewRegistry creates an empty registry. With override set, a later bean
// replaces an earlier one of the same name or type instead of being rejected.
func NewRegistry(reporter Reporter, logger *zap.Logger, override bool) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		byType:   make(map[reflect.Type]*Bean),
		byName:   make(map[string]*Bean),
		override: override,
		reporter: orNop(reporter),
		logger:   logger,
	}
}

// Register instantiates every qualifying descriptor. Failures are reported per
// type and never abort the batch.
func (r *Registry) Register(descriptors iter.Seq[Descriptor]) {
	for desc := range descriptors {
		if !desc.IsComponent() {
			r.logger.Debug("melt: not a component", zap.String("type", desc.QualifiedName))
			continue
		}
		bean, err := r.instantiate(desc)
		if err != nil {
			r.reporter.Report(&Failure{Stage: StageRegister, Subject: desc.QualifiedName, Err: err})
			continue
		}
		if err := r.add(bean); err != nil {
			r.reporter.Report(&Failure{Stage: StageRegister, Subject: desc.QualifiedName, Detail: bean.Name, Err: err})
			continue
		}
		r.logger.Info("melt: bean created",
			zap.String("bean", bean.Name),
			zap.String("type", typeName(bean.Type)))
	}
}

func (r *Registry) instantiate(desc Descriptor) (bean *Bean, err error) {
	if !desc.HasFactory {
		return nil, ErrNoFactory
	}

	defer func() {
		if rec := recover(); rec != nil {
			bean = nil
			err = fmt.Errorf("%w: %v", ErrFactoryPanic, rec)
		}
	}()

	instance, err := desc.Definition.Factory()
	if err != nil {
		return nil, fmt.Errorf("factory failed: %w", err)
	}
	if instance == nil {
		return nil, ErrNilInstance
	}

	typ := reflect.TypeOf(instance)
	if desc.Type != nil && typ != desc.Type {
		return nil, fmt.Errorf("%w: want %s, got %s", ErrTypeMismatch, typeName(desc.Type), typeName(typ))
	}

	return &Bean{
		Name:       BeanName(desc.Name),
		Type:       typ,
		Instance:   instance,
		Descriptor: desc,
	}, nil
}

func (r *Registry) add(bean *Bean) error {
	prevByName, nameTaken := r.byName[bean.Name]
	prevByType, typeTaken := r.byType[bean.Type]

	if !r.override {
		if nameTaken {
			return fmt.Errorf("%w: name %q already held by %s", ErrDuplicateBean, bean.Name, prevByName.Descriptor.QualifiedName)
		}
		if typeTaken {
			return fmt.Errorf("%w: type %s already held by %s", ErrDuplicateBean, typeName(bean.Type), prevByType.Descriptor.QualifiedName)
		}
	}

	if nameTaken {
		r.remove(prevByName)
	}
	if typeTaken {
		r.remove(prevByType)
	}

	r.beans = append(r.beans, bean)
	r.byType[bean.Type] = bean
	r.byName[bean.Name] = bean
	return nil
}

func (r *Registry) remove(bean *Bean) {
	for i, b := range r.beans {
		if b == bean {
			r.beans = append(r.beans[:i], r.beans[i+1:]...)
			break
		}
	}
	if r.byType[bean.Type] == bean {
		delete(r.byType, bean.Type)
	}
	if r.byName[bean.Name] == bean {
		delete(r.byName, bean.Name)
	}
}

// ByType returns the bean of exactly type t, or the single bean assignable
// to t. Several assignable beans yield an AmbiguousBeanError.
func (r *Registry) ByType(t reflect.Type) (*Bean, error) {
	if t == nil {
		return nil, ErrBeanNotFound
	}
	if bean, ok := r.byType[t]; ok {
		return bean, nil
	}

	var candidates []*Bean
	for _, bean := range r.beans {
		if bean.Type.AssignableTo(t) {
			candidates = append(candidates, bean)
		}
	}

	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrBeanNotFound, typeName(t))
	case 1:
		return candidates[0], nil
	default:
		names := make([]string, 0, len(candidates))
		for _, c := range candidates {
			names = append(names, c.Name)
		}
		sort.Strings(names)
		return nil, &AmbiguousBeanError{Type: typeName(t), Candidates: names}
	}
}

// ByName returns the bean registered under name
func (r *Registry) ByName(name string) (*Bean, bool) {
	bean, ok := r.byName[name]
	return bean, ok
}

// MustByType is ByType for callers that cannot continue without the bean
func (r *Registry) MustByType(t reflect.Type) *Bean {
	bean, err := r.ByType(t)
	if err != nil {
		panic(err)
	}
	return bean
}

// ContainsBean reports whether a bean satisfies type t
func (r *Registry) ContainsBean(t reflect.Type) bool {
	_, err := r.ByType(t)
	return err == nil || errors.Is(err, ErrAmbiguousBean)
}

// Beans returns every bean in registration order
func (r *Registry) Beans() []*Bean {
	return append([]*Bean(nil), r.beans...)
}

// BeansWithMarker returns, in registration order, the beans carrying any of markers
func (r *Registry) BeansWithMarker(markers ...Marker) []*Bean {
	var out []*Bean
	for _, bean := range r.beans {
		for _, m := range markers {
			if bean.HasMarker(m) {
				out = append(out, bean)
				break
			}
		}
	}
	return out
}

// Len returns the number of beans
func (r *Registry) Len() int {
	return len(r.beans)
}

// Get returns the bean instance for type T
func Get[T any](r *Registry) (T, error) {
	var zero T
	bean, err := r.ByType(reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	v, ok := bean.Instance.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %s", ErrNotAssignable, bean.Name, typeName(bean.Type))
	}
	return v, nil
}

// MustGet is Get that panics when the bean is absent
func MustGet[T any](r *Registry) T {
	v, err := Get[T](r)
	if err != nil {
		panic(err)
	}
	return v
}

// GetNamed returns the bean instance registered under name as T
func GetNamed[T any](r *Registry, name string) (T, error) {
	var zero T
	bean, ok := r.ByName(name)
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrBeanNotFound, name)
	}
	v, ok := bean.Instance.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %s", ErrNotAssignable, name, typeName(bean.Type))
	}
	return v, nil
}
