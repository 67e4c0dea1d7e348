package melt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjector_InjectsSameInstanceAsLookup(t *testing.T) {
	r, collector := registryFrom(t, demoCatalog(), false)
	injector := NewInjector(r, collector, nil)

	targets := injector.Inject(r.Beans())

	require.Len(t, targets, 2)
	for _, target := range targets {
		assert.True(t, target.Injected(), target.Dependency.Field)
		assert.True(t, target.Required)
	}

	repo := MustGet[*userRepository](r)
	svc := MustGet[*userService](r)
	ctrl := MustGet[*userController](r)
	assert.Same(t, repo, svc.repo)
	assert.Same(t, svc, ctrl.service)
	assert.Empty(t, collector.Failures())
}

func TestInjector_UnresolvedLeftZero(t *testing.T) {
	c := NewCatalog()
	c.Add("app", serviceDefinition())
	r, collector := registryFrom(t, c, false)
	injector := NewInjector(r, collector, nil)

	targets := injector.Inject(r.Beans())

	require.Len(t, targets, 1)
	assert.False(t, targets[0].Injected())
	assert.Nil(t, MustGet[*userService](r).repo)

	failures := collector.ByStage(StageInject)
	require.Len(t, failures, 1)
	assert.Equal(t, "userService", failures[0].Subject)
	assert.Equal(t, "repo *melt.userRepository", failures[0].Detail)
	assert.ErrorIs(t, failures[0], ErrBeanNotFound)

	report := injector.Verify()
	assert.False(t, report.OK())
	assert.Len(t, report.Unresolved, 1)
	assert.Empty(t, report.Resolved)
}

func TestInjector_Qualifier(t *testing.T) {
	c := NewCatalog()
	c.Add("app", repositoryDefinition())
	c.Add("app", Definition{
		Name:    "CountingStore",
		Kind:    KindStruct,
		Type:    TypeOf[*countingStore](),
		Markers: []Marker{Repository},
		Factory: Construct(func() *countingStore { return &countingStore{} }),
	})

	byType := serviceDefinition()
	byType.Dependencies = []Dependency{
		Autowire("store", func(s *userService, st userStore) { s.store = st }),
	}
	c.Add("app.typed", byType)

	r, collector := registryFrom(t, c, false)
	NewInjector(r, collector, nil).Inject(r.Beans())

	// two stores are assignable, so by-type resolution is ambiguous
	assert.Nil(t, MustGet[*userService](r).store)
	failures := collector.ByStage(StageInject)
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0], ErrAmbiguousBean)

	c2 := NewCatalog()
	c2.Add("app", repositoryDefinition())
	c2.Add("app", Definition{
		Name:    "CountingStore",
		Kind:    KindStruct,
		Type:    TypeOf[*countingStore](),
		Markers: []Marker{Repository},
		Factory: Construct(func() *countingStore { return &countingStore{} }),
	})
	named := serviceDefinition()
	named.Dependencies = []Dependency{
		AutowireNamed("store", "countingStore", func(s *userService, st userStore) { s.store = st }),
	}
	c2.Add("app.named", named)

	r2, collector2 := registryFrom(t, c2, false)
	NewInjector(r2, collector2, nil).Inject(r2.Beans())

	assert.IsType(t, &countingStore{}, MustGet[*userService](r2).store)
	assert.Empty(t, collector2.Failures())
}

func TestInjector_QualifierNotAssignable(t *testing.T) {
	c := NewCatalog()
	c.Add("app", repositoryDefinition())
	svc := serviceDefinition()
	svc.Dependencies = []Dependency{
		AutowireNamed("repo", "userController", func(s *userService, r *userRepository) { s.repo = r }),
	}
	c.Add("app", svc, controllerDefinition())

	r, collector := registryFrom(t, c, false)
	NewInjector(r, collector, nil).Inject(r.Beans())

	failures := collector.ByStage(StageInject)
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0], ErrNotAssignable)
}

func TestInjector_MutualReferences(t *testing.T) {
	type node struct{ peer any }
	type left struct{ node }
	type right struct{ node }

	c := NewCatalog()
	c.Add("app",
		Definition{
			Name: "Left", Kind: KindStruct, Type: TypeOf[*left](), Markers: []Marker{Component},
			Factory:      Construct(func() *left { return &left{} }),
			Dependencies: []Dependency{Autowire("peer", func(l *left, r *right) { l.peer = r })},
		},
		Definition{
			Name: "Right", Kind: KindStruct, Type: TypeOf[*right](), Markers: []Marker{Component},
			Factory:      Construct(func() *right { return &right{} }),
			Dependencies: []Dependency{Autowire("peer", func(r *right, l *left) { r.peer = l })},
		},
	)

	r, collector := registryFrom(t, c, false)
	NewInjector(r, collector, nil).Inject(r.Beans())

	l := MustGet[*left](r)
	rt := MustGet[*right](r)
	assert.Same(t, rt, l.peer)
	assert.Same(t, l, rt.peer)
	assert.Empty(t, collector.Failures())
}

func TestInjector_SetterPanicReported(t *testing.T) {
	c := NewCatalog()
	c.Add("app", repositoryDefinition())
	svc := serviceDefinition()
	svc.Dependencies = []Dependency{{
		Field: "repo",
		Type:  TypeOf[*userRepository](),
		Set:   func(any, any) { panic("read-only") },
	}}
	c.Add("app", svc)

	r, collector := registryFrom(t, c, false)
	injector := NewInjector(r, collector, nil)
	targets := injector.Inject(r.Beans())

	require.Len(t, targets, 1)
	assert.Nil(t, targets[0].Resolved)
	assert.ErrorIs(t, targets[0].Err, ErrSetterPanic)
	assert.Len(t, collector.ByStage(StageInject), 1)
	assert.Len(t, injector.Targets(), 1)
}
