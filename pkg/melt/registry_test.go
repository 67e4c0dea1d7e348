package melt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registryFrom(t *testing.T, c *Catalog, override bool) (*Registry, *Collector) {
	t.Helper()
	collector := &Collector{}
	r := NewRegistry(collector, nil, override)
	r.Register(NewScanner(c, collector, nil).Scan(""))
	return r, collector
}

func TestRegistry_RegistersOnlyComponents(t *testing.T) {
	r, collector := registryFrom(t, demoCatalog(), false)

	var names []string
	for _, b := range r.Beans() {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"userRepository", "userService", "userController"}, names)
	assert.Empty(t, collector.Failures())

	_, ok := r.ByName("plainHelper")
	assert.False(t, ok)
	assert.False(t, r.ContainsBean(TypeOf[*plainHelper]()))
}

func TestRegistry_StereotypeMakesComponent(t *testing.T) {
	c := NewCatalog()
	c.DefineStereotype(auditedMarker, Service)
	c.Add("app", Definition{
		Name:    "AuditLog",
		Kind:    KindStruct,
		Type:    TypeOf[*auditLog](),
		Markers: []Marker{auditedMarker},
		Factory: Construct(func() *auditLog { return &auditLog{} }),
	})

	r, _ := registryFrom(t, c, false)

	bean, ok := r.ByName("auditLog")
	require.True(t, ok)
	assert.True(t, bean.HasMarker(Service))
	assert.Len(t, r.BeansWithMarker(Service), 1)
	assert.Empty(t, r.BeansWithMarker(Controller))
}

func TestRegistry_ExcludesNonStructKinds(t *testing.T) {
	c := NewCatalog()
	for _, kind := range []Kind{KindInterface, KindAbstract, KindMarker} {
		c.Add("app", Definition{
			Name:    "X" + kind.String(),
			Kind:    kind,
			Markers: []Marker{Component},
			Factory: Construct(func() *plainHelper { return &plainHelper{} }),
		})
	}

	r, collector := registryFrom(t, c, false)

	assert.Zero(t, r.Len())
	assert.Empty(t, collector.Failures())
}

func TestRegistry_InstantiationFailures(t *testing.T) {
	tests := []struct {
		name     string
		factory  Factory
		expected error
	}{
		{name: "missing factory", factory: nil, expected: ErrNoFactory},
		{name: "factory panic", factory: func() (any, error) { panic("no") }, expected: ErrFactoryPanic},
		{name: "nil instance", factory: func() (any, error) { return nil, nil }, expected: ErrNilInstance},
		{name: "wrong type", factory: func() (any, error) { return &plainHelper{}, nil }, expected: ErrTypeMismatch},
		{
			name:     "factory error",
			factory:  ConstructE(func() (*auditLog, error) { return nil, errors.New("disk full") }),
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCatalog()
			c.Add("app", Definition{
				Name:    "AuditLog",
				Kind:    KindStruct,
				Type:    TypeOf[*auditLog](),
				Markers: []Marker{Component},
				Factory: tt.factory,
			})

			r, collector := registryFrom(t, c, false)

			assert.Zero(t, r.Len())
			failures := collector.ByStage(StageRegister)
			require.Len(t, failures, 1)
			assert.Equal(t, "app.AuditLog", failures[0].Subject)
			if tt.expected != nil {
				assert.ErrorIs(t, failures[0], tt.expected)
			} else {
				assert.Contains(t, failures[0].Error(), "disk full")
			}
		})
	}
}

func TestRegistry_DuplicateNameFirstWins(t *testing.T) {
	c := NewCatalog()
	c.Add("app.a", repositoryDefinition())
	c.Add("app.b", Definition{
		Name:    "UserRepository",
		Kind:    KindStruct,
		Type:    TypeOf[*auditLog](),
		Markers: []Marker{Repository},
		Factory: Construct(func() *auditLog { return &auditLog{} }),
	})

	r, collector := registryFrom(t, c, false)

	bean, ok := r.ByName("userRepository")
	require.True(t, ok)
	assert.Equal(t, TypeOf[*userRepository](), bean.Type)
	assert.Equal(t, 1, r.Len())

	failures := collector.ByStage(StageRegister)
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0], ErrDuplicateBean)
	assert.Equal(t, "app.b.UserRepository", failures[0].Subject)
}

func TestRegistry_DuplicateNameOverride(t *testing.T) {
	c := NewCatalog()
	c.Add("app.a", repositoryDefinition())
	c.Add("app.b", Definition{
		Name:    "UserRepository",
		Kind:    KindStruct,
		Type:    TypeOf[*auditLog](),
		Markers: []Marker{Repository},
		Factory: Construct(func() *auditLog { return &auditLog{} }),
	})

	r, collector := registryFrom(t, c, true)

	bean, ok := r.ByName("userRepository")
	require.True(t, ok)
	assert.Equal(t, TypeOf[*auditLog](), bean.Type)
	assert.Equal(t, 1, r.Len())
	assert.False(t, r.ContainsBean(TypeOf[*userRepository]()))
	assert.Empty(t, collector.Failures())
}

func TestRegistry_DuplicateTypeRejected(t *testing.T) {
	c := NewCatalog()
	c.Add("app", repositoryDefinition())
	other := repositoryDefinition()
	other.Name = "LegacyRepository"
	c.Add("app", other)

	r, collector := registryFrom(t, c, false)

	assert.Equal(t, 1, r.Len())
	failures := collector.ByStage(StageRegister)
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0], ErrDuplicateBean)
}

func TestRegistry_ByType(t *testing.T) {
	r, _ := registryFrom(t, demoCatalog(), false)

	bean, err := r.ByType(TypeOf[*userRepository]())
	require.NoError(t, err)
	assert.Equal(t, "userRepository", bean.Name)

	// assignable fallback
	bean, err = r.ByType(TypeOf[userStore]())
	require.NoError(t, err)
	assert.Equal(t, "userRepository", bean.Name)

	_, err = r.ByType(TypeOf[*plainHelper]())
	assert.ErrorIs(t, err, ErrBeanNotFound)

	assert.Panics(t, func() { r.MustByType(TypeOf[*plainHelper]()) })
}

func TestRegistry_ByTypeAmbiguous(t *testing.T) {
	c := NewCatalog()
	c.Add("app", repositoryDefinition())
	c.Add("app", Definition{
		Name:    "CountingStore",
		Kind:    KindStruct,
		Type:    TypeOf[*countingStore](),
		Markers: []Marker{Repository},
		Factory: Construct(func() *countingStore { return &countingStore{} }),
	})

	r, _ := registryFrom(t, c, false)

	_, err := r.ByType(TypeOf[userStore]())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmbiguousBean)

	var ambiguous *AmbiguousBeanError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, []string{"countingStore", "userRepository"}, ambiguous.Candidates)
	assert.True(t, r.ContainsBean(TypeOf[userStore]()))
}

func TestRegistry_GenericAccessors(t *testing.T) {
	r, _ := registryFrom(t, demoCatalog(), false)

	repo, err := Get[*userRepository](r)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.Count())

	store := MustGet[userStore](r)
	assert.Same(t, repo, store)

	svc, err := GetNamed[*userService](r, "userService")
	require.NoError(t, err)
	assert.NotNil(t, svc)

	_, err = GetNamed[*userRepository](r, "userService")
	assert.ErrorIs(t, err, ErrNotAssignable)

	_, err = GetNamed[*userService](r, "missing")
	assert.ErrorIs(t, err, ErrBeanNotFound)

	assert.Panics(t, func() { MustGet[*plainHelper](r) })
}

func TestBeanName(t *testing.T) {
	assert.Equal(t, "userService", BeanName("UserService"))
	assert.Equal(t, "uRLMapper", BeanName("URLMapper"))
	assert.Equal(t, "already", BeanName("already"))
	assert.Equal(t, "", BeanName(""))
	assert.Equal(t, "éclair", BeanName("Éclair"))
}

type countingStore struct{}

func (*countingStore) Count() int { return 0 }
