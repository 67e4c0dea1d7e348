package melt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCatalog_Namespaces(t *testing.T) {
	c := NewCatalog()
	c.Add(" app.web. ", controllerDefinition())
	c.Add("app.repository", repositoryDefinition())
	c.Register("app.repository", func() (Definition, error) { return serviceDefinition(), nil })

	assert.Equal(t, []string{"app.repository", "app.web"}, c.Namespaces())
	assert.Equal(t, 3, c.Len())
}

func TestScanner_Scan(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		expected  []string
	}{
		{
			name:      "root includes nested namespaces",
			namespace: "app",
			expected:  []string{"app.repository.UserRepository", "app.service.UserService", "app.util.PlainHelper", "app.web.UserController"},
		},
		{
			name:      "empty namespace scans everything",
			namespace: "",
			expected:  []string{"app.repository.UserRepository", "app.service.UserService", "app.util.PlainHelper", "app.web.UserController"},
		},
		{
			name:      "leaf namespace",
			namespace: "app.service",
			expected:  []string{"app.service.UserService"},
		},
		{
			name:      "prefix without dot boundary does not match",
			namespace: "app.serv",
			expected:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanner := NewScanner(demoCatalog(), nil, nil)

			var names []string
			for desc := range scanner.Scan(tt.namespace) {
				names = append(names, desc.QualifiedName)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestScanner_UnknownNamespaceReported(t *testing.T) {
	collector := &Collector{}
	scanner := NewScanner(demoCatalog(), collector, nil)

	descs := scanner.ScanAll("nowhere")

	assert.Empty(t, descs)
	failures := collector.ByStage(StageScan)
	require.Len(t, failures, 1)
	assert.Equal(t, "nowhere", failures[0].Subject)
	assert.ErrorIs(t, failures[0], ErrNamespaceNotFound)
}

func TestScanner_FailingLoadersSkipped(t *testing.T) {
	c := NewCatalog()
	c.Register("app",
		func() (Definition, error) { return Definition{}, errors.New("broken unit") },
		func() (Definition, error) { panic("exploding unit") },
		func() (Definition, error) { return repositoryDefinition(), nil },
		func() (Definition, error) { return Definition{Kind: KindStruct}, nil },
	)
	collector := &Collector{}

	descs := NewScanner(c, collector, nil).ScanAll("app")

	require.Len(t, descs, 1)
	assert.Equal(t, "app.UserRepository", descs[0].QualifiedName)

	failures := collector.ByStage(StageScan)
	require.Len(t, failures, 3)
	assert.Equal(t, "unit 0", failures[0].Detail)
	assert.ErrorIs(t, failures[1], ErrLoaderPanic)
	assert.Equal(t, "unit 3", failures[2].Detail)
}

func TestScanner_StopsWhenConsumerStops(t *testing.T) {
	calls := 0
	c := NewCatalog()
	for range 3 {
		c.Register("app", func() (Definition, error) {
			calls++
			return repositoryDefinition(), nil
		})
	}

	for range NewScanner(c, nil, nil).Scan("app") {
		break
	}

	assert.Equal(t, 1, calls)
}

func TestScanner_Descriptor(t *testing.T) {
	c := NewCatalog()
	c.DefineStereotype(auditedMarker, Service)
	c.Add("app",
		Definition{Name: "AuditLog", Kind: KindStruct, Type: TypeOf[*auditLog](), Markers: []Marker{auditedMarker}},
		Definition{Name: "UserStore", Kind: KindInterface, Type: TypeOf[userStore](), Markers: []Marker{Repository}},
	)

	descs := NewScanner(c, nil, nil).ScanAll("app")
	require.Len(t, descs, 2)

	audit := descs[0]
	assert.Equal(t, []Marker{auditedMarker}, audit.Markers)
	assert.Equal(t, []Marker{Service}, audit.MetaMarkers)
	assert.True(t, audit.HasMarker(Service))
	assert.True(t, audit.IsComponent())
	assert.False(t, audit.HasFactory)

	store := descs[1]
	assert.Equal(t, KindInterface, store.Kind)
	assert.False(t, store.IsComponent())
}

func TestScanner_OneStereotypeLevelOnly(t *testing.T) {
	c := NewCatalog()
	c.DefineStereotype("Inner", Component)
	c.DefineStereotype("Outer", "Inner")
	c.Add("app", Definition{Name: "Deep", Kind: KindStruct, Markers: []Marker{"Outer"}})

	descs := NewScanner(c, nil, nil).ScanAll("app")

	require.Len(t, descs, 1)
	assert.Equal(t, []Marker{"Inner"}, descs[0].MetaMarkers)
	assert.False(t, descs[0].IsComponent())
}

func TestScanner_LogsDiscoveries(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	NewScanner(demoCatalog(), nil, zap.New(core)).ScanAll("app.web")

	entries := logs.FilterMessage("melt: discovered type").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "app.web.UserController", entries[0].ContextMap()["type"])
}
