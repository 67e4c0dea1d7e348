package melt

import (
	"fmt"
	"iter"
	"reflect"
	"slices"

	"go.uber.org/zap"
)

// Descriptor is a discovered catalog unit. Registry reads it and never
// changes it.
type Descriptor struct {
	QualifiedName string
	Name          string
	Namespace     string
	Kind          Kind
	Type          reflect.Type

	// Markers are the markers declared directly on the type
	Markers []Marker

	// MetaMarkers are the markers reached through one stereotype level
	MetaMarkers []Marker

	// HasFactory reports whether a no-argument factory is available
	HasFactory bool

	Definition Definition
}

// HasMarker reports whether m is carried directly or through a stereotype
func (d Descriptor) HasMarker(m Marker) bool {
	return hasMarker(d.Markers, m) || hasMarker(d.MetaMarkers, m)
}

// IsComponent reports whether the descriptor qualifies for instantiation
func (d Descriptor) IsComponent() bool {
	if d.Kind != KindStruct {
		return false
	}
	for _, m := range ComponentMarkers {
		if d.HasMarker(m) {
			return true
		}
	}
	return false
}

// Scanner walks catalog namespaces and yields descriptors
type Scanner struct {
	catalog  *Catalog
	reporter Reporter
	logger   *zap.Logger
}

// NewScanner creates a scanner over catalog
func NewScanner(catalog *Catalog, reporter Reporter, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{
		catalog:  catalog,
		reporter: orNop(reporter),
		logger:   logger,
	}
}

// Scan lazily yields every unit registered under namespace or a namespace
// nested below it. Units that fail to load are reported and skipped. A
// namespace with no units yields nothing and reports ErrNamespaceNotFound.
func (s *Scanner) Scan(namespace string) iter.Seq[Descriptor] {
	root := normalizeNamespace(namespace)
	return func(yield func(Descriptor) bool) {
		var matched []string
		for _, ns := range s.catalog.Namespaces() {
			if inNamespace(ns, root) {
				matched = append(matched, ns)
			}
		}
		if len(matched) == 0 {
			s.reporter.Report(&Failure{Stage: StageScan, Subject: root, Err: ErrNamespaceNotFound})
			return
		}

		for _, ns := range matched {
			for i, load := range s.catalog.loaders(ns) {
				def, err := s.load(load)
				if err != nil {
					s.reporter.Report(&Failure{
						Stage:   StageScan,
						Subject: ns,
						Detail:  fmt.Sprintf("unit %d", i),
						Err:     err,
					})
					continue
				}
				if def.Namespace == "" {
					def.Namespace = ns
				}
				desc := s.describe(def)
				s.logger.Debug("melt: discovered type",
					zap.String("type", desc.QualifiedName),
					zap.String("kind", desc.Kind.String()))
				if !yield(desc) {
					return
				}
			}
		}
	}
}

// ScanAll collects Scan(namespace) into a slice
func (s *Scanner) ScanAll(namespace string) []Descriptor {
	return slices.Collect(s.Scan(namespace))
}

func (s *Scanner) load(load Loader) (def Definition, err error) {
	if load == nil {
		return Definition{}, fmt.Errorf("%w: nil loader", ErrLoaderPanic)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrLoaderPanic, r)
		}
	}()
	def, err = load()
	if err != nil {
		return Definition{}, fmt.Errorf("load failed: %w", err)
	}
	if def.Name == "" {
		return Definition{}, fmt.Errorf("load failed: definition has no name")
	}
	return def, nil
}

func (s *Scanner) describe(def Definition) Descriptor {
	return Descriptor{
		QualifiedName: def.QualifiedName(),
		Name:          def.Name,
		Namespace:     def.Namespace,
		Kind:          def.Kind,
		Type:          def.Type,
		Markers:       append([]Marker(nil), def.Markers...),
		MetaMarkers:   s.catalog.resolveMeta(def.Markers),
		HasFactory:    def.Factory != nil,
		Definition:    def,
	}
}
