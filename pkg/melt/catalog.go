package melt

import (
	"sort"
	"strings"
	"sync"
)

// Loader produces one catalog unit on demand. Generated registration code
// emits one Loader per annotated type.
type Loader func() (Definition, error)

// Catalog is the static registration table that the scanner walks. Units are
// grouped by dotted namespace; nested namespaces share a prefix.
type Catalog struct {
	mu          sync.RWMutex
	units       map[string][]Loader
	stereotypes map[Marker][]Marker
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		units:       make(map[string][]Loader),
		stereotypes: make(map[Marker][]Marker),
	}
}

// Register adds loaders under namespace, keeping registration order
func (c *Catalog) Register(namespace string, loaders ...Loader) {
	ns := normalizeNamespace(namespace)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.units[ns] = append(c.units[ns], loaders...)
}

// Add registers ready-made definitions under namespace
func (c *Catalog) Add(namespace string, defs ...Definition) {
	ns := normalizeNamespace(namespace)
	loaders := make([]Loader, 0, len(defs))
	for _, def := range defs {
		if def.Namespace == "" {
			def.Namespace = ns
		}
		loaders = append(loaders, func() (Definition, error) {
			return def, nil
		})
	}
	c.Register(ns, loaders...)
}

// DefineStereotype declares marker m as annotated with the given meta markers.
// Only one level is resolved: a stereotype of a stereotype is not a component.
func (c *Catalog) DefineStereotype(m Marker, meta ...Marker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stereotypes[m] = append([]Marker(nil), meta...)
}

// Stereotype returns the meta markers declared for m
func (c *Catalog) Stereotype(m Marker) ([]Marker, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	meta, ok := c.stereotypes[m]
	return meta, ok
}

// Namespaces returns every namespace holding units, sorted
func (c *Catalog) Namespaces() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.units))
	for ns := range c.units {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered units
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, loaders := range c.units {
		n += len(loaders)
	}
	return n
}

func (c *Catalog) loaders(namespace string) []Loader {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Loader(nil), c.units[namespace]...)
}

// resolveMeta expands the non-component markers of a unit by one stereotype level
func (c *Catalog) resolveMeta(markers []Marker) []Marker {
	var meta []Marker
	for _, m := range markers {
		declared, ok := c.Stereotype(m)
		if !ok {
			continue
		}
		for _, dm := range declared {
			if !hasMarker(meta, dm) {
				meta = append(meta, dm)
			}
		}
	}
	return meta
}

func normalizeNamespace(ns string) string {
	return strings.Trim(strings.TrimSpace(ns), ".")
}

// inNamespace reports whether ns equals root or is nested below it
func inNamespace(ns, root string) bool {
	if root == "" {
		return true
	}
	return ns == root || strings.HasPrefix(ns, root+".")
}
