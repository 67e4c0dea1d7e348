package melt

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ScalarType is the target type of a bound handler parameter
type ScalarType int

const (
	String ScalarType = iota
	Int
	Long
	Bool
	UUID
)

// String returns the Go type name the scalar binds to
func (s ScalarType) String() string {
	switch s {
	case String:
		return "string"
	case Int:
		return "int"
	case Long:
		return "int64"
	case Bool:
		return "bool"
	case UUID:
		return "uuid.UUID"
	default:
		return "unknown"
	}
}

// ScalarParser converts raw request text into a typed value
type ScalarParser func(raw string) (any, error)

// BuiltinParsers holds the parser for every scalar type
var BuiltinParsers = map[ScalarType]ScalarParser{
	String: ParseString,
	Int:    ParseInt,
	Long:   ParseLong,
	Bool:   ParseBool,
	UUID:   ParseUUID,
}

// ScalarAliases maps type names accepted in annotations and path patterns
var ScalarAliases = map[string]ScalarType{
	"string":    String,
	"int":       Int,
	"integer":   Int,
	"int64":     Long,
	"long":      Long,
	"bool":      Bool,
	"boolean":   Bool,
	"uuid":      UUID,
	"UUID":      UUID,
	"uuid.UUID": UUID,
}

// ParseScalarType resolves a type name or alias
func ParseScalarType(name string) (ScalarType, bool) {
	t, ok := ScalarAliases[strings.TrimSpace(name)]
	return t, ok
}

// ScalarTypeNames returns every accepted type name, sorted
func ScalarTypeNames() []string {
	names := make([]string, 0, len(ScalarAliases))
	for name := range ScalarAliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse converts raw with the parser registered for s
func (s ScalarType) Parse(raw string) (any, error) {
	parser, ok := BuiltinParsers[s]
	if !ok {
		return nil, fmt.Errorf("no parser for scalar type %d", int(s))
	}
	return parser(raw)
}

// ParseString returns the raw value as-is
func ParseString(raw string) (any, error) {
	return raw, nil
}

// ParseInt parses a base-10 int
func ParseInt(raw string) (any, error) {
	return strconv.Atoi(raw)
}

// ParseLong parses a base-10 int64
func ParseLong(raw string) (any, error) {
	return strconv.ParseInt(raw, 10, 64)
}

// ParseBool is true only for a case-insensitive "true"; anything else is false
func ParseBool(raw string) (any, error) {
	return strings.EqualFold(raw, "true"), nil
}

// ParseUUID parses a uuid.UUID
func ParseUUID(raw string) (any, error) {
	return uuid.Parse(raw)
}
