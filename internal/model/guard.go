package model

import (
	"fmt"
	"reflect"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Guard tracks the records under expansion during a single pass so a record
// that (transitively) contains itself fails instead of recursing forever.
// A Guard must not be shared between passes.
type Guard struct {
	maxDepth int
	active   map[any]struct{}
}

// NewGuard returns a guard bounded by maxDepth; non-positive values select
// DefaultMaxDepth.
func NewGuard(maxDepth int) *Guard {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Guard{maxDepth: maxDepth, active: make(map[any]struct{})}
}

// Enter marks record as active at path. The returned release func must be
// called once the record's fields have been processed.
func (g *Guard) Enter(record schema.Structure, path string, depth int) (func(), error) {
	if depth > g.maxDepth {
		return nil, fmt.Errorf("model: %q at depth %d: %w", path, depth, ErrDepthExceeded)
	}
	key := identity(record)
	if _, ok := g.active[key]; ok {
		return nil, &CycleError{Path: path, Record: record.Name()}
	}
	g.active[key] = struct{}{}
	return func() { delete(g.active, key) }, nil
}

func identity(t schema.Type) any {
	if t == nil {
		return nil
	}
	if reflect.TypeOf(t).Comparable() {
		return t
	}
	return t.Name()
}
