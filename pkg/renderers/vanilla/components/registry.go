package components

import (
	"bytes"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Renderer defines the contract category renderers must satisfy.
// Implementations receive the field descriptor and write HTML into buf,
// recursing through the helpers on ComponentData for nested fields.
type Renderer func(buf *bytes.Buffer, desc model.Descriptor, data ComponentData) error

// ComponentData carries helpers and configuration for category renderers.
type ComponentData struct {
	Builder model.Builder
	Logger  *zap.Logger
	// Label overrides the descriptor's display label when non-empty.
	Label string
	// Dispatch renders a synthesized descriptor through the registry.
	Dispatch func(desc model.Descriptor, label string) (string, error)
	// Record renders every field of record inline under parent.
	Record func(record schema.Structure, parent string) (string, error)
	Config Config
}

// Config toggles optional output that deviates from the default markup.
type Config struct {
	// ConstrainedBounds emits min/max attributes on constrained numeric
	// inputs.
	ConstrainedBounds bool
}

// Script describes a client script a category needs on the page. Scripts are
// emitted once per page regardless of how many fields require them.
type Script struct {
	Name  string
	Src   string
	Type  string
	Defer bool
}

// Descriptor bundles the renderer implementation with its script dependencies.
type Descriptor struct {
	Category model.Category
	Renderer Renderer
	Scripts  []Script
}

// Registry tracks category descriptors. Callers can override defaults, e.g.
// to swap the enumeration select for a radio group.
type Registry struct {
	mu         sync.RWMutex
	categories map[model.Category]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		categories: make(map[model.Category]Descriptor),
	}
}

// Clone returns a deep copy of the registry to allow isolated mutations.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for category, descriptor := range r.categories {
		cloned.categories[category] = cloneDescriptor(descriptor)
	}
	return cloned
}

// Register associates a descriptor with category. Existing entries are
// replaced.
func (r *Registry) Register(category model.Category, descriptor Descriptor) error {
	if category == model.CategoryUnknown {
		return fmt.Errorf("components: category is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("components: renderer for %s is nil", category)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Category = category
	r.categories[category] = cloneDescriptor(descriptor)
	return nil
}

// MustRegister mirrors Register but panics on error, simplifying default
// registry setup.
func (r *Registry) MustRegister(category model.Category, descriptor Descriptor) {
	if err := r.Register(category, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor fetches the descriptor registered for category.
func (r *Registry) Descriptor(category model.Category) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.categories[category]
	if !ok {
		return Descriptor{}, false
	}
	return cloneDescriptor(descriptor), true
}

// Categories returns the registered categories in declaration order.
func (r *Registry) Categories() []model.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Category, 0, len(r.categories))
	for category := range r.categories {
		out = append(out, category)
	}
	slices.Sort(out)
	return out
}

// Scripts resolves the de-duplicated script dependencies of the provided
// categories, in first-use order.
func (r *Registry) Scripts(categories []model.Category) []Script {
	if len(categories) == 0 {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var scripts []Script
	seen := make(map[string]struct{})
	for _, category := range categories {
		descriptor, ok := r.categories[category]
		if !ok {
			continue
		}
		for _, script := range descriptor.Scripts {
			key := scriptKey(script)
			if _, exists := seen[key]; exists {
				continue
			}
			seen[key] = struct{}{}
			scripts = append(scripts, script)
		}
	}
	return scripts
}

func cloneDescriptor(src Descriptor) Descriptor {
	return Descriptor{
		Category: src.Category,
		Renderer: src.Renderer,
		Scripts:  slices.Clone(src.Scripts),
	}
}

func scriptKey(script Script) string {
	if script.Src != "" {
		return "src:" + script.Src
	}
	return "name:" + script.Name
}
