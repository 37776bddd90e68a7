package components

import (
	"github.com/goliatone/go-schemaform/pkg/model"
)

var (
	commonScript      = Script{Name: ScriptCommon, Type: "text/javascript"}
	appendScript      = Script{Name: ScriptAppend, Type: "text/javascript"}
	collapsibleScript = Script{Name: ScriptCollapsible, Type: "text/javascript"}
)

// NewDefaultRegistry constructs a registry holding the closed category table
// used by the vanilla renderer.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(model.CategoryPrimitive, Descriptor{
		Renderer: primitiveRenderer,
	})
	registry.MustRegister(model.CategoryConstrained, Descriptor{
		Renderer: primitiveRenderer,
	})
	registry.MustRegister(model.CategoryEnumeration, Descriptor{
		Renderer: selectRenderer,
	})
	registry.MustRegister(model.CategoryRecord, Descriptor{
		Renderer: recordRenderer,
	})
	registry.MustRegister(model.CategoryList, Descriptor{
		Renderer: listRenderer,
		Scripts:  []Script{commonScript},
	})
	registry.MustRegister(model.CategoryTuple, Descriptor{
		Renderer: listRenderer,
		Scripts:  []Script{commonScript},
	})
	registry.MustRegister(model.CategoryMap, Descriptor{
		Renderer: mapRenderer,
		Scripts:  []Script{commonScript, appendScript, collapsibleScript},
	})
	registry.MustRegister(model.CategoryAlternative, Descriptor{
		Renderer: alternativeRenderer,
	})

	return registry
}

// RadioEnum returns the radio group presentation for enumerations, for use
// with Registry.Register(model.CategoryEnumeration, RadioEnum()).
func RadioEnum() Descriptor {
	return Descriptor{Renderer: radioRenderer}
}

// FormScripts lists the scripts every rendered form depends on.
func FormScripts() []Script {
	return []Script{
		commonScript,
		{Name: ScriptSubmission, Type: "text/javascript"},
	}
}
