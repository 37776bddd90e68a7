package components

import (
	"bytes"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-schemaform/pkg/markup"
	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// primitiveRenderer emits a label and a single input whose id and name are the
// qualified name. Constrained numerics share it.
func primitiveRenderer(buf *bytes.Buffer, desc model.Descriptor, data ComponentData) error {
	id := desc.QualifiedName()
	inputType, ok := model.InputType(desc.Category(), desc.InnerType())
	if !ok {
		return fmt.Errorf("components: field %q: no input type for %s", id, desc.Category())
	}

	attrs := markup.Attrs{
		markup.A("type", inputType),
		markup.A("id", id),
		markup.A("name", id),
	}
	attrs = appendValueAttrs(attrs, desc.Attributes())

	if desc.Category() == model.CategoryConstrained {
		if data.Config.ConstrainedBounds {
			attrs = appendBounds(attrs, desc.InnerType())
		} else {
			logger(data).Warn("constrained value rendered without range bounds",
				zap.String("field", id),
				zap.String("type", desc.InnerType().Name()),
			)
		}
	}

	return writeLabelled(buf, id, labelText(desc, data), "input", attrs, "")
}

// appendValueAttrs copies value, required and placeholder in that order.
func appendValueAttrs(attrs markup.Attrs, source model.Attributes) markup.Attrs {
	if def, ok := source.Default(); ok {
		attrs = append(attrs, markup.A("value", def))
	}
	if source.Required() {
		attrs = append(attrs, markup.A("required", ""))
	}
	if placeholder, ok := source.Placeholder(); ok {
		attrs = append(attrs, markup.A("placeholder", placeholder))
	}
	return attrs
}

func appendBounds(attrs markup.Attrs, t schema.Type) markup.Attrs {
	bounded, ok := t.(schema.Bounded)
	if !ok {
		return attrs
	}
	bounds := bounded.Bounds()
	if bounds.Minimum != nil {
		attrs = append(attrs, markup.A("min", *bounds.Minimum))
	}
	if bounds.Maximum != nil {
		attrs = append(attrs, markup.A("max", *bounds.Maximum))
	}
	if !bounds.Integer {
		attrs = append(attrs, markup.A("step", "any"))
	}
	return attrs
}

// labelText applies the label precedence: override, alias, field name.
func labelText(desc model.Descriptor, data ComponentData) string {
	if data.Label != "" {
		return data.Label
	}
	return desc.Label()
}

func writeLabelled(buf *bytes.Buffer, id, label, tag string, attrs markup.Attrs, content string) error {
	labelHTML, err := markup.MakeTag("label", markup.Attrs{markup.A("for", id)}, markup.Text(label))
	if err != nil {
		return err
	}
	controlHTML, err := markup.MakeTag(tag, attrs, content)
	if err != nil {
		return err
	}
	buf.WriteString(labelHTML)
	buf.WriteString(controlHTML)
	return nil
}

func logger(data ComponentData) *zap.Logger {
	if data.Logger == nil {
		return zap.NewNop()
	}
	return data.Logger
}
