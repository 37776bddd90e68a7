package components

import (
	"bytes"

	"go.uber.org/zap"

	"github.com/goliatone/go-schemaform/pkg/markup"
	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// listRenderer emits a titled section followed by one template text input
// named _<field>-list. Tuples share the rule. Elements that are not scalar
// degrade to an inline error marker.
func listRenderer(buf *bytes.Buffer, desc model.Descriptor, data ComponentData) error {
	elem, _ := desc.Elem()
	if !elem.Category.Scalar() {
		logger(data).Warn("list element type not supported",
			zap.String("field", desc.QualifiedName()),
			zap.String("type", elem.Name),
		)
		buf.WriteString(render.ErrorMarker(desc.FieldName(), errorMarkerList))
		return nil
	}

	// Elements are collected as free text and split by the client script.
	item, err := data.Builder.Derive(model.ListFieldName(desc.FieldName()), desc.QualifiedName(), schema.String, model.NewAttributes(false, nil, "", ""))
	if err != nil {
		return err
	}
	itemHTML, err := data.Dispatch(item, "")
	if err != nil {
		return err
	}

	heading, err := markup.MakeTag("h3", nil, markup.Text(labelText(desc, data)))
	if err != nil {
		return err
	}
	section, err := markup.MakeTag("section", nil, heading)
	if err != nil {
		return err
	}

	buf.WriteString(section)
	buf.WriteString(itemHTML)
	return nil
}
