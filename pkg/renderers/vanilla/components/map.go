package components

import (
	"bytes"
	"fmt"
	"html"

	"go.uber.org/zap"

	"github.com/goliatone/go-schemaform/pkg/markup"
	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// mapKeyDefault pre-fills the key input of every new row.
const mapKeyDefault = "01"

// Label overrides for the synthesized map inputs.
const (
	mapKeyReference = "reference"
	mapValueLabel   = "value"
)

// mapSectionTemplate is the appendable row block. The client script relies
// on the ids and on the first duplicate_item/remove_item argument being the
// synthesized key name.
const mapSectionTemplate = `
<section id='%[1]s-section'>
<h3 onclick="collapsible('%[1]s-items'); return false;">%[2]s</h3>
<div>
<a id='%[1]s-add-button' href='#' onclick='duplicate_item("%[3]s", "%[1]s-template", "%[1]s-section"); return false;'>add</a>
</div>
<template id='%[1]s-template'>
<fieldset name='%[1]s-items' class='collapsible'>
%[4]s%[5]s
<a id='%[1]s-remove-button' href='#' onclick='remove_item("%[3]s", "%[1]s-template", "%[1]s-section"); return false;'>remove</a>
</fieldset>
</template>
</section>
`

// mapRenderer emits a collapsible section holding a template row with a key
// input named _<field>-key and a value form. Record values nest under the key
// name, map values recurse, primitive and constrained values become
// _<field>-value. Enumerations are not accepted on either side of a row.
func mapRenderer(buf *bytes.Buffer, desc model.Descriptor, data ComponentData) error {
	info, ok := desc.Map()
	if !ok {
		return fmt.Errorf("components: field %q: %w", desc.QualifiedName(), model.ErrIncompleteMap)
	}

	qualified := desc.QualifiedName()
	keyName := model.KeyFieldName(desc.FieldName())
	// Rows never inherit the collection default.
	rowAttrs := desc.Attributes().WithoutDefault().WithoutAlias()

	keysHTML, err := renderMapKey(desc, info, keyName, rowAttrs, data)
	if err != nil {
		return err
	}

	var valuesHTML string
	switch {
	case info.Value.Category.MapSlot():
		value, err := data.Builder.Derive(model.ValueFieldName(desc.FieldName()), qualified, info.Value.Type, rowAttrs)
		if err != nil {
			return err
		}
		if valuesHTML, err = data.Dispatch(value, mapValueLabel); err != nil {
			return err
		}

	case info.Value.Category == model.CategoryRecord:
		record, ok := info.Value.Type.(schema.Structure)
		if !ok {
			return fmt.Errorf("components: field %q: record value exposes no fields", qualified)
		}
		if valuesHTML, err = data.Record(record, model.JoinPath(qualified, keyName)); err != nil {
			return err
		}

	case info.Value.Category == model.CategoryMap:
		nested, err := data.Builder.Derive(keyName, qualified, info.Value.Type, rowAttrs)
		if err != nil {
			return err
		}
		if valuesHTML, err = data.Dispatch(nested, ""); err != nil {
			return err
		}

	default:
		logger(data).Warn("map value type not supported",
			zap.String("field", qualified),
			zap.String("type", info.Value.Name),
		)
		buf.WriteString(render.ErrorMarker(desc.FieldName(), errorMarkerDict))
		return nil
	}

	fmt.Fprintf(buf, mapSectionTemplate,
		html.EscapeString(qualified),
		markup.Text(labelText(desc, data)),
		html.EscapeString(keyName),
		keysHTML,
		valuesHTML,
	)
	return nil
}

func renderMapKey(desc model.Descriptor, info model.MapInfo, keyName string, rowAttrs model.Attributes, data ComponentData) (string, error) {
	if !info.Key.Category.MapSlot() {
		logger(data).Warn("map key type not supported",
			zap.String("field", desc.QualifiedName()),
			zap.String("type", info.Key.Name),
		)
		return render.KeyTypePlaceholder, nil
	}

	key, err := data.Builder.Derive(keyName, desc.QualifiedName(), info.Key.Type, rowAttrs.WithDefault(mapKeyDefault))
	if err != nil {
		return "", err
	}
	return data.Dispatch(key, mapKeyLabel(info.Value))
}

// mapKeyLabel names the key after the value it references: records lend
// their display name, scalars and maps read "reference".
func mapKeyLabel(value model.ElemInfo) string {
	switch {
	case value.Category == model.CategoryRecord:
		return value.Name
	case value.Category.MapSlot(), value.Category == model.CategoryMap:
		return mapKeyReference
	default:
		return ""
	}
}
