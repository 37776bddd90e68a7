package components

import (
	"bytes"
	"fmt"

	"github.com/goliatone/go-schemaform/pkg/model"
)

// recordRenderer inlines the nested record's fields under the field's
// qualified name. No header is emitted.
func recordRenderer(buf *bytes.Buffer, desc model.Descriptor, data ComponentData) error {
	record, ok := desc.Record()
	if !ok {
		return fmt.Errorf("components: field %q: record type exposes no fields", desc.QualifiedName())
	}
	html, err := data.Record(record, desc.QualifiedName())
	if err != nil {
		return err
	}
	buf.WriteString(html)
	return nil
}

// alternativeRenderer renders the first declared branch as if the field had
// been declared with that type. Later branches contribute nothing.
func alternativeRenderer(buf *bytes.Buffer, desc model.Descriptor, data ComponentData) error {
	info, ok := desc.Alternatives()
	if !ok || len(info.Branches) == 0 {
		return fmt.Errorf("components: field %q: alternative declares no branches", desc.QualifiedName())
	}
	branch, err := data.Builder.Derive(desc.FieldName(), desc.ParentPath(), info.Branches[0].Type, desc.Attributes())
	if err != nil {
		return err
	}
	html, err := data.Dispatch(branch, data.Label)
	if err != nil {
		return err
	}
	buf.WriteString(html)
	return nil
}
