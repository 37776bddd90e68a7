package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-schemaform/pkg/markup"
	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// selectRenderer emits a label and a select with one option per member.
// Neither required nor a preselected option is emitted.
func selectRenderer(buf *bytes.Buffer, desc model.Descriptor, data ComponentData) error {
	id := desc.QualifiedName()
	members, err := enumMembers(desc)
	if err != nil {
		return err
	}

	var options strings.Builder
	for _, member := range members {
		option, err := markup.MakeTag("option", markup.Attrs{markup.A("value", member.Value)}, markup.Text(member.Value))
		if err != nil {
			return err
		}
		options.WriteString(option)
	}

	attrs := markup.Attrs{
		markup.A("name", id),
		markup.A("id", id),
	}
	return writeLabelled(buf, id, labelText(desc, data), "select", attrs, options.String())
}

// radioRenderer presents an enumeration as a fieldset of radio inputs sharing
// the qualified name.
func radioRenderer(buf *bytes.Buffer, desc model.Descriptor, data ComponentData) error {
	id := desc.QualifiedName()
	members, err := enumMembers(desc)
	if err != nil {
		return err
	}

	legend, err := markup.MakeTag("legend", nil, markup.Text(labelText(desc, data)))
	if err != nil {
		return err
	}

	var inputs bytes.Buffer
	inputs.WriteString(legend)
	for _, member := range members {
		optionID := id + "-" + member.Value
		attrs := markup.Attrs{
			markup.A("type", "radio"),
			markup.A("id", optionID),
			markup.A("name", id),
			markup.A("value", member.Value),
		}
		if err := writeLabelled(&inputs, optionID, member.Value, "input", attrs, ""); err != nil {
			return err
		}
	}

	fieldset, err := markup.MakeTag("fieldset", nil, inputs.String())
	if err != nil {
		return err
	}
	buf.WriteString(fieldset)
	return nil
}

func enumMembers(desc model.Descriptor) ([]schema.EnumMember, error) {
	enum, ok := desc.InnerType().(schema.Enumeration)
	if !ok {
		return nil, fmt.Errorf("components: field %q: type %q exposes no members", desc.QualifiedName(), desc.InnerType().Name())
	}
	return enum.Members(), nil
}
