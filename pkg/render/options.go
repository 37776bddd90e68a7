package render

// DefaultFormName is the name attribute of the generated form element.
const DefaultFormName = "myform"

// RenderOptions describe per-request data that renderers use to customise
// their output without mutating the schema.
type RenderOptions struct {
	// URI is the submission target. It travels with the form as the hidden
	// _uri input so the client script knows where to post the JSON body.
	URI string
	// FormName overrides DefaultFormName.
	FormName string
	// Values pre-populates controls keyed by qualified field name (e.g.
	// "owner.email"). A value replaces the schema default for that field.
	Values map[string]any
	// Hidden adds extra hidden inputs after _uri, sorted by name.
	Hidden map[string]string
}

// ResolvedFormName returns the configured form name or the default.
func (o RenderOptions) ResolvedFormName() string {
	if o.FormName == "" {
		return DefaultFormName
	}
	return o.FormName
}
