package testsupport

import "github.com/goliatone/go-schemaform/pkg/schema"

// AddressRecord returns a small record with two primitive fields.
func AddressRecord() *schema.Record {
	return schema.NewRecord("Address",
		schema.Field{Name: "street", Type: schema.String, Required: true},
		schema.Field{Name: "zip", Type: schema.Int},
	)
}

// SignupRecord returns a record touching every category the renderers and
// the submission decoder handle:
//
//	email    string, required
//	age      int in [13, 130]
//	plan     enum free|pro, default "free"
//	newsletter bool
//	tags     list[string]
//	labels   dict[string, string]
//	address  Address
//	contact  Union[string, Address]
//	token    string, no_html
func SignupRecord() *schema.Record {
	address := AddressRecord()
	return schema.NewRecord("Signup",
		schema.Field{Name: "email", Type: schema.String, Required: true, Description: "you@example.com"},
		schema.Field{Name: "age", Type: schema.ConstrainedInt(schema.Float64(13), schema.Float64(130))},
		schema.Field{Name: "plan", Type: schema.NewEnum("Plan", "free", "pro"), Default: "free"},
		schema.Field{Name: "newsletter", Type: schema.Bool},
		schema.Field{Name: "tags", Type: schema.ListOf(schema.String)},
		schema.Field{Name: "labels", Type: schema.MapOf(schema.String, schema.String)},
		schema.Field{Name: "address", Type: address},
		schema.Field{Name: "contact", Type: schema.UnionOf(schema.String, address)},
		schema.Field{Name: "token", Type: schema.String, Extensions: schema.NoHTML()},
	)
}
