// Package schema is the read-only contract the form engine consumes: types
// expose their structure through small capability interfaces (Enumeration,
// Structure, Sequence, Mapping, Alternatives, Bounded) and records keep their
// fields in declaration order. Schema sources (JSON Schema, OpenAPI, CUE, Go
// structs) produce a Catalog of records through a FormatAdapter.
package schema
