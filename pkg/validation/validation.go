// Package validation checks that schema documents render cleanly: that the
// adapter can convert them and that no field degrades to a placeholder or an
// error marker.
package validation

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Issue kinds beyond the model.IssueKind values.
const (
	KindConversion    = "conversion"
	KindCycle         = "cycle"
	KindUnclassified  = "unclassifiable"
	KindDepthExceeded = "depth"
	KindOther         = "other"
)

// SchemaIssue represents a finding with optional location metadata.
type SchemaIssue struct {
	Record  string `json:"record,omitempty"`
	Field   string `json:"field,omitempty"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SchemaValidationResult captures validation outcomes for lint reports and
// builder previews.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty"`
}

// ValidateDocument converts doc with adapter and lints every record of the
// resulting catalog.
func ValidateDocument(ctx context.Context, adapter schema.FormatAdapter, doc schema.Document, builder model.Builder) SchemaValidationResult {
	if adapter == nil {
		return invalid(SchemaIssue{Kind: KindConversion, Message: "no adapter for document"})
	}
	catalog, err := adapter.Catalog(ctx, doc)
	if err != nil {
		return invalid(issueFromConversion(adapter.Name(), err))
	}
	return ValidateCatalog(catalog, builder)
}

// ValidateCatalog lints the named records, or every record when names is
// empty, in catalog order.
func ValidateCatalog(catalog *schema.Catalog, builder model.Builder, names ...string) SchemaValidationResult {
	result := SchemaValidationResult{Valid: true}
	if builder == nil {
		builder = model.NewBuilder()
	}
	if len(names) == 0 {
		names = catalog.Names()
	}

	for _, name := range names {
		record, ok := catalog.Record(name)
		if !ok {
			result.Issues = append(result.Issues, SchemaIssue{Record: name, Kind: KindOther, Message: "record not found"})
			continue
		}
		for _, err := range flatten(builder.Lint(record)) {
			issue := issueFromLint(err)
			issue.Record = name
			result.Issues = append(result.Issues, issue)
		}
	}
	result.Valid = len(result.Issues) == 0
	return result
}

func invalid(issue SchemaIssue) SchemaValidationResult {
	return SchemaValidationResult{Valid: false, Issues: []SchemaIssue{issue}}
}

func flatten(err error) []error {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		return merr.Errors
	}
	return []error{err}
}

func issueFromLint(err error) SchemaIssue {
	var (
		issue        model.Issue
		cycle        *model.CycleError
		unclassified *model.UnclassifiableTypeError
	)
	switch {
	case errors.As(err, &issue):
		return SchemaIssue{Field: issue.Field, Kind: string(issue.Kind), Message: trimPrefix(err.Error())}
	case errors.As(err, &cycle):
		return SchemaIssue{Field: cycle.Path, Kind: KindCycle, Message: trimPrefix(err.Error())}
	case errors.As(err, &unclassified):
		return SchemaIssue{Field: unclassified.Field, Kind: KindUnclassified, Message: trimPrefix(err.Error())}
	case errors.Is(err, model.ErrDepthExceeded):
		return SchemaIssue{Kind: KindDepthExceeded, Message: trimPrefix(err.Error())}
	default:
		return SchemaIssue{Kind: KindOther, Message: trimPrefix(err.Error())}
	}
}

var propertyPattern = regexp.MustCompile(`property "([^"]+)"`)

// issueFromConversion recovers the field path adapters embed as a chain of
// `property "name"` wrappers.
func issueFromConversion(adapterName string, err error) SchemaIssue {
	msg := strings.TrimSpace(err.Error())
	var parts []string
	for _, match := range propertyPattern.FindAllStringSubmatch(msg, -1) {
		parts = append(parts, match[1])
	}
	return SchemaIssue{
		Field:   strings.Join(parts, "."),
		Kind:    KindConversion,
		Message: strings.TrimPrefix(trimPrefix(msg), adapterName+": "),
	}
}

func trimPrefix(msg string) string {
	msg = strings.TrimPrefix(msg, "model: ")
	return strings.TrimSpace(msg)
}
