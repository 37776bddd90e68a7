package submission

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-multierror"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// ErrInvalidValue is wrapped by every FieldError.
var ErrInvalidValue = errors.New("submission: invalid value")

// FieldError reports one rejected value by its dotted payload path.
type FieldError struct {
	Path    string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("submission: %s: %s", e.Path, e.Message)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidValue
}

// datetimeLayouts are tried in order; the first matches datetime-local inputs.
var datetimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// Validate checks payload against record and aggregates every failure into a
// multierror. Top-level keys starting with an underscore are treated as form
// controls (tokens, csrf) and skipped. Fields suppressed with no_html are never
// required and never rejected.
func Validate(record schema.Structure, payload map[string]any) error {
	if record == nil {
		return errors.New("submission: record is required")
	}
	v := &validator{}
	v.record(record, payload, "", true)
	return v.result.ErrorOrNil()
}

// FieldErrors flattens a Validate result into messages keyed by path, the
// shape render.MapErrorPayload accepts. Errors that are not FieldErrors are
// collected under the empty key.
func FieldErrors(err error) map[string][]string {
	if err == nil {
		return nil
	}
	out := make(map[string][]string)
	var merr *multierror.Error
	errs := []error{err}
	if errors.As(err, &merr) {
		errs = merr.Errors
	}
	for _, item := range errs {
		var fieldErr *FieldError
		if errors.As(item, &fieldErr) {
			out[fieldErr.Path] = append(out[fieldErr.Path], fieldErr.Message)
			continue
		}
		out[""] = append(out[""], item.Error())
	}
	return out
}

type validator struct {
	result *multierror.Error
}

func (v *validator) fail(path, format string, args ...any) {
	v.result = multierror.Append(v.result, &FieldError{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) record(record schema.Structure, payload map[string]any, path string, top bool) {
	known := make(map[string]struct{})
	for _, field := range record.Fields() {
		known[field.Name] = struct{}{}
		if field.Hidden() {
			continue
		}
		qualified := model.JoinPath(path, field.Name)
		value, ok := payload[field.Name]
		if !ok || value == nil {
			if field.Required {
				v.fail(qualified, "is required")
			}
			continue
		}
		v.value(field.Type, value, qualified)
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, ok := known[key]; ok {
			continue
		}
		if top && strings.HasPrefix(key, "_") {
			continue
		}
		v.fail(model.JoinPath(path, key), "unknown field")
	}
}

func (v *validator) value(t schema.Type, value any, path string) {
	category, err := model.Classify(t)
	if err != nil {
		v.fail(path, "type %q cannot be validated", typeName(t))
		return
	}

	switch category {
	case model.CategoryPrimitive:
		if msg := checkPrimitive(t, value); msg != "" {
			v.fail(path, "%s", msg)
		}
	case model.CategoryEnumeration:
		if msg := checkEnum(t, value); msg != "" {
			v.fail(path, "%s", msg)
		}
	case model.CategoryConstrained:
		if msg := checkConstrained(t, value); msg != "" {
			v.fail(path, "%s", msg)
		}
	case model.CategoryRecord:
		nested, ok := value.(map[string]any)
		if !ok {
			v.fail(path, "expected an object, got %s", kindOf(value))
			return
		}
		v.record(t.(schema.Structure), nested, path, false)
	case model.CategoryList, model.CategoryTuple:
		items, ok := value.([]any)
		if !ok {
			v.fail(path, "expected a list, got %s", kindOf(value))
			return
		}
		elem := t.(schema.Sequence).Elem()
		for i, item := range items {
			v.value(elem, item, model.JoinPath(path, strconv.Itoa(i)))
		}
	case model.CategoryMap:
		entries, ok := value.(map[string]any)
		if !ok {
			v.fail(path, "expected an object, got %s", kindOf(value))
			return
		}
		mapping := t.(schema.Mapping)
		keys := make([]string, 0, len(entries))
		for key := range entries {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			entryPath := model.JoinPath(path, key)
			if model.IsPrimitive(mapping.Key()) {
				if msg := checkPrimitive(mapping.Key(), key); msg != "" {
					v.fail(entryPath, "key %s", msg)
					continue
				}
			}
			v.value(mapping.Value(), entries[key], entryPath)
		}
	case model.CategoryAlternative:
		for _, branch := range t.(schema.Alternatives).Branches() {
			attempt := &validator{}
			attempt.value(branch, value, path)
			if attempt.result.ErrorOrNil() == nil {
				return
			}
		}
		v.fail(path, "does not match any alternative of %s", typeName(t))
	}
}

func checkPrimitive(t schema.Type, value any) string {
	switch schema.PrimitiveKind(t.Name()) {
	case schema.KindBool:
		if _, ok := toBool(value); !ok {
			return fmt.Sprintf("expected a boolean, got %s", kindOf(value))
		}
	case schema.KindInt:
		number, ok := toFloat(value)
		if !ok || number != math.Trunc(number) {
			return fmt.Sprintf("expected an integer, got %s", kindOf(value))
		}
	case schema.KindFloat:
		if _, ok := toFloat(value); !ok {
			return fmt.Sprintf("expected a number, got %s", kindOf(value))
		}
	case schema.KindDatetime:
		text, ok := value.(string)
		if !ok || !parsesAsDatetime(text) {
			return fmt.Sprintf("expected a date and time, got %s", kindOf(value))
		}
	default:
		if _, ok := value.(string); !ok {
			return fmt.Sprintf("expected a string, got %s", kindOf(value))
		}
	}
	return ""
}

func checkEnum(t schema.Type, value any) string {
	text, ok := scalarText(value)
	if !ok {
		return fmt.Sprintf("expected one of %s, got %s", typeName(t), kindOf(value))
	}
	members := t.(schema.Enumeration).Members()
	allowed := make([]string, 0, len(members))
	for _, member := range members {
		if member.Value == text {
			return ""
		}
		allowed = append(allowed, member.Value)
	}
	return fmt.Sprintf("%q is not one of [%s]", text, strings.Join(allowed, ", "))
}

func checkConstrained(t schema.Type, value any) string {
	number, ok := toFloat(value)
	if !ok {
		return fmt.Sprintf("expected a number, got %s", kindOf(value))
	}
	bounded, ok := t.(schema.Bounded)
	if !ok {
		if strings.HasPrefix(t.Name(), "ConstrainedInt") && number != math.Trunc(number) {
			return "expected an integer"
		}
		return ""
	}
	bounds := bounded.Bounds()
	if bounds.Integer && number != math.Trunc(number) {
		return "expected an integer"
	}
	if bounds.Minimum != nil {
		minimum := *bounds.Minimum
		if number < minimum || (bounds.ExclusiveMin && number == minimum) {
			return fmt.Sprintf("must be %s %s", lowerOp(bounds.ExclusiveMin), formatNumber(minimum))
		}
	}
	if bounds.Maximum != nil {
		maximum := *bounds.Maximum
		if number > maximum || (bounds.ExclusiveMax && number == maximum) {
			return fmt.Sprintf("must be %s %s", upperOp(bounds.ExclusiveMax), formatNumber(maximum))
		}
	}
	return ""
}

func lowerOp(exclusive bool) string {
	if exclusive {
		return ">"
	}
	return ">="
}

func upperOp(exclusive bool) string {
	if exclusive {
		return "<"
	}
	return "<="
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func toFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case json.Number:
		f, err := typed.Float64()
		return f, err == nil
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toBool(value any) (bool, bool) {
	switch typed := value.(type) {
	case bool:
		return typed, true
	case string:
		switch strings.ToLower(strings.TrimSpace(typed)) {
		case "on", "true", "1", "yes":
			return true, true
		case "off", "false", "0", "no":
			return false, true
		}
	}
	return false, false
}

func scalarText(value any) (string, bool) {
	switch typed := value.(type) {
	case string:
		return typed, true
	case json.Number:
		return typed.String(), true
	case bool, float64, int, int64:
		return fmt.Sprint(typed), true
	default:
		return "", false
	}
}

func parsesAsDatetime(text string) bool {
	for _, layout := range datetimeLayouts {
		if _, err := time.Parse(layout, text); err == nil {
			return true
		}
	}
	return false
}

func kindOf(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, float32, int, int64:
		return "number"
	case []any:
		return "list"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func typeName(t schema.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.Name()
}
