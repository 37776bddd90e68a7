package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Name is the renderer identifier.
const Name = "tui"

var datetimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Renderer implements render.Renderer for terminal-driven sessions. It walks
// a record with the same descriptors the HTML renderer uses and prompts once
// per scalar. The answers are serialized as the nested payload the browser
// runtime would have posted.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	logger            *zap.Logger
	maxDepth          int
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		logger:       zap.NewNop(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		driver, err := newSurveyDriver()
		if err != nil {
			return nil, err
		}
		r.driver = driver
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render prompts for every visible field of record and returns the collected
// values. Initial values in opts seed the prompt defaults.
func (r *Renderer) Render(ctx context.Context, record schema.Structure, opts render.RenderOptions) ([]byte, error) {
	values, err := r.Collect(ctx, record, opts.Values)
	if err != nil {
		return nil, err
	}
	return r.serialize(values)
}

// Collect runs the prompt session and returns the nested values without
// serializing them.
func (r *Renderer) Collect(ctx context.Context, record schema.Structure, initial map[string]any) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors.New("tui: record is nil")
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	s := &session{
		r: r,
		builder: model.NewBuilder(
			model.WithLogger(r.logger),
			model.WithValues(initial),
			model.WithMaxDepth(r.maxDepth),
		),
		guard: model.NewGuard(r.maxDepth),
	}
	values := make(map[string]any)
	if err := s.record(ctx, record, "", values); err != nil {
		return nil, err
	}

	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return values, nil
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	if values == nil {
		values = map[string]any{}
	}
	if r.outputFormat == OutputFormatPrettyJSON {
		return json.MarshalIndent(values, "", "  ")
	}
	return json.Marshal(values)
}

type session struct {
	r       *Renderer
	builder model.Builder
	guard   *model.Guard
	depth   int
}

func (s *session) record(ctx context.Context, record schema.Structure, parent string, target map[string]any) error {
	release, err := s.guard.Enter(record, parent, s.depth)
	if err != nil {
		return err
	}
	defer release()

	s.depth++
	defer func() { s.depth-- }()

	for _, field := range record.Fields() {
		desc, ok, err := s.builder.Build(field, parent)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		value, set, err := s.prompt(ctx, desc, desc.Label())
		if err != nil {
			return err
		}
		if set {
			target[field.Name] = value
		}
	}
	return nil
}

func (s *session) prompt(ctx context.Context, desc model.Descriptor, label string) (any, bool, error) {
	switch desc.Category() {
	case model.CategoryPrimitive, model.CategoryConstrained:
		return s.scalar(ctx, desc, label)
	case model.CategoryEnumeration:
		return s.enumeration(ctx, desc, label)
	case model.CategoryRecord:
		return s.nested(ctx, desc, label)
	case model.CategoryList, model.CategoryTuple:
		return s.list(ctx, desc, label)
	case model.CategoryMap:
		return s.mapping(ctx, desc, label)
	case model.CategoryAlternative:
		info, _ := desc.Alternatives()
		branch, err := s.builder.Derive(desc.FieldName(), desc.ParentPath(), info.Branches[0].Type, desc.Attributes())
		if err != nil {
			return nil, false, err
		}
		return s.prompt(ctx, branch, label)
	default:
		return nil, false, &render.UnhandledCategoryError{Field: desc.QualifiedName(), Category: desc.Category()}
	}
}

func (s *session) scalar(ctx context.Context, desc model.Descriptor, label string) (any, bool, error) {
	attrs := desc.Attributes()
	def, hasDefault := attrs.Default()
	help, _ := attrs.Placeholder()

	if desc.Category() == model.CategoryPrimitive && desc.OuterType().Name() == string(schema.KindBool) {
		answer, err := s.r.driver.Confirm(ctx, ConfirmConfig{
			Message: s.message(label),
			Default: hasDefault && def == true,
			Help:    help,
		})
		if err != nil {
			return nil, false, err
		}
		return answer, true, nil
	}

	cfg := InputConfig{
		Message: s.message(label),
		Help:    help,
	}
	if hasDefault {
		cfg.Default = fmt.Sprint(def)
	}
	convert := scalarConverter(desc.OuterType())
	required := attrs.Required()
	cfg.Validator = func(answer string) error {
		answer = strings.TrimSpace(answer)
		if answer == "" {
			if required {
				return ErrEmptyAnswer
			}
			return nil
		}
		_, err := convert(answer)
		return err
	}

	answer, err := s.r.driver.Input(ctx, cfg)
	if err != nil {
		return nil, false, err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, false, nil
	}
	value, err := convert(answer)
	if err != nil {
		return nil, false, fmt.Errorf("tui: field %q: %w", desc.QualifiedName(), err)
	}
	return value, true, nil
}

func (s *session) enumeration(ctx context.Context, desc model.Descriptor, label string) (any, bool, error) {
	enum, ok := desc.OuterType().(schema.Enumeration)
	if !ok {
		return nil, false, fmt.Errorf("tui: field %q: enumeration exposes no members", desc.QualifiedName())
	}
	members := enum.Members()
	if len(members) == 0 {
		return nil, false, nil
	}

	options := make([]string, len(members))
	defaultIndex := -1
	def, hasDefault := desc.Attributes().Default()
	for i, member := range members {
		options[i] = member.Name
		if hasDefault && fmt.Sprint(def) == member.Value {
			defaultIndex = i
		}
	}

	idx, err := s.r.driver.Select(ctx, SelectConfig{
		Message:      s.message(label),
		Options:      options,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return nil, false, err
	}
	if idx < 0 || idx >= len(members) {
		return nil, false, fmt.Errorf("tui: field %q: selection %d out of range", desc.QualifiedName(), idx)
	}
	return members[idx].Value, true, nil
}

func (s *session) nested(ctx context.Context, desc model.Descriptor, label string) (any, bool, error) {
	record, ok := desc.Record()
	if !ok {
		return nil, false, fmt.Errorf("tui: field %q: record exposes no fields", desc.QualifiedName())
	}
	if err := s.r.driver.Info(ctx, s.r.theme.SectionPrefix+label); err != nil {
		return nil, false, err
	}
	values := make(map[string]any)
	if err := s.record(ctx, record, desc.QualifiedName(), values); err != nil {
		return nil, false, err
	}
	if len(values) == 0 && !desc.Attributes().Required() {
		return nil, false, nil
	}
	return values, true, nil
}

// list reads one comma-separated answer, the same shape the HTML list input
// submits.
func (s *session) list(ctx context.Context, desc model.Descriptor, label string) (any, bool, error) {
	elem, _ := desc.Elem()
	if !elem.Category.Scalar() {
		s.r.logger.Warn("list element type not supported in terminal",
			zap.String("field", desc.QualifiedName()),
			zap.String("type", elem.Name),
		)
		return nil, false, nil
	}

	convert := scalarConverter(elem.Type)
	if elem.Category == model.CategoryEnumeration {
		convert = enumConverter(elem.Type)
	}
	split := func(answer string) ([]any, error) {
		var items []any
		for _, part := range strings.Split(answer, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			value, err := convert(part)
			if err != nil {
				return nil, err
			}
			items = append(items, value)
		}
		return items, nil
	}

	answer, err := s.r.driver.Input(ctx, InputConfig{
		Message: s.message(label + " (comma separated)"),
		Validator: func(answer string) error {
			_, err := split(answer)
			return err
		},
	})
	if err != nil {
		return nil, false, err
	}
	items, err := split(answer)
	if err != nil {
		return nil, false, fmt.Errorf("tui: field %q: %w", desc.QualifiedName(), err)
	}
	if len(items) == 0 {
		return nil, false, nil
	}
	return items, true, nil
}

// mapping loops on a confirm prompt, asking for a key and a value per entry.
func (s *session) mapping(ctx context.Context, desc model.Descriptor, label string) (any, bool, error) {
	info, ok := desc.Map()
	if !ok {
		return nil, false, fmt.Errorf("tui: field %q: %w", desc.QualifiedName(), model.ErrIncompleteMap)
	}
	if !info.Key.Category.MapSlot() || !model.SupportedMapValue(info.Value.Category) {
		s.r.logger.Warn("map type not supported in terminal",
			zap.String("field", desc.QualifiedName()),
			zap.String("key", info.Key.Name),
			zap.String("value", info.Value.Name),
		)
		return nil, false, nil
	}

	qualified := desc.QualifiedName()
	keyName := model.KeyFieldName(desc.FieldName())
	rowAttrs := desc.Attributes().WithoutDefault().WithoutAlias()
	convertKey := scalarConverter(info.Key.Type)
	entries := make(map[string]any)

	for {
		more, err := s.r.driver.Confirm(ctx, ConfirmConfig{
			Message: s.message(fmt.Sprintf("Add an entry to %s?", label)),
		})
		if err != nil {
			return nil, false, err
		}
		if !more {
			break
		}

		key, err := s.r.driver.Input(ctx, InputConfig{
			Message: s.message("key"),
			Validator: func(answer string) error {
				answer = strings.TrimSpace(answer)
				if answer == "" {
					return ErrEmptyAnswer
				}
				if _, exists := entries[answer]; exists {
					return fmt.Errorf("tui: key %q already set", answer)
				}
				_, err := convertKey(answer)
				return err
			},
		})
		if err != nil {
			return nil, false, err
		}
		key = strings.TrimSpace(key)

		var value any
		var set bool
		switch {
		case info.Value.Category == model.CategoryRecord:
			record, _ := info.Value.Type.(schema.Structure)
			nested := make(map[string]any)
			if err := s.record(ctx, record, model.JoinPath(qualified, keyName), nested); err != nil {
				return nil, false, err
			}
			value, set = nested, true
		case info.Value.Category == model.CategoryMap:
			inner, err := s.builder.Derive(keyName, qualified, info.Value.Type, rowAttrs)
			if err != nil {
				return nil, false, err
			}
			if value, set, err = s.mapping(ctx, inner, key); err != nil {
				return nil, false, err
			}
		default:
			inner, err := s.builder.Derive(model.ValueFieldName(desc.FieldName()), qualified, info.Value.Type, rowAttrs)
			if err != nil {
				return nil, false, err
			}
			if value, set, err = s.prompt(ctx, inner, "value"); err != nil {
				return nil, false, err
			}
		}
		if set {
			entries[key] = value
		}
	}

	if len(entries) == 0 {
		return nil, false, nil
	}
	return entries, true, nil
}

func (s *session) message(label string) string {
	return s.r.theme.PromptPrefix + label
}

type converter func(string) (any, error)

// scalarConverter parses an answer into the JSON value the browser would have
// produced for t. Strings stay strings; numbers and booleans are typed so the
// output validates without coercion.
func scalarConverter(t schema.Type) converter {
	if bounded, ok := t.(schema.Bounded); ok {
		return boundedConverter(bounded.Bounds())
	}
	switch t.Name() {
	case "ConstrainedIntValue":
		return boundedConverter(schema.Bounds{Integer: true})
	case "ConstrainedFloatValue":
		return boundedConverter(schema.Bounds{})
	}
	switch schema.PrimitiveKind(t.Name()) {
	case schema.KindInt:
		return func(answer string) (any, error) {
			v, err := strconv.ParseInt(answer, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("tui: %q is not an integer", answer)
			}
			return v, nil
		}
	case schema.KindFloat:
		return func(answer string) (any, error) {
			v, err := strconv.ParseFloat(answer, 64)
			if err != nil {
				return nil, fmt.Errorf("tui: %q is not a number", answer)
			}
			return v, nil
		}
	case schema.KindBool:
		return func(answer string) (any, error) {
			v, err := strconv.ParseBool(answer)
			if err != nil {
				return nil, fmt.Errorf("tui: %q is not a boolean", answer)
			}
			return v, nil
		}
	case schema.KindDatetime:
		return func(answer string) (any, error) {
			for _, layout := range datetimeLayouts {
				if _, err := time.Parse(layout, answer); err == nil {
					return answer, nil
				}
			}
			return nil, fmt.Errorf("tui: %q is not a date and time (YYYY-MM-DDTHH:MM)", answer)
		}
	default:
		return func(answer string) (any, error) {
			return answer, nil
		}
	}
}

func boundedConverter(bounds schema.Bounds) converter {
	return func(answer string) (any, error) {
		v, err := strconv.ParseFloat(answer, 64)
		if err != nil {
			return nil, fmt.Errorf("tui: %q is not a number", answer)
		}
		if bounds.Integer && v != math.Trunc(v) {
			return nil, fmt.Errorf("tui: %q is not an integer", answer)
		}
		if bounds.Minimum != nil && (v < *bounds.Minimum || (bounds.ExclusiveMin && v == *bounds.Minimum)) {
			return nil, fmt.Errorf("tui: %s is below the minimum %v", answer, *bounds.Minimum)
		}
		if bounds.Maximum != nil && (v > *bounds.Maximum || (bounds.ExclusiveMax && v == *bounds.Maximum)) {
			return nil, fmt.Errorf("tui: %s is above the maximum %v", answer, *bounds.Maximum)
		}
		if bounds.Integer {
			return int64(v), nil
		}
		return v, nil
	}
}

func enumConverter(t schema.Type) converter {
	enum, _ := t.(schema.Enumeration)
	return func(answer string) (any, error) {
		if enum == nil {
			return answer, nil
		}
		for _, member := range enum.Members() {
			if member.Value == answer || member.Name == answer {
				return member.Value, nil
			}
		}
		return nil, fmt.Errorf("tui: %q is not one of the allowed values", answer)
	}
}

var _ render.Renderer = (*Renderer)(nil)
