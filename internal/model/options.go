package model

import "go.uber.org/zap"

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	// Logger receives suppression and degrade notices. Defaults to a no-op.
	Logger *zap.Logger
	// Values pre-fills descriptor defaults keyed by qualified name.
	Values map[string]any
	// Labeler humanises field names for renderers that want prose labels.
	Labeler func(string) string
	// MaxDepth bounds record nesting during walks. Zero selects the default.
	MaxDepth int
}

// DefaultMaxDepth bounds nesting when Options.MaxDepth is unset.
const DefaultMaxDepth = 32

func defaultOptions() Options {
	return Options{
		Logger:   zap.NewNop(),
		Labeler:  DefaultLabeler,
		MaxDepth: DefaultMaxDepth,
	}
}

func (o Options) withDefaults() Options {
	defaults := defaultOptions()
	if o.Logger == nil {
		o.Logger = defaults.Logger
	}
	if o.Labeler == nil {
		o.Labeler = defaults.Labeler
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = defaults.MaxDepth
	}
	return o
}
