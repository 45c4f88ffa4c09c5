package rules

import (
	"strings"

	"github.com/nao1215/profilescan/internal/model"
)

// Detector is the interface implemented by every profile check.
//
// Design decision: We use an interface rather than concrete types because:
//  1. The engine can hold the battery as one ordered slice
//  2. Tests can exercise single checks in isolation
//  3. New checks slot in without touching the evaluation loop
type Detector interface {
	// Name returns the stable check identifier. It matches the flag type
	// the check emits.
	Name() string

	// Detect evaluates one record and returns nil when the check does not
	// trigger. Implementations must not retain or mutate the record.
	Detect(record *model.ProfileRecord) *model.RedFlag
}

// Engine runs the full check battery against a record.
//
// Design decision: the battery is ordered and always runs to completion:
//  1. Every triggered check should appear in the report, not only the first
//  2. Stable flag order keeps reports and stored history comparable
//  3. Checks are independent, so there is nothing to short-circuit
//
// An Engine holds no per-evaluation state and is safe for concurrent use.
type Engine struct {
	detectors []Detector
}

// Options configures the keyword vocabularies of the battery. Extensions are
// appended after the built-in lists and lowercased; blank entries are dropped.
type Options struct {
	// ExtraScamKeywords extends the scam vocabulary of the bio check.
	ExtraScamKeywords []string

	// ExtraTelegramPatterns extends the Telegram funnel markers.
	ExtraTelegramPatterns []string

	// ExtraUSIndicators extends the declared-side location indicators of
	// the geo check.
	ExtraUSIndicators []string

	// ExtraNigeriaIndicators extends the technical-side location
	// indicators of the geo check.
	ExtraNigeriaIndicators []string
}

// DefaultOptions returns the built-in vocabularies with no extensions.
func DefaultOptions() Options {
	return Options{}
}

// WithExtraScamKeywords extends the bio check vocabulary.
func WithExtraScamKeywords(keywords ...string) func(*Options) {
	return func(o *Options) {
		o.ExtraScamKeywords = append(o.ExtraScamKeywords, keywords...)
	}
}

// WithExtraTelegramPatterns extends the Telegram funnel markers.
func WithExtraTelegramPatterns(patterns ...string) func(*Options) {
	return func(o *Options) {
		o.ExtraTelegramPatterns = append(o.ExtraTelegramPatterns, patterns...)
	}
}

// WithExtraUSIndicators extends the declared-side geo indicators.
func WithExtraUSIndicators(indicators ...string) func(*Options) {
	return func(o *Options) {
		o.ExtraUSIndicators = append(o.ExtraUSIndicators, indicators...)
	}
}

// WithExtraNigeriaIndicators extends the technical-side geo indicators.
func WithExtraNigeriaIndicators(indicators ...string) func(*Options) {
	return func(o *Options) {
		o.ExtraNigeriaIndicators = append(o.ExtraNigeriaIndicators, indicators...)
	}
}

// NewEngine creates an Engine with the full battery registered in
// evaluation order.
func NewEngine(opts ...func(*Options)) *Engine {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	e := &Engine{detectors: make([]Detector, 0, 8)}
	e.Register(NewGeoDetector(options.ExtraUSIndicators, options.ExtraNigeriaIndicators))
	e.Register(NewGrowthDetector())
	e.Register(NewIdentityDetector())
	e.Register(NewTelegramDetector(options.ExtraTelegramPatterns))
	e.Register(NewBioDetector(options.ExtraScamKeywords))
	e.Register(NewRatioDetector())
	e.Register(NewNetworkDetector())
	e.Register(NewLikeFishingDetector())
	return e
}

// Register appends a detector to the battery.
func (e *Engine) Register(d Detector) {
	e.detectors = append(e.detectors, d)
}

// Evaluate runs every check against the record and returns the triggered
// flags in battery order. A nil record produces no flags.
func (e *Engine) Evaluate(record *model.ProfileRecord) []model.RedFlag {
	if record == nil {
		return nil
	}

	flags := make([]model.RedFlag, 0, len(e.detectors))
	for _, d := range e.detectors {
		if flag := d.Detect(record); flag != nil {
			flags = append(flags, *flag)
		}
	}
	return flags
}

// containsAny reports whether s contains any of the substrings.
func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// matchAll returns the substrings of subs found in s, in subs order.
func matchAll(s string, subs []string) []string {
	var matched []string
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			matched = append(matched, sub)
		}
	}
	return matched
}

// appendLowered merges extras into base, lowercasing each extra and dropping
// blanks so an empty config entry can never match everything.
func appendLowered(base, extras []string) []string {
	merged := make([]string, 0, len(base)+len(extras))
	merged = append(merged, base...)
	for _, extra := range extras {
		extra = strings.ToLower(strings.TrimSpace(extra))
		if extra == "" {
			continue
		}
		merged = append(merged, extra)
	}
	return merged
}
