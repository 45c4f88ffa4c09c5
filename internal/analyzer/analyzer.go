package analyzer

import (
	"errors"
	"fmt"
	"time"

	"github.com/nao1215/profilescan/internal/anonymize"
	"github.com/nao1215/profilescan/internal/model"
	"github.com/nao1215/profilescan/internal/rules"
)

// ErrNilRecord is returned when Analyze is called without a record.
var ErrNilRecord = errors.New("analyzer: record is nil")

// StandardDisclaimer is attached to discovery and investigation reports,
// which never carry raw identifying data.
const StandardDisclaimer = "Educational analysis - patterns anonymized"

// ExpertDisclaimer is the warning block attached to expert reports, which
// expose the profile as-is.
const ExpertDisclaimer = "⚠️ EXPERT MODE - IDENTIFYING DATA VISIBLE\n" +
	"This report contains identifying information.\n" +
	"Public sharing may have legal and ethical consequences.\n" +
	"Use responsibly for documentation purposes only."

// Analyzer evaluates profile records and assembles reports.
//
// Design decision: an Analyzer carries no per-evaluation state. Every
// Analyze call works on locals only, so a single Analyzer is safe for
// concurrent use; the BatchProcessor relies on this.
type Analyzer struct {
	engine   *rules.Engine
	ruleOpts []func(*rules.Options)
	version  string
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithVersion stamps reports with the given tool version.
func WithVersion(version string) Option {
	return func(a *Analyzer) {
		if version != "" {
			a.version = version
		}
	}
}

// WithRuleOptions passes vocabulary extensions through to the check battery.
func WithRuleOptions(opts ...func(*rules.Options)) Option {
	return func(a *Analyzer) {
		a.ruleOpts = append(a.ruleOpts, opts...)
	}
}

// New creates an Analyzer with the full check battery registered.
func New(opts ...Option) *Analyzer {
	analyzer := &Analyzer{version: "dev"}
	for _, opt := range opts {
		opt(analyzer)
	}
	analyzer.engine = rules.NewEngine(analyzer.ruleOpts...)
	return analyzer
}

// Analyze evaluates one record and assembles the report for the given mode.
// The record itself is never modified. Identical inputs produce identical
// reports except for the analysis timestamp.
func (a *Analyzer) Analyze(record *model.ProfileRecord, mode model.Mode) (*model.AnalysisReport, error) {
	if record == nil {
		return nil, ErrNilRecord
	}
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("analyzer: %w", err)
	}

	flags := a.engine.Evaluate(record)
	score := model.RiskScore(flags)

	return &model.AnalysisReport{
		Meta: model.ReportMeta{
			Tool:       model.ToolName,
			Version:    a.version,
			Mode:       mode,
			AnalyzedAt: time.Now().UTC(),
			Disclaimer: disclaimerFor(mode),
		},
		RiskAssessment: model.RiskAssessment{
			Score:         score,
			Level:         model.RiskLevelFromScore(score),
			RedFlagsCount: len(flags),
		},
		Profile:         anonymize.Apply(mode, record),
		RedFlags:        flags,
		Recommendations: recommendations(score, flags),
	}, nil
}

// disclaimerFor selects the disclaimer for the report mode.
func disclaimerFor(mode model.Mode) string {
	if mode == model.ModeExpert {
		return ExpertDisclaimer
	}
	return StandardDisclaimer
}
