// Package engine orchestrates a crosstab run: it builds the banner
// structure, resolves the weight vector once, then computes per-question
// bases and rank matrices across a bounded worker pool. Questions are
// independent units of work; one question's refusal is recorded on its
// result and never stops the others (partial-results semantics).
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"crosstab/internal/banner"
	"crosstab/internal/config"
	"crosstab/internal/ranking"
	"crosstab/internal/refusal"
	"crosstab/internal/sigtest"
	"crosstab/internal/survey"
	"crosstab/internal/weighting"
)

// Engine runs crosstab analyses under one configuration.
type Engine struct {
	cfg    config.Config
	logger *slog.Logger
}

// New creates an engine. A nil logger falls back to slog.Default.
func New(cfg config.Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{cfg: cfg, logger: logger}
}

// Request is one analysis run's input: the response dataset, the
// metadata catalog, the banner selections, and the question codes to
// analyze (all catalog questions when empty).
type Request struct {
	Data       *survey.Dataset
	Catalog    *survey.Catalog
	Selections []survey.BannerSelection
	Questions  []string
}

// QuestionResult is one question's outcome: either a complete result or
// a well-formed refusal, never both.
type QuestionResult struct {
	Code     string
	Base     weighting.Base
	Ranking  *ranking.Result
	Warnings []string
	Refusal  *refusal.Refusal
	Elapsed  time.Duration
}

// Failed reports whether the question produced a refusal instead of a
// result.
func (r QuestionResult) Failed() bool {
	return r.Refusal != nil
}

// Report is the run outcome the report-assembly layer consumes.
type Report struct {
	RunID             string
	Structure         *banner.Structure
	Weights           []float64
	WeightDiagnostics *weighting.Diagnostics
	Questions         []QuestionResult
	Elapsed           time.Duration
}

// Run executes one analysis. Banner and weight failures are fatal for
// the whole run, since every question depends on them; per-question
// failures are isolated onto their results.
func (e *Engine) Run(ctx context.Context, req Request) (*Report, error) {
	started := time.Now()
	runID := uuid.NewString()
	logger := e.logger.With("run_id", runID)

	st, err := banner.Build(req.Selections, req.Catalog)
	if err != nil {
		return nil, fmt.Errorf("build banner structure: %w", err)
	}
	logger.InfoContext(ctx, "banner structure built",
		"columns", len(st.Columns),
		"banner_questions", len(st.Groups()),
	)

	policy := weighting.Policy{
		Weighted: e.cfg.Weighting.Enabled,
		Column:   e.cfg.Weighting.Column,
	}
	weights, diag, err := policy.Resolve(req.Data)
	if err != nil {
		return nil, fmt.Errorf("resolve weights: %w", err)
	}
	for _, w := range diag.Warnings {
		logger.WarnContext(ctx, "weight repair", "detail", w)
	}
	logger.InfoContext(ctx, "weights resolved",
		"included", diag.Included,
		"effective_n", diag.EffectiveN,
		"design_effect", diag.DesignEffect,
	)

	codes := req.Questions
	if len(codes) == 0 {
		codes = req.Catalog.QuestionCodes()
	}

	results := make([]QuestionResult, len(codes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Engine.MaxConcurrency)
	for i, code := range codes {
		i, code := i, code
		g.Go(func() error {
			results[i] = e.analyzeQuestion(gctx, logger, req, code, weights)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:             runID,
		Structure:         st,
		Weights:           weights,
		WeightDiagnostics: diag,
		Questions:         results,
		Elapsed:           time.Since(started),
	}
	logger.InfoContext(ctx, "run completed",
		"questions", len(results),
		"failed", report.failedCount(),
		"elapsed", report.Elapsed,
	)
	return report, nil
}

func (e *Engine) analyzeQuestion(ctx context.Context, logger *slog.Logger, req Request, code string, weights []float64) QuestionResult {
	started := time.Now()
	result := QuestionResult{Code: code}
	defer func() {
		result.Elapsed = time.Since(started)
	}()

	q, ok := req.Catalog.Question(code)
	if !ok {
		result.Refusal = refusal.Configuration(
			refusal.CodeQuestionMissing,
			"Question not found",
			fmt.Sprintf("question %q is not in the metadata catalog", code),
		).WithFix("check the analysis question list against the survey structure")
		return result
	}
	opts := req.Catalog.VisibleOptions(code)

	base, err := weighting.CalculateBase(req.Data, q, opts, weights)
	if err != nil {
		result.Refusal = asRefusal(err)
		return result
	}
	result.Base = base

	if q.Type == survey.TypeRanking {
		rr, err := ranking.Extract(req.Data, q, opts, ranking.QualityThresholds{
			MaxTieRate:      e.cfg.Ranking.MaxTieRate,
			MaxGapRate:      e.cfg.Ranking.MaxGapRate,
			MinCompleteness: e.cfg.Ranking.MinCompleteness,
		})
		if err != nil {
			result.Refusal = asRefusal(err)
			return result
		}
		result.Ranking = rr
		result.Warnings = append(result.Warnings, rr.Warnings...)
	}

	for _, w := range result.Warnings {
		logger.WarnContext(ctx, "question warning", "question", code, "detail", w)
	}
	return result
}

// TestRow assembles one statistic row's significance letters under the
// engine's configuration.
func (e *Engine) TestRow(st *banner.Structure, kind sigtest.StatKind, data map[string]sigtest.ColumnData) (map[string]string, []string, error) {
	return sigtest.AssembleRow(st, kind, data, sigtest.Options{
		Alpha:      e.cfg.Significance.Alpha,
		Bonferroni: e.cfg.Significance.Bonferroni,
		MinBase:    e.cfg.Significance.MinBase,
	}, e.logger)
}

func (r *Report) failedCount() int {
	n := 0
	for _, q := range r.Questions {
		if q.Failed() {
			n++
		}
	}
	return n
}

// asRefusal keeps the refusal when err carries one and wraps anything
// else as an internal-consistency refusal, so callers always see a
// structured failure.
func asRefusal(err error) *refusal.Refusal {
	if r, ok := refusal.As(err); ok {
		return r
	}
	return refusal.Internal(
		refusal.CodeBaseContract,
		"Unexpected analysis failure",
		err.Error(),
	).WithCause(err)
}
