// Package refusal implements the structured error type the statistics
// core returns instead of unstructured failures. Every refusal carries a
// machine-readable code, a human title, the problem, why it matters, and
// concrete fix steps, and is classed as either a configuration problem
// the user can fix or an internal-consistency bug to report.
package refusal

import (
	"errors"
	"fmt"
)

// Class separates user-fixable configuration problems from internal
// contract violations.
type Class string

const (
	// ClassConfiguration marks problems the user can resolve by fixing
	// their study setup or data.
	ClassConfiguration Class = "CONFIGURATION"
	// ClassInternal marks broken call contracts between components.
	// These are bugs to report, not configuration issues.
	ClassInternal Class = "INTERNAL"
)

// Machine-readable refusal codes.
const (
	CodeQuestionMissing       = "QUESTION_MISSING"
	CodeBannerQuestionMissing = "BANNER_QUESTION_MISSING"
	CodeBannerNoOptions       = "BANNER_NO_VISIBLE_OPTIONS"
	CodeBannerNoCategories    = "BANNER_NO_BOX_CATEGORIES"
	CodeWeightNegative        = "WEIGHT_NEGATIVE"
	CodeWeightInvalid         = "WEIGHT_VECTOR_INVALID"
	CodeBaseContract          = "BASE_CALL_CONTRACT"
	CodeRankingFormat         = "RANKING_FORMAT_INVALID"
	CodeRankingPositions      = "RANKING_POSITIONS_INVALID"
	CodeRankingNoOptions      = "RANKING_NO_OPTIONS"
	CodeRankingNoColumns      = "RANKING_NO_DATA_COLUMNS"
	CodeRankingBadSuffix      = "RANKING_BAD_POSITION_SUFFIX"
	CodeKeySetMismatch        = "SIGTEST_KEY_SET_MISMATCH"
)

// Refusal is a structured, classed error.
type Refusal struct {
	Code      string
	Class     Class
	Title     string
	Problem   string
	Rationale string
	FixSteps  []string
	Cause     error
}

// Error implements the error interface.
func (r *Refusal) Error() string {
	if r.Cause != nil {
		return fmt.Sprintf("[%s/%s] %s: %s: %v", r.Class, r.Code, r.Title, r.Problem, r.Cause)
	}
	return fmt.Sprintf("[%s/%s] %s: %s", r.Class, r.Code, r.Title, r.Problem)
}

// Unwrap allows errors.Is and errors.As to see the cause.
func (r *Refusal) Unwrap() error {
	return r.Cause
}

// WithRationale records why the problem matters.
func (r *Refusal) WithRationale(rationale string) *Refusal {
	r.Rationale = rationale
	return r
}

// WithFix appends remediation steps.
func (r *Refusal) WithFix(steps ...string) *Refusal {
	r.FixSteps = append(r.FixSteps, steps...)
	return r
}

// WithCause attaches an underlying error.
func (r *Refusal) WithCause(err error) *Refusal {
	r.Cause = err
	return r
}

// Configuration creates a user-fixable refusal.
func Configuration(code, title, problem string) *Refusal {
	return &Refusal{Code: code, Class: ClassConfiguration, Title: title, Problem: problem}
}

// Internal creates a refusal for a broken internal call contract.
func Internal(code, title, problem string) *Refusal {
	return &Refusal{
		Code:      code,
		Class:     ClassInternal,
		Title:     title,
		Problem:   problem,
		Rationale: "this indicates a bug in the analysis pipeline, not in the study configuration",
		FixSteps:  []string{"report this error together with the study configuration that triggered it"},
	}
}

// As extracts a Refusal from an error chain.
func As(err error) (*Refusal, bool) {
	var r *Refusal
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// IsConfiguration reports whether err is a user-fixable refusal.
func IsConfiguration(err error) bool {
	r, ok := As(err)
	return ok && r.Class == ClassConfiguration
}

// IsInternal reports whether err is an internal-consistency refusal.
func IsInternal(err error) bool {
	r, ok := As(err)
	return ok && r.Class == ClassInternal
}
