// Package weighting implements the weight side of the crosstab engine:
// repair of raw design-weight vectors, Kish effective sample size,
// weighted mean and variance, and the per-question-type base calculator.
//
// The weight policy is a value type passed explicitly; there is no
// ambient weighting state. A respondent with weight zero stays excluded
// from every base, whether or not they answered.
package weighting
