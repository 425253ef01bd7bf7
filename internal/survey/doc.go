// Package survey defines the shared data model consumed by the crosstab
// statistics core: the tabular response dataset, the question/option
// metadata catalog, and the closed set of question types.
//
// The reporting shell that parses raw files is expected to hand this
// package already-resolved values; nothing here reads or writes files.
package survey
