// Package analytics derives features from stored journal entries and
// aggregates them into three independent report views: summary statistics,
// weekly trends with moving-window values, and mood-versus-calendar patterns.
//
// Derivation is a pure, order-preserving transformation; reports are rebuilt
// from the full entry list on every request, which is the intended cost model
// for a personal journal. Empty input is a first-class outcome: every report
// carries an Empty flag instead of failing on a fresh journal.
package analytics
