package services

import (
	"keymirror/internal/domain"
	"keymirror/internal/ports"
)

// ConvertParams contains parameters for a conversion
type ConvertParams struct {
	// NoHistory skips recording the run even when a run writer is configured
	NoHistory bool
	Sink      ports.BindingSink
	Source    ports.BindingSource
}

// ConvertResult contains the outcome of a conversion
type ConvertResult struct {
	Records []domain.Record
	RunID   string // empty when the run was not recorded
	Stats   domain.RemapStats
}

// SequenceReport describes how one chord sequence parses
type SequenceReport struct {
	Canonical string
	Chords    []domain.Key
	Input     string
	Issues    []domain.Issue
	Remapped  *domain.KeySequence // nil when the first chord has no Control
}

// RecordIssues holds the diagnostics found for one input record
type RecordIssues struct {
	Index  int
	Issues []domain.Issue
	Key    string
}
