package services

import (
	"context"
	"fmt"

	"keymirror/internal/domain"
	"keymirror/internal/logging"
	"keymirror/internal/ports"
)

// CheckService explains how chord sequences parse and lints binding files
type CheckService struct{}

// NewCheckService creates a new CheckService
func NewCheckService() *CheckService {
	return &CheckService{}
}

// Explain parses one chord sequence and reports its canonical form, its
// diagnostics and what the remapper would bind it to
func (s *CheckService) Explain(input string) SequenceReport {
	seq := domain.ParseSequence(input)
	report := SequenceReport{
		Canonical: seq.String(),
		Chords:    seq.Chords(),
		Input:     input,
		Issues:    domain.InspectSequence(input),
	}
	if seq.First.HasControl() {
		swapped := seq.Map(domain.Key.SwapControlForCommand)
		report.Remapped = &swapped
	}
	return report
}

// Check loads every record from source and returns the records that have
// diagnostics, in input order
func (s *CheckService) Check(ctx context.Context, source ports.BindingSource) ([]RecordIssues, error) {
	records, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load keybindings from %s: %w", source.Describe(), err)
	}

	var found []RecordIssues
	for i, r := range records {
		issues := domain.InspectSequence(r.Key)
		if len(issues) == 0 {
			continue
		}
		found = append(found, RecordIssues{
			Index:  i,
			Issues: issues,
			Key:    r.Key,
		})
	}

	logging.Logger.Debug("Checked keybindings",
		"source", source.Describe(),
		"records", len(records),
		"withIssues", len(found))

	return found, nil
}
