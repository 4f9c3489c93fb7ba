package storage

import (
	"fmt"

	"keymirror/internal/domain"
)

// runModelToDomain converts a RunModel (GORM) to domain.Run without records
func runModelToDomain(m RunModel) domain.Run {
	return domain.Run{
		Destination: m.Destination,
		FinishedAt:  m.FinishedAt,
		ID:          m.ID,
		Policy:      m.Policy,
		Records:     nil, // Loaded separately by Get
		Source:      m.Source,
		StartedAt:   m.StartedAt,
		Stats: domain.RemapStats{
			Dropped:       m.DroppedCount,
			Input:         m.InputCount,
			Output:        m.OutputCount,
			PassedThrough: m.PassedThroughCount,
			Remapped:      m.RemappedCount,
		},
	}
}

// domainToRunModel converts a domain.Run to RunModel (GORM)
func domainToRunModel(r domain.Run) RunModel {
	return RunModel{
		Destination:        r.Destination,
		DroppedCount:       r.Stats.Dropped,
		FinishedAt:         r.FinishedAt.UTC(),
		ID:                 r.ID,
		InputCount:         r.Stats.Input,
		OutputCount:        r.Stats.Output,
		PassedThroughCount: r.Stats.PassedThrough,
		Policy:             r.Policy,
		RemappedCount:      r.Stats.Remapped,
		Source:             r.Source,
		StartedAt:          r.StartedAt.UTC(),
	}
}

// recordModelToDomain converts a RunRecordModel (GORM) to domain.Record
func recordModelToDomain(m RunRecordModel) (domain.Record, error) {
	record := domain.Record{
		Command: m.Command,
		Key:     m.Key,
		When:    m.When,
	}
	if m.Args != nil {
		args, err := domain.ParseValue([]byte(*m.Args))
		if err != nil {
			return domain.Record{}, fmt.Errorf("failed to decode args of record %d: %w", m.Position, err)
		}
		record.Args = &args
	}
	return record, nil
}

// domainToRecordModel converts a domain.Record at position to RunRecordModel (GORM)
func domainToRecordModel(runID string, position int, r domain.Record) (RunRecordModel, error) {
	model := RunRecordModel{
		Command:  r.Command,
		Key:      r.Key,
		Position: position,
		RunID:    runID,
		When:     r.When,
	}
	if r.Args != nil {
		data, err := r.Args.MarshalJSON()
		if err != nil {
			return RunRecordModel{}, fmt.Errorf("failed to encode args of record %d: %w", position, err)
		}
		text := string(data)
		model.Args = &text
	}
	return model, nil
}
