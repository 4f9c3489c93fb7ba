package services

import (
	"context"
	"fmt"

	"keymirror/internal/domain"
	"keymirror/internal/logging"
	"keymirror/internal/ports"
)

// HistoryService reads and trims recorded conversion runs
type HistoryService struct {
	runRepo ports.RunRepository
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(runRepo ports.RunRepository) *HistoryService {
	return &HistoryService{
		runRepo: runRepo,
	}
}

// List returns up to limit runs, newest first. limit <= 0 returns all runs.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.Run, error) {
	runs, err := s.runRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Get returns one run with its emitted records
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.Run, error) {
	run, err := s.runRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return run, nil
}

// Delete removes one run
func (s *HistoryService) Delete(ctx context.Context, id string) error {
	if err := s.runRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete run %s: %w", id, err)
	}
	logging.Logger.Info("Run deleted", "runID", id)
	return nil
}

// Prune keeps the newest keep runs and returns how many were removed
func (s *HistoryService) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must not be negative, got %d", keep)
	}
	removed, err := s.runRepo.Prune(ctx, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	logging.Logger.Info("Run history pruned", "removed", removed, "keep", keep)
	return removed, nil
}
