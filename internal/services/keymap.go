package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"keymirror/internal/domain"
	"keymirror/internal/logging"
	"keymirror/internal/ports"
)

// KeymapService runs the load, remap and save pipeline
type KeymapService struct {
	historyLimit int
	remapper     *Remapper
	runWriter    ports.RunWriter
	tracer       trace.Tracer
}

// NewKeymapService creates a new KeymapService.
// runWriter may be nil to disable run history; tracer may be nil.
func NewKeymapService(
	remapper *Remapper,
	runWriter ports.RunWriter,
	tracer trace.Tracer,
	historyLimit int,
) *KeymapService {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("keymirror")
	}
	return &KeymapService{
		historyLimit: historyLimit,
		remapper:     remapper,
		runWriter:    runWriter,
		tracer:       tracer,
	}
}

// Convert loads every record, remaps it and saves the result.
// Nothing is saved when loading fails.
func (s *KeymapService) Convert(ctx context.Context, params ConvertParams) (*ConvertResult, error) {
	ctx, span := s.tracer.Start(ctx, "keymirror.convert", trace.WithAttributes(
		attribute.String("keymirror.source", params.Source.Describe()),
		attribute.String("keymirror.destination", params.Sink.Describe()),
		attribute.String("keymirror.policy", string(s.remapper.Policy())),
	))
	defer span.End()

	startedAt := time.Now()
	logging.Logger.Info("Converting keybindings",
		"source", params.Source.Describe(),
		"destination", params.Sink.Describe(),
		"policy", s.remapper.Policy())

	records, err := s.load(ctx, params.Source)
	if err != nil {
		return nil, failSpan(span, err)
	}

	bindings := make([]domain.Binding, len(records))
	for i, r := range records {
		bindings[i] = r.Binding()
	}

	remapped, stats, err := s.remap(ctx, bindings)
	if err != nil {
		return nil, failSpan(span, err)
	}

	out := make([]domain.Record, len(remapped))
	for i, b := range remapped {
		out[i] = domain.NewRecord(b)
	}

	if err := s.save(ctx, params.Sink, out); err != nil {
		return nil, failSpan(span, err)
	}

	span.SetAttributes(
		attribute.Int("keymirror.input", stats.Input),
		attribute.Int("keymirror.output", stats.Output),
	)

	result := &ConvertResult{
		Records: out,
		Stats:   stats,
	}

	if !params.NoHistory && s.runWriter != nil {
		run := domain.Run{
			Destination: params.Sink.Describe(),
			FinishedAt:  time.Now(),
			ID:          uuid.New().String(),
			Policy:      string(s.remapper.Policy()),
			Records:     out,
			Source:      params.Source.Describe(),
			StartedAt:   startedAt,
			Stats:       stats,
		}
		result.RunID = s.record(ctx, run)
	}

	logging.Logger.Info("Conversion finished",
		"input", stats.Input,
		"output", stats.Output,
		"runID", result.RunID)

	return result, nil
}

func (s *KeymapService) load(ctx context.Context, source ports.BindingSource) ([]domain.Record, error) {
	ctx, span := s.tracer.Start(ctx, "keymirror.load")
	defer span.End()

	records, err := source.Load(ctx)
	if err != nil {
		logging.Logger.Error("Failed to load keybindings", "source", source.Describe(), "error", err)
		return nil, failSpan(span, fmt.Errorf("failed to load keybindings from %s: %w", source.Describe(), err))
	}
	span.SetAttributes(attribute.Int("keymirror.records", len(records)))
	return records, nil
}

func (s *KeymapService) remap(ctx context.Context, bindings []domain.Binding) ([]domain.Binding, domain.RemapStats, error) {
	ctx, span := s.tracer.Start(ctx, "keymirror.remap")
	defer span.End()

	out, stats, err := s.remapper.RemapAll(ctx, bindings)
	if err != nil {
		return nil, stats, failSpan(span, err)
	}
	span.SetAttributes(
		attribute.Int("keymirror.remapped", stats.Remapped),
		attribute.Int("keymirror.dropped", stats.Dropped),
		attribute.Int("keymirror.passed_through", stats.PassedThrough),
	)
	return out, stats, nil
}

func (s *KeymapService) save(ctx context.Context, sink ports.BindingSink, records []domain.Record) error {
	ctx, span := s.tracer.Start(ctx, "keymirror.save")
	defer span.End()

	if err := sink.Save(ctx, records); err != nil {
		logging.Logger.Error("Failed to save keybindings", "destination", sink.Describe(), "error", err)
		return failSpan(span, fmt.Errorf("failed to save keybindings to %s: %w", sink.Describe(), err))
	}
	return nil
}

// record stores the run and trims old history. Failures are logged and
// never fail the conversion; it returns the run ID or "" on failure.
func (s *KeymapService) record(ctx context.Context, run domain.Run) string {
	if err := s.runWriter.Add(ctx, run); err != nil {
		logging.Logger.Warn("Failed to record run", "runID", run.ID, "error", err)
		return ""
	}

	if s.historyLimit > 0 {
		removed, err := s.runWriter.Prune(ctx, s.historyLimit)
		if err != nil {
			logging.Logger.Warn("Failed to prune run history", "keep", s.historyLimit, "error", err)
		} else if removed > 0 {
			logging.Logger.Debug("Pruned run history", "removed", removed, "keep", s.historyLimit)
		}
	}

	return run.ID
}

func failSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
