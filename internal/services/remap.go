package services

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"keymirror/internal/domain"
	"keymirror/internal/logging"
)

// RemapPolicy decides what happens to bindings whose first chord has no Control
type RemapPolicy string

const (
	// PolicyDrop emits nothing for such bindings
	PolicyDrop RemapPolicy = "drop"
	// PolicyPassThrough emits them unchanged
	PolicyPassThrough RemapPolicy = "passthrough"
)

// Policies lists the accepted policy names
var Policies = []RemapPolicy{PolicyDrop, PolicyPassThrough}

// ParseRemapPolicy resolves a policy name. An empty name selects PolicyDrop.
func ParseRemapPolicy(name string) (RemapPolicy, error) {
	switch RemapPolicy(strings.ToLower(strings.TrimSpace(name))) {
	case "", PolicyDrop:
		return PolicyDrop, nil
	case PolicyPassThrough, "pass-through":
		return PolicyPassThrough, nil
	}
	return "", fmt.Errorf("%w: %q (expected drop or passthrough)", domain.ErrUnknownPolicy, name)
}

// Remapper mirrors Control bindings under Command
type Remapper struct {
	policy  RemapPolicy
	workers int
}

// NewRemapper creates a Remapper. workers <= 0 uses one worker per CPU.
func NewRemapper(policy RemapPolicy, workers int) *Remapper {
	if policy == "" {
		policy = PolicyDrop
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Remapper{
		policy:  policy,
		workers: workers,
	}
}

// Policy returns the unmapped-binding policy in use
func (r *Remapper) Policy() RemapPolicy {
	return r.policy
}

// Remap expands one binding. A binding whose first chord has Control
// yields its disabled copy followed by a copy with every chord swapped to
// Command. Any other binding is handled by the policy.
func (r *Remapper) Remap(b domain.Binding) []domain.Binding {
	if !b.HasControl() {
		if r.policy == PolicyPassThrough {
			return []domain.Binding{b}
		}
		return nil
	}

	return []domain.Binding{
		b.Disabled(),
		b.WithKeys(b.Keys.Map(domain.Key.SwapControlForCommand)),
	}
}

// RemapAll remaps bindings concurrently and flattens the results in input
// order.
func (r *Remapper) RemapAll(ctx context.Context, bindings []domain.Binding) ([]domain.Binding, domain.RemapStats, error) {
	stats := domain.RemapStats{Input: len(bindings)}
	results := make([][]domain.Binding, len(bindings))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := range bindings {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.Remap(bindings[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, stats, fmt.Errorf("failed to remap bindings: %w", err)
	}

	out := make([]domain.Binding, 0, 2*len(bindings))
	for i, res := range results {
		switch {
		case bindings[i].HasControl():
			stats.Remapped++
		case len(res) == 0:
			stats.Dropped++
		default:
			stats.PassedThrough++
		}
		out = append(out, res...)
	}
	stats.Output = len(out)

	logging.Logger.Debug("Remapped bindings",
		"input", stats.Input,
		"remapped", stats.Remapped,
		"dropped", stats.Dropped,
		"passedThrough", stats.PassedThrough,
		"output", stats.Output,
		"workers", r.workers)

	return out, stats, nil
}
