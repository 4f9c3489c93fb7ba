package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"keymirror/internal/config"
	"keymirror/internal/domain"
	"keymirror/internal/theme"
)

// HistoryCmd inspects recorded conversion runs
type HistoryCmd struct {
	Delete HistoryDeleteCmd `cmd:"delete" aliases:"del" help:"Delete a recorded run"`
	List   HistoryListCmd   `cmd:"list" help:"List recorded runs, newest first" default:"1"`
	Prune  HistoryPruneCmd  `cmd:"prune" help:"Keep only the newest runs"`
	Show   HistoryShowCmd   `cmd:"show" help:"Show a run and the keybindings it wrote"`
}

const timeLayout = "2006-01-02 15:04:05"

type statsOutput struct {
	Dropped       int `json:"dropped"`
	Input         int `json:"input"`
	Output        int `json:"output"`
	PassedThrough int `json:"passed_through"`
	Remapped      int `json:"remapped"`
}

type runOutput struct {
	Destination string          `json:"destination"`
	DurationMs  int64           `json:"duration_ms"`
	FinishedAt  time.Time       `json:"finished_at"`
	ID          string          `json:"id"`
	Policy      string          `json:"policy"`
	Records     []domain.Record `json:"records,omitempty"`
	Source      string          `json:"source"`
	StartedAt   time.Time       `json:"started_at"`
	Stats       statsOutput     `json:"stats"`
}

func toRunOutput(run domain.Run) runOutput {
	return runOutput{
		Destination: run.Destination,
		DurationMs:  run.Duration().Milliseconds(),
		FinishedAt:  run.FinishedAt,
		ID:          run.ID,
		Policy:      run.Policy,
		Records:     run.Records,
		Source:      run.Source,
		StartedAt:   run.StartedAt,
		Stats: statsOutput{
			Dropped:       run.Stats.Dropped,
			Input:         run.Stats.Input,
			Output:        run.Stats.Output,
			PassedThrough: run.Stats.PassedThrough,
			Remapped:      run.Stats.Remapped,
		},
	}
}

// HistoryListCmd lists recorded runs
type HistoryListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Limit  int    `help:"Maximum number of runs to show (0 = all)" default:"20"`
}

// Run executes the list command
func (h *HistoryListCmd) Run(cli *CLI) error {
	history, err := cli.Container.History()
	if err != nil {
		return err
	}

	runs, err := history.List(context.Background(), h.Limit)
	if err != nil {
		return err
	}

	if h.Format == formatJSON {
		out := make([]runOutput, len(runs))
		for i, run := range runs {
			out[i] = toRunOutput(run)
		}
		return printJSON(cli.out(), out)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cli.out(), "No runs recorded")
		return nil
	}

	w := newTabWriter(cli.out())
	fmt.Fprintln(w, "ID\tSTARTED\tSOURCE\tDESTINATION\tPOLICY\tIN\tOUT\tREMAPPED\tDROPPED\tPASSED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			run.ID,
			run.StartedAt.Local().Format(timeLayout),
			run.Source,
			run.Destination,
			run.Policy,
			run.Stats.Input,
			run.Stats.Output,
			formatCount(run.Stats.Remapped),
			formatCount(run.Stats.Dropped),
			formatCount(run.Stats.PassedThrough))
	}
	return w.Flush()
}

// HistoryShowCmd shows one run
type HistoryShowCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	ID     string `arg:"" help:"Run ID"`
}

// Run executes the show command
func (h *HistoryShowCmd) Run(cli *CLI) error {
	history, err := cli.Container.History()
	if err != nil {
		return err
	}

	run, err := history.Get(context.Background(), h.ID)
	if err != nil {
		return err
	}

	if h.Format == formatJSON {
		return printJSON(cli.out(), toRunOutput(*run))
	}
	return h.printTable(cli.out(), run)
}

func (h *HistoryShowCmd) printTable(out io.Writer, run *domain.Run) error {
	fmt.Fprintln(out, theme.HeadingStyle.Render("Run "+run.ID))
	fmt.Fprintf(out, "Started: %s\n", run.StartedAt.Local().Format(timeLayout))
	fmt.Fprintf(out, "Duration: %s\n", run.Duration().Round(time.Millisecond))
	fmt.Fprintf(out, "Source: %s\n", run.Source)
	fmt.Fprintf(out, "Destination: %s\n", run.Destination)
	fmt.Fprintf(out, "Policy: %s\n", run.Policy)
	fmt.Fprintf(out, "Input: %d  Output: %d  Remapped: %d  Dropped: %d  Passed through: %d\n",
		run.Stats.Input, run.Stats.Output, run.Stats.Remapped, run.Stats.Dropped, run.Stats.PassedThrough)

	if len(run.Records) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	w := newTabWriter(out)
	fmt.Fprintln(w, "#\tKEY\tCOMMAND\tWHEN\tARGS")
	for i, r := range run.Records {
		when := "-"
		if r.When != nil {
			when = *r.When
		}
		args := "-"
		if r.Args != nil {
			data, err := r.Args.MarshalJSON()
			if err != nil {
				return fmt.Errorf("failed to encode args of record %d: %w", i, err)
			}
			args = string(data)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i, r.Key, r.Command, when, args)
	}
	return w.Flush()
}

// HistoryDeleteCmd deletes one run
type HistoryDeleteCmd struct {
	ID string `arg:"" help:"Run ID"`
}

// Run executes the delete command
func (h *HistoryDeleteCmd) Run(cli *CLI) error {
	history, err := cli.Container.History()
	if err != nil {
		return err
	}

	if err := history.Delete(context.Background(), h.ID); err != nil {
		return err
	}
	fmt.Fprintf(cli.out(), "Deleted run %s\n", h.ID)
	return nil
}

// HistoryPruneCmd removes all but the newest runs
type HistoryPruneCmd struct {
	Keep int `help:"Number of runs to keep (defaults to the history_limit setting)" default:"-1"`
}

// Run executes the prune command
func (h *HistoryPruneCmd) Run(cli *CLI) error {
	history, err := cli.Container.History()
	if err != nil {
		return err
	}

	keep := h.Keep
	if keep < 0 {
		keep = config.DefaultHistoryLimit
		if limit := cli.loadedSettings().HistoryLimit; limit != nil {
			keep = *limit
		}
	}

	removed, err := history.Prune(context.Background(), keep)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out(), "Removed %d runs, kept the newest %d\n", removed, keep)
	return nil
}

// formatCount renders n for table cells, "-" for zero
func formatCount(n int) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n)
}
