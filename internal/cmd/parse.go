package cmd

import (
	"fmt"
	"io"
	"strings"

	"keymirror/internal/config"
	"keymirror/internal/domain"
	"keymirror/internal/services"
	"keymirror/internal/theme"
)

// ParseCmd explains how chord sequences parse and what convert would emit
type ParseCmd struct {
	Format    string   `help:"Output format: table or json" enum:"table,json" default:"table"`
	Policy    string   `help:"Policy used to describe bindings without Ctrl: drop or passthrough" default:"drop" env:"KEYMIRROR_POLICY"`
	Sequences []string `arg:"" help:"Chord sequences to parse, e.g. 'ctrl+k ctrl+s'"`
}

type chordOutput struct {
	Label     string   `json:"label"`
	Modifiers []string `json:"modifiers"`
}

type issueOutput struct {
	Chord   int    `json:"chord,omitempty"` // one-based, omitted for the whole sequence
	Code    string `json:"code"`
	Message string `json:"message"`
}

type parseOutput struct {
	Canonical string        `json:"canonical"`
	Chords    []chordOutput `json:"chords"`
	Input     string        `json:"input"`
	Issues    []issueOutput `json:"issues,omitempty"`
	Outcome   string        `json:"outcome"`
	Remapped  string        `json:"remapped,omitempty"`
}

// Run executes the parse command
func (p *ParseCmd) Run(cli *CLI) error {
	applyString(&p.Policy, config.DefaultPolicy, "KEYMIRROR_POLICY", cli.loadedSettings().Policy)
	policy, err := services.ParseRemapPolicy(p.Policy)
	if err != nil {
		return err
	}

	reports := make([]services.SequenceReport, len(p.Sequences))
	for i, seq := range p.Sequences {
		reports[i] = cli.Container.CheckService.Explain(seq)
	}

	if p.Format == formatJSON {
		out := make([]parseOutput, len(reports))
		for i, r := range reports {
			out[i] = toParseOutput(r, policy)
		}
		return printJSON(cli.out(), out)
	}
	return p.printTable(cli.out(), reports, policy)
}

func (p *ParseCmd) printTable(out io.Writer, reports []services.SequenceReport, policy services.RemapPolicy) error {
	w := newTabWriter(out)
	fmt.Fprintln(w, "INPUT\tCANONICAL\tMODIFIERS\tREMAPPED\tOUTCOME")
	for _, r := range reports {
		remapped := "-"
		if r.Remapped != nil {
			remapped = r.Remapped.String()
		}
		fmt.Fprintf(w, "%q\t%s\t%s\t%s\t%s\n",
			r.Input,
			displayChord(r.Canonical),
			modifierColumn(r.Chords),
			remapped,
			outcome(r, policy))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, r := range reports {
		for _, issue := range r.Issues {
			fmt.Fprintf(out, "%s %q: %s\n", theme.WarnStyle.Render("warning"), r.Input, issue)
		}
	}
	return nil
}

func toParseOutput(r services.SequenceReport, policy services.RemapPolicy) parseOutput {
	out := parseOutput{
		Canonical: r.Canonical,
		Chords:    make([]chordOutput, len(r.Chords)),
		Input:     r.Input,
		Issues:    toIssueOutputs(r.Issues),
		Outcome:   outcomeName(r, policy),
	}
	for i, k := range r.Chords {
		out.Chords[i] = chordOutput{Label: k.Label, Modifiers: k.Modifiers.Names()}
	}
	if r.Remapped != nil {
		out.Remapped = r.Remapped.String()
	}
	return out
}

func toIssueOutputs(issues []domain.Issue) []issueOutput {
	if len(issues) == 0 {
		return nil
	}
	out := make([]issueOutput, len(issues))
	for i, issue := range issues {
		out[i] = issueOutput{
			Chord:   issue.Chord + 1,
			Code:    string(issue.Code),
			Message: issue.Message,
		}
	}
	return out
}

func outcomeName(r services.SequenceReport, policy services.RemapPolicy) string {
	switch {
	case r.Remapped != nil:
		return "remapped"
	case policy == services.PolicyPassThrough:
		return "passthrough"
	}
	return "dropped"
}

// outcome is the styled outcomeName. Tables print it last so escape
// codes do not skew column alignment.
func outcome(r services.SequenceReport, policy services.RemapPolicy) string {
	return theme.Outcome(r.Remapped != nil, policy == services.PolicyPassThrough)
}

func modifierColumn(chords []domain.Key) string {
	parts := make([]string, len(chords))
	for i, k := range chords {
		if k.Modifiers.IsEmpty() {
			parts[i] = "none"
			continue
		}
		parts[i] = k.Modifiers.String()
	}
	return strings.Join(parts, " / ")
}

// displayChord marks an empty canonical form so it stays visible in a table
func displayChord(canonical string) string {
	if canonical == "" {
		return "(any)"
	}
	return canonical
}
