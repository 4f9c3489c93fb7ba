package cmd

import (
	"context"
	"fmt"
	"io"

	"keymirror/internal/adapters/keybindings"
	"keymirror/internal/config"
	"keymirror/internal/services"
	"keymirror/internal/theme"
)

// CheckCmd lints the keys of a keybindings file
type CheckCmd struct {
	Format      string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Input       string `arg:"" help:"Keybindings file to check, or - for stdin"`
	InputFormat string `help:"Input format: auto, json or hjson" default:"auto" env:"KEYMIRROR_INPUT_FORMAT"`
	Strict      bool   `help:"Exit with an error when any issue is found"`
}

type recordIssuesOutput struct {
	Index  int           `json:"index"`
	Issues []issueOutput `json:"issues"`
	Key    string        `json:"key"`
}

// Run executes the check command
func (c *CheckCmd) Run(cli *CLI) error {
	applyString(&c.InputFormat, config.DefaultInputFormat, "KEYMIRROR_INPUT_FORMAT", cli.loadedSettings().InputFormat)
	format, err := keybindings.ParseFormat(c.InputFormat)
	if err != nil {
		return err
	}

	source := keybindings.NewFileSource(c.Input, format, cli.in())
	found, err := cli.Container.CheckService.Check(context.Background(), source)
	if err != nil {
		return err
	}

	if c.Format == formatJSON {
		out := make([]recordIssuesOutput, len(found))
		for i, r := range found {
			out[i] = recordIssuesOutput{
				Index:  r.Index,
				Issues: toIssueOutputs(r.Issues),
				Key:    r.Key,
			}
		}
		if err := printJSON(cli.out(), out); err != nil {
			return err
		}
	} else if err := c.printTable(cli.out(), source.Describe(), found); err != nil {
		return err
	}

	if c.Strict && len(found) > 0 {
		return fmt.Errorf("%d keybindings in %s have issues", len(found), source.Describe())
	}
	return nil
}

func (c *CheckCmd) printTable(out io.Writer, name string, found []services.RecordIssues) error {
	if len(found) == 0 {
		fmt.Fprintf(out, "No issues found in %s\n", name)
		return nil
	}

	w := newTabWriter(out)
	fmt.Fprintln(w, "RECORD\tKEY\tCHORD\tMESSAGE\tCODE")
	for _, r := range found {
		for _, issue := range r.Issues {
			chord := "-"
			if issue.Chord >= 0 {
				chord = fmt.Sprintf("%d", issue.Chord+1)
			}
			fmt.Fprintf(w, "%d\t%q\t%s\t%s\t%s\n",
				r.Index,
				r.Key,
				chord,
				issue.Message,
				theme.WarnStyle.Render(string(issue.Code)))
		}
	}
	return w.Flush()
}
