package cmd

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/gnoswap-labs/parsec/check"
	"github.com/gnoswap-labs/parsec/formatter"
	tt "github.com/gnoswap-labs/parsec/internal/types"
)

const stdinName = "<stdin>"

var (
	parseJSON  bool
	parseLines bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [inputs...]",
	Short: "Parse each argument, or standard input when none is given",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := engineFor(cmd)
		if err != nil {
			return err
		}
		engine.SetLineMode(parseLines)

		var reports []tt.Report
		if len(args) == 0 {
			source, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("error reading standard input: %w", err)
			}
			reports, err = engine.RunSource(source)
			if err != nil {
				return err
			}
			for i := range reports {
				reports[i].Filename = stdinName
			}
		} else {
			for i, input := range args {
				reports = append(reports, engine.RunInput(fmt.Sprintf("<arg %d>", i+1), input))
			}
		}

		if err := printParseResults(cmd.OutOrStdout(), reports, parseJSON); err != nil {
			return err
		}
		if len(check.Failures(reports)) > 0 {
			return ErrFailures
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Output reports in JSON format")
	parseCmd.Flags().BoolVar(&parseLines, "lines", false, "Parse every line of standard input separately")
}

func printParseResults(w io.Writer, reports []tt.Report, isJSON bool) error {
	if isJSON {
		d, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshalling reports to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(d))
		return err
	}

	for _, r := range reports {
		if r.OK {
			fmt.Fprintf(w, "%s => %s\n", inputName(r), r.Value)
		}
	}
	_, err := fmt.Fprint(w, formatter.GenerateFormattedReport(reports))
	return err
}

func inputName(r tt.Report) string {
	if r.Filename == stdinName && r.Line > 1 {
		return fmt.Sprintf("%s:%d", r.Filename, r.Line)
	}
	return r.Filename
}
