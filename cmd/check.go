package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/parsec/check"
	"github.com/gnoswap-labs/parsec/formatter"
	"github.com/gnoswap-labs/parsec/internal"
	tt "github.com/gnoswap-labs/parsec/internal/types"
)

var (
	checkLines bool
	checkWatch bool
	checkJSON  bool
	checkExts  string
	outPath    string
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check that files parse with the grammar",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("please provide file or directory paths")
		}

		engine, err := engineFor(cmd)
		if err != nil {
			return err
		}
		engine.SetLineMode(checkLines)

		opts := check.Options{Filter: check.ExtensionFilter(splitList(checkExts)...)}
		if !checkJSON {
			opts.Progress = cmd.ErrOrStderr()
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		failed, err := runCheck(ctx, cmd.OutOrStdout(), engine, args, opts, checkJSON, outPath)
		if checkWatch {
			logInitialPass(logger, failed, err)
			return watch(cmd.Context(), cmd.OutOrStdout(), engine, args, opts.Filter)
		}
		if err != nil {
			return err
		}
		if failed {
			return ErrFailures
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkLines, "lines", false, "Check every non-blank line as a separate input")
	checkCmd.Flags().BoolVar(&checkWatch, "watch", false, "Check files again whenever they or the grammar change")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output reports in JSON format")
	checkCmd.Flags().StringVar(&checkExts, "ext", "", "Comma-separated list of file extensions to check in directories")
	checkCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
}

// runCheck checks paths and prints the outcome. It reports whether any
// input failed to parse.
func runCheck(
	ctx context.Context,
	w io.Writer,
	engine check.CheckEngine,
	paths []string,
	opts check.Options,
	isJSON bool,
	jsonOutput string,
) (bool, error) {
	reports, err := check.ProcessFiles(ctx, logger, engine, paths, opts, check.ProcessFile)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return false, fmt.Errorf("checking timed out after %s: %w", timeout, err)
	}

	if printErr := printCheckResults(w, reports, isJSON, jsonOutput); printErr != nil {
		return false, printErr
	}
	return len(check.Failures(reports)) > 0, err
}

func printCheckResults(w io.Writer, reports []tt.Report, isJSON bool, jsonOutput string) error {
	if !isJSON {
		fmt.Fprint(w, formatter.GenerateFormattedReport(reports))
		_, err := fmt.Fprint(w, formatter.GenerateSummary(reports))
		return err
	}

	reportsByFile := make(map[string][]tt.Report)
	for _, r := range reports {
		reportsByFile[r.Filename] = append(reportsByFile[r.Filename], r)
	}

	d, err := json.Marshal(reportsByFile)
	if err != nil {
		return fmt.Errorf("error marshalling reports to JSON: %w", err)
	}
	if jsonOutput == "" {
		_, err = fmt.Fprintln(w, string(d))
		return err
	}
	if err := os.WriteFile(jsonOutput, d, 0o644); err != nil {
		return fmt.Errorf("error writing JSON output file: %w", err)
	}
	return nil
}

// logInitialPass records the outcome of the check that runs before watching,
// since watch mode keeps going regardless of it.
func logInitialPass(l *zap.Logger, failed bool, err error) {
	switch {
	case err != nil:
		l.Error("initial check failed", zap.Error(err))
	case failed:
		l.Warn("initial check found inputs that do not parse")
	default:
		l.Debug("initial check passed")
	}
}

// watch prints the failures of every file that changes until interrupted.
func watch(ctx context.Context, w io.Writer, engine *internal.Engine, paths []string, filter check.Filter) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := engine.StartWatching(paths, filter, func(filename string, reports []tt.Report) {
		fmt.Fprintf(w, "%s changed\n", filename)
		fmt.Fprint(w, formatter.GenerateFormattedReport(reports))
		fmt.Fprint(w, formatter.GenerateSummary(reports))
	})
	if err != nil {
		return err
	}
	logger.Info("watching for changes", zap.Strings("paths", paths))

	<-ctx.Done()
	return engine.StopWatching()
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	items := strings.Split(s, ",")
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	return items
}
