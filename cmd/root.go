package cmd

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/parsec/grammar"
	"github.com/gnoswap-labs/parsec/internal"
)

const defaultTimeout = 5 * time.Minute

// ErrFailures is returned when some input did not parse. The failures have
// already been printed.
var ErrFailures = errors.New("some inputs did not parse")

var (
	grammarFile string
	timeout     time.Duration
	verbose     bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "parsec",
	Short:         "parsec - run parser-combinator grammars over text",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&grammarFile, "grammar", "g", grammar.DefaultPath, "Grammar file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Set a timeout for checking files")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every rule of the grammar as it runs")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
}

// newLogger returns a development logger at debug level when verbose, which
// also turns on rule tracing in the engine.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadEngine compiles the grammar at path. When the path was not given
// explicitly and the default file does not exist, the built-in money grammar
// is used instead.
func loadEngine(path string, explicit bool, logger *zap.Logger) (*internal.Engine, error) {
	if !explicit {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			logger.Info("no grammar file found, using the built-in money grammar", zap.String("path", path))
			return internal.NewEngine(grammar.Default(), logger)
		}
	}
	return internal.LoadEngine(path, logger)
}

func engineFor(cmd *cobra.Command) (*internal.Engine, error) {
	return loadEngine(grammarFile, cmd.Flags().Changed("grammar"), logger)
}
