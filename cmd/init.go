package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gnoswap-labs/parsec/grammar"
)

// initCmd: parsec init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample grammar file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initGrammarFile(grammarFile); err != nil {
			return fmt.Errorf("error initializing grammar file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Grammar file created/updated: %s\n", grammarFile)
		return nil
	},
}

func initGrammarFile(path string) error {
	if path == "" {
		path = grammar.DefaultPath
	}

	d, err := yaml.Marshal(grammar.Default())
	if err != nil {
		return err
	}

	return os.WriteFile(path, d, 0o644)
}
