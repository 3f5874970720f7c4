// Package cli handles the command-line interface logic
// using the Cobra library.
package cli

import (
	"github.com/BartekS5/csvmap/internal/config"
	"github.com/BartekS5/csvmap/pkg/logger"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "csvmap",
		Short: "csvmap - map delimited files into named-field records",
		Long: `csvmap reads a delimited text file, checks its column structure and maps
every row into a record using the field rules of a YAML or JSON document.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			return logger.InitLogger(cfg.LogFile, cfg.LogLevel)
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(NewMapCmd())
	rootCmd.AddCommand(NewValidateCmd())

	return rootCmd
}

// Execute runs cmd and closes the logger, also when the command fails.
func Execute(cmd *cobra.Command) error {
	defer logger.Close()
	return cmd.Execute()
}
