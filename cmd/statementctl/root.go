package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "statementctl",
		Short: "Render loan statements offline",
		Long: `statementctl renders loan statements from request files without a running
server or database.

Example Usage:
  statementctl render --input request.yaml --out ./statements
  statementctl render --input request.json --format text --today 2024-02-05
  statementctl policy mortgage`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			zerolog.SetGlobalLevel(level)
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newPolicyCmd())
	root.AddCommand(newVersionCmd())
	return root
}
