package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/targetpath/internal/config"
	"github.com/mouse-blink/targetpath/internal/domain"
)

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <code-info...>",
		Short: "Validate code-info files",
		Long: `Load each code-info file and verify that its structure tree agrees with its
element tables: unique ids per type, indices in range, and every child scope
referenced by its parent. Exits non-zero when any file fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Check(cmd.Context(), domain.CheckArgs{
				Paths:    parsePaths(args),
				Parallel: cfg.Check.Parallel,
			})
		},
	}
	cmd.Flags().IntP("parallel", "p", config.DefaultConfig().Check.Parallel, "number of files checked concurrently")

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
