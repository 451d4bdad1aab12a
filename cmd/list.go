package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/targetpath/internal/domain"
	m "github.com/mouse-blink/targetpath/internal/model"
)

var listTargetFlag string

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <code-info>",
		Short: "List the elements of a scope",
		Long: `List the functions, loops, branches and variables of the module scope, or of
the scope a saved target points into when --target is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.List(cmd.Context(), domain.ListArgs{
				CodeInfo: m.Path(args[0]),
				Target:   m.Path(listTargetFlag),
			})
		},
	}
	cmd.Flags().StringVarP(&listTargetFlag, "target", "t", "", "saved target whose scope to list")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
