package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/targetpath/internal/domain"
	m "github.com/mouse-blink/targetpath/internal/model"
)

var viewCodeInfoFlag string

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <target>",
		Short: "Show a saved target",
		Long: `Show a saved target document and the selection it encodes.
With --code-info the target is also resolved against that analysis and the
command fails when the code no longer contains it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.View(cmd.Context(), domain.ViewArgs{
				Target:   m.Path(args[0]),
				CodeInfo: m.Path(viewCodeInfoFlag),
			})
		},
	}
	cmd.Flags().StringVarP(&viewCodeInfoFlag, "code-info", "c", "", "code-info file to check the target against")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
