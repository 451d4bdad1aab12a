package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/targetpath/internal/domain"
	m "github.com/mouse-blink/targetpath/internal/model"
)

var selectEditFlag string
var selectOutFlag string
var selectOutputTypeFlag string
var selectQuestionTypeFlag string

const selectLongDescription = `Open a selection session over a code-info file.

On a terminal the session is interactive. Otherwise a script is read from
standard input, one action per line:

  type function|loop|branch|variable
  name <function>        pick a function name
  line all|<n>           every occurrence, or the n-th function in scope
  element <n>            the n-th loop, branch or variable in scope
  var <name>             toggle a variable
  modifier <modifier>    arguments, return_value, loop_iterations,
                         branch_true or branch_false
  in                     enter the selected element's scope
  back <n>               return to breadcrumb n (0 is the root)
  done                   finish

The result is saved to --out, to the --edit file when only that is given, or
to target.<format>.`

// selectCmd represents the select command.
var selectCmd = newSelectCmd()

func newSelectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select <code-info>",
		Short: "Select a target and save it",
		Long:  selectLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := selectOutFlag
			if out == "" && selectEditFlag == "" {
				out = "target." + cfg.Output.Format
			}

			return workflow.Select(cmd.Context(), domain.SelectArgs{
				CodeInfo:     m.Path(args[0]),
				Edit:         m.Path(selectEditFlag),
				Out:          m.Path(out),
				OutputType:   selectOutputTypeFlag,
				QuestionType: selectQuestionTypeFlag,
			})
		},
	}
	cmd.Flags().StringVarP(&selectEditFlag, "edit", "e", "", "saved target to re-open and overwrite")
	cmd.Flags().StringVarP(&selectOutFlag, "out", "o", "", "file to save the target to")
	cmd.Flags().String("format", "", "format of the default output file: json or yaml (default from config: json)")
	cmd.Flags().StringVar(&selectOutputTypeFlag, "output-type", "", "output type recorded in the target document")
	cmd.Flags().StringVar(&selectQuestionTypeFlag, "question-type", "", "question type recorded in the target document")

	return cmd
}

func init() {
	rootCmd.AddCommand(selectCmd)
}
