package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"studyquiz-service/internal/quiztext"
)

// NewParseCmd checks a quiz document from disk without starting the server.
// Exit status is non-zero when the file yields no playable questions.
func NewParseCmd() *cobra.Command {
	var showAnswers bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a quiz file and report what it contains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, diagnostics, err := quiztext.ParseFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d question(s) parsed\n", len(questions))
			for i, q := range questions {
				fmt.Fprintf(out, "%d. %s\n", i+1, q.Text)
				for _, c := range q.Choices {
					fmt.Fprintf(out, "   %s: %s\n", c.Letter, c.Text)
				}
				if showAnswers {
					fmt.Fprintf(out, "   answer: %s\n", q.Answer)
				}
			}
			if len(diagnostics) > 0 {
				fmt.Fprintf(out, "%d block(s) skipped:\n", len(diagnostics))
				for _, d := range diagnostics {
					fmt.Fprintf(out, "  - %s\n", d)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showAnswers, "answers", false, "print the answer key")
	return cmd
}
