package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/apeerhq/apeer/internal/guard"
	"github.com/apeerhq/apeer/internal/service"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Submit a peer evaluation",
	Long: `Submit a peer evaluation for a teammate. Student only.

Each --score flag scores one rubric criterion as name=value with value
between 1 and 5. The comment and at least one score are required; the
submission is validated locally before anything is sent.

The backend's AI analysis of your feedback is printed with the receipt.

Examples:
  apeer evaluate --activity a1 --student s2 \
    --comment "Clear, actionable review comments" \
    --score Communication=4 --score Contribution=5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireView(guard.ViewStudentDashboard); err != nil {
			return err
		}

		activity, _ := cmd.Flags().GetString("activity")
		student, _ := cmd.Flags().GetString("student")
		comment, _ := cmd.Flags().GetString("comment")
		scoreFlags, _ := cmd.Flags().GetStringSlice("score")

		scores, err := parseScores(scoreFlags)
		if err != nil {
			return err
		}

		receipt, err := app.Evaluation.Submit(cmd.Context(), activity, student, comment, scores)
		if err != nil {
			return err
		}

		pterm.Success.Println(receipt.Message)
		if len(receipt.Analysis.Tags) > 0 {
			pterm.Info.Printfln("Feedback tags: %s", strings.Join(receipt.Analysis.Tags, ", "))
		}
		pterm.Info.Printfln("Usefulness %.0f/100, sentiment %.2f",
			receipt.Analysis.UsefulnessScore, receipt.Analysis.SentimentScore)
		if receipt.Analysis.IsFlagged {
			pterm.Warning.Println("This evaluation was flagged for review.")
		}
		return nil
	},
}

// parseScores turns repeated name=value flags into criterion scores.
func parseScores(flags []string) ([]service.Score, error) {
	scores := make([]service.Score, 0, len(flags))
	for _, f := range flags {
		name, value, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --score %q, expected name=value", f)
		}
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --score %q: %w", f, err)
		}
		scores = append(scores, service.Score{CriterionName: name, Score: n})
	}
	return scores, nil
}

func init() {
	evaluateCmd.Flags().String("activity", "", "activity id")
	evaluateCmd.Flags().String("student", "", "teammate's student id")
	evaluateCmd.Flags().String("comment", "", "written feedback")
	evaluateCmd.Flags().StringSlice("score", nil, "criterion score as name=value (repeatable)")

	rootCmd.AddCommand(evaluateCmd)
}
