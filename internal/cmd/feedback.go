package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/apeerhq/apeer/internal/guard"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Review feedback you have received",
	Long: `Review the feedback you have received across activities, with the
sentiment the AI service derived for each comment.

Examples:
  apeer feedback
  apeer feedback export --out my_feedback.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireView(guard.ViewFeedback); err != nil {
			return err
		}

		entries, err := app.Student.FeedbackHistory(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			pterm.Info.Println("No feedback yet.")
			return nil
		}

		for _, e := range entries {
			pterm.DefaultSection.Printfln("%s (%s)", e.ActivityName, e.SubmittedAt.Format("Jan 2, 2006"))
			pterm.Printfln("%q", e.Comment)
			pterm.Printfln("%s · sentiment %s (%.2f) · score %.1f",
				e.EvaluatorName, e.SentimentLabel, e.SentimentScore, e.OverallScore)
		}
		return nil
	},
}

var feedbackExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export your feedback history as PDF",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		identity, err := app.requireView(guard.ViewFeedback)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = fmt.Sprintf("feedback_%s.pdf", identity.Email)
		}

		if err := app.Student.ExportPDF(cmd.Context(), out); err != nil {
			return err
		}
		pterm.Success.Printfln("Wrote %s", out)
		return nil
	},
}

func init() {
	feedbackExportCmd.Flags().String("out", "", "destination file")

	feedbackCmd.AddCommand(feedbackExportCmd)
	rootCmd.AddCommand(feedbackCmd)
}
