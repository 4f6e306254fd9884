package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/MohdMoinuddin-mma/OlymPIX/internal/service"
	"github.com/spf13/cobra"
)

type analyzeFlags struct {
	sport   string
	jsonOut bool
}

func newAnalyzeCmd(resolve func() (*Deps, error)) *cobra.Command {
	var flags analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Score a photo or video of your performance",
		Long: `Upload an image or video to the coach and print the category, score,
feedback and improvement tip. Video feedback is split into timestamped items.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := resolve()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			media, err := service.EncodeMedia(data)
			if err != nil {
				return err
			}

			registry := newRegistry(d)
			defer registry.Close()
			w := registry.SignIn("")
			if err := w.SelectSport(flags.sport); err != nil {
				return err
			}

			outcome, err := w.Analyze(cmd.Context(), media)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flags.jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(outcome)
			}
			printAnalysis(out, outcome)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.sport, "sport", "", "Sport shown in the media (required)")
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "Print the outcome as JSON")
	_ = cmd.MarkFlagRequired("sport")

	return cmd
}

func printAnalysis(out io.Writer, outcome *service.AnalysisOutcome) {
	r := outcome.Result
	fmt.Fprintf(out, "Category:        %s\n", r.Category)
	fmt.Fprintf(out, "Score:           %s\n", r.Score)
	fmt.Fprintf(out, "Improvement Tip: %s\n", r.ImprovementTip)
	if len(outcome.FeedbackItems) == 0 {
		return
	}
	fmt.Fprintln(out, "Feedback:")
	for _, item := range outcome.FeedbackItems {
		if item.TimestampLabel != "" {
			fmt.Fprintf(out, "  %s %s\n", item.TimestampLabel, item.Text)
		} else {
			fmt.Fprintf(out, "  %s\n", item.Text)
		}
	}
}
