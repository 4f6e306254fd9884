package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/MohdMoinuddin-mma/OlymPIX/internal/service"
	"github.com/MohdMoinuddin-mma/OlymPIX/pkg/model"
	"github.com/spf13/cobra"
)

type chatFlags struct {
	module    string
	sport     string
	persona   string
	height    string
	weight    string
	bodyImage string
	bodyPart  string
	media     string
}

func newChatCmd(resolve func() (*Deps, error)) *cobra.Command {
	var flags chatFlags

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the coach in one module",
		Long: `Start an interactive conversation with the coach.

Modules: dashboard, performance, exercise, diet, recovery, general.
The diet module needs --height and --weight, recovery needs --body-part
and performance needs --media to analyze first.

Inside the chat:
  /plan     show today's plan
  /done N   tick plan item N
  /quit     leave`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := resolve()
			if err != nil {
				return err
			}
			module, err := model.ParseModule(flags.module)
			if err != nil {
				return err
			}

			registry := newRegistry(d)
			defer registry.Close()
			w := registry.SignIn("")

			out := cmd.OutOrStdout()
			if err := prepareWorkspace(cmd, w, flags); err != nil {
				return err
			}

			session, err := w.Session(module)
			if err != nil {
				return err
			}

			for _, turn := range session.Turns() {
				printTurn(out, turn)
			}

			return chatLoop(cmd, w, session, module)
		},
	}

	cmd.Flags().StringVar(&flags.module, "module", "general", "Coaching module")
	cmd.Flags().StringVar(&flags.sport, "sport", "", "Your sport (required)")
	cmd.Flags().StringVar(&flags.persona, "persona", string(model.PersonaFriendlyMentor), "Coach persona")
	cmd.Flags().StringVar(&flags.height, "height", "", "Height, for the diet module")
	cmd.Flags().StringVar(&flags.weight, "weight", "", "Weight, for the diet module")
	cmd.Flags().StringVar(&flags.bodyImage, "body-image", "", "Optional body photo, for the diet module")
	cmd.Flags().StringVar(&flags.bodyPart, "body-part", "", "Injured body part, for the recovery module")
	cmd.Flags().StringVar(&flags.media, "media", "", "Photo or video to analyze before chatting")
	_ = cmd.MarkFlagRequired("sport")

	return cmd
}

// prepareWorkspace applies the flags in the order the workspace expects them
func prepareWorkspace(cmd *cobra.Command, w *service.Workspace, flags chatFlags) error {
	if err := w.SelectSport(flags.sport); err != nil {
		return err
	}
	w.SelectPersona(flags.persona)

	if flags.height != "" || flags.weight != "" {
		var image *model.InlineMedia
		if flags.bodyImage != "" {
			media, err := readMedia(flags.bodyImage)
			if err != nil {
				return err
			}
			image = &media
		}
		if err := w.SetBodyStats(flags.height, flags.weight, image); err != nil {
			return err
		}
	}

	if flags.bodyPart != "" {
		if _, err := w.SetRecoveryFocus(flags.bodyPart); err != nil {
			return err
		}
	}

	if flags.media != "" {
		media, err := readMedia(flags.media)
		if err != nil {
			return err
		}
		outcome, err := w.Analyze(cmd.Context(), media)
		if err != nil {
			var parseErr *service.AnalysisParseError
			if errors.As(err, &parseErr) {
				fmt.Fprintln(cmd.OutOrStdout(), parseErr.UserMessage())
			}
			return err
		}
		printAnalysis(cmd.OutOrStdout(), outcome)
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

func chatLoop(cmd *cobra.Command, w *service.Workspace, session *service.ConversationSession, module model.Module) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/plan":
			if err := showPlan(out, w, module); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
			continue
		case strings.HasPrefix(line, "/done"):
			if err := tickItem(out, w, module, strings.TrimSpace(strings.TrimPrefix(line, "/done"))); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
			continue
		}

		result, err := session.SendUserTurn(cmd.Context(), line)
		if err != nil {
			return err
		}
		printTurn(out, result.AssistantTurn)
		if result.Plan != nil {
			printPlan(out, *result.Plan)
		}
	}
}

func showPlan(out io.Writer, w *service.Workspace, module model.Module) error {
	tracker, err := w.Tracker(module)
	if err != nil {
		return err
	}
	if tracker.Empty() {
		fmt.Fprintln(out, "No plan yet. Ask the coach for one.")
		return nil
	}
	printPlan(out, tracker.Plan())
	return nil
}

func tickItem(out io.Writer, w *service.Workspace, module model.Module, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("usage: /done N")
	}
	tracker, err := w.Tracker(module)
	if err != nil {
		return err
	}
	if _, err := tracker.ToggleItem(n - 1); err != nil {
		return err
	}
	printPlan(out, tracker.Plan())
	return nil
}

func printTurn(out io.Writer, turn model.Turn) {
	label := "You"
	if turn.Sender == model.SenderAssistant {
		label = "Coach"
	}
	fmt.Fprintf(out, "%s: %s\n", label, turn.Text)
}

func printPlan(out io.Writer, plan model.Plan) {
	done := 0
	for i, item := range plan.Items {
		mark := " "
		if item.Completed {
			mark = "x"
			done++
		}
		fmt.Fprintf(out, "  [%s] %d. %s - %s\n", mark, i+1, item.Name, item.Detail)
	}
	fmt.Fprintf(out, "  %d/%d done\n", done, len(plan.Items))
}

func readMedia(path string) (model.InlineMedia, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.InlineMedia{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return service.EncodeMedia(data)
}
