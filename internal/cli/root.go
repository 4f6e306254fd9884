package cli

import (
	"fmt"
	"time"

	"github.com/MohdMoinuddin-mma/OlymPIX/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// Deps are the collaborators every coaching command needs.
type Deps struct {
	Assistant      service.Assistant
	Baseline       service.DashboardBaseline
	RequestTimeout time.Duration
	Logger         *zap.Logger
}

// Loader builds Deps on first use so that commands like version run without credentials.
type Loader func() (*Deps, error)

// NewRootCmd creates the coachctl command tree.
func NewRootCmd(load Loader) *cobra.Command {
	var deps *Deps
	resolve := func() (*Deps, error) {
		if deps != nil {
			return deps, nil
		}
		d, err := load()
		if err != nil {
			return nil, fmt.Errorf("loading configuration: %w", err)
		}
		deps = d
		return deps, nil
	}

	rootCmd := &cobra.Command{
		Use:   "coachctl",
		Short: "OlymPIX - AI sports coach in the terminal",
		Long: `coachctl talks to the OlymPIX coaching assistant from the terminal.

Pick a sport and a module to chat with the coach, or analyze a photo or
video of your performance.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newChatCmd(resolve),
		newAnalyzeCmd(resolve),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "coachctl %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
		},
	}
}

func newRegistry(d *Deps) *service.WorkspaceRegistry {
	return service.NewWorkspaceRegistry(d.Assistant, d.Baseline, d.RequestTimeout, d.Logger)
}
