// Package cli implements the wellbeing command line using Cobra.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"wellbeing-backend/internal/bootstrap"
	"wellbeing-backend/internal/shared/config"
	"wellbeing-backend/internal/shared/telemetry"
	"wellbeing-backend/internal/wellbeing"
)

// Deps lets tests swap configuration and the analysis service.
type Deps struct {
	LoadConfig   func() config.Config
	BuildService func(cfg config.Config) (*wellbeing.Service, error)
}

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		BuildService: func(cfg config.Config) (*wellbeing.Service, error) {
			return bootstrap.BuildService(cfg, nil)
		},
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd(deps Deps) *cobra.Command {
	if deps.LoadConfig == nil || deps.BuildService == nil {
		d := defaultDeps()
		if deps.LoadConfig == nil {
			deps.LoadConfig = d.LoadConfig
		}
		if deps.BuildService == nil {
			deps.BuildService = d.BuildService
		}
	}

	var logLevel string
	root := &cobra.Command{
		Use:   "wellbeing",
		Short: "Analyze how a student is feeling from free text",
		Long: `wellbeing runs the same analysis as the HTTP API from the command line.

Usage:
  wellbeing analyze "I have three deadlines this week"
  echo "can't sleep before exams" | wellbeing analyze --json
  wellbeing strategy`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			telemetry.Init(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "error", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newAnalyzeCmd(deps),
		newClassifyCmd(),
		newStrategyCmd(deps),
	)
	return root
}

// Execute runs the CLI with default dependencies.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd(Deps{})
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
