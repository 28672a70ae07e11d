package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appfeat/gitgo/internal/app"
	"github.com/appfeat/gitgo/internal/domain"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. Running it with no arguments
// inside a dirty repository starts the review-and-release flow; in a clean
// repository it renders the dashboard instead.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	prompter := NewPrompter(nil, nil)
	renderer := NewRenderer(nil, container.Settings.Color)
	container.ReleaseService.Prompter = prompter
	container.ReleaseService.UI = renderer

	root := &cobra.Command{
		Use:   "gitgo",
		Short: "gitgo - reviewed commit, tag and push in one pass",
		Long: "gitgo stages pending changes, proposes the next version tag and a commit\n" +
			"message (AI-assisted when available), and performs commit, annotated tag\n" +
			"and push as one reviewed transaction.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelease(cmd.Context(), container, renderer)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newStatusCommand(container, renderer))
	root.AddCommand(newHistoryCommand(container, renderer))
	root.AddCommand(newModelsCommand(container, renderer))
	root.AddCommand(newDoctorCommand(container, renderer))
	return root, nil
}

func runRelease(ctx context.Context, container *app.Container, renderer *Renderer) error {
	outcome, err := container.ReleaseService.Run(ctx)
	switch {
	case err == nil:
		renderer.ShowOutcome(outcome.Version, outcome)
		return nil
	case errors.Is(err, domain.ErrNothingToCommit):
		renderer.ShowInfo("Nothing to commit.")
		return showDashboard(ctx, container, renderer)
	case errors.Is(err, domain.ErrReviewAborted):
		renderer.ShowInfo("Aborted; nothing was changed.")
		return nil
	case errors.Is(err, domain.ErrNotARepository):
		return fmt.Errorf("not inside a git repository")
	default:
		var stepErr *domain.SequencerStepError
		if errors.As(err, &stepErr) {
			renderer.ShowOutcome(outcome.Version, outcome)
		}
		return err
	}
}

func showDashboard(ctx context.Context, container *app.Container, renderer *Renderer) error {
	snapshot, err := container.Dashboard.Snapshot(ctx)
	if err != nil {
		return err
	}
	renderer.ShowDashboard(snapshot)
	return nil
}
