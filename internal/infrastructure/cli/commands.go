package cli

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/appfeat/gitgo/internal/app"
)

func newStatusCommand(container *app.Container, renderer *Renderer) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the repository dashboard without releasing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showDashboard(cmd.Context(), container, renderer)
		},
	}
}

func newHistoryCommand(container *app.Container, renderer *Renderer) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past release runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.History == nil {
				renderer.ShowInfo("Release history is disabled in settings.")
				return nil
			}
			records, err := container.History.Records(limit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			renderer.ShowHistory(records)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of releases to show")
	return cmd
}

func newModelsCommand(container *app.Container, renderer *Renderer) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List AI models reported by the external tool",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !container.AITool.Available() {
				renderer.ShowInfo("AI tool not installed; releases will use the deterministic message.")
				return nil
			}
			models, err := container.AITool.ListModels(cmd.Context())
			if err != nil {
				return err
			}
			renderer.ShowModels(models)
			return nil
		},
	}
}

func newDoctorCommand(container *app.Container, renderer *Renderer) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that gitgo's collaborators are usable",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if _, err := exec.LookPath("git"); err != nil {
				renderer.ShowWarn("git: not found on PATH")
			} else {
				renderer.ShowInfo("git: ok")
			}

			if container.Repo.IsWorkTree(ctx) {
				renderer.ShowInfo("repository: inside a work tree")
			} else {
				renderer.ShowWarn("repository: not inside a work tree")
			}

			if container.AITool.Available() {
				renderer.ShowInfo("AI tool: installed")
			} else {
				renderer.ShowInfo("AI tool: not installed (deterministic messages only)")
			}

			if container.History != nil {
				renderer.ShowInfo("history: enabled")
			} else {
				renderer.ShowInfo("history: disabled")
			}
			return nil
		},
	}
}
