package app

import (
	"context"

	"github.com/appfeat/gitgo/internal/application/dashboard"
	"github.com/appfeat/gitgo/internal/application/release"
	"github.com/appfeat/gitgo/internal/domain"
	"github.com/appfeat/gitgo/internal/infrastructure/ai"
	"github.com/appfeat/gitgo/internal/infrastructure/config"
	"github.com/appfeat/gitgo/internal/infrastructure/git"
	"github.com/appfeat/gitgo/internal/infrastructure/history"
	"github.com/appfeat/gitgo/internal/pkg/logger"
	"github.com/appfeat/gitgo/internal/ports"
)

// Container wires application services with infrastructure adapters. The
// interactive pieces (prompter, renderer) are attached by the cli layer.
type Container struct {
	Settings       domain.Settings
	ReleaseService *release.Service
	Dashboard      *dashboard.Service
	Repo           ports.Repository
	AITool         *ai.CLITool
	History        ports.ReleaseHistory
	Logger         ports.Logger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	settingsLoader := config.NewFileLoader("")
	settings, err := settingsLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)
	repo := git.NewRepository("")
	aiTool := ai.NewCLITool(settings.AI.Binary)

	var store ports.ReleaseHistory
	if settings.History.Enabled {
		store = history.NewSQLiteStore(settings.History.Path)
	}

	releaseService := &release.Service{
		Repo:     repo,
		Settings: settingsLoader,
		Model:    aiTool,
		Lister:   aiTool,
		History:  store,
		Logger:   log,
		Sequencer: &release.Sequencer{
			Repo:   repo,
			Logger: log,
		},
	}

	dashboardService := &dashboard.Service{
		Repo:     repo,
		Settings: settingsLoader,
	}

	return &Container{
		Settings:       settings,
		ReleaseService: releaseService,
		Dashboard:      dashboardService,
		Repo:           repo,
		AITool:         aiTool,
		History:        store,
		Logger:         log,
	}, nil
}
