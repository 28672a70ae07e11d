// Package dashboard assembles the read-only repository overview shown when
// there is nothing to release.
package dashboard

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/appfeat/gitgo/internal/application/release"
	"github.com/appfeat/gitgo/internal/domain"
	"github.com/appfeat/gitgo/internal/ports"
)

// Service gathers the dashboard snapshot. It issues read-only collaborator
// calls exclusively.
type Service struct {
	Repo     ports.Repository
	Settings ports.SettingsProvider
}

// Snapshot collects identity, AI defaults, branch, latest tag, remotes,
// working-tree status and the last three log entries.
func (s *Service) Snapshot(ctx context.Context) (domain.RepoSnapshot, error) {
	if !s.Repo.IsWorkTree(ctx) {
		return domain.RepoSnapshot{}, domain.ErrNotARepository
	}

	snapshot := domain.RepoSnapshot{
		Bootstrap: !s.Repo.HasCommits(ctx),
	}

	identity, err := release.ResolveIdentity(ctx, s.Repo, nil)
	if err != nil && !errors.Is(err, domain.ErrIdentityUnavailable) {
		return domain.RepoSnapshot{}, err
	}
	snapshot.Identity = identity

	snapshot.AI = domain.AIConfig{
		Model:          s.Repo.Config(ctx, domain.ScopeLocal, domain.ConfigKeyModel),
		TimeoutSeconds: domain.DefaultAITimeoutSeconds,
	}
	if s.Settings != nil {
		if settings, err := s.Settings.Load(ctx); err == nil {
			snapshot.AI.TimeoutSeconds = settings.AI.DefaultTimeoutSeconds
		}
	}
	if raw := s.Repo.Config(ctx, domain.ScopeLocal, domain.ConfigKeyTimeout); raw != "" {
		if seconds, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			snapshot.AI.TimeoutSeconds = seconds
		}
	}
	snapshot.AI.TimeoutSeconds = domain.ClampTimeout(snapshot.AI.TimeoutSeconds)

	snapshot.Branch = s.Repo.CurrentBranch(ctx)
	snapshot.Detached = snapshot.Branch == "" && !snapshot.Bootstrap

	if tags, err := s.Repo.Tags(ctx); err == nil {
		if latest, ok := domain.CurrentVersion(tags); ok {
			snapshot.LatestTag = latest.Raw
		}
	}

	snapshot.Remotes = s.Repo.Remotes(ctx)
	snapshot.StatusDirt = s.Repo.Status(ctx)
	snapshot.RecentLog = s.Repo.RecentLog(ctx, 3)
	return snapshot, nil
}
