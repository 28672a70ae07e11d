// Package release implements the reviewed release workflow: identity
// resolution, the interactive review session, and the sequencer that drives
// the stage, tag, commit and push steps in a fixed order.
package release

import (
	"context"
	"fmt"
	"strings"

	"github.com/appfeat/gitgo/internal/domain"
	"github.com/appfeat/gitgo/internal/ports"
)

// ResolveIdentity determines the commit identity with strict precedence:
// repo-local config, then global config, then an interactive prompt. The
// resolver itself never writes anything; when the identity is later edited
// in review, the write goes to repo-local scope only.
func ResolveIdentity(ctx context.Context, repo ports.Repository, prompter ports.Prompter) (domain.Identity, error) {
	if id := readIdentityScope(ctx, repo, domain.ScopeLocal, domain.IdentityFromRepo); !id.Empty() {
		return id, nil
	}
	if id := readIdentityScope(ctx, repo, domain.ScopeGlobal, domain.IdentityFromGlobal); !id.Empty() {
		return id, nil
	}

	if prompter == nil || !prompter.Enabled() {
		return domain.Identity{Source: domain.IdentityUnresolvable}, domain.ErrIdentityUnavailable
	}
	id, err := PromptIdentity(prompter, domain.Identity{})
	if err != nil {
		return domain.Identity{}, err
	}
	id.Source = domain.IdentityFromPrompt
	if id.Empty() {
		return id, domain.ErrIdentityUnavailable
	}
	return id, nil
}

func readIdentityScope(ctx context.Context, repo ports.Repository, scope domain.ConfigScope, source domain.IdentitySource) domain.Identity {
	// Either field present counts as this scope answering, matching how
	// git itself layers partially-set identities.
	return domain.Identity{
		Name:   repo.Config(ctx, scope, "user.name"),
		Email:  repo.Config(ctx, scope, "user.email"),
		Source: source,
	}
}

// PromptIdentity asks for name and email; blank input keeps the current value.
func PromptIdentity(prompter ports.Prompter, current domain.Identity) (domain.Identity, error) {
	name, err := prompter.Ask(fmt.Sprintf("Name [%s]: ", current.Name))
	if err != nil {
		return current, err
	}
	email, err := prompter.Ask(fmt.Sprintf("Email [%s]: ", current.Email))
	if err != nil {
		return current, err
	}
	if name = strings.TrimSpace(name); name == "" {
		name = current.Name
	}
	if email = strings.TrimSpace(email); email == "" {
		email = current.Email
	}
	return domain.Identity{Name: name, Email: email, Source: current.Source}, nil
}

// WriteIdentity persists an edited identity. Repo-local scope only; the
// global configuration is never touched, so one machine can carry distinct
// identities per repository.
func WriteIdentity(ctx context.Context, repo ports.Repository, id domain.Identity) error {
	if err := repo.SetConfig(ctx, domain.ScopeLocal, "user.name", id.Name); err != nil {
		return fmt.Errorf("write user.name: %w", err)
	}
	if err := repo.SetConfig(ctx, domain.ScopeLocal, "user.email", id.Email); err != nil {
		return fmt.Errorf("write user.email: %w", err)
	}
	return nil
}
