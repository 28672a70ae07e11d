package release_test

import (
	"context"
	"errors"
	"testing"

	"github.com/appfeat/gitgo/internal/application/release"
	"github.com/appfeat/gitgo/internal/domain"
)

func TestResolveIdentityPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		local      map[string]string
		global     map[string]string
		wantName   string
		wantSource domain.IdentitySource
	}{
		{
			name:       "repo-local wins over global",
			local:      map[string]string{"user.name": "Repo User", "user.email": "repo@example.com"},
			global:     map[string]string{"user.name": "Global User", "user.email": "global@example.com"},
			wantName:   "Repo User",
			wantSource: domain.IdentityFromRepo,
		},
		{
			name:       "global used when repo-local empty",
			global:     map[string]string{"user.name": "Global User", "user.email": "global@example.com"},
			wantName:   "Global User",
			wantSource: domain.IdentityFromGlobal,
		},
		{
			name:       "partially set repo-local still counts as repo-local",
			local:      map[string]string{"user.email": "repo@example.com"},
			global:     map[string]string{"user.name": "Global User"},
			wantName:   "",
			wantSource: domain.IdentityFromRepo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			for k, v := range tt.local {
				repo.localCfg[k] = v
			}
			for k, v := range tt.global {
				repo.globalCfg[k] = v
			}

			id, err := release.ResolveIdentity(context.Background(), repo, &scriptedPrompter{enabled: true})
			if err != nil {
				t.Fatalf("ResolveIdentity() error = %v", err)
			}
			if id.Name != tt.wantName {
				t.Errorf("name = %q, want %q", id.Name, tt.wantName)
			}
			if id.Source != tt.wantSource {
				t.Errorf("source = %s, want %s", id.Source, tt.wantSource)
			}
		})
	}
}

func TestResolveIdentityPromptsWhenUnset(t *testing.T) {
	repo := newFakeRepo()
	prompter := &scriptedPrompter{enabled: true, answers: []string{"Ada", "ada@example.com"}}

	id, err := release.ResolveIdentity(context.Background(), repo, prompter)
	if err != nil {
		t.Fatalf("ResolveIdentity() error = %v", err)
	}
	if id.Source != domain.IdentityFromPrompt {
		t.Errorf("source = %s, want prompted", id.Source)
	}
	if id.Name != "Ada" || id.Email != "ada@example.com" {
		t.Errorf("identity = %+v", id)
	}
	// Resolving alone persists nothing; writes happen only on review edits.
	if len(repo.writes) != 0 {
		t.Errorf("resolver wrote config: %+v", repo.writes)
	}
}

func TestResolveIdentityFailsWithoutPrompter(t *testing.T) {
	repo := newFakeRepo()

	_, err := release.ResolveIdentity(context.Background(), repo, &scriptedPrompter{enabled: false})
	if !errors.Is(err, domain.ErrIdentityUnavailable) {
		t.Fatalf("error = %v, want ErrIdentityUnavailable", err)
	}

	_, err = release.ResolveIdentity(context.Background(), repo, nil)
	if !errors.Is(err, domain.ErrIdentityUnavailable) {
		t.Fatalf("nil prompter error = %v, want ErrIdentityUnavailable", err)
	}
}

func TestWriteIdentityTargetsLocalScopeOnly(t *testing.T) {
	repo := newFakeRepo()
	id := domain.Identity{Name: "Ada", Email: "ada@example.com"}

	if err := release.WriteIdentity(context.Background(), repo, id); err != nil {
		t.Fatalf("WriteIdentity() error = %v", err)
	}

	if got := repo.localCfg["user.name"]; got != "Ada" {
		t.Errorf("local user.name = %q", got)
	}
	if writes := repo.globalWrites(); len(writes) != 0 {
		t.Errorf("global scope was written: %+v", writes)
	}
}
