package release

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/appfeat/gitgo/internal/application/message"
	"github.com/appfeat/gitgo/internal/domain"
	"github.com/appfeat/gitgo/internal/ports"
)

// UI is the rendering side of the review session. The cli package provides
// the styled implementation; tests provide a silent one.
type UI interface {
	ShowProposal(p domain.CommitProposal)
	ShowInfo(msg string)
	ShowWarn(msg string)
}

// ReviewSession is the cooperative edit loop over a commit proposal. It
// suspends on user input at each decision point, re-renders after every
// edit, and terminates only on an explicit accept or abort. It mutates the
// in-memory proposal and, for identity and model edits, repo-local
// configuration; it never stages, commits, or tags.
type ReviewSession struct {
	Repo      ports.Repository
	Prompter  ports.Prompter
	Lister    ports.ModelLister
	Generator *message.Generator
	UI        UI

	// Tags is the raw tag list, kept so a bump-kind change can recompute
	// the proposed version without another collaborator round trip.
	Tags []string
	// GenRequest reproduces the message generation inputs for a model change.
	GenRequest message.Request
}

// Run drives the loop until the user accepts or aborts. An abort is a
// clean no-op by construction: nothing mutating has happened yet.
func (s *ReviewSession) Run(ctx context.Context, proposal domain.CommitProposal) (domain.CommitProposal, error) {
	for {
		s.UI.ShowProposal(proposal)
		choice, err := s.Prompter.Ask("1) Commit & push  2) Edit identity  3) Edit message  4) Change AI model  5) Change version bump  6) Cancel\nChoice: ")
		if err != nil {
			return proposal, fmt.Errorf("review input: %w", err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			return proposal, nil
		case "2":
			proposal, err = s.editIdentity(ctx, proposal)
		case "3":
			proposal, err = s.editMessage(proposal)
		case "4":
			proposal, err = s.changeModel(ctx, proposal)
		case "5":
			proposal, err = s.changeBump(proposal)
		case "6":
			return proposal, domain.ErrReviewAborted
		default:
			continue
		}
		if err != nil {
			return proposal, err
		}
	}
}

func (s *ReviewSession) editIdentity(ctx context.Context, proposal domain.CommitProposal) (domain.CommitProposal, error) {
	s.UI.ShowInfo("Enter commit identity (blank keeps current):")
	edited, err := PromptIdentity(s.Prompter, proposal.Identity)
	if err != nil {
		return proposal, err
	}
	edited.Source = domain.IdentityFromRepo
	if err := WriteIdentity(ctx, s.Repo, edited); err != nil {
		return proposal, err
	}
	proposal.Identity = edited
	return proposal, nil
}

func (s *ReviewSession) editMessage(proposal domain.CommitProposal) (domain.CommitProposal, error) {
	raw, err := s.Prompter.AskMultiline("Enter message (finish with a single '.' line):")
	if err != nil {
		return proposal, err
	}
	edited := domain.SanitizeMessage(raw)
	if edited.Empty() {
		s.UI.ShowWarn("Empty message, keeping the current one.")
		return proposal, nil
	}
	proposal.Message = edited
	proposal.AIWarning = ""
	return proposal, nil
}

func (s *ReviewSession) changeModel(ctx context.Context, proposal domain.CommitProposal) (domain.CommitProposal, error) {
	model, ok, err := SelectModel(ctx, s.Repo, s.Lister, s.Prompter, s.UI, proposal.Model)
	if err != nil || !ok {
		return proposal, err
	}
	proposal.Model = model

	// A fresh model resets prior AI failure state before regeneration.
	req := s.GenRequest
	req.AI.Model = model
	result := s.Generator.Generate(ctx, req)
	proposal.Message = result.Message
	proposal.Source = result.Source
	proposal.AIWarning = result.AIWarning
	return proposal, nil
}

func (s *ReviewSession) changeBump(proposal domain.CommitProposal) (domain.CommitProposal, error) {
	answer, err := s.Prompter.Ask(fmt.Sprintf("Bump kind (patch/minor/major) [%s]: ", proposal.Bump))
	if err != nil {
		return proposal, err
	}
	if answer = strings.TrimSpace(answer); answer == "" {
		return proposal, nil
	}
	proposal.Bump = domain.ParseBumpKind(answer)
	proposal.Version = domain.NextVersion(s.Tags, proposal.Bump)
	return proposal, nil
}

// SelectModel runs the model-choice menu: the saved model and the best
// candidate per family up front, with a "more models" escape to the full
// list. The chosen model is persisted to repo-local config. Returns ok
// false when no model could be offered or the selection was left as-is
// with nothing saved.
func SelectModel(ctx context.Context, repo ports.Repository, lister ports.ModelLister, prompter ports.Prompter, ui UI, savedID string) (string, bool, error) {
	if lister == nil {
		return "", false, nil
	}
	models, err := lister.ListModels(ctx)
	if err != nil || len(models) == 0 {
		if ui != nil {
			ui.ShowWarn("No AI models available; using the deterministic message.")
		}
		return "", false, nil
	}

	choices := domain.DefaultModelChoices(models, savedID)
	ui.ShowInfo("AI model:")
	for i, m := range choices {
		suffix := ""
		if i == 0 {
			suffix = " (default)"
		}
		ui.ShowInfo(fmt.Sprintf(" %d) %s%s", i+1, m.Label, suffix))
	}
	more := len(choices) + 1
	ui.ShowInfo(fmt.Sprintf(" %d) More models...", more))

	answer, err := prompter.Ask("Select model [default]: ")
	if err != nil {
		return "", false, err
	}

	var chosen domain.Model
	switch n, convErr := strconv.Atoi(strings.TrimSpace(answer)); {
	case convErr != nil, n < 1:
		chosen = choices[0]
	case n <= len(choices):
		chosen = choices[n-1]
	case n == more:
		chosen, err = pickFromFullList(models, choices[0], prompter, ui)
		if err != nil {
			return "", false, err
		}
	default:
		chosen = choices[0]
	}

	if err := repo.SetConfig(ctx, domain.ScopeLocal, domain.ConfigKeyModel, chosen.ID); err != nil {
		return "", false, fmt.Errorf("save model: %w", err)
	}
	return chosen.ID, true, nil
}

func pickFromFullList(models []domain.Model, fallback domain.Model, prompter ports.Prompter, ui UI) (domain.Model, error) {
	ui.ShowInfo("All models:")
	for i, m := range models {
		ui.ShowInfo(fmt.Sprintf(" %d) %s", i+1, m.Label))
	}
	answer, err := prompter.Ask("Select model: ")
	if err != nil {
		return fallback, err
	}
	if n, convErr := strconv.Atoi(strings.TrimSpace(answer)); convErr == nil && n >= 1 && n <= len(models) {
		return models[n-1], nil
	}
	return fallback, nil
}
