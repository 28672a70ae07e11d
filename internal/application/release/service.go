package release

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/appfeat/gitgo/internal/application/message"
	"github.com/appfeat/gitgo/internal/domain"
	"github.com/appfeat/gitgo/internal/ports"
)

// Service orchestrates one full release run: resolve identity and version,
// stage, generate the message, hold the review session, then hand the
// confirmed proposal to the sequencer. All mutating history operations
// happen after confirmation, inside the sequencer.
type Service struct {
	Repo      ports.Repository
	Settings  ports.SettingsProvider
	Model     ports.MessageModel
	Lister    ports.ModelLister
	Prompter  ports.Prompter
	History   ports.ReleaseHistory
	Logger    ports.Logger
	UI        UI
	Sequencer *Sequencer
}

// Run executes the workflow. ErrNothingToCommit and ErrReviewAborted are
// normal outcomes for the caller to route; ErrIdentityUnavailable and a
// SequencerStepError are fatal.
func (s *Service) Run(ctx context.Context) (domain.RunOutcome, error) {
	if s.Repo == nil || s.Settings == nil || s.Prompter == nil || s.UI == nil || s.Sequencer == nil {
		return domain.RunOutcome{}, errors.New("release.Service dependencies not satisfied")
	}

	settings, err := s.Settings.Load(ctx)
	if err != nil {
		return domain.RunOutcome{}, fmt.Errorf("load settings: %w", err)
	}

	if !s.Repo.IsWorkTree(ctx) {
		return domain.RunOutcome{}, domain.ErrNotARepository
	}
	bootstrap := !s.Repo.HasCommits(ctx)

	// Stage first so the proposal is built from exactly what will commit.
	// Staging is idempotent; the sequencer re-runs and re-checks it later.
	if err := s.Repo.StageAll(ctx); err != nil {
		return domain.RunOutcome{}, fmt.Errorf("stage: %w", err)
	}
	files, err := s.Repo.StagedFiles(ctx)
	if err != nil {
		return domain.RunOutcome{}, fmt.Errorf("stage: %w", err)
	}
	if len(files) == 0 {
		return domain.RunOutcome{}, domain.ErrNothingToCommit
	}

	identity, err := ResolveIdentity(ctx, s.Repo, s.Prompter)
	if err != nil {
		return domain.RunOutcome{}, err
	}

	tags, err := s.Repo.Tags(ctx)
	if err != nil {
		s.warn("tag listing failed, starting from the baseline", map[string]interface{}{"error": err.Error()})
		tags = nil
	}
	bump := domain.ParseBumpKind(settings.Release.DefaultBump)
	version := domain.NextVersion(tags, bump)

	aiCfg := s.readAIConfig(ctx, settings)
	if aiCfg.Model == "" && s.Prompter.Enabled() {
		if model, ok, err := SelectModel(ctx, s.Repo, s.Lister, s.Prompter, s.UI, ""); err != nil {
			return domain.RunOutcome{}, err
		} else if ok {
			aiCfg.Model = model
		}
	}

	diff, err := s.Repo.StagedDiff(ctx, settings.AI.MaxDiffBytes)
	if err != nil {
		s.warn("staged diff unavailable", map[string]interface{}{"error": err.Error()})
		diff = ""
	}

	generator := &message.Generator{Model: s.Model, Logger: s.Logger}
	genReq := message.Request{
		Bootstrap:   bootstrap,
		StagedFiles: files,
		Diff:        diff,
		AI:          aiCfg,
	}
	generated := generator.Generate(ctx, genReq)
	if generated.AIWarning != "" {
		s.UI.ShowWarn(fmt.Sprintf("AI commit message generation failed: %s", generated.AIWarning))
	}

	proposal := domain.CommitProposal{
		Identity:  identity,
		Version:   version,
		Bump:      bump,
		Message:   generated.Message,
		Source:    generated.Source,
		AIWarning: generated.AIWarning,
		Model:     aiCfg.Model,
	}

	session := &ReviewSession{
		Repo:       s.Repo,
		Prompter:   s.Prompter,
		Lister:     s.Lister,
		Generator:  generator,
		UI:         s.UI,
		Tags:       tags,
		GenRequest: genReq,
	}
	confirmed, err := session.Run(ctx, proposal)
	if err != nil {
		return domain.RunOutcome{}, err
	}

	plan := ConfirmedProposal{
		Proposal: confirmed,
		Branch:   s.Repo.CurrentBranch(ctx),
		Remote:   settings.Release.Remote,
	}
	if err := s.ensureRemote(ctx, &plan); err != nil {
		return domain.RunOutcome{}, err
	}

	start := time.Now()
	outcome := s.Sequencer.Execute(ctx, plan)
	s.record(confirmed, len(files), outcome, time.Since(start), settings)
	return outcome, outcome.Err
}

func (s *Service) readAIConfig(ctx context.Context, settings domain.Settings) domain.AIConfig {
	cfg := domain.AIConfig{
		Model:          s.Repo.Config(ctx, domain.ScopeLocal, domain.ConfigKeyModel),
		TimeoutSeconds: settings.AI.DefaultTimeoutSeconds,
	}
	if raw := s.Repo.Config(ctx, domain.ScopeLocal, domain.ConfigKeyTimeout); raw != "" {
		if seconds, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			cfg.TimeoutSeconds = seconds
		}
	}
	cfg.TimeoutSeconds = domain.ClampTimeout(cfg.TimeoutSeconds)
	return cfg
}

// ensureRemote checks that the push target exists. When it does not, the
// user may supply a URL (validated before it is added) or leave it blank to
// keep the release local.
func (s *Service) ensureRemote(ctx context.Context, plan *ConfirmedProposal) error {
	for _, remote := range s.Repo.Remotes(ctx) {
		if remote.Name == plan.Remote {
			return nil
		}
	}

	if !s.Prompter.Enabled() {
		plan.SkipPush = true
		return nil
	}

	s.UI.ShowWarn(fmt.Sprintf("No git remote named %q is configured.", plan.Remote))
	s.UI.ShowInfo("A remote is required to push commits and tags.")
	url, err := s.Prompter.Ask("Enter remote repository URL (leave blank to skip push): ")
	if err != nil {
		return err
	}
	if url = strings.TrimSpace(url); url == "" {
		plan.SkipPush = true
		return nil
	}

	if err := s.Repo.ValidateRemoteURL(ctx, url); err != nil {
		return fmt.Errorf("remote validation failed: %w", err)
	}
	if err := s.Repo.AddRemote(ctx, plan.Remote, url); err != nil {
		return fmt.Errorf("add remote: %w", err)
	}
	s.UI.ShowInfo(fmt.Sprintf("Remote %q added successfully.", plan.Remote))
	return nil
}

func (s *Service) record(p domain.CommitProposal, fileCount int, outcome domain.RunOutcome, elapsed time.Duration, settings domain.Settings) {
	if s.History == nil || !settings.History.Enabled {
		return
	}
	record := domain.ReleaseRecord{
		Timestamp:  time.Now(),
		Version:    p.Version.String(),
		Summary:    p.Message.Summary,
		Source:     string(p.Source),
		Model:      p.Model,
		FileCount:  fileCount,
		Staged:     outcome.Staged,
		Tagged:     outcome.Tagged,
		Committed:  outcome.Committed,
		Pushed:     outcome.Pushed,
		DurationMS: elapsed.Milliseconds(),
	}
	if outcome.Err != nil {
		record.ErrorText = outcome.Err.Error()
	}
	if err := s.History.Save(record); err != nil {
		s.warn("history write failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Service) warn(msg string, fields map[string]interface{}) {
	if s.Logger != nil {
		s.Logger.Warn(msg, fields)
	}
}
