package workflow

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/spigell/internai/internal/apperr"
	"github.com/spigell/internai/internal/logger"
	"github.com/spigell/internai/internal/store"
	"github.com/spigell/internai/internal/types"
)

const analyzeFirstMessage = "Please analyze your profile first"

// JobFilter narrows a job set before it is matched.
type JobFilter interface {
	RunFilters(ctx context.Context, jobs []types.JobItem) ([]types.JobItem, error)
}

// ArtifactView is what the UI renders for one kind of generated artifact.
type ArtifactView[T any] struct {
	Value   T
	Ready   bool
	Pending bool
	Error   string
}

type Deps struct {
	Service  Service
	Registry AgentRegistry
	Filters  JobFilter
	Logger   *zap.Logger
}

// Session is the per-user context shared by every action. Each action resets
// its own error slot when it starts and only the latest request of an action
// may apply its response.
type Session struct {
	Store *store.ProfileStore

	seq       *store.Sequencer
	service   Service
	filters   JobFilter
	analysis  *AnalysisPipeline
	matcher   *MatchingPipeline
	artifacts *ArtifactGenerator
	agents    *AgentStatusFeed
	logger    *zap.Logger

	mu          sync.RWMutex
	matches     []types.MatchResult
	coverLetter ArtifactView[*CoverLetter]
	coaching    ArtifactView[*types.CoachResponse]
}

func NewSession(deps Deps, cfg AnalysisConfig) *Session {
	log := logger.WithFields(deps.Logger)
	profiles := store.NewProfileStore()
	seq := store.NewSequencer()
	matcher := NewMatchingPipeline(deps.Service, log)

	return &Session{
		Store:     profiles,
		seq:       seq,
		service:   deps.Service,
		filters:   deps.Filters,
		analysis:  NewAnalysisPipeline(deps.Service, matcher, profiles, seq, cfg, log),
		matcher:   matcher,
		artifacts: NewArtifactGenerator(deps.Service, log),
		agents:    NewAgentStatusFeed(deps.Registry, log),
		logger:    log,
	}
}

// AnalyzeResume runs the analysis pipeline. A failure is reported in the store
// only while the request is still the latest one.
func (s *Session) AnalyzeResume(ctx context.Context, text string) (*AnalysisResult, error) {
	s.Store.ClearError()

	return s.analysis.Analyze(ctx, text)
}

// MatchJobs scores jobs against the current profile and replaces the match set.
func (s *Session) MatchJobs(ctx context.Context, jobs []types.JobItem) ([]types.MatchResult, error) {
	return s.match(ctx, func(context.Context) ([]types.JobItem, error) { return jobs, nil })
}

// MatchSample fetches the sample job set and matches it.
func (s *Session) MatchSample(ctx context.Context) ([]types.MatchResult, error) {
	return s.match(ctx, s.service.SampleJobs)
}

func (s *Session) match(ctx context.Context, load func(context.Context) ([]types.JobItem, error)) ([]types.MatchResult, error) {
	s.Store.ClearError()

	profile := s.Store.Profile()
	if !profile.HasSkills() {
		err := apperr.NewPrecondition(analyzeFirstMessage)
		s.Store.SetError(apperr.UserMessage(apperr.OpMatching, err))
		return nil, err
	}

	token := s.seq.Issue(store.ActionMatch)
	s.Store.SetLoading(true)
	defer func() {
		if s.seq.IsLatest(token) {
			s.Store.SetLoading(false)
		}
	}()

	fail := func(err error) ([]types.MatchResult, error) {
		err = apperr.Classify(err)
		if s.seq.IsLatest(token) {
			s.Store.SetError(apperr.UserMessage(apperr.OpMatching, err))
		}
		return nil, err
	}

	jobs, err := load(ctx)
	if err != nil {
		return fail(fmt.Errorf("load jobs: %w", err))
	}

	if s.filters != nil {
		if jobs, err = s.filters.RunFilters(ctx, jobs); err != nil {
			return fail(fmt.Errorf("filter jobs: %w", err))
		}
	}

	matches, err := s.matcher.Match(ctx, profile, jobs)
	if err != nil {
		return fail(err)
	}

	if !s.seq.IsLatest(token) {
		s.logger.Info("discarding superseded matching result")
		return matches, nil
	}

	s.mu.Lock()
	s.matches = matches
	s.mu.Unlock()

	return matches, nil
}

// Matches returns the current match set.
func (s *Session) Matches() []types.MatchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.MatchResult, len(s.matches))
	copy(out, s.matches)
	return out
}

// FindMatch looks a match up by job id.
func (s *Session) FindMatch(jobID string) (types.MatchResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.matches {
		if m.Job.ID == jobID {
			return m, true
		}
	}
	return types.MatchResult{}, false
}

func (s *Session) WriteCoverLetter(ctx context.Context, job types.JobItem) (*CoverLetter, error) {
	return s.coverLetterFor(ctx, func(ctx context.Context, profile types.Profile) (*CoverLetter, error) {
		return s.artifacts.WriteCoverLetter(ctx, job, profile)
	})
}

func (s *Session) WriteDraftCoverLetter(ctx context.Context, draft types.JobDraft) (*CoverLetter, error) {
	return s.coverLetterFor(ctx, func(ctx context.Context, profile types.Profile) (*CoverLetter, error) {
		return s.artifacts.WriteDraftCoverLetter(ctx, draft, profile)
	})
}

func (s *Session) coverLetterFor(ctx context.Context, generate func(context.Context, types.Profile) (*CoverLetter, error)) (*CoverLetter, error) {
	token := s.seq.Issue(store.ActionCoverLetter)
	s.updateCoverLetter(func(v *ArtifactView[*CoverLetter]) {
		v.Pending = true
		v.Error = ""
	})

	letter, err := generate(ctx, s.Store.Profile())
	if !s.seq.IsLatest(token) {
		return letter, err
	}

	s.updateCoverLetter(func(v *ArtifactView[*CoverLetter]) {
		v.Pending = false
		if err != nil {
			v.Error = apperr.UserMessage(apperr.OpCoverLetter, err)
			return
		}
		v.Value = letter
		v.Ready = true
	})

	return letter, err
}

// CoachPrep requests coaching content for a role and an optional company.
func (s *Session) CoachPrep(ctx context.Context, role, company string) (*types.CoachResponse, error) {
	token := s.seq.Issue(store.ActionCoach)
	s.updateCoaching(func(v *ArtifactView[*types.CoachResponse]) {
		v.Pending = true
		v.Error = ""
	})

	resp, err := s.artifacts.CoachPrep(ctx, role, company, s.Store.Profile())
	if !s.seq.IsLatest(token) {
		return resp, err
	}

	s.updateCoaching(func(v *ArtifactView[*types.CoachResponse]) {
		v.Pending = false
		if err != nil {
			v.Error = apperr.UserMessage(apperr.OpCoaching, err)
			return
		}
		v.Value = resp
		v.Ready = true
	})

	return resp, err
}

func (s *Session) CoverLetterView() ArtifactView[*CoverLetter] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coverLetter
}

func (s *Session) CoachingView() ArtifactView[*types.CoachResponse] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coaching
}

// RefreshAgents polls the agent registry on demand.
func (s *Session) RefreshAgents(ctx context.Context) AgentSnapshot {
	return s.agents.Poll(ctx)
}

func (s *Session) Agents() AgentSnapshot {
	return s.agents.Snapshot()
}

func (s *Session) updateCoverLetter(fn func(*ArtifactView[*CoverLetter])) {
	s.mu.Lock()
	fn(&s.coverLetter)
	s.mu.Unlock()
}

func (s *Session) updateCoaching(fn func(*ArtifactView[*types.CoachResponse])) {
	s.mu.Lock()
	fn(&s.coaching)
	s.mu.Unlock()
}
