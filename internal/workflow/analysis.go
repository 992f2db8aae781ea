package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/internai/internal/apperr"
	"github.com/spigell/internai/internal/logger"
	"github.com/spigell/internai/internal/store"
	"github.com/spigell/internai/internal/types"
	"github.com/spigell/internai/internal/utils"
)

const (
	DefaultSampleSize       = 3
	DefaultMissingSkillsCap = 5
)

type AnalysisConfig struct {
	// SampleSize bounds the jobs used to derive missing skills.
	SampleSize int
	// MissingSkillsCap bounds the stored missing skills.
	MissingSkillsCap int
}

func (c AnalysisConfig) withDefaults() AnalysisConfig {
	if c.SampleSize <= 0 {
		c.SampleSize = DefaultSampleSize
	}
	if c.MissingSkillsCap <= 0 {
		c.MissingSkillsCap = DefaultMissingSkillsCap
	}
	return c
}

type AnalysisResult struct {
	types.Analysis
	MissingSkills []string
	// Applied is false when a newer analysis superseded this one and nothing
	// was written to the store.
	Applied bool
	// Degraded is true when the missing skills could not be derived.
	Degraded bool
}

// AnalysisPipeline turns resume text into a skill profile.
type AnalysisPipeline struct {
	service Service
	matcher *MatchingPipeline
	store   *store.ProfileStore
	seq     *store.Sequencer
	config  AnalysisConfig
	logger  *zap.Logger
}

func NewAnalysisPipeline(service Service, matcher *MatchingPipeline, profiles *store.ProfileStore, seq *store.Sequencer, cfg AnalysisConfig, log *zap.Logger) *AnalysisPipeline {
	return &AnalysisPipeline{
		service: service,
		matcher: matcher,
		store:   profiles,
		seq:     seq,
		config:  cfg.withDefaults(),
		logger:  logger.WithFields(log, zap.String(logger.FieldOperation, "analyze")),
	}
}

// Analyze extracts skills, highlights and profile text and writes them to the
// store, then derives missing skills from a small sample match.
func (p *AnalysisPipeline) Analyze(ctx context.Context, resumeText string) (*AnalysisResult, error) {
	if strings.TrimSpace(resumeText) == "" {
		err := apperr.NewValidation("resume text", "resume text is required")
		p.store.SetError(apperr.UserMessage(apperr.OpAnalysis, err))
		return nil, err
	}

	token := p.seq.Issue(store.ActionAnalyze)
	p.store.SetLoading(true)
	defer func() {
		if p.seq.IsLatest(token) {
			p.store.SetLoading(false)
		}
	}()

	p.logger.Debug("analyzing resume",
		zap.Int("text_length", len(resumeText)),
		zap.String("text_preview", utils.TruncateForLog(resumeText, 80)),
	)

	fail := func(err error) (*AnalysisResult, error) {
		err = apperr.Classify(err)
		if p.seq.IsLatest(token) {
			p.store.SetError(apperr.UserMessage(apperr.OpAnalysis, err))
		} else {
			p.logger.Info("discarding superseded analysis failure", zap.Error(err))
		}
		return nil, err
	}

	// Taken before the call so the secondary step sees the profile this
	// request started from.
	base := p.store.Profile()

	analysis, err := p.service.AnalyzeProfile(ctx, resumeText)
	if err != nil {
		return fail(fmt.Errorf("analyze profile: %w", err))
	}
	if analysis == nil {
		return fail(errors.New("analyze profile: empty response"))
	}

	result := &AnalysisResult{Analysis: *analysis}

	if !p.seq.IsLatest(token) {
		p.logger.Info("discarding superseded analysis result")
		return result, nil
	}

	p.store.SetSkills(analysis.Skills)
	p.store.SetHighlights(analysis.Highlights)
	p.store.SetProfileText(analysis.ProfileText)
	result.Applied = true

	p.logger.Info("profile analyzed",
		zap.Int("skills", len(analysis.Skills)),
		zap.Int("highlights", len(analysis.Highlights)),
	)

	missing := p.deriveMissingSkills(ctx, profileFrom(base, *analysis))
	if !p.seq.IsLatest(token) {
		return result, nil
	}

	if skills, ok := missing.Value(); ok {
		p.store.SetMissingSkills(skills)
		result.MissingSkills = skills
		return result, nil
	}

	p.logger.Warn("missing skills derivation failed, keeping a degraded profile", zap.Error(missing.Err()))
	p.store.SetMissingSkills(nil)
	result.Degraded = true

	return result, nil
}

// deriveMissingSkills matches the freshly extracted profile, never the store
// value, against the first jobs of the sample set.
func (p *AnalysisPipeline) deriveMissingSkills(ctx context.Context, profile types.Profile) Result[[]string] {
	if len(profile.Skills) == 0 {
		return Fail[[]string](errors.New("no skills extracted"))
	}

	jobs, err := p.service.SampleJobs(ctx)
	if err != nil {
		return Fail[[]string](fmt.Errorf("get sample jobs: %w", err))
	}

	if len(jobs) > p.config.SampleSize {
		jobs = jobs[:p.config.SampleSize]
	}

	matches, err := p.matcher.Match(ctx, profile, jobs)
	if err != nil {
		return Fail[[]string](err)
	}

	return Ok(AggregateMissingSkills(matches, p.config.MissingSkillsCap))
}

// profileFrom overlays a fresh analysis on the profile the request started from.
func profileFrom(base types.Profile, analysis types.Analysis) types.Profile {
	profile := base.Clone()
	profile.Skills = types.CloneStrings(analysis.Skills)
	profile.Highlights = types.CloneStrings(analysis.Highlights)
	profile.ProfileText = analysis.ProfileText
	profile.MissingSkills = nil
	return profile
}

// AggregateMissingSkills flattens the missing skills of all matches, removes
// duplicates by exact string equality and keeps at most limit of them.
func AggregateMissingSkills(matches []types.MatchResult, limit int) []string {
	var all []string
	for _, m := range matches {
		all = append(all, m.MissingSkills...)
	}
	return utils.DedupeStrings(all, limit)
}
