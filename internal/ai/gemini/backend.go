package gemini

import (
	"context"
	"errors"
	"math"
	"net/http"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/internai/internal/ai"
	"github.com/spigell/internai/internal/apperr"
	"github.com/spigell/internai/internal/logger"
	"github.com/spigell/internai/internal/skills"
	"github.com/spigell/internai/internal/types"
	"github.com/spigell/internai/internal/utils"
)

const (
	BackendName = "gemini"

	defaultMaxLogLength   = 200
	profileTextSkills     = 10
	profileTextHighlights = 3
)

// JobSource provides the sample job set.
type JobSource interface {
	SampleJobs(ctx context.Context) ([]types.JobItem, error)
}

// Backend serves the InternAI operations locally with Gemini models.
type Backend struct {
	generator ai.Generator
	embedder  ai.Embedder
	jobs      JobSource
	logger    *zap.Logger
	maxLogLen int
}

// NewBackend builds a backend. A nil embedder makes matching use positional
// fallback scores; a nil job source yields no sample jobs.
func NewBackend(generator ai.Generator, embedder ai.Embedder, jobs JobSource, log *zap.Logger, maxLogLength int) *Backend {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Backend{
		generator: generator,
		embedder:  embedder,
		jobs:      jobs,
		logger:    logger.WithFields(log, zap.String(logger.FieldBackend, BackendName)),
		maxLogLen: maxLogLength,
	}
}

// AnalyzeProfile merges model extracted skills with catalog keyword hits.
func (b *Backend) AnalyzeProfile(ctx context.Context, text string) (*types.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.NewValidation("text", "resume text is required")
	}

	raw, err := b.generate(ctx, "analyze", analyzeSystemPrompt, analyzeMessage(text))
	if err != nil {
		return nil, err
	}

	data, err := ai.DecodeObject(raw)
	if err != nil {
		b.logger.Warn("unreadable analysis response", zap.Error(err))
		return nil, &apperr.ServiceError{StatusCode: http.StatusBadGateway, Message: "model returned an unreadable analysis"}
	}

	merged := skills.Merge(ai.CoerceStrings(data["skills"]), skills.Scan(text))
	highlights := ai.CoerceStrings(data["highlights"])

	return &types.Analysis{
		Skills:      merged,
		Highlights:  highlights,
		ProfileText: profileText(merged, highlights),
	}, nil
}

func profileText(skillList, highlights []string) string {
	text := "Skills: " + strings.Join(head(skillList, profileTextSkills), ", ")
	if len(highlights) > 0 {
		text += " | Highlights: " + strings.Join(head(highlights, profileTextHighlights), "; ")
	}
	return text
}

func (b *Backend) SampleJobs(ctx context.Context) ([]types.JobItem, error) {
	if b.jobs == nil {
		return []types.JobItem{}, nil
	}
	return b.jobs.SampleJobs(ctx)
}

// MatchJobs scores jobs by embedding similarity with the profile, highest first.
func (b *Backend) MatchJobs(ctx context.Context, profile types.Profile, jobs []types.JobItem) ([]types.MatchResult, error) {
	if len(jobs) == 0 {
		return []types.MatchResult{}, nil
	}

	scores, err := b.similarityScores(ctx, profile, jobs)
	if err != nil {
		b.logger.Warn("embeddings failed, using fallback scores", zap.Error(err))
		scores = fallbackScores(len(jobs))
	}

	results := make([]types.MatchResult, 0, len(jobs))
	for i, job := range jobs {
		results = append(results, types.MatchResult{
			Job:           job,
			Score:         scores[i],
			MissingSkills: skills.FindMissing(profile.Skills, job.Description, skills.DefaultMissingLimit),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results, nil
}

func (b *Backend) similarityScores(ctx context.Context, profile types.Profile, jobs []types.JobItem) ([]float64, error) {
	if b.embedder == nil {
		return nil, errors.New("embedder is not configured")
	}

	texts := make([]string, 0, len(jobs)+1)
	texts = append(texts, profileEmbeddingText(profile))
	for _, job := range jobs {
		texts = append(texts, jobEmbeddingText(job))
	}

	vectors, err := b.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, errors.New("embedding count does not match input")
	}

	scores := make([]float64, len(jobs))
	for i := range jobs {
		sim := ai.CosineSimilarity(vectors[0], vectors[i+1])
		scores[i] = math.Round(sim*1000) / 10
	}
	return scores, nil
}

// fallbackScores ranks jobs by position: 95, 90, ... never below 60.
func fallbackScores(n int) []float64 {
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = math.Max(60, float64(95-5*i))
	}
	return scores
}

// WriteCoverLetter drafts a letter, falling back to a template when the model fails.
func (b *Backend) WriteCoverLetter(ctx context.Context, job types.JobItem, profile types.Profile) (string, error) {
	text, err := b.generate(ctx, "cover_letter", coverLetterSystemPrompt, coverLetterMessage(job, profile))
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		b.logger.Warn("cover letter generation failed, using template", zap.String("job_id", job.ID), zap.Error(err))
		return fallbackCoverLetter(job, profile), nil
	}
	return text, nil
}

// CoachPrep returns questions and tips, falling back to templates when the
// model fails or answers with something unreadable.
func (b *Backend) CoachPrep(ctx context.Context, req types.CoachRequest) (*types.CoachResponse, error) {
	raw, err := b.generate(ctx, "coach", coachSystemPrompt(), coachMessage(req))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		b.logger.Warn("coaching generation failed, using template", zap.String("role", req.Role), zap.Error(err))
		return fallbackCoaching(req.Role, req.Company), nil
	}

	resp, err := parseCoaching(raw)
	if err != nil {
		b.logger.Warn("unreadable coaching response, using template", zap.Error(err))
		return fallbackCoaching(req.Role, req.Company), nil
	}

	return resp, nil
}

func parseCoaching(raw string) (*types.CoachResponse, error) {
	data, err := ai.DecodeObject(raw)
	if err != nil {
		return nil, err
	}

	items, _ := data["questions"].([]any)
	questions, err := types.DecodeQuestions(items)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, errors.New("no questions in coaching response")
	}

	return &types.CoachResponse{
		Questions: head(questions, maxCoachQuestions),
		Tips:      head(ai.CoerceStrings(data["tips"]), maxCoachTips),
	}, nil
}

func (b *Backend) generate(ctx context.Context, operation, system, message string) (string, error) {
	log := b.logger.With(zap.String(logger.FieldOperation, operation))

	log.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(message)),
		zap.String("prompt_preview", utils.TruncateForLog(message, b.maxLogLen)),
	)

	if b.generator == nil {
		return "", errors.New("generator is not configured")
	}

	raw, err := b.generator.GenerateContent(ctx, system, message)
	if err != nil {
		return "", serviceError(err)
	}

	log.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, b.maxLogLen)),
	)

	return raw, nil
}

// serviceError reports Gemini API failures as service errors.
func serviceError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &apperr.ServiceError{StatusCode: apiErr.Code, Message: apiErr.Message}
	}
	return err
}

func head[T any](values []T, n int) []T {
	if len(values) > n {
		return values[:n]
	}
	return values
}
