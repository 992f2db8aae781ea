package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/internai/internal/apperr"
	"github.com/spigell/internai/internal/logger"
	"github.com/spigell/internai/internal/types"
)

type CoverLetter struct {
	JobID string
	// Correlation is set only for letters written for a JobDraft.
	Correlation types.CorrelationID
	Text        string
}

// ArtifactGenerator requests generated text for a job/profile pairing.
// Concurrent duplicate requests are not coalesced.
type ArtifactGenerator struct {
	service Service
	logger  *zap.Logger
}

func NewArtifactGenerator(service Service, log *zap.Logger) *ArtifactGenerator {
	return &ArtifactGenerator{
		service: service,
		logger:  logger.WithFields(log, zap.String(logger.FieldOperation, "artifact")),
	}
}

func (g *ArtifactGenerator) WriteCoverLetter(ctx context.Context, job types.JobItem, profile types.Profile) (*CoverLetter, error) {
	return g.writeCoverLetter(ctx, job, "", profile)
}

// WriteDraftCoverLetter writes a letter for loose job fields. The synthesized
// job id is a disposable correlator.
func (g *ArtifactGenerator) WriteDraftCoverLetter(ctx context.Context, draft types.JobDraft, profile types.Profile) (*CoverLetter, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, apperr.NewValidation("title", "job title is required")
	}

	job, correlation := draft.Materialize()
	return g.writeCoverLetter(ctx, job, correlation, profile)
}

func (g *ArtifactGenerator) writeCoverLetter(ctx context.Context, job types.JobItem, correlation types.CorrelationID, profile types.Profile) (*CoverLetter, error) {
	g.logger.Debug("writing cover letter",
		zap.String("job_id", job.ID),
		zap.String("correlation_id", correlation.String()),
	)

	text, err := g.service.WriteCoverLetter(ctx, job, profile)
	if err != nil {
		return nil, apperr.Classify(fmt.Errorf("write cover letter: %w", err))
	}

	return &CoverLetter{JobID: job.ID, Correlation: correlation, Text: text}, nil
}

// CoachPrep returns interview questions and tips. A blank company is omitted.
func (g *ArtifactGenerator) CoachPrep(ctx context.Context, role, company string, profile types.Profile) (*types.CoachResponse, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return nil, apperr.NewValidation("role", "role is required")
	}

	req := types.CoachRequest{
		Role:    role,
		Company: strings.TrimSpace(company),
		Profile: &profile,
	}

	g.logger.Debug("requesting coaching", zap.String("role", req.Role), zap.String("company", req.Company))

	resp, err := g.service.CoachPrep(ctx, req)
	if err != nil {
		return nil, apperr.Classify(fmt.Errorf("coach prep: %w", err))
	}
	if resp == nil {
		return nil, apperr.Classify(errors.New("coach prep: empty response"))
	}

	return resp, nil
}
