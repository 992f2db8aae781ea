package internai

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/internai/internal/types"
)

type writeRequest struct {
	Job     types.JobItem  `json:"job"`
	Profile profilePayload `json:"profile"`
}

type writeResponse struct {
	CoverLetter string `json:"cover_letter"`
}

// WriteCoverLetter drafts a cover letter for the job.
func (c *Client) WriteCoverLetter(ctx context.Context, job types.JobItem, profile types.Profile) (string, error) {
	var resp writeResponse
	if err := c.postJSON(ctx, writePath, writeRequest{Job: job, Profile: newProfilePayload(profile)}, &resp); err != nil {
		return "", err
	}

	return resp.CoverLetter, nil
}

type coachRequest struct {
	Role    string          `json:"role"`
	Company string          `json:"company,omitempty"`
	Profile *profilePayload `json:"profile,omitempty"`
}

type coachResponse struct {
	Questions []any    `json:"questions"`
	Tips      []string `json:"tips"`
}

// CoachPrep requests interview questions and tips for a role.
func (c *Client) CoachPrep(ctx context.Context, req types.CoachRequest) (*types.CoachResponse, error) {
	payload := coachRequest{
		Role:    req.Role,
		Company: strings.TrimSpace(req.Company),
	}
	if req.Profile != nil {
		p := newProfilePayload(*req.Profile)
		payload.Profile = &p
	}

	var resp coachResponse
	if err := c.postJSON(ctx, coachPath, payload, &resp); err != nil {
		return nil, err
	}

	questions, err := types.DecodeQuestions(resp.Questions)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("coaching response decoded",
		zap.Int("questions", len(questions)),
		zap.Int("tips", len(resp.Tips)),
	)

	return &types.CoachResponse{Questions: questions, Tips: resp.Tips}, nil
}
