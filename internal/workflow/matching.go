package workflow

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/internai/internal/apperr"
	"github.com/spigell/internai/internal/logger"
	"github.com/spigell/internai/internal/types"
)

// MatchingPipeline scores a job set against a profile.
//
// It does not check that the profile has skills: callers must short-circuit
// with a PreconditionError before invoking it.
type MatchingPipeline struct {
	service Service
	logger  *zap.Logger
}

func NewMatchingPipeline(service Service, log *zap.Logger) *MatchingPipeline {
	return &MatchingPipeline{
		service: service,
		logger:  logger.WithFields(log, zap.String(logger.FieldOperation, "match")),
	}
}

// Match returns the results in the order the service produced them.
func (p *MatchingPipeline) Match(ctx context.Context, profile types.Profile, jobs []types.JobItem) ([]types.MatchResult, error) {
	p.logger.Debug("matching jobs",
		zap.Int("jobs", len(jobs)),
		zap.Int("skills", len(profile.Skills)),
	)

	matches, err := p.service.MatchJobs(ctx, profile, jobs)
	if err != nil {
		return nil, apperr.Classify(fmt.Errorf("match jobs: %w", err))
	}

	if dups := duplicateJobIDs(matches); len(dups) > 0 {
		p.logger.Warn("service returned duplicate job ids in one matching run",
			zap.Strings("job_ids", dups),
		)
	}

	p.logger.Debug("jobs matched", zap.Int("matches", len(matches)))

	return matches, nil
}

func duplicateJobIDs(matches []types.MatchResult) []string {
	seen := make(map[string]int, len(matches))
	var dups []string
	for _, m := range matches {
		seen[m.Job.ID]++
		if seen[m.Job.ID] == 2 {
			dups = append(dups, m.Job.ID)
		}
	}
	return dups
}
