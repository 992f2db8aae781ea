// Package workflow orchestrates profile analysis, job matching and artifact
// generation on top of a remote scoring service.
package workflow

import (
	"context"

	"github.com/spigell/internai/internal/types"
)

// Service is the remote scoring and generation boundary.
type Service interface {
	AnalyzeProfile(ctx context.Context, text string) (*types.Analysis, error)
	SampleJobs(ctx context.Context) ([]types.JobItem, error)
	MatchJobs(ctx context.Context, profile types.Profile, jobs []types.JobItem) ([]types.MatchResult, error)
	WriteCoverLetter(ctx context.Context, job types.JobItem, profile types.Profile) (string, error)
	CoachPrep(ctx context.Context, req types.CoachRequest) (*types.CoachResponse, error)
}

// AgentRegistry is the read-only agent status source.
type AgentRegistry interface {
	ListAgents(ctx context.Context) (*types.AgentListing, error)
}
