package workflow

import (
	"context"
	"sync"

	"github.com/spigell/internai/internal/types"
)

type fakeService struct {
	mu sync.Mutex

	analysis   *types.Analysis
	analyzeErr error
	analyzeFn  func(ctx context.Context, text string) (*types.Analysis, error)

	sample    []types.JobItem
	sampleErr error

	matchFn func(profile types.Profile, jobs []types.JobItem) ([]types.MatchResult, error)
	coverFn func(ctx context.Context, job types.JobItem) (string, error)
	coachFn func(req types.CoachRequest) (*types.CoachResponse, error)

	calls         map[string]int
	matchProfiles []types.Profile
	matchJobs     [][]types.JobItem
	coverJobs     []types.JobItem
	coachRequests []types.CoachRequest
}

func newFakeService() *fakeService {
	return &fakeService{calls: make(map[string]int)}
}

func (f *fakeService) record(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeService) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeService) AnalyzeProfile(ctx context.Context, text string) (*types.Analysis, error) {
	f.record("analyze")
	if f.analyzeFn != nil {
		return f.analyzeFn(ctx, text)
	}
	return f.analysis, f.analyzeErr
}

func (f *fakeService) SampleJobs(context.Context) ([]types.JobItem, error) {
	f.record("sample")
	return f.sample, f.sampleErr
}

func (f *fakeService) MatchJobs(_ context.Context, profile types.Profile, jobs []types.JobItem) ([]types.MatchResult, error) {
	f.record("match")
	f.mu.Lock()
	f.matchProfiles = append(f.matchProfiles, profile)
	f.matchJobs = append(f.matchJobs, jobs)
	f.mu.Unlock()
	if f.matchFn != nil {
		return f.matchFn(profile, jobs)
	}
	results := make([]types.MatchResult, 0, len(jobs))
	for _, job := range jobs {
		results = append(results, types.MatchResult{Job: job, Score: 70})
	}
	return results, nil
}

func (f *fakeService) WriteCoverLetter(ctx context.Context, job types.JobItem, _ types.Profile) (string, error) {
	f.record("write")
	f.mu.Lock()
	f.coverJobs = append(f.coverJobs, job)
	f.mu.Unlock()
	if f.coverFn != nil {
		return f.coverFn(ctx, job)
	}
	return "Dear " + job.Company, nil
}

func (f *fakeService) CoachPrep(_ context.Context, req types.CoachRequest) (*types.CoachResponse, error) {
	f.record("coach")
	f.mu.Lock()
	f.coachRequests = append(f.coachRequests, req)
	f.mu.Unlock()
	if f.coachFn != nil {
		return f.coachFn(req)
	}
	return &types.CoachResponse{
		Questions: []types.Question{{Q: "Why " + req.Role + "?", IdealAnswer: "Be specific."}},
		Tips:      []string{"Prepare stories"},
	}, nil
}

type fakeRegistry struct {
	listing *types.AgentListing
	err     error
}

func (f *fakeRegistry) ListAgents(context.Context) (*types.AgentListing, error) {
	return f.listing, f.err
}

func sampleJobs(n int) []types.JobItem {
	jobs := make([]types.JobItem, 0, n)
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		jobs = append(jobs, types.JobItem{
			ID:      id,
			Source:  types.SourceLinkedIn,
			Title:   "Intern " + id,
			Company: "Company " + id,
			URL:     "https://jobs.example/" + id,
		})
	}
	return jobs
}
