package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/internai/internal/apperr"
	"github.com/spigell/internai/internal/types"
)

type stubGenerator struct {
	response    string
	err         error
	lastSystem  string
	lastMessage string
}

func (s *stubGenerator) GenerateContent(_ context.Context, system, message string) (string, error) {
	s.lastSystem = system
	s.lastMessage = message
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

type stubEmbedder struct {
	vectors [][]float32
	err     error
	texts   []string
}

func (s *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	s.texts = texts
	return s.vectors, s.err
}

type staticJobs []types.JobItem

func (s staticJobs) SampleJobs(context.Context) ([]types.JobItem, error) {
	return s, nil
}

func testJobs() []types.JobItem {
	return []types.JobItem{
		{ID: "a", Title: "Designer", Company: "Paint Co", Description: "Figma and sketching"},
		{ID: "b", Title: "Backend Intern", Company: "Acme", Location: "Remote", Description: "Kubernetes and Go"},
		{ID: "c", Title: "Data Intern", Company: "Numbers", Description: "SQL and Python"},
	}
}

func TestBackendAnalyzeProfile(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"skills\": [\"Golang\", \"Docker\"], \"highlights\": [\"Won a hackathon\"]}\n```"}
	backend := NewBackend(stub, nil, nil, zap.NewNop(), 0)

	analysis, err := backend.AnalyzeProfile(context.Background(), "I know Docker, Python and Git.")
	require.NoError(t, err)

	assert.Equal(t, []string{"Golang", "Docker", "Python", "Git"}, analysis.Skills)
	assert.Equal(t, []string{"Won a hackathon"}, analysis.Highlights)
	assert.Equal(t, "Skills: Golang, Docker, Python, Git | Highlights: Won a hackathon", analysis.ProfileText)
	assert.Equal(t, analyzeSystemPrompt, stub.lastSystem)
	assert.Contains(t, stub.lastMessage, "I know Docker, Python and Git.")
}

func TestBackendAnalyzeProfileTruncatesResume(t *testing.T) {
	stub := &stubGenerator{response: `{"skills": [], "highlights": []}`}
	backend := NewBackend(stub, nil, nil, nil, 0)

	_, err := backend.AnalyzeProfile(context.Background(), strings.Repeat("ж", maxResumeRunes+100))
	require.NoError(t, err)
	assert.Equal(t, maxResumeRunes, strings.Count(stub.lastMessage, "ж"))
}

func TestBackendAnalyzeProfileErrors(t *testing.T) {
	t.Run("unreadable response", func(t *testing.T) {
		backend := NewBackend(&stubGenerator{response: "I could not help"}, nil, nil, nil, 0)

		_, err := backend.AnalyzeProfile(context.Background(), "Go developer")
		var svcErr *apperr.ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, http.StatusBadGateway, svcErr.StatusCode)
	})

	t.Run("api error", func(t *testing.T) {
		stub := &stubGenerator{err: genai.APIError{Code: http.StatusTooManyRequests, Message: "quota exhausted"}}
		backend := NewBackend(stub, nil, nil, nil, 0)

		_, err := backend.AnalyzeProfile(context.Background(), "Go developer")
		var svcErr *apperr.ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, http.StatusTooManyRequests, svcErr.StatusCode)
		assert.Equal(t, "quota exhausted", svcErr.Message)
	})

	t.Run("blank text", func(t *testing.T) {
		stub := &stubGenerator{}
		backend := NewBackend(stub, nil, nil, nil, 0)

		_, err := backend.AnalyzeProfile(context.Background(), "  ")
		assert.True(t, apperr.IsValidation(err))
		assert.Empty(t, stub.lastMessage)
	})
}

func TestBackendMatchJobsWithEmbeddings(t *testing.T) {
	embedder := &stubEmbedder{vectors: [][]float32{
		{1, 0}, // profile
		{0, 1},
		{1, 0},
		{1, 1},
	}}
	backend := NewBackend(nil, embedder, nil, nil, 0)
	profile := types.Profile{Name: "Ada", Skills: []string{"Go", "Python"}}

	results, err := backend.MatchJobs(context.Background(), profile, testJobs())
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "b", results[0].Job.ID)
	assert.Equal(t, 100.0, results[0].Score)
	assert.Equal(t, []string{"Kubernetes"}, results[0].MissingSkills)
	assert.Equal(t, "c", results[1].Job.ID)
	assert.Equal(t, 70.7, results[1].Score)
	assert.Equal(t, []string{"SQL"}, results[1].MissingSkills)
	assert.Equal(t, "a", results[2].Job.ID)
	assert.Equal(t, 0.0, results[2].Score)
	assert.Empty(t, results[2].MissingSkills)

	require.Len(t, embedder.texts, 4)
	assert.Equal(t, "Skills: Go, Python | Name: Ada", embedder.texts[0])
	assert.Equal(t, "Title: Backend Intern | Company: Acme | Location: Remote | Description: Kubernetes and Go", embedder.texts[2])
}

func TestBackendMatchJobsFallbackScores(t *testing.T) {
	backend := NewBackend(nil, &stubEmbedder{err: errors.New("embedding quota")}, nil, nil, 0)

	results, err := backend.MatchJobs(context.Background(), types.Profile{Skills: []string{"Go"}}, testJobs())
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, want := range []float64{95, 90, 85} {
		assert.Equal(t, want, results[i].Score)
	}
	assert.Equal(t, "a", results[0].Job.ID)

	assert.Equal(t, []float64{95, 90, 85, 80, 75, 70, 65, 60, 60, 60}, fallbackScores(10))
}

func TestBackendMatchJobsEmpty(t *testing.T) {
	embedder := &stubEmbedder{}
	backend := NewBackend(nil, embedder, nil, nil, 0)

	results, err := backend.MatchJobs(context.Background(), types.Profile{Skills: []string{"Go"}}, nil)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.Nil(t, embedder.texts)
}

func TestBackendSampleJobs(t *testing.T) {
	backend := NewBackend(nil, nil, staticJobs(testJobs()), nil, 0)
	jobs, err := backend.SampleJobs(context.Background())
	require.NoError(t, err)
	assert.Len(t, jobs, 3)

	jobs, err = NewBackend(nil, nil, nil, nil, 0).SampleJobs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestBackendWriteCoverLetter(t *testing.T) {
	job := testJobs()[1]
	profile := types.Profile{Name: "Ada", Skills: []string{"Go", "SQL", "Docker", "Git"}}

	stub := &stubGenerator{response: "Dear Acme team, ..."}
	text, err := NewBackend(stub, nil, nil, nil, 0).WriteCoverLetter(context.Background(), job, profile)
	require.NoError(t, err)
	assert.Equal(t, "Dear Acme team, ...", text)
	assert.Contains(t, stub.lastMessage, "Position: Backend Intern")
	assert.Contains(t, stub.lastMessage, "Skills: Go, SQL, Docker, Git")
	assert.Contains(t, stub.lastMessage, "Email: Available upon request")

	failing := &stubGenerator{err: errors.New("model down")}
	text, err = NewBackend(failing, nil, nil, nil, 0).WriteCoverLetter(context.Background(), job, profile)
	require.NoError(t, err)
	assert.Contains(t, text, "Backend Intern position at Acme")
	assert.Contains(t, text, "background in Go, SQL, Docker")
	assert.True(t, strings.HasSuffix(text, "Ada"))
}

func TestBackendCoachPrep(t *testing.T) {
	stub := &stubGenerator{response: `{
		"questions": [
			{"q": "Q1", "ideal_answer": "A1"},
			"Q2",
			{"q": "Q3"},
			"Q4", "Q5", "Q6"
		],
		"tips": ["T1", "T2", "T3", "T4"]
	}`}
	req := types.CoachRequest{Role: "Backend Intern", Profile: &types.Profile{Skills: []string{"Go"}}}

	resp, err := NewBackend(stub, nil, nil, nil, 0).CoachPrep(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Questions, maxCoachQuestions)
	assert.Equal(t, types.Question{Q: "Q1", IdealAnswer: "A1"}, resp.Questions[0])
	assert.Equal(t, types.DefaultIdealAnswer, resp.Questions[1].IdealAnswer)
	assert.Equal(t, []string{"T1", "T2", "T3"}, resp.Tips)

	assert.Contains(t, stub.lastSystem, "Provide exactly 5 targeted interview questions and 3 improvement tips.")
	assert.Contains(t, stub.lastMessage, "COMPANY: Not specified")
	assert.Contains(t, stub.lastMessage, "SKILLS: Go")
}

func TestBackendCoachPrepFallsBack(t *testing.T) {
	cases := []struct {
		name string
		stub *stubGenerator
	}{
		{name: "unreadable", stub: &stubGenerator{response: "1. Tell me about yourself"}},
		{name: "no questions", stub: &stubGenerator{response: `{"questions": [], "tips": ["x"]}`}},
		{name: "model error", stub: &stubGenerator{err: errors.New("down")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := NewBackend(tc.stub, nil, nil, nil, 0).CoachPrep(context.Background(), types.CoachRequest{Role: "Data Intern"})
			require.NoError(t, err)
			require.Len(t, resp.Questions, 5)
			assert.Contains(t, resp.Questions[0].Q, "Data Intern")
			assert.Contains(t, resp.Questions[1].Q, "the company")
			assert.Len(t, resp.Tips, 3)
		})
	}
}

func TestBackendHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	backend := NewBackend(&stubGenerator{err: context.Canceled}, nil, nil, nil, 0)

	_, err := backend.WriteCoverLetter(ctx, testJobs()[0], types.Profile{})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = backend.CoachPrep(ctx, types.CoachRequest{Role: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
