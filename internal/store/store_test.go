package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettersAreIdempotent(t *testing.T) {
	t.Parallel()

	setters := map[string]func(s *ProfileStore){
		"skills":         func(s *ProfileStore) { s.SetSkills([]string{"Go", "SQL"}) },
		"highlights":     func(s *ProfileStore) { s.SetHighlights([]string{"Hackathon winner"}) },
		"missing_skills": func(s *ProfileStore) { s.SetMissingSkills([]string{"Docker"}) },
		"profile_text":   func(s *ProfileStore) { s.SetProfileText("Skills: Go") },
		"name":           func(s *ProfileStore) { s.SetName("Sam") },
		"email":          func(s *ProfileStore) { s.SetEmail("sam@example.com") },
		"loading":        func(s *ProfileStore) { s.SetLoading(true) },
		"error":          func(s *ProfileStore) { s.SetError("Analysis failed: boom") },
		"clear_error":    func(s *ProfileStore) { s.ClearError() },
	}

	for name, set := range setters {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			once := NewProfileStore()
			set(once)

			twice := NewProfileStore()
			set(twice)
			set(twice)

			assert.Equal(t, once.Snapshot(), twice.Snapshot())
		})
	}
}

func TestLoadingAndErrorAreOrthogonal(t *testing.T) {
	s := NewProfileStore()

	s.SetError("Matching failed: timeout")
	s.SetLoading(true)
	msg, ok := s.Error()
	require.True(t, ok)
	assert.Equal(t, "Matching failed: timeout", msg)

	s.SetLoading(false)
	_, ok = s.Error()
	assert.True(t, ok, "clearing loading must not clear the error")

	s.ClearError()
	s.SetLoading(true)
	assert.True(t, s.IsLoading(), "clearing the error must not clear loading")
}

func TestSettersCopyInput(t *testing.T) {
	s := NewProfileStore()
	skills := []string{"Go", "SQL"}
	s.SetSkills(skills)
	skills[0] = "COBOL"

	assert.Equal(t, []string{"Go", "SQL"}, s.Profile().Skills)

	profile := s.Profile()
	profile.Skills[1] = "Perl"
	assert.Equal(t, []string{"Go", "SQL"}, s.Profile().Skills)
}

func TestSubscribersSeeEverySetter(t *testing.T) {
	s := NewProfileStore()

	var mu sync.Mutex
	var seen []Snapshot
	s.Subscribe(func(snap Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, snap)
	})

	s.SetLoading(true)
	s.SetSkills([]string{"Python"})
	s.SetLoading(false)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 3)
	assert.True(t, seen[0].Loading)
	assert.Empty(t, seen[0].Profile.Skills)
	assert.Equal(t, []string{"Python"}, seen[1].Profile.Skills)
	assert.False(t, seen[2].Loading)
}

func TestSequencer(t *testing.T) {
	seq := NewSequencer()

	first := seq.Issue(ActionAnalyze)
	assert.True(t, seq.IsLatest(first))

	other := seq.Issue(ActionMatch)
	assert.True(t, seq.IsLatest(first), "tokens are scoped per action")
	assert.True(t, seq.IsLatest(other))

	second := seq.Issue(ActionAnalyze)
	assert.False(t, seq.IsLatest(first))
	assert.True(t, seq.IsLatest(second))

	assert.False(t, seq.IsLatest(Token{}))
}
