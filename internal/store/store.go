// Package store keeps the session profile state.
package store

import (
	"sync"

	"github.com/spigell/internai/internal/types"
)

// Snapshot is an immutable view of the store.
type Snapshot struct {
	Profile  types.Profile
	Loading  bool
	Error    string
	HasError bool
}

// ProfileStore owns the current profile and the global loading and error flags.
// Every setter replaces exactly one field and notifies the observers.
type ProfileStore struct {
	mu        sync.RWMutex
	profile   types.Profile
	loading   bool
	err       string
	hasErr    bool
	observers []func(Snapshot)
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{}
}

// Subscribe registers fn to be called after each setter call.
func (s *ProfileStore) Subscribe(fn func(Snapshot)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

func (s *ProfileStore) Profile() types.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone()
}

func (s *ProfileStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *ProfileStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Error returns the current error message and whether one is set.
func (s *ProfileStore) Error() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err, s.hasErr
}

func (s *ProfileStore) SetName(name string) {
	s.update(func() { s.profile.Name = name })
}

func (s *ProfileStore) SetEmail(email string) {
	s.update(func() { s.profile.Email = email })
}

func (s *ProfileStore) SetSkills(skills []string) {
	skills = types.CloneStrings(skills)
	s.update(func() { s.profile.Skills = skills })
}

func (s *ProfileStore) SetHighlights(highlights []string) {
	highlights = types.CloneStrings(highlights)
	s.update(func() { s.profile.Highlights = highlights })
}

func (s *ProfileStore) SetMissingSkills(missing []string) {
	missing = types.CloneStrings(missing)
	s.update(func() { s.profile.MissingSkills = missing })
}

func (s *ProfileStore) SetProfileText(text string) {
	s.update(func() { s.profile.ProfileText = text })
}

func (s *ProfileStore) SetLoading(loading bool) {
	s.update(func() { s.loading = loading })
}

// SetError stores a user-visible message. It never touches the loading flag.
func (s *ProfileStore) SetError(message string) {
	s.update(func() {
		s.err = message
		s.hasErr = true
	})
}

func (s *ProfileStore) ClearError() {
	s.update(func() {
		s.err = ""
		s.hasErr = false
	})
}

func (s *ProfileStore) update(mutate func()) {
	s.mu.Lock()
	mutate()
	snapshot := s.snapshotLocked()
	observers := make([]func(Snapshot), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}

func (s *ProfileStore) snapshotLocked() Snapshot {
	return Snapshot{
		Profile:  s.profile.Clone(),
		Loading:  s.loading,
		Error:    s.err,
		HasError: s.hasErr,
	}
}
