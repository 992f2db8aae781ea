package store

import "sync"

// Action names a class of user-triggered requests that supersede each other.
type Action string

const (
	ActionAnalyze     Action = "analyze"
	ActionMatch       Action = "match"
	ActionCoverLetter Action = "cover_letter"
	ActionCoach       Action = "coach"
	ActionAgents      Action = "agents"
)

// Token identifies one issued request of an action.
type Token struct {
	Action Action
	Seq    uint64
}

// Sequencer hands out per-action request tokens. Only the latest token of an
// action may apply its response.
type Sequencer struct {
	mu     sync.Mutex
	latest map[Action]uint64
}

func NewSequencer() *Sequencer {
	return &Sequencer{latest: make(map[Action]uint64)}
}

func (s *Sequencer) Issue(action Action) Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[action]++
	return Token{Action: action, Seq: s.latest[action]}
}

func (s *Sequencer) IsLatest(token Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return token.Seq != 0 && s.latest[token.Action] == token.Seq
}
