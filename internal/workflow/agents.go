package workflow

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spigell/internai/internal/logger"
	"github.com/spigell/internai/internal/store"
	"github.com/spigell/internai/internal/types"
)

type AgentSnapshot struct {
	Agents  []types.Agent
	Status  types.AgentStatus
	Message string
}

// ShowBanner reports whether the informational banner should be visible.
func (s AgentSnapshot) ShowBanner() bool {
	return s.Status == types.AgentStatusError || s.Status == types.AgentStatusNoCache
}

// AgentStatusFeed is a best-effort read of the agent registry. It never fails.
type AgentStatusFeed struct {
	registry AgentRegistry
	seq      *store.Sequencer
	logger   *zap.Logger

	mu       sync.RWMutex
	snapshot AgentSnapshot
}

func NewAgentStatusFeed(registry AgentRegistry, log *zap.Logger) *AgentStatusFeed {
	return &AgentStatusFeed{
		registry: registry,
		seq:      store.NewSequencer(),
		logger:   logger.WithFields(log, zap.String(logger.FieldOperation, "agents")),
		snapshot: AgentSnapshot{Status: types.AgentStatusLoading},
	}
}

// Snapshot returns the last poll outcome, or loading while none finished.
func (f *AgentStatusFeed) Snapshot() AgentSnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snapshot
}

// Poll reads the registry once. Failures resolve to an error status. A poll
// superseded by a newer one returns its result without publishing it.
func (f *AgentStatusFeed) Poll(ctx context.Context) AgentSnapshot {
	token := f.seq.Issue(store.ActionAgents)
	f.set(token, AgentSnapshot{Status: types.AgentStatusLoading})

	snapshot := f.read(ctx)
	f.set(token, snapshot)

	return snapshot
}

func (f *AgentStatusFeed) read(ctx context.Context) AgentSnapshot {
	if f.registry == nil {
		return AgentSnapshot{Agents: []types.Agent{}, Status: types.AgentStatusError, Message: "agent registry is not configured"}
	}

	listing, err := f.registry.ListAgents(ctx)
	if err != nil {
		f.logger.Warn("agent registry is unavailable", zap.Error(err))
		return AgentSnapshot{Agents: []types.Agent{}, Status: types.AgentStatusError, Message: err.Error()}
	}
	if listing == nil {
		return AgentSnapshot{Agents: []types.Agent{}, Status: types.AgentStatusError}
	}

	if listing.Error != "" {
		f.logger.Warn("agent registry reported an error", zap.String("error", listing.Error))
		return AgentSnapshot{Agents: []types.Agent{}, Status: types.AgentStatusError, Message: listing.Error}
	}

	status := types.ParseAgentStatus(listing.Status)
	agents := listing.Agents
	if agents == nil || status == types.AgentStatusError {
		agents = []types.Agent{}
	}

	f.logger.Debug("agent registry polled",
		zap.String("status", string(status)),
		zap.Int("agents", len(agents)),
	)

	return AgentSnapshot{Agents: agents, Status: status, Message: listing.Message}
}

func (f *AgentStatusFeed) set(token store.Token, s AgentSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seq.IsLatest(token) {
		f.snapshot = s
	}
}
