// Package types holds the data shared by the workflow, the service clients and the CLI.
package types

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

const (
	MinScore = 0
	MaxScore = 100
)

// Profile is the user's derived skill data used as matching input.
type Profile struct {
	Name          string   `json:"name,omitempty"`
	Email         string   `json:"email,omitempty"`
	Skills        []string `json:"skills"`
	Highlights    []string `json:"highlights,omitempty"`
	MissingSkills []string `json:"missing_skills,omitempty"`
	ProfileText   string   `json:"profile_text,omitempty"`
}

// HasSkills reports whether the profile is ready for matching.
func (p Profile) HasSkills() bool {
	return len(p.Skills) > 0
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	p.Skills = CloneStrings(p.Skills)
	p.Highlights = CloneStrings(p.Highlights)
	p.MissingSkills = CloneStrings(p.MissingSkills)
	return p
}

type Source string

const (
	SourceLinkedIn Source = "linkedin"
	SourceIndeed   Source = "indeed"
	SourceDraft    Source = "draft"
)

// JobItem is a single posting. It is immutable once received and identified by ID.
type JobItem struct {
	ID          string `json:"id" validate:"required"`
	Source      Source `json:"source" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location,omitempty"`
	URL         string `json:"url" validate:"required,url"`
	Description string `json:"desc,omitempty"`
}

type MatchResult struct {
	Job           JobItem  `json:"job"`
	Score         float64  `json:"score"`
	MissingSkills []string `json:"missing_skills"`
}

// DisplayScore returns the score clamped to the displayable range.
func (m MatchResult) DisplayScore() float64 {
	return ClampScore(m.Score)
}

// ClampScore maps any raw score into [MinScore, MaxScore]. NaN maps to MinScore.
func ClampScore(score float64) float64 {
	switch {
	case math.IsNaN(score):
		return MinScore
	case score < MinScore:
		return MinScore
	case score > MaxScore:
		return MaxScore
	default:
		return score
	}
}

// Analysis is the result of extracting skills from resume text.
type Analysis struct {
	Skills      []string `json:"skills"`
	Highlights  []string `json:"highlights"`
	ProfileText string   `json:"profile_text"`
}

type Question struct {
	Q           string `json:"q" mapstructure:"q"`
	IdealAnswer string `json:"ideal_answer" mapstructure:"ideal_answer"`
}

type CoachResponse struct {
	Questions []Question `json:"questions"`
	Tips      []string   `json:"tips"`
}

type CoachRequest struct {
	Role    string   `json:"role"`
	Company string   `json:"company,omitempty"`
	Profile *Profile `json:"profile,omitempty"`
}

type Agent struct {
	Key  string `json:"key" mapstructure:"key"`
	Name string `json:"name" mapstructure:"name"`
	ID   string `json:"id" mapstructure:"id"`
}

type AgentStatus string

const (
	AgentStatusCached  AgentStatus = "cached"
	AgentStatusNoCache AgentStatus = "no_cache"
	AgentStatusError   AgentStatus = "error"
	AgentStatusLoading AgentStatus = "loading"
)

// ParseAgentStatus maps a registry status string to a known status.
// Anything unrecognised is reported as an error status.
func ParseAgentStatus(s string) AgentStatus {
	switch status := AgentStatus(strings.ToLower(strings.TrimSpace(s))); status {
	case AgentStatusCached, AgentStatusNoCache, AgentStatusError, AgentStatusLoading:
		return status
	default:
		return AgentStatusError
	}
}

// AgentListing is the raw payload of the agent registry.
type AgentListing struct {
	Agents  []Agent `json:"agents"`
	Status  string  `json:"status"`
	Count   int     `json:"count"`
	Error   string  `json:"error,omitempty"`
	Message string  `json:"message,omitempty"`
}

// CorrelationID identifies a single generation request. It is random per call
// and must never be used as a job identity.
type CorrelationID string

func NewCorrelationID() CorrelationID {
	return CorrelationID(uuid.NewString())
}

func (c CorrelationID) String() string {
	return string(c)
}

// JobDraft holds loose job fields typed in by the user.
type JobDraft struct {
	Title       string
	Company     string
	Location    string
	Description string
}

const draftIDPrefix = "draft-"

// Materialize turns the draft into a JobItem for a single request. The returned
// job ID is derived from a fresh CorrelationID and is not stable across calls.
func (d JobDraft) Materialize() (JobItem, CorrelationID) {
	id := NewCorrelationID()
	return JobItem{
		ID:          draftIDPrefix + id.String(),
		Source:      SourceDraft,
		Title:       strings.TrimSpace(d.Title),
		Company:     strings.TrimSpace(d.Company),
		Location:    strings.TrimSpace(d.Location),
		Description: strings.TrimSpace(d.Description),
	}, id
}

// CloneStrings copies a slice, keeping nil as nil.
func CloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
