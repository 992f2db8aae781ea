package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spigell/internai/internal/filtering"
	"github.com/spigell/internai/internal/types"
	"github.com/spigell/internai/internal/workflow"
)

const agentsBanner = "Agent registry is unavailable or not cached yet. Showing what is known."

func renderProfile(w io.Writer, profile types.Profile) {
	if profile.Name != "" {
		fmt.Fprintf(w, "Name: %s\n", profile.Name)
	}
	if profile.Email != "" {
		fmt.Fprintf(w, "Email: %s\n", profile.Email)
	}
	fmt.Fprintf(w, "Skills: %s\n", joinOrNone(profile.Skills))
	if len(profile.Highlights) > 0 {
		fmt.Fprintln(w, "Highlights:")
		for _, h := range profile.Highlights {
			fmt.Fprintf(w, "  - %s\n", h)
		}
	}
	fmt.Fprintf(w, "Missing skills: %s\n", joinOrNone(profile.MissingSkills))
}

func renderAnalysis(w io.Writer, result *workflow.AnalysisResult, profile types.Profile) {
	renderProfile(w, profile)
	if result != nil && result.Degraded {
		fmt.Fprintln(w, "(missing skills could not be derived)")
	}
}

func renderMatches(w io.Writer, matches []types.MatchResult) {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matches.")
		return
	}

	for i, m := range matches {
		fmt.Fprintf(w, "%2d. [%5.1f] %s\n", i+1, m.DisplayScore(), matchLabel(m))
		if m.Job.URL != "" {
			fmt.Fprintf(w, "    %s\n", m.Job.URL)
		}
		if len(m.MissingSkills) > 0 {
			fmt.Fprintf(w, "    missing: %s\n", strings.Join(m.MissingSkills, ", "))
		}
	}
}

func matchLabel(m types.MatchResult) string {
	label := fmt.Sprintf("%s %s / %s", m.Job.ID, m.Job.Title, m.Job.Company)
	if m.Job.Location != "" {
		label += " / " + m.Job.Location
	}
	return label
}

func renderCoverLetter(w io.Writer, view workflow.ArtifactView[*workflow.CoverLetter]) {
	switch {
	case view.Pending:
		fmt.Fprintln(w, "Cover letter is being written...")
	case view.Error != "":
		fmt.Fprintln(w, view.Error)
	case view.Ready && view.Value != nil:
		fmt.Fprintf(w, "Cover letter for %s:\n\n%s\n", view.Value.JobID, view.Value.Text)
	default:
		fmt.Fprintln(w, "No cover letter yet.")
	}
}

func renderCoaching(w io.Writer, view workflow.ArtifactView[*types.CoachResponse]) {
	switch {
	case view.Pending:
		fmt.Fprintln(w, "Coaching is being prepared...")
	case view.Error != "":
		fmt.Fprintln(w, view.Error)
	case view.Ready && view.Value != nil:
		fmt.Fprintln(w, "Interview questions:")
		for i, q := range view.Value.Questions {
			fmt.Fprintf(w, "%d. %s\n", i+1, q.Q)
			if q.IdealAnswer != "" {
				fmt.Fprintf(w, "   ideal answer: %s\n", q.IdealAnswer)
			}
		}
		if len(view.Value.Tips) > 0 {
			fmt.Fprintln(w, "Tips:")
			for _, tip := range view.Value.Tips {
				fmt.Fprintf(w, "  - %s\n", tip)
			}
		}
	default:
		fmt.Fprintln(w, "No coaching yet.")
	}
}

func renderAgents(w io.Writer, snapshot workflow.AgentSnapshot) {
	if snapshot.ShowBanner() {
		fmt.Fprintln(w, agentsBanner)
		if snapshot.Message != "" {
			fmt.Fprintf(w, "  %s\n", snapshot.Message)
		}
	}

	fmt.Fprintf(w, "Agents (%s): %d\n", snapshot.Status, len(snapshot.Agents))
	for _, a := range snapshot.Agents {
		fmt.Fprintf(w, "  - %s (%s) %s\n", a.Name, a.Key, a.ID)
	}
}

func renderFilters(w io.Writer, statuses []filtering.Status) {
	for _, s := range statuses {
		state := "enabled"
		if !s.Enabled {
			state = "disabled"
			if s.Reason != "" {
				state += ": " + s.Reason
			}
		}
		fmt.Fprintf(w, "%s (%s)\n", s.Name, state)

		keys := make([]string, 0, len(s.Details))
		for k := range s.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s: %s\n", k, s.Details[k])
		}
	}
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
