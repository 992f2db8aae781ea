package gemini

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/spigell/internai/internal/types"
)

const (
	maxResumeRunes    = 2000
	maxCoachQuestions = 5
	maxCoachTips      = 3
)

var (
	//go:embed prompts/analyze.md
	analyzeSystemPrompt string

	//go:embed prompts/cover_letter.md
	coverLetterSystemPrompt string

	//go:embed prompts/coach.md
	coachSystemTemplate string
)

func analyzeMessage(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) > maxResumeRunes {
		runes = runes[:maxResumeRunes]
	}
	return "Analyze this resume text and extract skills and highlights:\n\n" + string(runes)
}

func coverLetterMessage(job types.JobItem, profile types.Profile) string {
	var b strings.Builder

	b.WriteString("JOB:\n")
	fmt.Fprintf(&b, "Position: %s\n", job.Title)
	fmt.Fprintf(&b, "Company: %s\n", job.Company)
	fmt.Fprintf(&b, "Location: %s\n", orDefault(job.Location, "Not specified"))
	fmt.Fprintf(&b, "Description: %s\n\n", job.Description)

	b.WriteString("PROFILE:\n")
	fmt.Fprintf(&b, "Name: %s\n", orDefault(profile.Name, "Candidate"))
	fmt.Fprintf(&b, "Skills: %s\n", joinOrDefault(profile.Skills, "Various technical skills"))
	fmt.Fprintf(&b, "Email: %s\n\n", orDefault(profile.Email, "Available upon request"))

	b.WriteString("Write a compelling 1-page cover letter that connects the candidate's background to this specific opportunity.")

	return b.String()
}

func coachSystemPrompt() string {
	prompt := strings.ReplaceAll(coachSystemTemplate, "{{QUESTIONS}}", strconv.Itoa(maxCoachQuestions))
	return strings.ReplaceAll(prompt, "{{TIPS}}", strconv.Itoa(maxCoachTips))
}

func coachMessage(req types.CoachRequest) string {
	var skills []string
	if req.Profile != nil {
		skills = req.Profile.Skills
	}

	return fmt.Sprintf("ROLE: %s\nCOMPANY: %s\nSKILLS: %s\n\nGenerate interview coaching for this specific role and company combination.",
		req.Role,
		orDefault(req.Company, "Not specified"),
		joinOrDefault(skills, "various technical skills"),
	)
}

func profileEmbeddingText(profile types.Profile) string {
	var parts []string
	if len(profile.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(profile.Skills, ", "))
	}
	if profile.Name != "" {
		parts = append(parts, "Name: "+profile.Name)
	}
	if profile.Email != "" {
		parts = append(parts, "Email: "+profile.Email)
	}
	return strings.Join(parts, " | ")
}

func jobEmbeddingText(job types.JobItem) string {
	parts := []string{"Title: " + job.Title, "Company: " + job.Company}
	if job.Location != "" {
		parts = append(parts, "Location: "+job.Location)
	}
	if job.Description != "" {
		parts = append(parts, "Description: "+job.Description)
	}
	return strings.Join(parts, " | ")
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s == "" {
		return fallback
	}
	return s
}

func joinOrDefault(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}
