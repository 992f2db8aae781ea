package gemini

import (
	"fmt"
	"strings"

	"github.com/spigell/internai/internal/types"
)

func fallbackCoverLetter(job types.JobItem, profile types.Profile) string {
	background := "technology"
	experience := "various technologies"
	if len(profile.Skills) > 0 {
		background = strings.Join(head(profile.Skills, 3), ", ")
		experience = strings.Join(head(profile.Skills, 2), ", ")
	}

	return fmt.Sprintf(`Dear Hiring Manager,

I am writing to express my strong interest in the %[1]s position at %[2]s. With my background in %[3]s, I am excited about the opportunity to contribute to your team.

I am particularly drawn to %[2]s because of your innovative approach and commitment to excellence. My experience with %[4]s aligns well with the requirements for this role.

I am eager to discuss how my skills and enthusiasm can contribute to your organization's continued success.

Best regards,
%[5]s`, job.Title, job.Company, background, experience, orDefault(profile.Name, "Candidate"))
}

func fallbackCoaching(role, company string) *types.CoachResponse {
	company = orDefault(company, "the company")

	return &types.CoachResponse{
		Questions: []types.Question{
			{
				Q:           fmt.Sprintf("Tell me about your experience with %s and what interests you most about this field.", role),
				IdealAnswer: "Focus on specific projects, technologies, or experiences that demonstrate your passion and relevant skills.",
			},
			{
				Q:           fmt.Sprintf("What do you know about %s and why do you want to work here?", company),
				IdealAnswer: "Research their products, mission, recent news, and culture. Show genuine interest and alignment with their values.",
			},
			{
				Q:           "Describe a challenging project you've worked on and how you overcame obstacles.",
				IdealAnswer: "Use the STAR method: describe the Situation, Task, Action you took, and Result achieved.",
			},
			{
				Q:           fmt.Sprintf("Where do you see yourself in 5 years, and how does this %s role fit into your career goals?", role),
				IdealAnswer: "Show long-term thinking while explaining how this role is a stepping stone toward your goals.",
			},
			{
				Q:           "Do you have any questions about the role or company culture?",
				IdealAnswer: "Ask thoughtful questions about team dynamics, growth opportunities, or projects you would work on.",
			},
		},
		Tips: []string{
			fmt.Sprintf("Research %s thoroughly: understand their products, mission, and recent news.", company),
			"Prepare specific examples of your work using the STAR method.",
			"Practice explaining technical concepts in simple terms for non-technical interviewers.",
		},
	}
}
