package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "catalog order and symbols",
			text: "Experienced in Docker and Kubernetes. Some Go, C++ and Node.js",
			want: []string{"C++", "Go", "Node.js", "Docker", "Kubernetes"},
		},
		{
			name: "prefix of a longer word",
			text: "JavaScript and a good attitude",
			want: []string{"JavaScript"},
		},
		{
			name: "diacritics",
			text: "Développeur Python à Paris",
			want: []string{"Python"},
		},
		{
			name: "em dash between skills",
			text: "Built with Python—SQL",
			want: []string{"Python", "SQL"},
		},
		{
			name: "curly quotes",
			text: "Skills: “Python” and SQL",
			want: []string{"Python", "SQL"},
		},
		{
			name: "non-breaking spaces",
			text: "Python\u00a0and\u00a0SQL",
			want: []string{"Python", "SQL"},
		},
		{
			name: "empty",
			text: "   ",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Scan(tt.text))
		})
	}
}

func TestFindMissing(t *testing.T) {
	t.Parallel()

	desc := "We need Go, Docker, Kubernetes, AWS and Terraform plus Python and SQL experience"
	profile := []string{"Go", "docker"}

	assert.Equal(t, []string{"Python", "SQL", "AWS", "Kubernetes", "Terraform"}, FindMissing(profile, desc, DefaultMissingLimit))
	assert.Equal(t, []string{"Python", "SQL"}, FindMissing(profile, desc, 2))
	assert.Empty(t, FindMissing(nil, desc, DefaultMissingLimit))
	assert.Empty(t, FindMissing(profile, "", DefaultMissingLimit))
}

func TestFindMissingPartialProfileSkill(t *testing.T) {
	t.Parallel()

	got := FindMissing([]string{"Amazon Web Services (AWS)"}, "AWS and Kafka", DefaultMissingLimit)
	assert.Equal(t, []string{"Kafka"}, got)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	got := Merge([]string{"Go", "python"}, []string{"Python", " Go ", "SQL", " "})
	assert.Equal(t, []string{"Go", "python", "SQL"}, got)
}
