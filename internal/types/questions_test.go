package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeQuestions(t *testing.T) {
	t.Parallel()

	questions, err := DecodeQuestions([]any{
		map[string]any{"q": "Why us?", "ideal_answer": "Research the company."},
		"  Tell me about a project. ",
		map[string]any{"q": "Biggest challenge?"},
		map[string]any{"q": "   "},
		nil,
		42,
	})
	require.NoError(t, err)

	assert.Equal(t, []Question{
		{Q: "Why us?", IdealAnswer: "Research the company."},
		{Q: "Tell me about a project.", IdealAnswer: DefaultIdealAnswer},
		{Q: "Biggest challenge?", IdealAnswer: DefaultIdealAnswer},
		{Q: "42", IdealAnswer: DefaultIdealAnswer},
	}, questions)
}

func TestDecodeQuestionsRejectsMistypedFields(t *testing.T) {
	t.Parallel()

	_, err := DecodeQuestions([]any{map[string]any{"q": []any{"nested"}}})
	assert.Error(t, err)
}
