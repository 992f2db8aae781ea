package types

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const DefaultIdealAnswer = "Provide a specific example from your experience."

// DecodeQuestions accepts both {q, ideal_answer} objects and bare strings.
// Blank questions are skipped and a missing answer gets DefaultIdealAnswer.
func DecodeQuestions(items []any) ([]Question, error) {
	questions := make([]Question, 0, len(items))
	for idx, item := range items {
		var q Question
		switch v := item.(type) {
		case string:
			q.Q = v
		case map[string]any:
			if err := mapstructure.Decode(v, &q); err != nil {
				return nil, fmt.Errorf("decode question %d: %w", idx, err)
			}
		case nil:
			continue
		default:
			q.Q = fmt.Sprintf("%v", v)
		}

		q.Q = strings.TrimSpace(q.Q)
		if q.Q == "" {
			continue
		}
		if q.IdealAnswer = strings.TrimSpace(q.IdealAnswer); q.IdealAnswer == "" {
			q.IdealAnswer = DefaultIdealAnswer
		}
		questions = append(questions, q)
	}

	return questions, nil
}
