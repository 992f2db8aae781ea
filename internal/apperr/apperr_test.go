package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	assert.Nil(t, Classify(nil))

	service := &ServiceError{StatusCode: 502, Message: "upstream down"}
	assert.Same(t, service, Classify(service))

	wrapped := fmt.Errorf("analyze profile: %w", service)
	assert.Equal(t, wrapped, Classify(wrapped))
	assert.True(t, IsService(Classify(wrapped)))

	plain := errors.New("boom")
	classified := Classify(plain)
	assert.True(t, IsUnknown(classified))
	assert.ErrorIs(t, classified, plain)

	assert.True(t, IsValidation(Classify(NewValidation("text", "required"))))
	assert.True(t, IsPrecondition(Classify(NewPrecondition("later"))))
}

func TestUserMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		operation string
		err       error
		expect    string
	}{
		{
			name:      "nil",
			operation: OpAnalysis,
			expect:    "",
		},
		{
			name:      "service error verbatim",
			operation: OpAnalysis,
			err:       &ServiceError{StatusCode: 500, Message: "model overloaded"},
			expect:    "Analysis failed: model overloaded",
		},
		{
			name:      "service error without message",
			operation: OpMatching,
			err:       fmt.Errorf("match: %w", &ServiceError{StatusCode: 503}),
			expect:    "Matching failed: Service Unavailable",
		},
		{
			name:      "validation",
			operation: OpCoaching,
			err:       NewValidation("role", "role is required"),
			expect:    "Coaching failed: role is required",
		},
		{
			name:      "precondition is shown as is",
			operation: OpMatching,
			err:       NewPrecondition("Please analyze your profile first"),
			expect:    "Please analyze your profile first",
		},
		{
			name:      "unknown falls back to generic message",
			operation: OpCoverLetter,
			err:       &UnknownError{Err: errors.New("connection reset")},
			expect:    "Cover letter failed: an unexpected error occurred",
		},
		{
			name:      "canceled",
			operation: OpAnalysis,
			err:       context.Canceled,
			expect:    "Analysis failed: context canceled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, UserMessage(tt.operation, tt.err))
		})
	}
}

func TestServiceErrorString(t *testing.T) {
	assert.Equal(t, "bad payload (status 422)", (&ServiceError{StatusCode: 422, Message: "bad payload"}).Error())
	assert.Equal(t, "Not Found (status 404)", (&ServiceError{StatusCode: 404}).Error())
}
