package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromStandardError(t *testing.T) {
	std := NewProfileNotFoundError("user-42")

	bpmn := FromStandardError(std, 3)

	assert.Equal(t, "PROFILE_NOT_FOUND", bpmn.Code)
	assert.Equal(t, "User profile not found", bpmn.Message)
	assert.Equal(t, "userId=user-42", bpmn.Details)
	assert.False(t, bpmn.Retryable)
	assert.Equal(t, 3, bpmn.Retries)
}

func TestToErrorVariables(t *testing.T) {
	bpmn := &BPMNError{
		Code:      string(ErrCodeMatchFailed),
		Message:   "Card matching pipeline failed",
		Details:   "embedding service unavailable",
		Retryable: true,
		ErrorVariables: map[string]interface{}{
			"userId": "user-42",
		},
	}

	vars := bpmn.ToErrorVariables()

	assert.Equal(t, "MATCH_FAILED", vars["errorCode"])
	assert.Equal(t, "Card matching pipeline failed", vars["errorMessage"])
	assert.Equal(t, "embedding service unavailable", vars["errorDetails"])
	assert.Equal(t, true, vars["retryable"])
	assert.Equal(t, "user-42", vars["userId"])
}

func TestRetryableClassification(t *testing.T) {
	assert.True(t, NewEmbeddingFailedError("timeout").Retryable)
	assert.True(t, NewMatchFailedError("boom").Retryable)
	assert.True(t, NewRoadmapGenerationFailedError("boom").Retryable)
	assert.True(t, NewPreapprovalFailedError("boom").Retryable)
	assert.True(t, NewSpendingAnalysisFailedError("boom").Retryable)
	assert.False(t, NewParseError("bad json").Retryable)
	assert.False(t, NewProfileNotFoundError("u1").Retryable)
	assert.False(t, NewCardNotFoundError("c1").Retryable)
}
