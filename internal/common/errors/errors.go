// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeParseError ErrorCode = "PARSE_ERROR"

	ErrCodeCatalogQueryFailed ErrorCode = "CATALOG_QUERY_FAILED"
	ErrCodeProfileNotFound    ErrorCode = "PROFILE_NOT_FOUND"
	ErrCodeProfileQueryFailed ErrorCode = "PROFILE_QUERY_FAILED"

	ErrCodeEmbeddingFailed  ErrorCode = "EMBEDDING_FAILED"
	ErrCodeEmbeddingTimeout ErrorCode = "EMBEDDING_TIMEOUT"
	ErrCodeMatchFailed      ErrorCode = "MATCH_FAILED"

	ErrCodeCardNotFound           ErrorCode = "CARD_NOT_FOUND"
	ErrCodePreapprovalFailed      ErrorCode = "PREAPPROVAL_FAILED"
	ErrCodeSpendingAnalysisFailed ErrorCode = "SPENDING_ANALYSIS_FAILED"

	ErrCodeRoadmapGenerationFailed ErrorCode = "ROADMAP_GENERATION_FAILED"
	ErrCodeRoadmapTimeout          ErrorCode = "ROADMAP_TIMEOUT"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// FromStandardError converts a StandardError into a BPMN-throwable error.
func FromStandardError(err *StandardError, retries int) *BPMNError {
	return &BPMNError{
		Code:      string(err.Code),
		Message:   err.Message,
		Details:   err.Details,
		Retryable: err.Retryable,
		Retries:   retries,
	}
}

// ==========================
// 3. Error Constructors
// ==========================

// NewEmbeddingFailedError creates a retryable embedding service error.
// Any embedding failure aborts the whole match request; there is no
// partial-result path.
func NewEmbeddingFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmbeddingFailed,
		Message:   "Embedding service request failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmbeddingTimeoutError creates a retryable embedding timeout error.
func NewEmbeddingTimeoutError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmbeddingTimeout,
		Message:   "Embedding service timed out",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogQueryFailedError creates a retryable catalog access error.
func NewCatalogQueryFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogQueryFailed,
		Message:   "Card catalog query failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileNotFoundError creates a non-retryable missing-profile error.
func NewProfileNotFoundError(userID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileNotFound,
		Message:   "User profile not found",
		Details:   fmt.Sprintf("userId=%s", userID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMatchFailedError wraps a failure of the end-to-end match pipeline.
func NewMatchFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMatchFailed,
		Message:   "Card matching pipeline failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCardNotFoundError creates a non-retryable unknown-card error.
func NewCardNotFoundError(cardID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCardNotFound,
		Message:   "Credit card not found in catalog",
		Details:   fmt.Sprintf("cardId=%s", cardID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPreapprovalFailedError wraps a failure of the approval estimator.
func NewPreapprovalFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodePreapprovalFailed,
		Message:   "Pre-approval calculation failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSpendingAnalysisFailedError wraps a failure of the spending aggregator.
func NewSpendingAnalysisFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSpendingAnalysisFailed,
		Message:   "Spending analysis failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRoadmapGenerationFailedError creates a retryable roadmap error.
func NewRoadmapGenerationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRoadmapGenerationFailed,
		Message:   "Roadmap generation failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewParseError creates a non-retryable payload parse error.
func NewParseError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseError,
		Message:   "Failed to parse job input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
