package errors

import "fmt"

// Error codes
const (
	CodePipelineStage = "PIPELINE_STAGE_ERROR"
	CodeAPIError      = "API_ERROR"
	CodeValidation    = "VALIDATION_ERROR"
	CodeCache         = "CACHE_ERROR"
)

// PipelineError is the base error carried through the recommendation
// pipeline. Fatal errors abort the whole chapter request; segment-local
// errors are logged by the orchestrator and drop only their segment.
type PipelineError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// StageError marks a failure inside one of the three segmentation stages.
// It is fatal to the chapter request and never retried automatically.
type StageError struct {
	*PipelineError
	Stage string
}

func NewStageError(stage, message string, cause error) *StageError {
	return &StageError{
		PipelineError: &PipelineError{
			Message: message,
			Code:    CodePipelineStage,
			Context: map[string]any{"stage": stage},
			Cause:   cause,
		},
		Stage: stage,
	}
}

// APIError reports a non-success response from an external service.
type APIError struct {
	*PipelineError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		PipelineError: &PipelineError{
			Message:    message,
			Code:       CodeAPIError,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

func (e *APIError) WithCause(cause error) *APIError {
	e.Cause = cause
	return e
}

// ValidationError reports an external response that failed schema or range
// validation. Segment-local per the error taxonomy.
type ValidationError struct {
	*PipelineError
	Field string
	Value any
}

func NewValidationError(message, field string, value any) *ValidationError {
	return &ValidationError{
		PipelineError: &PipelineError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

// CacheError reports a failed cache operation. Never fatal; the pipeline
// recomputes on cache misses and failures alike.
type CacheError struct {
	*PipelineError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		PipelineError: &PipelineError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}
