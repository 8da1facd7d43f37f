package entity

import "errors"

var (
	// ErrProviderUnavailable means no AI provider credential is configured.
	// The service boots without one; uploads fail with this error instead.
	ErrProviderUnavailable = errors.New("ai provider api key not configured")

	ErrMeetingNotFound = errors.New("meeting not found")
)

// ValidationError reports a user-correctable upload problem.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// TranscriptionError wraps a provider failure during transcription.
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string {
	return "transcription failed: " + e.Err.Error()
}

func (e *TranscriptionError) Unwrap() error {
	return e.Err
}

// SummarizationError wraps a provider failure during summarization. Callers
// treat it as non-fatal: a transcript without a summary is still stored.
type SummarizationError struct {
	Err error
}

func (e *SummarizationError) Error() string {
	return "summarization failed: " + e.Err.Error()
}

func (e *SummarizationError) Unwrap() error {
	return e.Err
}

// StorageError wraps a local persistence failure.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return "storage failed: " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
