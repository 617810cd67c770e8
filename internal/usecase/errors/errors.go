package errors

import "errors"

// Common errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
)

// Assessment errors
var (
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrTranscriptTooShort = errors.New("transcript too short")
	ErrEmptyBatch         = errors.New("batch has no responses")
	ErrBatchTooLarge      = errors.New("batch has too many responses")
	ErrEvaluationFailed   = errors.New("assessment evaluation failed")
)
