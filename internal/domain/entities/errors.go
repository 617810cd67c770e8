package entities

import "errors"

// Domain errors
var (
	// Assessment errors
	ErrAssessmentNotFound  = errors.New("assessment not found")
	ErrAssessmentImmutable = errors.New("assessment already completed")
)
