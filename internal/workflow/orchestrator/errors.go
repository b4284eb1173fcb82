package orchestrator

import "errors"

var (
	ErrNoTransition      = errors.New("no transition defined for status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrMissingPackageID  = errors.New("preparation step returned no package id")
	ErrPanic             = errors.New("workflow panicked")
)
