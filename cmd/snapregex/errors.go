package main

import "errors"

// Sentinel errors for command operations
var (
	ErrNoMatch          = errors.New("no match")
	ErrCasesFailed      = errors.New("some regex cases failed")
	ErrUnknownFormat    = errors.New("unknown output format")
	ErrNoSubjects       = errors.New("at least one subject is required")
	ErrNoCaseFilesFound = errors.New("no case documents found")
)
