package main

import "errors"

// Sentinel errors for CLI operations.
var (
	ErrNoInput           = errors.New("no input files")
	ErrWriteArchive      = errors.New("failed to write archive")
	ErrServerUnreachable = errors.New("server unreachable")

	errUsage       = errors.New("invalid usage")
	errFilesFailed = errors.New("some files failed to convert")
)
