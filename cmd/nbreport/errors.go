package main

import "errors"

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrNoInput            = errors.New("no input specified")
	ErrNoFiles            = errors.New("no matching files found")
	ErrReadInput          = errors.New("failed to read input file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrCreateOutputDir    = errors.New("failed to create output directory")
	ErrInvalidExtension   = errors.New("unsupported file extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrUnsupportedShell   = errors.New("unsupported shell")
)
