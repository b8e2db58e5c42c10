package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// convertFunc converts one discovered file and returns the paths written.
type convertFunc func(ctx context.Context, f FileToConvert) ([]string, error)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath string
	Written   []string
	Err       error
	Duration  time.Duration
}

// BatchError reports failed conversions. It unwraps to the first failure so
// the exit code reflects its cause.
type BatchError struct {
	Failed int
	Total  int
	First  error
}

func (e *BatchError) Error() string {
	if e.Total == 1 {
		return e.First.Error()
	}
	return fmt.Sprintf("%d of %d conversion(s) failed", e.Failed, e.Total)
}

func (e *BatchError) Unwrap() error { return e.First }

// convertBatch runs convert over files with at most workers goroutines.
// Files not started before ctx is canceled report ctx.Err().
func convertBatch(ctx context.Context, workers int, files []FileToConvert, convert convertFunc) []ConversionResult {
	if len(files) == 0 {
		return nil
	}
	workers = max(1, min(workers, len(files)))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				start := time.Now()
				written, err := convert(ctx, files[idx])
				results[idx] = ConversionResult{
					InputPath: files[idx].InputPath,
					Written:   written,
					Err:       err,
					Duration:  time.Since(start),
				}
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// writeOutput creates the parent directory and writes data to path.
func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateOutputDir, err)
	}
	// #nosec G306 -- generated reports are meant to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// readInput reads a discovered input file.
func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- discovered path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return data, nil
}

// batchError returns a *BatchError when any result failed, else nil.
func batchError(results []ConversionResult) error {
	var be *BatchError
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		if be == nil {
			be = &BatchError{Total: len(results), First: fmt.Errorf("%s: %w", r.InputPath, r.Err)}
		}
		be.Failed++
	}
	if be == nil {
		return nil
	}
	return be
}

// printResults reports each conversion. Failures always go to stderr;
// successes are silent with quiet and tabulated with verbose.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) {
	failed := color.New(color.FgRed, color.Bold).SprintFunc()
	created := color.New(color.FgGreen).SprintFunc()

	succeeded := 0
	for _, r := range results {
		if r.Err != nil {
			if len(results) > 1 {
				fmt.Fprintf(env.Stderr, "%s %s: %v\n", failed("FAILED"), r.InputPath, r.Err)
			}
			continue
		}
		succeeded++
		if quiet || verbose {
			continue
		}
		for _, path := range r.Written {
			fmt.Fprintf(env.Stdout, "%s %s\n", created("Created"), path)
		}
	}

	if quiet {
		return
	}
	if verbose {
		renderResultsTable(env.Stdout, results)
	}
	if len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, len(results)-succeeded)
	}
}

// renderResultsTable prints one row per input with its status and duration.
func renderResultsTable(w io.Writer, results []ConversionResult) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Input", "Output", "Status", "Duration"})

	for _, r := range results {
		status := "ok"
		if r.Err != nil {
			status = "failed"
		}
		tw.AppendRow(table.Row{r.InputPath, strings.Join(r.Written, "\n"), status, r.Duration.Round(time.Millisecond)})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	tw.Render()
}
