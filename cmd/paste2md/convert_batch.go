package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	paste2md "github.com/alnah/go-paste2md"
	"github.com/alnah/go-paste2md/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput       = errors.New("no input specified")
	ErrReadInput     = errors.New("failed to read input")
	ErrWriteOutput   = errors.New("failed to write output")
	ErrConvertFailed = errors.New("conversion failed")
)

// Transformer is the interface for the transformation service.
type Transformer interface {
	Transform(ctx context.Context, input paste2md.Input) (*paste2md.Result, error)
}

// Compile-time interface implementation check.
var _ Transformer = (*paste2md.Service)(nil)

// ConversionResult holds the outcome of a single transformation.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Changed    bool
	Err        error
	Duration   time.Duration
}

// resolveWorkers determines the worker count for a batch.
// Priority: explicit flag > PASTE2MD_WORKERS > GOMAXPROCS-based default.
func resolveWorkers(flagWorkers, envWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if envWorkers > 0 {
		return envWorkers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for
	// containers). Transformation is CPU-bound parsing, so half the
	// available procs leaves room for the walker and output writes.
	n := runtime.GOMAXPROCS(0) / 2
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}

// convertBatch processes files concurrently over one shared service.
// Service is stateless and safe for concurrent use, so the workers
// share a single instance instead of a pool.
func convertBatch(ctx context.Context, svc Transformer, files []FileToConvert, params *convertParams, workers int, env *Environment) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	if workers > len(files) {
		workers = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, svc, files[idx], params, env)
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

// convertFile processes a single input and returns the result.
func convertFile(ctx context.Context, svc Transformer, f FileToConvert, params *convertParams, env *Environment) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := readInput(f.InputPath, env)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	// Fence gate: the cursor sits inside an open code fence in the
	// destination document, so the paste must land as literal text.
	if params.passThrough {
		result.Err = writeOutput(f.OutputPath, string(content), env)
		result.Duration = time.Since(start)
		return result
	}

	res, err := svc.Transform(ctx, buildInput(string(content), f.InputPath, params))
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	result.Changed = res.Changed
	result.Err = writeOutput(f.OutputPath, res.Markdown, env)
	result.Duration = time.Since(start)
	return result
}

// buildInput routes the content down the rich or plain path.
func buildInput(content, path string, params *convertParams) paste2md.Input {
	input := paste2md.Input{
		ContextLevel: params.contextLevel,
		Escape:       params.escape,
	}
	if resolveFormat(params.format, path, content) == "html" {
		input.HTML = content
	} else {
		input.Text = content
	}
	return input
}

// resolveFormat picks the conversion path: explicit format first, then
// the file extension, then a tag sniff for ambiguous content.
func resolveFormat(format, path, content string) string {
	switch format {
	case "html", "text":
		return format
	}

	switch filepath.Ext(path) {
	case ".html", ".htm":
		return "html"
	case ".md", ".markdown", ".txt":
		return "text"
	}

	if paste2md.LooksLikeHTML(content) {
		return "html"
	}
	return "text"
}

// readInput reads one input, from stdin when the path is "-".
func readInput(path string, env *Environment) ([]byte, error) {
	if path == stdinMarker {
		content, err := io.ReadAll(env.Stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
		}
		return content, nil
	}

	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return content, nil
}

// writeOutput writes the Markdown to its target, stdout when the path
// is empty. A missing trailing newline is added so shell pipelines and
// editors see a complete last line.
func writeOutput(path, markdown string, env *Environment) error {
	if !strings.HasSuffix(markdown, "\n") {
		markdown += "\n"
	}

	if path == "" {
		if _, err := io.WriteString(env.Stdout, markdown); err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrWriteOutput, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory())
	}

	// #nosec G306 -- Markdown files are meant to be readable
	if err := os.WriteFile(path, []byte(markdown), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// printResultsWithWriter outputs conversion results using the provided
// writers and returns the failure count. Stdout-mode results carry the
// Markdown itself on stdout, so their status lines go to stderr and
// only in verbose mode.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if r.OutputPath == "" {
			if verbose {
				fmt.Fprintf(env.Stderr, "%s -> stdout (%v)\n", r.InputPath, r.Duration.Round(time.Millisecond))
			}
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}
