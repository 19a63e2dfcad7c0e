package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-paste2md/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("unsupported input extension")
	ErrNoOutputDir        = errors.New("directory input requires an output directory")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// stdinMarker selects stdin as the input source.
const stdinMarker = "-"

// stdinOutputName is the file name used when stdin output targets a
// directory.
const stdinOutputName = "paste.md"

// maxWorkers caps the --workers flag. Each worker only holds one paste
// in memory, but an absurd count is almost always a typo.
const maxWorkers = 64

// convertExtensions lists the input extensions picked up by directory
// walks and accepted for explicit file arguments.
var convertExtensions = map[string]bool{
	".html":     true,
	".htm":      true,
	".txt":      true,
	".md":       true,
	".markdown": true,
}

// FileToConvert represents a single input to process. An empty
// OutputPath means stdout; an InputPath of "-" means stdin.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all inputs to transform. The output argument is a
// file path, a directory, or empty for stdout.
func discoverFiles(inputPath, output string) ([]FileToConvert, error) {
	if inputPath == stdinMarker {
		return []FileToConvert{{InputPath: stdinMarker, OutputPath: resolveOutputPath(stdinOutputName, output, "")}}, nil
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateInputExtension(inputPath); err != nil {
			return nil, err
		}
		return []FileToConvert{{InputPath: inputPath, OutputPath: resolveOutputPath(inputPath, output, "")}}, nil
	}

	// Batch over a directory needs a real output target: writing next to
	// the input would overwrite .md sources, and stdout cannot hold a
	// tree of files.
	if output == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoOutputDir, inputPath)
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if !convertExtensions[filepath.Ext(path)] {
			return nil
		}
		files = append(files, FileToConvert{InputPath: path, OutputPath: resolveOutputPath(path, output, inputPath)})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the Markdown output path for one input.
// Empty output means stdout. An output naming a Markdown file is used
// as-is; anything else is treated as a directory, mirroring the input
// tree under it for batch runs.
func resolveOutputPath(inputPath, output, baseInputDir string) string {
	if output == "" {
		return ""
	}

	if looksLikeMarkdownPath(output) && !fileutil.DirExists(output) {
		return output
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(output, relDir, base+".md")
		}
	}

	return filepath.Join(output, base+".md")
}

// looksLikeMarkdownPath reports whether a path names a Markdown file.
func looksLikeMarkdownPath(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".md" || ext == ".markdown"
}

// validateInputExtension checks that an explicit file argument has a
// supported extension.
func validateInputExtension(path string) error {
	if !convertExtensions[filepath.Ext(path)] {
		return fmt.Errorf("%w: got %q (supported: .html, .htm, .txt, .md, .markdown)", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}
