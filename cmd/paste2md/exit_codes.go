package main

import (
	"errors"
	"os"

	paste2md "github.com/alnah/go-paste2md"
	"github.com/alnah/go-paste2md/internal/config"
	"github.com/alnah/go-paste2md/internal/presets"
)

// Exit codes for paste2md CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful transformation
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitConvert = 4 // Transformation pipeline failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Transformation errors (exit 4)
	if errors.Is(err, paste2md.ErrMarkdownConversion) ||
		errors.Is(err, paste2md.ErrPreviewRender) ||
		errors.Is(err, ErrConvertFailed) {
		return ExitConvert
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, presets.ErrPresetNotFound) ||
		errors.Is(err, presets.ErrInvalidPresetName) ||
		errors.Is(err, presets.ErrPresetParse) ||
		errors.Is(err, paste2md.ErrEmptyPayload) ||
		errors.Is(err, paste2md.ErrInvalidContextLevel) ||
		errors.Is(err, paste2md.ErrInvalidHeadingLevel) ||
		errors.Is(err, paste2md.ErrTooManyReplacements) ||
		errors.Is(err, paste2md.ErrReplacementTooLong) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrInvalidReplacementFlag) ||
		errors.Is(err, ErrNoOutputDir) ||
		errors.Is(err, ErrPreviewInput) {
		return ExitUsage
	}

	return ExitGeneral
}
