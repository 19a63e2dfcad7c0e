package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	paste2md "github.com/alnah/go-paste2md"
)

// ErrPreviewInput is returned when preview gets a directory input.
var ErrPreviewInput = errors.New("preview accepts a single file or stdin")

// Previewer renders Markdown to a standalone HTML document.
type Previewer interface {
	Preview(ctx context.Context, markdown string) (string, error)
}

// Compile-time interface implementation check.
var _ Previewer = (*paste2md.Service)(nil)

// runPreview transforms one paste and renders the resulting Markdown as
// a standalone HTML document for eyeballing. Shares the convert flag
// surface; output goes to --output or stdout.
func runPreview(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfiguration(flags.common.config, envCfg)
	if err != nil {
		return err
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	format, err := resolveConfiguredFormat(cfg)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	if inputPath != stdinMarker {
		info, err := os.Stat(inputPath)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%w: %s is a directory", ErrPreviewInput, inputPath)
		}
	}

	svcCfg, err := buildServiceConfig(cfg, flags)
	if err != nil {
		return err
	}

	svc, err := buildService(svcCfg, flags.common.verbose, env)
	if err != nil {
		return err
	}

	contextLevel, passThrough, err := resolveDocContext(flags.doc)
	if err != nil {
		return err
	}
	if flags.heading.contextLevel > 0 {
		contextLevel = flags.heading.contextLevel
	}

	content, err := readInput(inputPath, env)
	if err != nil {
		return err
	}

	// The fence gate still applies: a paste landing inside an open fence
	// stays literal, so the preview renders the raw content.
	markdown := string(content)
	if !passThrough {
		params := &convertParams{
			format:       format,
			contextLevel: contextLevel,
			escape:       flags.escape,
		}
		res, err := svc.Transform(ctx, buildInput(markdown, inputPath, params))
		if err != nil {
			return err
		}
		markdown = res.Markdown
	}

	html, err := svc.Preview(ctx, markdown)
	if err != nil {
		return err
	}

	return writePreview(flags.output, html, env)
}

// writePreview writes the rendered HTML to a file or stdout.
func writePreview(path, html string, env *Environment) error {
	if !strings.HasSuffix(html, "\n") {
		html += "\n"
	}

	if path == "" {
		if _, err := io.WriteString(env.Stdout, html); err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrWriteOutput, err)
		}
		return nil
	}

	// #nosec G306 -- HTML files are meant to be readable
	if err := os.WriteFile(path, []byte(html), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
