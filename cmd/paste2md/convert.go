package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	paste2md "github.com/alnah/go-paste2md"
	"github.com/alnah/go-paste2md/internal/config"
	"github.com/alnah/go-paste2md/internal/hints"
	"github.com/alnah/go-paste2md/internal/presets"
)

// Sentinel errors for CLI operations.
var (
	ErrInvalidFormat          = errors.New("invalid input format")
	ErrInvalidReplacementFlag = errors.New("invalid replacement flag")
)

// replacementSeparator splits --html-replace/--md-replace values into
// pattern and replacement.
const replacementSeparator = "=>"

// convertParams groups parameters shared across batch/file conversion.
type convertParams struct {
	format       string // "auto", "html", "text"
	contextLevel int
	escape       bool
	passThrough  bool // cursor inside an open fence, emit input unchanged
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	// Load configuration: flag > PASTE2MD_CONFIG > built-in defaults
	cfg, err := loadConfiguration(flags.common.config, envCfg)
	if err != nil {
		return err
	}

	// Env fills config gaps, then CLI flags win over both
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	format, err := resolveConfiguredFormat(cfg)
	if err != nil {
		return err
	}

	// Resolve input path
	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	// Resolve output target
	output := resolveOutputTarget(flags.output, cfg)

	// Discover inputs to transform
	files, err := discoverFiles(inputPath, output)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	if len(files) == 0 {
		return fmt.Errorf("no convertible files found in %s", inputPath)
	}

	// Build the transformation config: presets, then config pairs, then
	// flag pairs
	svcCfg, err := buildServiceConfig(cfg, flags)
	if err != nil {
		return err
	}

	svc, err := buildService(svcCfg, flags.common.verbose, env)
	if err != nil {
		return err
	}

	// Resolve the destination context from --doc/--cursor-line
	contextLevel, passThrough, err := resolveDocContext(flags.doc)
	if err != nil {
		return err
	}
	if flags.heading.contextLevel > 0 {
		contextLevel = flags.heading.contextLevel
	}

	params := &convertParams{
		format:       format,
		contextLevel: contextLevel,
		escape:       flags.escape,
		passThrough:  passThrough,
	}

	workers := resolveWorkers(flags.workers, envCfg.Workers)
	results := convertBatch(ctx, svc, files, params, workers, env)

	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		// A single input surfaces its own error for a precise exit
		// code; a batch reports the aggregate.
		if len(results) == 1 {
			return results[0].Err
		}
		return fmt.Errorf("%w: %d of %d files", ErrConvertFailed, failedCount, len(results))
	}

	return nil
}

// loadConfiguration loads the config file named by the flag or the
// PASTE2MD_CONFIG variable, falling back to built-in defaults.
func loadConfiguration(flagConfig string, envCfg *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(configSearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// configSearchPaths reconstructs the locations LoadConfig tries for a
// config name, for the not-found hint.
func configSearchPaths(name string) []string {
	paths := []string{name + ".yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "go-paste2md", name+".yaml"))
	}
	return paths
}

// mergeFlags merges CLI flags into config. CLI values override config
// values; the --no-* forms are applied last so they win over their
// enable counterparts.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.from != "" {
		cfg.Input.Format = flags.from
	}
	if flags.heading.maxLevel > 0 {
		cfg.Transform.MaxHeadingLevel = flags.heading.maxLevel
	}

	// Enable flags
	if flags.heading.cascade {
		cfg.Transform.CascadeHeadingLevels = true
	}
	if flags.heading.contextualCascade {
		cfg.Transform.ContextualCascade = true
	}
	if flags.cleanup.stripLineBreaks {
		cfg.Transform.StripLineBreaks = true
	}
	if flags.cleanup.removeEmptyElements {
		cfg.Transform.RemoveEmptyElements = true
	}
	if flags.cleanup.removeEmptyLines {
		cfg.Transform.RemoveEmptyLines = true
	}
	if flags.cleanup.singleSpaced {
		cfg.Transform.SingleSpaced = true
	}

	// Disable flags
	if flags.heading.noCascade {
		cfg.Transform.CascadeHeadingLevels = false
	}
	if flags.heading.noContextualCascade {
		cfg.Transform.ContextualCascade = false
	}
	if flags.cleanup.noStripLineBreaks {
		cfg.Transform.StripLineBreaks = false
	}
	if flags.cleanup.noRemoveEmptyElements {
		cfg.Transform.RemoveEmptyElements = false
	}
	if flags.cleanup.noRemoveEmptyLines {
		cfg.Transform.RemoveEmptyLines = false
	}
	if flags.cleanup.noSingleSpaced {
		cfg.Transform.SingleSpaced = false
	}
}

// resolveConfiguredFormat validates the merged input format and
// defaults to auto-detection.
func resolveConfiguredFormat(cfg *config.Config) (string, error) {
	format := strings.ToLower(cfg.Input.Format)
	if format == "" {
		return "auto", nil
	}
	switch format {
	case "auto", "html", "text":
		return format, nil
	}
	return "", fmt.Errorf("%w: %q (must be auto, html, or text)", ErrInvalidFormat, cfg.Input.Format)
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", fmt.Errorf("%w%s", ErrNoInput, hints.ForNoInput())
}

// resolveOutputTarget determines the output target from flag or config.
func resolveOutputTarget(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// resolveDocContext resolves the destination heading context from the
// --doc/--cursor-line flags. Returns the heading level governing the
// cursor and whether the cursor sits inside an open code fence.
func resolveDocContext(doc docFlags) (int, bool, error) {
	if doc.path == "" {
		return 0, false, nil
	}

	content, err := os.ReadFile(doc.path) // #nosec G304 -- user-provided path
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	lines := strings.Split(string(content), "\n")
	level := paste2md.HeadingContext(lines, doc.cursorLine)
	inFence := paste2md.InsideFence(lines, doc.cursorLine)
	return level, inFence, nil
}

// buildServiceConfig assembles the library configuration from the
// merged config and the replacement flags. Replacement pairs run in
// order: preset pairs, then config file pairs, then flag pairs.
func buildServiceConfig(cfg *config.Config, flags *convertFlags) (paste2md.Config, error) {
	out := paste2md.DefaultConfig()

	if cfg.Transform.MaxHeadingLevel > 0 {
		out.MaxHeadingLevel = cfg.Transform.MaxHeadingLevel
	}
	out.CascadeHeadingLevels = cfg.Transform.CascadeHeadingLevels
	out.ContextualCascade = cfg.Transform.ContextualCascade
	out.StripLineBreaks = cfg.Transform.StripLineBreaks
	out.RemoveEmptyElements = cfg.Transform.RemoveEmptyElements
	out.RemoveEmptyLines = cfg.Transform.RemoveEmptyLines
	out.SingleSpaced = cfg.Transform.SingleSpaced

	var htmlReps, mdReps []paste2md.Replacement

	// Preset pairs first, config presets before --preset flags
	names := make([]string, 0, len(cfg.Presets)+len(flags.replace.presets))
	names = append(names, cfg.Presets...)
	names = append(names, flags.replace.presets...)
	for _, name := range names {
		p, err := presets.Load(name)
		if err != nil {
			if errors.Is(err, presets.ErrPresetNotFound) {
				return paste2md.Config{}, fmt.Errorf("%w%s", err, hints.ForPresetNotFound(presets.Names()))
			}
			return paste2md.Config{}, err
		}
		for _, r := range p.HTMLReplacements {
			htmlReps = append(htmlReps, paste2md.Replacement{Pattern: r.Pattern, Replacement: r.Replacement})
		}
		for _, r := range p.MarkdownReplacements {
			mdReps = append(mdReps, paste2md.Replacement{Pattern: r.Pattern, Replacement: r.Replacement})
		}
	}

	// Config file pairs
	for _, r := range cfg.Transform.HTMLReplacements {
		htmlReps = append(htmlReps, paste2md.Replacement{Pattern: r.Pattern, Replacement: r.Replacement})
	}
	for _, r := range cfg.Transform.MarkdownReplacements {
		mdReps = append(mdReps, paste2md.Replacement{Pattern: r.Pattern, Replacement: r.Replacement})
	}

	// Flag pairs last
	flagHTML, err := parseReplacementFlags(flags.replace.html)
	if err != nil {
		return paste2md.Config{}, err
	}
	flagMD, err := parseReplacementFlags(flags.replace.markdown)
	if err != nil {
		return paste2md.Config{}, err
	}
	htmlReps = append(htmlReps, flagHTML...)
	mdReps = append(mdReps, flagMD...)

	out.HTMLReplacements = htmlReps
	out.MarkdownReplacements = mdReps
	return out, nil
}

// parseReplacementFlags parses repeated pattern=>replacement values.
// An empty replacement side deletes matches; a missing separator is an
// error. Unlike config file pairs, which are skipped with a warning at
// transform time, a flag pattern that fails to compile is rejected here:
// the user just typed it and can fix it immediately.
func parseReplacementFlags(values []string) ([]paste2md.Replacement, error) {
	if len(values) == 0 {
		return nil, nil
	}
	reps := make([]paste2md.Replacement, 0, len(values))
	for _, v := range values {
		pattern, replacement, ok := strings.Cut(v, replacementSeparator)
		if !ok {
			return nil, fmt.Errorf("%w: %q (use pattern=>replacement)", ErrInvalidReplacementFlag, v)
		}
		if _, err := regexp.Compile(pattern); err != nil {
			return nil, fmt.Errorf("%w: %q: %v%s", ErrInvalidReplacementFlag, pattern, err, hints.ForInvalidPattern())
		}
		reps = append(reps, paste2md.Replacement{Pattern: pattern, Replacement: replacement})
	}
	return reps, nil
}

// buildService creates the transformation service with a logger wired
// to the CLI verbosity.
func buildService(cfg paste2md.Config, verbose bool, env *Environment) (*paste2md.Service, error) {
	logger := slog.New(slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{
		Level: logLevel(verbose),
	}))
	return paste2md.New(paste2md.WithConfig(cfg), paste2md.WithLogger(logger))
}

// logLevel maps CLI verbosity to the slog handler level. Pattern-skip
// warnings always surface; verbose adds debug detail.
func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
