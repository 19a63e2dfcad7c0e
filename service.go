package paste2md

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alnah/go-paste2md/internal/pipeline"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ HTMLConverter              = (*pipeline.CommonmarkConverter)(nil)
	_ pipeline.MarkdownConverter = (*pipeline.CommonmarkConverter)(nil)
	_ pipeline.PreviewRenderer   = (*pipeline.GoldmarkRenderer)(nil)
)

// Service orchestrates the paste transformation pipeline.
// Create with New and transform pastes with Transform. A Service keeps
// no state between calls and is safe for concurrent use; one instance
// can serve every goroutine in the process.
type Service struct {
	cfg        Config
	logger     *slog.Logger
	converter  HTMLConverter
	normalizer *pipeline.HTMLNormalizer
	rewriter   *pipeline.MarkdownRewriter
	renderer   pipeline.PreviewRenderer
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithConfig, WithLogger,
// WithHTMLConverter). Returns an error if the configuration is invalid.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		cfg:    DefaultConfig(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	// Create the conversion engine if not injected (e.g., by tests)
	if s.converter == nil {
		s.converter = pipeline.NewCommonmarkConverter()
	}

	s.normalizer = pipeline.NewHTMLNormalizer(s.logger)
	s.rewriter = pipeline.NewMarkdownRewriter(s.logger)
	s.renderer = pipeline.NewGoldmarkRenderer()

	return s, nil
}

// Transform runs the full pipeline on one paste and returns the result.
// The context is used for cancellation of the conversion stage.
// Recovers from internal panics to prevent crashes from propagating to
// callers; the paste is all-or-nothing, partial output is never
// returned.
func (s *Service) Transform(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	rules := s.toRules()
	changed := false
	markdown := input.Text

	if input.HTML != "" {
		normalized, c := s.normalizer.Normalize(input.HTML, rules)
		changed = changed || c
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		markdown, err = s.converter.ToMarkdown(ctx, normalized)
		if err != nil {
			return nil, wrapStage(ErrMarkdownConversion, err)
		}
	}

	rewritten, c := s.rewriter.Rewrite(markdown, rules, input.ContextLevel, input.Escape)
	changed = changed || c

	return &Result{Markdown: rewritten, Changed: changed}, nil
}

// Preview renders Markdown to a standalone HTML document, useful for
// inspecting a transform before inserting it.
func (s *Service) Preview(ctx context.Context, markdown string) (string, error) {
	html, err := s.renderer.ToHTML(ctx, markdown)
	if err != nil {
		return "", wrapStage(ErrPreviewRender, err)
	}
	return html, nil
}

// wrapStage maps a pipeline failure to its public sentinel. Context
// cancellation passes through untouched so callers can still match it
// with errors.Is.
func wrapStage(sentinel, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}

// validateInput checks that the paste is usable.
//
// This is a TRUST BOUNDARY for direct library users who build Input
// manually. CLI users have their configuration validated earlier by
// Config.Validate() at config load time. Both paths converge here,
// ensuring all inputs are validated before processing.
func (s *Service) validateInput(input Input) error {
	if input.HTML == "" && input.Text == "" {
		return ErrEmptyPayload
	}
	if input.ContextLevel < 0 || input.ContextLevel > MaxHeadingDepth {
		return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidContextLevel, input.ContextLevel, MaxHeadingDepth)
	}
	return nil
}

// toRules converts the public Config to internal pipeline.Rules.
func (s *Service) toRules() *pipeline.Rules {
	return &pipeline.Rules{
		MaxHeadingLevel:      s.cfg.MaxHeadingLevel,
		CascadeHeadingLevels: s.cfg.CascadeHeadingLevels,
		ContextualCascade:    s.cfg.ContextualCascade,
		StripLineBreaks:      s.cfg.StripLineBreaks,
		RemoveEmptyElements:  s.cfg.RemoveEmptyElements,
		RemoveEmptyLines:     s.cfg.RemoveEmptyLines,
		SingleSpaced:         s.cfg.SingleSpaced,
		HTMLReplacements:     toReplacements(s.cfg.HTMLReplacements),
		MarkdownReplacements: toReplacements(s.cfg.MarkdownReplacements),
	}
}

// toReplacements converts public Replacement pairs to the internal type.
func toReplacements(reps []Replacement) []pipeline.Replacement {
	if len(reps) == 0 {
		return nil
	}
	out := make([]pipeline.Replacement, len(reps))
	for i, rep := range reps {
		out[i] = pipeline.Replacement(rep)
	}
	return out
}
