package paste2md

import (
	"context"
	"fmt"
	"log/slog"
)

// Heading and replacement bounds.
const (
	// MaxHeadingDepth is the deepest Markdown heading level.
	MaxHeadingDepth = 6

	// MaxReplacements caps each replacement list.
	MaxReplacements = 100

	// MaxPatternLength caps a single pattern or replacement string.
	MaxPatternLength = 1000
)

// Replacement is an ordered regex substitution pair. Patterns use Go RE2
// syntax. An invalid pattern is skipped with a logged warning at
// transform time; it never fails the transform.
type Replacement struct {
	Pattern     string
	Replacement string
}

// Config controls how pastes are transformed. The zero value disables
// every adjustment; DefaultConfig returns the same thing explicitly.
type Config struct {
	// MaxHeadingLevel is the minimum (largest-rendering) heading level
	// pasted headings may keep, 1 through 6. 1 disables standalone
	// heading adjustment.
	MaxHeadingLevel int

	// CascadeHeadingLevels shifts every heading after the first adjusted
	// one by the same delta, preserving the paste's own hierarchy,
	// instead of capping each heading independently.
	CascadeHeadingLevels bool

	// ContextualCascade derives the cascade from Input.ContextLevel, the
	// heading level the paste lands under. When the context is present
	// it takes precedence over MaxHeadingLevel.
	ContextualCascade bool

	// StripLineBreaks deletes <br> elements instead of preserving them
	// as line breaks in the Markdown.
	StripLineBreaks bool

	// RemoveEmptyElements prunes elements with no text, no children, and
	// no intrinsic meaning (img, hr, br, input, iframe are kept).
	RemoveEmptyElements bool

	// RemoveEmptyLines drops every blank line from the result. Takes
	// precedence over SingleSpaced.
	RemoveEmptyLines bool

	// SingleSpaced collapses each run of two or more blank lines into
	// exactly one.
	SingleSpaced bool

	// HTMLReplacements run against the raw HTML before parsing.
	HTMLReplacements []Replacement

	// MarkdownReplacements run against the Markdown before heading
	// adjustment.
	MarkdownReplacements []Replacement
}

// DefaultConfig returns a configuration with every adjustment disabled.
func DefaultConfig() Config {
	return Config{MaxHeadingLevel: 1}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.MaxHeadingLevel < 1 || c.MaxHeadingLevel > MaxHeadingDepth {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidHeadingLevel, c.MaxHeadingLevel, MaxHeadingDepth)
	}
	if err := validateReplacements("html", c.HTMLReplacements); err != nil {
		return err
	}
	return validateReplacements("markdown", c.MarkdownReplacements)
}

func validateReplacements(kind string, reps []Replacement) error {
	if len(reps) > MaxReplacements {
		return fmt.Errorf("%w: %d %s pairs (max %d)", ErrTooManyReplacements, len(reps), kind, MaxReplacements)
	}
	for _, rep := range reps {
		if len(rep.Pattern) > MaxPatternLength || len(rep.Replacement) > MaxPatternLength {
			return fmt.Errorf("%w: %s pair %q (max %d bytes)", ErrReplacementTooLong, kind, truncate(rep.Pattern, 40), MaxPatternLength)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Input contains one paste.
type Input struct {
	HTML         string // Rich payload (preferred when non-empty)
	Text         string // Plain payload (used when HTML is empty)
	ContextLevel int    // Destination heading level, 0 for none
	Escape       bool   // Escape Markdown constructs instead of adjusting headings
}

// Result is the transformed paste. Changed reports whether any stage
// altered the content, letting callers skip a no-op edit.
type Result struct {
	Markdown string
	Changed  bool
}

// HTMLConverter abstracts the HTML to Markdown conversion engine.
// The default engine is html-to-markdown; tests and callers with their
// own converter can swap it via WithHTMLConverter.
type HTMLConverter interface {
	ToMarkdown(ctx context.Context, html string) (string, error)
}

// Option configures a Service.
type Option func(*Service)

// WithConfig sets the transformation configuration.
// The configuration is validated by New.
func WithConfig(cfg Config) Option {
	return func(s *Service) {
		s.cfg = cfg
	}
}

// WithLogger sets the logger used for pattern-skip warnings.
// Panics if logger is nil (programmer error, similar to time.NewTicker).
func WithLogger(logger *slog.Logger) Option {
	if logger == nil {
		panic("paste2md: WithLogger logger must not be nil")
	}
	return func(s *Service) {
		s.logger = logger
	}
}

// WithHTMLConverter replaces the HTML to Markdown engine.
// Panics if conv is nil (programmer error, similar to time.NewTicker).
func WithHTMLConverter(conv HTMLConverter) Option {
	if conv == nil {
		panic("paste2md: WithHTMLConverter converter must not be nil")
	}
	return func(s *Service) {
		s.converter = conv
	}
}
