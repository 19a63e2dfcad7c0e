package pipeline

import (
	"log/slog"
	"regexp"
)

// Replacement is an ordered regex substitution pair. Patterns use Go RE2
// syntax; a pattern that fails to compile is skipped, never fatal.
type Replacement struct {
	Pattern     string
	Replacement string
}

// Rules carries the transformation switches shared by the HTML normalizer
// and the Markdown rewriter. The root package maps its public Config into
// this type so the pipeline stays decoupled from the public API surface.
type Rules struct {
	MaxHeadingLevel      int
	CascadeHeadingLevels bool
	ContextualCascade    bool
	StripLineBreaks      bool
	RemoveEmptyElements  bool
	RemoveEmptyLines     bool
	SingleSpaced         bool
	HTMLReplacements     []Replacement
	MarkdownReplacements []Replacement
}

// applyReplacements runs each pair in order against content. Invalid
// patterns are skipped with a warning so one bad user regex never aborts
// the run. Returns the substituted content and whether anything changed.
func applyReplacements(content string, reps []Replacement, logger *slog.Logger, stage string) (string, bool) {
	changed := false
	for _, rep := range reps {
		re, err := regexp.Compile(rep.Pattern)
		if err != nil {
			logger.Warn("skipping invalid replacement pattern",
				"stage", stage,
				"pattern", rep.Pattern,
				"error", err)
			continue
		}
		out := re.ReplaceAllString(content, rep.Replacement)
		if out != content {
			changed = true
			content = out
		}
	}
	return content, changed
}
