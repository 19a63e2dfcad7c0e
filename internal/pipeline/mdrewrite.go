package pipeline

import (
	"log/slog"
	"regexp"
	"strings"
)

// lineBreakPlaceholder shields preserved line breaks from blank-line
// filtering. Like LineBreakMark it is a Private Use Area character, so a
// line carrying it is never whitespace-only. The placeholder is restored
// to a newline as the final line-policy step.
const lineBreakPlaceholder = "" // U+E001: Private Use Area

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// ATX heading: one to six # followed by whitespace
	headingLine = regexp.MustCompile(`^(#{1,6})\s`)
)

// MarkdownRewriter adjusts converted Markdown for its destination
// document.
type MarkdownRewriter struct {
	logger *slog.Logger
}

// NewMarkdownRewriter creates a rewriter. A nil logger falls back to
// slog.Default.
func NewMarkdownRewriter(logger *slog.Logger) *MarkdownRewriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &MarkdownRewriter{logger: logger}
}

// Rewrite applies, in order: the configured Markdown regex substitutions,
// heading adjustment (replaced by escaping when escape is set), and the
// line policy. contextLevel is the destination heading level, 0 for none.
// The changed result accumulates across every step; a later no-op step
// never resets it.
func (r *MarkdownRewriter) Rewrite(markdown string, rules *Rules, contextLevel int, escape bool) (string, bool) {
	content, changed := applyReplacements(markdown, rules.MarkdownReplacements, r.logger, "markdown")

	if escape {
		out, c := escapeMarkdown(content)
		content, changed = out, changed || c
	} else {
		out, c := adjustHeadings(content, rules, contextLevel)
		content, changed = out, changed || c
	}

	out, c := applyLinePolicy(content, rules)
	return out, changed || c
}

// cascadeState tracks the one-shot heading cascade. The transition from
// idle fires at most once; after that the state is terminal and the delta
// fixed at trigger time applies to every later heading.
type cascadeState struct {
	cascading bool
	delta     int
}

// adjustHeadings demotes headings for the destination document. With a
// context level and ContextualCascade, the first heading at or above the
// context (numerically <= contextLevel) seeds a cascade that shifts every
// later heading by the same delta. Without context, MaxHeadingLevel
// either seeds the same cascade (CascadeHeadingLevels) or acts as a
// stateless per-heading floor. Levels never exceed 6.
func adjustHeadings(content string, rules *Rules, contextLevel int) (string, bool) {
	contextual := rules.ContextualCascade && contextLevel > 0
	if !contextual && rules.MaxHeadingLevel <= 1 {
		return content, false
	}

	lines := strings.Split(content, "\n")
	changed := false
	var state cascadeState
	for i, line := range lines {
		m := headingLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		level := len(m[1])
		target := level
		switch {
		case state.cascading:
			target = clampLevel(level + state.delta)
		case contextual:
			if level <= contextLevel {
				target = clampLevel(contextLevel + 1)
				state = cascadeState{cascading: true, delta: target - level}
			}
		case rules.CascadeHeadingLevels:
			if level < rules.MaxHeadingLevel {
				target = rules.MaxHeadingLevel
				state = cascadeState{cascading: true, delta: target - level}
			}
		default:
			if level < rules.MaxHeadingLevel {
				target = rules.MaxHeadingLevel
			}
		}
		if target != level {
			lines[i] = strings.Repeat("#", target) + line[level:]
			changed = true
		}
	}
	return strings.Join(lines, "\n"), changed
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}

// applyLinePolicy runs last. It swaps line-break markers for the
// placeholder (or deletes them under StripLineBreaks), filters blank
// lines, and restores placeholders to newlines. RemoveEmptyLines takes
// precedence over SingleSpaced when both are set.
func applyLinePolicy(content string, rules *Rules) (string, bool) {
	changed := false

	if strings.Contains(content, LineBreakMark) {
		repl := lineBreakPlaceholder
		if rules.StripLineBreaks {
			repl = ""
		}
		content = strings.ReplaceAll(content, LineBreakMark, repl)
		changed = true
	}

	switch {
	case rules.RemoveEmptyLines:
		out := removeBlankLines(content)
		if out != content {
			changed = true
			content = out
		}
	case rules.SingleSpaced:
		out := collapseBlankRuns(content)
		if out != content {
			changed = true
			content = out
		}
	}

	if strings.Contains(content, lineBreakPlaceholder) {
		content = strings.ReplaceAll(content, lineBreakPlaceholder, "\n")
		changed = true
	}
	return content, changed
}

// removeBlankLines drops every whitespace-only line. Lines holding a
// line-break placeholder are never whitespace-only, so intentional breaks
// survive the filter.
func removeBlankLines(content string) string {
	lines := strings.Split(crlfOrCR.ReplaceAllString(content, "\n"), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if isBlankLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// collapseBlankRuns reduces each run of two or more blank lines to
// exactly one. Single blank lines pass through untouched.
func collapseBlankRuns(content string) string {
	lines := strings.Split(crlfOrCR.ReplaceAllString(content, "\n"), "\n")
	out := make([]string, 0, len(lines))
	run := make([]string, 0, 4)
	flush := func() {
		switch {
		case len(run) == 1:
			out = append(out, run[0])
		case len(run) > 1:
			out = append(out, "")
		}
		run = run[:0]
	}
	for _, line := range lines {
		if isBlankLine(line) {
			run = append(run, line)
			continue
		}
		flush()
		out = append(out, line)
	}
	flush()
	return strings.Join(out, "\n")
}

func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}
