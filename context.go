package paste2md

import "github.com/alnah/go-paste2md/internal/pipeline"

// HeadingContext returns the level of the nearest heading at or above
// cursorLine, scanning backward through lines, or 0 when no heading
// precedes the cursor. A cursor past the end of the document is clamped
// to the last line. Feed the result to Input.ContextLevel when
// Config.ContextualCascade is enabled.
//
// The scan is not fence-aware: a line that merely looks like a heading
// inside a fenced code block still counts. Callers that care should
// gate on InsideFence first and skip the transform entirely.
func HeadingContext(lines []string, cursorLine int) int {
	if cursorLine < 0 {
		return 0
	}
	return pipeline.ResolveHeadingContext(lines, cursorLine)
}

// InsideFence reports whether cursorLine sits inside a fenced code
// block opened above it and not yet closed. Both backtick and tilde
// fences are recognized, with info strings and longer closers handled
// the way CommonMark defines them. Callers typically insert the paste
// verbatim when this returns true.
func InsideFence(lines []string, cursorLine int) bool {
	if cursorLine < 0 {
		return false
	}
	return pipeline.InsideFence(lines, cursorLine)
}
