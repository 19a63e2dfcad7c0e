package pipeline

import (
	"regexp"
	"strings"
)

// Fence delimiters. Up to three spaces of indentation, at least three
// backticks or tildes; backtick fences cannot carry backticks in their
// info string, tilde fences can carry anything. A closer repeats the
// opening character at least as many times with only trailing whitespace.
var (
	fenceOpenLine  = regexp.MustCompile("^ {0,3}(?:(`{3,})[^`]*|(~{3,}).*)$")
	fenceCloseLine = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})[ \t]*$")
)

type fenceDelim struct {
	char   byte
	length int
}

func fenceOpening(line string) (fenceDelim, bool) {
	m := fenceOpenLine.FindStringSubmatch(strings.TrimSuffix(line, "\r"))
	if m == nil {
		return fenceDelim{}, false
	}
	run := m[1]
	if run == "" {
		run = m[2]
	}
	return fenceDelim{char: run[0], length: len(run)}, true
}

func fenceCloses(line string, open fenceDelim) bool {
	m := fenceCloseLine.FindStringSubmatch(strings.TrimSuffix(line, "\r"))
	if m == nil {
		return false
	}
	return m[1][0] == open.char && len(m[1]) >= open.length
}

// ResolveHeadingContext scans backward from cursorLine toward the start
// of the document and returns the level of the nearest heading, 0 when
// none exists. The cursor is clamped into the document; a negative
// cursor or an empty document resolves to 0. The scan is deliberately
// not fence-aware; callers that care use InsideFence as a gate.
func ResolveHeadingContext(lines []string, cursorLine int) int {
	if len(lines) == 0 {
		return 0
	}
	if cursorLine >= len(lines) {
		cursorLine = len(lines) - 1
	}
	for i := cursorLine; i >= 0; i-- {
		if m := headingLine.FindStringSubmatch(lines[i]); m != nil {
			return len(m[1])
		}
	}
	return 0
}

// InsideFence reports whether the cursor sits inside a fenced code block
// opened above it and not yet closed. Lines strictly before cursorLine
// are walked forward, tracking the open delimiter so tilde and backtick
// fences, longer closers, and info strings behave like they do in
// CommonMark.
func InsideFence(lines []string, cursorLine int) bool {
	if cursorLine > len(lines) {
		cursorLine = len(lines)
	}
	var open *fenceDelim
	for i := 0; i < cursorLine; i++ {
		if open == nil {
			if d, ok := fenceOpening(lines[i]); ok {
				open = &d
			}
			continue
		}
		if fenceCloses(lines[i], *open) {
			open = nil
		}
	}
	return open != nil
}
