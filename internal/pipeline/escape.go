package pipeline

import (
	"regexp"
	"strings"
)

// Line-start constructs. The capture group marks the single character
// whose escaping defuses the construct: the first # of a heading, the
// list marker, the ordered-list delimiter, the blockquote marker, or the
// first character of a setext underline / thematic break.
var (
	escHeading = regexp.MustCompile(`^[ \t]{0,3}(#{1,6})(\s|$)`)
	escBullet  = regexp.MustCompile(`^[ \t]*([-+*])(\s|$)`)
	escOrdered = regexp.MustCompile(`^[ \t]*\d{1,9}([.)])(\s|$)`)
	escQuote   = regexp.MustCompile(`^[ \t]*(>)`)
	escRuler   = regexp.MustCompile(`^[ \t]{0,3}(-+|=+)[ \t]*$`)
)

// escapeMarkdown escapes every Markdown-significant construct so the text
// renders as literal text. Content inside inline code spans and inside
// matched fenced code blocks passes through untouched. An unmatched fence
// delimiter is escaped like any other construct.
func escapeMarkdown(content string) (string, bool) {
	lines := strings.Split(content, "\n")
	fenced := fencedLineSet(lines)
	out := make([]string, len(lines))
	for i, line := range lines {
		if fenced[i] {
			out[i] = line
			continue
		}
		out[i] = escapeLine(line)
	}
	result := strings.Join(out, "\n")
	return result, result != content
}

// fencedLineSet marks the lines of matched fenced code blocks, delimiters
// included. Fences that never close are left unmarked.
func fencedLineSet(lines []string) []bool {
	fenced := make([]bool, len(lines))
	for i := 0; i < len(lines); i++ {
		open, ok := fenceOpening(lines[i])
		if !ok {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			if fenceCloses(lines[j], open) {
				for k := i; k <= j; k++ {
					fenced[k] = true
				}
				i = j
				break
			}
		}
	}
	return fenced
}

// escapeLine escapes one line outside fenced regions. Inline code spans
// keep their content and delimiters; everything else gets a backslash
// before each significant character.
func escapeLine(line string) string {
	if line == "" {
		return line
	}
	spans := codeSpans(line)
	structural := structuralPositions(line)
	var b strings.Builder
	b.Grow(len(line) + 8)
	for i := 0; i < len(line); i++ {
		c := line[i]
		if inSpan(spans, i) {
			b.WriteByte(c)
			continue
		}
		if structural[i] || isInlineEscapable(c) {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// isInlineEscapable reports characters escaped wherever they appear
// outside code: the escape character itself, code and emphasis
// delimiters, link openers, table pipes, raw HTML openers, and
// strikethrough tildes.
func isInlineEscapable(c byte) bool {
	switch c {
	case '\\', '`', '*', '_', '[', '|', '<', '~':
		return true
	}
	return false
}

// structuralPositions returns the byte positions of line-start construct
// characters. A position claimed by both a line-start rule and the inline
// set is still escaped once.
func structuralPositions(line string) map[int]bool {
	pos := make(map[int]bool, 2)
	for _, re := range []*regexp.Regexp{escHeading, escBullet, escOrdered, escQuote, escRuler} {
		if loc := re.FindStringSubmatchIndex(line); loc != nil {
			pos[loc[2]] = true
		}
	}
	return pos
}

// codeSpans returns the byte ranges, delimiters included, of inline code
// spans. An opening backtick run is closed by the next run of exactly the
// same length; runs of other lengths in between are span content.
// Unmatched runs are not spans, so their backticks get escaped.
func codeSpans(line string) [][2]int {
	runs := backtickRuns(line)
	var spans [][2]int
	for i := 0; i < len(runs); {
		opener := runs[i]
		matched := -1
		for j := i + 1; j < len(runs); j++ {
			if runs[j].length == opener.length {
				matched = j
				break
			}
		}
		if matched == -1 {
			i++
			continue
		}
		spans = append(spans, [2]int{opener.start, runs[matched].start + runs[matched].length})
		i = matched + 1
	}
	return spans
}

type backtickRun struct {
	start  int
	length int
}

func backtickRuns(line string) []backtickRun {
	var runs []backtickRun
	for i := 0; i < len(line); {
		if line[i] != '`' {
			i++
			continue
		}
		j := i
		for j < len(line) && line[j] == '`' {
			j++
		}
		runs = append(runs, backtickRun{start: i, length: j - i})
		i = j
	}
	return runs
}

func inSpan(spans [][2]int, i int) bool {
	for _, sp := range spans {
		if i >= sp[0] && i < sp[1] {
			return true
		}
	}
	return false
}
