package pipeline

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestApplyReplacements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		reps        []Replacement
		expected    string
		wantChanged bool
	}{
		{
			name:        "no replacements",
			input:       "hello",
			reps:        nil,
			expected:    "hello",
			wantChanged: false,
		},
		{
			name:        "single replacement",
			input:       "foo baz",
			reps:        []Replacement{{Pattern: "foo", Replacement: "bar"}},
			expected:    "bar baz",
			wantChanged: true,
		},
		{
			name:  "pairs apply in order",
			input: "foo",
			reps: []Replacement{
				{Pattern: "foo", Replacement: "bar"},
				{Pattern: "bar", Replacement: "baz"},
			},
			expected:    "baz",
			wantChanged: true,
		},
		{
			name:  "invalid pattern skipped, later pair still applies",
			input: "foo",
			reps: []Replacement{
				{Pattern: "(unclosed", Replacement: "x"},
				{Pattern: "foo", Replacement: "bar"},
			},
			expected:    "bar",
			wantChanged: true,
		},
		{
			name:        "pattern matches nothing",
			input:       "foo",
			reps:        []Replacement{{Pattern: "zzz", Replacement: "x"}},
			expected:    "foo",
			wantChanged: false,
		},
		{
			name:        "capture group references",
			input:       "name: value",
			reps:        []Replacement{{Pattern: `name: (\w+)`, Replacement: "$1"}},
			expected:    "value",
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, changed := applyReplacements(tt.input, tt.reps, slog.Default(), "test")
			if got != tt.expected {
				t.Errorf("applyReplacements(%q) = %q, want %q", tt.input, got, tt.expected)
			}
			if changed != tt.wantChanged {
				t.Errorf("applyReplacements(%q) changed = %v, want %v", tt.input, changed, tt.wantChanged)
			}
		})
	}
}

func TestApplyReplacementsWarnsOnInvalidPattern(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	got, changed := applyReplacements("foo", []Replacement{{Pattern: "(", Replacement: "x"}}, logger, "markdown")
	if got != "foo" {
		t.Errorf("applyReplacements() = %q, want input unchanged", got)
	}
	if changed {
		t.Error("applyReplacements() changed = true, want false")
	}
	if !strings.Contains(buf.String(), "skipping invalid replacement pattern") {
		t.Errorf("expected warning log, got %q", buf.String())
	}
}

func TestAdjustHeadingsCascade(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		rules        Rules
		contextLevel int
		expected     string
		wantChanged  bool
	}{
		{
			name: "standalone cascade shifts every heading by the seed delta",
			input: "# A\n## B\n### C\n#### D\n##### E\n###### F\n" +
				"# A2\n## B2\n### C2\n#### D2\n##### E2\n###### F2",
			rules: Rules{MaxHeadingLevel: 3, CascadeHeadingLevels: true},
			expected: "### A\n#### B\n##### C\n###### D\n###### E\n###### F\n" +
				"### A2\n#### B2\n##### C2\n###### D2\n###### E2\n###### F2",
			wantChanged: true,
		},
		{
			name: "contextual cascade from level 2 context",
			input: "# A\n## B\n### C\n#### D\n##### E\n###### F\n" +
				"# A2\n## B2\n### C2\n#### D2\n##### E2\n###### F2",
			rules:        Rules{ContextualCascade: true},
			contextLevel: 2,
			expected: "### A\n#### B\n##### C\n###### D\n###### E\n###### F\n" +
				"### A2\n#### B2\n##### C2\n###### D2\n###### E2\n###### F2",
			wantChanged: true,
		},
		{
			name:        "cap without cascade adjusts each heading independently",
			input:       "# A\n## B\n### C\n#### D\n##### E\n###### F",
			rules:       Rules{MaxHeadingLevel: 3},
			expected:    "### A\n### B\n### C\n#### D\n##### E\n###### F",
			wantChanged: true,
		},
		{
			name:         "contextual leaves pre-cascade deep headings alone",
			input:        "#### Deep\n# Top\n### Sub",
			rules:        Rules{ContextualCascade: true},
			contextLevel: 2,
			expected:     "#### Deep\n### Top\n##### Sub",
			wantChanged:  true,
		},
		{
			name:        "cascade delta applies to shallower later headings",
			input:       "## A\n# B\n###### C",
			rules:       Rules{MaxHeadingLevel: 4, CascadeHeadingLevels: true},
			expected:    "#### A\n### B\n###### C",
			wantChanged: true,
		},
		{
			name:         "contextual at level 6 clamps everything to 6",
			input:        "## X\n### Y",
			rules:        Rules{ContextualCascade: true},
			contextLevel: 6,
			expected:     "###### X\n###### Y",
			wantChanged:  true,
		},
		{
			name:        "max level 1 disables standalone adjustment",
			input:       "# A\n## B",
			rules:       Rules{MaxHeadingLevel: 1, CascadeHeadingLevels: true},
			expected:    "# A\n## B",
			wantChanged: false,
		},
		{
			name:         "contextual disabled ignores context level",
			input:        "# A",
			rules:        Rules{MaxHeadingLevel: 1},
			contextLevel: 3,
			expected:     "# A",
			wantChanged:  false,
		},
		{
			name:        "standalone cascade ignores headings already at or past the max",
			input:       "### C\n#### D\n## B\n#### D2",
			rules:       Rules{MaxHeadingLevel: 3, CascadeHeadingLevels: true},
			expected:    "### C\n#### D\n### B\n##### D2",
			wantChanged: true,
		},
		{
			name:        "non-heading lines untouched",
			input:       "# A\ntext with # hash\n  ## indented is not a heading\n#nospace",
			rules:       Rules{MaxHeadingLevel: 3},
			expected:    "### A\ntext with # hash\n  ## indented is not a heading\n#nospace",
			wantChanged: true,
		},
		{
			name:        "seven hashes is not a heading",
			input:       "####### G",
			rules:       Rules{MaxHeadingLevel: 3},
			expected:    "####### G",
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, changed := adjustHeadings(tt.input, &tt.rules, tt.contextLevel)
			if got != tt.expected {
				t.Errorf("adjustHeadings(%q) = %q, want %q", tt.input, got, tt.expected)
			}
			if changed != tt.wantChanged {
				t.Errorf("adjustHeadings(%q) changed = %v, want %v", tt.input, changed, tt.wantChanged)
			}
		})
	}
}

func TestAdjustHeadingsCapIsIdempotent(t *testing.T) {
	t.Parallel()

	rules := Rules{MaxHeadingLevel: 3}
	input := "# A\n## B\n### C\n#### D"

	once, _ := adjustHeadings(input, &rules, 0)
	twice, changed := adjustHeadings(once, &rules, 0)
	if twice != once {
		t.Errorf("second pass altered output: %q != %q", twice, once)
	}
	if changed {
		t.Error("second pass reported changed = true, want false")
	}
}

func TestRewriteChangedAccumulates(t *testing.T) {
	t.Parallel()

	r := NewMarkdownRewriter(nil)

	// An early heading changes while the document's last stretch does not.
	// The changed flag must survive the later no-op steps.
	got, changed := r.Rewrite("# Title\n### Detail\n", &Rules{ContextualCascade: true}, 2, false)
	if !changed {
		t.Error("Rewrite() changed = false, want true")
	}
	if want := "### Title\n##### Detail\n"; got != want {
		t.Errorf("Rewrite() = %q, want %q", got, want)
	}

	// Replacement-only change, heading and line stages idle.
	got, changed = r.Rewrite("foo", &Rules{MarkdownReplacements: []Replacement{{Pattern: "foo", Replacement: "bar"}}}, 0, false)
	if !changed {
		t.Error("Rewrite() changed = false after replacement-only change, want true")
	}
	if got != "bar" {
		t.Errorf("Rewrite() = %q, want %q", got, "bar")
	}

	// Nothing to do at all.
	got, changed = r.Rewrite("plain", &Rules{}, 0, false)
	if changed {
		t.Error("Rewrite() changed = true on no-op, want false")
	}
	if got != "plain" {
		t.Errorf("Rewrite() = %q, want %q", got, "plain")
	}
}

func TestRewriteEscapeReplacesHeadingAdjustment(t *testing.T) {
	t.Parallel()

	r := NewMarkdownRewriter(nil)

	got, changed := r.Rewrite("# Title", &Rules{MaxHeadingLevel: 3, CascadeHeadingLevels: true}, 0, true)
	if want := `\# Title`; got != want {
		t.Errorf("Rewrite() = %q, want %q", got, want)
	}
	if !changed {
		t.Error("Rewrite() changed = false, want true")
	}
}

func TestApplyLinePolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		rules       Rules
		expected    string
		wantChanged bool
	}{
		{
			name:        "no policy leaves content alone",
			input:       "A\n\n\nB",
			rules:       Rules{},
			expected:    "A\n\n\nB",
			wantChanged: false,
		},
		{
			name:        "remove empty lines drops every blank line",
			input:       "A\n\nB\n\n\nC",
			rules:       Rules{RemoveEmptyLines: true},
			expected:    "A\nB\nC",
			wantChanged: true,
		},
		{
			name:        "remove empty lines drops whitespace-only lines",
			input:       "A\n \t\nB",
			rules:       Rules{RemoveEmptyLines: true},
			expected:    "A\nB",
			wantChanged: true,
		},
		{
			name:        "remove empty lines wins over single spacing",
			input:       "A\n\nB\n\n\n\nC",
			rules:       Rules{RemoveEmptyLines: true, SingleSpaced: true},
			expected:    "A\nB\nC",
			wantChanged: true,
		},
		{
			name:        "single spaced collapses runs to one blank line",
			input:       "A\n\n\n\nB\n\nC",
			rules:       Rules{SingleSpaced: true},
			expected:    "A\n\nB\n\nC",
			wantChanged: true,
		},
		{
			name:        "single spaced leaves single blanks untouched",
			input:       "A\n\nB",
			rules:       Rules{SingleSpaced: true},
			expected:    "A\n\nB",
			wantChanged: false,
		},
		{
			name:        "single spaced normalizes CRLF",
			input:       "A\r\n\r\n\r\nB",
			rules:       Rules{SingleSpaced: true},
			expected:    "A\n\nB",
			wantChanged: true,
		},
		{
			name:        "marker becomes newline when breaks preserved",
			input:       "alphabeta",
			rules:       Rules{},
			expected:    "alpha\nbeta",
			wantChanged: true,
		},
		{
			name:        "marker deleted under strip",
			input:       "alphabeta",
			rules:       Rules{StripLineBreaks: true},
			expected:    "alphabeta",
			wantChanged: true,
		},
		{
			name:        "marker line survives blank-line removal",
			input:       "para\n\n\n\nnext",
			rules:       Rules{RemoveEmptyLines: true},
			expected:    "para\n\n\nnext",
			wantChanged: true,
		},
		{
			name:        "marker inside text survives blank-line removal",
			input:       "alphabeta\n\nrest",
			rules:       Rules{RemoveEmptyLines: true},
			expected:    "alpha\nbeta\nrest",
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, changed := applyLinePolicy(tt.input, &tt.rules)
			if got != tt.expected {
				t.Errorf("applyLinePolicy(%q) = %q, want %q", tt.input, got, tt.expected)
			}
			if changed != tt.wantChanged {
				t.Errorf("applyLinePolicy(%q) changed = %v, want %v", tt.input, changed, tt.wantChanged)
			}
		})
	}
}

func TestLinePolicyNeverLeaksMarkers(t *testing.T) {
	t.Parallel()

	r := NewMarkdownRewriter(nil)

	inputs := []string{
		"ab",
		"ab\n\n\n\nc",
		"",
		"ab", // placeholder arriving in user text is restored too
	}
	for _, input := range inputs {
		for _, rules := range []Rules{
			{},
			{StripLineBreaks: true},
			{RemoveEmptyLines: true},
			{SingleSpaced: true},
		} {
			got, _ := r.Rewrite(input, &rules, 0, false)
			if strings.Contains(got, LineBreakMark) || strings.Contains(got, lineBreakPlaceholder) {
				t.Errorf("Rewrite(%q, %+v) leaked a marker: %q", input, rules, got)
			}
		}
	}
}
