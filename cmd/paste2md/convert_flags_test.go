package main

// Notes:
// - parseConvertFlags: we test short/long forms, boolean flags, value flags,
//   repeatable flags, and positional arguments.
// - Repeatable flags (--preset, --html-replace, --md-replace) are tested for
//   accumulation order and for commas surviving inside patterns.
// - We don't test pflag.Parse() internals (library responsibility).
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"testing"
)

// ---------------------------------------------------------------------------
// TestParseConvertFlags - CLI flag parsing
// ---------------------------------------------------------------------------

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		args           []string
		check          func(t *testing.T, f *convertFlags)
		wantPositional []string
		wantErr        bool
	}{
		{
			name:           "no args",
			args:           []string{},
			wantPositional: []string{},
			check:          func(t *testing.T, f *convertFlags) {},
		},
		{
			name:           "single file",
			args:           []string{"paste.html"},
			wantPositional: []string{"paste.html"},
			check:          func(t *testing.T, f *convertFlags) {},
		},
		{
			name:           "stdin marker",
			args:           []string{"-"},
			wantPositional: []string{"-"},
			check:          func(t *testing.T, f *convertFlags) {},
		},
		{
			name:           "config flag long",
			args:           []string{"--config", "work"},
			wantPositional: []string{},
			check: func(t *testing.T, f *convertFlags) {
				if f.common.config != "work" {
					t.Errorf("config = %q, want work", f.common.config)
				}
			},
		},
		{
			name:           "config flag short",
			args:           []string{"-c", "work"},
			wantPositional: []string{},
			check: func(t *testing.T, f *convertFlags) {
				if f.common.config != "work" {
					t.Errorf("config = %q, want work", f.common.config)
				}
			},
		},
		{
			name:           "output flag short",
			args:           []string{"-o", "./out/"},
			wantPositional: []string{},
			check: func(t *testing.T, f *convertFlags) {
				if f.output != "./out/" {
					t.Errorf("output = %q, want ./out/", f.output)
				}
			},
		},
		{
			name:           "from flag",
			args:           []string{"--from", "html"},
			wantPositional: []string{},
			check: func(t *testing.T, f *convertFlags) {
				if f.from != "html" {
					t.Errorf("from = %q, want html", f.from)
				}
			},
		},
		{
			name:           "escape flag",
			args:           []string{"--escape"},
			wantPositional: []string{},
			check: func(t *testing.T, f *convertFlags) {
				if !f.escape {
					t.Error("escape should be set")
				}
			},
		},
		{
			name:           "workers flag short",
			args:           []string{"-w", "4"},
			wantPositional: []string{},
			check: func(t *testing.T, f *convertFlags) {
				if f.workers != 4 {
					t.Errorf("workers = %d, want 4", f.workers)
				}
			},
		},
		{
			name:           "quiet and verbose",
			args:           []string{"-q", "-v"},
			wantPositional: []string{},
			check: func(t *testing.T, f *convertFlags) {
				if !f.common.quiet || !f.common.verbose {
					t.Error("quiet and verbose should both be set")
				}
			},
		},
		{
			name:           "heading flags",
			args:           []string{"--max-heading-level", "2", "--cascade", "--context-level", "3"},
			wantPositional: []string{},
			check: func(t *testing.T, f *convertFlags) {
				if f.heading.maxLevel != 2 {
					t.Errorf("maxLevel = %d, want 2", f.heading.maxLevel)
				}
				if !f.heading.cascade {
					t.Error("cascade should be set")
				}
				if f.heading.contextLevel != 3 {
					t.Errorf("contextLevel = %d, want 3", f.heading.contextLevel)
				}
			},
		},
		{
			name:           "cleanup disable flags",
			args:           []string{"--no-strip-line-breaks", "--no-single-spaced"},
			wantPositional: []string{},
			check: func(t *testing.T, f *convertFlags) {
				if !f.cleanup.noStripLineBreaks || !f.cleanup.noSingleSpaced {
					t.Error("disable flags should be set")
				}
			},
		},
		{
			name:           "repeatable presets accumulate in order",
			args:           []string{"--preset", "word", "--preset", "web"},
			wantPositional: []string{},
			check: func(t *testing.T, f *convertFlags) {
				if len(f.replace.presets) != 2 || f.replace.presets[0] != "word" || f.replace.presets[1] != "web" {
					t.Errorf("presets = %v, want [word web]", f.replace.presets)
				}
			},
		},
		{
			name:           "replacement value keeps commas intact",
			args:           []string{"--html-replace", `<span[^>]{1,40}>=>`},
			wantPositional: []string{},
			check: func(t *testing.T, f *convertFlags) {
				if len(f.replace.html) != 1 || f.replace.html[0] != `<span[^>]{1,40}>=>` {
					t.Errorf("html = %v, want the raw pattern", f.replace.html)
				}
			},
		},
		{
			name:           "doc flags",
			args:           []string{"--doc", "notes.md", "--cursor-line", "12"},
			wantPositional: []string{},
			check: func(t *testing.T, f *convertFlags) {
				if f.doc.path != "notes.md" {
					t.Errorf("doc.path = %q, want notes.md", f.doc.path)
				}
				if f.doc.cursorLine != 12 {
					t.Errorf("doc.cursorLine = %d, want 12", f.doc.cursorLine)
				}
			},
		},
		{
			name:           "flags after positional argument",
			args:           []string{"paste.html", "-o", "./out/", "--verbose"},
			wantPositional: []string{"paste.html"},
			check: func(t *testing.T, f *convertFlags) {
				if f.output != "./out/" || !f.common.verbose {
					t.Error("flags after positional should parse")
				}
			},
		},
		{
			name:    "unknown flag returns error",
			args:    []string{"--unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flags, positional, err := parseConvertFlags(tt.args)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(positional) != len(tt.wantPositional) {
				t.Errorf("positional = %v, want %v", positional, tt.wantPositional)
			} else {
				for i := range positional {
					if positional[i] != tt.wantPositional[i] {
						t.Errorf("positional[%d] = %q, want %q", i, positional[i], tt.wantPositional[i])
					}
				}
			}

			tt.check(t, flags)
		})
	}
}

// ---------------------------------------------------------------------------
// TestParseDoctorFlags - Doctor flag parsing
// ---------------------------------------------------------------------------

func TestParseDoctorFlags(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		flags, err := parseDoctorFlags([]string{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if flags.config != "" {
			t.Errorf("config = %q, want empty", flags.config)
		}
		if flags.json {
			t.Error("json should default to false")
		}
	})

	t.Run("config and json", func(t *testing.T) {
		t.Parallel()

		flags, err := parseDoctorFlags([]string{"-c", "work", "--json"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if flags.config != "work" {
			t.Errorf("config = %q, want work", flags.config)
		}
		if !flags.json {
			t.Error("json should be set")
		}
	})

	t.Run("unknown flag returns error", func(t *testing.T) {
		t.Parallel()

		_, err := parseDoctorFlags([]string{"--bogus"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}
