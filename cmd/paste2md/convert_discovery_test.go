package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		inputPath    string
		output       string
		baseInputDir string
		want         string
	}{
		{
			name:      "no output - stdout",
			inputPath: "/pastes/file.html",
			output:    "",
			want:      "",
		},
		{
			name:      "output is Markdown file",
			inputPath: "/pastes/file.html",
			output:    "/out/result.md",
			want:      "/out/result.md",
		},
		{
			name:      "output is directory - single file",
			inputPath: "/pastes/file.html",
			output:    "/out",
			want:      "/out/file.md",
		},
		{
			name:         "output is directory - mirror structure",
			inputPath:    "/pastes/subdir/file.html",
			output:       "/out",
			baseInputDir: "/pastes",
			want:         "/out/subdir/file.md",
		},
		{
			name:         "mirror structure with nested dirs",
			inputPath:    "/pastes/a/b/c/file.htm",
			output:       "/out",
			baseInputDir: "/pastes",
			want:         "/out/a/b/c/file.md",
		},
		{
			name:      "markdown source keeps base name",
			inputPath: "/pastes/notes.markdown",
			output:    "/out",
			want:      "/out/notes.md",
		},
		{
			name:      "stdin placeholder name",
			inputPath: stdinOutputName,
			output:    "/out",
			want:      "/out/paste.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolveOutputPath(tt.inputPath, tt.output, tt.baseInputDir)
			if got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLooksLikeMarkdownPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"doc.md", true},
		{"doc.markdown", true},
		{"/path/to/doc.md", true},
		{"doc.txt", false},
		{"doc.html", false},
		{"doc", false},
		{"", false},
		{".md", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got := looksLikeMarkdownPath(tt.input)
			if got != tt.want {
				t.Errorf("looksLikeMarkdownPath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateInputExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{
			name:    "valid .html extension",
			path:    "paste.html",
			wantErr: false,
		},
		{
			name:    "valid .htm extension",
			path:    "paste.htm",
			wantErr: false,
		},
		{
			name:    "valid .txt extension",
			path:    "paste.txt",
			wantErr: false,
		},
		{
			name:    "valid .md extension",
			path:    "paste.md",
			wantErr: false,
		},
		{
			name:    "valid .markdown extension",
			path:    "paste.markdown",
			wantErr: false,
		},
		{
			name:    "invalid .docx extension",
			path:    "paste.docx",
			wantErr: true,
		},
		{
			name:    "no extension",
			path:    "paste",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateInputExtension(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateInputExtension() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidExtension) {
				t.Errorf("error should wrap ErrInvalidExtension, got %v", err)
			}
		})
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		workers int
		wantErr bool
	}{
		{"zero means auto", 0, false},
		{"one worker", 1, false},
		{"max workers", maxWorkers, false},
		{"negative", -1, true},
		{"over the cap", maxWorkers + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateWorkers(tt.workers)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateWorkers(%d) error = %v, wantErr %v", tt.workers, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
				t.Errorf("error should wrap ErrInvalidWorkerCount, got %v", err)
			}
		})
	}
}

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	// Create temp directory structure
	tempDir := t.TempDir()

	files := map[string]string{
		"paste1.html":           "<h1>Paste 1</h1>",
		"paste2.htm":            "<h1>Paste 2</h1>",
		"notes.txt":             "plain notes",
		"subdir/paste3.html":    "<h1>Paste 3</h1>",
		"subdir/deep/paste4.md": "# Paste 4",
		"ignored.docx":          "ignored",
		"subdir/image.png":      "ignored",
	}

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0750); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}

	t.Run("stdin marker", func(t *testing.T) {
		t.Parallel()

		got, err := discoverFiles(stdinMarker, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("got %d files, want 1", len(got))
		}
		if got[0].InputPath != stdinMarker {
			t.Errorf("InputPath = %q, want %q", got[0].InputPath, stdinMarker)
		}
		if got[0].OutputPath != "" {
			t.Errorf("OutputPath = %q, want empty (stdout)", got[0].OutputPath)
		}
	})

	t.Run("stdin with output directory", func(t *testing.T) {
		t.Parallel()

		outputDir := filepath.Join(tempDir, "stdin-out")
		got, err := discoverFiles(stdinMarker, outputDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := filepath.Join(outputDir, "paste.md")
		if got[0].OutputPath != want {
			t.Errorf("OutputPath = %q, want %q", got[0].OutputPath, want)
		}
	})

	t.Run("single file", func(t *testing.T) {
		t.Parallel()

		inputPath := filepath.Join(tempDir, "paste1.html")
		got, err := discoverFiles(inputPath, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("got %d files, want 1", len(got))
		}
		if got[0].InputPath != inputPath {
			t.Errorf("InputPath = %q, want %q", got[0].InputPath, inputPath)
		}
		if got[0].OutputPath != "" {
			t.Errorf("OutputPath = %q, want empty (stdout)", got[0].OutputPath)
		}
	})

	t.Run("directory requires output", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles(tempDir, "")
		if !errors.Is(err, ErrNoOutputDir) {
			t.Errorf("error = %v, want ErrNoOutputDir", err)
		}
	})

	t.Run("directory recursive with output", func(t *testing.T) {
		t.Parallel()

		outputDir := filepath.Join(tempDir, "output")
		got, err := discoverFiles(tempDir, outputDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// paste1.html, paste2.htm, notes.txt, subdir/paste3.html,
		// subdir/deep/paste4.md; .docx and .png are skipped
		if len(got) != 5 {
			t.Errorf("got %d files, want 5", len(got))
		}
	})

	t.Run("directory mirrors structure", func(t *testing.T) {
		t.Parallel()

		outputDir := filepath.Join(tempDir, "mirror")
		got, err := discoverFiles(tempDir, outputDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		foundMirrored := false
		for _, f := range got {
			if filepath.Base(f.InputPath) == "paste3.html" {
				expectedOutput := filepath.Join(outputDir, "subdir", "paste3.md")
				if f.OutputPath != expectedOutput {
					t.Errorf("OutputPath = %q, want %q", f.OutputPath, expectedOutput)
				}
				foundMirrored = true
			}
		}
		if !foundMirrored {
			t.Error("did not find paste3.html in results")
		}
	})

	t.Run("invalid extension returns error", func(t *testing.T) {
		t.Parallel()

		inputPath := filepath.Join(tempDir, "ignored.docx")
		_, err := discoverFiles(inputPath, "")
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("error = %v, want ErrInvalidExtension", err)
		}
	})

	t.Run("nonexistent path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles(filepath.Join(tempDir, "missing.html"), "")
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})
}
