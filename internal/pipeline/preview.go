package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrPreviewRender indicates preview rendering failed.
var ErrPreviewRender = errors.New("preview rendering failed")

// previewTemplate wraps Goldmark's fragment output in a complete HTML5
// document so the preview opens directly in a browser.
const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Markdown preview</title>
</head>
<body>
%s
</body>
</html>`

// PreviewRenderer abstracts Markdown to HTML preview rendering.
type PreviewRenderer interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkRenderer renders Markdown to HTML using goldmark (pure Go).
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// NewGoldmarkRenderer creates a GoldmarkRenderer with GFM extensions and
// syntax highlighting.
func NewGoldmarkRenderer() *GoldmarkRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // Inline styles keep the preview standalone
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Treat newlines as <br>, matching pasted intent
			html.WithXHTML(),     // Self-closing tags
			// Note: WithUnsafe() intentionally NOT used. Raw HTML left in
			// the Markdown is dropped rather than rendered.
		),
	)
	return &GoldmarkRenderer{md: md}
}

// ToHTML renders Markdown content to a standalone HTML5 document.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (g *GoldmarkRenderer) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := g.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrPreviewRender, err)}
			return
		}
		done <- result{html: fmt.Sprintf(previewTemplate, buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
