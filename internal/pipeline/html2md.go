package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// ErrMarkdownConversion indicates HTML to Markdown conversion failed.
var ErrMarkdownConversion = errors.New("markdown conversion failed")

// MarkdownConverter abstracts HTML to Markdown conversion.
type MarkdownConverter interface {
	ToMarkdown(ctx context.Context, content string) (string, error)
}

// CommonmarkConverter converts HTML to Markdown using html-to-markdown (pure Go).
type CommonmarkConverter struct {
	conv *converter.Converter
}

// NewCommonmarkConverter creates a CommonmarkConverter with table support.
// The underlying converter is safe for concurrent use, so one instance
// serves any number of goroutines.
func NewCommonmarkConverter() *CommonmarkConverter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(
				// Minimal padding: one space per cell instead of aligning
				// columns to equal width. Pasted tables stay compact.
				table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
			),
		),
	)
	return &CommonmarkConverter{conv: conv}
}

// ToMarkdown converts HTML content to Markdown.
// Supports context cancellation via goroutine + select pattern since
// html-to-markdown doesn't natively support context.
func (c *CommonmarkConverter) ToMarkdown(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		markdown string
		err      error
	}

	done := make(chan result, 1)

	go func() {
		md, err := c.conv.ConvertString(content)
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrMarkdownConversion, err)}
			return
		}
		done <- result{markdown: md}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.markdown, r.err
	}
}
