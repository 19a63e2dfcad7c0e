// Package pipeline implements the paste-to-Markdown transformation pipeline.
//
// This package handles the normalization, conversion, and rewriting stages:
//   - HTML normalization (regex cleanup, line-break policy, empty-element pruning)
//   - HTML to Markdown conversion via html-to-markdown
//   - Markdown rewriting (regex cleanup, heading adjustment, escaping, line policy)
//   - Destination-document inspection (heading context, fence detection)
//   - Markdown to HTML preview rendering via Goldmark
//
// Input handling and configuration live in the root paste2md package. This
// separation keeps the pipeline focused on text transformation, while the
// root package handles validation, option plumbing, and the public API.
package pipeline
