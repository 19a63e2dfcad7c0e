// Package paste2md turns rich-text pastes into clean Markdown adjusted
// to the document they land in.
//
// # Quick Start
//
// Create a service and transform a paste:
//
//	svc, err := paste2md.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := svc.Transform(ctx, paste2md.Input{
//	    HTML: `<h1>Notes</h1><p>Copied from a&nbsp;browser</p>`,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Markdown)
//
// Result.Changed reports whether any stage altered the paste, which lets
// callers skip a no-op buffer edit.
//
// # Transformation Pipeline
//
// HTML input goes through these stages:
//
//  1. HTML normalization (user regex cleanup, line-break policy,
//     empty-element pruning)
//  2. HTML to Markdown conversion via html-to-markdown
//  3. Markdown rewriting (user regex cleanup, heading adjustment or
//     escaping, line policy)
//
// Plain-text input (Input.Text) skips straight to stage 3.
//
// # Heading Adjustment
//
// Config.MaxHeadingLevel caps how large pasted headings may render. With
// Config.CascadeHeadingLevels the first adjusted heading fixes a delta
// that shifts every following heading, preserving the paste's own
// hierarchy. Config.ContextualCascade derives the cap from the heading
// the paste lands under instead:
//
//	lines := strings.Split(editorBuffer, "\n")
//	level := paste2md.HeadingContext(lines, cursorLine)
//	result, err := svc.Transform(ctx, paste2md.Input{
//	    HTML:         clipboard,
//	    ContextLevel: level,
//	})
//
// Callers pasting into a fenced code block usually want the raw text
// instead; InsideFence reports that condition:
//
//	if paste2md.InsideFence(lines, cursorLine) {
//	    insert(clipboard) // leave code untouched
//	}
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc, err := paste2md.New(
//	    paste2md.WithConfig(paste2md.Config{
//	        MaxHeadingLevel:      2,
//	        CascadeHeadingLevels: true,
//	        RemoveEmptyElements:  true,
//	        SingleSpaced:         true,
//	    }),
//	    paste2md.WithLogger(logger),
//	)
//
// The service is stateless and safe for concurrent use; one instance can
// serve every paste in the process.
package paste2md
