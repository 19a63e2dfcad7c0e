package pipeline

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LineBreakMark is the text payload of the line-break marker element. It
// uses a Unicode Private Use Area character, guaranteed to not conflict
// with any standard character, and passes through HTML-to-Markdown
// conversion unchanged. The Markdown rewriter restores it to a newline at
// the end of its line policy.
const LineBreakMark = "" // U+E000: Private Use Area

// PreserveAttr marks an element as exempt from empty-element pruning.
// The line-break marker carries it; user HTML may carry it too.
const PreserveAttr = "data-preserve"

// voidTags are elements that carry meaning without text content and are
// never pruned.
var voidTags = map[string]struct{}{
	"img":    {},
	"hr":     {},
	"br":     {},
	"input":  {},
	"iframe": {},
}

// HTMLNormalizer cleans pasted HTML before conversion to Markdown.
type HTMLNormalizer struct {
	logger *slog.Logger
}

// NewHTMLNormalizer creates a normalizer. A nil logger falls back to
// slog.Default.
func NewHTMLNormalizer(logger *slog.Logger) *HTMLNormalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTMLNormalizer{logger: logger}
}

// Normalize applies, in order: the configured HTML regex substitutions, a
// lenient HTML5 parse, the line-break policy, and empty-element pruning.
// It returns the serialized body content and whether anything changed.
// Serialization differences alone (entity encoding, attribute quoting) do
// not count as changes.
func (n *HTMLNormalizer) Normalize(rawHTML string, rules *Rules) (string, bool) {
	content, changed := applyReplacements(rawHTML, rules.HTMLReplacements, n.logger, "html")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		// The HTML5 parser is lenient; a reader over a string does not
		// fail in practice. Keep the substituted text rather than losing
		// the paste.
		n.logger.Warn("html parse failed, skipping tree normalization", "error", err)
		return content, changed
	}

	if applyLineBreakPolicy(doc, rules.StripLineBreaks) > 0 {
		changed = true
	}
	if rules.RemoveEmptyElements && pruneEmptyElements(doc) > 0 {
		changed = true
	}

	body, err := doc.Find("body").Html()
	if err != nil {
		n.logger.Warn("html serialization failed, keeping pre-parse content", "error", err)
		return content, changed
	}
	return body, changed
}

// applyLineBreakPolicy deletes every <br> when strip is set, otherwise
// replaces each with a marker element. Returns the number of nodes
// affected.
func applyLineBreakPolicy(doc *goquery.Document, strip bool) int {
	breaks := doc.Find("br")
	count := breaks.Length()
	if count == 0 {
		return 0
	}
	if strip {
		breaks.Remove()
		return count
	}
	breaks.Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithNodes(newLineBreakMarker())
	})
	return count
}

// newLineBreakMarker builds <span data-preserve="true"></span>. The
// element is constructed from node primitives, never by string
// concatenation into markup. The payload keeps the span non-empty so
// pruning never removes it even without the attribute check.
func newLineBreakMarker() *html.Node {
	span := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Span,
		Data:     "span",
		Attr:     []html.Attribute{{Key: PreserveAttr, Val: "true"}},
	}
	span.AppendChild(&html.Node{
		Type: html.TextNode,
		Data: LineBreakMark,
	})
	return span
}

// pruneEmptyElements removes elements that are not void, not preserved,
// and have neither non-whitespace text nor child elements. Removing a
// leaf may empty its parent, so passes repeat until a full pass removes
// nothing. Returns the total number of elements removed.
func pruneEmptyElements(doc *goquery.Document) int {
	total := 0
	for {
		removed := 0
		doc.Find("body *").Each(func(_ int, s *goquery.Selection) {
			if _, ok := voidTags[goquery.NodeName(s)]; ok {
				return
			}
			if _, ok := s.Attr(PreserveAttr); ok {
				return
			}
			if strings.TrimSpace(s.Text()) != "" {
				return
			}
			if s.Children().Length() > 0 {
				return
			}
			s.Remove()
			removed++
		})
		if removed == 0 {
			return total
		}
		total += removed
	}
}
