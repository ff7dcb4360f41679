package docvar

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/bytedance/sonic"
)

var (
	blockBreakPattern = regexp.MustCompile(`(?i)</p>|<br\s*/?>`)
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
)

// NormalizeContent accepts document content in either stored form — a JSON
// node tree or an HTML string — and returns the canonical tree. System flags
// on variable nodes are always re-resolved against the provider; whatever the
// stored content claims is ignored. Variable nodes whose key normalizes to
// nothing are dropped.
//
// Empty input yields an empty document rather than an error.
func NormalizeContent(raw []byte, provider KeyProvider) (*Node, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return NewDoc(), nil
	}

	if strings.HasPrefix(trimmed, "{") && sonic.ValidString(trimmed) {
		var doc Node
		if err := sonic.UnmarshalString(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("content is neither valid HTML nor a document tree: %w", err)
		}
		if doc.Type != NodeDoc {
			return nil, fmt.Errorf("unexpected root node type %q", doc.Type)
		}
		normalizeTree(&doc, provider)
		return &doc, nil
	}

	return ParseHTML(trimmed, provider), nil
}

// normalizeTree rewrites variable attrs in place: keys are normalized and
// System is resolved live. Variable nodes with no usable key degrade to
// nothing (removed from their parent).
func normalizeTree(n *Node, provider KeyProvider) {
	kept := n.Content[:0]
	for _, child := range n.Content {
		if child.Type == NodeVariable {
			if child.Attrs == nil {
				continue
			}
			key := NormalizeKey(child.Attrs.Key)
			if key == "" {
				continue
			}
			child.Attrs = &VariableAttrs{Key: key, System: provider.IsSystem(key)}
			child.Text = ""
			child.Content = nil
		} else {
			normalizeTree(child, provider)
		}
		kept = append(kept, child)
	}
	n.Content = kept
}

// ParseHTML converts an HTML string into the canonical tree. Decorated
// variable spans and literal `{{key}}` placeholders both become atomic
// variable nodes; all other markup is reduced to paragraph breaks and plain
// text. This is intentionally not a general HTML parser: the storage
// contract only promises paragraphs, text and variables.
func ParseHTML(htmlContent string, provider KeyProvider) *Node {
	// Collapse decorated spans first so a single tokenizer pass below sees
	// only literal placeholders.
	flat := Strip(htmlContent)

	doc := &Node{Type: NodeDoc}
	for _, block := range blockBreakPattern.Split(flat, -1) {
		text := html.UnescapeString(tagPattern.ReplaceAllString(block, ""))
		if strings.TrimSpace(text) == "" {
			continue
		}
		doc.Content = append(doc.Content, parseParagraph(text, provider))
	}
	if len(doc.Content) == 0 {
		doc.Content = []*Node{{Type: NodeParagraph}}
	}
	return doc
}

// parseParagraph tokenizes one flat text block into text runs and variable
// nodes. Placeholders that normalize to nothing are dropped, matching
// Decorate's behavior.
func parseParagraph(text string, provider KeyProvider) *Node {
	p := &Node{Type: NodeParagraph}
	last := 0
	for _, loc := range placeholderPattern.FindAllStringSubmatchIndex(text, -1) {
		if text[last:loc[0]] != "" {
			p.Content = append(p.Content, TextNode(text[last:loc[0]]))
		}
		if key := NormalizeKey(text[loc[2]:loc[3]]); key != "" {
			p.Content = append(p.Content, VariableNode(key, provider))
		}
		last = loc[1]
	}
	if text[last:] != "" {
		p.Content = append(p.Content, TextNode(text[last:]))
	}
	return p
}

// Render serializes the tree to the storage form of the content contract:
// HTML with every variable re-expanded to its literal `{{key}}` text, never
// the decorated element form.
func Render(doc *Node) string {
	if doc == nil {
		return ""
	}
	var b strings.Builder
	for _, block := range doc.Content {
		b.WriteString("<p>")
		renderInline(&b, block)
		b.WriteString("</p>")
	}
	return b.String()
}

func renderInline(b *strings.Builder, n *Node) {
	for _, child := range n.Content {
		switch child.Type {
		case NodeText:
			b.WriteString(html.EscapeString(child.Text))
		case NodeVariable:
			if child.Attrs != nil && child.Attrs.Key != "" {
				b.WriteString("{{" + child.Attrs.Key + "}}")
			}
		default:
			renderInline(b, child)
		}
	}
}
