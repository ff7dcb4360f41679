package docvar

// Node types used by the structured document tree. The tree is deliberately
// small: block containers, text runs, and the atomic variable leaf. Anything
// richer (marks, headings, tables) is carried opaquely by the editor and
// never crosses into this package.
const (
	NodeDoc       = "doc"
	NodeParagraph = "paragraph"
	NodeText      = "text"
	NodeVariable  = "variable"
)

// VariableAttrs are the attributes carried by a variable node. System is
// re-derived from the live KeyProvider on every decorate/extract pass and is
// never trusted from stored content.
type VariableAttrs struct {
	Key    string `json:"key"`
	System bool   `json:"system"`
}

// Node is one node of a structured document tree.
//
// A variable node is atomic: it has no children, its Text is empty, and
// editing operations treat it as a single indivisible unit.
type Node struct {
	Type    string         `json:"type"`
	Text    string         `json:"text,omitempty"`
	Attrs   *VariableAttrs `json:"attrs,omitempty"`
	Content []*Node        `json:"content,omitempty"`
}

// NewDoc returns an empty document with a single empty paragraph.
func NewDoc() *Node {
	return &Node{Type: NodeDoc, Content: []*Node{{Type: NodeParagraph}}}
}

// TextNode returns a text run node.
func TextNode(text string) *Node {
	return &Node{Type: NodeText, Text: text}
}

// VariableNode returns an atomic variable node for an already normalized key,
// resolving the system flag against the provider.
func VariableNode(key string, provider KeyProvider) *Node {
	return &Node{Type: NodeVariable, Attrs: &VariableAttrs{Key: key, System: provider.IsSystem(key)}}
}

// Variable is one distinct key found in a document, with its occurrence
// count. It exists only transiently as the result of an extraction pass.
type Variable struct {
	Key    string `json:"key"`
	System bool   `json:"system"`
	Count  int    `json:"count"`
}

// ExtractVariables walks the tree depth-first and returns one Variable per
// distinct key, ordered by first occurrence. The System flag reflects the
// provider at extraction time, not whatever the stored attrs claim.
func ExtractVariables(doc *Node, provider KeyProvider) []Variable {
	var order []string
	counts := make(map[string]int)

	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.Type == NodeVariable && n.Attrs != nil {
			key := NormalizeKey(n.Attrs.Key)
			if key != "" {
				if counts[key] == 0 {
					order = append(order, key)
				}
				counts[key]++
			}
		}
		for _, child := range n.Content {
			walk(child)
		}
	}
	walk(doc)

	vars := make([]Variable, 0, len(order))
	for _, key := range order {
		vars = append(vars, Variable{Key: key, System: provider.IsSystem(key), Count: counts[key]})
	}
	return vars
}
