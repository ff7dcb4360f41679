package docvar

// Cursor addresses an insertion point inside a document: the block index,
// the inline child index within that block, and a rune offset into that
// inline node's text. Variable nodes are atomic — an offset inside one is
// treated as "after it".
type Cursor struct {
	Block  int
	Inline int
	Offset int
}

// InsertVariable inserts an atomic variable node at the cursor. The key is
// normalized first; if nothing usable remains the document is returned
// unchanged (placeholder typos must never corrupt the document). When the
// cursor splits a text run, the run is divided around the new node; variable
// nodes are never split.
//
// The system flag is resolved against the provider at insertion time.
func InsertVariable(doc *Node, cur Cursor, key string, provider KeyProvider) *Node {
	nk := NormalizeKey(key)
	if nk == "" || doc == nil {
		return doc
	}
	if cur.Block < 0 || cur.Block >= len(doc.Content) {
		return doc
	}
	block := doc.Content[cur.Block]
	node := VariableNode(nk, provider)

	if cur.Inline < 0 || cur.Inline >= len(block.Content) {
		block.Content = append(block.Content, node)
		return doc
	}

	target := block.Content[cur.Inline]
	at := cur.Inline
	var insert []*Node

	if target.Type == NodeText {
		runes := []rune(target.Text)
		off := cur.Offset
		if off < 0 {
			off = 0
		}
		if off > len(runes) {
			off = len(runes)
		}
		switch {
		case off == 0:
			insert = []*Node{node}
		case off == len(runes):
			at++
			insert = []*Node{node}
		default:
			// Split the run around the variable.
			before, after := string(runes[:off]), string(runes[off:])
			insert = []*Node{TextNode(before), node, TextNode(after)}
			block.Content = append(block.Content[:at], block.Content[at+1:]...)
		}
	} else {
		// Atomic target: insert after it.
		at++
		insert = []*Node{node}
	}

	block.Content = append(block.Content[:at], append(insert, block.Content[at:]...)...)
	return doc
}

// WrapSelectionAsVariable converts the selected text run (block/inline
// address) into a single atomic variable node, discarding the original text.
// If key is empty the run's own text is used as the key. A selection that is
// not a text run, or a key that normalizes to nothing, leaves the document
// unchanged.
func WrapSelectionAsVariable(doc *Node, block, inline int, key string, provider KeyProvider) *Node {
	if doc == nil || block < 0 || block >= len(doc.Content) {
		return doc
	}
	b := doc.Content[block]
	if inline < 0 || inline >= len(b.Content) {
		return doc
	}
	sel := b.Content[inline]
	if sel.Type != NodeText {
		return doc
	}
	if key == "" {
		key = sel.Text
	}
	nk := NormalizeKey(key)
	if nk == "" {
		return doc
	}
	b.Content[inline] = VariableNode(nk, provider)
	return doc
}
