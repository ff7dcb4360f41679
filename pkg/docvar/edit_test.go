package docvar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func para(nodes ...*Node) *Node {
	return &Node{Type: NodeParagraph, Content: nodes}
}

func docOf(blocks ...*Node) *Node {
	return &Node{Type: NodeDoc, Content: blocks}
}

func TestInsertVariable(t *testing.T) {
	provider := NewStaticKeys("nif")

	t.Run("splits text run at offset", func(t *testing.T) {
		doc := docOf(para(TextNode("Hello world")))
		InsertVariable(doc, Cursor{Block: 0, Inline: 0, Offset: 6}, "nif", provider)

		p := doc.Content[0]
		require.Len(t, p.Content, 3)
		assert.Equal(t, "Hello ", p.Content[0].Text)
		assert.Equal(t, NodeVariable, p.Content[1].Type)
		assert.Equal(t, "nif", p.Content[1].Attrs.Key)
		assert.True(t, p.Content[1].Attrs.System)
		assert.Equal(t, "world", p.Content[2].Text)
	})

	t.Run("offset zero inserts before run", func(t *testing.T) {
		doc := docOf(para(TextNode("abc")))
		InsertVariable(doc, Cursor{Block: 0, Inline: 0, Offset: 0}, "k", provider)
		p := doc.Content[0]
		require.Len(t, p.Content, 2)
		assert.Equal(t, NodeVariable, p.Content[0].Type)
		assert.Equal(t, "abc", p.Content[1].Text)
	})

	t.Run("offset at end inserts after run", func(t *testing.T) {
		doc := docOf(para(TextNode("abc")))
		InsertVariable(doc, Cursor{Block: 0, Inline: 0, Offset: 3}, "k", provider)
		p := doc.Content[0]
		require.Len(t, p.Content, 2)
		assert.Equal(t, "abc", p.Content[0].Text)
		assert.Equal(t, NodeVariable, p.Content[1].Type)
	})

	t.Run("variable nodes are never split", func(t *testing.T) {
		doc := docOf(para(VariableNode("nif", provider)))
		InsertVariable(doc, Cursor{Block: 0, Inline: 0, Offset: 1}, "other", provider)
		p := doc.Content[0]
		require.Len(t, p.Content, 2)
		assert.Equal(t, "nif", p.Content[0].Attrs.Key)
		assert.Equal(t, "other", p.Content[1].Attrs.Key)
	})

	t.Run("cursor past end appends", func(t *testing.T) {
		doc := docOf(para(TextNode("a")))
		InsertVariable(doc, Cursor{Block: 0, Inline: 5}, "k", provider)
		p := doc.Content[0]
		require.Len(t, p.Content, 2)
		assert.Equal(t, NodeVariable, p.Content[1].Type)
	})

	t.Run("unusable key is a no-op", func(t *testing.T) {
		doc := docOf(para(TextNode("a")))
		InsertVariable(doc, Cursor{Block: 0, Inline: 0}, "  !!!  ", provider)
		require.Len(t, doc.Content[0].Content, 1)
	})

	t.Run("system flag resolved at insertion time", func(t *testing.T) {
		doc := docOf(para())
		InsertVariable(doc, Cursor{Block: 0}, "custom", provider)
		assert.False(t, doc.Content[0].Content[0].Attrs.System)
	})
}

func TestWrapSelectionAsVariable(t *testing.T) {
	provider := NewStaticKeys("nif")

	t.Run("replaces text run with variable", func(t *testing.T) {
		doc := docOf(para(TextNode("before"), TextNode("NIF"), TextNode("after")))
		WrapSelectionAsVariable(doc, 0, 1, "", provider)

		p := doc.Content[0]
		require.Len(t, p.Content, 3)
		assert.Equal(t, NodeVariable, p.Content[1].Type)
		assert.Equal(t, "nif", p.Content[1].Attrs.Key)
		assert.True(t, p.Content[1].Attrs.System)
	})

	t.Run("explicit key overrides selection text", func(t *testing.T) {
		doc := docOf(para(TextNode("whatever")))
		WrapSelectionAsVariable(doc, 0, 0, "Client Name", provider)
		assert.Equal(t, "client_name", doc.Content[0].Content[0].Attrs.Key)
	})

	t.Run("silently ignores unusable key", func(t *testing.T) {
		doc := docOf(para(TextNode("***")))
		WrapSelectionAsVariable(doc, 0, 0, "", provider)
		assert.Equal(t, NodeText, doc.Content[0].Content[0].Type)
	})

	t.Run("non-text selection is a no-op", func(t *testing.T) {
		doc := docOf(para(VariableNode("nif", provider)))
		WrapSelectionAsVariable(doc, 0, 0, "other", provider)
		assert.Equal(t, "nif", doc.Content[0].Content[0].Attrs.Key)
	})

	t.Run("out of range is a no-op", func(t *testing.T) {
		doc := docOf(para(TextNode("a")))
		WrapSelectionAsVariable(doc, 3, 0, "k", provider)
		WrapSelectionAsVariable(doc, 0, 9, "k", provider)
		assert.Equal(t, NodeText, doc.Content[0].Content[0].Type)
	})
}

func TestExtractVariables(t *testing.T) {
	provider := NewStaticKeys("nif")

	t.Run("counts and first occurrence order", func(t *testing.T) {
		doc := docOf(
			para(VariableNode("client_name", provider), TextNode(" / "), VariableNode("nif", provider)),
			para(VariableNode("client_name", provider)),
		)
		vars := ExtractVariables(doc, provider)
		require.Len(t, vars, 2)
		assert.Equal(t, Variable{Key: "client_name", System: false, Count: 2}, vars[0])
		assert.Equal(t, Variable{Key: "nif", System: true, Count: 1}, vars[1])
	})

	t.Run("system resolved at extraction time", func(t *testing.T) {
		// Inserted while "nif" was not a system key; extracted after it
		// was promoted.
		doc := docOf(para())
		InsertVariable(doc, Cursor{Block: 0}, "nif", NewStaticKeys())
		vars := ExtractVariables(doc, NewStaticKeys("nif"))
		require.Len(t, vars, 1)
		assert.True(t, vars[0].System)
	})

	t.Run("empty doc", func(t *testing.T) {
		assert.Empty(t, ExtractVariables(NewDoc(), provider))
	})
}
