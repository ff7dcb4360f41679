package docvar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNormalizeContent(t *testing.T) {
	provider := NewStaticKeys("nif")

	t.Run("empty input yields empty doc", func(t *testing.T) {
		doc, err := NormalizeContent(nil, provider)
		require.NoError(t, err)
		require.Equal(t, NodeDoc, doc.Type)
		require.Len(t, doc.Content, 1)
		assert.Equal(t, NodeParagraph, doc.Content[0].Type)
	})

	t.Run("accepts JSON tree", func(t *testing.T) {
		raw := `{"type":"doc","content":[{"type":"paragraph","content":[
			{"type":"text","text":"NIF: "},
			{"type":"variable","attrs":{"key":"nif","system":false}}
		]}]}`
		doc, err := NormalizeContent([]byte(raw), provider)
		require.NoError(t, err)
		vars := ExtractVariables(doc, provider)
		require.Len(t, vars, 1)
		// Stored system=false is overridden by the live provider.
		assert.True(t, vars[0].System)
	})

	t.Run("stored system flag is not trusted", func(t *testing.T) {
		raw := `{"type":"doc","content":[{"type":"paragraph","content":[
			{"type":"variable","attrs":{"key":"custom_field","system":true}}
		]}]}`
		doc, err := NormalizeContent([]byte(raw), provider)
		require.NoError(t, err)
		assert.False(t, doc.Content[0].Content[0].Attrs.System)
	})

	t.Run("variable with unusable key dropped", func(t *testing.T) {
		raw := `{"type":"doc","content":[{"type":"paragraph","content":[
			{"type":"variable","attrs":{"key":"***"}},
			{"type":"text","text":"kept"}
		]}]}`
		doc, err := NormalizeContent([]byte(raw), provider)
		require.NoError(t, err)
		require.Len(t, doc.Content[0].Content, 1)
		assert.Equal(t, "kept", doc.Content[0].Content[0].Text)
	})

	t.Run("rejects non-doc root", func(t *testing.T) {
		_, err := NormalizeContent([]byte(`{"type":"paragraph"}`), provider)
		require.Error(t, err)
	})

	t.Run("accepts HTML", func(t *testing.T) {
		doc, err := NormalizeContent([]byte("<p>Hello {{nif}}</p><p>bye</p>"), provider)
		require.NoError(t, err)
		require.Len(t, doc.Content, 2)
		assert.Equal(t, "<p>Hello {{nif}}</p><p>bye</p>", Render(doc))
	})
}

func TestParseHTML(t *testing.T) {
	provider := NewStaticKeys("nif")

	t.Run("decorated spans become variable nodes", func(t *testing.T) {
		html := Decorate("<p>NIF: {{nif}}</p>", provider)
		doc := ParseHTML(html, provider)
		require.Len(t, doc.Content, 1)
		p := doc.Content[0]
		require.Len(t, p.Content, 2)
		assert.Equal(t, NodeText, p.Content[0].Type)
		assert.Equal(t, "NIF: ", p.Content[0].Text)
		assert.Equal(t, NodeVariable, p.Content[1].Type)
		assert.Equal(t, "nif", p.Content[1].Attrs.Key)
		assert.True(t, p.Content[1].Attrs.System)
	})

	t.Run("br splits blocks", func(t *testing.T) {
		doc := ParseHTML("one<br>two<br/>three", provider)
		require.Len(t, doc.Content, 3)
	})

	t.Run("entities unescaped", func(t *testing.T) {
		doc := ParseHTML("<p>a &amp; b</p>", provider)
		assert.Equal(t, "a & b", doc.Content[0].Content[0].Text)
	})
}

func TestRender_ParseHTML_RoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		provider := NewStaticKeys(rapid.SliceOfN(rapid.StringMatching(`[a-z][a-z0-9_]{0,8}`), 0, 3).Draw(t, "systemKeys")...)

		numBlocks := rapid.IntRange(1, 4).Draw(t, "blocks")
		doc := &Node{Type: NodeDoc}
		for i := 0; i < numBlocks; i++ {
			p := &Node{Type: NodeParagraph}
			numInline := rapid.IntRange(1, 5).Draw(t, "inline")
			for j := 0; j < numInline; j++ {
				if rapid.Bool().Draw(t, "isVar") {
					key := rapid.StringMatching(`[a-z][a-z0-9_-]{0,10}`).Draw(t, "key")
					p.Content = append(p.Content, VariableNode(key, provider))
				} else {
					text := rapid.StringMatching(`[A-Za-z0-9][A-Za-z0-9 .,]{0,11}`).Draw(t, "text")
					p.Content = append(p.Content, TextNode(text))
				}
			}
			doc.Content = append(doc.Content, p)
		}

		// Rendering and reparsing must preserve the rendered form: the
		// flat representation is the fixed point of the round trip.
		once := Render(doc)
		reparsed := ParseHTML(once, provider)
		if twice := Render(reparsed); twice != once {
			t.Fatalf("render round trip broke:\n once: %q\ntwice: %q", once, twice)
		}

		// Variable extraction agrees between the original and reparsed tree.
		a := ExtractVariables(doc, provider)
		b := ExtractVariables(reparsed, provider)
		if len(a) != len(b) {
			t.Fatalf("variable count diverged: %d vs %d", len(a), len(b))
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("variable %d diverged: %+v vs %+v", i, a[i], b[i])
			}
		}
	})
}
