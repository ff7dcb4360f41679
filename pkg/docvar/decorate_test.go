package docvar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDecorate(t *testing.T) {
	provider := NewStaticKeys("nif", "client_name")

	t.Run("system and custom keys", func(t *testing.T) {
		got := Decorate("Hello {{client_name}}, ref {{process_ref}}", provider)
		assert.Equal(t,
			`Hello <span data-variable data-key="client_name" data-system="true">{{client_name}}</span>, `+
				`ref <span data-variable data-key="process_ref" data-system="false">{{process_ref}}</span>`,
			got)
	})

	t.Run("key is normalized in output", func(t *testing.T) {
		got := Decorate("{{ Client Name }}", provider)
		assert.Contains(t, got, `data-key="client_name"`)
		assert.Contains(t, got, `>{{client_name}}</span>`)
	})

	t.Run("unusable placeholder dropped", func(t *testing.T) {
		assert.Equal(t, "before after", Decorate("before {{ !!! }}after", provider))
	})

	t.Run("malformed syntax left alone", func(t *testing.T) {
		in := "a {{unclosed and }stray{ braces"
		assert.Equal(t, in, Decorate(in, provider))
	})
}

func TestStrip(t *testing.T) {
	provider := NewStaticKeys("nif")

	t.Run("inverse of decorate", func(t *testing.T) {
		in := "Hello {{client_name}}, your NIF is {{nif}}."
		assert.Equal(t, in, Strip(Decorate(in, provider)))
	})

	t.Run("attribute order does not matter", func(t *testing.T) {
		got := Strip(`x <span data-system="true" data-key="nif" data-variable>{{nif}}</span> y`)
		assert.Equal(t, "x {{nif}} y", got)
	})

	t.Run("system flag is discarded", func(t *testing.T) {
		// A stale stored "system" claim does not survive a strip/decorate
		// round: the flag is re-derived from the live provider.
		stale := `<span data-variable data-key="nif" data-system="true">{{nif}}</span>`
		redecorated := Decorate(Strip(stale), NewStaticKeys())
		assert.Contains(t, redecorated, `data-system="false"`)
	})

	t.Run("span without key dropped", func(t *testing.T) {
		assert.Equal(t, "a  b", Strip(`a <span data-variable>broken</span> b`))
	})

	t.Run("unrelated spans untouched", func(t *testing.T) {
		in := `a <span class="bold">text</span> b`
		assert.Equal(t, in, Strip(in))
	})

	t.Run("attribute value containing data-variable is not a variable", func(t *testing.T) {
		in := `a <span class="data-variable">x</span> b`
		assert.Equal(t, in, Strip(in))
	})

	t.Run("bare marker attribute still matches", func(t *testing.T) {
		assert.Equal(t, "{{nif}}", Strip(`<span data-variable data-key="nif">{{nif}}</span>`))
	})
}

// genPlaceholderText draws text mixing plain segments with well-formed
// placeholders whose keys are already normalized.
func genPlaceholderText() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		n := rapid.IntRange(0, 6).Draw(t, "segments")
		var b strings.Builder
		for i := 0; i < n; i++ {
			if rapid.Bool().Draw(t, "isVar") {
				key := rapid.StringMatching(`[a-z][a-z0-9_-]{0,12}`).Draw(t, "key")
				b.WriteString("{{" + key + "}}")
			} else {
				b.WriteString(rapid.StringMatching(`[A-Za-z0-9 .,:;]{0,16}`).Draw(t, "text"))
			}
		}
		return b.String()
	})
}

func TestStripDecorate_RoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := genPlaceholderText().Draw(t, "text")
		systemKeys := rapid.SliceOfN(rapid.StringMatching(`[a-z][a-z0-9_]{0,8}`), 0, 4).Draw(t, "systemKeys")
		provider := NewStaticKeys(systemKeys...)

		if got := Strip(Decorate(text, provider)); got != text {
			t.Fatalf("round trip broke:\n in: %q\nout: %q", text, got)
		}
	})
}

func TestDecorate_ExtractVariables_EndToEnd(t *testing.T) {
	provider := NewStaticKeys("nif")

	html := Decorate("Hello {{Client Name}}, your NIF is {{ nif }}.", provider)
	doc := ParseHTML(html, provider)
	vars := ExtractVariables(doc, provider)

	require.Len(t, vars, 2)
	assert.Equal(t, Variable{Key: "client_name", System: false, Count: 1}, vars[0])
	assert.Equal(t, Variable{Key: "nif", System: true, Count: 1}, vars[1])
}
