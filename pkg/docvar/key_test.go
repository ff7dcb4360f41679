package docvar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "NIF", "nif"},
		{"trim", "  nif  ", "nif"},
		{"spaces become underscore", "Client Name", "client_name"},
		{"whitespace run collapses", "client \t name", "client_name"},
		{"diacritics folded", "Situação", "situacao"},
		{"portuguese address", "Morada do Imóvel", "morada_do_imovel"},
		{"hyphen kept", "co-owner", "co-owner"},
		{"underscore kept", "client_name", "client_name"},
		{"digits kept", "owner2", "owner2"},
		{"punctuation dropped", "client's name", "clients_name"},
		{"symbols dropped", "price(€)", "price"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
		{"only whitespace", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeKey(tt.in))
		})
	}
}

func TestNormalizeKey_Idempotent_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.String().Draw(t, "raw")
		once := NormalizeKey(raw)
		if twice := NormalizeKey(once); twice != once {
			t.Fatalf("not idempotent: %q -> %q -> %q", raw, once, twice)
		}
	})
}

func TestNormalizeKey_OutputAlphabet_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		key := NormalizeKey(rapid.String().Draw(t, "raw"))
		for _, r := range key {
			valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-'
			if !valid {
				t.Fatalf("normalized key %q contains invalid rune %q", key, r)
			}
		}
	})
}

func TestExtractKeys_More(t *testing.T) {
	t.Run("distinct keys in first occurrence order", func(t *testing.T) {
		keys := ExtractKeys("Dear {{Client Name}}, ref {{process_ref}}, regards {{client name}}")
		assert.Equal(t, []string{"client_name", "process_ref"}, keys)
	})

	t.Run("whitespace tolerant inside braces", func(t *testing.T) {
		assert.Equal(t, []string{"nif"}, ExtractKeys("your NIF is {{ nif }}."))
	})

	t.Run("empty placeholder ignored", func(t *testing.T) {
		assert.Empty(t, ExtractKeys("hello {{}} and {{ !!! }} world"))
	})

	t.Run("unbalanced braces are inert", func(t *testing.T) {
		assert.Empty(t, ExtractKeys("hello {{oops and }closed{ alone"))
	})

	t.Run("no placeholders", func(t *testing.T) {
		assert.Empty(t, ExtractKeys("plain text"))
	})
}
