package docvar

import (
	"fmt"
	"regexp"
)

// decoratedPattern matches the span element Decorate emits. Strip accepts any
// attribute order, but data-variable must stand as an attribute of its own:
// preceded by whitespace and followed by whitespace, `=` or the closing `>`.
// A span whose class or other attribute value merely contains the text
// "data-variable" is not a variable element.
var (
	decoratedPattern = regexp.MustCompile(`<span\s(?:[^>]*\s)?data-variable(?:[\s=>][^>]*)?>[^<]*</span>`)
	keyAttrPattern   = regexp.MustCompile(`\bdata-key="([^"]*)"`)
)

// Decorate replaces every `{{key}}` placeholder in html with a self-contained
// inline element carrying the normalized key and its live system flag, ready
// for the editor to parse into atomic variable nodes:
//
//	<span data-variable data-key="nif" data-system="true">{{nif}}</span>
//
// Placeholders whose content normalizes to nothing are dropped entirely
// rather than left as literal braces. Decorate never fails: malformed
// placeholder syntax simply does not match and stays inert.
func Decorate(html string, provider KeyProvider) string {
	return placeholderPattern.ReplaceAllStringFunc(html, func(match string) string {
		key := NormalizeKey(placeholderPattern.FindStringSubmatch(match)[1])
		if key == "" {
			return ""
		}
		return fmt.Sprintf(`<span data-variable data-key="%s" data-system="%t">{{%s}}</span>`,
			key, provider.IsSystem(key), key)
	})
}

// Strip is the inverse of Decorate: every decorated variable element is
// replaced with its literal `{{key}}` text. The system flag is discarded;
// it is always re-derived on the next Decorate. Elements without a usable
// data-key are dropped.
//
// For any html whose placeholder keys are already normalized,
// Strip(Decorate(html, p)) == html for every provider p.
func Strip(html string) string {
	return decoratedPattern.ReplaceAllStringFunc(html, func(match string) string {
		m := keyAttrPattern.FindStringSubmatch(match)
		if m == nil {
			return ""
		}
		key := NormalizeKey(m[1])
		if key == "" {
			return ""
		}
		return "{{" + key + "}}"
	})
}
