package docvar

import "regexp"

// placeholderPattern matches `{{ key }}` placeholders. Whitespace inside the
// braces is tolerated; nested or unbalanced braces are not matched and are
// left alone as inert text.
var placeholderPattern = regexp.MustCompile(`\{\{([^{}]*)\}\}`)

// ExtractKeys scans flat text (or HTML) for `{{key}}` placeholders and
// returns the distinct normalized keys in first-occurrence order. Matches
// whose content normalizes to the empty string are ignored.
//
// This is the entry point for content that is stored as plain HTML rather
// than a node tree, e.g. the output of the docx import converter.
func ExtractKeys(text string) []string {
	var keys []string
	seen := make(map[string]struct{})
	for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		key := NormalizeKey(m[1])
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

// HasPlaceholders reports whether text contains at least one placeholder
// with a usable key.
func HasPlaceholders(text string) bool {
	return len(ExtractKeys(text)) > 0
}
