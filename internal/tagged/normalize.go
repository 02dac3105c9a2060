package tagged

import (
	"strings"
	"unicode"
)

// Normalize maps a camelCase wire key to the snake_case identifier used in
// field declarations. Every upper-case rune after the first one gets its own
// separator, so runs such as "SHA1" become "s_h_a1".
func Normalize(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for i, r := range key {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
