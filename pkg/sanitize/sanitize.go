package sanitize

import "strings"

// MaxFieldLength caps every text field before it is forwarded anywhere.
const MaxFieldLength = 10000

var angleBrackets = strings.NewReplacer("<", "", ">", "")

// Clean returns a copy of s that is safe to forward to the relay: angle
// brackets are stripped, the value is capped at MaxFieldLength characters,
// and surrounding whitespace is removed. Clean is pure and idempotent;
// running it twice yields the same output.
func Clean(s string) string {
	s = angleBrackets.Replace(s)
	if r := []rune(s); len(r) > MaxFieldLength {
		s = string(r[:MaxFieldLength])
	}
	return strings.TrimSpace(s)
}

// CleanAll applies Clean to every value of m, returning a new map.
func CleanAll(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = Clean(v)
	}
	return out
}
