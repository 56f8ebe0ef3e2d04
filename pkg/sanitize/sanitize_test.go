package sanitize_test

import (
	"strings"
	"testing"

	"go-forms-gateway/pkg/sanitize"

	"github.com/stretchr/testify/assert"
)

func TestCleanStripsAngleBrackets(t *testing.T) {
	out := sanitize.Clean(`<script>alert("x")</script>`)
	assert.NotContains(t, out, "<")
	assert.NotContains(t, out, ">")
	assert.Equal(t, `scriptalert("x")/script`, out)
}

func TestCleanTrimsWhitespace(t *testing.T) {
	assert.Equal(t, "Jan de Vries", sanitize.Clean("  Jan de Vries \n"))
}

func TestCleanCapsLength(t *testing.T) {
	in := strings.Repeat("a", sanitize.MaxFieldLength+500)
	out := sanitize.Clean(in)
	assert.Len(t, out, sanitize.MaxFieldLength)
}

func TestCleanCountsRunesNotBytes(t *testing.T) {
	in := strings.Repeat("é", sanitize.MaxFieldLength+1)
	out := sanitize.Clean(in)
	assert.Equal(t, sanitize.MaxFieldLength, len([]rune(out)))
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"  <b>hello</b>  ",
		strings.Repeat("x", sanitize.MaxFieldLength+10),
		"plain text",
		"",
		"< spaced >",
	}
	for _, in := range inputs {
		once := sanitize.Clean(in)
		twice := sanitize.Clean(once)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestCleanAll(t *testing.T) {
	out := sanitize.CleanAll(map[string]string{
		"naam":    " Jan ",
		"bericht": "<p>hoi</p>",
	})
	assert.Equal(t, "Jan", out["naam"])
	assert.Equal(t, "phoi/p", out["bericht"])
}
