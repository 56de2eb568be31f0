package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidHostname(t *testing.T) {
	valid := []string{
		"example.com",
		"news.ycombinator.com",
		"localhost",
		"a-b.c-d.io",
		"123.example",
		strings.Repeat("a", 63) + ".com",
	}
	for _, h := range valid {
		assert.True(t, ValidHostname(h), h)
	}

	invalid := []string{
		"",
		".example.com",
		"example.com.",
		"exa..mple.com",
		"-example.com",
		"example-.com",
		"exa_mple.com",
		"https://example.com",
		"example.com/path",
		strings.Repeat("a", 64) + ".com",
		strings.Repeat("abc.", 64) + "com",
	}
	for _, h := range invalid {
		assert.False(t, ValidHostname(h), h)
	}
}
