package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		maxLen   int
		expected string
	}{
		{
			name:     "EmptyString",
			text:     "",
			maxLen:   10,
			expected: "",
		},
		{
			name:     "WhitespaceOnly",
			text:     "   ",
			maxLen:   10,
			expected: "",
		},
		{
			name:     "ShorterThanMax",
			text:     "hello",
			maxLen:   10,
			expected: "hello",
		},
		{
			name:     "ExactlyMaxLength",
			text:     "hello",
			maxLen:   5,
			expected: "hello",
		},
		{
			name:     "LongerThanMax",
			text:     "hello world",
			maxLen:   8,
			expected: "hello...",
		},
		{
			name:     "MaxLenLessThan4",
			text:     "test",
			maxLen:   3,
			expected: "test",
		},
		{
			name:     "MaxLenZero",
			text:     "test",
			maxLen:   0,
			expected: "test",
		},
		{
			name:     "MaxLenNegative",
			text:     "test",
			maxLen:   -5,
			expected: "test",
		},
		{
			name:     "Unicode",
			text:     "héllo wörld",
			maxLen:   8,
			expected: "héllo...",
		},
		{
			name:     "TrimsWhitespace",
			text:     "  hello  ",
			maxLen:   10,
			expected: "hello",
		},
		{
			name:     "ExactlyMaxLenOf4",
			text:     "testing",
			maxLen:   4,
			expected: "t...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := TruncateText(tt.text, tt.maxLen)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestTruncatePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		maxLen   int
		expected string
	}{
		{
			name:     "EmptyPath",
			path:     "",
			maxLen:   10,
			expected: "",
		},
		{
			name:     "ShorterThanMax",
			path:     "docs/a.mdx",
			maxLen:   20,
			expected: "docs/a.mdx",
		},
		{
			name:     "ExactlyMaxLength",
			path:     "docs/a.mdx",
			maxLen:   10,
			expected: "docs/a.mdx",
		},
		{
			name:     "KeepsFileName",
			path:     "content/blog/2024/post.mdx",
			maxLen:   15,
			expected: "...024/post.mdx",
		},
		{
			name:     "TinyMax",
			path:     "content/post.mdx",
			maxLen:   2,
			expected: "content/post.mdx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := TruncatePath(tt.path, tt.maxLen)
			assert.Equal(t, tt.expected, result)
			if tt.maxLen >= 4 {
				assert.LessOrEqual(t, len(result), tt.maxLen)
			}
		})
	}
}

func TestFirstLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		n         int
		expected  string
		truncated bool
	}{
		{"Empty", "", 3, "", false},
		{"FewerLines", "a\nb", 3, "a\nb", false},
		{"ExactLines", "a\nb\nc", 3, "a\nb\nc", false},
		{"TrailingNewline", "a\nb\n", 2, "a\nb\n", false},
		{"MoreLines", "a\nb\nc\nd", 2, "a\nb", true},
		{"ZeroLines", "a", 0, "", true},
		{"ZeroLinesEmpty", "", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, truncated := FirstLines(tt.text, tt.n)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.truncated, truncated)
		})
	}
}

func TestPluralize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0 files", Pluralize(0, "file"))
	assert.Equal(t, "1 file", Pluralize(1, "file"))
	assert.Equal(t, "12 files", Pluralize(12, "file"))
}
