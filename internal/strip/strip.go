// Package strip removes HTML markup from rendered documents.
//
// The stripper is lexical: anything between a '<' and the next '>' that
// contains no other '<' is deleted. It does not parse HTML, so entities such
// as &amp; survive unless decoding is requested, and the inner text of
// <script> and <style> elements is kept.
package strip

import (
	"html"
	"regexp"
)

// TagPattern is the expression used to find tags.
const TagPattern = `<[^<]+?>`

// tagRegex is compiled once at package level.
var tagRegex = regexp.MustCompile(TagPattern)

// Tags deletes every substring matching TagPattern.
func Tags(s string) string {
	return tagRegex.ReplaceAllString(s, "")
}

// Text strips tags and, when decode is true, unescapes HTML entities in what
// remains.
func Text(s string, decode bool) string {
	out := Tags(s)
	if decode {
		out = html.UnescapeString(out)
	}
	return out
}

// CountTags returns how many substrings Tags would remove.
func CountTags(s string) int {
	return len(tagRegex.FindAllStringIndex(s, -1))
}
