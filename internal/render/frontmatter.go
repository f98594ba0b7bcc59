package render

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// StripFrontMatter removes a leading YAML, TOML or JSON front-matter block and
// returns the remaining body. Content without front matter is returned
// unchanged. The metadata is decoded only to find the block boundary; its
// values are not validated.
func StripFrontMatter(source []byte) ([]byte, error) {
	var meta map[string]any

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return body, nil
}
