package mailer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Template is a parsed template file.
type Template struct {
	Metadata map[string]any
	Body     string
}

var (
	openDelim  = []byte("---\n")
	closeDelim = []byte("\n---\n")
	trailDelim = []byte("\n---")
)

// ParseTemplate splits content into YAML front matter and Markdown body. Content
// without a leading "---" line is all body.
func ParseTemplate(content []byte) (*Template, error) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))

	rest, ok := bytes.CutPrefix(content, openDelim)
	if !ok {
		return &Template{Metadata: map[string]any{}, Body: string(content)}, nil
	}

	if body, ok := bytes.CutPrefix(rest, openDelim); ok {
		return &Template{Metadata: map[string]any{}, Body: string(body)}, nil
	}

	front, body, ok := bytes.Cut(rest, closeDelim)
	if !ok {
		// Closing delimiter at the very end of the file.
		if front, ok = bytes.CutSuffix(rest, trailDelim); !ok {
			return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
		}
	}

	meta := map[string]any{}
	if len(bytes.TrimSpace(front)) > 0 {
		if err := yaml.Unmarshal(front, &meta); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	return &Template{Metadata: meta, Body: string(body)}, nil
}
