package reference

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Render generates the Markdown reference including frontmatter.
func Render(d *Document) string {
	if d == nil {
		return ""
	}
	var b strings.Builder

	b.WriteString("---\n")
	b.WriteString(fmt.Sprintf("title: %q\n", d.Frontmatter.Title))
	b.WriteString(fmt.Sprintf("version: %q\n", d.Frontmatter.Version))
	if d.Frontmatter.Description != "" {
		b.WriteString(fmt.Sprintf("description: %q\n", d.Frontmatter.Description))
	}
	if d.Frontmatter.BaseURL != "" {
		b.WriteString(fmt.Sprintf("base_url: %q\n", d.Frontmatter.BaseURL))
	}
	if len(d.Frontmatter.Tags) > 0 {
		b.WriteString("tags:\n")
		for _, tag := range d.Frontmatter.Tags {
			b.WriteString(fmt.Sprintf("  - %q\n", tag))
		}
	}
	if d.Frontmatter.OperationCount > 0 {
		b.WriteString(fmt.Sprintf("operation_count: %d\n", d.Frontmatter.OperationCount))
	}
	if d.Frontmatter.GeneratedAt != "" {
		b.WriteString(fmt.Sprintf("generated_at: %q\n", d.Frontmatter.GeneratedAt))
	}
	b.WriteString("---\n\n")

	writeSections(&b, d.Sections)
	return strings.TrimSuffix(b.String(), "\n")
}

// RenderBody generates the Markdown reference without frontmatter.
func RenderBody(d *Document) string {
	if d == nil {
		return ""
	}
	var b strings.Builder

	b.WriteString("# ")
	b.WriteString(d.Frontmatter.Title)
	b.WriteString("\n\n")
	if d.Frontmatter.Description != "" {
		b.WriteString(d.Frontmatter.Description)
		b.WriteString("\n\n")
	}

	writeSections(&b, d.Sections)
	return strings.TrimSuffix(b.String(), "\n")
}

func writeSections(b *strings.Builder, sections []Section) {
	for _, section := range sections {
		b.WriteString(strings.Repeat("#", section.Level))
		b.WriteString(" ")
		b.WriteString(section.Title)
		b.WriteString("\n\n")
		if section.Content != "" {
			b.WriteString(section.Content)
			b.WriteString("\n\n")
		}
	}
}

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	htmlPolicy = newPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code")
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	return p
}

// ToHTML renders the reference body as sanitized HTML.
func ToHTML(d *Document) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(RenderBody(d)), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return htmlPolicy.Sanitize(buf.String()), nil
}
