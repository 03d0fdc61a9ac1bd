package openapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sanixdarker/gqldoc/internal/swagger"
	"github.com/sanixdarker/gqldoc/pkg/reference"
)

// BuildReference renders a document as a Markdown reference: one section
// per tag with one sub-section per operation, then the type definitions.
func BuildReference(doc *swagger.Document) *reference.Document {
	ref := reference.New(doc.Info.Title, doc.Info.Version, doc.Info.Description)
	ref.Frontmatter.BaseURL = baseURL(doc)
	ref.Frontmatter.OperationCount = doc.Paths.Len()

	for _, tag := range doc.Tags {
		ref.Frontmatter.Tags = append(ref.Frontmatter.Tags, tag.Name)
		ref.AddSection(tag.Name, 2, tag.Description)
		for _, id := range doc.Paths.Keys() {
			item, _ := doc.Paths.Get(id)
			if item.Post == nil || !hasTag(item.Post, tag.Name) {
				continue
			}
			ref.AddSection(item.Post.Summary, 3, operationSection(item.Post))
		}
	}

	if doc.Definitions.Len() > 0 {
		ref.AddSection("Types", 2, "")
		for _, name := range doc.Definitions.Keys() {
			s, _ := doc.Definitions.Get(name)
			ref.AddSection(name, 3, definitionSection(s))
		}
	}
	return ref
}

func baseURL(doc *swagger.Document) string {
	if doc.Host == "" {
		return ""
	}
	scheme := "https"
	if len(doc.Schemes) > 0 {
		scheme = doc.Schemes[0]
	}
	basePath := doc.BasePath
	if basePath == "" {
		basePath = "/"
	}
	return fmt.Sprintf("%s://%s%s", scheme, doc.Host, basePath)
}

func hasTag(op *swagger.Operation, tag string) bool {
	for _, t := range op.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func operationSection(op *swagger.Operation) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("`POST` `%s`\n\n", op.OperationID))
	if op.Deprecated {
		b.WriteString("**Deprecated**\n\n")
	}
	if op.Description != "" {
		b.WriteString(op.Description)
		b.WriteString("\n\n")
	}

	var query string
	var args []*swagger.Parameter
	for _, p := range op.Parameters {
		switch p.In {
		case swagger.InQuery:
			args = append(args, p)
		case swagger.InBody:
			query, _ = p.Example.(string)
		}
	}

	if len(args) > 0 {
		b.WriteString("**Arguments**\n\n")
		b.WriteString("| Name | Type | Required | Description |\n")
		b.WriteString("|------|------|----------|-------------|\n")
		for _, p := range args {
			required := ""
			if p.Schema != nil && p.Schema.Required {
				required = "yes"
			}
			b.WriteString(fmt.Sprintf("| `%s` | %s | %s | %s |\n", p.Name, schemaType(p.Schema), required, tableCell(p.Description)))
		}
		b.WriteString("\n")
	}

	if query != "" {
		b.WriteString("**Example query**\n\n```graphql\n")
		b.WriteString(query)
		b.WriteString("\n```\n\n")
	}

	if resp := op.Responses["200"]; resp != nil && resp.Schema != nil {
		if example, ok := resp.Schema.Example.(*swagger.Schema); ok {
			if out, err := json.MarshalIndent(example.Sample(), "", "  "); err == nil {
				b.WriteString("**Example response**\n\n```json\n")
				b.Write(out)
				b.WriteString("\n```\n")
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func definitionSection(s *swagger.Schema) string {
	var b strings.Builder
	if s.Description != "" {
		b.WriteString(s.Description)
		b.WriteString("\n\n")
	}
	if s.Properties.Len() > 0 {
		b.WriteString("| Field | Type | Description |\n")
		b.WriteString("|-------|------|-------------|\n")
		for _, name := range s.Properties.Keys() {
			p, _ := s.Properties.Get(name)
			b.WriteString(fmt.Sprintf("| `%s` | %s | %s |\n", name, schemaType(p), tableCell(p.Description)))
		}
	}
	return strings.TrimSpace(b.String())
}

// schemaType renders a schema as a short type label, e.g. "array of User".
func schemaType(s *swagger.Schema) string {
	if s == nil {
		return ""
	}
	if s.Ref != "" {
		return strings.TrimPrefix(s.Ref, DefinitionsPrefix)
	}
	if s.Type == "array" {
		return "array of " + schemaType(s.Items)
	}
	if len(s.Enum) > 0 {
		return s.Type + " (" + strings.Join(s.Enum, ", ") + ")"
	}
	return s.Type
}

func tableCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}
