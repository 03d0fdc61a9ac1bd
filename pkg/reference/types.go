// Package reference provides a Markdown reference document for generated
// API documentation.
package reference

// Document is a Markdown reference with YAML frontmatter.
type Document struct {
	Frontmatter Frontmatter `json:"frontmatter"`
	Sections    []Section   `json:"sections"`
}

// Frontmatter contains reference metadata.
type Frontmatter struct {
	Title          string   `yaml:"title" json:"title"`
	Version        string   `yaml:"version" json:"version"`
	Description    string   `yaml:"description" json:"description"`
	BaseURL        string   `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Tags           []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	OperationCount int      `yaml:"operation_count,omitempty" json:"operation_count,omitempty"`
	GeneratedAt    string   `yaml:"generated_at,omitempty" json:"generated_at,omitempty"`
}

// Section is a titled block of Markdown.
type Section struct {
	Title   string `json:"title"`
	Level   int    `json:"level"`
	Content string `json:"content"`
}

// New creates an empty reference.
func New(title, version, description string) *Document {
	return &Document{
		Frontmatter: Frontmatter{
			Title:       title,
			Version:     version,
			Description: description,
		},
		Sections: []Section{},
	}
}

// AddSection appends a section.
func (d *Document) AddSection(title string, level int, content string) {
	d.Sections = append(d.Sections, Section{
		Title:   title,
		Level:   level,
		Content: content,
	})
}

// Section returns the first section with the given title, or nil.
func (d *Document) Section(title string) *Section {
	for i := range d.Sections {
		if d.Sections[i].Title == title {
			return &d.Sections[i]
		}
	}
	return nil
}
