package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/sanixdarker/gqldoc/internal/example"
)

// Usecase is a named, documented example invocation of one query or
// mutation field.
type Usecase struct {
	Name        string
	Description string
	// Query is "query.<field>" or "mutation.<field>", optionally followed by
	// further dot separated field names.
	Query  string
	Expand []example.Node
	Select *example.Select
}

type rawUsecase struct {
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description" json:"description"`
	Query       string      `yaml:"query" json:"query"`
	Expand      interface{} `yaml:"expand" json:"expand"`
	Select      interface{} `yaml:"select" json:"select"`
}

func (u *Usecase) fromRaw(raw rawUsecase) error {
	expand, err := example.ParseExpand(raw.Expand)
	if err != nil {
		return fmt.Errorf("usecase %q: %w", raw.Name, err)
	}
	sel, err := example.ParseSelect(raw.Select)
	if err != nil {
		return fmt.Errorf("usecase %q: %w", raw.Name, err)
	}
	*u = Usecase{
		Name:        raw.Name,
		Description: raw.Description,
		Query:       raw.Query,
		Expand:      expand,
		Select:      sel,
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (u *Usecase) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw rawUsecase
	if err := unmarshal(&raw); err != nil {
		return err
	}
	return u.fromRaw(raw)
}

// UnmarshalJSON implements json.Unmarshaler.
func (u *Usecase) UnmarshalJSON(data []byte) error {
	var raw rawUsecase
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return u.fromRaw(raw)
}

// ParseUsecaseFile parses a Markdown usecase: the frontmatter holds the
// usecase fields and the body, when present, becomes its description.
func ParseUsecaseFile(name string, content []byte) (*Usecase, error) {
	var u Usecase
	body, err := frontmatter.Parse(bytes.NewReader(content), &u)
	if err != nil {
		return nil, fmt.Errorf("failed to parse usecase %s: %w", name, err)
	}
	if u.Name == "" {
		u.Name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if text := strings.TrimSpace(string(body)); text != "" && u.Description == "" {
		u.Description = text
	}
	return &u, nil
}

// LoadUsecaseDir loads every *.md usecase in dir, in file name order.
func LoadUsecaseDir(dir string) ([]Usecase, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read usecases dir: %w", err)
	}
	var usecases []Usecase
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read usecase file: %w", err)
		}
		u, err := ParseUsecaseFile(e.Name(), content)
		if err != nil {
			return nil, err
		}
		usecases = append(usecases, *u)
	}
	return usecases, nil
}
