// Package config loads gqldoc documentation configs.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Config is the documentation config: where the schema comes from, the
// document metadata and the usecases grouped into domains.
type Config struct {
	Introspection string            `yaml:"introspection"`
	Schema        StringList        `yaml:"schema"`
	Headers       map[string]string `yaml:"headers"`
	Info          Info              `yaml:"info"`
	Host          string            `yaml:"host"`
	BasePath      string            `yaml:"basePath"`
	Schemes       []string          `yaml:"schemes"`
	Domains       []Domain          `yaml:"domains"`
}

// Info holds document metadata.
type Info struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
}

// Domain groups related usecases under one tag.
type Domain struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Usecases    []Usecase `yaml:"usecases"`
	// UsecasesDir holds one Markdown file per usecase.
	UsecasesDir string `yaml:"usecasesDir"`
}

// StringList accepts either a single string or a list of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		if single != "" {
			*l = StringList{single}
		}
		return nil
	}
	var list []string
	if err := unmarshal(&list); err != nil {
		return err
	}
	*l = list
	return nil
}

// Default returns an empty config with default metadata.
func Default() *Config {
	return &Config{
		Info: Info{
			Title:   "GraphQL API",
			Version: "1.0.0",
		},
	}
}

// Parse decodes a YAML config. Relative paths are left untouched.
func Parse(content []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	for k, v := range cfg.Headers {
		cfg.Headers[k] = os.ExpandEnv(v)
	}
	return cfg, nil
}

// Load reads a config file, resolves relative paths against its directory
// and loads usecase directories.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(content)
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	for i, p := range cfg.Schema {
		cfg.Schema[i] = resolve(base, p)
	}
	for i := range cfg.Domains {
		d := &cfg.Domains[i]
		if d.UsecasesDir == "" {
			continue
		}
		d.UsecasesDir = resolve(base, d.UsecasesDir)
		usecases, err := LoadUsecaseDir(d.UsecasesDir)
		if err != nil {
			return nil, fmt.Errorf("domain %s: %w", d.Name, err)
		}
		d.Usecases = append(d.Usecases, usecases...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the config can drive a generation run.
func (c *Config) Validate() error {
	if c.Introspection == "" && len(c.Schema) == 0 {
		return fmt.Errorf("config must set either schema or introspection")
	}
	for i, d := range c.Domains {
		if d.Name == "" {
			return fmt.Errorf("domain %d: missing name", i)
		}
		for j, u := range d.Usecases {
			if u.Name == "" {
				return fmt.Errorf("domain %s: usecase %d: missing name", d.Name, j)
			}
			if u.Query == "" {
				return fmt.Errorf("domain %s: usecase %q: missing query", d.Name, u.Name)
			}
		}
	}
	return nil
}

// UsecaseCount returns the number of usecases across all domains.
func (c *Config) UsecaseCount() int {
	n := 0
	for _, d := range c.Domains {
		n += len(d.Usecases)
	}
	return n
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
