package openapi

import (
	"errors"
	"log/slog"

	"github.com/sanixdarker/gqldoc/internal/config"
	"github.com/sanixdarker/gqldoc/internal/gqltype"
	"github.com/sanixdarker/gqldoc/internal/swagger"
)

// Generator assembles complete documents from a config.
type Generator struct {
	composer *Composer
	logger   *slog.Logger
}

// NewGenerator creates a generator for schema. A nil logger discards.
func NewGenerator(schema *gqltype.Schema, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Generator{
		composer: NewComposer(schema),
		logger:   logger,
	}
}

// Composer returns the composer used for single usecases.
func (g *Generator) Composer() *Composer {
	return g.composer
}

// Generate composes every usecase of cfg in domain order. A usecase that
// fails is left out of the document and its error is returned alongside
// the document built from the others.
func (g *Generator) Generate(cfg *config.Config) (*swagger.Document, error) {
	doc := &swagger.Document{
		Swagger: swagger.Version,
		Info: swagger.Info{
			Title:       cfg.Info.Title,
			Description: cfg.Info.Description,
			Version:     cfg.Info.Version,
		},
		Host:     cfg.Host,
		BasePath: cfg.BasePath,
		Schemes:  cfg.Schemes,
		Paths:    swagger.NewMap[*swagger.PathItem](),
	}

	defs := NewDefinitions()
	var errs []error
	for _, d := range cfg.Domains {
		doc.Tags = append(doc.Tags, swagger.Tag{Name: d.Name, Description: d.Description})
		for _, u := range d.Usecases {
			p, err := g.composer.Compose(d.Name, u)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if doc.Paths.Has(p.ID) {
				g.logger.Warn("duplicate operation id overwritten", "id", p.ID, "domain", d.Name, "usecase", u.Name)
			}
			doc.Paths.Set(p.ID, p.Item)
			defs.AddField(p.Field)
			g.logger.Debug("composed usecase", "id", p.ID, "args", len(p.Example.Args))
		}
	}
	if defs.Len() > 0 {
		doc.Definitions = defs.Build()
	}

	g.logger.Info("document generated", "paths", doc.Paths.Len(), "definitions", defs.Len(), "errors", len(errs))
	return doc, errors.Join(errs...)
}
