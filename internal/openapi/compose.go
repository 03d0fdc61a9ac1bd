package openapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sanixdarker/gqldoc/internal/config"
	"github.com/sanixdarker/gqldoc/internal/example"
	"github.com/sanixdarker/gqldoc/internal/gqltype"
	"github.com/sanixdarker/gqldoc/internal/swagger"
)

var (
	// ErrMalformedQuery is returned for usecase queries that are not of the
	// form "query.<field>" or "mutation.<field>".
	ErrMalformedQuery = errors.New("malformed usecase query")
	// ErrUnknownField is returned when a query path names a field the
	// schema does not declare.
	ErrUnknownField = errors.New("unknown field")
	// ErrMissingRoot is returned when the schema has no root type for the
	// requested operation.
	ErrMissingRoot = errors.New("missing root type")
)

// Path is one composed usecase.
type Path struct {
	ID      string
	Item    *swagger.PathItem
	Field   *gqltype.Field
	Example *example.Example
}

// Composer turns usecases into path items against one schema.
type Composer struct {
	schema *gqltype.Schema
}

// NewComposer creates a composer for schema.
func NewComposer(schema *gqltype.Schema) *Composer {
	return &Composer{schema: schema}
}

// OperationID derives the operation id of a usecase from its name.
func OperationID(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}

// Resolve walks a dotted query path to its target field and returns the
// operation keyword along with it.
func (c *Composer) Resolve(query string) (string, *gqltype.Field, error) {
	tokens := strings.Split(query, ".")
	if len(tokens) < 2 {
		return "", nil, fmt.Errorf("%w: %q, expected 'query.<fieldName>' or 'mutation.<mutationName>'", ErrMalformedQuery, query)
	}

	operation := strings.ToLower(tokens[0])
	obj := c.schema.Root(operation)
	if obj == nil {
		return "", nil, fmt.Errorf("%w: schema has no %s type", ErrMissingRoot, operation)
	}

	var field *gqltype.Field
	for i, token := range tokens[1:] {
		field = obj.Field(token)
		if field == nil {
			return "", nil, fmt.Errorf("%w: %s has no field %q", ErrUnknownField, obj.Name, token)
		}
		if i == len(tokens)-2 {
			break
		}
		next, ok := gqltype.Unwrap(field.Type).(*gqltype.Object)
		if !ok {
			return "", nil, fmt.Errorf("%w: %s.%s is not an object", ErrUnknownField, obj.Name, token)
		}
		obj = next
	}
	return operation, field, nil
}

// Compose builds the path item of one usecase in domain.
func (c *Composer) Compose(domain string, u config.Usecase) (*Path, error) {
	operation, field, err := c.Resolve(u.Query)
	if err != nil {
		return nil, fmt.Errorf("domain %s: usecase %q: %w", domain, u.Name, err)
	}

	nodes := append(append([]example.Node(nil), u.Expand...), example.Expand(field.Name, u.Select))
	ex := example.Generate(operation, field, example.NewGraph(nodes...))

	id := OperationID(u.Name)
	response := ConvertType(field.Type)
	response.Example = ex.Response

	op := &swagger.Operation{
		Tags:        []string{domain},
		Summary:     u.Name,
		Description: u.Description,
		OperationID: id,
		Consumes:    []string{swagger.MIMEJSON},
		Produces:    []string{swagger.MIMEJSON},
		Parameters:  parameters(field, ex),
		Responses: map[string]*swagger.Response{
			"200": {
				Description: "Successful operation",
				Schema:      response,
			},
		},
		Deprecated: field.DeprecationReason != "",
	}

	return &Path{
		ID:      id,
		Item:    &swagger.PathItem{Post: op},
		Field:   field,
		Example: ex,
	}, nil
}

// parameters returns one query parameter per argument of the target field
// followed by the body parameter carrying the example query. The body
// schema lists every query variable, nested ones included.
func parameters(field *gqltype.Field, ex *example.Example) []*swagger.Parameter {
	params := make([]*swagger.Parameter, 0, len(field.Args)+1)
	for _, a := range field.Args {
		params = append(params, &swagger.Parameter{
			Name:        a.Name,
			Description: a.Description,
			In:          swagger.InQuery,
			Schema:      ConvertType(a.Type),
		})
	}

	var body *swagger.Schema
	if len(ex.Args) > 0 {
		body = swagger.Object(swagger.NewMap[*swagger.Schema]())
		for _, a := range ex.Args {
			body.Properties.Set(a.Name, ConvertType(a.Type))
		}
	}
	return append(params, &swagger.Parameter{
		Name:    "body",
		In:      swagger.InBody,
		Schema:  body,
		Example: ex.Query,
	})
}
