// Package swagger defines the Swagger 2.0 document model written by gqldoc.
package swagger

// Version is the Swagger version emitted in generated documents.
const Version = "2.0"

// Document is a Swagger 2.0 document.
type Document struct {
	Swagger     string           `json:"swagger" yaml:"swagger"`
	Info        Info             `json:"info" yaml:"info"`
	Host        string           `json:"host,omitempty" yaml:"host,omitempty"`
	BasePath    string           `json:"basePath,omitempty" yaml:"basePath,omitempty"`
	Schemes     []string         `json:"schemes,omitempty" yaml:"schemes,omitempty"`
	Tags        []Tag            `json:"tags,omitempty" yaml:"tags,omitempty"`
	Paths       *Map[*PathItem]  `json:"paths" yaml:"paths"`
	Definitions *Map[*Schema]    `json:"definitions,omitempty" yaml:"definitions,omitempty"`
}

// Info holds document metadata.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version" yaml:"version"`
}

// Tag groups operations; gqldoc emits one tag per documentation domain.
type Tag struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem holds the operations of one path. gqldoc only emits POST.
type PathItem struct {
	Post *Operation `json:"post,omitempty" yaml:"post,omitempty"`
}

// Operation describes one documented usecase.
type Operation struct {
	Tags        []string             `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary     string               `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string               `json:"operationId" yaml:"operationId"`
	Consumes    []string             `json:"consumes,omitempty" yaml:"consumes,omitempty"`
	Produces    []string             `json:"produces,omitempty" yaml:"produces,omitempty"`
	Parameters  []*Parameter         `json:"parameters" yaml:"parameters"`
	Responses   map[string]*Response `json:"responses" yaml:"responses"`
	Deprecated  bool                 `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// Parameter is a query or body parameter.
type Parameter struct {
	Name        string  `json:"name" yaml:"name"`
	In          string  `json:"in" yaml:"in"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Schema      *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
	Example     any     `json:"example,omitempty" yaml:"example,omitempty"`
}

// Response is one operation response.
type Response struct {
	Description string  `json:"description" yaml:"description"`
	Schema      *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Schema is a JSON schema fragment as used by Swagger 2.0.
//
// Required follows the GraphQL notion of non-null: it is set on the schema
// of the non-null type itself rather than listed on the parent.
type Schema struct {
	Ref         string        `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type        string        `json:"type,omitempty" yaml:"type,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool          `json:"required,omitempty" yaml:"required,omitempty"`
	Enum        []string      `json:"enum,omitempty" yaml:"enum,omitempty"`
	Items       *Schema       `json:"items,omitempty" yaml:"items,omitempty"`
	Properties  *Map[*Schema] `json:"properties,omitempty" yaml:"properties,omitempty"`
	Example     any           `json:"example,omitempty" yaml:"example,omitempty"`
}

// Parameter locations.
const (
	InQuery = "query"
	InBody  = "body"
)

// MIMEJSON is the only media type gqldoc documents.
const MIMEJSON = "application/json"
