package gqltype

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// Schema is a read-only view of a GraphQL schema.
type Schema struct {
	Query    *Object
	Mutation *Object
	Types    map[string]TypeRef
}

// Root returns the root type for an operation ("query" or "mutation").
// Any operation other than "query" resolves to the mutation root.
func (s *Schema) Root(operation string) *Object {
	if operation == "query" {
		return s.Query
	}
	return s.Mutation
}

// Lookup returns the named type, or nil.
func (s *Schema) Lookup(name string) TypeRef {
	return s.Types[name]
}

// TypeNames returns the names of all non-introspection types, sorted.
func (s *Schema) TypeNames() []string {
	names := make([]string, 0, len(s.Types))
	for name := range s.Types {
		if IsIntrospection(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadSDL parses SDL sources and builds a Schema.
func LoadSDL(sources ...*ast.Source) (*Schema, error) {
	parsed, err := gqlparser.LoadSchema(sources...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GraphQL schema: %w", err)
	}
	return FromAST(parsed), nil
}

// LoadFiles reads SDL files from disk and builds a Schema.
func LoadFiles(paths ...string) (*Schema, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no schema files given")
	}
	sources := make([]*ast.Source, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file: %w", err)
		}
		sources = append(sources, &ast.Source{
			Name:  filepath.Base(p),
			Input: string(content),
		})
	}
	return LoadSDL(sources...)
}

// FromAST converts a gqlparser schema into the closed TypeRef model.
// Named types are created first so that self-referencing and mutually
// recursive types share a single node.
func FromAST(src *ast.Schema) *Schema {
	b := &builder{src: src, types: make(map[string]TypeRef, len(src.Types))}

	names := make([]string, 0, len(src.Types))
	for name := range src.Types {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b.declare(src.Types[name])
	}
	for _, name := range names {
		b.fill(src.Types[name])
	}

	s := &Schema{Types: b.types}
	if src.Query != nil {
		s.Query, _ = b.types[src.Query.Name].(*Object)
	}
	if src.Mutation != nil {
		s.Mutation, _ = b.types[src.Mutation.Name].(*Object)
	}
	return s
}

type builder struct {
	src   *ast.Schema
	types map[string]TypeRef
}

func (b *builder) declare(def *ast.Definition) {
	switch def.Kind {
	case ast.Object, ast.InputObject:
		b.types[def.Name] = &Object{
			Name:        def.Name,
			Description: def.Description,
			Input:       def.Kind == ast.InputObject,
		}
	case ast.Union, ast.Interface:
		b.types[def.Name] = &Union{
			Name:        def.Name,
			Description: def.Description,
			Interface:   def.Kind == ast.Interface,
		}
	case ast.Enum:
		values := make([]string, len(def.EnumValues))
		for i, v := range def.EnumValues {
			values[i] = v.Name
		}
		b.types[def.Name] = &Scalar{Name: def.Name, Description: def.Description, Values: values}
	default:
		b.types[def.Name] = &Scalar{Name: def.Name, Description: def.Description}
	}
}

func (b *builder) fill(def *ast.Definition) {
	switch t := b.types[def.Name].(type) {
	case *Object:
		for _, f := range def.Fields {
			if IsIntrospection(f.Name) {
				continue
			}
			t.AddField(b.field(f))
		}
	case *Union:
		for _, f := range def.Fields {
			if IsIntrospection(f.Name) {
				continue
			}
			t.Fields = append(t.Fields, b.field(f))
		}
		possible := def.Types
		if def.Kind == ast.Interface {
			possible = nil
			for _, impl := range b.src.GetPossibleTypes(def) {
				possible = append(possible, impl.Name)
			}
		}
		for _, name := range possible {
			if obj, ok := b.types[name].(*Object); ok {
				t.Types = append(t.Types, obj)
			}
		}
	}
}

func (b *builder) field(f *ast.FieldDefinition) *Field {
	out := &Field{
		Name:        f.Name,
		Description: f.Description,
		Type:        b.ref(f.Type),
	}
	for _, a := range f.Arguments {
		out.Args = append(out.Args, &Argument{
			Name:        a.Name,
			Description: a.Description,
			Type:        b.ref(a.Type),
		})
	}
	if d := f.Directives.ForName("deprecated"); d != nil {
		out.DeprecationReason = "No longer supported"
		if arg := d.Arguments.ForName("reason"); arg != nil && arg.Value != nil {
			out.DeprecationReason = arg.Value.Raw
		}
	}
	return out
}

func (b *builder) ref(t *ast.Type) TypeRef {
	var ref TypeRef
	if t.Elem != nil {
		ref = &List{Of: b.ref(t.Elem)}
	} else if named, ok := b.types[t.NamedType]; ok {
		ref = named
	} else {
		ref = &Scalar{Name: t.NamedType}
	}
	if t.NonNull {
		ref = &NonNull{Of: ref}
	}
	return ref
}
