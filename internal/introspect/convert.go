package introspect

import (
	"bytes"
	"fmt"

	"github.com/sanixdarker/gqldoc/internal/gqltype"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

var definitionKinds = map[string]ast.DefinitionKind{
	KindScalar:      ast.Scalar,
	KindObject:      ast.Object,
	KindInterface:   ast.Interface,
	KindUnion:       ast.Union,
	KindEnum:        ast.Enum,
	KindInputObject: ast.InputObject,
}

// Document converts an introspection result into a schema document.
// Built-in scalars and introspection types are left to the parser's
// prelude. Default values are not carried over.
func (s *Schema) Document() (*ast.SchemaDocument, error) {
	doc := &ast.SchemaDocument{}

	def := &ast.SchemaDefinition{}
	for _, op := range []struct {
		op  ast.Operation
		ref *TypeName
	}{
		{ast.Query, s.QueryType},
		{ast.Mutation, s.MutationType},
		{ast.Subscription, s.SubscriptionType},
	} {
		if op.ref != nil && op.ref.Name != "" {
			def.OperationTypes = append(def.OperationTypes, &ast.OperationTypeDefinition{Operation: op.op, Type: op.ref.Name})
		}
	}
	if len(def.OperationTypes) == 0 {
		return nil, fmt.Errorf("introspection result has no root types")
	}
	doc.Schema = append(doc.Schema, def)

	for _, t := range s.Types {
		if gqltype.IsIntrospection(t.Name) || (t.Kind == KindScalar && gqltype.IsBuiltinScalar(t.Name)) {
			continue
		}
		d, err := t.definition()
		if err != nil {
			return nil, err
		}
		doc.Definitions = append(doc.Definitions, d)
	}
	return doc, nil
}

// SDL renders the introspection result as schema definition language.
func (s *Schema) SDL() (string, error) {
	doc, err := s.Document()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchemaDocument(doc)
	return buf.String(), nil
}

func (t *FullType) definition() (*ast.Definition, error) {
	kind, ok := definitionKinds[t.Kind]
	if !ok {
		return nil, fmt.Errorf("type %s: unsupported kind %q", t.Name, t.Kind)
	}
	d := &ast.Definition{
		Kind:        kind,
		Name:        t.Name,
		Description: t.Description,
	}

	for _, f := range t.Fields {
		fd, err := f.definition()
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", t.Name, err)
		}
		d.Fields = append(d.Fields, fd)
	}
	for _, v := range t.InputFields {
		typ, err := v.Type.astType()
		if err != nil {
			return nil, fmt.Errorf("type %s: input field %s: %w", t.Name, v.Name, err)
		}
		d.Fields = append(d.Fields, &ast.FieldDefinition{Name: v.Name, Description: v.Description, Type: typ})
	}
	for _, ref := range t.Interfaces {
		if ref.Name != nil {
			d.Interfaces = append(d.Interfaces, *ref.Name)
		}
	}
	if kind == ast.Union {
		for _, ref := range t.PossibleTypes {
			if ref.Name != nil {
				d.Types = append(d.Types, *ref.Name)
			}
		}
	}
	for _, v := range t.EnumValues {
		ev := &ast.EnumValueDefinition{Name: v.Name, Description: v.Description}
		if v.IsDeprecated {
			ev.Directives = ast.DirectiveList{deprecated(v.DeprecationReason)}
		}
		d.EnumValues = append(d.EnumValues, ev)
	}
	return d, nil
}

func (f *Field) definition() (*ast.FieldDefinition, error) {
	typ, err := f.Type.astType()
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", f.Name, err)
	}
	fd := &ast.FieldDefinition{Name: f.Name, Description: f.Description, Type: typ}
	for _, a := range f.Args {
		at, err := a.Type.astType()
		if err != nil {
			return nil, fmt.Errorf("field %s: argument %s: %w", f.Name, a.Name, err)
		}
		fd.Arguments = append(fd.Arguments, &ast.ArgumentDefinition{Name: a.Name, Description: a.Description, Type: at})
	}
	if f.IsDeprecated {
		fd.Directives = ast.DirectiveList{deprecated(f.DeprecationReason)}
	}
	return fd, nil
}

func (r *TypeRef) astType() (*ast.Type, error) {
	switch r.Kind {
	case KindNonNull, KindList:
		if r.OfType == nil {
			return nil, fmt.Errorf("%s type without inner type", r.Kind)
		}
		inner, err := r.OfType.astType()
		if err != nil {
			return nil, err
		}
		if r.Kind == KindList {
			return ast.ListType(inner, nil), nil
		}
		inner.NonNull = true
		return inner, nil
	}
	if r.Name == nil || *r.Name == "" {
		return nil, fmt.Errorf("unnamed %s type reference", r.Kind)
	}
	return ast.NamedType(*r.Name, nil), nil
}

func deprecated(reason *string) *ast.Directive {
	d := &ast.Directive{Name: "deprecated"}
	if reason != nil && *reason != "" {
		d.Arguments = ast.ArgumentList{{
			Name:  "reason",
			Value: &ast.Value{Kind: ast.StringValue, Raw: *reason},
		}}
	}
	return d
}
