package example

import (
	"github.com/sanixdarker/gqldoc/internal/gqltype"
	"github.com/sanixdarker/gqldoc/internal/swagger"
)

// MaxResponseDepth bounds object nesting in example responses.
const MaxResponseDepth = 10

// Response builds the example response schema for field, wrapped the way a
// GraphQL server answers: {data: {<field>: ...}}.
func Response(field *gqltype.Field, graph Graph) *swagger.Schema {
	data := swagger.NewMap[*swagger.Schema]()
	if s := fieldResponse(field, graph, 1); s != nil {
		data.Set(field.Name, s)
	}
	root := swagger.NewMap[*swagger.Schema]()
	root.Set("data", swagger.Object(data))
	return swagger.Object(root)
}

// fieldResponse returns nil when the field is left out of the example.
func fieldResponse(f *gqltype.Field, graph Graph, depth int) *swagger.Schema {
	return typeResponse(f.Name, f.Type, graph.Step(), depth)
}

func typeResponse(name string, t gqltype.TypeRef, graph Graph, depth int) *swagger.Schema {
	if depth > MaxResponseDepth {
		return &swagger.Schema{Type: "object"}
	}

	switch t := t.(type) {
	case *gqltype.NonNull:
		return typeResponse(name, t.Of, graph, depth)
	case *gqltype.List:
		items := typeResponse(name, t.Of, graph, depth)
		if items == nil {
			return nil
		}
		return swagger.Array(items)
	case *gqltype.Object:
		i, node, ok := graph.Find(name)
		if !ok {
			return nil
		}
		return objectResponse(i, t, node.Select, graph, depth)
	case *gqltype.Union:
		i, node, ok := graph.Find(name)
		if !ok {
			return nil
		}
		props := swagger.NewMap[*swagger.Schema]()
		for _, obj := range t.Types {
			sel := node.Select.forType(obj.Name)
			branch := objectResponse(i, obj, sel, graph.Replace(i, node.WithSelect(sel)), depth)
			for _, k := range branch.Properties.Keys() {
				if props.Has(k) {
					continue
				}
				v, _ := branch.Properties.Get(k)
				props.Set(k, v)
			}
		}
		if props.Len() == 0 {
			return nil
		}
		return swagger.Object(props)
	case *gqltype.Scalar:
		return &swagger.Schema{Type: swagger.PrimitiveType(t.Name)}
	}
	return nil
}

// objectResponse applies the same selection plan as the query generator.
// The node that matched the object (at index matched) is consumed, so
// children are only expanded by other nodes.
func objectResponse(matched int, obj *gqltype.Object, sel *Select, graph Graph, depth int) *swagger.Schema {
	fields, extended := plan(obj, sel, graph, matched)
	child := extended.Without(matched)

	props := swagger.NewMap[*swagger.Schema]()
	for _, f := range fields {
		if s := fieldResponse(f, child, depth+1); s != nil {
			props.Set(f.Name, s)
		}
	}
	return swagger.Object(props)
}
