package example

import (
	"strings"

	"github.com/sanixdarker/gqldoc/internal/gqltype"
	"github.com/sanixdarker/gqldoc/internal/swagger"
)

const indentUnit = "  "

// Example is the output of one generation run.
type Example struct {
	// Query is the example query text including variable declarations.
	Query string
	// Response is the example response schema wrapped in {data: {...}}.
	Response *swagger.Schema
	// Args holds every argument used by the query, de-duplicated by name
	// with the first occurrence kept.
	Args []*gqltype.Argument
}

// Generate builds the example query, response and argument list for field.
// operation is the GraphQL operation keyword ("query" or "mutation").
func Generate(operation string, field *gqltype.Field, graph Graph) *Example {
	body, args := fieldQuery(field, graph, Ledger{}, 1)
	args = dedupeArgs(args)

	var b strings.Builder
	b.WriteString(operation)
	b.WriteString(" ")
	b.WriteString(field.Name)
	if len(args) > 0 {
		decls := make([]string, len(args))
		for i, a := range args {
			decls[i] = "$" + a.Name + ": " + a.Type.String()
		}
		b.WriteString("(" + strings.Join(decls, ", ") + ")")
	}
	b.WriteString(" {\n")
	b.WriteString(body)
	b.WriteString("}")

	return &Example{
		Query:    b.String(),
		Response: Response(field, graph),
		Args:     args,
	}
}

// fieldQuery renders one field at depth and returns the arguments of every
// field it emitted, in traversal order. Object and union fields without a
// matching expand node render nothing, and so does a union whose branches
// all come out empty.
func fieldQuery(f *gqltype.Field, graph Graph, ledger Ledger, depth int) (string, []*gqltype.Argument) {
	graph = graph.Step()
	indent := strings.Repeat(indentUnit, depth)
	head := indent + f.Name + argRefs(f.Args)

	switch base := gqltype.Unwrap(f.Type).(type) {
	case *gqltype.Object:
		i, node, ok := graph.Find(f.Name)
		if !ok {
			return "", nil
		}
		body, args, _ := objectQuery(f.Name, base, node.Select, graph, i, ledger, depth)
		return head + " " + body + "\n", append(append([]*gqltype.Argument(nil), f.Args...), args...)

	case *gqltype.Union:
		i, node, ok := graph.Find(f.Name)
		if !ok {
			return "", nil
		}
		var b strings.Builder
		args := append([]*gqltype.Argument(nil), f.Args...)
		for _, obj := range base.Types {
			sel := node.Select.forType(obj.Name)
			narrowed := graph.Replace(i, node.WithSelect(sel))
			body, branchArgs, empty := objectQuery(f.Name, obj, sel, narrowed, i, ledger, depth+1)
			if empty {
				continue
			}
			b.WriteString(indent + indentUnit + "... on " + obj.Name + " " + body + "\n")
			args = append(args, branchArgs...)
		}
		if b.Len() == 0 {
			return "", nil
		}
		return head + " {\n" + b.String() + indent + "}\n", args

	default:
		return head + "\n", append([]*gqltype.Argument(nil), f.Args...)
	}
}

// objectQuery renders the selection block of an object reached through
// field, which was matched by the node at index matched. Below the root
// level a (field, type) pair already on the current path is replaced by a
// fragment placeholder.
func objectQuery(field string, obj *gqltype.Object, sel *Select, graph Graph, matched int, ledger Ledger, depth int) (string, []*gqltype.Argument, bool) {
	indent := strings.Repeat(indentUnit, depth)

	if depth > 1 {
		seen := ledger.Contains(field, obj.Name)
		ledger = ledger.Record(field, obj.Name)
		if seen {
			return "{\n" + indent + indentUnit + "...Recursive" + obj.Name + "Fragment\n" + indent + "}", nil, false
		}
	}

	fields, graph := plan(obj, sel, graph, matched)

	var b strings.Builder
	var args []*gqltype.Argument
	for _, f := range fields {
		text, fieldArgs := fieldQuery(f, graph, ledger, depth+1)
		b.WriteString(text)
		args = append(args, fieldArgs...)
	}
	return "{\n" + b.String() + indent + "}", args, b.Len() == 0
}

// plan applies a select to obj and returns the retained fields in declared
// order, plus the graph extended with nodes promoted from nested entries.
//
// Retained fields are the explicitly selected ones together with any field
// named by an expand node other than the one that matched obj itself. A
// select made only of nested entries leaves the parent unrestricted.
// __typename is honoured only when listed explicitly.
func plan(obj *gqltype.Object, sel *Select, graph Graph, matched int) ([]*gqltype.Field, Graph) {
	plain, nested, all := sel.split()
	graph = graph.With(nested...)

	if all {
		return obj.Fields, graph
	}

	expanded := graph
	if matched >= 0 {
		expanded = graph.Without(matched)
	}

	picked := make(map[string]bool, len(plain))
	for _, name := range plain {
		picked[name] = true
	}

	var fields []*gqltype.Field
	if picked[TypenameField] {
		fields = append(fields, typenameField())
	}
	for _, f := range obj.Fields {
		if picked[f.Name] || expanded.Has(f.Name) {
			fields = append(fields, f)
		}
	}
	return fields, graph
}

func typenameField() *gqltype.Field {
	return &gqltype.Field{
		Name: TypenameField,
		Type: &gqltype.NonNull{Of: &gqltype.Scalar{Name: "String"}},
	}
}

func argRefs(args []*gqltype.Argument) string {
	if len(args) == 0 {
		return ""
	}
	refs := make([]string, len(args))
	for i, a := range args {
		refs[i] = a.Name + ": $" + a.Name
	}
	return "(" + strings.Join(refs, ", ") + ")"
}

func dedupeArgs(args []*gqltype.Argument) []*gqltype.Argument {
	seen := make(map[string]bool, len(args))
	out := make([]*gqltype.Argument, 0, len(args))
	for _, a := range args {
		if seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		out = append(out, a)
	}
	return out
}
