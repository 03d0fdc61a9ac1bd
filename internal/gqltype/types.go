// Package gqltype models GraphQL types as a closed set of variants.
//
// Every TypeRef is exactly one of *Scalar, *Object, *List, *NonNull or
// *Union. Consumers dispatch with a type switch; the set is fixed.
package gqltype

import "strings"

// TypeRef is a reference to a GraphQL type.
type TypeRef interface {
	// String returns the type in GraphQL notation, e.g. "[User!]!".
	String() string
	typeRef()
}

// Scalar is a leaf type. Enums are scalars with a value list.
type Scalar struct {
	Name        string
	Description string
	Values      []string
}

// Object is an object type or, when Input is set, an input object type.
type Object struct {
	Name        string
	Description string
	Input       bool
	Fields      []*Field

	index map[string]*Field
}

// List wraps a type in a list.
type List struct {
	Of TypeRef
}

// NonNull marks a type as non-nullable.
type NonNull struct {
	Of TypeRef
}

// Union is a union or, when Interface is set, an interface type.
// Types holds the possible concrete object types in schema order.
type Union struct {
	Name        string
	Description string
	Interface   bool
	Types       []*Object
	// Fields holds the declared fields of an interface.
	Fields []*Field
}

// Field is a field of an object, input object or interface.
type Field struct {
	Name              string
	Description       string
	Args              []*Argument
	Type              TypeRef
	DeprecationReason string
}

// Argument is a declared field argument.
type Argument struct {
	Name        string
	Description string
	Type        TypeRef
}

func (*Scalar) typeRef()  {}
func (*Object) typeRef()  {}
func (*List) typeRef()    {}
func (*NonNull) typeRef() {}
func (*Union) typeRef()   {}

func (t *Scalar) String() string  { return t.Name }
func (t *Object) String() string  { return t.Name }
func (t *Union) String() string   { return t.Name }
func (t *List) String() string    { return "[" + t.Of.String() + "]" }
func (t *NonNull) String() string { return t.Of.String() + "!" }

// NewObject creates an object type with the given fields.
func NewObject(name string, fields ...*Field) *Object {
	o := &Object{Name: name}
	for _, f := range fields {
		o.AddField(f)
	}
	return o
}

// AddField appends a field. A field with an existing name replaces the old one.
func (o *Object) AddField(f *Field) {
	if o.index == nil {
		o.index = make(map[string]*Field)
	}
	if _, ok := o.index[f.Name]; ok {
		for i, existing := range o.Fields {
			if existing.Name == f.Name {
				o.Fields[i] = f
			}
		}
	} else {
		o.Fields = append(o.Fields, f)
	}
	o.index[f.Name] = f
}

// Field returns the field with the given name, or nil.
func (o *Object) Field(name string) *Field {
	if o == nil {
		return nil
	}
	if o.index == nil {
		for _, f := range o.Fields {
			if f.Name == name {
				return f
			}
		}
		return nil
	}
	return o.index[name]
}

// Unwrap strips List and NonNull wrappers and returns the named base type.
func Unwrap(t TypeRef) TypeRef {
	for {
		switch w := t.(type) {
		case *List:
			t = w.Of
		case *NonNull:
			t = w.Of
		default:
			return t
		}
	}
}

// NamedType returns the name of the base type of t.
func NamedType(t TypeRef) string {
	return Unwrap(t).String()
}

// IsBuiltinScalar reports whether name is one of the GraphQL built-in scalars.
func IsBuiltinScalar(name string) bool {
	switch name {
	case "String", "Int", "Float", "Boolean", "ID":
		return true
	}
	return false
}

// IsIntrospection reports whether name belongs to the introspection system.
func IsIntrospection(name string) bool {
	return strings.HasPrefix(name, "__")
}
