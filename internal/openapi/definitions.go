package openapi

import (
	"sort"
	"strings"

	"github.com/sanixdarker/gqldoc/internal/gqltype"
	"github.com/sanixdarker/gqldoc/internal/swagger"
)

// Definitions collects the named composite types referenced by documented
// fields so every $ref in the document resolves.
type Definitions struct {
	types map[string]gqltype.TypeRef
}

// NewDefinitions creates an empty collector.
func NewDefinitions() *Definitions {
	return &Definitions{types: make(map[string]gqltype.TypeRef)}
}

// AddField records the return type and argument types of f along with
// everything reachable from them.
func (d *Definitions) AddField(f *gqltype.Field) {
	d.add(f.Type)
	for _, a := range f.Args {
		d.add(a.Type)
	}
}

func (d *Definitions) add(t gqltype.TypeRef) {
	switch base := gqltype.Unwrap(t).(type) {
	case *gqltype.Object:
		if _, ok := d.types[base.Name]; ok {
			return
		}
		d.types[base.Name] = base
		for _, f := range base.Fields {
			d.AddField(f)
		}
	case *gqltype.Union:
		if _, ok := d.types[base.Name]; ok {
			return
		}
		d.types[base.Name] = base
		for _, obj := range base.Types {
			d.add(obj)
		}
		for _, f := range base.Fields {
			d.AddField(f)
		}
	}
}

// Len returns the number of collected types.
func (d *Definitions) Len() int {
	return len(d.types)
}

// Build returns the definitions sorted by type name.
func (d *Definitions) Build() *swagger.Map[*swagger.Schema] {
	names := make([]string, 0, len(d.types))
	for name := range d.types {
		names = append(names, name)
	}
	sort.Strings(names)

	out := swagger.NewMap[*swagger.Schema]()
	for _, name := range names {
		switch t := d.types[name].(type) {
		case *gqltype.Object:
			out.Set(name, definition(t.Description, t.Fields))
		case *gqltype.Union:
			s := definition(t.Description, t.Fields)
			if !t.Interface && s.Description == "" {
				s.Description = "One of " + strings.Join(memberNames(t), ", ")
			}
			out.Set(name, s)
		}
	}
	return out
}

func definition(description string, fields []*gqltype.Field) *swagger.Schema {
	var props *swagger.Map[*swagger.Schema]
	if len(fields) > 0 {
		props = swagger.NewMap[*swagger.Schema]()
		for _, f := range fields {
			s := ConvertType(f.Type)
			if s.Ref == "" {
				s.Description = f.Description
			}
			props.Set(f.Name, s)
		}
	}
	s := swagger.Object(props)
	s.Description = description
	return s
}

func memberNames(u *gqltype.Union) []string {
	names := make([]string, len(u.Types))
	for i, obj := range u.Types {
		names[i] = obj.Name
	}
	return names
}
