// Package openapi turns gqldoc usecases into a Swagger 2.0 document.
package openapi

import (
	"github.com/sanixdarker/gqldoc/internal/gqltype"
	"github.com/sanixdarker/gqldoc/internal/swagger"
)

// DefinitionsPrefix is the JSON pointer prefix of named type references.
const DefinitionsPrefix = "#/definitions/"

// ConvertType maps a GraphQL type reference to a parameter or response
// schema. Named composite types become references and are never inlined.
func ConvertType(t gqltype.TypeRef) *swagger.Schema {
	switch t := t.(type) {
	case *gqltype.NonNull:
		s := ConvertType(t.Of)
		s.Required = true
		return s
	case *gqltype.List:
		return swagger.Array(ConvertType(t.Of))
	case *gqltype.Scalar:
		s := &swagger.Schema{Type: swagger.PrimitiveType(t.Name)}
		if len(t.Values) > 0 {
			s.Enum = append([]string(nil), t.Values...)
		}
		return s
	case *gqltype.Object:
		return &swagger.Schema{Ref: DefinitionsPrefix + t.Name}
	case *gqltype.Union:
		return &swagger.Schema{Ref: DefinitionsPrefix + t.Name}
	}
	return &swagger.Schema{Type: "string"}
}
