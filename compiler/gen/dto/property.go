package dto

import (
	"github.com/zongruxie4/amplication/compiler/gen"
	"github.com/zongruxie4/amplication/schema"
)

// Declaration names derived from an entity name.
func WhereUniqueInputName(entity string) string { return entity + "WhereUniqueInput" }
func WhereInputName(entity string) string { return entity + "WhereInput" }
func CreateInputName(entity string) string { return entity + "CreateInput" }
func UpdateInputName(entity string) string { return entity + "UpdateInput" }
func OrderByInputName(entity string) string { return entity + "OrderByInput" }
func ListRelationFilterName(entity string) string { return entity + "ListRelationFilter" }
func CreateNestedManyInputName(entity string) string { return entity + "CreateNestedManyInput" }
func UpdateManyInputName(entity string) string { return entity + "UpdateManyInput" }
func FindOneArgsName(entity string) string { return entity + "FindOneArgs" }
func FindManyArgsName(entity string) string { return entity + "FindManyArgs" }
func CreateArgsName(entity string) string { return "Create" + entity + "Args" }
func UpdateArgsName(entity string) string { return "Update" + entity + "Args" }
func DeleteArgsName(entity string) string { return "Delete" + entity + "Args" }
func ResolverName(entity string) string { return entity + "Resolver" }

// NewProperty returns a property with its annotations in canonical order:
// documentation, validation, transform, optional, exposure.
func NewProperty(name string, ref TypeRef, required, nullable bool) *Property {
	p := &Property{
		Name:     name,
		Type:     ref,
		Required: required,
		Nullable: nullable,
	}
	p.Annotations = annotate(p)
	return p
}

func annotate(p *Property) []Annotation {
	as := []Annotation{{
		Kind:     Documentation,
		Type:     p.Type,
		Required: p.Required,
	}}
	if c, ok := checkOf(p.Type); ok {
		as = append(as, Annotation{
			Kind:  Validation,
			Type:  p.Type.Elem(),
			Check: c,
			Each:  p.Type.List && c != CheckNested,
		})
	}
	if p.Type.IsNested() || p.Type.Scalar == ScalarDateTime {
		as = append(as, Annotation{Kind: Transform, Type: p.Type.Elem()})
	}
	if !p.Required {
		as = append(as, Annotation{Kind: Optional})
	}
	return append(as, Annotation{
		Kind:     Exposure,
		Type:     p.Type,
		Nullable: !p.Required || p.Nullable,
	})
}

func checkOf(r TypeRef) (Check, bool) {
	switch {
	case r.Enum:
		return CheckEnum, true
	case r.IsNested():
		return CheckNested, true
	}
	switch r.Scalar {
	case ScalarID, ScalarString:
		return CheckString, true
	case ScalarInt:
		return CheckInt, true
	case ScalarFloat:
		return CheckNumber, true
	case ScalarBoolean:
		return CheckBoolean, true
	case ScalarDateTime:
		return CheckDate, true
	case ScalarJSON:
		return CheckJSON, true
	}
	return 0, false
}

// scalarOf returns the reference of a non-relation field.
func scalarOf(f *gen.Field) TypeRef {
	var r TypeRef
	switch f.DataType {
	case schema.TypeID:
		r = ScalarRef(ScalarID)
	case schema.TypeWholeNumber:
		r = ScalarRef(ScalarInt)
	case schema.TypeDecimalNumber:
		r = ScalarRef(ScalarFloat)
	case schema.TypeBoolean:
		r = ScalarRef(ScalarBoolean)
	case schema.TypeDateTime, schema.TypeCreatedAt, schema.TypeUpdatedAt:
		r = ScalarRef(ScalarDateTime)
	case schema.TypeJSON, schema.TypeRoles:
		r = ScalarRef(ScalarJSON)
	case schema.TypeOptionSet, schema.TypeMultiSelectOptionSet:
		r = EnumRef(f.EnumName())
	default:
		r = ScalarRef(ScalarString)
	}
	if f.IsList() {
		r = r.AsList()
	}
	return r
}

// filterOf returns the shared filter input of a scalar field.
func filterOf(f *gen.Field) TypeRef {
	var name string
	switch scalarOf(f).Scalar {
	case ScalarInt:
		name = "IntFilter"
	case ScalarFloat:
		name = "FloatFilter"
	case ScalarBoolean:
		name = "BooleanFilter"
	case ScalarDateTime:
		name = "DateTimeFilter"
	case ScalarJSON:
		return Ref("JsonFilter")
	default:
		name = "StringFilter"
	}
	if f.Nullable {
		name = nullableFilter(name)
	}
	return Ref(name)
}

func nullableFilter(name string) string {
	return name[:len(name)-len("Filter")] + "NullableFilter"
}
