package dto

// Names of the shared declarations.
const (
	SortOrder        = "SortOrder"
	MetaQueryPayload = "MetaQueryPayload"
)

// filters lists the shared scalar filters and their operators.
var filters = []struct {
	name   string
	scalar Scalar
	ops    []string
}{
	{"StringFilter", ScalarString, []string{"equals", "in", "notIn", "lt", "lte", "gt", "gte", "contains", "startsWith", "endsWith", "not"}},
	{"IntFilter", ScalarInt, []string{"equals", "in", "notIn", "lt", "lte", "gt", "gte", "not"}},
	{"FloatFilter", ScalarFloat, []string{"equals", "in", "notIn", "lt", "lte", "gt", "gte", "not"}},
	{"DateTimeFilter", ScalarDateTime, []string{"equals", "in", "notIn", "lt", "lte", "gt", "gte", "not"}},
	{"BooleanFilter", ScalarBoolean, []string{"equals", "not"}},
}

// Common returns the declarations shared by all entities: the sort order,
// the count payload and the scalar filters, in a fixed order.
func Common() []*Declaration {
	decls := []*Declaration{
		{
			Name: SortOrder,
			Kind: KindEnum,
			Values: []Value{
				{Name: "Asc", Value: "asc", Label: "Ascending"},
				{Name: "Desc", Value: "desc", Label: "Descending"},
			},
		},
		{
			Name:        MetaQueryPayload,
			Kind:        KindObject,
			Annotations: []Annotation{{Kind: Exposure}},
			Properties:  []*Property{NewProperty("count", ScalarRef(ScalarInt), true, false)},
		},
	}
	for _, f := range filters {
		decls = append(decls, filter(f.name, f.scalar, f.ops, false), filter(nullableFilter(f.name), f.scalar, f.ops, true))
	}
	json := newInput("JsonFilter")
	json.Properties = []*Property{
		NewProperty("equals", ScalarRef(ScalarJSON), false, true),
		NewProperty("not", ScalarRef(ScalarJSON), false, true),
	}
	return append(decls, json)
}

func filter(name string, s Scalar, ops []string, nullable bool) *Declaration {
	d := newInput(name)
	for _, op := range ops {
		ref := ScalarRef(s)
		if op == "in" || op == "notIn" {
			ref = ref.AsList()
		}
		d.Properties = append(d.Properties, NewProperty(op, ref, false, nullable && op != "in" && op != "notIn"))
	}
	return d
}
