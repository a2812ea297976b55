package dto

import (
	"github.com/zongruxie4/amplication/schema"
)

// Kind is the kind of a declaration.
type Kind uint8

// Declaration kinds.
const (
	KindInput Kind = iota + 1
	KindArgs
	KindObject
	KindEnum
	KindResolver
)

var kindNames = [...]string{
	KindInput:    "input",
	KindArgs:     "args",
	KindObject:   "object",
	KindEnum:     "enum",
	KindResolver: "resolver",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "invalid"
}

// Scalar is a built-in type of the generated API.
type Scalar uint8

// Scalar types. ScalarNone marks a reference to a declared type.
const (
	ScalarNone Scalar = iota
	ScalarID
	ScalarString
	ScalarInt
	ScalarFloat
	ScalarBoolean
	ScalarDateTime
	ScalarJSON
)

var scalarNames = [...]string{
	ScalarID:       "ID",
	ScalarString:   "String",
	ScalarInt:      "Int",
	ScalarFloat:    "Float",
	ScalarBoolean:  "Boolean",
	ScalarDateTime: "DateTime",
	ScalarJSON:     "JSON",
}

// String returns the scalar name.
func (s Scalar) String() string {
	if int(s) < len(scalarNames) && scalarNames[s] != "" {
		return scalarNames[s]
	}
	return "invalid"
}

// TypeRef references the type of a property, annotation or operation.
type TypeRef struct {
	// Scalar is set for built-in types.
	Scalar Scalar
	// Name holds the declared type name when Scalar is ScalarNone.
	Name string
	// Enum indicates that Name refers to an enum declaration.
	Enum bool
	// List indicates a list of the referenced type.
	List bool
}

// Ref returns a reference to the declared type with the given name.
func Ref(name string) TypeRef { return TypeRef{Name: name} }

// EnumRef returns a reference to the enum with the given name.
func EnumRef(name string) TypeRef { return TypeRef{Name: name, Enum: true} }

// ScalarRef returns a reference to a scalar.
func ScalarRef(s Scalar) TypeRef { return TypeRef{Scalar: s} }

// AsList returns a list of r.
func (r TypeRef) AsList() TypeRef {
	r.List = true
	return r
}

// Elem returns the element type of a list reference.
func (r TypeRef) Elem() TypeRef {
	r.List = false
	return r
}

// IsScalar reports if r references a built-in type.
func (r TypeRef) IsScalar() bool { return r.Scalar != ScalarNone }

// IsNested reports if r references a declared structured type,
// as opposed to a scalar or an enum.
func (r TypeRef) IsNested() bool { return !r.IsScalar() && !r.Enum && r.Name != "" }

// Ident returns the type name of the referenced element type.
func (r TypeRef) Ident() string {
	if r.IsScalar() {
		return r.Scalar.String()
	}
	return r.Name
}

// AnnotationKind tags an annotation record.
type AnnotationKind uint8

// Annotation kinds in their canonical order on a property.
const (
	// Documentation carries API documentation metadata.
	Documentation AnnotationKind = iota + 1
	// Validation is a structural or scalar validation rule.
	Validation
	// Transform converts the raw input into the referenced type before validation.
	Transform
	// Optional marks a property that may be omitted.
	Optional
	// Exposure exposes a property (or a declaration) through the GraphQL API.
	Exposure
	// Access restricts an operation to a set of callers.
	Access
)

var annotationNames = [...]string{
	Documentation: "documentation",
	Validation:    "validation",
	Transform:     "transform",
	Optional:      "optional",
	Exposure:      "exposure",
	Access:        "access",
}

// String returns the annotation kind name.
func (k AnnotationKind) String() string {
	if int(k) < len(annotationNames) && annotationNames[k] != "" {
		return annotationNames[k]
	}
	return "invalid"
}

// Check is the rule of a Validation annotation.
type Check uint8

// Validation rules.
const (
	CheckNested Check = iota + 1
	CheckString
	CheckInt
	CheckNumber
	CheckBoolean
	CheckDate
	CheckJSON
	CheckEnum
)

// Rule restricts an operation.
type Rule uint8

// Access rules, derived from the permission type of an action.
const (
	// RuleAnyRole requires an authenticated caller with any role.
	RuleAnyRole Rule = iota + 1
	// RuleRoles requires one of the listed roles.
	RuleRoles
	// RulePublic allows every caller.
	RulePublic
)

// Annotation is a tagged metadata record attached to a declaration,
// a property or an operation. Dialects render it in framework syntax.
type Annotation struct {
	Kind AnnotationKind
	// Type is the referenced type of documentation, transform and exposure
	// annotations.
	Type TypeRef
	// Required is the documented requirement of the property.
	Required bool
	// Nullable is the exposed nullability of the property.
	Nullable bool
	// Check is the rule of a validation annotation.
	Check Check
	// Each applies the validation rule to every element of a list.
	Each bool
	// Rule, Action and Roles describe an access annotation.
	Rule   Rule
	Action schema.Action
	Roles  []string
}

// Property is a named member of an input, args or object declaration.
type Property struct {
	Name        string
	Type        TypeRef
	Required    bool
	Nullable    bool
	Description string
	// Annotations in rendering order.
	Annotations []Annotation
}

// Annotation returns the first annotation of the given kind.
func (p *Property) Annotation(k AnnotationKind) (Annotation, bool) {
	for _, a := range p.Annotations {
		if a.Kind == k {
			return a, true
		}
	}
	return Annotation{}, false
}

// Value is a member of an enum declaration.
type Value struct {
	// Name is the identifier of the member, e.g. "Active".
	Name string
	// Value is the stored value, e.g. "active".
	Value string
	// Label is the display label.
	Label string
}

// Op is the operation a resolver exposes.
type Op uint8

// Resolver operations.
const (
	OpMeta Op = iota + 1
	OpFindMany
	OpFindOne
	OpCreate
	OpUpdate
	OpDelete
)

// IsQuery reports if the operation is a read.
func (o Op) IsQuery() bool { return o == OpMeta || o == OpFindMany || o == OpFindOne }

// Method returns the name of the service method that implements the operation.
func (o Op) Method() string {
	switch o {
	case OpMeta:
		return "count"
	case OpFindMany:
		return "findMany"
	case OpFindOne:
		return "findOne"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}
	return ""
}

// Action returns the permission action of the operation.
func (o Op) Action() schema.Action {
	switch o {
	case OpMeta, OpFindMany:
		return schema.ActionSearch
	case OpFindOne:
		return schema.ActionView
	case OpCreate:
		return schema.ActionCreate
	case OpUpdate:
		return schema.ActionUpdate
	case OpDelete:
		return schema.ActionDelete
	}
	return ""
}

// Operation is a query or mutation of a resolver declaration.
type Operation struct {
	Name string
	Op   Op
	// Args is the name of the arguments declaration.
	Args string
	// Returns is the result type.
	Returns TypeRef
	// Nullable indicates that the operation may return no result.
	Nullable bool
	// Annotations holds the access annotation of the operation.
	Annotations []Annotation
}

// Declaration is a named type produced by the synthesizer.
type Declaration struct {
	Name        string
	Kind        Kind
	Description string
	// Annotations of the declaration itself, rendered before its header.
	Annotations []Annotation
	// Properties of input, args and object declarations, in field order.
	Properties []*Property
	// Values of enum declarations.
	Values []Value
	// Operations of resolver declarations.
	Operations []*Operation
}

// Property returns the property with the given name.
func (d *Declaration) Property(name string) (*Property, bool) {
	for _, p := range d.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Operation returns the operation with the given name.
func (d *Declaration) Operation(name string) (*Operation, bool) {
	for _, op := range d.Operations {
		if op.Name == name {
			return op, true
		}
	}
	return nil, false
}

// References returns the names of the declared types d refers to, in order
// of appearance and without duplicates. Scalars are not included.
func (d *Declaration) References() []string {
	var (
		refs []string
		seen = make(map[string]bool)
	)
	add := func(r TypeRef) {
		if r.IsScalar() || r.Name == "" || seen[r.Name] {
			return
		}
		seen[r.Name] = true
		refs = append(refs, r.Name)
	}
	for _, a := range d.Annotations {
		add(a.Type)
	}
	for _, p := range d.Properties {
		add(p.Type)
		for _, a := range p.Annotations {
			add(a.Type)
		}
	}
	for _, op := range d.Operations {
		if op.Args != "" {
			add(Ref(op.Args))
		}
		add(op.Returns)
	}
	return refs
}
