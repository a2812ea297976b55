package schema

// DataType is the designer's type tag of a field.
type DataType string

// Field data types.
const (
	TypeID                   DataType = "Id"
	TypeSingleLineText       DataType = "SingleLineText"
	TypeMultiLineText        DataType = "MultiLineText"
	TypeEmail                DataType = "Email"
	TypeWholeNumber          DataType = "WholeNumber"
	TypeDecimalNumber        DataType = "DecimalNumber"
	TypeDateTime             DataType = "DateTime"
	TypeCreatedAt            DataType = "CreatedAt"
	TypeUpdatedAt            DataType = "UpdatedAt"
	TypeBoolean              DataType = "Boolean"
	TypeJSON                 DataType = "Json"
	TypeGeographicLocation   DataType = "GeographicLocation"
	TypeOptionSet            DataType = "OptionSet"
	TypeMultiSelectOptionSet DataType = "MultiSelectOptionSet"
	TypeLookup               DataType = "Lookup"
	TypeUsername             DataType = "Username"
	TypePassword             DataType = "Password"
	TypeRoles                DataType = "Roles"
)

var dataTypes = map[DataType]struct{}{
	TypeID:                   {},
	TypeSingleLineText:       {},
	TypeMultiLineText:        {},
	TypeEmail:                {},
	TypeWholeNumber:          {},
	TypeDecimalNumber:        {},
	TypeDateTime:             {},
	TypeCreatedAt:            {},
	TypeUpdatedAt:            {},
	TypeBoolean:              {},
	TypeJSON:                 {},
	TypeGeographicLocation:   {},
	TypeOptionSet:            {},
	TypeMultiSelectOptionSet: {},
	TypeLookup:               {},
	TypeUsername:             {},
	TypePassword:             {},
	TypeRoles:                {},
}

// Valid reports if t is a known data type.
func (t DataType) Valid() bool {
	_, ok := dataTypes[t]
	return ok
}

// String implements the fmt.Stringer interface.
func (t DataType) String() string { return string(t) }

// IsText reports if values of t are plain strings.
func (t DataType) IsText() bool {
	switch t {
	case TypeSingleLineText, TypeMultiLineText, TypeEmail, TypeUsername, TypePassword:
		return true
	}
	return false
}

// IsTime reports if values of t are timestamps.
func (t DataType) IsTime() bool {
	return t == TypeDateTime || t == TypeCreatedAt || t == TypeUpdatedAt
}

// IsOptionSet reports if values of t are restricted to a set of options.
func (t DataType) IsOptionSet() bool {
	return t == TypeOptionSet || t == TypeMultiSelectOptionSet
}

// System reports if values of t are maintained by the generated service
// and never set through the API.
func (t DataType) System() bool {
	return t == TypeID || t == TypeCreatedAt || t == TypeUpdatedAt
}
