package schema

// The following types describe an entity as it is stored by the designer.
type (
	// Entity is a user-defined data type of the model.
	Entity struct {
		// ID is the designer's identifier of the entity. Relations may
		// reference an entity either by ID or by Name.
		ID string `json:"id,omitempty" yaml:"id,omitempty"`
		// Name is the PascalCase type name, e.g. "ExampleEntity".
		Name string `json:"name" yaml:"name"`
		// DisplayName is the human readable name, e.g. "Example Entity".
		DisplayName string `json:"displayName,omitempty" yaml:"displayName,omitempty"`
		// PluralName is the plural type name, e.g. "ExampleEntities".
		PluralName string `json:"pluralName,omitempty" yaml:"pluralName,omitempty"`
		// PluralDisplayName is the plural human readable name.
		PluralDisplayName string `json:"pluralDisplayName,omitempty" yaml:"pluralDisplayName,omitempty"`
		// Description of the entity, used in the generated API documentation.
		Description string `json:"description,omitempty" yaml:"description,omitempty"`
		// Fields of the entity in declaration order.
		Fields []*Field `json:"fields,omitempty" yaml:"fields,omitempty"`
		// Permissions holds one rule per guarded action.
		Permissions []*Permission `json:"permissions,omitempty" yaml:"permissions,omitempty"`
	}

	// Field is a single attribute of an entity.
	Field struct {
		Name        string   `json:"name" yaml:"name"`
		DisplayName string   `json:"displayName,omitempty" yaml:"displayName,omitempty"`
		DataType    DataType `json:"dataType" yaml:"dataType"`
		// Nullable reports if the field may hold no value.
		Nullable bool `json:"nullable,omitempty" yaml:"nullable,omitempty"`
		// Unique reports if the field value identifies a single entity instance.
		Unique bool `json:"unique,omitempty" yaml:"unique,omitempty"`
		// Searchable reports if the field is exposed in the filter input.
		// A nil value means the data type decides.
		Searchable  *bool  `json:"searchable,omitempty" yaml:"searchable,omitempty"`
		Description string `json:"description,omitempty" yaml:"description,omitempty"`
		// Relation holds the relation metadata of Lookup fields.
		Relation *Relation `json:"relation,omitempty" yaml:"relation,omitempty"`
		// Options holds the allowed values of option-set fields.
		Options []Option `json:"options,omitempty" yaml:"options,omitempty"`
	}

	// Relation describes the entity a Lookup field points to.
	Relation struct {
		// Target is the name (or ID) of the related entity.
		Target string `json:"target" yaml:"target"`
		// Cardinality is the number of related instances.
		Cardinality Cardinality `json:"cardinality,omitempty" yaml:"cardinality,omitempty"`
		// Inverse is the name of the field on the target entity that
		// points back to this one, if any.
		Inverse string `json:"inverse,omitempty" yaml:"inverse,omitempty"`
	}

	// Option is a single value of an option set.
	Option struct {
		Label string `json:"label" yaml:"label"`
		Value string `json:"value" yaml:"value"`
	}

	// Permission guards one action of the entity API.
	Permission struct {
		Action Action         `json:"action" yaml:"action"`
		Type   PermissionType `json:"type" yaml:"type"`
		// Roles granted the action when Type is Granular.
		Roles []string `json:"roles,omitempty" yaml:"roles,omitempty"`
	}
)

// Cardinality of a relation.
type Cardinality string

// Relation cardinalities.
const (
	One  Cardinality = "one"
	Many Cardinality = "many"
)

// Valid reports if c is a known cardinality. The empty value means One.
func (c Cardinality) Valid() bool {
	return c == "" || c == One || c == Many
}

// Action is an operation of the generated entity API.
type Action string

// Entity actions.
const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionSearch Action = "search"
)

// PermissionType is the way an action is granted.
type PermissionType string

// Permission types.
const (
	// AllRoles grants the action to every authenticated role.
	AllRoles PermissionType = "AllRoles"
	// Granular grants the action to the listed roles only.
	Granular PermissionType = "Granular"
	// Public grants the action without authentication.
	Public PermissionType = "Public"
	// Disabled removes the action from the API.
	Disabled PermissionType = "Disabled"
)

// Field returns the field with the given name, or nil.
func (e *Entity) Field(name string) *Field {
	for _, f := range e.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Permission returns the rule of the given action. Actions without
// an explicit rule are granted to all roles.
func (e *Entity) Permission(action Action) *Permission {
	for _, p := range e.Permissions {
		if p.Action == action {
			return p
		}
	}
	return &Permission{Action: action, Type: AllRoles}
}

// IsMany reports if the relation points to many instances.
func (r *Relation) IsMany() bool {
	return r != nil && r.Cardinality == Many
}
