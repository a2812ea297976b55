// Package schema holds the entity definitions produced by the designer.
//
// An entity is the low-code equivalent of a database table: an ordered list of
// fields, where exactly one field is the identifier, plus the permission rules
// that guard the generated API:
//
//	name: ExampleEntity
//	fields:
//	  - name: id
//	    dataType: Id
//	  - name: email
//	    dataType: Email
//	    unique: true
//	    nullable: true
//	  - name: orders
//	    dataType: Lookup
//	    relation:
//	      target: Order
//	      cardinality: many
//	permissions:
//	  - action: view
//	    type: Public
//
// Definitions are read-only input for the code generator; the types in this
// package carry no behavior beyond lookups and loading.
//
// # Loading
//
// Definitions are stored as YAML or JSON documents. A document holds either a
// single entity or a list of entities:
//
//	entities, err := schema.LoadDir("./entities")
package schema
