package gen

import (
	"errors"
	"fmt"

	"github.com/zongruxie4/amplication/schema"
)

// Graph holds the ingested types of one generation run.
type Graph struct {
	*Config
	// Nodes are the valid types of the run, in input order.
	Nodes []*Type
	// Errors holds one SchemaError per entity that failed ingestion.
	Errors []*SchemaError
}

// NewGraph ingests the given entities and resolves the relations between them.
// An invalid entity does not stop the ingestion of the others: it is recorded
// in Graph.Errors, left out of Graph.Nodes, and reported in the returned error.
// Entities whose relations point to a failed entity fail as well.
func NewGraph(c *Config, entities ...*schema.Entity) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	g := &Graph{Config: c}
	seen := make(map[string]bool)
	for _, e := range entities {
		t, err := NewType(e)
		if err != nil {
			g.fail(err)
			continue
		}
		if seen[t.Name] {
			g.fail(NewSchemaError(t.Name, "", "entity redeclared", nil))
			continue
		}
		seen[t.Name] = true
		g.Nodes = append(g.Nodes, t)
	}
	g.resolve()
	for _, n := range g.Nodes {
		for _, f := range n.Fields {
			if f.IsToMany() {
				target := f.Relation.Type
				target.referrers = append(target.referrers, f)
			}
		}
	}
	return g, g.Err()
}

// Err returns the joined ingestion errors of the graph, or nil.
func (g *Graph) Err() error {
	errs := make([]error, len(g.Errors))
	for i, err := range g.Errors {
		errs[i] = err
	}
	return errors.Join(errs...)
}

// Node returns the type with the given name.
func (g *Graph) Node(name string) (*Type, bool) {
	for _, n := range g.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return nil, false
}

func (g *Graph) fail(err error) {
	var serr *SchemaError
	if !errors.As(err, &serr) {
		serr = NewSchemaError("", "", "", err)
	}
	g.Errors = append(g.Errors, serr)
}

// resolve links relation fields to their target types until no type has a
// dangling or inconsistent relation.
func (g *Graph) resolve() {
	for {
		var (
			valid  = make([]*Type, 0, len(g.Nodes))
			failed bool
		)
		for _, n := range g.Nodes {
			if err := g.resolveType(n); err != nil {
				g.fail(err)
				failed = true
				continue
			}
			valid = append(valid, n)
		}
		g.Nodes = valid
		if !failed {
			return
		}
	}
}

func (g *Graph) resolveType(t *Type) error {
	for _, f := range t.Fields {
		if f.Relation == nil {
			continue
		}
		target := g.lookup(f.Relation.Target)
		if target == nil {
			return NewSchemaError(t.Name, f.Name, fmt.Sprintf("relation target %q is not a valid entity", f.Relation.Target), nil)
		}
		f.Relation.Type = target
	}
	// Targets declared by name and by id resolve to the same type.
	if err := t.checkUniqueRelations(); err != nil {
		return err
	}
	for _, f := range t.Fields {
		if f.Relation == nil || f.Relation.Inverse == "" {
			continue
		}
		inv, ok := f.Relation.Type.Field(f.Relation.Inverse)
		switch {
		case !ok:
			return NewSchemaError(t.Name, f.Name, fmt.Sprintf("inverse field %q not found on %s", f.Relation.Inverse, f.Relation.Type.Name), nil)
		case inv.Relation == nil || g.lookup(inv.Relation.Target) != t:
			return NewSchemaError(t.Name, f.Name, fmt.Sprintf("inverse field %s.%s does not point back to %s", f.Relation.Type.Name, inv.Name, t.Name), nil)
		}
	}
	return nil
}

// lookup returns the node with the given name or entity id.
func (g *Graph) lookup(ref string) *Type {
	for _, n := range g.Nodes {
		if n.Name == ref || (n.def != nil && n.def.ID != "" && n.def.ID == ref) {
			return n
		}
	}
	return nil
}
