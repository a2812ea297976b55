// Package store loads entity definitions from a SQL schema store.
//
// The store holds the tables entities, entity_fields and entity_permissions.
// It is read-only: definitions are maintained by the designer, Init only
// creates the tables of an empty database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/zongruxie4/amplication/schema"
)

// Tables of the schema store.
var tables = []string{
	`CREATE TABLE IF NOT EXISTS entities (
	id VARCHAR(64) PRIMARY KEY,
	name VARCHAR(255) NOT NULL UNIQUE,
	display_name VARCHAR(255),
	plural_name VARCHAR(255),
	plural_display_name VARCHAR(255),
	description TEXT,
	position INTEGER NOT NULL DEFAULT 0
)`,
	`CREATE TABLE IF NOT EXISTS entity_fields (
	entity_id VARCHAR(64) NOT NULL REFERENCES entities (id),
	position INTEGER NOT NULL,
	name VARCHAR(255) NOT NULL,
	display_name VARCHAR(255),
	data_type VARCHAR(64) NOT NULL,
	nullable BOOLEAN NOT NULL DEFAULT FALSE,
	is_unique BOOLEAN NOT NULL DEFAULT FALSE,
	searchable BOOLEAN,
	description TEXT,
	properties TEXT,
	PRIMARY KEY (entity_id, name)
)`,
	`CREATE TABLE IF NOT EXISTS entity_permissions (
	entity_id VARCHAR(64) NOT NULL REFERENCES entities (id),
	action VARCHAR(32) NOT NULL,
	type VARCHAR(32) NOT NULL,
	roles TEXT,
	PRIMARY KEY (entity_id, action)
)`,
}

const (
	queryEntities = `SELECT id, name, display_name, plural_name, plural_display_name, description FROM entities ORDER BY position, name`
	queryFields   = `SELECT entity_id, name, display_name, data_type, nullable, is_unique, searchable, description, properties FROM entity_fields ORDER BY entity_id, position`
	queryPerms    = `SELECT entity_id, action, type, roles FROM entity_permissions ORDER BY entity_id, action`
)

// Store reads entity definitions from a database.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger of the store.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a store over an open database.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open opens the database with the given registered driver and checks
// the connection.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: connect %s: %w", driver, err)
	}
	return New(db, opts...), nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Init creates the tables of the store if they do not exist.
func (s *Store) Init(ctx context.Context) error {
	for _, q := range tables {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("store: init: %w", err)
		}
	}
	return nil
}

// Entities returns all entity definitions, in designer order.
func (s *Store) Entities(ctx context.Context) ([]*schema.Entity, error) {
	var (
		entities []*schema.Entity
		byID     = make(map[string]*schema.Entity)
	)
	err := s.query(ctx, queryEntities, func(rows *sql.Rows) error {
		var (
			e                                        schema.Entity
			display, plural, pluralDisplay, describe sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Name, &display, &plural, &pluralDisplay, &describe); err != nil {
			return err
		}
		e.DisplayName, e.PluralName = display.String, plural.String
		e.PluralDisplayName, e.Description = pluralDisplay.String, describe.String
		entities = append(entities, &e)
		byID[e.ID] = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	err = s.query(ctx, queryFields, func(rows *sql.Rows) error {
		var (
			id                       string
			f                        schema.Field
			display, describe, props sql.NullString
			searchable               sql.NullBool
		)
		if err := rows.Scan(&id, &f.Name, &display, &f.DataType, &f.Nullable, &f.Unique, &searchable, &describe, &props); err != nil {
			return err
		}
		e, ok := byID[id]
		if !ok {
			return fmt.Errorf("field %q of unknown entity %q", f.Name, id)
		}
		f.DisplayName, f.Description = display.String, describe.String
		if searchable.Valid {
			f.Searchable = &searchable.Bool
		}
		if err := properties(&f, props.String); err != nil {
			return fmt.Errorf("field %s.%s: %w", e.Name, f.Name, err)
		}
		e.Fields = append(e.Fields, &f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	err = s.query(ctx, queryPerms, func(rows *sql.Rows) error {
		var (
			id    string
			p     schema.Permission
			roles sql.NullString
		)
		if err := rows.Scan(&id, &p.Action, &p.Type, &roles); err != nil {
			return err
		}
		e, ok := byID[id]
		if !ok {
			return fmt.Errorf("permission %q of unknown entity %q", p.Action, id)
		}
		for _, r := range strings.Split(roles.String, ",") {
			if r = strings.TrimSpace(r); r != "" {
				p.Roles = append(p.Roles, r)
			}
		}
		e.Permissions = append(e.Permissions, &p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("entities loaded", "count", len(entities))
	return entities, nil
}

// Entity returns the definition of the entity with the given name or ID.
func (s *Store) Entity(ctx context.Context, name string) (*schema.Entity, error) {
	entities, err := s.Entities(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range entities {
		if e.Name == name || e.ID == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("store: entity %q not found", name)
}

// query runs q and calls scan for each row.
func (s *Store) query(ctx context.Context, q string, scan func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return fmt.Errorf("store: query: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("store: scan: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("store: query: %w", err)
	}
	return nil
}

// properties decodes the type specific properties of a field: the relation
// of lookups and the options of option sets.
func properties(f *schema.Field, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var p struct {
		Relation *schema.Relation `json:"relation"`
		Options  []schema.Option  `json:"options"`
	}
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return fmt.Errorf("decode properties: %w", err)
	}
	f.Relation, f.Options = p.Relation, p.Options
	return nil
}
