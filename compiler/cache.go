package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// manifestVersion invalidates all manifests written by older layouts.
const manifestVersion = 1

// namespace of the fingerprint UUIDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("dsg/cache"))

// Manifest records the rendered output of each entity of a previous run,
// keyed by the fingerprint of the declarations it was rendered from.
type Manifest struct {
	Version  int               `json:"version"`
	Entities map[string]*Entry `json:"entities"`

	mu sync.Mutex
}

// Entry is the cached output of one entity.
type Entry struct {
	Fingerprint string `json:"fingerprint"`
	// Parts maps a rendered part ("nest.dto", "graphql", ...) to its text.
	Parts map[string]string `json:"parts"`
}

// NewManifest returns an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{Version: manifestVersion, Entities: make(map[string]*Entry)}
}

// LoadManifest reads the manifest at path. A missing file or a manifest
// of another version yields an empty manifest.
func LoadManifest(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewManifest(), nil
	}
	if err != nil {
		return nil, err
	}
	m := NewManifest()
	dec := msgpack.NewDecoder(bytes.NewReader(b))
	dec.SetCustomStructTag("json")
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("decode cache manifest %s: %w", path, err)
	}
	if m.Version != manifestVersion || m.Entities == nil {
		return NewManifest(), nil
	}
	return m, nil
}

// Encode returns the msgpack encoding of the manifest.
func (m *Manifest) Encode() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return encode(m)
}

// Lookup returns the cached parts of the entity if they were rendered
// from declarations with the same fingerprint.
func (m *Manifest) Lookup(entity, fingerprint string) (map[string]string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.Entities[entity]
	if !ok || e.Fingerprint != fingerprint {
		return nil, false
	}
	return e.Parts, true
}

// Store records the rendered parts of the entity.
func (m *Manifest) Store(entity, fingerprint string, parts map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entities[entity] = &Entry{Fingerprint: fingerprint, Parts: parts}
}

// Fingerprint returns a name-based UUID of the msgpack encoding of v.
// Only the keys of map[string]string, map[string]bool and map[string]any
// are sorted; other map types must not appear in v, their encoding order
// is random.
func Fingerprint(v any) (string, error) {
	b, err := encode(v)
	if err != nil {
		return "", err
	}
	return uuid.NewSHA1(namespace, b).String(), nil
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
