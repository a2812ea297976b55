package schema

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load decodes all entities from r. The input may hold several YAML documents;
// each document is an entity, a list of entities, or a mapping with an
// "entities" list. JSON input is accepted as well.
func Load(r io.Reader) ([]*Entity, error) {
	var (
		entities []*Entity
		dec      = yaml.NewDecoder(r)
	)
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return entities, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode entity document: %w", err)
		}
		es, err := decodeDocument(&doc)
		if err != nil {
			return nil, err
		}
		entities = append(entities, es...)
	}
}

func decodeDocument(doc *yaml.Node) ([]*Entity, error) {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var es []*Entity
		if err := root.Decode(&es); err != nil {
			return nil, fmt.Errorf("decode entity list (line %d): %w", root.Line, err)
		}
		return es, nil
	case yaml.MappingNode:
		if hasKey(root, "entities") {
			var v struct {
				Entities []*Entity `yaml:"entities"`
			}
			if err := root.Decode(&v); err != nil {
				return nil, fmt.Errorf("decode entities (line %d): %w", root.Line, err)
			}
			return v.Entities, nil
		}
		e := &Entity{}
		if err := root.Decode(e); err != nil {
			return nil, fmt.Errorf("decode entity (line %d): %w", root.Line, err)
		}
		return []*Entity{e}, nil
	default:
		return nil, fmt.Errorf("unexpected entity document at line %d", root.Line)
	}
}

func hasKey(n *yaml.Node, key string) bool {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return true
		}
	}
	return false
}

// LoadFile loads the entities defined in the file at path.
func LoadFile(path string) ([]*Entity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	es, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return es, nil
}

// LoadDir loads the entities of all .yaml, .yml and .json files in dir,
// in file name order.
func LoadDir(dir string) ([]*Entity, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var entities []*Entity
	for _, f := range files {
		if f.IsDir() || !IsDefinitionFile(f.Name()) {
			continue
		}
		es, err := LoadFile(filepath.Join(dir, f.Name()))
		if err != nil {
			return nil, err
		}
		entities = append(entities, es...)
	}
	return entities, nil
}

// LoadPath loads the entities of a file, or of a directory as LoadDir does.
func LoadPath(path string) ([]*Entity, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return LoadDir(path)
	}
	return LoadFile(path)
}

// IsDefinitionFile reports if the file name has an entity definition extension.
func IsDefinitionFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
