package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zongruxie4/amplication/compiler/gen"
)

// ProjectFile is the default name of the project file.
const ProjectFile = "dsg.yaml"

// Project is the content of a project file. Command-line flags take
// precedence over it.
type Project struct {
	// Schema lists the entity definition files and directories.
	Schema   []string `yaml:"schema,omitempty"`
	Store    *Store   `yaml:"store,omitempty"`
	Target   string   `yaml:"target,omitempty"`
	Dialects []string `yaml:"dialects,omitempty"`
	Package  string   `yaml:"package,omitempty"`
	Header   *string  `yaml:"header,omitempty"`
	Workers  int      `yaml:"workers,omitempty"`
	Cache    string   `yaml:"cache,omitempty"`
	// Features and Disable enable and disable feature-flags by name.
	Features []string `yaml:"features,omitempty"`
	Disable  []string `yaml:"disable,omitempty"`
}

// Store is the SQL schema store of a project.
type Store struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// LoadProject reads the project file at path. A missing file yields an
// empty project unless required is set.
func LoadProject(path string, required bool) (*Project, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return &Project{}, nil
	}
	if err != nil {
		return nil, err
	}
	p := &Project{}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode project file %s: %w", path, err)
	}
	return p, nil
}

// Options returns the codegen options of the project.
func (p *Project) Options() ([]gen.Option, error) {
	var opts []gen.Option
	if p.Target != "" {
		opts = append(opts, gen.WithTarget(p.Target))
	}
	if len(p.Dialects) > 0 {
		opts = append(opts, gen.WithDialects(p.Dialects...))
	}
	if p.Package != "" {
		opts = append(opts, gen.WithPackage(p.Package))
	}
	if p.Header != nil {
		opts = append(opts, gen.WithHeader(*p.Header))
	}
	if p.Workers != 0 {
		opts = append(opts, gen.WithWorkers(p.Workers))
	}
	if p.Cache != "" {
		opts = append(opts, gen.WithCache(p.Cache))
	}
	enable, err := features(p.Features)
	if err != nil {
		return nil, err
	}
	disable, err := features(p.Disable)
	if err != nil {
		return nil, err
	}
	return append(opts, gen.WithFeatures(enable...), gen.WithoutFeatures(disable...)), nil
}

// features resolves feature-flags by name.
func features(names []string) ([]gen.Feature, error) {
	fs := make([]gen.Feature, 0, len(names))
	for _, name := range names {
		f, ok := feature(name)
		if !ok {
			return nil, gen.NewConfigError("Features", name, "unknown feature")
		}
		fs = append(fs, f)
	}
	return fs, nil
}

func feature(name string) (gen.Feature, bool) {
	for _, f := range gen.AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return gen.Feature{}, false
}
