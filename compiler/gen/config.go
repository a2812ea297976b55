package gen

import (
	"io"
	"log/slog"
	"runtime"
	"slices"
)

// Output dialects.
const (
	// DialectNest renders NestJS TypeScript classes.
	DialectNest = "nest"
	// DialectGraphQL renders a GraphQL SDL schema.
	DialectGraphQL = "graphql"
	// DialectGo renders Go structs and resolver interfaces.
	DialectGo = "go"
)

// Dialects holds all supported output dialects.
var Dialects = []string{DialectNest, DialectGraphQL, DialectGo}

// DefaultHeader is the header comment of every generated file.
const DefaultHeader = "Code generated by dsg. DO NOT EDIT."

// Config holds the global codegen configuration of a generation run.
type Config struct {
	// Target is the output directory of the generated files.
	Target string
	// Dialects lists the output dialects to render.
	Dialects []string
	// Package is the package name of the Go dialect output.
	Package string
	// Header is the comment placed at the top of each generated file.
	Header string
	// Workers limits the number of entities generated in parallel.
	Workers int
	// CacheFile is the path of the incremental generation manifest,
	// relative to Target. Used when FeatureCache is enabled.
	CacheFile string
	// Features holds the enabled feature-flags.
	Features []Feature
	// Logger receives the progress of the generation run.
	Logger *slog.Logger
}

// defaultConfig returns the configuration options are applied on.
func defaultConfig() *Config {
	c := &Config{
		Target:    "generated",
		Dialects:  []string{DialectNest, DialectGraphQL},
		Package:   "dto",
		Header:    DefaultHeader,
		Workers:   runtime.GOMAXPROCS(0),
		CacheFile: ".dsg-cache",
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, f := range AllFeatures {
		if f.Default {
			c.Features = append(c.Features, f)
		}
	}
	return c
}

// FeatureEnabled reports if the given feature name is enabled.
// It's exported to be used by the generation driver.
func (c Config) FeatureEnabled(name string) (bool, error) {
	if !slices.ContainsFunc(AllFeatures, func(f Feature) bool { return f.Name == name }) {
		return false, NewConfigError("Features", name, "unknown feature")
	}
	return slices.ContainsFunc(c.Features, func(f Feature) bool { return f.Name == name }), nil
}

// Enabled is like FeatureEnabled for known features.
func (c Config) Enabled(f Feature) bool {
	ok, _ := c.FeatureEnabled(f.Name)
	return ok
}

// HasDialect reports if the given dialect is rendered.
func (c Config) HasDialect(name string) bool {
	return slices.Contains(c.Dialects, name)
}
