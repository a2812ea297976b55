package gen

import (
	"os"
	"path/filepath"
)

var (
	// FeatureResolvers provides a feature-flag for emitting the resolver
	// bindings of each entity next to its DTOs.
	FeatureResolvers = Feature{
		Name:        "resolvers",
		Stage:       Stable,
		Default:     true,
		Description: "Resolvers emits the query and mutation bindings that reference the entity DTOs",
		cleanup: func(c *Config) error {
			matches, err := filepath.Glob(filepath.Join(c.Target, "*", "*.resolver.ts"))
			if err != nil {
				return err
			}
			for _, m := range matches {
				if err := remove(filepath.Dir(m), filepath.Base(m)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	// FeatureMetaQuery provides a feature-flag for the count query
	// (_<plural>Meta) of each entity.
	FeatureMetaQuery = Feature{
		Name:        "meta",
		Stage:       Beta,
		Default:     true,
		Description: "Meta adds a count query to the resolver bindings of each entity",
	}

	// FeatureValidateSDL provides a feature-flag for validating the assembled
	// GraphQL schema before it is written.
	FeatureValidateSDL = Feature{
		Name:        "graphql/validate",
		Stage:       Stable,
		Default:     true,
		Description: "Validates the generated GraphQL schema before it is written",
	}

	// FeatureCache provides a feature-flag for incremental generation. Entities
	// whose definition did not change since the last run reuse their rendered text.
	FeatureCache = Feature{
		Name:        "cache",
		Stage:       Alpha,
		Default:     false,
		Description: "Cache reuses the rendered output of unchanged entities between runs",
		cleanup: func(c *Config) error {
			return remove(c.Target, c.CacheFile)
		},
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureResolvers,
		FeatureMetaQuery,
		FeatureValidateSDL,
		FeatureCache,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development.
	Experimental

	// Alpha features are complete, but their output may still change.
	Alpha

	// Beta features are documented, and no breaking-changes are expected for them.
	Beta

	// Stable features are Beta features that were running for a while.
	Stable
)

// A Feature of the codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string

	// cleanup used to cleanup all changes when a feature-flag is removed.
	// e.g. delete files from previous codegen runs.
	cleanup func(*Config) error
}

// Cleanup removes the output of the feature from previous runs.
func (f Feature) Cleanup(c *Config) error {
	if f.cleanup == nil {
		return nil
	}
	return f.cleanup(c)
}

// remove file (if exists) and its dir if it's empty.
func remove(dir, file string) error {
	if err := os.Remove(filepath.Join(dir, file)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	infos, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		return os.Remove(dir)
	}
	return nil
}
