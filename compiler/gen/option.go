package gen

import (
	"errors"
	"go/token"
	"log/slog"
	"slices"
)

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithTarget sets the output directory.
// The directory where generated code will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithDialects sets the output dialects.
// Supported dialects: "nest", "graphql", "go".
func WithDialects(dialects ...string) Option {
	return func(c *Config) error {
		if len(dialects) == 0 {
			return NewConfigError("Dialects", nil, "at least one dialect is required")
		}
		var ds []string
		for _, d := range dialects {
			if !slices.Contains(Dialects, d) {
				return NewConfigError("Dialects", d, "unsupported dialect; use nest, graphql, or go")
			}
			if !slices.Contains(ds, d) {
				ds = append(ds, d)
			}
		}
		c.Dialects = ds
		return nil
	}
}

// WithPackage sets the package name of the Go dialect output.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if !token.IsIdentifier(pkg) {
			return NewConfigError("Package", pkg, "package must be a valid Go identifier")
		}
		c.Package = pkg
		return nil
	}
}

// WithWorkers sets the number of entities generated in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithFeatures enables specific features.
// Features control optional code generation capabilities.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		for _, f := range features {
			if !slices.ContainsFunc(c.Features, func(e Feature) bool { return e.Name == f.Name }) {
				c.Features = append(c.Features, f)
			}
		}
		return nil
	}
}

// WithoutFeatures disables specific features, including default ones.
func WithoutFeatures(features ...Feature) Option {
	return func(c *Config) error {
		c.Features = slices.DeleteFunc(c.Features, func(e Feature) bool {
			return slices.ContainsFunc(features, func(f Feature) bool { return e.Name == f.Name })
		})
		return nil
	}
}

// WithCache enables incremental generation using the manifest at file,
// relative to the target directory.
func WithCache(file string) Option {
	return func(c *Config) error {
		if file == "" {
			return NewConfigError("CacheFile", nil, "cache file cannot be empty")
		}
		c.CacheFile = file
		return WithFeatures(FeatureCache)(c)
	}
}

// WithLogger sets the logger of the generation run.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options applied on the defaults.
func NewConfig(opts ...Option) (*Config, error) {
	c := defaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
