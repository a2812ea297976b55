package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidSchema indicates a structurally invalid entity definition.
	ErrInvalidSchema = errors.New("dsg: invalid schema")
	// ErrMissingDependency indicates a pipeline stage ran before the stage it depends on.
	ErrMissingDependency = errors.New("dsg: missing dependency")
	// ErrRender indicates a declaration that cannot be rendered.
	ErrRender = errors.New("dsg: render failed")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("dsg: missing configuration")
	// ErrGenerationFailed indicates a failure while assembling or writing output.
	ErrGenerationFailed = errors.New("dsg: code generation failed")
)

// SchemaError represents an invalid entity definition. It is fatal for the
// entity it names and for nothing else.
type SchemaError struct {
	Type    string // Entity name
	Field   string // Field name (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("dsg: schema error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(typeName, fieldName, message string, cause error) *SchemaError {
	return &SchemaError{
		Type:    typeName,
		Field:   fieldName,
		Message: message,
		Cause:   cause,
	}
}

// MissingDependencyError reports that a stage needs an artifact that an
// earlier stage did not produce. It always points at a pipeline ordering bug.
type MissingDependencyError struct {
	Type       string // Entity name
	Stage      string // The stage that failed, e.g. "FindOneArgs"
	Dependency string // The missing artifact, e.g. "WhereUniqueInput"
}

// Error implements the error interface.
func (e *MissingDependencyError) Error() string {
	var b strings.Builder
	b.WriteString("dsg: missing dependency")
	if e.Stage != "" {
		b.WriteString(": ")
		b.WriteString(e.Stage)
	}
	if e.Type != "" {
		b.WriteString(" of ")
		b.WriteString(e.Type)
	}
	if e.Dependency != "" {
		b.WriteString(" requires ")
		b.WriteString(e.Dependency)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for MissingDependencyError.
func (e *MissingDependencyError) Is(target error) bool {
	return target == ErrMissingDependency
}

// NewMissingDependencyError creates a new MissingDependencyError.
func NewMissingDependencyError(typeName, stage, dependency string) *MissingDependencyError {
	return &MissingDependencyError{
		Type:       typeName,
		Stage:      stage,
		Dependency: dependency,
	}
}

// RenderError represents a declaration tree that cannot be rendered,
// such as one referencing an undeclared type.
type RenderError struct {
	Declaration string // Name of the offending declaration
	Reference   string // Undeclared type name (if applicable)
	Message     string
	Cause       error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	var b strings.Builder
	b.WriteString("dsg: render error")
	if e.Declaration != "" {
		b.WriteString(" in declaration ")
		b.WriteString(e.Declaration)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Reference != "" {
		fmt.Fprintf(&b, " %q", e.Reference)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for RenderError.
func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}

// NewRenderError creates a new RenderError.
func NewRenderError(declaration, reference, message string, cause error) *RenderError {
	return &RenderError{
		Declaration: declaration,
		Reference:   reference,
		Message:     message,
		Cause:       cause,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("dsg: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("dsg: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a failure while assembling or writing files.
type GenerationError struct {
	Phase   string // "assemble", "validate", "write", "cache"
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("dsg: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsSchemaError reports whether the error is a SchemaError.
func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}

// IsMissingDependencyError reports whether the error is a MissingDependencyError.
func IsMissingDependencyError(err error) bool {
	var depErr *MissingDependencyError
	return errors.As(err, &depErr)
}

// IsRenderError reports whether the error is a RenderError.
func IsRenderError(err error) bool {
	var renderErr *RenderError
	return errors.As(err, &renderErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
