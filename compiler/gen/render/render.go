// Package render emits synthesized declarations as source text.
//
// The Emitter walks a declaration tree in a fixed order and leaves the
// framework syntax to a Dialect: declaration annotations, the header, the
// annotations of each property followed by the property itself, enum values,
// resolver operations and the footer. Dialects live in the subpackages nest,
// graphql and golang.
package render

import (
	"fmt"
	"strings"

	"github.com/zongruxie4/amplication/compiler/gen"
	"github.com/zongruxie4/amplication/compiler/gen/dto"
)

// Dialect renders declarations in the syntax of a target framework.
// The emitter calls Annotation for the annotations of the declaration, of each
// property and of each operation, with Context.Property and Context.Operation
// set to the member the annotation belongs to.
type Dialect interface {
	Annotation(c *Context, a dto.Annotation)
	Begin(c *Context)
	Property(c *Context, p *dto.Property)
	Value(c *Context, v dto.Value)
	Operation(c *Context, op *dto.Operation)
	End(c *Context)
}

// Spacer is implemented by dialects that separate the members of a
// declaration with a blank line.
type Spacer interface {
	Spaced() bool
}

// Context is the state of one declaration walk.
type Context struct {
	*Writer
	// Decl is the declaration being rendered.
	Decl *dto.Declaration
	// Property and Operation hold the member being rendered, if any.
	Property  *dto.Property
	Operation *dto.Operation

	e *Emitter
}

// Lookup returns the declared type with the given name.
func (c *Context) Lookup(name string) (*dto.Declaration, bool) {
	d, ok := c.e.scope[name]
	return d, ok
}

// Emitter renders declarations with a dialect. Declarations can only
// reference types declared in the emitter scope.
type Emitter struct {
	dialect Dialect
	scope   map[string]*dto.Declaration
}

// New returns an emitter for the dialect with the given declarations in scope.
func New(d Dialect, decls ...*dto.Declaration) *Emitter {
	e := &Emitter{
		dialect: d,
		scope:   make(map[string]*dto.Declaration),
	}
	e.Declare(decls...)
	return e
}

// Declare adds declarations to the emitter scope.
func (e *Emitter) Declare(decls ...*dto.Declaration) {
	for _, d := range decls {
		if d != nil {
			e.scope[d.Name] = d
		}
	}
}

// Declared reports if a type with the given name is in scope.
func (e *Emitter) Declared(name string) bool {
	_, ok := e.scope[name]
	return ok
}

// Emit renders a single declaration. Semantically identical declarations
// render to identical text. It fails with a RenderError if the declaration
// references a type that is not in scope.
func (e *Emitter) Emit(d *dto.Declaration) (string, error) {
	if err := e.check(d); err != nil {
		return "", err
	}
	c := &Context{Writer: &Writer{}, Decl: d, e: e}
	spaced := false
	if s, ok := e.dialect.(Spacer); ok {
		spaced = s.Spaced()
	}
	for _, a := range d.Annotations {
		e.dialect.Annotation(c, a)
	}
	e.dialect.Begin(c)
	for i, p := range d.Properties {
		if i > 0 && spaced {
			c.Blank()
		}
		c.Property = p
		for _, a := range p.Annotations {
			e.dialect.Annotation(c, a)
		}
		e.dialect.Property(c, p)
	}
	c.Property = nil
	for _, v := range d.Values {
		e.dialect.Value(c, v)
	}
	for i, op := range d.Operations {
		if i > 0 && spaced {
			c.Blank()
		}
		c.Operation = op
		for _, a := range op.Annotations {
			e.dialect.Annotation(c, a)
		}
		e.dialect.Operation(c, op)
	}
	c.Operation = nil
	e.dialect.End(c)
	return Normalize(c.String()), nil
}

// EmitAll renders the declarations in order, separated by a blank line.
// Declarations that render to no text are skipped.
func (e *Emitter) EmitAll(decls ...*dto.Declaration) (string, error) {
	var blocks []string
	for _, d := range decls {
		s, err := e.Emit(d)
		if err != nil {
			return "", err
		}
		if s != "" {
			blocks = append(blocks, s)
		}
	}
	return strings.Join(blocks, "\n\n"), nil
}

// check rejects structurally impossible trees. It does not validate the
// semantics of the declaration.
func (e *Emitter) check(d *dto.Declaration) error {
	switch {
	case d == nil:
		return gen.NewRenderError("", "", "missing declaration", nil)
	case d.Name == "":
		return gen.NewRenderError("", "", "declaration has no name", nil)
	}
	for _, p := range d.Properties {
		if p == nil || p.Type.Ident() == "" {
			return gen.NewRenderError(d.Name, "", "property without type", nil)
		}
	}
	for _, op := range d.Operations {
		if op == nil || op.Returns.Ident() == "" {
			return gen.NewRenderError(d.Name, "", "operation without result type", nil)
		}
	}
	for _, ref := range d.References() {
		if ref != d.Name && !e.Declared(ref) {
			return gen.NewRenderError(d.Name, ref, "reference to undeclared type", nil)
		}
	}
	return nil
}

// Normalize canonicalizes line breaks and whitespace: CRLF becomes LF,
// trailing whitespace is stripped, runs of blank lines collapse into one,
// and leading and trailing blank lines are removed.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimRight(l, " \t\r")
		if l == "" && (len(out) == 0 || out[len(out)-1] == "") {
			continue
		}
		out = append(out, l)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

// indentUnit is the indentation of one nesting level.
const indentUnit = "  "

// Writer accumulates the text of a declaration.
type Writer struct {
	b      strings.Builder
	indent int
}

// Line writes s at the current indentation. Every line of a multi-line s
// is indented.
func (w *Writer) Line(s string) {
	for _, l := range strings.Split(s, "\n") {
		if l != "" {
			w.b.WriteString(strings.Repeat(indentUnit, w.indent))
			w.b.WriteString(l)
		}
		w.b.WriteByte('\n')
	}
}

// Linef is like Line with a format string.
func (w *Writer) Linef(format string, args ...any) {
	w.Line(fmt.Sprintf(format, args...))
}

// Blank writes an empty line.
func (w *Writer) Blank() { w.b.WriteByte('\n') }

// Indent increases the indentation.
func (w *Writer) Indent() { w.indent++ }

// Dedent decreases the indentation.
func (w *Writer) Dedent() {
	if w.indent > 0 {
		w.indent--
	}
}

// Write implements io.Writer. The bytes are written as is.
func (w *Writer) Write(p []byte) (int, error) {
	return w.b.Write(p)
}

// String returns the accumulated text.
func (w *Writer) String() string { return w.b.String() }
