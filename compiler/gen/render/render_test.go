package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zongruxie4/amplication/compiler/gen"
	"github.com/zongruxie4/amplication/compiler/gen/dto"
)

// trace records the walk of the emitter.
type trace struct{ spaced bool }

func (t trace) Spaced() bool { return t.spaced }

func (trace) Annotation(c *Context, a dto.Annotation) {
	switch {
	case c.Operation != nil:
		c.Linef("op-annotation %s", a.Kind)
	case c.Property != nil:
		c.Linef("annotation %s", a.Kind)
	default:
		c.Linef("declaration-annotation %s", a.Kind)
	}
}

func (trace) Begin(c *Context) {
	c.Linef("begin %s   ", c.Decl.Name)
	c.Indent()
}

func (trace) Property(c *Context, p *dto.Property) { c.Linef("property %s", p.Name) }

func (trace) Value(c *Context, v dto.Value) { c.Linef("value %s", v.Name) }

func (trace) Operation(c *Context, op *dto.Operation) {
	args, ok := c.Lookup(op.Args)
	c.Linef("operation %s %v %d", op.Name, ok, len(args.Properties))
}

func (trace) End(c *Context) {
	c.Dedent()
	c.Line("end\r\n\n\n")
}

func TestEmitter(t *testing.T) {
	decl := &dto.Declaration{
		Name:        "A",
		Kind:        dto.KindInput,
		Annotations: []dto.Annotation{{Kind: dto.Exposure}},
		Properties: []*dto.Property{
			dto.NewProperty("x", dto.ScalarRef(dto.ScalarString), true, false),
			dto.NewProperty("self", dto.Ref("A"), false, false),
		},
	}
	text, err := New(trace{}).Emit(decl)
	require.NoError(t, err)
	assert.Equal(t, `declaration-annotation exposure
begin A
  annotation documentation
  annotation validation
  annotation exposure
  property x
  annotation documentation
  annotation validation
  annotation transform
  annotation optional
  annotation exposure
  property self
end`, text)

	spaced, err := New(trace{spaced: true}).Emit(decl)
	require.NoError(t, err)
	assert.Contains(t, spaced, "property x\n\n  annotation documentation")
}

func TestEmitter_Operations(t *testing.T) {
	args := &dto.Declaration{
		Name:       "Args",
		Kind:       dto.KindArgs,
		Properties: []*dto.Property{dto.NewProperty("where", dto.ScalarRef(dto.ScalarID), true, false)},
	}
	enum := &dto.Declaration{
		Name:   "E",
		Kind:   dto.KindEnum,
		Values: []dto.Value{{Name: "One", Value: "one"}},
	}
	r := &dto.Declaration{
		Name: "R",
		Kind: dto.KindResolver,
		Operations: []*dto.Operation{{
			Name:        "find",
			Op:          dto.OpFindOne,
			Args:        "Args",
			Returns:     dto.EnumRef("E"),
			Annotations: []dto.Annotation{{Kind: dto.Access, Rule: dto.RulePublic}},
		}},
	}
	e := New(trace{}, args, enum)
	assert.True(t, e.Declared("Args"))
	assert.False(t, e.Declared("R"))

	text, err := e.EmitAll(enum, r)
	require.NoError(t, err)
	assert.Equal(t, `begin E
  value One
end

begin R
  op-annotation access
  operation find true 1
end`, text)
}

func TestEmitter_Errors(t *testing.T) {
	tests := []struct {
		name string
		decl *dto.Declaration
		err  string
	}{
		{
			name: "nil declaration",
			err:  "dsg: render error: missing declaration",
		},
		{
			name: "unnamed declaration",
			decl: &dto.Declaration{Kind: dto.KindInput},
			err:  "dsg: render error: declaration has no name",
		},
		{
			name: "undeclared property type",
			decl: &dto.Declaration{
				Name:       "A",
				Properties: []*dto.Property{dto.NewProperty("b", dto.Ref("B"), true, false)},
			},
			err: `dsg: render error in declaration A: reference to undeclared type "B"`,
		},
		{
			name: "property without type",
			decl: &dto.Declaration{
				Name:       "A",
				Properties: []*dto.Property{{Name: "b"}},
			},
			err: "dsg: render error in declaration A: property without type",
		},
		{
			name: "undeclared args",
			decl: &dto.Declaration{
				Name:       "R",
				Kind:       dto.KindResolver,
				Operations: []*dto.Operation{{Name: "find", Args: "FindArgs", Returns: dto.ScalarRef(dto.ScalarInt)}},
			},
			err: `dsg: render error in declaration R: reference to undeclared type "FindArgs"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := New(trace{}).Emit(tt.decl)
			assert.Empty(t, text)
			require.EqualError(t, err, tt.err)
			assert.ErrorIs(t, err, gen.ErrRender)
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"", ""},
		{"a", "a"},
		{"a\n", "a"},
		{"\n\na\n\n", "a"},
		{"a\r\nb\r\n", "a\nb"},
		{"a  \t\nb ", "a\nb"},
		{"a\n\n\n\nb", "a\n\nb"},
		{"a\n  \n\t\nb", "a\n\nb"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, Normalize(tt.in), "%q", tt.in)
	}
}

func TestWriter(t *testing.T) {
	w := &Writer{}
	w.Line("a {")
	w.Indent()
	w.Line("b\nc")
	w.Blank()
	w.Indent()
	w.Linef("%s;", "d")
	w.Dedent()
	w.Dedent()
	w.Dedent()
	w.Line("}")
	_, err := w.Write([]byte("raw\n"))
	require.NoError(t, err)
	assert.Equal(t, "a {\n  b\n  c\n\n    d;\n}\nraw\n", w.String())
}
