package proc_test

import (
	"testing"

	"github.com/specialistvlad/procgo/arity"
	"github.com/specialistvlad/procgo/proc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// requireCty asserts that v is a cty.Value equal to want.
func requireCty(t *testing.T, want cty.Value, v any) {
	t.Helper()
	got, ok := v.(cty.Value)
	require.True(t, ok, "expected cty.Value, got %T", v)
	assert.True(t, want.RawEquals(got), "want %#v, got %#v", want, got)
}

func TestCtyProc_Call(t *testing.T) {
	add := proc.Must(stdlib.AddFunc)
	assert.Equal(t, arity.Fixed(2), add.Info())

	v, err := add.Call(1, 2)
	require.NoError(t, err)
	requireCty(t, cty.NumberIntVal(3), v)

	v, err = add.Call(cty.NumberIntVal(4), 5)
	require.NoError(t, err)
	requireCty(t, cty.NumberIntVal(9), v)

	// The cty function rejects bad counts itself.
	_, err = add.Call(1, 2, 3)
	require.Error(t, err)
}

func TestCtyProc_CurryFixed(t *testing.T) {
	upper := proc.Must(stdlib.UpperFunc)
	r, err := upper.Curry().Apply("hello")
	require.NoError(t, err)
	requireCty(t, cty.StringVal("HELLO"), value(t, r))
}

func TestCtyProc_CurryVariadic(t *testing.T) {
	format := proc.Must(stdlib.FormatFunc)
	assert.Equal(t, arity.Variadic(2), format.Info())

	c := format.Curry("%s-%s")
	apply(t, c, "a")
	r, err := c.Call("b")
	require.NoError(t, err)
	requireCty(t, cty.StringVal("a-b"), value(t, r))
}

func TestCtyProc_ComposeWithGo(t *testing.T) {
	square := proc.Must(func(x int) int { return x * x })
	add := proc.Must(stdlib.AddFunc)

	// cty result flows into a Go parameter through gocty.
	v, err := add.Curry(1).Then(square).Call(2)
	require.NoError(t, err)
	assert.Equal(t, 9, v)
}

func TestFunction_FromGoProc(t *testing.T) {
	f := proc.Must(func(x, y, z int) int { return x + y + z }).Function()
	assert.Len(t, f.Params(), 3)
	assert.Nil(t, f.VarParam())

	v, err := f.Call([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(2), cty.NumberIntVal(3)})
	require.NoError(t, err)
	assert.True(t, cty.NumberIntVal(6).RawEquals(v), "got %#v", v)
}

func TestFunction_Variadic(t *testing.T) {
	f := proc.Must(func(sep string, parts ...string) string {
		out := ""
		for i, p := range parts {
			if i > 0 {
				out += sep
			}
			out += p
		}
		return out
	}).Function()
	assert.Len(t, f.Params(), 1)
	require.NotNil(t, f.VarParam())

	v, err := f.Call([]cty.Value{cty.StringVal("/"), cty.StringVal("a"), cty.StringVal("b")})
	require.NoError(t, err)
	assert.True(t, cty.StringVal("a/b").RawEquals(v), "got %#v", v)
}

func TestFunction_ResidualOfCurried(t *testing.T) {
	c := proc.Must(func(x, y, z int) int { return x * y * z }).Curry(2)
	f := proc.Function(c, c.Proc().Info().Residual(len(c.Args())))
	assert.Len(t, f.Params(), 2)

	v, err := f.Call([]cty.Value{cty.NumberIntVal(3), cty.NumberIntVal(4)})
	require.NoError(t, err)
	assert.True(t, cty.NumberIntVal(24).RawEquals(v), "got %#v", v)
}

func TestFunction_PendingIsAnError(t *testing.T) {
	c := proc.Must(func(x, y, z int) int { return x + y + z }).Curry()
	f := proc.Function(c, arity.Fixed(1))

	_, err := f.Call([]cty.Value{cty.NumberIntVal(1)})
	var pendingErr *proc.PendingError
	require.ErrorAs(t, err, &pendingErr)
}

func TestFunction_ListResult(t *testing.T) {
	f := proc.Must(func(a ...any) []any { return a }).Function()

	v, err := f.Call([]cty.Value{cty.StringVal("x"), cty.NumberIntVal(1)})
	require.NoError(t, err)
	want := cty.TupleVal([]cty.Value{cty.StringVal("x"), cty.NumberIntVal(1)})
	assert.True(t, want.RawEquals(v), "got %#v", v)
}
