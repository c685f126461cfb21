package proc_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/specialistvlad/procgo/arity"
	"github.com/specialistvlad/procgo/proc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// add2 is declared the way a decorated function would be.
var add2 = proc.Must(func(x int) int { return x + 2 })

type multiplier struct{ factor int }

func (m multiplier) Times(n int) int { return n * m.factor }

func sum(xs ...int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func TestProc_CallAsFunction(t *testing.T) {
	f := proc.Must(func(x int) int { return x * x })
	g := proc.Must(func(x int) int { return x + x })
	h := proc.Must(func(a, b any) []any { return []any{a, b} })
	v := proc.Must(sum)

	n, err := f.Call(2)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = g.Func()(3)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	pair, err := h.Call(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, pair)

	n, err = v.Call(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	_, err = h.Call(1, 2, 3)
	var arityErr *proc.ArityError
	require.ErrorAs(t, err, &arityErr, "too many arguments must fail")
	assert.Equal(t, 2, arityErr.Want)
	assert.Equal(t, 3, arityErr.Got)
}

func TestProc_Arity(t *testing.T) {
	testCases := []struct {
		name     string
		fn       any
		arity    int
		variadic bool
	}{
		{name: "nullary", fn: func() {}, arity: 0},
		{name: "unary", fn: func(x int) int { return x + x }, arity: 1},
		{name: "binary", fn: func(a, b any) []any { return []any{a, b} }, arity: 2},
		{name: "variadic", fn: func(a ...any) []any { return a }, arity: 1, variadic: true},
		{name: "prefix and tail", fn: func(x, y, z int, w ...int) int { return 0 }, arity: 4, variadic: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := proc.New(tc.fn)
			require.NoError(t, err)
			assert.Equal(t, tc.arity, p.Arity())
			assert.Equal(t, tc.variadic, p.IsVariadic())
			assert.Equal(t, arity.Info{Arity: tc.arity, Variadic: tc.variadic}, p.Info())
		})
	}
}

func TestProc_SignatureError(t *testing.T) {
	_, err := proc.New(42)
	var sigErr *proc.SignatureError
	require.ErrorAs(t, err, &sigErr)

	_, err = proc.New(nil)
	require.ErrorAs(t, err, &sigErr)

	assert.Panics(t, func() { proc.Must("not callable") })
}

func TestProc_VariableArgs(t *testing.T) {
	p := proc.Must(func(scalar int, values ...int) []int {
		out := make([]int, len(values))
		for i, v := range values {
			out[i] = v * scalar
		}
		return out
	})

	have, err := p.Call(9, 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 18, 27}, have)
}

func TestProc_AsClosure(t *testing.T) {
	genTimes := func(factor int) *proc.Proc {
		return proc.Must(func(n int) int { return n * factor })
	}
	times3 := genTimes(3)
	times5 := genTimes(5)

	a, err := times3.Call(12)
	require.NoError(t, err)
	b, err := times5.Call(5)
	require.NoError(t, err)
	inner, err := times5.Call(4)
	require.NoError(t, err)
	c, err := times3.Call(inner)
	require.NoError(t, err)

	assert.Equal(t, 36, a)
	assert.Equal(t, 25, b)
	assert.Equal(t, 60, c)
}

func TestProc_DeclaredAtPackageLevel(t *testing.T) {
	n, err := add2.Call(1)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestProc_FromMethodValue(t *testing.T) {
	times3 := proc.Must(multiplier{factor: 3}.Times)
	assert.Equal(t, 1, times3.Arity())

	n, err := times3.Call(12)
	require.NoError(t, err)
	assert.Equal(t, 36, n)
}

func TestProc_ExplicitInfo(t *testing.T) {
	p := proc.NewWithInfo(arity.Fixed(2), func(args ...any) (any, error) {
		return fmt.Sprint(args...), nil
	})
	assert.Equal(t, 2, p.Arity())
	assert.False(t, p.IsVariadic())

	r, err := p.Curry("a").Apply("b")
	require.NoError(t, err)
	v, ok := r.Value()
	require.True(t, ok)
	assert.Equal(t, "ab", v)
}

func TestProc_ErrorsPropagateUnchanged(t *testing.T) {
	sentinel := errors.New("boom")
	p := proc.Must(func(x int) (int, error) {
		if x < 0 {
			return 0, sentinel
		}
		return x, nil
	})

	_, err := p.Call(-1)
	assert.Same(t, sentinel, err)

	_, err = p.Curry().Apply(-1)
	assert.Same(t, sentinel, err)

	n, err := p.Call(5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestProc_ArgumentError(t *testing.T) {
	p := proc.Must(func(x int) int { return x })

	_, err := p.Call("five")
	var argErr *proc.ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, 0, argErr.Index)
	assert.Equal(t, "int", argErr.Want)
	assert.Equal(t, "string", argErr.Got)

	_, err = p.Call(nil)
	require.ErrorAs(t, err, &argErr)
}

func TestProc_NumericArgumentsMustFit(t *testing.T) {
	toInt := proc.Must(func(x int) int { return x })
	toByte := proc.Must(func(x uint8) uint8 { return x })

	testCases := []struct {
		name string
		p    *proc.Proc
		arg  any
		want string
	}{
		{name: "fraction to int", p: toInt, arg: 3.7, want: "int"},
		{name: "negative to uint8", p: toByte, arg: -1, want: "uint8"},
		{name: "too large for uint8", p: toByte, arg: 300, want: "uint8"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := tc.p.Call(tc.arg)
			var argErr *proc.ArgumentError
			require.ErrorAs(t, err, &argErr, "got value %v", v)
			assert.Equal(t, 0, argErr.Index)
			assert.Equal(t, tc.want, argErr.Want)
			assert.Error(t, argErr.Err)
		})
	}

	// Values that fit still convert.
	v, err := toByte.Call(200)
	require.NoError(t, err)
	assert.Equal(t, uint8(200), v)

	v, err = toInt.Call(4.0)
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	// Curried chains hand their buffer to the same conversion.
	sum3 := proc.Must(func(x, y, z int) int { return x + y + z })
	_, err = sum3.Curry(1.9).Apply(2.9, 3.9)
	var argErr *proc.ArgumentError
	require.ErrorAs(t, err, &argErr)
}

func TestProc_ResultShapes(t *testing.T) {
	none := proc.Must(func() {})
	v, err := none.Call()
	require.NoError(t, err)
	assert.Nil(t, v)

	many := proc.Must(func(a, b int) (int, int, error) { return b, a, nil })
	v, err = many.Call(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []any{2, 1}, v)

	widened := proc.Must(func(x float64) float64 { return x / 2 })
	v, err = widened.Call(3)
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)
}

func TestProc_Composition(t *testing.T) {
	f := proc.Must(func(x int) int { return x * x })
	g := proc.Must(func(x int) int { return x + x })

	n, err := f.Then(g).Call(2)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	n, err = f.After(g).Call(2)
	require.NoError(t, err)
	assert.Equal(t, 16, n)

	n, err = proc.Forward(f, g).Call(3)
	require.NoError(t, err)
	assert.Equal(t, 18, n)

	n, err = proc.Backward(f, g).Call(3)
	require.NoError(t, err)
	assert.Equal(t, 36, n)

	composed := f.Then(g)
	assert.Equal(t, 1, composed.Arity())
	assert.True(t, composed.IsVariadic())
}

func TestProc_CompositionPropagatesErrors(t *testing.T) {
	sentinel := errors.New("first stage failed")
	failing := proc.Must(func(int) (int, error) { return 0, sentinel })
	g := proc.Must(func(x int) int { return x + 1 })

	_, err := failing.Then(g).Call(1)
	assert.Same(t, sentinel, err)

	_, err = g.Then(failing).Call(1)
	assert.Same(t, sentinel, err)
}

func TestAs(t *testing.T) {
	b := proc.Must(func(x, y, z int) int { return x + y + z })

	n, err := proc.As[int](b.Curry(1, 2).Apply(3))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	_, err = proc.As[int](b.Curry(1).Apply(2))
	var pending *proc.PendingError
	require.ErrorAs(t, err, &pending)
	assert.Equal(t, 3, pending.Arity)
	assert.Equal(t, 2, pending.Have)

	_, err = proc.As[string](b.Curry(1, 2).Apply(3))
	require.Error(t, err)
}
