package proc

import (
	"log/slog"

	"github.com/specialistvlad/procgo/arity"
	"github.com/zclconf/go-cty/cty/function"
)

// Applier is anything arguments can be applied to: a plain *Proc or either
// kind of Curried.
type Applier interface {
	Apply(args ...any) (Result, error)
}

// Proc wraps a callable together with its inspected arity. The callable and
// its Info are fixed at construction.
type Proc struct {
	fn   any
	call invoker
	info arity.Info
}

// New wraps fn in a Proc. fn may be any Go function value (including method
// values and closures) or a go-cty function.Function. A value whose parameter
// list cannot be inspected yields a *SignatureError.
func New(fn any) (*Proc, error) {
	info, err := arity.Inspect(fn)
	if err != nil {
		return nil, err
	}

	p := &Proc{fn: fn, info: info}
	switch f := fn.(type) {
	case function.Function:
		p.call = ctyInvoker(f)
	case *function.Function:
		p.call = ctyInvoker(*f)
	case Caller:
		p.call = f.Invoke
	default:
		p.call = reflectInvoker(fn)
	}
	slog.Debug("Procedure created.", "arity", info.Arity, "variadic", info.Variadic)
	return p, nil
}

// Must is like New but panics on error. It suits package level declarations:
//
//	var add2 = proc.Must(func(x int) int { return x + 2 })
func Must(fn any) *Proc {
	p, err := New(fn)
	if err != nil {
		panic(err)
	}
	return p
}

// Caller is a callable that reports its own shape and takes its arguments as
// a slice. It is how callables that cannot be introspected are wrapped.
type Caller interface {
	arity.Signed
	Invoke(args []any) (any, error)
}

type explicitCaller struct {
	info arity.Info
	fn   func(args ...any) (any, error)
}

func (c explicitCaller) Signature() arity.Info { return c.info }

func (c explicitCaller) Invoke(args []any) (any, error) { return c.fn(args...) }

// NewWithInfo wraps fn with an explicitly supplied arity instead of an
// inspected one. fn receives every argument and is responsible for rejecting
// counts it cannot handle.
func NewWithInfo(info arity.Info, fn func(args ...any) (any, error)) *Proc {
	return Must(explicitCaller{info: info, fn: fn})
}

// Arity is the number of required positional arguments.
func (p *Proc) Arity() int { return p.info.Arity }

// IsVariadic reports whether the callable accepts unbounded trailing
// arguments.
func (p *Proc) IsVariadic() bool { return p.info.Variadic }

// Info returns the inspected shape of the callable.
func (p *Proc) Info() arity.Info { return p.info }

// Call invokes the callable with exactly args. Argument count and type
// mismatches are reported by the call itself and returned unchanged.
func (p *Proc) Call(args ...any) (any, error) {
	return p.call(args)
}

// Apply is direct invocation. For a plain Proc it always yields a value.
func (p *Proc) Apply(args ...any) (Result, error) {
	v, err := p.Call(args...)
	if err != nil {
		return Result{}, err
	}
	return Value(v), nil
}

// Func returns Call as a plain Go function.
func (p *Proc) Func() func(args ...any) (any, error) {
	return p.Call
}

// Curry starts a partial application seeded with args. Variadic procedures
// get a variable-arity chain, all others a fixed-arity one.
func (p *Proc) Curry(args ...any) Curried {
	if p.info.Variadic {
		slog.Debug("Currying variadic procedure.", "arity", p.info.Arity, "seed", len(args))
		return newVariadic(p, args)
	}
	slog.Debug("Currying fixed procedure.", "arity", p.info.Arity, "seed", len(args))
	return newFixed(p, args)
}

// Then returns a Proc computing other(p(args...)).
func (p *Proc) Then(other Applier) *Proc {
	return Forward(p, other)
}

// After returns a Proc computing p(other(args...)).
func (p *Proc) After(other Applier) *Proc {
	return Backward(p, other)
}
