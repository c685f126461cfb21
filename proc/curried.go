package proc

// Curried is a partial application of a Proc. It is implemented by exactly
// two types, selected once by Proc.Curry:
//
// The fixed-arity chain invokes the callable as soon as it holds at least
// Arity arguments. Apply and Call append to its buffer and return either
// Continue(receiver) or the callable's Value. Curry branches from the
// arguments the chain was created with, leaving the receiver untouched.
//
// The variable-arity chain never decides on its own that it has enough
// arguments. Apply appends in place and returns Continue(receiver); Call
// appends and invokes. Curry returns a new chain holding the receiver's
// buffer plus the new arguments.
type Curried interface {
	Applier

	// Call applies args and, for the variable-arity chain, forces
	// invocation.
	Call(args ...any) (Result, error)
	// Curry builds an independent partial application from this one.
	Curry(args ...any) (Result, error)
	// Then returns a Proc computing other(c(args...)). c is applied in
	// place, so a fixed chain is used up by the first call that resolves it
	// and later calls over-apply it.
	Then(other Applier) *Proc
	// After returns a Proc computing c(other(args...)), applying c in place
	// as Then does.
	After(other Applier) *Proc

	Proc() *Proc
	Args() []any
	Arity() int
	IsVariadic() bool

	curried()
}

// chain holds what both variants share.
type chain struct {
	proc *Proc
	args []any
}

func (c *chain) Proc() *Proc      { return c.proc }
func (c *chain) Arity() int       { return c.proc.info.Arity }
func (c *chain) IsVariadic() bool { return c.proc.info.Variadic }
func (c *chain) curried()         {}

// Args returns a copy of the accumulated arguments.
func (c *chain) Args() []any {
	return append([]any(nil), c.args...)
}

func (c *chain) push(args []any) {
	c.args = append(c.args, args...)
}

func (c *chain) invoke() (Result, error) {
	v, err := c.proc.call(c.args)
	if err != nil {
		return Result{}, err
	}
	return Value(v), nil
}

type fixed struct {
	chain
	seed []any
}

func newFixed(p *Proc, args []any) *fixed {
	seed := append([]any(nil), args...)
	return &fixed{
		chain: chain{proc: p, args: append([]any(nil), seed...)},
		seed:  seed,
	}
}

func (f *fixed) Apply(args ...any) (Result, error) {
	f.push(args)
	if len(f.args) < f.proc.info.Arity {
		return Continue(f), nil
	}
	return f.invoke()
}

func (f *fixed) Call(args ...any) (Result, error) {
	return f.Apply(args...)
}

func (f *fixed) Curry(args ...any) (Result, error) {
	return newFixed(f.proc, f.seed).Apply(args...)
}

func (f *fixed) Then(other Applier) *Proc  { return Forward(f, other) }
func (f *fixed) After(other Applier) *Proc { return Backward(f, other) }

type variadic struct {
	chain
}

func newVariadic(p *Proc, args []any) *variadic {
	return &variadic{chain: chain{proc: p, args: append([]any(nil), args...)}}
}

func (v *variadic) Apply(args ...any) (Result, error) {
	v.push(args)
	return Continue(v), nil
}

func (v *variadic) Call(args ...any) (Result, error) {
	v.push(args)
	return v.invoke()
}

func (v *variadic) Curry(args ...any) (Result, error) {
	return Continue(&variadic{chain: chain{proc: v.proc, args: append(v.Args(), args...)}}), nil
}

func (v *variadic) Then(other Applier) *Proc  { return Forward(v, other) }
func (v *variadic) After(other Applier) *Proc { return Backward(v, other) }
