package hcl

import (
	"github.com/specialistvlad/procgo/arity"
	"github.com/specialistvlad/procgo/proc"
	"github.com/zclconf/go-cty/cty/function"
)

// Definition is a named procedure: a curried chain that is never applied in
// place. Every call branches from it, so a definition can be used any number
// of times.
type Definition struct {
	Name    string
	Builtin bool

	chain proc.Curried
}

func newDefinition(name string, chain proc.Curried, builtin bool) *Definition {
	return &Definition{Name: name, Builtin: builtin, chain: chain}
}

// Info is the shape left after the definition's seed arguments.
func (d *Definition) Info() arity.Info {
	return d.chain.Proc().Info().Residual(len(d.chain.Args()))
}

// Seed returns the arguments the definition was declared with.
func (d *Definition) Seed() []any {
	return d.chain.Args()
}

// Call applies args on a fresh branch. A variadic branch is invoked
// straight away; a fixed branch that is still short of arguments is a
// *proc.PendingError.
func (d *Definition) Call(args ...any) (any, error) {
	r, err := d.chain.Curry(args...)
	if err != nil {
		return nil, err
	}
	if next, ok := r.Next(); ok {
		if !next.IsVariadic() {
			return nil, &proc.PendingError{Arity: next.Arity(), Have: len(next.Args())}
		}
		if r, err = next.Call(); err != nil {
			return nil, err
		}
	}
	v, _ := r.Value()
	return v, nil
}

// Apply makes a Definition usable as a composition stage.
func (d *Definition) Apply(args ...any) (proc.Result, error) {
	v, err := d.Call(args...)
	if err != nil {
		return proc.Result{}, err
	}
	return proc.Value(v), nil
}

// Function exposes the definition to HCL expressions.
func (d *Definition) Function() function.Function {
	return proc.Function(d, d.Info())
}
