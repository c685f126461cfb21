// Package proc wraps callables so they can be partially applied, composed and
// asked for their arity.
//
// A Proc is built once from a callable, which is inspected a single time:
//
//	add3 := proc.Must(func(x, y, z int) int { return x + y + z })
//	add3.Arity() // 3
//
// Currying accumulates arguments until the callable can run. For fixed-arity
// callables that happens as soon as enough arguments are present:
//
//	r, _ := add3.Curry(1).Apply(2)  // Continue: still waiting for one more
//	r, _ = r.Any().(proc.Curried).Apply(3)
//	v, _ := r.Value()               // 6
//
// A variadic callable can never tell when it has enough, so its chain keeps
// accumulating until Call is used:
//
//	list := proc.Must(func(a ...any) []any { return a })
//	c := list.Curry(1)
//	c.Apply(2)
//	c.Apply(3)
//	r, _ = c.Call()                 // Value([]any{1, 2, 3})
//
// Every application returns a Result, which is either a terminal value or a
// continuation. Errors from the callable, including argument count
// mismatches, are returned as they are.
//
// Curried chains carry a mutable argument buffer and are meant for a single
// owner. Nothing in this package is safe for concurrent use without external
// synchronisation.
package proc
