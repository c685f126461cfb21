package proc

// Forward returns a Proc computing second(first(args...)). first runs first.
//
// Each stage is applied directly, so a curried stage accumulates the
// arguments it is given exactly as if it were called by hand. When a stage
// yields a continuation, the Curried itself is what flows onwards. A fixed
// chain stage keeps its buffer between calls: once it has resolved, calling
// the composed Proc again over-applies it. Compose a fresh chain per use, or
// a plain Proc, when the result is called repeatedly.
//
// The composed Proc wraps a func(args ...any) (any, error), so it reports
// arity 1 and is variadic.
func Forward(first, second Applier) *Proc {
	return Must(func(args ...any) (any, error) {
		r, err := first.Apply(args...)
		if err != nil {
			return nil, err
		}
		r, err = second.Apply(r.Any())
		if err != nil {
			return nil, err
		}
		return r.Any(), nil
	})
}

// Backward returns a Proc computing outer(inner(args...)). inner runs first.
func Backward(outer, inner Applier) *Proc {
	return Forward(inner, outer)
}
