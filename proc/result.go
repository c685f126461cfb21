package proc

import "fmt"

// Result is what applying arguments to a procedure produces: either a
// terminal value or a continuation that is still waiting for arguments.
type Result struct {
	value any
	next  Curried
}

// Value wraps a terminal value.
func Value(v any) Result {
	return Result{value: v}
}

// Continue wraps a continuation.
func Continue(next Curried) Result {
	return Result{next: next}
}

// Done reports whether the result is a terminal value.
func (r Result) Done() bool {
	return r.next == nil
}

// Value returns the terminal value. ok is false for a continuation.
func (r Result) Value() (v any, ok bool) {
	return r.value, r.next == nil
}

// Next returns the continuation. ok is false for a terminal value.
func (r Result) Next() (next Curried, ok bool) {
	return r.next, r.next != nil
}

// Any returns the terminal value, or the continuation itself.
func (r Result) Any() any {
	if r.next != nil {
		return r.next
	}
	return r.value
}

func (r Result) String() string {
	if r.next != nil {
		return fmt.Sprintf("Continue(%s, %d args)", r.next.Proc().Info(), len(r.next.Args()))
	}
	return fmt.Sprintf("Value(%v)", r.value)
}

// As extracts a typed terminal value from a Result.
//
//	n, err := proc.As[int](p.Curry(1).Apply(2, 3))
func As[T any](r Result, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if next, ok := r.Next(); ok {
		return zero, &PendingError{Arity: next.Arity(), Have: len(next.Args())}
	}
	if r.value == nil {
		return zero, nil
	}
	v, ok := r.value.(T)
	if !ok {
		return zero, fmt.Errorf("result is %T, not %T", r.value, zero)
	}
	return v, nil
}
