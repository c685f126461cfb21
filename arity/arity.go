// Package arity determines how many positional arguments a callable requires
// and whether it accepts an unbounded trailing argument list.
//
// The answer is derived once from the callable's declared parameter list.
// Go function values are inspected with reflection, go-cty functions through
// their function.Spec, and anything else may report its own shape by
// implementing Signed.
package arity

import (
	"fmt"
	"log/slog"
	"reflect"
)

// Info is the inspected shape of a callable.
type Info struct {
	// Arity is the number of required positional parameters. A variadic tail
	// counts exactly once.
	Arity int
	// Variadic reports whether the callable accepts unbounded trailing
	// positional arguments.
	Variadic bool
}

// Fixed returns the Info of a callable taking exactly n arguments.
func Fixed(n int) Info {
	return Info{Arity: n}
}

// Variadic returns the Info of a callable with n required parameters, the
// last of which is the variadic tail.
func Variadic(n int) Info {
	return Info{Arity: n, Variadic: true}
}

func (i Info) String() string {
	if i.Variadic {
		return fmt.Sprintf("%d+", i.Arity)
	}
	return fmt.Sprintf("%d", i.Arity)
}

// Residual returns the shape left once n arguments have been supplied. A
// variadic tail is never consumed, so a variadic residual keeps arity 1 at
// least.
func (i Info) Residual(n int) Info {
	left := i.Arity - n
	if i.Variadic && left < 1 {
		left = 1
	}
	if left < 0 {
		left = 0
	}
	return Info{Arity: left, Variadic: i.Variadic}
}

// Signed is implemented by values that know their own parameter shape.
type Signed interface {
	Signature() Info
}

// Inspector computes the Info of a callable.
type Inspector interface {
	Inspect(fn any) (Info, error)
}

// InspectorFunc adapts an ordinary function to the Inspector interface.
type InspectorFunc func(fn any) (Info, error)

// Inspect calls f(fn).
func (f InspectorFunc) Inspect(fn any) (Info, error) {
	return f(fn)
}

// SignatureError is returned when a value exposes no parameter list that
// could be inspected.
type SignatureError struct {
	Type   string
	Reason string
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("cannot inspect signature of %s: %s", e.Type, e.Reason)
}

// Reflect inspects Go function values.
var Reflect InspectorFunc = func(fn any) (Info, error) {
	if fn == nil {
		return Info{}, &SignatureError{Type: "nil", Reason: "no callable"}
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return Info{}, &SignatureError{Type: v.Type().String(), Reason: "not a function"}
	}
	if v.IsNil() {
		return Info{}, &SignatureError{Type: v.Type().String(), Reason: "nil function"}
	}
	t := v.Type()
	return Info{Arity: t.NumIn(), Variadic: t.IsVariadic()}, nil
}

// Chain tries each inspector in turn and returns the first success. If all
// fail, the last error is returned.
func Chain(inspectors ...Inspector) Inspector {
	return InspectorFunc(func(fn any) (Info, error) {
		err := error(&SignatureError{Type: fmt.Sprintf("%T", fn), Reason: "no inspector"})
		for _, in := range inspectors {
			info, ierr := in.Inspect(fn)
			if ierr == nil {
				return info, nil
			}
			err = ierr
		}
		return Info{}, err
	})
}

// signed reads the Info reported by a Signed value.
var signed InspectorFunc = func(fn any) (Info, error) {
	s, ok := fn.(Signed)
	if !ok {
		return Info{}, &SignatureError{Type: fmt.Sprintf("%T", fn), Reason: "does not report a signature"}
	}
	return s.Signature(), nil
}

// Default is the inspector used by Inspect: go-cty functions first, then
// Signed values, then reflection.
var Default = Chain(Cty, signed, Reflect)

// Inspect returns the Info of fn using the Default inspector.
func Inspect(fn any) (Info, error) {
	info, err := Default.Inspect(fn)
	if err != nil {
		return Info{}, err
	}
	slog.Debug("Inspected callable.", "type", fmt.Sprintf("%T", fn), "arity", info.Arity, "variadic", info.Variadic)
	return info, nil
}
