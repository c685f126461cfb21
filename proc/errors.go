package proc

import (
	"fmt"

	"github.com/specialistvlad/procgo/arity"
)

// SignatureError is returned by New when the callable's parameter list
// cannot be inspected.
type SignatureError = arity.SignatureError

// ArityError reports a call whose argument count does not fit the callable.
type ArityError struct {
	Want     int
	Got      int
	Variadic bool
}

func (e *ArityError) Error() string {
	if e.Variadic {
		return fmt.Sprintf("arity mismatch: expected at least %d arguments, got %d", e.Want, e.Got)
	}
	if e.Got > e.Want {
		return fmt.Sprintf("arity mismatch: too many arguments: expected %d, got %d", e.Want, e.Got)
	}
	return fmt.Sprintf("arity mismatch: not enough arguments: expected %d, got %d", e.Want, e.Got)
}

// ArgumentError reports an argument that cannot be passed as the parameter
// at Index.
type ArgumentError struct {
	Index int
	Want  string
	Got   string
	Err   error
}

func (e *ArgumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("argument %d: cannot use %s as %s: %v", e.Index, e.Got, e.Want, e.Err)
	}
	return fmt.Sprintf("argument %d: cannot use %s as %s", e.Index, e.Got, e.Want)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// PendingError is returned by As when the result is a continuation rather
// than a value.
type PendingError struct {
	Arity int
	Have  int
}

func (e *PendingError) Error() string {
	return fmt.Sprintf("procedure is still pending: have %d of %d arguments", e.Have, e.Arity)
}
