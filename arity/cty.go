package arity

import (
	"fmt"

	"github.com/zclconf/go-cty/cty/function"
)

// Cty inspects go-cty functions. Every declared parameter is required; the
// VarParam, when present, counts once and makes the function variadic.
var Cty InspectorFunc = func(fn any) (Info, error) {
	var f function.Function
	switch v := fn.(type) {
	case function.Function:
		f = v
	case *function.Function:
		if v == nil {
			return Info{}, &SignatureError{Type: "*function.Function", Reason: "nil function"}
		}
		f = *v
	default:
		return Info{}, &SignatureError{Type: fmt.Sprintf("%T", fn), Reason: "not a cty function"}
	}

	info := Info{Arity: len(f.Params())}
	if f.VarParam() != nil {
		info.Arity++
		info.Variadic = true
	}
	return info, nil
}
