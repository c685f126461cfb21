package proc

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/gocty"
)

// invoker runs a callable with an argument list. Argument count problems are
// reported by the invoker itself, not checked ahead of time by callers.
type invoker func(args []any) (any, error)

var (
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
	ctyValueType = reflect.TypeOf(cty.Value{})
)

// reflectInvoker calls a Go function value. Results follow Go conventions: a
// trailing error result becomes the returned error, a single remaining result
// is returned as is and several are returned as []any.
func reflectInvoker(fn any) invoker {
	v := reflect.ValueOf(fn)
	t := v.Type()
	return func(args []any) (any, error) {
		in, err := reflectArgs(t, args)
		if err != nil {
			return nil, err
		}
		return reflectResults(t, v.Call(in))
	}
}

func reflectArgs(t reflect.Type, args []any) ([]reflect.Value, error) {
	n := t.NumIn()
	if t.IsVariadic() {
		if len(args) < n-1 {
			return nil, &ArityError{Want: n - 1, Got: len(args), Variadic: true}
		}
	} else if len(args) != n {
		return nil, &ArityError{Want: n, Got: len(args)}
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		pt := paramType(t, i)
		v, err := toParam(a, pt)
		if err != nil {
			return nil, &ArgumentError{Index: i, Want: pt.String(), Got: describe(a), Err: err}
		}
		if !v.IsValid() {
			return nil, &ArgumentError{Index: i, Want: pt.String(), Got: describe(a)}
		}
		in[i] = v
	}
	return in, nil
}

func paramType(t reflect.Type, i int) reflect.Type {
	last := t.NumIn() - 1
	if t.IsVariadic() && i >= last {
		return t.In(last).Elem()
	}
	return t.In(i)
}

// toParam converts a to a value assignable to pt. An invalid Value with a
// nil error means the argument simply does not fit.
func toParam(a any, pt reflect.Type) (reflect.Value, error) {
	if a == nil {
		switch pt.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(pt), nil
		}
		return reflect.Value{}, nil
	}

	if cv, ok := a.(cty.Value); ok && pt != ctyValueType {
		if pt.Kind() == reflect.Interface {
			g, err := FromCty(cv)
			if err != nil {
				return reflect.Value{}, err
			}
			return toParam(g, pt)
		}
		return ctyToParam(cv, pt)
	}

	av := reflect.ValueOf(a)
	if av.Type().AssignableTo(pt) {
		return av, nil
	}
	if pt == ctyValueType {
		cv, err := ToCty(a)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(cv), nil
	}
	if isNumeric(av.Kind()) && isNumeric(pt.Kind()) {
		// gocty rejects fractions and out of range values instead of
		// truncating or wrapping them.
		cv, err := ToCty(a)
		if err != nil {
			return reflect.Value{}, err
		}
		return ctyToParam(cv, pt)
	}
	return reflect.Value{}, nil
}

func ctyToParam(cv cty.Value, pt reflect.Type) (reflect.Value, error) {
	ptr := reflect.New(pt)
	if err := gocty.FromCtyValue(cv, ptr.Interface()); err != nil {
		return reflect.Value{}, err
	}
	return ptr.Elem(), nil
}

func reflectResults(t reflect.Type, out []reflect.Value) (any, error) {
	var err error
	if n := len(out); n > 0 && t.Out(n-1) == errorType {
		if e := out[n-1]; !e.IsNil() {
			err = e.Interface().(error)
		}
		out = out[:n-1]
	}

	switch len(out) {
	case 0:
		return nil, err
	case 1:
		return out[0].Interface(), err
	}
	vals := make([]any, len(out))
	for i, o := range out {
		vals[i] = o.Interface()
	}
	return vals, err
}

// ctyInvoker calls a go-cty function. Go arguments are converted to cty
// values and then, where possible, to the declared parameter type, the way
// HCL does before a call. The function reports its own argument count and
// type errors.
func ctyInvoker(f function.Function) invoker {
	params, varParam := f.Params(), f.VarParam()
	return func(args []any) (any, error) {
		vals := make([]cty.Value, len(args))
		for i, a := range args {
			v, err := ToCty(a)
			if err != nil {
				return nil, &ArgumentError{Index: i, Want: "cty.Value", Got: describe(a), Err: err}
			}

			var spec *function.Parameter
			if i < len(params) {
				spec = &params[i]
			} else {
				spec = varParam
			}
			if spec != nil {
				if cv, err := convert.Convert(v, spec.Type); err == nil {
					v = cv
				}
			}
			vals[i] = v
		}
		return f.Call(vals)
	}
}

// ToCty converts a Go value to a cty.Value. Untyped containers ([]any and
// map[string]any) become tuples and objects.
func ToCty(a any) (cty.Value, error) {
	switch v := a.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case cty.Value:
		return v, nil
	case []any:
		if len(v) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(v))
		for i, e := range v {
			ev, err := ToCty(e)
			if err != nil {
				return cty.NilVal, err
			}
			elems[i] = ev
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(v) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(v))
		for k, e := range v {
			ev, err := ToCty(e)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[k] = ev
		}
		return cty.ObjectVal(attrs), nil
	}

	ty, err := gocty.ImpliedType(a)
	if err != nil {
		return cty.NilVal, err
	}
	return gocty.ToCtyValue(a, ty)
}

// FromCty converts a cty.Value to plain Go values. Whole numbers become int,
// other numbers float64.
func FromCty(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if ty.IsPrimitiveType() {
		switch ty {
		case cty.String:
			return val.AsString(), nil
		case cty.Number:
			bf := val.AsBigFloat()
			if bf.IsInt() {
				if i, acc := bf.Int64(); acc == big.Exact {
					return int(i), nil
				}
			}
			f, _ := bf.Float64()
			return f, nil
		case cty.Bool:
			return val.True(), nil
		default:
			return nil, fmt.Errorf("unsupported primitive type: %s", ty.FriendlyName())
		}
	}
	if ty.IsObjectType() || ty.IsMapType() {
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			g, err := FromCty(v)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = g
		}
		return out, nil
	}
	if ty.IsTupleType() || ty.IsListType() || ty.IsSetType() {
		out := []any{}
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			g, err := FromCty(v)
			if err != nil {
				return nil, err
			}
			out = append(out, g)
		}
		return out, nil
	}
	if ty.IsCapsuleType() {
		return val.EncapsulatedValue(), nil
	}
	return nil, fmt.Errorf("unsupported cty.Type for conversion: %s", ty.FriendlyName())
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func describe(a any) string {
	if cv, ok := a.(cty.Value); ok {
		return cv.Type().FriendlyName()
	}
	return fmt.Sprintf("%T", a)
}
