package proc

import (
	"fmt"

	"github.com/specialistvlad/procgo/arity"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Function exposes a as a go-cty function shaped by info, so that it can be
// called from HCL expressions. Arguments reach a as cty values; the result
// is converted back with gocty. A continuation result is an error.
func Function(a Applier, info arity.Info) function.Function {
	fixedParams := info.Arity
	if info.Variadic {
		fixedParams--
	}

	spec := &function.Spec{
		Type: function.StaticReturnType(cty.DynamicPseudoType),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			in := make([]any, len(args))
			for i, arg := range args {
				in[i] = arg
			}
			r, err := a.Apply(in...)
			if err != nil {
				return cty.NilVal, err
			}
			if next, ok := r.Next(); ok {
				return cty.NilVal, &PendingError{Arity: next.Arity(), Have: len(next.Args())}
			}
			v, _ := r.Value()
			return ToCty(v)
		},
	}
	for i := 0; i < fixedParams; i++ {
		spec.Params = append(spec.Params, function.Parameter{
			Name:             fmt.Sprintf("arg%d", i),
			Type:             cty.DynamicPseudoType,
			AllowNull:        true,
			AllowDynamicType: true,
		})
	}
	if info.Variadic {
		spec.VarParam = &function.Parameter{
			Name:             "rest",
			Type:             cty.DynamicPseudoType,
			AllowNull:        true,
			AllowDynamicType: true,
		}
	}
	return function.New(spec)
}

// Function exposes p as a go-cty function with p's own shape.
func (p *Proc) Function() function.Function {
	return Function(p, p.info)
}
