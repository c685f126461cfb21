package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/procgo/internal/ctxlog"
	"github.com/specialistvlad/procgo/proc"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Output is the result of one eval block.
type Output struct {
	Name  string
	Value cty.Value
}

func (o Output) String() string {
	return o.Name + " = " + Render(o.Value)
}

// EvalContext exposes every definition, builtins included, as an HCL
// function.
func (p *Program) EvalContext() *hcl.EvalContext {
	funcs := make(map[string]function.Function, len(p.defs))
	for name, def := range p.defs {
		funcs[name] = def.Function()
	}
	return &hcl.EvalContext{Functions: funcs}
}

// Eval runs the eval blocks in file order. When only is not empty, just the
// eval block with that name runs, and it must exist.
func (p *Program) Eval(ctx context.Context, only string) ([]Output, error) {
	logger := ctxlog.FromContext(ctx)
	ectx := p.EvalContext()

	var outputs []Output
	for _, e := range p.evals {
		if only != "" && e.Name != only {
			continue
		}
		out, err := p.evalOne(e, ectx)
		if err != nil {
			return outputs, fmt.Errorf("eval %q: %w", e.Name, err)
		}
		logger.Debug("Eval block finished.", "name", e.Name, "value", Render(out.Value))
		outputs = append(outputs, out)
	}

	if only != "" && len(outputs) == 0 {
		return nil, fmt.Errorf("no eval block named %q", only)
	}
	return outputs, nil
}

func (p *Program) evalOne(e *evalBlock, ectx *hcl.EvalContext) (Output, error) {
	name, diags := nameOf(e.Proc)
	if diags.HasErrors() {
		return Output{}, diags
	}
	def, ok := p.defs[name]
	if !ok {
		return Output{}, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unknown procedure",
			Detail:   fmt.Sprintf("There is no builtin or proc block named %q.", name),
			Subject:  e.Proc.Range().Ptr(),
		}}
	}

	args, diags := evalArgs(e.Args, ectx)
	if diags.HasErrors() {
		return Output{}, diags
	}

	v, err := def.Call(args...)
	if err != nil {
		return Output{}, err
	}
	cv, err := proc.ToCty(v)
	if err != nil {
		return Output{}, fmt.Errorf("result of %s cannot be represented: %w", name, err)
	}
	return Output{Name: e.Name, Value: cv}, nil
}
