package hcl

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/procgo/internal/ctxlog"
	"github.com/specialistvlad/procgo/proc"
	"github.com/zclconf/go-cty/cty/function"
)

// resolver turns proc blocks into definitions, dependencies first.
type resolver struct {
	blocks map[string]*procBlock
	defs   map[string]*Definition
	stack  []string
}

// resolveAll resolves every block. Blocks may refer to each other in any
// order; a reference cycle is an error.
func (r *resolver) resolveAll(ctx context.Context, order []string) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, name := range order {
		_, resolveDiags := r.resolve(ctx, name, nil)
		diags = append(diags, resolveDiags...)
		if diags.HasErrors() {
			return diags
		}
	}
	return diags
}

func (r *resolver) resolve(ctx context.Context, name string, subject *hcl.Range) (*Definition, hcl.Diagnostics) {
	if def, ok := r.defs[name]; ok {
		return def, nil
	}
	b, ok := r.blocks[name]
	if !ok {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unknown procedure",
			Detail:   fmt.Sprintf("There is no builtin or proc block named %q.", name),
			Subject:  subject,
		}}
	}
	for i, seen := range r.stack {
		if seen == name {
			cycle := append(append([]string(nil), r.stack[i:]...), name)
			return nil, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Procedure cycle",
				Detail:   fmt.Sprintf("Procedures refer to each other in a cycle: %s.", strings.Join(cycle, " -> ")),
				Subject:  subject,
			}}
		}
	}

	r.stack = append(r.stack, name)
	defer func() { r.stack = r.stack[:len(r.stack)-1] }()

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolving procedure.", "name", name)

	def, diags := r.build(ctx, b)
	if diags.HasErrors() {
		return nil, diags
	}
	r.defs[name] = def
	logger.Debug("Procedure resolved.", "name", name, "arity", def.Info().Arity, "variadic", def.Info().Variadic, "seed", len(def.Seed()))
	return def, diags
}

func (r *resolver) build(ctx context.Context, b *procBlock) (*Definition, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	hasSource, hasCompose := !isAbsent(b.Source), !isAbsent(b.Compose)
	if hasSource == hasCompose {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid proc block",
			Detail:   fmt.Sprintf("Proc %q must set exactly one of source or compose.", b.Name),
			Subject:  b.Args.Range().Ptr(),
		}}
	}

	// Functions called inside args must exist before args can be evaluated.
	for _, fn := range calledFunctions(b.Args) {
		if _, ok := r.blocks[fn]; !ok {
			continue
		}
		_, depDiags := r.resolve(ctx, fn, b.Args.Range().Ptr())
		diags = append(diags, depDiags...)
		if depDiags.HasErrors() {
			return nil, diags
		}
	}

	args, argDiags := evalArgs(b.Args, r.evalContext())
	diags = append(diags, argDiags...)
	if argDiags.HasErrors() {
		return nil, diags
	}

	var chain proc.Curried
	if hasSource {
		name, nameDiags := nameOf(b.Source)
		diags = append(diags, nameDiags...)
		if nameDiags.HasErrors() {
			return nil, diags
		}
		src, srcDiags := r.resolve(ctx, name, b.Source.Range().Ptr())
		diags = append(diags, srcDiags...)
		if srcDiags.HasErrors() {
			return nil, diags
		}
		seed := append(src.Seed(), args...)
		chain = src.chain.Proc().Curry(seed...)
	} else {
		composed, composeDiags := r.compose(ctx, b)
		diags = append(diags, composeDiags...)
		if composeDiags.HasErrors() {
			return nil, diags
		}
		chain = composed.Curry(args...)
	}

	return newDefinition(b.Name, chain, false), diags
}

// compose folds the compose list into one procedure. Forward order runs the
// list left to right; backward order runs it right to left.
func (r *resolver) compose(ctx context.Context, b *procBlock) (*proc.Proc, hcl.Diagnostics) {
	names, ranges, diags := namesOf(b.Compose)
	if diags.HasErrors() {
		return nil, diags
	}
	if len(names) < 2 {
		return nil, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid compose list",
			Detail:   "compose needs at least two procedures.",
			Subject:  b.Compose.Range().Ptr(),
		})
	}

	order := b.Order
	if order == "" {
		order = orderForward
	}
	if order != orderForward && order != orderBackward {
		return nil, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid order",
			Detail:   fmt.Sprintf("order must be %q or %q, got %q.", orderForward, orderBackward, order),
			Subject:  b.Compose.Range().Ptr(),
		})
	}

	stages := make([]*Definition, len(names))
	for i, name := range names {
		def, defDiags := r.resolve(ctx, name, ranges[i].Ptr())
		diags = append(diags, defDiags...)
		if defDiags.HasErrors() {
			return nil, diags
		}
		stages[i] = def
	}

	var composed *proc.Proc
	if order == orderForward {
		composed = proc.Forward(stages[0], stages[1])
		for _, s := range stages[2:] {
			composed = composed.Then(s)
		}
	} else {
		composed = proc.Backward(stages[0], stages[1])
		for _, s := range stages[2:] {
			composed = composed.After(s)
		}
	}
	return composed, diags
}

// evalContext exposes every definition resolved so far as an HCL function.
func (r *resolver) evalContext() *hcl.EvalContext {
	funcs := make(map[string]function.Function, len(r.defs))
	for name, def := range r.defs {
		funcs[name] = def.Function()
	}
	return &hcl.EvalContext{Functions: funcs}
}
