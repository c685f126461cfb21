package hcl

import (
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// isAbsent reports whether expr is the null placeholder gohcl assigns to an
// optional attribute that was not written.
func isAbsent(expr hcl.Expression) bool {
	if expr == nil {
		return true
	}
	if _, ok := expr.(hclsyntax.Expression); ok {
		return false
	}
	val, diags := expr.Value(nil)
	return !diags.HasErrors() && val.IsNull()
}

// nameOf reads a procedure reference, written either as a bare identifier
// (`add`) or as a string (`"add"`).
func nameOf(expr hcl.Expression) (string, hcl.Diagnostics) {
	if kw := hcl.ExprAsKeyword(expr); kw != "" {
		return kw, nil
	}
	var name string
	diags := gohcl.DecodeExpression(expr, nil, &name)
	if diags.HasErrors() {
		return "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid procedure reference",
			Detail:   "A procedure is referenced by its name, either bare or quoted.",
			Subject:  expr.Range().Ptr(),
		}}
	}
	return name, nil
}

// namesOf reads a static list of procedure references.
func namesOf(expr hcl.Expression) ([]string, []hcl.Range, hcl.Diagnostics) {
	exprs, diags := hcl.ExprList(expr)
	if diags.HasErrors() {
		return nil, nil, diags
	}
	names := make([]string, 0, len(exprs))
	ranges := make([]hcl.Range, 0, len(exprs))
	for _, e := range exprs {
		name, nameDiags := nameOf(e)
		diags = append(diags, nameDiags...)
		if nameDiags.HasErrors() {
			continue
		}
		names = append(names, name)
		ranges = append(ranges, e.Range())
	}
	return names, ranges, diags
}

// evalArgs evaluates an args expression to a list of cty values. A missing or
// null expression yields no arguments.
func evalArgs(expr hcl.Expression, ectx *hcl.EvalContext) ([]any, hcl.Diagnostics) {
	if isAbsent(expr) {
		return nil, nil
	}
	val, diags := expr.Value(ectx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, diags
	}
	ty := val.Type()
	if !(ty.IsTupleType() || ty.IsListType()) || !val.IsWhollyKnown() {
		return nil, diags.Append(&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid args",
			Detail:   "args must be a list of argument values.",
			Subject:  expr.Range().Ptr(),
		})
	}

	args := make([]any, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		_, v := it.Element()
		args = append(args, v)
	}
	return args, diags
}

// calledFunctions returns the sorted, unique names of every function called
// inside expr.
func calledFunctions(expr hcl.Expression) []string {
	syntaxExpr, ok := expr.(hclsyntax.Expression)
	if !ok {
		return nil
	}
	functions := make(map[string]struct{})
	walkForFunctions(syntaxExpr, functions)

	names := make([]string, 0, len(functions))
	for f := range functions {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

// walkForFunctions recursively walks the AST, looking only for function calls.
func walkForFunctions(expr hclsyntax.Expression, functions map[string]struct{}) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		functions[e.Name] = struct{}{}
		for _, arg := range e.Args {
			walkForFunctions(arg, functions)
		}
	case *hclsyntax.BinaryOpExpr:
		walkForFunctions(e.LHS, functions)
		walkForFunctions(e.RHS, functions)
	case *hclsyntax.ConditionalExpr:
		walkForFunctions(e.Condition, functions)
		walkForFunctions(e.TrueResult, functions)
		walkForFunctions(e.FalseResult, functions)
	case *hclsyntax.UnaryOpExpr:
		walkForFunctions(e.Val, functions)
	case *hclsyntax.TemplateExpr:
		for _, part := range e.Parts {
			walkForFunctions(part, functions)
		}
	case *hclsyntax.TemplateWrapExpr:
		walkForFunctions(e.Wrapped, functions)
	case *hclsyntax.TupleConsExpr:
		for _, item := range e.Exprs {
			walkForFunctions(item, functions)
		}
	case *hclsyntax.ObjectConsExpr:
		for _, item := range e.Items {
			walkForFunctions(item.KeyExpr, functions)
			walkForFunctions(item.ValueExpr, functions)
		}
	case *hclsyntax.ForExpr:
		walkForFunctions(e.CollExpr, functions)
		walkForFunctions(e.KeyExpr, functions)
		walkForFunctions(e.ValExpr, functions)
		walkForFunctions(e.CondExpr, functions)
	case *hclsyntax.IndexExpr:
		walkForFunctions(e.Collection, functions)
		walkForFunctions(e.Key, functions)
	case *hclsyntax.SplatExpr:
		walkForFunctions(e.Source, functions)
		walkForFunctions(e.Each, functions)
	case *hclsyntax.ParenthesesExpr:
		walkForFunctions(e.Expression, functions)
	}
}

// Render formats a value as HCL source.
func Render(v cty.Value) string {
	return strings.TrimSpace(string(hclwrite.TokensForValue(v).Bytes()))
}
