// Package catalog holds the builtin procedures every procedure file can use.
package catalog

import (
	"sort"

	"github.com/specialistvlad/procgo/proc"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Builtins returns a fresh set of builtin procedures keyed by name.
func Builtins() map[string]*proc.Proc {
	return map[string]*proc.Proc{
		// go-cty standard library
		"add":      proc.Must(stdlib.AddFunc),
		"subtract": proc.Must(stdlib.SubtractFunc),
		"multiply": proc.Must(stdlib.MultiplyFunc),
		"negate":   proc.Must(stdlib.NegateFunc),
		"upper":    proc.Must(stdlib.UpperFunc),
		"lower":    proc.Must(stdlib.LowerFunc),
		"format":   proc.Must(stdlib.FormatFunc),
		"join":     proc.Must(stdlib.JoinFunc),
		"max":      proc.Must(stdlib.MaxFunc),
		"min":      proc.Must(stdlib.MinFunc),
		"concat":   proc.Must(stdlib.ConcatFunc),

		// Go functions
		"square": proc.Must(Square),
		"sum":    proc.Must(Sum),
		"pair":   proc.Must(Pair),
		"list":   proc.Must(List),
	}
}

// Names returns the builtin names in sorted order.
func Names() []string {
	names := make([]string, 0, len(Builtins()))
	for name := range Builtins() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Square returns x*x.
func Square(x float64) float64 {
	return x * x
}

// Sum adds up xs; with no arguments it is 0.
func Sum(xs ...float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}

// Pair returns its two arguments as a list.
func Pair(a, b any) []any {
	return []any{a, b}
}

// List returns its arguments as a list, never nil.
func List(items ...any) []any {
	if items == nil {
		return []any{}
	}
	return items
}
