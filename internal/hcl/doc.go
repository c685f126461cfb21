// Package hcl loads procedure files written in HCL and evaluates them.
//
// A procedure file declares named procedures built from the builtin catalog
// or from each other, by partial application and composition, plus eval
// blocks that call them:
//
//	proc "add1" {
//	  source = add
//	  args   = [1]
//	}
//
//	proc "inc_then_square" {
//	  compose = [add1, square]
//	}
//
//	eval "answer" {
//	  proc = inc_then_square
//	  args = [2]
//	}
//
// Every procedure is also callable as an HCL function inside args
// expressions, so `args = [add1(41)]` works as expected.
package hcl
