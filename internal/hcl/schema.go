package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block a procedure file may contain.
type fileRoot struct {
	Procs []*procBlock `hcl:"proc,block"`
	Evals []*evalBlock `hcl:"eval,block"`
}

// procBlock declares a named procedure. Exactly one of Source and Compose is
// set. Args seeds the partial application.
type procBlock struct {
	Name    string         `hcl:"name,label"`
	Source  hcl.Expression `hcl:"source,optional"`
	Compose hcl.Expression `hcl:"compose,optional"`
	Order   string         `hcl:"order,optional"`
	Args    hcl.Expression `hcl:"args,optional"`
}

// evalBlock calls a procedure and reports the result under Name.
type evalBlock struct {
	Name string         `hcl:"name,label"`
	Proc hcl.Expression `hcl:"proc"`
	Args hcl.Expression `hcl:"args,optional"`
}

const (
	orderForward  = "forward"
	orderBackward = "backward"
)
