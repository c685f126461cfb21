package hcl

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/procgo/internal/catalog"
	"github.com/specialistvlad/procgo/internal/ctxlog"
	"github.com/specialistvlad/procgo/internal/fsutil"
)

// Program is a set of loaded, resolved procedure definitions plus the eval
// blocks to run against them.
type Program struct {
	defs  map[string]*Definition
	names []string
	evals []*evalBlock
}

// Load parses every procedure file found under paths (files or
// directories), resolves all proc blocks against the builtin catalog and
// returns the resulting Program.
func Load(ctx context.Context, paths ...string) (*Program, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := findFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	return load(ctx, func(parser *hclparse.Parser) ([]*hcl.File, hcl.Diagnostics) {
		var out []*hcl.File
		var diags hcl.Diagnostics
		for _, path := range files {
			f, fileDiags := parser.ParseHCLFile(path)
			diags = append(diags, fileDiags...)
			if f != nil {
				out = append(out, f)
			}
		}
		return out, diags
	})
}

// LoadSource is like Load but reads a single in-memory file.
func LoadSource(ctx context.Context, filename string, src []byte) (*Program, error) {
	return load(ctx, func(parser *hclparse.Parser) ([]*hcl.File, hcl.Diagnostics) {
		f, diags := parser.ParseHCL(src, filename)
		if f == nil {
			return nil, diags
		}
		return []*hcl.File{f}, diags
	})
}

func load(ctx context.Context, parse func(*hclparse.Parser) ([]*hcl.File, hcl.Diagnostics)) (*Program, error) {
	logger := ctxlog.FromContext(ctx)

	files, diags := parse(hclparse.NewParser())
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse procedure files: %w", diags)
	}

	r := &resolver{
		blocks: make(map[string]*procBlock),
		defs:   make(map[string]*Definition),
	}
	for name, p := range catalog.Builtins() {
		r.defs[name] = newDefinition(name, p.Curry(), true)
	}

	var order []string
	var evals []*evalBlock
	for _, f := range files {
		var root fileRoot
		diags = gohcl.DecodeBody(f.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode procedure file: %w", diags)
		}

		for _, b := range root.Procs {
			if def, ok := r.defs[b.Name]; ok && def.Builtin {
				return nil, fmt.Errorf("proc %q shadows a builtin procedure", b.Name)
			}
			if _, ok := r.blocks[b.Name]; ok {
				return nil, fmt.Errorf("duplicate proc block %q", b.Name)
			}
			r.blocks[b.Name] = b
			order = append(order, b.Name)
		}
		evals = append(evals, root.Evals...)
	}
	logger.Debug("Procedure blocks decoded.", "procs", len(order), "evals", len(evals))

	if diags := r.resolveAll(ctx, order); diags.HasErrors() {
		return nil, fmt.Errorf("failed to resolve procedures: %w", diags)
	}

	sort.Strings(order)
	logger.Info("Procedures loaded.", "procs", len(order), "evals", len(evals))
	return &Program{defs: r.defs, names: order, evals: evals}, nil
}

// findFiles expands paths into a flat, de-duplicated list of .hcl files.
// Directories are walked recursively in lexical order.
func findFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			all = append(all, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			add(p)
		}
	}
	return all, nil
}

// Names returns the names of the proc blocks, sorted.
func (p *Program) Names() []string {
	return append([]string(nil), p.names...)
}

// Lookup returns the definition with the given name, builtins included.
func (p *Program) Lookup(name string) (*Definition, bool) {
	def, ok := p.defs[name]
	return def, ok
}
