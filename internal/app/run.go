package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/procgo/internal/ctxlog"
	"github.com/specialistvlad/procgo/internal/hcl"
)

// Run loads the configured procedure files and prints one line per
// evaluated eval block. Lines for blocks that finished before a failing one
// are still printed.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "path", a.config.Path)

	prog, err := hcl.Load(ctx, a.config.Path)
	if err != nil {
		return fmt.Errorf("failed to load procedures: %w", err)
	}
	a.logger.Info("Procedures ready.", "names", prog.Names())

	outputs, evalErr := prog.Eval(ctx, a.config.Only)
	for _, out := range outputs {
		if _, err := fmt.Fprintln(a.outW, out.String()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if evalErr != nil {
		return fmt.Errorf("evaluation failed: %w", evalErr)
	}
	if len(outputs) == 0 {
		a.logger.Warn("No eval blocks found, nothing to evaluate.")
	}

	a.logger.Debug("App.Run method finished.", "outputs", len(outputs))
	return nil
}
