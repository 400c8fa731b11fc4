package provisioning

import (
	"fmt"
	"time"
)

// Phase defines one independent deployment pipeline.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the phase.
	Provision(ctx *Context) error
}

// RunPhases executes all deployment phases sequentially. A failed phase
// aborts the remaining ones; resources already recreated stay in place,
// there is no rollback.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()

	for i, phase := range phases {
		phaseStart := time.Now()
		ctx.Notifier.Infof("[%s] starting (%d/%d)", phase.Name(), i+1, len(phases))

		if err := phase.Provision(ctx); err != nil {
			ctx.Notifier.Failf("[%s] failed: %v", phase.Name(), err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		ctx.Notifier.Successf("[%s] completed in %v", phase.Name(), time.Since(phaseStart).Round(time.Millisecond))
	}

	ctx.Notifier.Successf("deployment completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
