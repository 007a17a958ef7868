package provision

import (
	"fmt"
	"time"
)

// Run executes the stages in order, consulting the ledger before each one.
// A stage already recorded as complete is skipped. A stage that succeeds is
// recorded before the next stage starts. The first stage error aborts the
// run without writing a record, so a re-run retries that stage from
// scratch. Ledger I/O errors are fatal: the runner never guesses at
// completion state. Each stage runs under the configured stage timeout,
// and a canceled context stops the run at the next stage boundary.
func Run(ctx *Context, stages []Stage) error {
	start := time.Now()
	ctx.Observer.Printf("Starting provisioning with %d stages...", len(stages))

	ran := 0
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("provisioning aborted: %w", err)
		}

		done, err := ctx.Ledger.IsComplete(stage.Name())
		if err != nil {
			return fmt.Errorf("ledger lookup for %s failed: %w", stage.Name(), err)
		}
		if done {
			logStageSkipped(ctx.Observer, stage.Name())
			continue
		}

		stageStart := time.Now()
		logStageStart(ctx.Observer, stage.Name())

		stageCtx, cancel := ctx.withTimeout(ctx.Timeouts.Stage)
		err = stage.Provision(stageCtx)
		cancel()
		if err != nil {
			logStageFailed(ctx.Observer, stage.Name(), err)
			return fmt.Errorf("%s stage failed: %w", stage.Name(), err)
		}

		if err := ctx.Ledger.MarkComplete(stage.Name()); err != nil {
			return fmt.Errorf("failed to record %s as complete: %w", stage.Name(), err)
		}

		logStageComplete(ctx.Observer, stage.Name(), time.Since(stageStart))
		ran++
	}

	ctx.Observer.Printf("Provisioning completed in %v (%d run, %d skipped)",
		time.Since(start).Round(time.Millisecond), ran, len(stages)-ran)
	return nil
}
