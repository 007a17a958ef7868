package handlers

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/provost-sh/provost/internal/provision"
	"github.com/provost-sh/provost/internal/provision/stages"
	"github.com/provost-sh/provost/internal/ui/tui"
	"github.com/provost-sh/provost/internal/util/prerequisites"
)

// Factory function variables for setup - can be replaced in tests.
var (
	// serverStages returns the server pipeline.
	serverStages = stages.ServerStages

	// wordpressStages returns the WordPress pipeline.
	wordpressStages = stages.WordPressStages

	// runPipeline executes stages against a context.
	runPipeline = provision.Run

	// interactive reports whether stdout is a terminal.
	interactive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd())
	}

	// runTUI wraps a run with the progress view.
	runTUI = tui.Run
)

// Setup provisions the server: every stage in order, skipping those the
// ledger already records. Re-running after a failure resumes at the failed
// stage.
func Setup(ctx context.Context, configPath string, plain bool) error {
	return runStages(ctx, configPath, "setup", "Server setup", serverStages(), plain)
}

// WordPress installs a WordPress site on an already provisioned server.
// It keeps its own ledger, independent of the server pipeline's.
func WordPress(ctx context.Context, configPath string, plain bool) error {
	return runStages(ctx, configPath, "wordpress", "WordPress install", wordpressStages(), plain)
}

func runStages(ctx context.Context, configPath, pipeline, title string, list []provision.Stage, plain bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	env := newEnvironment()
	if err := prerequisites.Check(env, prerequisites.SetupTools()).Error(); err != nil {
		return err
	}

	pctx := provision.NewContext(ctx, cfg, env, newLedger(ledgerPath(cfg, pipeline)))

	if !plain && interactive() {
		names := make([]string, len(list))
		for i, s := range list {
			names[i] = s.Name()
		}
		return runTUI(ctx, title, names, func(runCtx context.Context, obs provision.Observer) error {
			pctx.Context = runCtx
			pctx.Observer = obs
			return runPipeline(pctx, list)
		})
	}
	return runPipeline(pctx, list)
}
