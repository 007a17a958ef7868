package provision

import (
	"context"
	"time"

	"github.com/provost-sh/provost/internal/config"
	"github.com/provost-sh/provost/internal/ledger"
	"github.com/provost-sh/provost/internal/platform/system"
)

// Stage defines the interface for one unit of provisioning work. A stage's
// action must be safe to re-run from scratch: partial failure leaves no
// ledger record, and the next run repeats the whole stage.
type Stage interface {
	// Name returns the stage's ledger key.
	Name() string

	// Provision executes the stage against the target machine.
	Provision(ctx *Context) error
}

// State holds the shared results of provisioning stages.
// It is progressively populated as each stage completes and is read by
// later stages that need earlier results.
type State struct {
	// DeployPublicKey is the authorized_keys line installed by ssh_setup.
	DeployPublicKey string

	// DeployPrivateKeyPath is where ssh_setup wrote the private key.
	DeployPrivateKeyPath string

	// DatabasePassword is generated by the mysql stage and consumed by
	// the WordPress config stage.
	DatabasePassword string

	// VhostPath is the nginx site file rendered for the configured domain.
	VhostPath string
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

// Context wraps all dependencies and state needed by a provisioning stage.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	System   system.Environment
	Ledger   ledger.Ledger
	Observer Observer
	Timeouts *config.Timeouts
}

// withTimeout returns a copy of the context whose embedded context.Context
// is bounded by d. A zero or negative d leaves the context unbounded.
func (c *Context) withTimeout(d time.Duration) (*Context, context.CancelFunc) {
	if d <= 0 {
		return c, func() {}
	}
	inner, cancel := context.WithTimeout(c.Context, d)
	bounded := *c
	bounded.Context = inner
	return &bounded, cancel
}

// NewContext creates a provisioning context with a console observer.
func NewContext(ctx context.Context, cfg *config.Config, env system.Environment, led ledger.Ledger) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		System:   env,
		Ledger:   led,
		Observer: NewConsoleObserver(),
		Timeouts: config.LoadTimeouts(),
	}
}
