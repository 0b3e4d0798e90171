package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"
)

// CancelFuncs holds the cancel functions returned by SetupLifecycle.
type CancelFuncs struct {
	// CancelTimeout cancels the timeout context.
	CancelTimeout context.CancelFunc
	// StopSignals stops listening for OS signals.
	StopSignals context.CancelFunc
}

// Cleanup releases both the signal handler and the timeout.
func (c *CancelFuncs) Cleanup() {
	if c.StopSignals != nil {
		c.StopSignals()
	}
	if c.CancelTimeout != nil {
		c.CancelTimeout()
	}
}

// SetupLifecycle returns a context that is canceled when timeout expires or
// when SIGINT or SIGTERM is received, whichever happens first. A
// non-positive timeout applies no deadline.
func SetupLifecycle(ctx context.Context, timeout time.Duration) (context.Context, *CancelFuncs) {
	cancels := &CancelFuncs{}
	if timeout > 0 {
		ctx, cancels.CancelTimeout = context.WithTimeout(ctx, timeout)
	}
	ctx, cancels.StopSignals = signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, cancels
}
