// Package lifecycle coordinates startup and shutdown of long-running subsystems.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ReadinessChecker reports whether startup has completed.
type ReadinessChecker interface {
	Ready() bool
}

// Coordinator runs startup hooks, tracks readiness, and drains shutdown hooks.
// Shutdown hooks start immediately and are expected to block on Context().Done().
type Coordinator struct {
	ctx        context.Context
	cancel     context.CancelFunc
	startupWg  sync.WaitGroup
	shutdownWg sync.WaitGroup
	ready      atomic.Bool
}

// New creates a Coordinator with a fresh root context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{ctx: ctx, cancel: cancel}
}

// Context is cancelled when Shutdown begins.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup runs fn concurrently; WaitForStartup waits for it.
func (c *Coordinator) OnStartup(fn func()) {
	c.startupWg.Go(fn)
}

// OnShutdown runs fn concurrently; Shutdown waits for it after cancelling the context.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdownWg.Go(fn)
}

// WaitForStartup blocks until every startup hook returns, then marks the coordinator ready.
func (c *Coordinator) WaitForStartup() {
	c.startupWg.Wait()
	c.ready.Store(true)
}

// Ready reports whether startup has completed.
func (c *Coordinator) Ready() bool {
	return c.ready.Load()
}

// Shutdown cancels the context and waits up to timeout for shutdown hooks.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.ready.Store(false)
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.shutdownWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timeout after %v", timeout)
	}
}
