// Package lifecycle coordinates startup and graceful shutdown across subsystems.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ReadinessChecker reports whether startup has completed.
type ReadinessChecker interface {
	Ready() bool
}

// Coordinator tracks startup and shutdown hooks. Shutdown hooks are started
// immediately and are expected to block on Context().Done().
type Coordinator struct {
	ctx        context.Context
	cancel     context.CancelFunc
	startupWg  sync.WaitGroup
	shutdownWg sync.WaitGroup
	ready      bool
	readyMu    sync.RWMutex
}

// New creates a coordinator with a fresh root context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context returns the context cancelled when Shutdown begins.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup runs fn in its own goroutine and tracks it until WaitForStartup.
func (c *Coordinator) OnStartup(fn func()) {
	c.startupWg.Add(1)
	go func() {
		defer c.startupWg.Done()
		fn()
	}()
}

// OnShutdown runs fn in its own goroutine and waits for it during Shutdown.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdownWg.Add(1)
	go func() {
		defer c.shutdownWg.Done()
		fn()
	}()
}

// WaitForStartup blocks until all startup hooks return, then marks the
// coordinator ready.
func (c *Coordinator) WaitForStartup() {
	c.startupWg.Wait()

	c.readyMu.Lock()
	c.ready = true
	c.readyMu.Unlock()
}

// Ready reports whether WaitForStartup has completed.
func (c *Coordinator) Ready() bool {
	c.readyMu.RLock()
	defer c.readyMu.RUnlock()
	return c.ready
}

// Shutdown cancels the root context and waits up to timeout for shutdown hooks.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.readyMu.Lock()
	c.ready = false
	c.readyMu.Unlock()

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
