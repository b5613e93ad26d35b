// Package signalctx adapts SIGINT/SIGTERM into a context.Context
// cancellation, the same one-shot-then-hard-exit pattern used
// throughout the corpus this binary is grounded on.
package signalctx

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

var (
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
)

// Context returns a Context cancelled on the first SIGINT or SIGTERM.
// A second signal terminates the process immediately with exit code 1,
// so a CEGAR loop wedged on a pathological instance can always be
// killed.
func Context() context.Context {
	once.Do(func() {
		c := make(chan os.Signal, 2)
		signal.Notify(c, shutdownSignals...)
		ctx, cancel = context.WithCancel(context.Background())
		go func() {
			<-c
			cancel()
			<-c
			os.Exit(1)
		}()
	})
	return ctx
}
