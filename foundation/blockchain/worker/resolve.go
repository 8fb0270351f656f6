package worker

import (
	"context"
	"time"
)

// resolveTimeout bounds a single round of conflict resolution.
const resolveTimeout = time.Minute

// resolveOperations handles conflict resolution with the known peers.
func (w *Worker) resolveOperations() {
	w.evHandler("worker: resolveOperations: G started")
	defer w.evHandler("worker: resolveOperations: G completed")

	for {
		select {
		case <-w.ticker.C:
			if !w.isShutdown() {
				w.runResolveOperation()
			}
		case <-w.startResolve:
			if !w.isShutdown() {
				w.runResolveOperation()
			}
		case <-w.shut:
			w.evHandler("worker: resolveOperations: received shut signal")
			return
		}
	}
}

// runResolveOperation asks the peers for their chains and adopts the
// longest valid one.
func (w *Worker) runResolveOperation() {
	w.evHandler("worker: runResolveOperation: started")
	defer w.evHandler("worker: runResolveOperation: completed")

	// Shutting down abandons any outstanding peer requests.
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	go func() {
		select {
		case <-w.shut:
			cancel()
		case <-ctx.Done():
		}
	}()

	replaced, chain := w.state.Resolve(ctx)
	w.evHandler("worker: runResolveOperation: replaced[%v]: length[%d]", replaced, len(chain))
}
