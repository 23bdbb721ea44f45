// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import (
	"context"

	"code.hybscloud.com/spin"
)

// futureSpinBudget bounds the pause loop a waiter runs before parking on
// the future's channel. Resolution commonly arrives within a few producer
// instructions of the wait starting.
const futureSpinBudget = 64

// future is a single-assignment result shared between one waiting goroutine
// and the hub. It is resolved or failed at most once, always with the hub
// lock held; the closed channel publishes value and err to the waiter.
type future[T any] struct {
	done     chan struct{}
	value    T
	err      error
	resolved bool // guarded by the hub lock
}

func newFuture[T any]() *future[T] {
	return &future[T]{done: make(chan struct{})}
}

// resolve completes the future with a value. Reports false if it was
// already resolved or failed. Caller must hold the hub lock.
func (f *future[T]) resolve(v T) bool {
	if f.resolved {
		return false
	}
	f.resolved = true
	f.value = v
	close(f.done)
	return true
}

// fail completes the future with an error. Caller must hold the hub lock.
func (f *future[T]) fail(err error) bool {
	if f.resolved {
		return false
	}
	f.resolved = true
	f.err = err
	close(f.done)
	return true
}

// wait blocks until the future is resolved or ctx is done, reporting which.
// A short spin precedes parking. When wait reports false the caller must
// retake the hub lock, re-check resolved (resolution may have raced the
// context), and deregister the future.
func (f *future[T]) wait(ctx context.Context) bool {
	sw := spin.Wait{}
	for range futureSpinBudget {
		select {
		case <-f.done:
			return true
		default:
		}
		sw.Once()
	}
	select {
	case <-f.done:
		return true
	case <-ctx.Done():
		return false
	}
}
