// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import (
	"context"
	"sync"

	"code.hybscloud.com/atomix"
)

// Hub is a concurrent broadcast coordinator: publishers write values, any
// number of independently-paced subscribers each receive every value
// published while attached, and a strategy chosen at construction decides
// what happens when the backing store is full.
//
// The original coordination protocol assumes a single logical thread of
// execution; this implementation makes that explicit with one mutex
// guarding the store, the subscriber registry and the strategy state.
// Every mutating step runs indivisibly between suspension points, and
// suspension itself is parking on a one-shot future outside the lock.
type Hub[T any] struct {
	mu       sync.Mutex
	store    store[T]
	strategy strategy[T]
	subs     map[*Subscription[T]]struct{}
	closed   atomix.Bool
	done     chan struct{}

	published atomix.Int64
	dropped   atomix.Int64
	slid      atomix.Int64
}

// NewBounded creates a hub with the given capacity and the BackPressure
// strategy: publishers block while the store is full.
// Panics if capacity < 1.
func NewBounded[T any](capacity int) *Hub[T] {
	return Build[T](New(capacity))
}

// NewDropping creates a hub with the given capacity and the Dropping
// strategy: surplus values are discarded and Publish reports false.
// Panics if capacity < 1.
func NewDropping[T any](capacity int) *Hub[T] {
	return Build[T](New(capacity).Dropping())
}

// NewSliding creates a hub with the given capacity and the Sliding
// strategy: the oldest retained value is evicted to admit a new one, so
// Publish always reports true.
// Panics if capacity < 1.
func NewSliding[T any](capacity int) *Hub[T] {
	return Build[T](New(capacity).Sliding())
}

// NewUnbounded creates a hub that never rejects a publish.
func NewUnbounded[T any]() *Hub[T] {
	return Build[T](Unbounded())
}

func newHub[T any](st store[T], strat strategy[T]) *Hub[T] {
	return &Hub[T]{
		store:    st,
		strategy: strat,
		subs:     make(map[*Subscription[T]]struct{}),
		done:     make(chan struct{}),
	}
}

// Publish offers one value to every current subscriber. It reports whether
// the value was accepted: under Dropping a full store loses the value and
// reports false, under Sliding and on unbounded hubs it always reports
// true, and under BackPressure it blocks until the value lands, ctx is
// done, or the hub shuts down.
func (h *Hub[T]) Publish(ctx context.Context, v T) (bool, error) {
	h.mu.Lock()
	if h.closed.Load() {
		h.mu.Unlock()
		return false, ErrShutdown
	}
	if h.store.publish(v) {
		h.published.Add(1)
		h.completeSubscribers()
		h.mu.Unlock()
		return true, nil
	}
	ok, wait := h.strategy.handleSurplus(h, []T{v})
	if wait == nil {
		if ok {
			h.completeSubscribers()
		}
		h.mu.Unlock()
		return ok, nil
	}
	h.mu.Unlock()
	return h.awaitPublish(ctx, wait)
}

// PublishAll publishes the values in order, reporting whether all of them
// were accepted. Surplus handling follows the strategy exactly as in
// Publish; under BackPressure the call blocks until the whole batch lands.
func (h *Hub[T]) PublishAll(ctx context.Context, vs ...T) (bool, error) {
	h.mu.Lock()
	if h.closed.Load() {
		h.mu.Unlock()
		return false, ErrShutdown
	}
	if len(vs) == 0 {
		h.mu.Unlock()
		return true, nil
	}
	leftover := h.store.publishAll(vs)
	if n := len(vs) - len(leftover); n > 0 {
		h.published.Add(int64(n))
		h.completeSubscribers()
	}
	if len(leftover) == 0 {
		h.mu.Unlock()
		return true, nil
	}
	ok, wait := h.strategy.handleSurplus(h, leftover)
	if wait == nil {
		if ok {
			h.completeSubscribers()
		}
		h.mu.Unlock()
		return ok, nil
	}
	h.mu.Unlock()
	return h.awaitPublish(ctx, wait)
}

// TryPublish attempts direct admission into the store without engaging the
// overflow strategy. Returns ErrWouldBlock if the store is full and
// ErrShutdown if the hub is shut down.
func (h *Hub[T]) TryPublish(v T) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed.Load() {
		return ErrShutdown
	}
	if !h.store.publish(v) {
		return ErrWouldBlock
	}
	h.published.Add(1)
	h.completeSubscribers()
	return nil
}

// awaitPublish parks a blocked publisher on the surplus future.
func (h *Hub[T]) awaitPublish(ctx context.Context, w *future[bool]) (bool, error) {
	if w.wait(ctx) {
		return w.value, w.err
	}
	h.mu.Lock()
	if w.resolved {
		// Resolution raced the context; the values already landed.
		h.mu.Unlock()
		return w.value, w.err
	}
	h.strategy.cancelSurplus(w)
	h.mu.Unlock()
	return false, ctx.Err()
}

// Subscribe attaches a new subscriber. The subscription starts with the
// hub's replay history, if configured, and then receives every value
// published while it is attached. Callers release it with
// [Subscription.Close], typically via defer; Shutdown releases all
// subscriptions.
func (h *Hub[T]) Subscribe() (*Subscription[T], error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed.Load() {
		return nil, ErrShutdown
	}
	sub := &Subscription[T]{hub: h, cur: h.store.subscribe()}
	if rp := h.store.replay(); rp != nil {
		sub.window = rp.window()
	}
	h.subs[sub] = struct{}{}
	return sub, nil
}

// Shutdown closes the hub: the registry is discarded, every blocked
// publisher and taker fails with ErrShutdown, and all subsequent
// operations fail with ErrShutdown. Shutdown is idempotent and safe to
// call concurrently; cleanup executes exactly once.
func (h *Hub[T]) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed.Load() {
		return
	}
	h.closed.Store(true)
	h.strategy.shutdown(h)
	for sub := range h.subs {
		sub.shutdownLocked()
	}
	h.subs = nil
	close(h.done)
}

// IsShutdown reports whether the hub has been shut down. Lock-free.
func (h *Hub[T]) IsShutdown() bool {
	return h.closed.Load()
}

// AwaitShutdown blocks until the hub is shut down or ctx is done.
func (h *Hub[T]) AwaitShutdown(ctx context.Context) error {
	select {
	case <-h.done:
		return nil
	default:
	}
	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Size returns the number of values currently retained by the store.
func (h *Hub[T]) Size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store.size()
}

// Cap returns the hub capacity, or math.MaxInt for unbounded hubs.
func (h *Hub[T]) Cap() int {
	return h.store.cap()
}

// IsEmpty reports whether the store retains no values.
func (h *Hub[T]) IsEmpty() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store.isEmpty()
}

// IsFull reports whether the store is at capacity. Always false for
// unbounded hubs.
func (h *Hub[T]) IsFull() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store.isFull()
}

// Stats returns a snapshot of the hub's activity counters. Lock-free.
func (h *Hub[T]) Stats() Stats {
	return Stats{
		Published: h.published.Load(),
		Dropped:   h.dropped.Load(),
		Slid:      h.slid.Load(),
	}
}

// completeSubscribers tries to satisfy every registered waiter across every
// subscription from the store. Shared by all strategies; only the
// onEmptySpace hook differs between them.
func (h *Hub[T]) completeSubscribers() {
	for sub := range h.subs {
		if len(sub.waiters) > 0 {
			h.completePollers(sub)
		}
	}
}

// completePollers serves one subscription's waiter queue in FIFO order,
// oldest waiter first. Each fulfilled waiter may free a slot, so the
// strategy's empty-space hook runs after every delivery.
func (h *Hub[T]) completePollers(sub *Subscription[T]) {
	for len(sub.waiters) > 0 {
		v, ok := sub.pollStep()
		if !ok {
			return
		}
		w := sub.waiters[0]
		sub.waiters[0] = nil
		sub.waiters = sub.waiters[1:]
		w.resolve(v)
		h.strategy.onEmptySpace(h)
	}
}
