// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import "context"

// Subscription is one subscriber's view of a hub: a private cursor into the
// backing store, a replay window snapshot taken at subscribe time, and a
// FIFO queue of outstanding take waiters. A Subscription is safe for
// concurrent use, though values are handed out in cursor order regardless
// of which goroutine asks.
//
// The replay window is drained once; after it is exhausted the subscription
// polls the live store forever.
type Subscription[T any] struct {
	hub     *Hub[T]
	cur     cursor[T]
	window  *replayWindow[T]
	waiters []*future[T] // guarded by hub.mu; FIFO
	closed  bool         // guarded by hub.mu
}

// pollStep takes the next value: replay window first, then the live cursor.
// Caller must hold the hub lock.
func (s *Subscription[T]) pollStep() (T, bool) {
	if s.window != nil {
		if v, ok := s.window.take(); ok {
			return v, true
		}
		if s.window.pending() == 0 {
			s.window = nil
		}
	}
	return s.cur.poll()
}

// Take returns the next value for this subscription, blocking until one is
// available, ctx is done, or the hub shuts down.
func (s *Subscription[T]) Take(ctx context.Context) (T, error) {
	var zero T
	h := s.hub
	h.mu.Lock()
	if s.closed {
		h.mu.Unlock()
		return zero, ErrShutdown
	}
	if v, ok := s.pollStep(); ok {
		h.strategy.onEmptySpace(h)
		h.mu.Unlock()
		return v, nil
	}
	w := newFuture[T]()
	s.waiters = append(s.waiters, w)
	// Data may have been drained in by the empty-space hook above;
	// serve the fresh waiter before parking.
	h.completePollers(s)
	h.mu.Unlock()

	if w.wait(ctx) {
		return w.value, w.err
	}
	h.mu.Lock()
	if w.resolved {
		// Resolution raced the context. The value already left the
		// store, so hand it over rather than lose it.
		h.mu.Unlock()
		return w.value, w.err
	}
	s.removeWaiter(w)
	h.mu.Unlock()
	return zero, ctx.Err()
}

// TryTake returns the next value without blocking. Returns ErrWouldBlock
// if none is available and ErrShutdown if the subscription is closed.
func (s *Subscription[T]) TryTake() (T, error) {
	var zero T
	h := s.hub
	h.mu.Lock()
	defer h.mu.Unlock()
	if s.closed {
		return zero, ErrShutdown
	}
	v, ok := s.pollStep()
	if !ok {
		return zero, ErrWouldBlock
	}
	h.strategy.onEmptySpace(h)
	return v, nil
}

// TakeAll returns every immediately available value without blocking.
func (s *Subscription[T]) TakeAll() []T {
	h := s.hub
	h.mu.Lock()
	defer h.mu.Unlock()
	return s.takeUpToLocked(s.remainingLocked())
}

// TakeUpTo returns up to n immediately available values without blocking.
func (s *Subscription[T]) TakeUpTo(n int) []T {
	h := s.hub
	h.mu.Lock()
	defer h.mu.Unlock()
	return s.takeUpToLocked(n)
}

// TakeBetween returns between min and max values, blocking until at least
// min have been taken. On error the values taken so far are returned with
// it.
func (s *Subscription[T]) TakeBetween(ctx context.Context, min, max int) ([]T, error) {
	if max <= 0 || min > max {
		return nil, nil
	}
	var acc []T
	for {
		h := s.hub
		h.mu.Lock()
		if s.closed {
			h.mu.Unlock()
			return acc, ErrShutdown
		}
		acc = append(acc, s.takeUpToLocked(max-len(acc))...)
		h.mu.Unlock()
		if len(acc) >= min {
			return acc, nil
		}
		v, err := s.Take(ctx)
		if err != nil {
			return acc, err
		}
		acc = append(acc, v)
	}
}

// Remaining reports how many values are immediately available: the unread
// rest of the replay window plus the cursor's backlog.
func (s *Subscription[T]) Remaining() int {
	h := s.hub
	h.mu.Lock()
	defer h.mu.Unlock()
	return s.remainingLocked()
}

// Close detaches the subscription: outstanding waiters fail with
// ErrShutdown and the cursor releases its share of every slot it had not
// consumed, which may unblock waiting publishers. Close is idempotent.
func (s *Subscription[T]) Close() error {
	h := s.hub
	h.mu.Lock()
	defer h.mu.Unlock()
	if s.closed {
		return nil
	}
	s.shutdownLocked()
	delete(h.subs, s)
	h.strategy.onEmptySpace(h)
	return nil
}

func (s *Subscription[T]) takeUpToLocked(n int) []T {
	if s.closed || n <= 0 {
		return nil
	}
	var vs []T
	if s.window != nil {
		vs = s.window.takeUpTo(n)
		if s.window.pending() == 0 {
			s.window = nil
		}
	}
	if len(vs) < n {
		vs = append(vs, s.cur.pollUpTo(n-len(vs))...)
	}
	if len(vs) > 0 {
		s.hub.strategy.onEmptySpace(s.hub)
	}
	return vs
}

func (s *Subscription[T]) remainingLocked() int {
	if s.closed {
		return 0
	}
	n := s.cur.available()
	if s.window != nil {
		n += s.window.pending()
	}
	return n
}

// shutdownLocked cancels the subscription's waiters and detaches its
// cursor. Caller must hold the hub lock.
func (s *Subscription[T]) shutdownLocked() {
	s.closed = true
	for _, w := range s.waiters {
		w.fail(ErrShutdown)
	}
	s.waiters = nil
	s.cur.unsubscribe()
}

func (s *Subscription[T]) removeWaiter(w *future[T]) {
	for i, x := range s.waiters {
		if x == w {
			s.waiters = append(s.waiters[:i], s.waiters[i+1:]...)
			return
		}
	}
}
