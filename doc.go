// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package hub provides a concurrent publish/subscribe broadcast hub.
//
// A hub delivers every published value to every subscription attached at
// publish time, each consuming at its own pace. A configurable overflow
// strategy decides what happens when the backing store is full, and an
// optional bounded replay window lets late subscribers see recent history.
//
// # Quick Start
//
// Direct constructors cover the common cases:
//
//	h := hub.NewBounded[string](16)   // publishers block when full
//	h := hub.NewDropping[string](16)  // surplus values are lost
//	h := hub.NewSliding[string](16)   // oldest values are evicted
//	h := hub.NewUnbounded[string]()   // never full
//
// The builder adds replay history:
//
//	h := hub.Build[string](hub.New(16).Sliding().Replay(4))
//
// Subscribe, publish, take:
//
//	sub, err := h.Subscribe()
//	if err != nil { ... }
//	defer sub.Close()
//
//	h.Publish(ctx, "hello")
//	v, err := sub.Take(ctx)
//
// # Overflow Strategies
//
// Three strategies decide the fate of values that arrive while the store
// is full:
//
//   - BackPressure: the publisher parks until consumers free space. No
//     value is ever lost; Publish reports true once the value lands.
//   - Dropping: the newest surplus values are silently discarded; Publish
//     reports false. Nothing ever blocks.
//   - Sliding: the oldest retained value is evicted to admit the new one;
//     Publish always reports true. Subscribers observe the most recent
//     window of values.
//
// Loss under Dropping and Sliding is a policy outcome communicated through
// boolean results, never through an error.
//
// # Backing Stores
//
// The store is selected by capacity shape at construction: a single-slot
// fast path for capacity 1, a masked ring for power-of-two capacities, a
// modulo ring for everything else, and a linked list for unbounded hubs.
// Capacity is honored exactly and never rounded.
//
// Internally each stored value carries a reference count of the live
// subscriptions that still have to read it; the slot is reclaimed exactly
// when the count reaches zero. This makes the hub a genuine broadcast
// buffer: one stored value, read once by every subscriber, rather than a
// FIFO consumed by whoever polls first.
//
// # Replay
//
// With Replay(n) the hub keeps the last n admitted values in a bounded
// ring. A new subscription snapshots the ring and drains it before live
// delivery begins; values the ring evicts in the meantime are skipped, and
// a drained window is never rearmed. Within one subscription replayed and
// live values never duplicate.
//
// Only admitted values enter the ring. A value lost to Dropping, or one a
// full store rejected outright, never appears in any replay window.
//
// # Ordering
//
// Within one subscription, values arrive in publish order exactly once
// each. Across subscriptions there is no relative ordering guarantee.
// Blocked takes on one subscription are served oldest first.
//
// # Non-Blocking Boundary
//
// TryPublish and TryTake never park. They return
// [code.hybscloud.com/iox.ErrWouldBlock] when the operation cannot proceed
// immediately:
//
//	backoff := iox.Backoff{}
//	for {
//		v, err := sub.TryTake()
//		if err == nil {
//			backoff.Reset()
//			process(v)
//			continue
//		}
//		if !hub.IsWouldBlock(err) {
//			return err
//		}
//		backoff.Wait()
//	}
//
// # Shutdown
//
// Shutdown closes the hub exactly once: every blocked publish and take
// fails with [ErrShutdown], subscriptions are released, and all subsequent
// operations fail with [ErrShutdown]. AwaitShutdown parks until shutdown
// happens. A blocked Take or Publish whose context fires deregisters its
// waiter before returning, so it can never swallow a value published later.
// If the value was already handed to it when the context fired, the value
// wins over the context error.
//
// # Thread Safety
//
// All hub and subscription operations are safe for concurrent use from any
// number of goroutines. The coordination state (store, registry, strategy)
// is guarded by a single mutex; blocked operations park on one-shot
// futures outside it.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for the shutdown flag and activity counters,
// and [code.hybscloud.com/spin] for the pre-park pause loop.
package hub
