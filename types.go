// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

// store is the contract shared by the backing store family. A store holds
// published-but-not-fully-consumed values, each paired with a count of the
// live subscriptions that still have to read it. A value is cleared exactly
// when that count reaches zero, so one stored value is read once by every
// live subscriber before being reclaimed.
//
// Four implementations exist, selected by capacity shape:
//
//	ringStore     - bounded, arbitrary capacity (index % capacity)
//	ringPow2Store - bounded, power-of-two capacity (index & mask)
//	singleStore   - bounded, capacity 1 (no index arithmetic at all)
//	linkedStore   - unbounded linked list
//
// Stores are not safe for concurrent use on their own. The owning Hub
// serializes every call behind its mutex; see hub.go.
type store[T any] interface {
	// publish appends one value. Reports false if the store is full.
	// With no live subscribers the value is not retained in the main
	// buffer when a replay ring exists (history flows through replay);
	// without one, bounded stores keep the value for the first subscriber
	// to claim.
	publish(v T) bool

	// publishAll appends values until the store is full and returns the
	// unwritten remainder.
	publishAll(vs []T) []T

	// slide force-evicts the oldest retained value irrespective of its
	// reference count, making room for a new one. Used by the Sliding
	// strategy. The replay ring, if any, slides with the store.
	slide()

	// subscribe attaches a new subscriber and returns its private cursor.
	subscribe() cursor[T]

	size() int
	cap() int
	isEmpty() bool
	isFull() bool

	// replay returns the store's replay ring, or nil if none is configured.
	replay() *replayBuffer[T]
}

// cursor is a subscription's private read position into a backing store.
// It is owned exclusively by one Subscription and never shared.
type cursor[T any] interface {
	// poll returns the next unconsumed value, decrementing its slot's
	// reference count and reclaiming the slot if this was the last reader.
	poll() (T, bool)

	// pollUpTo polls up to n values in a tight loop.
	pollUpTo(n int) []T

	// available reports how many values poll can return without waiting.
	available() int

	// unsubscribe detaches the cursor, releasing its share of every slot
	// it had not yet consumed. The cursor must not be used afterwards.
	unsubscribe()
}

// newStore creates the bounded store matching the capacity shape.
// Panics if capacity < 1. A replay ring is attached when replay > 0.
func newStore[T any](capacity, replay int) store[T] {
	if capacity < 1 {
		panic("hub: capacity must be > 0")
	}
	var rp *replayBuffer[T]
	if replay > 0 {
		rp = newReplayBuffer[T](replay)
	}
	switch {
	case capacity == 1:
		return newSingleStore[T](rp)
	case capacity&(capacity-1) == 0:
		return newRingPow2Store[T](capacity, rp)
	default:
		return newRingStore[T](capacity, rp)
	}
}

// Stats is a snapshot of hub activity counters. Counters are monotonic and
// readable without taking the hub lock.
type Stats struct {
	// Published counts values admitted to the hub, including values
	// accepted while no subscriber was attached.
	Published int64

	// Dropped counts values lost to the Dropping strategy.
	Dropped int64

	// Slid counts values evicted by the Sliding strategy.
	Slid int64
}
