// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import (
	"math"
	"testing"
)

// The three bounded stores share one contract; capacity shape selects the
// implementation. 1 exercises the single-slot fast path, 4 the masked
// ring, 5 the modulo ring.
var boundedCapacities = []int{1, 4, 5}

func TestStoreSelection(t *testing.T) {
	if _, ok := newStore[int](1, 0).(*singleStore[int]); !ok {
		t.Fatalf("capacity 1: got %T, want *singleStore", newStore[int](1, 0))
	}
	if _, ok := newStore[int](8, 0).(*ringPow2Store[int]); !ok {
		t.Fatalf("capacity 8: got %T, want *ringPow2Store", newStore[int](8, 0))
	}
	if _, ok := newStore[int](6, 0).(*ringStore[int]); !ok {
		t.Fatalf("capacity 6: got %T, want *ringStore", newStore[int](6, 0))
	}
}

func TestStoreFIFOContract(t *testing.T) {
	for _, capacity := range boundedCapacities {
		s := newStore[int](capacity, 0)
		if s.cap() != capacity {
			t.Fatalf("cap(%d): got %d, want %d", capacity, s.cap(), capacity)
		}
		c := s.subscribe()

		for i := range capacity {
			if !s.publish(i + 100) {
				t.Fatalf("cap %d: publish(%d) rejected", capacity, i)
			}
		}
		if !s.isFull() {
			t.Fatalf("cap %d: store not full after %d publishes", capacity, capacity)
		}
		if s.publish(999) {
			t.Fatalf("cap %d: publish on full store accepted", capacity)
		}

		for i := range capacity {
			v, ok := c.poll()
			if !ok {
				t.Fatalf("cap %d: poll(%d) empty", capacity, i)
			}
			if v != i+100 {
				t.Fatalf("cap %d: poll(%d): got %d, want %d", capacity, i, v, i+100)
			}
		}
		if _, ok := c.poll(); ok {
			t.Fatalf("cap %d: poll on empty store succeeded", capacity)
		}
		if !s.isEmpty() {
			t.Fatalf("cap %d: store not empty after draining", capacity)
		}
	}
}

func TestStoreBroadcastRefcount(t *testing.T) {
	for _, capacity := range boundedCapacities {
		s := newStore[int](capacity, 0)
		a := s.subscribe()
		b := s.subscribe()

		s.publish(7)
		if v, ok := a.poll(); !ok || v != 7 {
			t.Fatalf("cap %d: cursor a: got (%d, %v), want (7, true)", capacity, v, ok)
		}
		// The slot stays retained until every live cursor has read it.
		if s.size() != 1 {
			t.Fatalf("cap %d: size after first read: got %d, want 1", capacity, s.size())
		}
		if v, ok := b.poll(); !ok || v != 7 {
			t.Fatalf("cap %d: cursor b: got (%d, %v), want (7, true)", capacity, v, ok)
		}
		if s.size() != 0 {
			t.Fatalf("cap %d: size after both reads: got %d, want 0", capacity, s.size())
		}
		// Exactly once per cursor.
		if _, ok := a.poll(); ok {
			t.Fatalf("cap %d: cursor a read the value twice", capacity)
		}
	}
}

func TestStoreSizeInvariant(t *testing.T) {
	for _, capacity := range boundedCapacities {
		s := newStore[int](capacity, 0)
		c := s.subscribe()
		// Interleave publishes and polls past several wraparounds.
		for i := range 4 * capacity {
			if !s.publish(i) {
				t.Fatalf("cap %d: publish(%d) rejected", capacity, i)
			}
			if got := s.size(); got < 0 || got > capacity {
				t.Fatalf("cap %d: size %d outside [0, %d]", capacity, got, capacity)
			}
			if v, ok := c.poll(); !ok || v != i {
				t.Fatalf("cap %d: poll(%d): got (%d, %v)", capacity, i, v, ok)
			}
		}
	}
}

func TestStoreRetainsUnclaimedValues(t *testing.T) {
	for _, capacity := range boundedCapacities {
		s := newStore[int](capacity, 0)
		// No subscriber attached: values buffer up to capacity and the
		// first subscriber claims them.
		for i := range capacity {
			if !s.publish(i) {
				t.Fatalf("cap %d: publish(%d) with no subscribers rejected", capacity, i)
			}
		}
		if s.publish(999) {
			t.Fatalf("cap %d: publish beyond capacity accepted", capacity)
		}
		c := s.subscribe()
		for i := range capacity {
			if v, ok := c.poll(); !ok || v != i {
				t.Fatalf("cap %d: claimed poll(%d): got (%d, %v)", capacity, i, v, ok)
			}
		}
		if !s.isEmpty() {
			t.Fatalf("cap %d: store not empty after claiming subscriber drained", capacity)
		}
	}
}

func TestStoreDiscardsWhenReplaying(t *testing.T) {
	// With a replay ring, history flows through replay and the main
	// buffer does not retain zero-subscriber values.
	for _, capacity := range boundedCapacities {
		s := newStore[int](capacity, capacity)
		s.publish(1)
		if s.size() != 0 {
			t.Fatalf("cap %d: size with replay and no subscribers: got %d, want 0", capacity, s.size())
		}
		c := s.subscribe()
		if _, ok := c.poll(); ok {
			t.Fatalf("cap %d: cursor saw a discarded value", capacity)
		}
		w := s.replay().window()
		if v, ok := w.take(); !ok || v != 1 {
			t.Fatalf("cap %d: replay window: got (%d, %v), want (1, true)", capacity, v, ok)
		}
	}
}

func TestStoreLateSubscriberSeesNothing(t *testing.T) {
	// Once any subscriber is attached, later subscribers start at the
	// live edge.
	for _, capacity := range boundedCapacities {
		s := newStore[int](capacity, 0)
		a := s.subscribe()
		s.publish(1)
		b := s.subscribe()
		if _, ok := b.poll(); ok {
			t.Fatalf("cap %d: late cursor read a value published before it attached", capacity)
		}
		if v, ok := a.poll(); !ok || v != 1 {
			t.Fatalf("cap %d: cursor a: got (%d, %v), want (1, true)", capacity, v, ok)
		}
	}
}

func TestStoreUnsubscribeReleasesShare(t *testing.T) {
	for _, capacity := range boundedCapacities {
		s := newStore[int](capacity, 0)
		a := s.subscribe()
		b := s.subscribe()
		s.publish(1)
		if v, ok := a.poll(); !ok || v != 1 {
			t.Fatalf("cap %d: got (%d, %v), want (1, true)", capacity, v, ok)
		}
		if s.isEmpty() {
			t.Fatalf("cap %d: slot reclaimed while cursor b still owes a read", capacity)
		}
		// A late unsubscribe releases its share of every outstanding slot.
		b.unsubscribe()
		if !s.isEmpty() {
			t.Fatalf("cap %d: slot not reclaimed after unsubscribe", capacity)
		}
		if s.publish(2); s.size() != 1 {
			t.Fatalf("cap %d: store unusable after unsubscribe", capacity)
		}
	}
}

func TestStoreSlideEvictsOldest(t *testing.T) {
	for _, capacity := range boundedCapacities {
		s := newStore[int](capacity, 0)
		c := s.subscribe()
		for i := range capacity {
			s.publish(i)
		}
		s.slide()
		if s.isFull() {
			t.Fatalf("cap %d: store still full after slide", capacity)
		}
		s.publish(capacity)
		// The cursor is clamped past the evicted slot.
		v, ok := c.poll()
		if !ok || v != 1 {
			t.Fatalf("cap %d: poll after slide: got (%d, %v), want (1, true)", capacity, v, ok)
		}
	}
}

func TestStorePublishAllLeftover(t *testing.T) {
	s := newStore[int](4, 0)
	s.subscribe()
	leftover := s.publishAll([]int{0, 1, 2, 3, 4, 5})
	if len(leftover) != 2 || leftover[0] != 4 || leftover[1] != 5 {
		t.Fatalf("leftover: got %v, want [4 5]", leftover)
	}
	if !s.isFull() {
		t.Fatal("store not full after publishAll")
	}
}

func TestLinkedStoreBasics(t *testing.T) {
	s := newLinkedStore[int](0)
	if s.isFull() {
		t.Fatal("unbounded store reports full")
	}
	if s.cap() != math.MaxInt {
		t.Fatalf("cap: got %d, want math.MaxInt", s.cap())
	}
	// No subscribers: values are not retained.
	s.publish(1)
	if s.size() != 0 {
		t.Fatalf("size with no subscribers: got %d, want 0", s.size())
	}

	a := s.subscribe()
	b := s.subscribe()
	for i := range 100 {
		if !s.publish(i) {
			t.Fatalf("publish(%d) rejected", i)
		}
	}
	if s.size() != 100 {
		t.Fatalf("size: got %d, want 100", s.size())
	}
	for i := range 100 {
		if v, ok := a.poll(); !ok || v != i {
			t.Fatalf("cursor a poll(%d): got (%d, %v)", i, v, ok)
		}
	}
	if s.size() != 100 {
		t.Fatalf("size after one reader: got %d, want 100", s.size())
	}
	for i := range 100 {
		if v, ok := b.poll(); !ok || v != i {
			t.Fatalf("cursor b poll(%d): got (%d, %v)", i, v, ok)
		}
	}
	if s.size() != 0 {
		t.Fatalf("size after both readers: got %d, want 0", s.size())
	}
}

func TestLinkedStoreSlideSkipsVacated(t *testing.T) {
	s := newLinkedStore[int](0)
	c := s.subscribe()
	s.publish(1)
	s.publish(2)
	s.publish(3)
	s.slide()
	s.slide()
	if s.size() != 1 {
		t.Fatalf("size after two slides: got %d, want 1", s.size())
	}
	if v, ok := c.poll(); !ok || v != 3 {
		t.Fatalf("poll after slides: got (%d, %v), want (3, true)", v, ok)
	}
}

func TestLinkedStoreUnsubscribeReleases(t *testing.T) {
	s := newLinkedStore[int](0)
	a := s.subscribe()
	b := s.subscribe()
	s.publish(1)
	s.publish(2)
	a.poll()
	b.unsubscribe()
	if s.size() != 1 {
		t.Fatalf("size after unsubscribe: got %d, want 1", s.size())
	}
	if v, ok := a.poll(); !ok || v != 2 {
		t.Fatalf("poll: got (%d, %v), want (2, true)", v, ok)
	}
	if s.size() != 0 {
		t.Fatalf("size: got %d, want 0", s.size())
	}
}

func TestCursorAvailable(t *testing.T) {
	for _, capacity := range boundedCapacities {
		s := newStore[int](capacity, 0)
		c := s.subscribe()
		if c.available() != 0 {
			t.Fatalf("cap %d: available on empty: got %d", capacity, c.available())
		}
		s.publish(1)
		if c.available() != 1 {
			t.Fatalf("cap %d: available: got %d, want 1", capacity, c.available())
		}
		got := c.pollUpTo(10)
		if len(got) != 1 || got[0] != 1 {
			t.Fatalf("cap %d: pollUpTo: got %v, want [1]", capacity, got)
		}
	}
}
