// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import "testing"

func TestReplayBufferOfferAndEvict(t *testing.T) {
	b := newReplayBuffer[int](3)
	for i := range 5 {
		b.offer(i)
	}
	if b.size != 3 {
		t.Fatalf("size: got %d, want 3", b.size)
	}
	if b.index != 2 {
		t.Fatalf("index: got %d, want 2", b.index)
	}
	w := b.window()
	for want := 2; want <= 4; want++ {
		v, ok := w.take()
		if !ok || v != want {
			t.Fatalf("take: got (%d, %v), want (%d, true)", v, ok, want)
		}
	}
	if _, ok := w.take(); ok {
		t.Fatal("take on drained window succeeded")
	}
}

func TestReplayWindowExhaustionIsPermanent(t *testing.T) {
	b := newReplayBuffer[int](4)
	b.offer(1)
	w := b.window()
	if v, ok := w.take(); !ok || v != 1 {
		t.Fatalf("take: got (%d, %v), want (1, true)", v, ok)
	}
	// Values offered after the snapshot never rearm the window.
	b.offer(2)
	b.offer(3)
	if w.pending() != 0 {
		t.Fatalf("pending after exhaustion: got %d, want 0", w.pending())
	}
	if _, ok := w.take(); ok {
		t.Fatal("exhausted window produced a value")
	}
}

func TestReplayWindowFastForwardsPastEvictions(t *testing.T) {
	b := newReplayBuffer[int](3)
	b.offer(0)
	b.offer(1)
	b.offer(2)
	w := b.window()
	// Two more offers evict 0 and 1 out from under the window.
	b.offer(3)
	b.offer(4)
	if w.pending() != 1 {
		t.Fatalf("pending: got %d, want 1", w.pending())
	}
	v, ok := w.take()
	if !ok || v != 2 {
		t.Fatalf("take: got (%d, %v), want (2, true)", v, ok)
	}
	if _, ok := w.take(); ok {
		t.Fatal("window produced a value offered after the snapshot")
	}
}

func TestReplayWindowFullyEvicted(t *testing.T) {
	b := newReplayBuffer[int](2)
	b.offer(0)
	b.offer(1)
	w := b.window()
	b.offer(2)
	b.offer(3)
	b.offer(4)
	if w.pending() != 0 {
		t.Fatalf("pending: got %d, want 0", w.pending())
	}
}

func TestReplayBufferSlide(t *testing.T) {
	b := newReplayBuffer[int](4)
	b.offer(0)
	b.offer(1)
	b.offer(2)
	early := b.window()
	b.slide()
	if b.size != 2 || b.index != 1 {
		t.Fatalf("after slide: size %d index %d, want 2 1", b.size, b.index)
	}
	// A pre-slide window skips the slid value.
	if v, ok := early.take(); !ok || v != 1 {
		t.Fatalf("early window take: got (%d, %v), want (1, true)", v, ok)
	}
	// A fresh window never saw it.
	got := b.window().takeUpTo(10)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("fresh window: got %v, want [1 2]", got)
	}
}

func TestReplayWindowTakeUpTo(t *testing.T) {
	b := newReplayBuffer[int](4)
	for i := range 4 {
		b.offer(i)
	}
	w := b.window()
	got := w.takeUpTo(3)
	if len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Fatalf("takeUpTo(3): got %v, want [0 1 2]", got)
	}
	if w.pending() != 1 {
		t.Fatalf("pending: got %d, want 1", w.pending())
	}
	if got := w.takeUpTo(0); got != nil {
		t.Fatalf("takeUpTo(0): got %v, want nil", got)
	}
}
