// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

// replayNode is one entry of the replay ring. Evicted nodes keep their
// next pointer so windows holding older positions can still walk forward.
type replayNode[T any] struct {
	value T
	next  *replayNode[T]
}

// replayBuffer is a capacity-bounded linked ring holding the last published
// values. index is the absolute position of the oldest retained value,
// incremented on every eviction, whether caused by an offer at capacity or
// by a store-level slide. Windows compare their own absolute position
// against it to fast-forward past values evicted since they were taken.
//
// Guarded by the owning Hub's mutex, like the stores.
type replayBuffer[T any] struct {
	head     *replayNode[T] // sentinel; head.next is the oldest retained
	tail     *replayNode[T]
	capacity int
	size     int
	index    uint64
}

func newReplayBuffer[T any](capacity int) *replayBuffer[T] {
	sentinel := &replayNode[T]{}
	return &replayBuffer[T]{head: sentinel, tail: sentinel, capacity: capacity}
}

// offer appends a value, evicting the oldest if the ring is at capacity.
func (b *replayBuffer[T]) offer(v T) {
	n := &replayNode[T]{value: v}
	b.tail.next = n
	b.tail = n
	if b.size == b.capacity {
		var zero T
		b.head = b.head.next
		b.head.value = zero
		b.index++
	} else {
		b.size++
	}
}

// slide evicts the oldest value without adding one. Called when the owning
// store slides, so windows skip values the hub itself evicted.
func (b *replayBuffer[T]) slide() {
	if b.size == 0 {
		return
	}
	var zero T
	b.head = b.head.next
	b.head.value = zero
	b.size--
	b.index++
}

// window snapshots the ring for a new subscription.
func (b *replayBuffer[T]) window() *replayWindow[T] {
	return &replayWindow[T]{b: b, pos: b.head, remaining: b.size, index: b.index}
}

// replayWindow is a per-subscription snapshot over the replay ring, drained
// once at subscribe time. pos is the node before the next value to read and
// index its absolute position. remaining counts values left from the
// snapshot; once it reaches zero the window is permanently exhausted and is
// not rearmed by later publishes.
type replayWindow[T any] struct {
	b         *replayBuffer[T]
	pos       *replayNode[T]
	remaining int
	index     uint64
}

// fastForward advances past values the ring evicted since the last read.
func (w *replayWindow[T]) fastForward() {
	for w.index < w.b.index && w.remaining > 0 {
		w.pos = w.pos.next
		w.remaining--
		w.index++
	}
	if w.index < w.b.index {
		w.index = w.b.index
	}
}

func (w *replayWindow[T]) take() (T, bool) {
	w.fastForward()
	var zero T
	if w.remaining == 0 {
		return zero, false
	}
	n := w.pos.next
	w.pos = n
	w.index++
	w.remaining--
	return n.value, true
}

func (w *replayWindow[T]) takeUpTo(n int) []T {
	w.fastForward()
	if n > w.remaining {
		n = w.remaining
	}
	if n <= 0 {
		return nil
	}
	vs := make([]T, 0, n)
	for range n {
		nd := w.pos.next
		w.pos = nd
		w.index++
		w.remaining--
		vs = append(vs, nd.value)
	}
	return vs
}

// pending reports how many snapshot values are still readable.
func (w *replayWindow[T]) pending() int {
	w.fastForward()
	return w.remaining
}
