// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

// bpEntry is one blocked publish attempt. A whole PublishAll batch shares a
// single future; last marks the batch's final value, whose landing resolves
// the future.
type bpEntry[T any] struct {
	value T
	fut   *future[bool]
	last  bool
}

// backPressure suspends publishers when the store is full. Blocked values
// queue in FIFO order and drain into the store as consumers free slots, so
// publish order is preserved across blocked and direct publishes.
type backPressure[T any] struct {
	queue []bpEntry[T]
}

func (b *backPressure[T]) handleSurplus(h *Hub[T], vs []T) (bool, *future[bool]) {
	fut := newFuture[bool]()
	for i, v := range vs {
		b.queue = append(b.queue, bpEntry[T]{value: v, fut: fut, last: i == len(vs)-1})
	}
	return false, fut
}

func (b *backPressure[T]) cancelSurplus(w *future[bool]) {
	kept := b.queue[:0]
	for _, e := range b.queue {
		if e.fut != w {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(b.queue); i++ {
		b.queue[i] = bpEntry[T]{}
	}
	b.queue = kept
}

func (b *backPressure[T]) onEmptySpace(h *Hub[T]) {
	for len(b.queue) > 0 && !h.store.isFull() {
		e := b.queue[0]
		b.queue[0] = bpEntry[T]{}
		b.queue = b.queue[1:]
		h.store.publish(e.value)
		h.published.Add(1)
		if e.last {
			e.fut.resolve(true)
		}
		h.completeSubscribers()
	}
}

func (b *backPressure[T]) shutdown(h *Hub[T]) {
	for _, e := range b.queue {
		e.fut.fail(ErrShutdown)
	}
	b.queue = nil
}
