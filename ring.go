// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

// ringStore is the bounded backing store for arbitrary capacities.
// Slot lookup uses index % capacity; see ringPow2Store for the masked
// variant used when the capacity is a power of two.
//
// pubIdx and subIdx are monotonic. The retained window is
// [subIdx, pubIdx), so 0 <= pubIdx-subIdx <= capacity always holds.
type ringStore[T any] struct {
	buffer   []T
	refs     []int
	capacity uint64
	pubIdx   uint64 // next slot to write
	subIdx   uint64 // oldest slot still referenced
	subCount int
	rp       *replayBuffer[T]
}

func newRingStore[T any](capacity int, rp *replayBuffer[T]) *ringStore[T] {
	return &ringStore[T]{
		buffer:   make([]T, capacity),
		refs:     make([]int, capacity),
		capacity: uint64(capacity),
		rp:       rp,
	}
}

func (s *ringStore[T]) publish(v T) bool {
	if s.pubIdx-s.subIdx == s.capacity {
		return false
	}
	if s.subCount > 0 || s.rp == nil {
		slot := s.pubIdx % s.capacity
		s.buffer[slot] = v
		s.refs[slot] = s.subCount
		s.pubIdx++
	}
	if s.rp != nil {
		s.rp.offer(v)
	}
	return true
}

func (s *ringStore[T]) publishAll(vs []T) []T {
	for i, v := range vs {
		if !s.publish(v) {
			return vs[i:]
		}
	}
	return nil
}

func (s *ringStore[T]) slide() {
	if s.pubIdx == s.subIdx {
		return
	}
	slot := s.subIdx % s.capacity
	var zero T
	s.buffer[slot] = zero
	s.refs[slot] = 0
	s.subIdx++
	if s.rp != nil {
		s.rp.slide()
	}
}

func (s *ringStore[T]) subscribe() cursor[T] {
	idx := s.pubIdx
	if s.subCount == 0 && s.rp == nil {
		// Claim values published while nobody was attached.
		for i := s.subIdx; i < s.pubIdx; i++ {
			s.refs[i%s.capacity]++
		}
		idx = s.subIdx
	}
	s.subCount++
	return &ringCursor[T]{s: s, idx: idx}
}

func (s *ringStore[T]) size() int     { return int(s.pubIdx - s.subIdx) }
func (s *ringStore[T]) cap() int      { return int(s.capacity) }
func (s *ringStore[T]) isEmpty() bool { return s.pubIdx == s.subIdx }
func (s *ringStore[T]) isFull() bool  { return s.pubIdx-s.subIdx == s.capacity }

func (s *ringStore[T]) replay() *replayBuffer[T] { return s.rp }

// compact advances subIdx past fully-consumed slots.
func (s *ringStore[T]) compact() {
	var zero T
	for s.subIdx < s.pubIdx && s.refs[s.subIdx%s.capacity] == 0 {
		s.buffer[s.subIdx%s.capacity] = zero
		s.subIdx++
	}
}

type ringCursor[T any] struct {
	s   *ringStore[T]
	idx uint64
}

func (c *ringCursor[T]) poll() (T, bool) {
	s := c.s
	if c.idx < s.subIdx {
		// Slots older than the retained window no longer exist for anyone.
		c.idx = s.subIdx
	}
	var zero T
	if c.idx == s.pubIdx {
		return zero, false
	}
	slot := c.idx % s.capacity
	v := s.buffer[slot]
	c.idx++
	if s.refs[slot]--; s.refs[slot] == 0 {
		s.buffer[slot] = zero
		s.compact()
	}
	return v, true
}

func (c *ringCursor[T]) pollUpTo(n int) []T {
	if n > c.available() {
		n = c.available()
	}
	if n <= 0 {
		return nil
	}
	vs := make([]T, 0, n)
	for range n {
		v, _ := c.poll()
		vs = append(vs, v)
	}
	return vs
}

func (c *ringCursor[T]) available() int {
	if c.idx < c.s.subIdx {
		c.idx = c.s.subIdx
	}
	return int(c.s.pubIdx - c.idx)
}

func (c *ringCursor[T]) unsubscribe() {
	s := c.s
	s.subCount--
	if c.idx < s.subIdx {
		c.idx = s.subIdx
	}
	var zero T
	for c.idx < s.pubIdx {
		slot := c.idx % s.capacity
		if s.refs[slot]--; s.refs[slot] == 0 {
			s.buffer[slot] = zero
		}
		c.idx++
	}
	s.compact()
}
