// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

// ringPow2Store is the bounded backing store for power-of-two capacities.
// Identical to ringStore except slot lookup uses index & (capacity-1),
// avoiding the division in the hot path.
type ringPow2Store[T any] struct {
	buffer   []T
	refs     []int
	mask     uint64
	pubIdx   uint64
	subIdx   uint64
	subCount int
	rp       *replayBuffer[T]
}

func newRingPow2Store[T any](capacity int, rp *replayBuffer[T]) *ringPow2Store[T] {
	return &ringPow2Store[T]{
		buffer: make([]T, capacity),
		refs:   make([]int, capacity),
		mask:   uint64(capacity) - 1,
		rp:     rp,
	}
}

func (s *ringPow2Store[T]) publish(v T) bool {
	if s.pubIdx-s.subIdx == s.mask+1 {
		return false
	}
	if s.subCount > 0 || s.rp == nil {
		slot := s.pubIdx & s.mask
		s.buffer[slot] = v
		s.refs[slot] = s.subCount
		s.pubIdx++
	}
	if s.rp != nil {
		s.rp.offer(v)
	}
	return true
}

func (s *ringPow2Store[T]) publishAll(vs []T) []T {
	for i, v := range vs {
		if !s.publish(v) {
			return vs[i:]
		}
	}
	return nil
}

func (s *ringPow2Store[T]) slide() {
	if s.pubIdx == s.subIdx {
		return
	}
	slot := s.subIdx & s.mask
	var zero T
	s.buffer[slot] = zero
	s.refs[slot] = 0
	s.subIdx++
	if s.rp != nil {
		s.rp.slide()
	}
}

func (s *ringPow2Store[T]) subscribe() cursor[T] {
	idx := s.pubIdx
	if s.subCount == 0 && s.rp == nil {
		// Claim values published while nobody was attached.
		for i := s.subIdx; i < s.pubIdx; i++ {
			s.refs[i&s.mask]++
		}
		idx = s.subIdx
	}
	s.subCount++
	return &ringPow2Cursor[T]{s: s, idx: idx}
}

func (s *ringPow2Store[T]) size() int     { return int(s.pubIdx - s.subIdx) }
func (s *ringPow2Store[T]) cap() int      { return int(s.mask + 1) }
func (s *ringPow2Store[T]) isEmpty() bool { return s.pubIdx == s.subIdx }
func (s *ringPow2Store[T]) isFull() bool  { return s.pubIdx-s.subIdx == s.mask+1 }

func (s *ringPow2Store[T]) replay() *replayBuffer[T] { return s.rp }

func (s *ringPow2Store[T]) compact() {
	var zero T
	for s.subIdx < s.pubIdx && s.refs[s.subIdx&s.mask] == 0 {
		s.buffer[s.subIdx&s.mask] = zero
		s.subIdx++
	}
}

type ringPow2Cursor[T any] struct {
	s   *ringPow2Store[T]
	idx uint64
}

func (c *ringPow2Cursor[T]) poll() (T, bool) {
	s := c.s
	if c.idx < s.subIdx {
		c.idx = s.subIdx
	}
	var zero T
	if c.idx == s.pubIdx {
		return zero, false
	}
	slot := c.idx & s.mask
	v := s.buffer[slot]
	c.idx++
	if s.refs[slot]--; s.refs[slot] == 0 {
		s.buffer[slot] = zero
		s.compact()
	}
	return v, true
}

func (c *ringPow2Cursor[T]) pollUpTo(n int) []T {
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

func (c *ringPow2Cursor[T]) available() int {
	if c.idx < c.s.subIdx {
		c.idx = c.s.subIdx
	}
	return int(c.s.pubIdx - c.idx)
}

func (c *ringPow2Cursor[T]) unsubscribe() {
	s := c.s
	s.subCount--
	if c.idx < s.subIdx {
		c.idx = s.subIdx
	}
	var zero T
	for c.idx < s.pubIdx {
		slot := c.idx & s.mask
		if s.refs[slot]--; s.refs[slot] == 0 {
			s.buffer[slot] = zero
		}
		c.idx++
	}
	s.compact()
}
