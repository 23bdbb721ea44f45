// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

// singleStore is the bounded backing store specialized for capacity 1.
// The general ring degenerates awkwardly at a single slot, so this variant
// keeps one value, one reference count and a pair of generation counters,
// with no modulo arithmetic at all.
//
// pubIdx is the generation of the current value; the slot is occupied
// while pubIdx > subIdx. A cursor that has consumed generation g stores
// idx == g and will not read the slot again until a newer generation lands.
type singleStore[T any] struct {
	value    T
	refs     int
	pubIdx   uint64
	subIdx   uint64
	subCount int
	rp       *replayBuffer[T]
}

func newSingleStore[T any](rp *replayBuffer[T]) *singleStore[T] {
	return &singleStore[T]{rp: rp}
}

func (s *singleStore[T]) publish(v T) bool {
	if s.pubIdx > s.subIdx {
		return false
	}
	if s.subCount > 0 || s.rp == nil {
		s.value = v
		s.refs = s.subCount
		s.pubIdx++
	}
	if s.rp != nil {
		s.rp.offer(v)
	}
	return true
}

func (s *singleStore[T]) publishAll(vs []T) []T {
	for i, v := range vs {
		if !s.publish(v) {
			return vs[i:]
		}
	}
	return nil
}

func (s *singleStore[T]) slide() {
	if s.pubIdx == s.subIdx {
		return
	}
	var zero T
	s.value = zero
	s.refs = 0
	s.subIdx = s.pubIdx
	if s.rp != nil {
		s.rp.slide()
	}
}

func (s *singleStore[T]) subscribe() cursor[T] {
	idx := s.pubIdx
	if s.subCount == 0 && s.rp == nil && s.pubIdx > s.subIdx {
		// Claim the value published while nobody was attached.
		s.refs++
		idx = s.subIdx
	}
	s.subCount++
	return &singleCursor[T]{s: s, idx: idx}
}

func (s *singleStore[T]) size() int {
	if s.pubIdx > s.subIdx {
		return 1
	}
	return 0
}

func (s *singleStore[T]) cap() int      { return 1 }
func (s *singleStore[T]) isEmpty() bool { return s.pubIdx == s.subIdx }
func (s *singleStore[T]) isFull() bool  { return s.pubIdx > s.subIdx }

func (s *singleStore[T]) replay() *replayBuffer[T] { return s.rp }

type singleCursor[T any] struct {
	s   *singleStore[T]
	idx uint64
}

func (c *singleCursor[T]) poll() (T, bool) {
	s := c.s
	var zero T
	if s.pubIdx == s.subIdx || c.idx >= s.pubIdx {
		return zero, false
	}
	v := s.value
	c.idx = s.pubIdx
	if s.refs--; s.refs <= 0 {
		s.value = zero
		s.refs = 0
		s.subIdx = s.pubIdx
	}
	return v, true
}

func (c *singleCursor[T]) pollUpTo(n int) []T {
	if n <= 0 {
		return nil
	}
	v, ok := c.poll()
	if !ok {
		return nil
	}
	return []T{v}
}

func (c *singleCursor[T]) available() int {
	s := c.s
	if s.pubIdx > s.subIdx && c.idx < s.pubIdx {
		return 1
	}
	return 0
}

func (c *singleCursor[T]) unsubscribe() {
	s := c.s
	s.subCount--
	if s.pubIdx > s.subIdx && c.idx < s.pubIdx && s.refs > 0 {
		if s.refs--; s.refs == 0 {
			var zero T
			s.value = zero
			s.subIdx = s.pubIdx
		}
	}
}
