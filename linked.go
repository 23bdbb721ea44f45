// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import "math"

// linkedNode holds one published value and the number of live subscriptions
// that still have to read it. refs == 0 marks the node as vacated; cursors
// walking past skip it.
type linkedNode[T any] struct {
	value T
	refs  int
	next  *linkedNode[T]
}

// linkedStore is the unbounded backing store: a singly linked list with a
// shared head sentinel and a tail pointer. Nodes are appended at the tail
// and released for garbage collection by advancing the head once fully
// consumed; forward next pointers stay intact, so stale cursors always
// reach the live chain.
//
// A value published while no subscriber is attached is not retained
// (there is nobody to claim it, and an unbounded store must not grow
// without consumers); it is still offered to the replay ring.
type linkedStore[T any] struct {
	head     *linkedNode[T] // sentinel; head.next is the oldest retained node
	tail     *linkedNode[T] // last appended node
	count    int            // nodes not yet fully consumed
	subCount int
	rp       *replayBuffer[T]
}

func newLinkedStore[T any](replay int) *linkedStore[T] {
	var rp *replayBuffer[T]
	if replay > 0 {
		rp = newReplayBuffer[T](replay)
	}
	sentinel := &linkedNode[T]{}
	return &linkedStore[T]{head: sentinel, tail: sentinel, rp: rp}
}

func (s *linkedStore[T]) publish(v T) bool {
	if s.subCount > 0 {
		n := &linkedNode[T]{value: v, refs: s.subCount}
		s.tail.next = n
		s.tail = n
		s.count++
	}
	if s.rp != nil {
		s.rp.offer(v)
	}
	return true
}

func (s *linkedStore[T]) publishAll(vs []T) []T {
	for _, v := range vs {
		s.publish(v)
	}
	return nil
}

func (s *linkedStore[T]) slide() {
	n := s.head.next
	for n != nil && n.refs == 0 {
		s.head = n
		n = n.next
	}
	if n == nil {
		return
	}
	var zero T
	n.value = zero
	n.refs = 0
	s.count--
	s.head = n
	if s.rp != nil {
		s.rp.slide()
	}
}

func (s *linkedStore[T]) subscribe() cursor[T] {
	s.subCount++
	return &linkedCursor[T]{s: s, pos: s.tail}
}

func (s *linkedStore[T]) size() int     { return s.count }
func (s *linkedStore[T]) cap() int      { return math.MaxInt }
func (s *linkedStore[T]) isEmpty() bool { return s.count == 0 }
func (s *linkedStore[T]) isFull() bool  { return false }

func (s *linkedStore[T]) replay() *replayBuffer[T] { return s.rp }

// release advances the shared head past fully-consumed nodes, unlinking
// them from the retained prefix.
func (s *linkedStore[T]) release() {
	for s.head.next != nil && s.head.next.refs == 0 {
		s.head = s.head.next
	}
}

// linkedCursor's pos is the last node this subscriber consumed; pos.next
// is the next candidate.
type linkedCursor[T any] struct {
	s   *linkedStore[T]
	pos *linkedNode[T]
}

func (c *linkedCursor[T]) poll() (T, bool) {
	n := c.pos.next
	for n != nil && n.refs == 0 {
		// Vacated by slide; skip.
		c.pos = n
		n = n.next
	}
	var zero T
	if n == nil {
		return zero, false
	}
	v := n.value
	c.pos = n
	if n.refs--; n.refs == 0 {
		n.value = zero
		c.s.count--
		c.s.release()
	}
	return v, true
}

func (c *linkedCursor[T]) pollUpTo(n int) []T {
	if n <= 0 {
		return nil
	}
	var vs []T
	for range n {
		v, ok := c.poll()
		if !ok {
			break
		}
		vs = append(vs, v)
	}
	return vs
}

func (c *linkedCursor[T]) available() int {
	avail := 0
	for n := c.pos.next; n != nil; n = n.next {
		if n.refs > 0 {
			avail++
		}
	}
	return avail
}

func (c *linkedCursor[T]) unsubscribe() {
	s := c.s
	s.subCount--
	var zero T
	for n := c.pos.next; n != nil; n = n.next {
		if n.refs == 0 {
			continue
		}
		if n.refs--; n.refs == 0 {
			n.value = zero
			s.count--
		}
	}
	s.release()
}
