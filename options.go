// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

// Options configures hub creation: capacity shape, overflow strategy and
// replay history.
type Options struct {
	capacity  int
	replay    int
	strategy  strategyKind
	unbounded bool
}

type strategyKind int

const (
	backPressureKind strategyKind = iota
	droppingKind
	slidingKind
)

// Builder creates hubs with fluent configuration.
//
// The builder selects the backing store by capacity shape (single-slot,
// power-of-two ring, arbitrary ring, or unbounded linked list) and wires
// the configured strategy and replay ring.
//
// Example:
//
//	// Sliding hub keeping the 8 most recent values for late subscribers
//	h := hub.Build[Event](hub.New(1024).Sliding().Replay(8))
//
//	// Unbounded hub
//	h := hub.Build[Event](hub.Unbounded())
type Builder struct {
	opts Options
}

// New creates a hub builder with the given capacity and the BackPressure
// strategy. The capacity is honored exactly; it is never rounded.
// Panics if capacity < 1.
func New(capacity int) *Builder {
	if capacity < 1 {
		panic("hub: capacity must be > 0")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// Unbounded creates a builder for a hub that never rejects a publish.
func Unbounded() *Builder {
	return &Builder{opts: Options{unbounded: true}}
}

// BackPressure selects the BackPressure strategy: publishers block while
// the store is full. This is the default.
func (b *Builder) BackPressure() *Builder {
	b.opts.strategy = backPressureKind
	return b
}

// Dropping selects the Dropping strategy: surplus values are discarded and
// the publisher is told through its boolean result.
func (b *Builder) Dropping() *Builder {
	b.opts.strategy = droppingKind
	return b
}

// Sliding selects the Sliding strategy: the oldest retained value is
// evicted to admit a new one.
func (b *Builder) Sliding() *Builder {
	b.opts.strategy = slidingKind
	return b
}

// Replay keeps the last n published values and hands them to late
// subscribers before live delivery begins. n == 0 disables replay.
// Panics if n < 0.
func (b *Builder) Replay(n int) *Builder {
	if n < 0 {
		panic("hub: replay must be >= 0")
	}
	b.opts.replay = n
	return b
}

// Build creates a hub from the builder's configuration.
func Build[T any](b *Builder) *Hub[T] {
	var st store[T]
	if b.opts.unbounded {
		st = newLinkedStore[T](b.opts.replay)
	} else {
		st = newStore[T](b.opts.capacity, b.opts.replay)
	}
	var strat strategy[T]
	switch b.opts.strategy {
	case droppingKind:
		strat = droppingStrategy[T]{}
	case slidingKind:
		strat = slidingStrategy[T]{}
	default:
		strat = &backPressure[T]{}
	}
	return newHub(st, strat)
}
