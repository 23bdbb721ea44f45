// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

// strategy decides what happens to values the store rejects and how blocked
// publishers are woken when consumers free space. A strategy is selected at
// construction and lives as long as the hub; it is a closed set of three
// behaviors, not an extension point.
//
// All methods run with the hub lock held.
type strategy[T any] interface {
	// handleSurplus receives the values the store could not admit.
	// published reports whether the surplus counts as accepted. If wait
	// is non-nil the caller must release the hub lock and park on it;
	// its resolution carries the final outcome.
	handleSurplus(h *Hub[T], vs []T) (published bool, wait *future[bool])

	// cancelSurplus withdraws a parked publish whose context fired.
	cancelSurplus(w *future[bool])

	// onEmptySpace runs after a consumer frees a slot, giving the
	// strategy a chance to move blocked publishers into the store.
	onEmptySpace(h *Hub[T])

	// shutdown fails whatever the strategy still holds.
	shutdown(h *Hub[T])
}

// droppingStrategy discards surplus values: the newest overflow is silently
// lost and the publisher is told so through its boolean result. No wake-up
// bookkeeping is needed because nothing ever blocks.
type droppingStrategy[T any] struct{}

func (droppingStrategy[T]) handleSurplus(h *Hub[T], vs []T) (bool, *future[bool]) {
	h.dropped.Add(int64(len(vs)))
	return false, nil
}

func (droppingStrategy[T]) cancelSurplus(*future[bool]) {}

func (droppingStrategy[T]) onEmptySpace(*Hub[T]) {}

func (droppingStrategy[T]) shutdown(*Hub[T]) {}

// slidingStrategy evicts the oldest retained value to admit each surplus
// value, so publishing always succeeds from the publisher's perspective.
type slidingStrategy[T any] struct{}

func (slidingStrategy[T]) handleSurplus(h *Hub[T], vs []T) (bool, *future[bool]) {
	for _, v := range vs {
		for !h.store.publish(v) {
			h.store.slide()
			h.slid.Add(1)
		}
		h.published.Add(1)
	}
	return true, nil
}

func (slidingStrategy[T]) cancelSurplus(*future[bool]) {}

func (slidingStrategy[T]) onEmptySpace(*Hub[T]) {}

func (slidingStrategy[T]) shutdown(*Hub[T]) {}
