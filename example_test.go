// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub_test

import (
	"context"
	"fmt"

	"code.hybscloud.com/hub"
)

func ExampleNewBounded() {
	ctx := context.Background()
	h := hub.NewBounded[string](2)
	defer h.Shutdown()

	// Values published before anyone subscribes wait for the first
	// subscriber.
	h.Publish(ctx, "a")
	h.Publish(ctx, "b")

	sub, _ := h.Subscribe()
	defer sub.Close()
	for range 2 {
		v, _ := sub.Take(ctx)
		fmt.Println(v)
	}
	// Output:
	// a
	// b
}

func ExampleNewSliding() {
	ctx := context.Background()
	h := hub.NewSliding[string](2)
	defer h.Shutdown()

	sub, _ := h.Subscribe()
	defer sub.Close()

	// The third value evicts the oldest; publishing never fails.
	ok, _ := h.PublishAll(ctx, "a", "b", "c")
	fmt.Println(ok)
	fmt.Println(sub.TakeAll())
	// Output:
	// true
	// [b c]
}

func ExampleBuild() {
	ctx := context.Background()
	h := hub.Build[int](hub.New(16).Dropping().Replay(2))
	defer h.Shutdown()

	for i := 1; i <= 5; i++ {
		h.Publish(ctx, i)
	}

	// A late subscriber starts with the replay history.
	sub, _ := h.Subscribe()
	defer sub.Close()
	fmt.Println(sub.TakeAll())
	// Output:
	// [4 5]
}

func ExampleSubscription_TryTake() {
	h := hub.NewBounded[int](4)
	defer h.Shutdown()

	sub, _ := h.Subscribe()
	defer sub.Close()

	_, err := sub.TryTake()
	fmt.Println(hub.IsWouldBlock(err))

	h.TryPublish(7)
	v, _ := sub.TryTake()
	fmt.Println(v)
	// Output:
	// true
	// 7
}
