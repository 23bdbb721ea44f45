// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrShutdown indicates the hub has been shut down.
//
// Every operation on a shut-down hub fails with ErrShutdown, including
// publishes and takes that were already blocked when Shutdown was called.
// It is the only failure channel of normal operation: data loss under the
// Dropping and Sliding strategies is a policy outcome communicated through
// boolean returns, never through an error.
var ErrShutdown = errors.New("hub: hub is shut down")

// ErrWouldBlock indicates a non-blocking operation cannot proceed immediately.
//
// For TryPublish: the store is full (backpressure)
// For TryTake: no value is available for this subscription
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry later, or use the blocking Publish/Take forms which park on a
// one-shot future instead of returning.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// IsShutdown reports whether err indicates the hub was shut down.
func IsShutdown(err error) bool {
	return errors.Is(err, ErrShutdown)
}

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
