// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package rtsched gives the main loop's goroutine a best-effort real-time
// scheduling hint on Linux: it pins the goroutine to its OS thread and asks
// the kernel for a higher scheduling priority, so the cooperative loop's
// 10 ms tick suffers less jitter under load. Neither action
// is required for correctness — the keyer core's own invariants hold
// regardless of scheduling latency, only its jitter budget benefits — so
// failure here is logged and ignored rather than surfaced as an error the
// caller must handle.
package rtsched

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// niceValue is a modest priority boost. Lowering the nice value below 0 is
// privilege-gated (CAP_SYS_NICE or RLIMIT_NICE), so Setpriority may fail.
const niceValue = -10

// Pin locks the calling goroutine to its current OS thread and lowers its
// nice value. It must be called from the goroutine that will run the main
// loop, before entering it. The returned error is informational: callers
// may log it and continue, since the goroutine is pinned regardless of
// whether the priority change succeeded.
func Pin() error {
	runtime.LockOSThread()
	if err := unix.Setpriority(unix.PRIO_PROCESS, 0, niceValue); err != nil {
		return fmt.Errorf("rtsched: setpriority: %w", err)
	}
	return nil
}

// Unpin releases the OS thread lock. Call it when the main loop exits, if
// the goroutine will be reused for other work.
func Unpin() {
	runtime.UnlockOSThread()
}
