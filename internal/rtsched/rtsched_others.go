// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// +build !linux

package rtsched

import "runtime"

// Pin locks the calling goroutine to its OS thread. There is no portable
// nice/priority call outside Linux in this package, so that part of the hint
// is skipped rather than faked.
func Pin() error {
	runtime.LockOSThread()
	return nil
}

// Unpin releases the OS thread lock.
func Unpin() {
	runtime.UnlockOSThread()
}
