// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hostsense

import (
	"testing"
	"time"
)

func TestPollEverySkipsFailedReads(t *testing.T) {
	s, err := Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	stop := make(chan struct{})
	got := 0
	done := make(chan struct{})
	go func() {
		PollEvery(s, time.Millisecond, stop, func(Reading) { got++ })
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	close(stop)
	<-done

	// On a platform with no binding every Read fails, so fn must never have
	// been invoked; on Windows this simply asserts PollEvery doesn't panic.
	if _, err := s.Read(); err == ErrUnsupported && got != 0 {
		t.Fatalf("fn invoked %d times, want 0 when every Read fails", got)
	}
}
