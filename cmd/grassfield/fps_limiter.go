package main

import "time"

// fpsLimiter paces frames to a fixed rate with a sleep followed by a short
// spin. A zero limit disables pacing.
type fpsLimiter struct {
	limit int
	next  time.Time
}

func newFPSLimiter(limit int) *fpsLimiter {
	return &fpsLimiter{limit: limit}
}

func (f *fpsLimiter) Wait() {
	if f.limit <= 0 {
		return
	}
	target := time.Second / time.Duration(f.limit)
	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
	}

	// Resync after a hitch instead of rushing to catch up.
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
