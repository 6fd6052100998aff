package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Per-frame wall-time totals keyed by dotted section names such as
// "world.Reconcile" or "render.drawGrass". Chunk builds run on worker
// goroutines, so every entry point is safe for concurrent use.

type entry struct {
	total time.Duration
	calls int
}

// Recorder accumulates section timings until Reset.
type Recorder struct {
	mu      sync.Mutex
	entries map[string]entry
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{entries: make(map[string]entry)}
}

// Track starts timing name and returns the function that stops it.
//
//	defer rec.Track("world.Reconcile")()
func (r *Recorder) Track(name string) func() {
	start := time.Now()
	return func() { r.Add(name, time.Since(start)) }
}

// Add records d against name as one call.
func (r *Recorder) Add(name string, d time.Duration) {
	r.mu.Lock()
	e := r.entries[name]
	e.total += d
	e.calls++
	r.entries[name] = e
	r.mu.Unlock()
}

// Reset drops all totals. The host calls it at the top of each frame.
func (r *Recorder) Reset() {
	r.mu.Lock()
	clear(r.entries)
	r.mu.Unlock()
}

// Snapshot copies the current totals.
func (r *Recorder) Snapshot() map[string]time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]time.Duration, len(r.entries))
	for k, e := range r.entries {
		out[k] = e.total
	}
	return out
}

// Calls returns how many times name was recorded since the last Reset.
func (r *Recorder) Calls(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[name].calls
}

// SumWithPrefix totals every section whose name starts with prefix.
func (r *Recorder) SumWithPrefix(prefix string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum time.Duration
	for k, e := range r.entries {
		if strings.HasPrefix(k, prefix) {
			sum += e.total
		}
	}
	return sum
}

// TopN formats the n slowest sections, slowest first, e.g.
// "world.Reconcile:4.2ms, render.drawGrass:2.1ms". Ties sort by name.
func (r *Recorder) TopN(n int) string {
	ss := r.Snapshot()
	names := make([]string, 0, len(ss))
	for k := range ss {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		if ss[names[i]] != ss[names[j]] {
			return ss[names[i]] > ss[names[j]]
		}
		return names[i] < names[j]
	})
	if n > len(names) {
		n = len(names)
	}
	parts := make([]string, 0, n)
	for _, name := range names[:max(n, 0)] {
		parts = append(parts, name+":"+FormatMs(ss[name]))
	}
	return strings.Join(parts, ", ")
}

// FormatMs renders d in milliseconds with at most one decimal.
func FormatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000
	return strconv.FormatFloat(float64(int64(ms*10))/10, 'f', -1, 64) + "ms"
}

var defaultRecorder = NewRecorder()

// Default returns the process-wide recorder used by the package functions.
func Default() *Recorder { return defaultRecorder }

// Track times name on the default recorder.
func Track(name string) func() { return defaultRecorder.Track(name) }

// ResetFrame clears the default recorder.
func ResetFrame() { defaultRecorder.Reset() }

// TopN formats the n slowest sections of the default recorder.
func TopN(n int) string { return defaultRecorder.TopN(n) }

// SumWithPrefix totals sections of the default recorder.
func SumWithPrefix(prefix string) time.Duration { return defaultRecorder.SumWithPrefix(prefix) }
