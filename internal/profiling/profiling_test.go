package profiling

import (
	"sync"
	"testing"
	"time"
)

func TestRecorderAccumulates(t *testing.T) {
	r := NewRecorder()
	r.Add("world.Reconcile", 2*time.Millisecond)
	r.Add("world.Reconcile", 3*time.Millisecond)
	r.Add("render.drawGrass", time.Millisecond)

	if got := r.Snapshot()["world.Reconcile"]; got != 5*time.Millisecond {
		t.Fatalf("world.Reconcile = %v, want 5ms", got)
	}
	if got := r.Calls("world.Reconcile"); got != 2 {
		t.Errorf("Calls = %d, want 2", got)
	}
	if got := r.SumWithPrefix("world."); got != 5*time.Millisecond {
		t.Errorf("SumWithPrefix(world.) = %v, want 5ms", got)
	}
	if got := r.SumWithPrefix(""); got != 6*time.Millisecond {
		t.Errorf("SumWithPrefix(\"\") = %v, want 6ms", got)
	}

	r.Reset()
	if len(r.Snapshot()) != 0 || r.Calls("world.Reconcile") != 0 {
		t.Errorf("Reset left entries behind: %v", r.Snapshot())
	}
}

func TestTopNOrdering(t *testing.T) {
	r := NewRecorder()
	r.Add("a", 1500*time.Microsecond)
	r.Add("b", 4200*time.Microsecond)
	r.Add("c", 3*time.Millisecond)

	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "b:4.2ms"},
		{2, "b:4.2ms, c:3ms"},
		{10, "b:4.2ms, c:3ms, a:1.5ms"},
	}
	for _, tt := range tests {
		if got := r.TopN(tt.n); got != tt.want {
			t.Errorf("TopN(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestTrackConcurrent(t *testing.T) {
	r := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stop := r.Track("world.buildChunk")
			stop()
		}()
	}
	wg.Wait()
	if got := r.Calls("world.buildChunk"); got != 16 {
		t.Errorf("Calls = %d, want 16", got)
	}
}

func TestFormatMs(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0ms"},
		{time.Millisecond, "1ms"},
		{1250 * time.Microsecond, "1.2ms"},
		{16 * time.Millisecond, "16ms"},
	}
	for _, tt := range tests {
		if got := FormatMs(tt.d); got != tt.want {
			t.Errorf("FormatMs(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestDefaultRecorderFrame(t *testing.T) {
	ResetFrame()
	Default().Add("world.Update", 2*time.Millisecond)
	Default().Add("world.Reconcile", time.Millisecond)
	Default().Add("render.Render", 4*time.Millisecond)

	if got := SumWithPrefix("world."); got != 3*time.Millisecond {
		t.Errorf("SumWithPrefix(world.) = %v, want 3ms", got)
	}
	if got := TopN(1); got != "render.Render:4ms" {
		t.Errorf("TopN(1) = %q", got)
	}

	ResetFrame()
	if got := SumWithPrefix(""); got != 0 {
		t.Errorf("SumWithPrefix after ResetFrame = %v, want 0", got)
	}
}
