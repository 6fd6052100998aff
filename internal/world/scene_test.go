package world

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"grassfield/internal/wind"
)

func TestSceneTickOrder(t *testing.T) {
	s := NewScene(newTestManager(testSettings()), wind.NewDriver(wind.DefaultParams()))

	f := s.Tick(mgl32.Vec3{}, 0)
	if len(f.Result.Created) != 9 {
		t.Fatalf("first tick created %d chunks, want 9", len(f.Result.Created))
	}
	if f.Uniforms != s.Uniforms() {
		t.Errorf("Uniforms() = %+v, want the tick's %+v", s.Uniforms(), f.Uniforms)
	}

	// Wind keeps moving while the chunk set is idle.
	prev := f.Uniforms.Time
	for i := 1; i <= 5; i++ {
		f = s.Tick(mgl32.Vec3{1, 0, 1}, time.Duration(i)*16*time.Millisecond)
		if f.Result.Changed() {
			t.Fatalf("tick %d changed chunks without leaving (0,0)", i)
		}
		if f.Uniforms.Time <= prev {
			t.Fatalf("tick %d wind time %v did not advance past %v", i, f.Uniforms.Time, prev)
		}
		prev = f.Uniforms.Time
	}
}
