package dynbone

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestUpdateParametersClamps(t *testing.T) {
	owner, nodes := newChain(3, mgl32.Vec3{1, 0, 0})
	cfg := DefaultConfig()
	cfg.Root = nodes[0]
	cfg.Damping = 2
	cfg.Elasticity = -1
	cfg.Stiffness = 0.4
	cfg.Inert = 1.5
	cfg.Radius = -3
	d := newBone(t, owner, cfg)
	for i, p := range d.Particles() {
		if p.Damping != 1 || p.Elasticity != 0 || p.Stiffness != 0.4 || p.Inert != 1 || p.Radius != 0 {
			t.Fatalf("particle %d params = %+v", i, *p)
		}
	}
}

func TestUpdateParametersDistrib(t *testing.T) {
	owner, nodes := newChain(3, mgl32.Vec3{1, 0, 0})
	cfg := DefaultConfig()
	cfg.Root = nodes[0]
	cfg.Stiffness = 0.8
	cfg.StiffnessDistrib = NewDistrib(&DistribKey{Time: 0, Value: 1}, &DistribKey{Time: 1, Value: 0})
	d := newBone(t, owner, cfg)
	want := []float32{0.8, 0.4, 0}
	for i, p := range d.Particles() {
		if mgl32.Abs(p.Stiffness-want[i]) > 1e-5 {
			t.Fatalf("particle %d stiffness = %f, want %f", i, p.Stiffness, want[i])
		}
		if p.Damping != cfg.Damping {
			t.Fatalf("particle %d damping changed by unrelated curve: %f", i, p.Damping)
		}
	}
}

func TestSetConfigKeepsPositions(t *testing.T) {
	owner, nodes := newChain(3, mgl32.Vec3{1, 0, 0})
	cfg := DefaultConfig()
	cfg.Root = nodes[0]
	cfg.Force = mgl32.Vec3{0, -0.05, 0}
	d := newBone(t, owner, cfg)
	for i := 0; i < 3; i++ {
		frame(d, 1.0/60)
	}
	before := make([]mgl32.Vec3, 0)
	for _, p := range d.Particles() {
		before = append(before, p.Position)
	}
	cfg.Damping = 0.9
	d.SetConfig(cfg)
	for i, p := range d.Particles() {
		if p.Position != before[i] {
			t.Fatalf("particle %d moved on config change: %v -> %v", i, before[i], p.Position)
		}
		if p.Damping != 0.9 {
			t.Fatalf("particle %d damping = %f, want 0.9", i, p.Damping)
		}
	}
}
