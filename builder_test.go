package dynbone

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSetupParticlesNilRoot(t *testing.T) {
	owner := NewNode("owner")
	d := newBone(t, owner, DefaultConfig())
	if len(d.Particles()) != 0 {
		t.Fatalf("nil root built %d particles", len(d.Particles()))
	}
	frame(d, 1.0/60) // 空链上每帧操作都应当是 no-op
	d.Disable()
}

func TestSetupParticlesPreOrder(t *testing.T) {
	owner := NewNode("owner")
	root := NewNode("root")
	owner.AddChild(root)
	left := NewNode("left")
	left.LocalPos = mgl32.Vec3{-1, -1, 0}
	right := NewNode("right")
	right.LocalPos = mgl32.Vec3{1, -1, 0}
	root.AddChild(left)
	root.AddChild(right)
	leftTip := NewNode("leftTip")
	leftTip.LocalPos = mgl32.Vec3{0, -1, 0}
	left.AddChild(leftTip)

	cfg := DefaultConfig()
	cfg.Root = root
	d := newBone(t, owner, cfg)

	want := []*Node{root, left, leftTip, right}
	particles := d.Particles()
	if len(particles) != len(want) {
		t.Fatalf("got %d particles, want %d", len(particles), len(want))
	}
	for i, p := range particles {
		if p.Transform != want[i] {
			t.Fatalf("particle %d is %v, want %s", i, p.Transform, want[i].Name)
		}
	}
	if err := checkOrder(particles); err != nil {
		t.Fatalf("order: %v", err)
	}
	if particles[2].ParentIndex != 1 || particles[3].ParentIndex != 0 {
		t.Fatalf("parent indices = %d,%d want 1,0", particles[2].ParentIndex, particles[3].ParentIndex)
	}
	sqrt2 := mgl32.Vec2{1, 1}.Len()
	if got := particles[2].BoneLength; mgl32.Abs(got-(sqrt2+1)) > 1e-5 {
		t.Fatalf("leaf bone length = %f, want %f", got, sqrt2+1)
	}
	if got := d.TotalBoneLength(); mgl32.Abs(got-(sqrt2+1)) > 1e-5 {
		t.Fatalf("total bone length = %f, want %f", got, sqrt2+1)
	}
	if particles[1].InitLocalPosition != left.LocalPos {
		t.Fatalf("init local position = %v, want %v", particles[1].InitLocalPosition, left.LocalPos)
	}
}

func TestEndLengthContinuesBoneDirection(t *testing.T) {
	owner, nodes := newChain(3, mgl32.Vec3{1, 0, 0})
	cfg := DefaultConfig()
	cfg.Root = nodes[0]
	cfg.EndLength = 0.5
	d := newBone(t, owner, cfg)

	particles := d.Particles()
	if len(particles) != 4 {
		t.Fatalf("got %d particles, want 3 bones + 1 end", len(particles))
	}
	end := particles[3]
	if !end.IsVirtual() || end.ParentIndex != 2 {
		t.Fatalf("last particle virtual=%v parent=%d", end.IsVirtual(), end.ParentIndex)
	}
	if !vecNear(end.EndOffset, mgl32.Vec3{0.5, 0, 0}, 1e-5) {
		t.Fatalf("end offset = %v, want (0.5,0,0)", end.EndOffset)
	}
	if !vecNear(end.Position, mgl32.Vec3{2.5, 0, 0}, 1e-5) {
		t.Fatalf("end position = %v, want (2.5,0,0)", end.Position)
	}
}

func TestEndLengthWithoutGrandparent(t *testing.T) {
	root := NewNode("root")
	cfg := DefaultConfig()
	cfg.Root = root
	cfg.EndLength = 2
	d := newBone(t, root, cfg)
	particles := d.Particles()
	if len(particles) != 2 || particles[1].EndOffset != (mgl32.Vec3{2, 0, 0}) {
		t.Fatalf("particles=%d end offset=%v", len(particles), particles[len(particles)-1].EndOffset)
	}
}

func TestExclusionEmitsEndParticle(t *testing.T) {
	owner, nodes := newChain(3, mgl32.Vec3{0, -1, 0})
	cfg := DefaultConfig()
	cfg.Root = nodes[0]
	cfg.Exclusions = []*Node{nil, nodes[2]}
	d := newBone(t, owner, cfg)
	if got := len(d.Particles()); got != 2 {
		t.Fatalf("excluded branch without end offset built %d particles, want 2", got)
	}

	owner.LocalRot = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1})
	cfg.EndOffset = mgl32.Vec3{0, -0.5, 0}
	d = newBone(t, owner, cfg)
	particles := d.Particles()
	if len(particles) != 3 {
		t.Fatalf("got %d particles, want 3", len(particles))
	}
	end := particles[2]
	if !end.IsVirtual() || end.ParentIndex != 1 {
		t.Fatalf("excluded child should become virtual end of particle 1, got virtual=%v parent=%d", end.IsVirtual(), end.ParentIndex)
	}
	// 末端偏移跟随 owner 的世界旋转
	want := nodes[1].WorldPosition().Add(owner.WorldRotation().Rotate(cfg.EndOffset))
	if !vecNear(end.Position, want, 1e-5) {
		t.Fatalf("end position = %v, want %v", end.Position, want)
	}
}
