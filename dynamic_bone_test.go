package dynbone

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestEarlyUpdateRestoresAnimatedPose(t *testing.T) {
	owner, nodes := newChain(3, mgl32.Vec3{1, 0, 0})
	cfg := DefaultConfig()
	cfg.Root = nodes[0]
	d := newBone(t, owner, cfg)

	nodes[1].LocalPos = mgl32.Vec3{5, 5, 5}
	nodes[2].LocalRot = mgl32.QuatRotate(1, mgl32.Vec3{0, 1, 0})
	d.EarlyUpdate(FrameTime{Delta: 1.0 / 60})
	if nodes[1].LocalPos != (mgl32.Vec3{1, 0, 0}) || nodes[2].LocalRot != mgl32.QuatIdent() {
		t.Fatalf("early update did not restore init pose: %v %v", nodes[1].LocalPos, nodes[2].LocalRot)
	}
}

func TestAnimatePhysicsRestoresInFixedUpdate(t *testing.T) {
	owner, nodes := newChain(2, mgl32.Vec3{1, 0, 0})
	cfg := DefaultConfig()
	cfg.Root = nodes[0]
	cfg.UpdateMode = UpdateAnimatePhysics
	d := newBone(t, owner, cfg)

	nodes[1].LocalPos = mgl32.Vec3{3, 0, 0}
	d.EarlyUpdate(FrameTime{Delta: 1.0 / 60})
	if nodes[1].LocalPos != (mgl32.Vec3{3, 0, 0}) {
		t.Fatalf("animate physics mode restored pose in early update")
	}
	d.FixedUpdate()
	if nodes[1].LocalPos != (mgl32.Vec3{1, 0, 0}) {
		t.Fatalf("fixed update did not restore pose: %v", nodes[1].LocalPos)
	}
}

func TestUnscaledTimeMode(t *testing.T) {
	owner, nodes := newChain(2, mgl32.Vec3{1, 0, 0})
	cfg := DefaultConfig()
	cfg.Root = nodes[0]
	cfg.UseFixStep = false
	cfg.UpdateMode = UpdateUnscaledTime
	d := newBone(t, owner, cfg)
	d.EarlyUpdate(FrameTime{Delta: 0, Unscaled: 1.0 / 60})
	d.LateUpdate()
	if got := d.SubStepsLastFrame(); got != 1 {
		t.Fatalf("unscaled time ran %d sub steps, want 1", got)
	}

	cfg.UpdateMode = UpdateNormal
	d.SetConfig(cfg)
	d.EarlyUpdate(FrameTime{Delta: 0, Unscaled: 1.0 / 60})
	d.LateUpdate()
	if got := d.SubStepsLastFrame(); got != 0 {
		t.Fatalf("scaled time of 0 ran %d sub steps, want 0", got)
	}
}

func TestZeroWeightSkipsSolve(t *testing.T) {
	owner, nodes := newChain(2, mgl32.Vec3{1, 0, 0})
	cfg := DefaultConfig()
	cfg.Root = nodes[0]
	cfg.Force = mgl32.Vec3{0, -0.5, 0}
	d := newBone(t, owner, cfg)
	d.SetWeight(-1)
	if d.Weight() != 0 {
		t.Fatalf("weight = %f, want clamped 0", d.Weight())
	}
	nodes[1].LocalPos = mgl32.Vec3{2, 0, 0}
	frame(d, 1.0/60)
	if nodes[1].LocalPos != (mgl32.Vec3{2, 0, 0}) {
		t.Fatalf("zero weight touched transform: %v", nodes[1].LocalPos)
	}
	if got := d.Particles()[1].Position; got != (mgl32.Vec3{1, 0, 0}) {
		t.Fatalf("zero weight moved particle to %v", got)
	}
}

func TestDisabledHooksAreNoOps(t *testing.T) {
	owner, nodes := newChain(2, mgl32.Vec3{1, 0, 0})
	cfg := DefaultConfig()
	cfg.Root = nodes[0]
	cfg.Force = mgl32.Vec3{0, -0.5, 0}
	d := newBone(t, owner, cfg)
	d.Disable()
	nodes[1].LocalPos = mgl32.Vec3{0, 3, 0}
	frame(d, 1.0/60)
	if nodes[1].LocalPos != (mgl32.Vec3{0, 3, 0}) {
		t.Fatalf("disabled instance wrote transform: %v", nodes[1].LocalPos)
	}
}

// 宿主顺序：还原 -> 动画 -> 求解，链条应当落后于整体运动
func TestSecondaryMotionLagsAnimation(t *testing.T) {
	const dt = float32(1.0 / 60)
	owner, nodes := newChain(3, mgl32.Vec3{1, 0, 0})
	cfg := DefaultConfig()
	cfg.Root = nodes[0]
	d := newBone(t, owner, cfg)
	anim := NewAnimController("lift", 1, NewTranslateTrack(owner, []*KeyFrame{
		{Time: 0},
		{Time: 1, Offset: mgl32.Vec3{0, 1, 0}},
	}))

	for i := 0; i < 10; i++ {
		d.EarlyUpdate(FrameTime{Delta: dt, Unscaled: dt})
		anim.Advance(dt)
		d.LateUpdate()
	}
	tip := d.Particles()[2].Position
	root := nodes[0].WorldPosition()
	if tip.Y() >= root.Y()-1e-4 {
		t.Fatalf("tip y %f does not lag root y %f", tip.Y(), root.Y())
	}
	if got := nodes[2].WorldPosition(); !vecNear(got, tip, 1e-4) {
		t.Fatalf("tip transform %v not written from particle %v", got, tip)
	}
}

func TestNilOwnerBeforeStart(t *testing.T) {
	_, nodes := newChain(3, mgl32.Vec3{1, 0, 0})
	cfg := DefaultConfig()
	cfg.Root = nodes[0]
	d := New(nil, cfg)
	if d.Owner != nodes[0] {
		t.Fatalf("owner = %v, want root", d.Owner)
	}
	d.Enable()
	frame(d, 1.0/60)
	if len(d.Particles()) != 0 {
		t.Fatalf("particles built without Start: %d", len(d.Particles()))
	}

	// 空根启动后再补上根，Start 之前的帧什么都不做
	late := New(nil, DefaultConfig())
	if err := late.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	late.Enable()
	late.SetConfig(cfg)
	frame(late, 1.0/60)
	if err := late.Start(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	frame(late, 1.0/60)
	if late.Owner != nodes[0] || len(late.Particles()) != 3 {
		t.Fatalf("owner=%v particles=%d", late.Owner, len(late.Particles()))
	}
}
