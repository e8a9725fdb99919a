package dynbone

import (
	"github.com/go-gl/mathgl/mgl32"
)

func (d *DynamicBone) updateDynamicBones(dt float32) {
	if d.cfg.Root == nil || d.Owner == nil || len(d.particles) == 0 { // 未 Start 或没有根
		return
	}
	d.objectScale = mgl32.Abs(d.Owner.WorldScale().X())
	pos := d.Owner.WorldPosition()
	d.objectMove = pos.Sub(d.objectPrevPosition)
	d.objectPrevPosition = pos

	loop := d.stepCount(dt)
	d.subSteps = loop
	if loop > 0 {
		for i := 0; i < loop; i++ {
			d.updateParticles1()
			d.updateParticles2()
			d.objectMove = mgl32.Vec3{} // 整体位移只在第一个子步生效
		}
	} else {
		d.skipUpdateParticles()
		d.objectMove = mgl32.Vec3{}
	}
	d.applyParticlesToTransforms()
}

// stepCount 本帧要跑的子步数，累计时间过多时最多追赶 MaxSubSteps 步并清空累计
func (d *DynamicBone) stepCount(dt float32) int {
	if d.cfg.UseFixStep || d.cfg.UpdateRate <= 0 {
		return 1
	}
	step := 1 / d.cfg.UpdateRate
	d.time += dt
	loop := 0
	for d.time >= step {
		d.time -= step
		loop++
		if loop >= MaxSubSteps {
			d.time = 0
			break
		}
	}
	return loop
}

// checkDistance 超出参考点距离时停止模拟，回到范围内时重置粒子避免跳变
func (d *DynamicBone) checkDistance() {
	rt := d.cfg.ReferenceObject
	if rt == nil || d.Owner == nil {
		return
	}
	dist := DistanceSqr(rt.WorldPosition(), d.Owner.WorldPosition())
	disable := dist > d.cfg.DistanceToObject*d.cfg.DistanceToObject
	if disable != d.distantDisabled {
		if !disable {
			d.ResetParticlesPosition()
		}
		d.distantDisabled = disable
	}
}
