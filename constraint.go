package dynbone

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PerStepForce 把物理单位的加速度换算成每个子步的位移量，Gravity 与 Force 都按子步位移解释
func PerStepForce(accel mgl32.Vec3, dt float32) mgl32.Vec3 {
	return accel.Mul(0.5 * dt * dt)
}

// stepForce 本帧作用在粒子上的外力，扣除已经随根节点旋转“烘焙”进姿态的那部分重力
func (d *DynamicBone) stepForce() mgl32.Vec3 {
	force := d.cfg.Gravity
	if fdir, ok := SafeNormalize(d.cfg.Gravity); ok {
		rf := d.cfg.Root.WorldRotation().Rotate(d.localGravity)
		pf := fdir.Mul(max(rf.Dot(fdir), 0))
		force = force.Sub(pf)
	}
	return force.Add(d.cfg.Force).Mul(d.objectScale)
}

// updateParticles1 verlet 积分，根粒子直接跟随动画
func (d *DynamicBone) updateParticles1() {
	force := d.stepForce()
	for _, p := range d.particles {
		if p.IsRoot() {
			p.PrevPosition = p.Position
			p.Position = p.Transform.WorldPosition()
			continue
		}
		v := p.Position.Sub(p.PrevPosition)
		rmove := d.objectMove.Mul(p.Inert)
		p.PrevPosition = p.Position.Add(rmove)
		v = force.Add(v.Mul(1 - p.Damping)).Add(rmove)
		p.Position = p.Position.Add(v)
	}
}

// updateParticles2 约束，必须按下标顺序执行，子粒子依赖父粒子本子步的结果
func (d *DynamicBone) updateParticles2() {
	for i := 1; i < len(d.particles); i++ {
		p := d.particles[i]
		p0 := d.particles[p.ParentIndex]
		restLen := restLength(p, p0)

		stiffness := Lerp(1, p.Stiffness, d.weight)
		if stiffness > 0 || p.Elasticity > 0 {
			restPos := restPosition(p, p0)
			p.Position = keepShape(p.Position, restPos, p.Elasticity, stiffness, restLen)
		}

		particleRadius := p.Radius * d.objectScale
		for _, c := range d.cfg.Colliders {
			if c == nil || !c.Enabled() {
				continue
			}
			p.Position = collide(p.Position, particleRadius, c)
		}

		if d.cfg.FreezeAxis != FreezeNone {
			normal := p0.Transform.WorldRotation().Rotate(d.cfg.FreezeAxis.Axis())
			p.Position = ProjectOnPlane(p.Position, normal, p0.Position)
		}

		p.Position = keepLength(p.Position, p0.Position, restLen)
	}
}

// skipUpdateParticles 这一帧不到步长时只跟随整体位移并保持形状与长度
func (d *DynamicBone) skipUpdateParticles() {
	for _, p := range d.particles {
		if p.IsRoot() {
			p.PrevPosition = p.Position
			p.Position = p.Transform.WorldPosition()
			continue
		}
		p.Position = p.Position.Add(d.objectMove)
		p.PrevPosition = p.PrevPosition.Add(d.objectMove)

		p0 := d.particles[p.ParentIndex]
		restLen := restLength(p, p0)

		stiffness := Lerp(1, p.Stiffness, d.weight)
		if stiffness > 0 {
			restPos := restPosition(p, p0)
			p.Position = keepShape(p.Position, restPos, 0, stiffness, restLen)
		}

		p.Position = keepLength(p.Position, p0.Position, restLen)
	}
}

// restLength 用当前动画姿态重新计算，尊重动画里的拉伸
func restLength(p, p0 *Particle) float32 {
	if !p.IsVirtual() {
		return p0.Transform.WorldPosition().Sub(p.Transform.WorldPosition()).Len()
	}
	return p0.Transform.WorldRotation().Rotate(p.EndOffset).Len()
}

// restPosition 父节点当前世界矩阵，平移换成父粒子的模拟位置
func restPosition(p, p0 *Particle) mgl32.Vec3 {
	m0 := p0.Transform.WorldMatrix()
	m0[12], m0[13], m0[14] = p0.Position.X(), p0.Position.Y(), p0.Position.Z()
	if !p.IsVirtual() {
		return TransformPoint(m0, p.Transform.LocalPos)
	}
	return TransformPoint(m0, p.EndOffset)
}

// keepShape 先按弹性拉向静止位置，再用刚度限制最大偏离
func keepShape(pos, restPos mgl32.Vec3, elasticity, stiffness, restLen float32) mgl32.Vec3 {
	pos = pos.Add(restPos.Sub(pos).Mul(elasticity))
	if stiffness <= 0 {
		return pos
	}
	d := restPos.Sub(pos)
	l := d.Len()
	maxLen := restLen * (1 - stiffness) * 2
	if l > maxLen && l > 0 {
		pos = pos.Add(d.Mul((l - maxLen) / l))
	}
	return pos
}

// collide 每个碰撞体独立推出，不回头检查之前的碰撞体
func collide(pos mgl32.Vec3, particleRadius float32, c Collider) mgl32.Vec3 {
	center := c.Center()
	r := particleRadius + c.Radius()
	if DistanceSqr(pos, center) >= r*r {
		return pos
	}
	nd, ok := SafeNormalize(pos.Sub(center))
	if !ok { // 与球心重合没有方向
		return pos
	}
	return center.Add(nd.Mul(r))
}

// keepLength 单次非迭代的定长修正
func keepLength(pos, parentPos mgl32.Vec3, restLen float32) mgl32.Vec3 {
	dd := parentPos.Sub(pos)
	l := dd.Len()
	if l <= 0 {
		return pos
	}
	return pos.Add(dd.Mul((l - restLen) / l))
}
