package dynbone

// applyParticlesToTransforms 由粒子相对位置反推骨骼朝向，再写回世界坐标
func (d *DynamicBone) applyParticlesToTransforms() {
	for i := 1; i < len(d.particles); i++ {
		p := d.particles[i]
		p0 := d.particles[p.ParentIndex]
		if p0.Transform.ChildCount() <= 1 { // 分叉的骨骼没有唯一朝向，保持动画结果
			v := p.EndOffset
			if !p.IsVirtual() {
				v = p.Transform.LocalPos
			}
			parentRot := p0.Transform.WorldRotation()
			v = parentRot.Rotate(v)
			v2 := p.Position.Sub(p0.Position)
			if rot, ok := RotationTo(v, v2); ok {
				p0.Transform.SetWorldRotation(rot.Mul(parentRot))
			}
		}
		if !p.IsVirtual() {
			p.Transform.SetWorldPosition(p.Position)
		}
	}
}

// InitTransforms 把受控节点还原为初始局部姿态
func (d *DynamicBone) InitTransforms() {
	for _, p := range d.particles {
		if !p.IsVirtual() {
			p.Transform.LocalPos = p.InitLocalPosition
			p.Transform.LocalRot = p.InitLocalRotation
		}
	}
}

// ResetParticlesPosition 粒子对齐当前节点，丢弃残留的模拟偏移
func (d *DynamicBone) ResetParticlesPosition() {
	for _, p := range d.particles {
		if !p.IsVirtual() {
			p.Position = p.Transform.WorldPosition()
		} else {
			pb := d.particles[p.ParentIndex].Transform
			p.Position = TransformPoint(pb.WorldMatrix(), p.EndOffset)
		}
		p.PrevPosition = p.Position
	}
	if d.Owner != nil {
		d.objectPrevPosition = d.Owner.WorldPosition()
	}
}
