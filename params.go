package dynbone

// UpdateParameters 把组件参数写到每个粒子上，可随时调用，不影响位置状态
func (d *DynamicBone) UpdateParameters() {
	root := d.cfg.Root
	if root == nil {
		return
	}
	d.localGravity = root.WorldRotation().Conjugate().Rotate(d.cfg.Gravity)

	for _, p := range d.particles {
		p.Damping = d.cfg.Damping
		p.Elasticity = d.cfg.Elasticity
		p.Stiffness = d.cfg.Stiffness
		p.Inert = d.cfg.Inert
		p.Radius = d.cfg.Radius

		if d.boneTotalLength > 0 { // 越靠末端按曲线衰减
			a := p.BoneLength / d.boneTotalLength
			p.Damping *= sampleDistrib(d.cfg.DampingDistrib, a)
			p.Elasticity *= sampleDistrib(d.cfg.ElasticityDistrib, a)
			p.Stiffness *= sampleDistrib(d.cfg.StiffnessDistrib, a)
			p.Inert *= sampleDistrib(d.cfg.InertDistrib, a)
			p.Radius *= sampleDistrib(d.cfg.RadiusDistrib, a)
		}

		p.Damping = Clamp01(p.Damping)
		p.Elasticity = Clamp01(p.Elasticity)
		p.Stiffness = Clamp01(p.Stiffness)
		p.Inert = Clamp01(p.Inert)
		p.Radius = max(p.Radius, 0)
	}
}

func sampleDistrib(distrib *Distrib, rate float32) float32 {
	if !distrib.Valid() {
		return 1
	}
	return distrib.Evaluate(rate)
}
