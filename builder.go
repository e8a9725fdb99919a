package dynbone

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SetupParticles 清空并从 Root 重新构建粒子链，Root 为空时得到空链
func (d *DynamicBone) SetupParticles() error {
	d.particles = d.particles[:0]
	root := d.cfg.Root
	if root == nil {
		return nil
	}
	if d.Owner == nil { // 没有单独的组件节点时以根为准
		d.Owner = root
	}
	d.localGravity = root.WorldRotation().Conjugate().Rotate(d.cfg.Gravity)
	d.objectScale = mgl32.Abs(d.Owner.WorldScale().X())
	d.objectPrevPosition = d.Owner.WorldPosition()
	d.objectMove = mgl32.Vec3{}
	d.boneTotalLength = 0
	d.appendParticles(root, -1, 0)
	d.UpdateParameters()
	return checkOrder(d.particles)
}

// appendParticles 先序遍历，先放自己再放子节点，b 为 nil 时追加末端虚拟粒子
func (d *DynamicBone) appendParticles(b *Node, parentIndex int, boneLength float32) {
	p := &Particle{Transform: b, ParentIndex: parentIndex}
	if b != nil {
		p.Position = b.WorldPosition()
		p.PrevPosition = p.Position
		p.InitLocalPosition = b.LocalPos
		p.InitLocalRotation = b.LocalRot
	} else {
		pb := d.particles[parentIndex].Transform
		p.EndOffset = d.endOffset(pb)
		p.Position = TransformPoint(pb.WorldMatrix(), p.EndOffset)
		p.PrevPosition = p.Position
	}

	if parentIndex >= 0 {
		boneLength += d.particles[parentIndex].Transform.WorldPosition().Sub(p.Position).Len()
		p.BoneLength = boneLength
		d.boneTotalLength = max(d.boneTotalLength, boneLength)
	}

	index := len(d.particles)
	d.particles = append(d.particles, p)
	if b == nil {
		return
	}
	for _, child := range b.Children {
		if !d.cfg.excluded(child) {
			d.appendParticles(child, index, boneLength)
		} else if d.cfg.hasEnd() { // 被排除的分支用虚拟粒子收尾
			d.appendParticles(nil, index, boneLength)
		}
	}
	if len(b.Children) == 0 && d.cfg.hasEnd() {
		d.appendParticles(nil, index, boneLength)
	}
}

// endOffset 虚拟粒子在父节点局部空间的偏移
func (d *DynamicBone) endOffset(pb *Node) mgl32.Vec3 {
	invert := pb.WorldMatrix().Inv()
	if d.cfg.EndLength > 0 {
		ppb := pb.Parent
		if ppb == nil {
			return mgl32.Vec3{d.cfg.EndLength, 0, 0}
		}
		// 祖父 -> 父 的方向关于父节点镜像，延续骨骼走向
		pos := pb.WorldPosition().Mul(2).Sub(ppb.WorldPosition())
		return TransformPoint(invert, pos).Mul(d.cfg.EndLength)
	}
	temp := d.Owner.WorldRotation().Rotate(d.cfg.EndOffset).Add(pb.WorldPosition())
	return TransformPoint(invert, temp)
}
