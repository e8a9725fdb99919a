package dynbone

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type Particle struct {
	Transform   *Node // nil 表示末端虚拟粒子，没有可写回的节点
	ParentIndex int   // 根为 -1
	Damping     float32
	Elasticity  float32
	Stiffness   float32
	Inert       float32
	Radius      float32
	BoneLength  float32 // 从根累计的静止长度，只给分布曲线用
	// verlet 状态
	Position     mgl32.Vec3
	PrevPosition mgl32.Vec3
	// 虚拟粒子相对父节点局部空间的偏移
	EndOffset mgl32.Vec3
	// 初始局部姿态，禁用时还原
	InitLocalPosition mgl32.Vec3
	InitLocalRotation mgl32.Quat
}

func (p *Particle) IsVirtual() bool {
	return p.Transform == nil
}

func (p *Particle) IsRoot() bool {
	return p.ParentIndex < 0
}

// checkOrder 父节点下标必须小于自身，保证单遍求解时父节点已更新
func checkOrder(particles []*Particle) error {
	for i, p := range particles {
		if i == 0 {
			if !p.IsRoot() {
				return fmt.Errorf("particle 0 has parent %d", p.ParentIndex)
			}
			continue
		}
		if p.ParentIndex < 0 || p.ParentIndex >= i {
			return fmt.Errorf("particle %d has parent %d, want [0,%d)", i, p.ParentIndex, i)
		}
		if particles[p.ParentIndex].IsVirtual() {
			return fmt.Errorf("particle %d is parented to virtual particle %d", i, p.ParentIndex)
		}
	}
	return nil
}
