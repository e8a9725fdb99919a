package dynbone

import "github.com/go-gl/mathgl/mgl32"

// Collider 只读的碰撞体输入
type Collider interface {
	Center() mgl32.Vec3
	Radius() float32
	Enabled() bool
}

type SphereCollider struct {
	Node     *Node
	R        float32
	Disabled bool
}

func NewSphereCollider(node *Node, radius float32) *SphereCollider {
	return &SphereCollider{Node: node, R: radius}
}

func (c *SphereCollider) Center() mgl32.Vec3 {
	return c.Node.WorldPosition()
}

func (c *SphereCollider) Radius() float32 {
	return c.R
}

func (c *SphereCollider) Enabled() bool {
	return c != nil && c.Node != nil && !c.Disabled
}
