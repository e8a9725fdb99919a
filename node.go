package dynbone

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Node 场景图里的一个变换节点，局部姿态由动画系统写入，世界值按需从层级计算
type Node struct {
	Name     string
	Parent   *Node
	Children []*Node
	// 局部姿态
	LocalPos   mgl32.Vec3
	LocalRot   mgl32.Quat
	LocalScale mgl32.Vec3
}

func NewNode(name string) *Node {
	return &Node{Name: name, LocalRot: mgl32.QuatIdent(), LocalScale: mgl32.Vec3{1, 1, 1}}
}

// AddChild 会把 child 从旧的父节点上摘下来
func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.removeChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

func (n *Node) removeChild(child *Node) {
	for i, item := range n.Children {
		if item == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return
		}
	}
}

func (n *Node) ChildCount() int {
	return len(n.Children)
}

func (n *Node) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.LocalPos.X(), n.LocalPos.Y(), n.LocalPos.Z())
	s := mgl32.Scale3D(n.LocalScale.X(), n.LocalScale.Y(), n.LocalScale.Z())
	return t.Mul4(n.LocalRot.Mat4()).Mul4(s)
}

func (n *Node) WorldMatrix() mgl32.Mat4 {
	if n.Parent == nil { // 没有父节点局部就是世界
		return n.LocalMatrix()
	}
	return n.Parent.WorldMatrix().Mul4(n.LocalMatrix())
}

func (n *Node) WorldPosition() mgl32.Vec3 {
	if n.Parent == nil {
		return n.LocalPos
	}
	return TransformPoint(n.Parent.WorldMatrix(), n.LocalPos)
}

func (n *Node) WorldRotation() mgl32.Quat {
	if n.Parent == nil {
		return n.LocalRot
	}
	return n.Parent.WorldRotation().Mul(n.LocalRot).Normalize()
}

// WorldScale 逐分量累乘，非等比缩放加旋转时只是近似
func (n *Node) WorldScale() mgl32.Vec3 {
	if n.Parent == nil {
		return n.LocalScale
	}
	return Vec3Mul(n.Parent.WorldScale(), n.LocalScale)
}

func (n *Node) SetWorldPosition(pos mgl32.Vec3) {
	if n.Parent == nil {
		n.LocalPos = pos
		return
	}
	n.LocalPos = TransformPoint(n.Parent.WorldMatrix().Inv(), pos)
}

func (n *Node) SetWorldRotation(rot mgl32.Quat) {
	if n.Parent == nil {
		n.LocalRot = rot.Normalize()
		return
	}
	n.LocalRot = n.Parent.WorldRotation().Conjugate().Mul(rot).Normalize()
}

// Find 深度优先按名字查找，包含自身
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.Children {
		if res := child.Find(name); res != nil {
			return res
		}
	}
	return nil
}
