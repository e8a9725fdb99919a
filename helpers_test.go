package dynbone

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func vecNear(v1, v2 mgl32.Vec3, eps float32) bool {
	return v1.Sub(v2).Len() <= eps
}

// newChain owner -> bone0 -> bone1 ...，bone0 与 owner 重合，后续每段偏移 seg
func newChain(count int, seg mgl32.Vec3) (*Node, []*Node) {
	owner := NewNode("owner")
	nodes := make([]*Node, 0, count)
	parent := owner
	for i := 0; i < count; i++ {
		node := NewNode(fmt.Sprintf("bone%d", i))
		if i > 0 {
			node.LocalPos = seg
		}
		parent.AddChild(node)
		nodes = append(nodes, node)
		parent = node
	}
	return owner, nodes
}

func newBone(t *testing.T, owner *Node, cfg Config) *DynamicBone {
	t.Helper()
	d := New(owner, cfg)
	if err := d.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	d.Enable()
	return d
}

func frame(d *DynamicBone, dt float32) {
	d.EarlyUpdate(FrameTime{Delta: dt, Unscaled: dt})
	d.FixedUpdate()
	d.LateUpdate()
}
