package dynbone

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrUnknownNode = errors.New("unknown node")
	ErrBadParent   = errors.New("parent must precede child")
)

const (
	TimelineRotate    = 0
	TimelineTranslate = 1
)

type NodeData struct {
	Name        string      `json:"name"`
	ParentIndex int         `json:"parent_index"` // -1 为场景根
	Pos         mgl32.Vec3  `json:"pos"`
	Rotation    mgl32.Vec3  `json:"rotation"` // 欧拉角 角度制 XYZ
	Scale       *mgl32.Vec3 `json:"scale,omitempty"`
}

type ColliderData struct {
	Node   string  `json:"node"`
	Radius float32 `json:"radius"`
}

type DynamicBoneData struct {
	Root       string          `json:"root"`
	Config     Config          `json:"config"`
	Exclusions []string        `json:"exclusions"`
	Colliders  []*ColliderData `json:"colliders"`
	Reference  string          `json:"reference"`
}

type KeyFrameData struct {
	Time     float32    `json:"time"`
	Curve    *Curve     `json:"curve,omitempty"`
	Rotation mgl32.Vec3 `json:"rotation"` // 相对绑定姿态的欧拉角
	Offset   mgl32.Vec3 `json:"offset"`   // 相对绑定姿态的偏移
}

type TimelineData struct {
	TimelineType int             `json:"timeline_type"`
	Node         string          `json:"node"`
	KeyFrames    []*KeyFrameData `json:"key_frames"`
}

type AnimationData struct {
	Name      string          `json:"name"`
	Duration  float32         `json:"duration"`
	Timelines []*TimelineData `json:"timelines"`
}

type RigData struct {
	Nodes       []*NodeData      `json:"nodes"`
	Owner       string           `json:"owner"`
	DynamicBone DynamicBoneData  `json:"dynamic_bone"`
	Animations  []*AnimationData `json:"animations"`
}

// Rig 解析后的场景：节点树、组件配置与动画
type Rig struct {
	Nodes      []*Node
	Owner      *Node
	Config     Config
	Animations []*AnimController
}

func (r *Rig) Node(name string) *Node {
	for _, node := range r.Nodes {
		if node.Name == name {
			return node
		}
	}
	return nil
}

func (r *Rig) NewDynamicBone() *DynamicBone {
	return New(r.Owner, r.Config)
}

func LoadRig(path string) (*Rig, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rig %s: %w", path, err)
	}
	rig, err := ParseRig(bytes)
	if err != nil {
		return nil, fmt.Errorf("parse rig %s: %w", path, err)
	}
	return rig, nil
}

func ParseRig(bytes []byte) (*Rig, error) {
	data := &RigData{DynamicBone: DynamicBoneData{Config: DefaultConfig()}} // 缺省字段保持默认值
	if err := json.Unmarshal(bytes, data); err != nil {
		return nil, fmt.Errorf("decode rig: %w", err)
	}
	rig := &Rig{Config: data.DynamicBone.Config}
	for i, item := range data.Nodes {
		node := NewNode(item.Name)
		node.LocalPos = item.Pos
		node.LocalRot = EulerToQuat(item.Rotation)
		if item.Scale != nil {
			node.LocalScale = *item.Scale
		}
		if item.ParentIndex >= 0 {
			if item.ParentIndex >= i {
				return nil, fmt.Errorf("node %s parent %d: %w", item.Name, item.ParentIndex, ErrBadParent)
			}
			rig.Nodes[item.ParentIndex].AddChild(node)
		}
		rig.Nodes = append(rig.Nodes, node)
	}

	rig.Owner = rig.Node(data.Owner)
	if rig.Owner == nil {
		return nil, fmt.Errorf("owner %q: %w", data.Owner, ErrUnknownNode)
	}
	if err := rig.fillDynamicBone(&data.DynamicBone); err != nil {
		return nil, err
	}
	for _, animation := range data.Animations {
		controller, err := rig.parseAnimation(animation)
		if err != nil {
			return nil, err
		}
		rig.Animations = append(rig.Animations, controller)
	}
	return rig, nil
}

func (r *Rig) fillDynamicBone(data *DynamicBoneData) error {
	if data.Root != "" { // 没有根时组件什么也不做
		r.Config.Root = r.Node(data.Root)
		if r.Config.Root == nil {
			return fmt.Errorf("dynamic bone root %q: %w", data.Root, ErrUnknownNode)
		}
	}
	for _, name := range data.Exclusions {
		node := r.Node(name)
		if node == nil {
			log.Printf("skip unknown exclusion: %s", name)
			continue
		}
		r.Config.Exclusions = append(r.Config.Exclusions, node)
	}
	for _, item := range data.Colliders {
		if item == nil {
			continue
		}
		node := r.Node(item.Node)
		if node == nil {
			log.Printf("skip collider on unknown node: %s", item.Node)
			continue
		}
		r.Config.Colliders = append(r.Config.Colliders, NewSphereCollider(node, item.Radius))
	}
	if data.Reference != "" {
		r.Config.ReferenceObject = r.Node(data.Reference)
		if r.Config.ReferenceObject == nil {
			log.Printf("skip unknown reference: %s", data.Reference)
		}
	}
	return nil
}

func (r *Rig) parseAnimation(data *AnimationData) (*AnimController, error) {
	tracks := make([]Track, 0)
	for i, timeline := range data.Timelines {
		if len(timeline.KeyFrames) == 0 {
			log.Printf("animation %s timeline %d has no keyframes", data.Name, i)
			continue
		}
		node := r.Node(timeline.Node)
		if node == nil {
			return nil, fmt.Errorf("animation %s timeline %d node %q: %w", data.Name, i, timeline.Node, ErrUnknownNode)
		}
		sort.Slice(timeline.KeyFrames, func(i, j int) bool { // 保证顺序性
			return timeline.KeyFrames[i].Time < timeline.KeyFrames[j].Time
		})
		keyFrames := make([]*KeyFrame, 0, len(timeline.KeyFrames))
		for _, item := range timeline.KeyFrames {
			keyFrames = append(keyFrames, &KeyFrame{
				Time:   item.Time,
				Curve:  item.Curve,
				Rotate: EulerToQuat(item.Rotation),
				Offset: item.Offset,
			})
		}
		switch timeline.TimelineType {
		case TimelineRotate:
			tracks = append(tracks, NewRotateTrack(node, keyFrames))
		case TimelineTranslate:
			tracks = append(tracks, NewTranslateTrack(node, keyFrames))
		default:
			return nil, fmt.Errorf("animation %s: unknown timeline type %d", data.Name, timeline.TimelineType)
		}
	}
	return NewAnimController(data.Name, data.Duration, tracks...), nil
}
