package dynbone

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type UpdateMode uint8

const (
	UpdateNormal         UpdateMode = 0
	UpdateAnimatePhysics UpdateMode = 1 // 还原姿态放到物理 tick 里做
	UpdateUnscaledTime   UpdateMode = 2
)

var updateModeNames = map[UpdateMode]string{
	UpdateNormal:         "normal",
	UpdateAnimatePhysics: "animate_physics",
	UpdateUnscaledTime:   "unscaled_time",
}

func (m UpdateMode) String() string {
	if name, ok := updateModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("UpdateMode(%d)", m)
}

func (m UpdateMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *UpdateMode) UnmarshalText(text []byte) error {
	for mode, name := range updateModeNames {
		if name == string(text) {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("unknown update mode: %q", text)
}

type FreezeAxis uint8

const (
	FreezeNone FreezeAxis = 0
	FreezeX    FreezeAxis = 1
	FreezeY    FreezeAxis = 2
	FreezeZ    FreezeAxis = 3
)

var freezeAxisNames = map[FreezeAxis]string{
	FreezeNone: "none",
	FreezeX:    "x",
	FreezeY:    "y",
	FreezeZ:    "z",
}

func (a FreezeAxis) String() string {
	if name, ok := freezeAxisNames[a]; ok {
		return name
	}
	return fmt.Sprintf("FreezeAxis(%d)", a)
}

func (a FreezeAxis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *FreezeAxis) UnmarshalText(text []byte) error {
	for axis, name := range freezeAxisNames {
		if name == string(text) {
			*a = axis
			return nil
		}
	}
	return fmt.Errorf("unknown freeze axis: %q", text)
}

// Axis 冻结轴在节点局部空间的方向，FreezeNone 返回零向量
func (a FreezeAxis) Axis() mgl32.Vec3 {
	switch a {
	case FreezeX:
		return mgl32.Vec3{1, 0, 0}
	case FreezeY:
		return mgl32.Vec3{0, 1, 0}
	case FreezeZ:
		return mgl32.Vec3{0, 0, -1} // forward 朝 -Z
	default:
		return mgl32.Vec3{}
	}
}

// Config 组件级参数，标量在 UpdateParameters 里钳制
type Config struct {
	Root       *Node      `json:"-"`
	UpdateRate float32    `json:"update_rate"`
	UpdateMode UpdateMode `json:"update_mode"`
	FreezeAxis FreezeAxis `json:"freeze_axis"`

	Damping    float32 `json:"damping"`
	Elasticity float32 `json:"elasticity"`
	Stiffness  float32 `json:"stiffness"`
	Inert      float32 `json:"inert"`
	Radius     float32 `json:"radius"`
	// 沿骨骼长度的分布曲线，nil 不生效
	DampingDistrib    *Distrib `json:"damping_distrib,omitempty"`
	ElasticityDistrib *Distrib `json:"elasticity_distrib,omitempty"`
	StiffnessDistrib  *Distrib `json:"stiffness_distrib,omitempty"`
	InertDistrib      *Distrib `json:"inert_distrib,omitempty"`
	RadiusDistrib     *Distrib `json:"radius_distrib,omitempty"`

	EndLength float32    `json:"end_length"`
	EndOffset mgl32.Vec3 `json:"end_offset"`
	Gravity   mgl32.Vec3 `json:"gravity"`
	Force     mgl32.Vec3 `json:"force"`

	Colliders  []Collider `json:"-"`
	Exclusions []*Node    `json:"-"`

	ReferenceObject  *Node   `json:"-"`
	DistantDisable   bool    `json:"distant_disable"`
	DistanceToObject float32 `json:"distance_to_object"`
	UseFixStep       bool    `json:"use_fix_step"`
}

func DefaultConfig() Config {
	return Config{
		UpdateRate:       60,
		UpdateMode:       UpdateNormal,
		FreezeAxis:       FreezeNone,
		Damping:          0.1,
		Elasticity:       0.1,
		Stiffness:        0.1,
		DistanceToObject: 20,
		UseFixStep:       true,
	}
}

func (c *Config) hasEnd() bool {
	return c.EndLength > 0 || c.EndOffset != (mgl32.Vec3{})
}

func (c *Config) excluded(node *Node) bool {
	for _, item := range c.Exclusions {
		if item != nil && item == node {
			return true
		}
	}
	return false
}
