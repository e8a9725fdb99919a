package dynbone

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MaxSubSteps 非固定步长时每帧最多追赶的子步数
const MaxSubSteps = 2

// FrameTime 宿主每帧提供的时间，Unscaled 不受时间缩放影响
type FrameTime struct {
	Delta    float32
	Unscaled float32
}

// DynamicBone 一个独立的次级运动模拟实例，粒子只属于自己
type DynamicBone struct {
	Owner *Node // 组件所在节点，用来计算整体位移与缩放
	cfg   Config
	// 运行时数据
	localGravity       mgl32.Vec3
	objectMove         mgl32.Vec3
	objectPrevPosition mgl32.Vec3
	boneTotalLength    float32
	objectScale        float32
	time               float32
	weight             float32
	deltaTime          float32
	distantDisabled    bool
	enabled            bool
	subSteps           int
	particles          []*Particle
}

// New owner 为空时用 cfg.Root 代替
func New(owner *Node, cfg Config) *DynamicBone {
	if owner == nil {
		owner = cfg.Root
	}
	return &DynamicBone{Owner: owner, cfg: cfg, weight: 1, objectScale: 1}
}

func (d *DynamicBone) Config() Config {
	return d.cfg
}

// SetConfig 只重新传播参数，不动粒子位置；Root/End/Exclusions 变化需要重新 SetupParticles
func (d *DynamicBone) SetConfig(cfg Config) {
	d.cfg = cfg
	d.UpdateParameters()
}

func (d *DynamicBone) Particles() []*Particle {
	return d.particles
}

func (d *DynamicBone) Weight() float32 {
	return d.weight
}

func (d *DynamicBone) SetWeight(weight float32) {
	d.weight = Clamp01(weight)
}

func (d *DynamicBone) Enabled() bool {
	return d.enabled
}

func (d *DynamicBone) DistantDisabled() bool {
	return d.distantDisabled
}

func (d *DynamicBone) TotalBoneLength() float32 {
	return d.boneTotalLength
}

// SubStepsLastFrame 最近一次 LateUpdate 实际执行的子步数，0 表示走了 skip 路径
func (d *DynamicBone) SubStepsLastFrame() int {
	return d.subSteps
}

func (d *DynamicBone) Accumulator() float32 {
	return d.time
}

func (d *DynamicBone) active() bool {
	return d.weight > 0 && !(d.cfg.DistantDisable && d.distantDisabled)
}

func (d *DynamicBone) Start() error {
	return d.SetupParticles()
}

func (d *DynamicBone) Enable() {
	d.enabled = true
	d.ResetParticlesPosition()
}

func (d *DynamicBone) Disable() {
	d.enabled = false
	d.InitTransforms()
}

// EarlyUpdate 在动画写入局部姿态之前调用，先把受控节点还原成初始姿态
func (d *DynamicBone) EarlyUpdate(ft FrameTime) {
	if !d.enabled {
		return
	}
	d.deltaTime = ft.Delta
	if d.cfg.UpdateMode == UpdateUnscaledTime {
		d.deltaTime = ft.Unscaled
	}
	if d.cfg.UpdateMode != UpdateAnimatePhysics {
		d.preUpdate()
	}
}

func (d *DynamicBone) FixedUpdate() {
	if !d.enabled {
		return
	}
	if d.cfg.UpdateMode == UpdateAnimatePhysics {
		d.preUpdate()
	}
}

// LateUpdate 在动画之后调用，完成求解与写回
func (d *DynamicBone) LateUpdate() {
	if !d.enabled {
		return
	}
	if d.cfg.DistantDisable {
		d.checkDistance()
	}
	if d.active() {
		d.updateDynamicBones(d.deltaTime)
	}
}

func (d *DynamicBone) preUpdate() {
	if d.active() {
		d.InitTransforms()
	}
}
