package dynbone

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Track 每帧把某个时间点的局部姿态写到节点上
type Track interface {
	Update(curr float32)
}

type KeyFrame struct {
	Time   float32
	Curve  *Curve // 到下一帧的缓动，最后一帧忽略
	Rotate mgl32.Quat
	Offset mgl32.Vec3
}

func GetIndexByTime(frames []*KeyFrame, curr float32) int {
	for i := len(frames) - 1; i >= 0; i-- {
		if curr >= frames[i].Time {
			return i
		}
	}
	return -1
}

// frameRate 返回前后两帧与插值比例，next 为 nil 表示停在 pre 上
func frameRate(frames []*KeyFrame, curr float32) (*KeyFrame, *KeyFrame, float32) {
	idx := GetIndexByTime(frames, curr)
	if idx < 0 {
		return frames[0], nil, 0
	}
	if idx+1 >= len(frames) {
		return frames[idx], nil, 0
	}
	pre := frames[idx]
	next := frames[idx+1]
	if next.Time <= pre.Time {
		return next, nil, 0
	}
	return pre, next, CurveVal(pre.Curve, (curr-pre.Time)/(next.Time-pre.Time))
}

// RotateTrack 旋转叠加在绑定姿态上
type RotateTrack struct {
	Node      *Node
	Base      mgl32.Quat
	KeyFrames []*KeyFrame
}

func NewRotateTrack(node *Node, keyFrames []*KeyFrame) *RotateTrack {
	return &RotateTrack{Node: node, Base: node.LocalRot, KeyFrames: keyFrames}
}

func (r *RotateTrack) Update(curr float32) {
	pre, next, rate := frameRate(r.KeyFrames, curr)
	rot := pre.Rotate
	if next != nil {
		rot = mgl32.QuatSlerp(pre.Rotate, next.Rotate, rate)
	}
	r.Node.LocalRot = r.Base.Mul(rot).Normalize()
}

type TranslateTrack struct {
	Node      *Node
	Base      mgl32.Vec3
	KeyFrames []*KeyFrame
}

func NewTranslateTrack(node *Node, keyFrames []*KeyFrame) *TranslateTrack {
	return &TranslateTrack{Node: node, Base: node.LocalPos, KeyFrames: keyFrames}
}

func (t *TranslateTrack) Update(curr float32) {
	pre, next, rate := frameRate(t.KeyFrames, curr)
	offset := pre.Offset
	if next != nil {
		offset = Vec3Lerp(pre.Offset, next.Offset, rate)
	}
	t.Node.LocalPos = t.Base.Add(offset)
}

// AnimController 用累计的帧时间推进，循环播放
type AnimController struct {
	Name     string
	Duration float32
	Curr     float32
	Tracks   []Track
}

func NewAnimController(name string, duration float32, tracks ...Track) *AnimController {
	return &AnimController{Name: name, Duration: duration, Tracks: tracks}
}

func (c *AnimController) Advance(dt float32) {
	c.Curr += dt
	if c.Duration > 0 && c.Curr > c.Duration {
		c.Curr -= c.Duration * float32(int(c.Curr/c.Duration))
	}
	for _, track := range c.Tracks {
		track.Update(c.Curr)
	}
}
