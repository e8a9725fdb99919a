package dynbone

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrBadCurve = errors.New("invalid curve type")

const (
	CurveLinear  = 0
	CurveStepped = 1
	CurveBezier  = 2
)

// Curve 两个关键帧之间的缓动，Bezier 的首尾固定为 (0,0) (1,1)
type Curve struct {
	Type uint8         `json:"type"`
	Data [2]mgl32.Vec2 `json:"data"`
}

// bezier 三次贝塞尔单个分量，首尾控制点为 0 和 1
func bezier(p1, p2, t float32) float32 {
	inv := 1 - t
	return t*t*t + 3*t*t*inv*p2 + 3*t*inv*inv*p1
}

// solveT 二分求 x(t)=rate 的 t，控制点 x 在 [0,1] 内时单调
func solveT(data [2]mgl32.Vec2, rate float32) float32 {
	lo, hi := float32(0), float32(1)
	t := float32(0.5)
	for i := 0; i < 64; i++ {
		x := bezier(data[0].X(), data[1].X(), t)
		if math.Abs(float64(rate-x)) <= 1e-5 {
			break
		}
		if rate < x {
			hi = t
		} else {
			lo = t
		}
		t = (lo + hi) * 0.5
	}
	return t
}

// Validate 只接受已知的缓动类型
func (c *Curve) Validate() error {
	if c != nil && c.Type > CurveBezier {
		return fmt.Errorf("curve type %d: %w", c.Type, ErrBadCurve)
	}
	return nil
}

func (c *Curve) UnmarshalJSON(bytes []byte) error {
	type plain Curve
	var data plain
	if err := json.Unmarshal(bytes, &data); err != nil {
		return err
	}
	*c = Curve(data)
	return c.Validate()
}

// CurveVal rate 0~1，nil 与未知类型按线性处理
func CurveVal(curve *Curve, rate float32) float32 {
	if curve == nil {
		return rate
	}
	switch curve.Type {
	case CurveStepped:
		return 0
	case CurveBezier:
		t := solveT(curve.Data, rate)
		return bezier(curve.Data[0].Y(), curve.Data[1].Y(), t)
	default:
		return rate
	}
}

type DistribKey struct {
	Time  float32 `json:"time"`
	Value float32 `json:"value"`
	Curve *Curve  `json:"curve,omitempty"` // 到下一个 key 的缓动
}

// Distrib 以骨骼长度比例 (0~1) 为横轴的参数分布曲线
type Distrib struct {
	Keys []*DistribKey `json:"keys"`
}

func NewDistrib(keys ...*DistribKey) *Distrib {
	d := &Distrib{Keys: keys}
	d.sortKeys()
	return d
}

// sortKeys 丢掉空 key 并按时间排序，Evaluate 依赖升序
func (d *Distrib) sortKeys() {
	keys := d.Keys[:0]
	for _, key := range d.Keys {
		if key != nil {
			keys = append(keys, key)
		}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].Time < keys[j].Time
	})
	d.Keys = keys
}

func (d *Distrib) UnmarshalJSON(bytes []byte) error {
	type plain Distrib
	var data plain
	if err := json.Unmarshal(bytes, &data); err != nil {
		return err
	}
	*d = Distrib(data)
	d.sortKeys()
	return nil
}

func (d *Distrib) Valid() bool {
	return d != nil && len(d.Keys) > 0
}

func (d *Distrib) indexByTime(curr float32) int {
	for i := len(d.Keys) - 1; i >= 0; i-- {
		if curr >= d.Keys[i].Time {
			return i
		}
	}
	return -1
}

func (d *Distrib) Evaluate(curr float32) float32 {
	idx := d.indexByTime(curr)
	if idx < 0 {
		return d.Keys[0].Value
	}
	if idx+1 >= len(d.Keys) {
		return d.Keys[idx].Value
	}
	pre := d.Keys[idx]
	next := d.Keys[idx+1]
	if next.Time <= pre.Time {
		return next.Value
	}
	rate := CurveVal(pre.Curve, (curr-pre.Time)/(next.Time-pre.Time))
	return Lerp(pre.Value, next.Value, rate)
}
