package main

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"dynbone"
)

type Game struct {
	Rig  *dynbone.Rig
	Bone *dynbone.DynamicBone
	Anim *dynbone.AnimController // 可以为 nil
	// Owner 所在层级的最外层挂到 Stage 下，按键只移动 Stage，不和动画抢同一个节点
	Stage     *dynbone.Node
	TimeScale float32
}

func NewGame(rig *dynbone.Rig, animIndex int) (*Game, error) {
	res := &Game{Rig: rig, Bone: rig.NewDynamicBone(), Stage: dynbone.NewNode("stage"), TimeScale: 1}
	top := rig.Owner
	for top.Parent != nil {
		top = top.Parent
	}
	res.Stage.AddChild(top)
	if animIndex >= 0 && animIndex < len(rig.Animations) {
		res.Anim = rig.Animations[animIndex]
	}
	if err := res.Bone.Start(); err != nil {
		return nil, fmt.Errorf("setup particles: %w", err)
	}
	res.Bone.Enable()
	log.Printf("dynamic bone: %d particles, total length %.3f", len(res.Bone.Particles()), res.Bone.TotalBoneLength())
	return res, nil
}

func (g *Game) Update() error {
	g.handleInput()
	dt := float32(1) / float32(ebiten.TPS())
	// 顺序固定：还原姿态 -> 动画写入局部姿态 -> 求解写回
	g.Bone.EarlyUpdate(dynbone.FrameTime{Delta: dt * g.TimeScale, Unscaled: dt})
	g.Bone.FixedUpdate()
	if g.Anim != nil {
		g.Anim.Advance(dt * g.TimeScale)
	}
	g.Bone.LateUpdate()
	return nil
}

func (g *Game) handleInput() {
	// 按键控制
	move := mgl32.Vec3{}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		move[1] += MoveSpeed
	} else if ebiten.IsKeyPressed(ebiten.KeyS) {
		move[1] -= MoveSpeed
	} else if ebiten.IsKeyPressed(ebiten.KeyA) {
		move[0] -= MoveSpeed
	} else if ebiten.IsKeyPressed(ebiten.KeyD) {
		move[0] += MoveSpeed
	}
	g.Stage.LocalPos = g.Stage.LocalPos.Add(move)
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		if g.Bone.Enabled() {
			g.Bone.Disable()
		} else {
			g.Bone.Enable()
		}
	}
	cfg := g.Bone.Config()
	changed := false
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		cfg.FreezeAxis = (cfg.FreezeAxis + 1) % 4
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		cfg.UseFixStep = !cfg.UseFixStep
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyJ) {
		cfg.Damping -= 0.05
		changed = true
	} else if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		cfg.Damping += 0.05
		changed = true
	}
	if changed {
		cfg.Damping = dynbone.Clamp01(cfg.Damping)
		g.Bone.SetConfig(cfg)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.TimeScale = max(g.TimeScale-0.25, 0)
	} else if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.TimeScale += 0.25
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	for _, node := range g.Rig.Nodes {
		g.drawNode(node, screen)
	}
	g.drawParticles(screen)
	for _, item := range g.Bone.Config().Colliders {
		if item == nil || !item.Enabled() {
			continue
		}
		x, y := Project(item.Center())
		vector.StrokeCircle(screen, x, y, item.Radius()*GScale, 1, ColliderColor, true)
	}
	cfg := g.Bone.Config()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"TPS %.1f  enabled %v  distant %v\nfreeze %s  fixstep %v  substeps %d  damping %.2f  timescale %.2f\nWASD move  E enable  F freeze  T fixstep  J/K damping  -/= timescale",
		ebiten.ActualTPS(), g.Bone.Enabled(), g.Bone.DistantDisabled(),
		cfg.FreezeAxis, cfg.UseFixStep, g.Bone.SubStepsLastFrame(), cfg.Damping, g.TimeScale))
}

func (g *Game) drawNode(node *dynbone.Node, screen *ebiten.Image) {
	if node.Parent == nil || node.Parent == g.Stage {
		return
	}
	x0, y0 := Project(node.Parent.WorldPosition())
	x1, y1 := Project(node.WorldPosition())
	vector.StrokeLine(screen, x0, y0, x1, y1, 1, SkeletonColor, true)
}

func (g *Game) drawParticles(screen *ebiten.Image) {
	particles := g.Bone.Particles()
	for _, p := range particles {
		x, y := Project(p.Position)
		clr := ChainColor
		if p.IsVirtual() {
			clr = VirtualColor
		}
		if !p.IsRoot() {
			x0, y0 := Project(particles[p.ParentIndex].Position)
			vector.StrokeLine(screen, x0, y0, x, y, 3, clr, true)
		}
		vector.DrawFilledCircle(screen, x, y, 4, clr, true)
	}
}

func (g *Game) Layout(w, h int) (int, int) {
	return w, h
}
