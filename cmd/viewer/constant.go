package main

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	ScreenW   = 1280
	ScreenH   = 720
	MoveSpeed = 0.05
)

var (
	GOrigin = mgl32.Vec2{640, 420} // 世界原点在屏幕上的位置
	GScale  = float32(160)         // 每个世界单位的像素数

	SkeletonColor = color.RGBA{R: 0x70, G: 0x70, B: 0x70, A: 0xff}
	ChainColor    = color.RGBA{R: 0xff, G: 0xb0, B: 0x30, A: 0xff}
	VirtualColor  = color.RGBA{R: 0x30, G: 0xb0, B: 0xff, A: 0xff}
	ColliderColor = color.RGBA{R: 0x60, G: 0xe0, B: 0x60, A: 0xff}
)
