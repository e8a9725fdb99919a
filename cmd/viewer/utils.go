package main

import (
	"github.com/go-gl/mathgl/mgl32"
)

func HandleErr(err error) {
	if err != nil {
		panic(err)
	}
}

// Project 正交投影到 XY 平面，屏幕 y 轴朝下
func Project(pos mgl32.Vec3) (float32, float32) {
	return GOrigin.X() + pos.X()*GScale, GOrigin.Y() - pos.Y()*GScale
}
