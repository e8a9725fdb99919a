package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"dynbone"
)

func main() {
	path := flag.String("rig", "res/tail.json", "rig description to load")
	anim := flag.Int("anim", 0, "animation index to play")
	flag.Parse()

	rig, err := dynbone.LoadRig(*path)
	HandleErr(err)
	log.Printf("loaded rig %s: %d nodes, %d animations", *path, len(rig.Nodes), len(rig.Animations))

	game, err := NewGame(rig, *anim)
	HandleErr(err)
	ebiten.SetWindowSize(ScreenW, ScreenH)
	ebiten.SetWindowTitle("dynbone viewer")
	err = ebiten.RunGame(game)
	HandleErr(err)
}
