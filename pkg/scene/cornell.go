package scene

import (
	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/material"
	"github.com/df07/go-realtime-raytracer/pkg/renderer"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

// cornellMaterials holds the wall colors shared by the Cornell scenes
type cornellMaterials struct {
	red, white, green material.Material
}

func newCornellMaterials() cornellMaterials {
	return cornellMaterials{
		red:   material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05)),
		white: material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73)),
		green: material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15)),
	}
}

// newCornellRoom creates the empty box with the camera outside its open front
func newCornellRoom(m cornellMaterials) *Scene {
	s := newScene(core.NewVec3(278, 278, -800), core.NewVec3(278, 278, 0), 40, 400, 400, renderer.SolidBackground(core.Vec3{}))
	s.SamplingConfig.SamplesPerPixel = 100
	s.SamplingConfig.MotionBlur = false

	s.Add(
		geometry.NewQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), m.green), // left wall
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), m.red),         // right wall
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), m.white),       // floor
		geometry.NewQuad(core.NewVec3(boxSize, boxSize, boxSize), core.NewVec3(-boxSize, 0, 0), core.NewVec3(0, 0, -boxSize), m.white), // ceiling
		geometry.NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), m.white), // back wall
	)
	return s
}

// cornellBlocks returns the tall and short blocks, rotated about Y and moved into place
func cornellBlocks(mat material.Material) (tall, short geometry.Hittable) {
	tall = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), mat)
	tall = geometry.NewTranslate(geometry.NewRotateY(tall, 15), core.NewVec3(265, 0, 295))

	short = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), mat)
	short = geometry.NewTranslate(geometry.NewRotateY(short, -18), core.NewVec3(130, 0, 65))
	return tall, short
}

// NewCornellScene creates the classic Cornell box with two rotated blocks
func NewCornellScene(opts Options) *Scene {
	m := newCornellMaterials()
	s := newCornellRoom(m)

	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))
	s.Add(geometry.NewQuad(core.NewVec3(343, 554, 332), core.NewVec3(-130, 0, 0), core.NewVec3(0, 0, -105), light))

	tall, short := cornellBlocks(m.white)
	s.Add(tall, short)
	return s
}

// NewCornellSmokeScene replaces the blocks with smoke and fog of constant density
func NewCornellSmokeScene(opts Options) *Scene {
	m := newCornellMaterials()
	s := newCornellRoom(m)

	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))
	s.Add(geometry.NewQuad(core.NewVec3(113, 554, 127), core.NewVec3(330, 0, 0), core.NewVec3(0, 0, 305), light))

	tall, short := cornellBlocks(m.white)
	s.Add(
		geometry.NewConstantMedium(tall, 0.01, core.NewVec3(0, 0, 0)),
		geometry.NewConstantMedium(short, 0.01, core.NewVec3(1, 1, 1)),
	)
	return s
}
