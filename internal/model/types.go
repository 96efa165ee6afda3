// Package model compiles block-model cuboids into textured quads.
package model

import (
	"github.com/Faultbox/cubeforge/pkg/math"
)

// Orientation names a cuboid face.
type Orientation string

const (
	Up    Orientation = "up"
	Down  Orientation = "down"
	North Orientation = "north"
	South Orientation = "south"
	East  Orientation = "east"
	West  Orientation = "west"
)

// Orientations lists the six known faces.
func Orientations() []Orientation {
	return []Orientation{Up, Down, North, South, East, West}
}

// Cuboid is an axis-aligned box in model units (16 units per block).
// Start need not be below End on any axis.
type Cuboid struct {
	Start   math.Vec3
	End     math.Vec3
	Visible bool
	Faces   []Face
}

// Face is one side of a cuboid.
type Face struct {
	Orientation Orientation
	Visible     bool
	Texture     string    // texture ref, "#name" when unbound
	UV0         math.Vec2 // texture pixels
	UV1         math.Vec2
	Rotation    int // quarter turns of the UV mapping
}

// Box returns a visible cuboid with all six faces textured by ref and UVs
// spanning the full texture.
func Box(start, end math.Vec3, ref string, uvScale float64) Cuboid {
	c := Cuboid{Start: start, End: end, Visible: true}
	for _, o := range Orientations() {
		c.Faces = append(c.Faces, Face{
			Orientation: o,
			Visible:     true,
			Texture:     ref,
			UV1:         math.Vec2{X: uvScale, Y: uvScale},
		})
	}
	return c
}
