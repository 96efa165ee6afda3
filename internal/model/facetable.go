package model

import (
	"github.com/Faultbox/cubeforge/pkg/math"
)

// Corner selectors. Start is the cuboid's "min" corner, End its "max".
const (
	fromStart = 0
	fromEnd   = 1
)

// edge selects an axis and the corner each end of the edge takes on it.
type edge struct {
	Axis     int // 0 = X, 1 = Y, 2 = Z
	From, To int
}

// faceLayout places an unrotated face on a cuboid.
type faceLayout struct {
	PassiveAxis int
	PassiveSide int
	U, V        edge
}

// faceTable winds every face outward at rotation 0.
var faceTable = map[Orientation]faceLayout{
	Up:    {PassiveAxis: 1, PassiveSide: fromEnd, U: edge{0, fromStart, fromEnd}, V: edge{2, fromEnd, fromStart}},
	Down:  {PassiveAxis: 1, PassiveSide: fromStart, U: edge{0, fromStart, fromEnd}, V: edge{2, fromStart, fromEnd}},
	North: {PassiveAxis: 2, PassiveSide: fromStart, U: edge{0, fromEnd, fromStart}, V: edge{1, fromStart, fromEnd}},
	South: {PassiveAxis: 2, PassiveSide: fromEnd, U: edge{0, fromStart, fromEnd}, V: edge{1, fromStart, fromEnd}},
	East:  {PassiveAxis: 0, PassiveSide: fromEnd, U: edge{2, fromEnd, fromStart}, V: edge{1, fromStart, fromEnd}},
	West:  {PassiveAxis: 0, PassiveSide: fromStart, U: edge{2, fromStart, fromEnd}, V: edge{1, fromStart, fromEnd}},
}

// rotationTable[r] holds, for origin, uEnd and vEnd, which end of the U
// edge and which end of the V edge the point sits on (0 = from, 1 = to).
var rotationTable = [4][3][2]int{
	{{0, 0}, {1, 0}, {0, 1}},
	{{0, 1}, {0, 0}, {1, 1}},
	{{1, 1}, {0, 1}, {1, 0}},
	{{1, 0}, {1, 1}, {0, 0}},
}

// KnownOrientation reports whether o has a face layout.
func KnownOrientation(o Orientation) bool {
	_, ok := faceTable[o]
	return ok
}

// FacePoints returns the origin, U end and V end of face o of the box
// spanned by start and end under the given quarter-turn rotation.
// Rotation is taken modulo 4. ok is false for unknown orientations.
func FacePoints(o Orientation, rotation int, start, end math.Vec3) (origin, uEnd, vEnd math.Vec3, ok bool) {
	layout, ok := faceTable[o]
	if !ok {
		return math.Vec3{}, math.Vec3{}, math.Vec3{}, false
	}
	corners := [2]math.Vec3{start, end}
	sel := rotationTable[((rotation%4)+4)%4]

	point := func(ui, vi int) math.Vec3 {
		uCorner := [2]int{layout.U.From, layout.U.To}[ui]
		vCorner := [2]int{layout.V.From, layout.V.To}[vi]

		var p math.Vec3
		p = p.WithComponent(layout.PassiveAxis, corners[layout.PassiveSide].Component(layout.PassiveAxis))
		p = p.WithComponent(layout.U.Axis, corners[uCorner].Component(layout.U.Axis))
		p = p.WithComponent(layout.V.Axis, corners[vCorner].Component(layout.V.Axis))
		return p
	}

	return point(sel[0][0], sel[0][1]), point(sel[1][0], sel[1][1]), point(sel[2][0], sel[2][1]), true
}
