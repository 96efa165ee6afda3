package entity

import (
	"github.com/Faultbox/cubeforge/internal/geom"
	"github.com/Faultbox/cubeforge/pkg/math"
)

// quadRecord is origin, uEnd and vEnd in 1/16 block units followed by the
// UV rectangle (u0, u1, v0, v1) in pixels of the 64x64 stand texture.
type quadRecord [13]float64

func quadsFromRecords(records []quadRecord) []geom.Quad {
	quads := make([]geom.Quad, len(records))
	for i, r := range records {
		quads[i] = geom.NewQuad(
			math.Vec3{X: r[0], Y: r[1], Z: r[2]}.Scale(1.0/16),
			math.Vec3{X: r[3], Y: r[4], Z: r[5]}.Scale(1.0/16),
			math.Vec3{X: r[6], Y: r[7], Z: r[8]}.Scale(1.0/16),
			math.Vec4{X: r[9], Y: r[10], Z: r[11], W: r[12]}.Scale(1.0/64),
		)
	}
	return quads
}

// standBase is the platform. It is never rotated.
var standBase = quadsFromRecords([]quadRecord{
	{2, 1, 14, 14, 1, 14, 2, 1, 2, 12, 24, 20, 32},
	{2, 0, 2, 14, 0, 2, 2, 0, 14, 36, 24, 32, 20},
	{14, 0, 14, 14, 0, 2, 14, 1, 14, 24, 36, 19, 20},
	{2, 0, 2, 2, 0, 14, 2, 1, 2, 0, 12, 19, 20},
	{14, 0, 2, 2, 0, 2, 14, 1, 2, 36, 48, 19, 20},
	{2, 0, 14, 14, 0, 14, 2, 1, 14, 12, 24, 19, 20},
})

// standBody turns with the stand's yaw.
var standBody = quadsFromRecords([]quadRecord{
	// shoulders
	{2, 25, 9.5, 14, 25, 9.5, 2, 25, 6.5, 3, 15, 35, 38},
	{2, 22, 6.5, 14, 22, 6.5, 2, 22, 9.5, 15, 27, 38, 35},
	{14, 22, 9.5, 14, 22, 6.5, 14, 25, 9.5, 15, 18, 32, 35},
	{2, 22, 6.5, 2, 22, 9.5, 2, 25, 6.5, 0, 3, 32, 35},
	{14, 22, 6.5, 2, 22, 6.5, 14, 25, 6.5, 18, 30, 32, 35},
	{2, 22, 9.5, 14, 22, 9.5, 2, 25, 9.5, 3, 15, 32, 35},
	// right body stick
	{5, 22, 9, 7, 22, 9, 5, 22, 7, 18, 20, 62, 64},
	{5, 14, 7, 7, 14, 7, 5, 14, 9, 20, 22, 62, 64},
	{7, 14, 9, 7, 14, 7, 7, 22, 9, 20, 22, 55, 62},
	{5, 14, 7, 5, 14, 9, 5, 22, 7, 16, 18, 55, 62},
	{7, 14, 7, 5, 14, 7, 7, 22, 7, 22, 24, 55, 62},
	{5, 14, 9, 7, 14, 9, 5, 22, 9, 18, 20, 55, 62},
	// neck
	{7, 30, 9, 9, 30, 9, 7, 30, 7, 2, 4, 62, 64},
	{7, 25, 7, 9, 25, 7, 7, 25, 9, 4, 6, 62, 64},
	{9, 25, 9, 9, 25, 7, 9, 30, 9, 0, 2, 55, 62},
	{7, 25, 7, 7, 25, 9, 7, 30, 7, 4, 6, 55, 62},
	{9, 25, 7, 7, 25, 7, 9, 30, 7, 2, 4, 55, 62},
	{7, 25, 9, 9, 25, 9, 7, 30, 9, 6, 8, 55, 62},
	// hip plate
	{4, 14, 9, 12, 14, 9, 4, 14, 7, 18, 30, 32, 35},
	{4, 12, 7, 12, 12, 7, 4, 12, 9, 18, 30, 32, 35},
	{12, 12, 9, 12, 12, 7, 12, 14, 9, 0, 3, 32, 35},
	{4, 12, 7, 4, 12, 9, 4, 14, 7, 15, 18, 32, 35},
	{12, 12, 7, 4, 12, 7, 12, 14, 7, 18, 30, 32, 35},
	{4, 12, 9, 12, 12, 9, 4, 14, 9, 18, 30, 32, 35},
	// left body stick
	{9, 22, 9, 11, 22, 9, 9, 22, 7, 50, 52, 46, 48},
	{9, 14, 7, 11, 14, 7, 9, 14, 9, 52, 54, 46, 48},
	{11, 14, 9, 11, 14, 7, 11, 22, 9, 52, 54, 39, 46},
	{9, 14, 7, 9, 14, 9, 9, 22, 7, 48, 50, 39, 46},
	{11, 14, 7, 9, 14, 7, 11, 22, 7, 54, 56, 39, 46},
	{9, 14, 9, 11, 14, 9, 9, 22, 9, 50, 52, 39, 46},
	// right leg
	{5, 12, 9, 7, 12, 9, 5, 12, 7, 10, 12, 62, 64},
	{5, 1, 7, 7, 1, 7, 5, 1, 9, 12, 14, 62, 64},
	{7, 1, 9, 7, 1, 7, 7, 12, 9, 12, 14, 51, 62},
	{5, 1, 7, 5, 1, 9, 5, 12, 7, 8, 10, 51, 62},
	{7, 1, 7, 5, 1, 7, 7, 12, 7, 14, 16, 51, 62},
	{5, 1, 9, 7, 1, 9, 5, 12, 9, 10, 12, 51, 62},
	// left leg
	{9, 12, 9, 11, 12, 9, 9, 12, 7, 42, 44, 46, 48},
	{9, 1, 7, 11, 1, 7, 9, 1, 9, 44, 46, 46, 48},
	{11, 1, 9, 11, 1, 7, 11, 12, 9, 42, 40, 35, 46},
	{9, 1, 7, 9, 1, 9, 9, 12, 7, 46, 44, 35, 46},
	{11, 1, 7, 9, 1, 7, 11, 12, 7, 48, 46, 35, 46},
	{9, 1, 9, 11, 1, 9, 9, 12, 9, 44, 42, 35, 46},
})
