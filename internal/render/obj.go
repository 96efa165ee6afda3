package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/cubeforge/pkg/math"
)

// WriteOBJ writes triangles as a Wavefront OBJ mesh. Each material change
// starts a usemtl group named after the material.
func WriteOBJ(w io.Writer, tris []Triangle) error {
	bw := bufio.NewWriter(w)

	var current *Material
	for i, t := range tris {
		for _, v := range [3]math.Vec3{t.A, t.B, t.C} {
			fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintf(bw, "vt %g %g\nvt %g %g\nvt %g %g\n", t.UVA.X, t.UVA.Y, t.UVB.X, t.UVB.Y, t.UVC.X, t.UVC.Y)

		if i == 0 || t.Material != current {
			current = t.Material
			name := "default"
			if current != nil && current.Name != "" {
				name = current.Name
			}
			fmt.Fprintf(bw, "usemtl %s\n", name)
		}

		base := 3*i + 1
		fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", base, base, base+1, base+1, base+2, base+2)
	}
	return bw.Flush()
}
