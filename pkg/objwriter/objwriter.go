// Package objwriter serializes a mesh.Mesh to the Wavefront OBJ text
// format. Serialization formatting is kept separate from mesh geometry: the
// emitter (pkg/mesh) decides vertex positions and face/normal assignments,
// this package only decides how those become bytes.
package objwriter

import (
	"bufio"
	"fmt"
	"io"

	"github.com/chazu/lignin/pkg/mesh"
)

// Write renders m as an OBJ document to w: eight vertex lines and the
// necessary faces per cube, with the six canonical normals written once at
// the top. Vertex and normal indices in the face lines are 1-based, per the
// OBJ convention.
func Write(w io.Writer, m *mesh.Mesh) error {
	buf := bufio.NewWriter(w)

	for _, n := range m.Normals {
		if _, err := fmt.Fprintf(buf, "vn %v %v %v\n", n.X, n.Y, n.Z); err != nil {
			return err
		}
	}

	for _, v := range m.Vertices {
		if _, err := fmt.Fprintf(buf, "v %v %v %v\n", v.X, v.Y, v.Z); err != nil {
			return err
		}
	}

	for _, tri := range m.Triangles {
		n := tri.Normal + 1
		if _, err := fmt.Fprintf(buf, "f %d//%d %d//%d %d//%d\n",
			tri.V0+1, n, tri.V1+1, n, tri.V2+1, n); err != nil {
			return err
		}
	}

	return buf.Flush()
}
