package render

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/korp/vmath"
)

const (
	// VertexSize is the byte size of an encoded Vertex.
	VertexSize = 28
	// MatrixSize is the byte size of an encoded view-projection matrix.
	MatrixSize = 64
)

// Vertex is the per-vertex record uploaded to the device. Position is
// rotated about Origin by the unit direction Rotation before the
// view-projection is applied.
type Vertex struct {
	Position vmath.Vec2
	Rotation vmath.Vec2
	Origin   vmath.Vec2
	Color    uint32
}

// AppendVertexBytes appends the little endian encoding of v: six float32
// values (position, rotation, origin) followed by the packed color.
func AppendVertexBytes(dst []byte, v Vertex) []byte {
	dst = appendFloat(dst, v.Position.X)
	dst = appendFloat(dst, v.Position.Y)
	dst = appendFloat(dst, v.Rotation.X)
	dst = appendFloat(dst, v.Rotation.Y)
	dst = appendFloat(dst, v.Origin.X)
	dst = appendFloat(dst, v.Origin.Y)
	return binary.LittleEndian.AppendUint32(dst, v.Color)
}

// DecodeVertex reads a vertex written by AppendVertexBytes.
func DecodeVertex(src []byte) Vertex {
	_ = src[VertexSize-1]
	f := func(i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(src[i*4:]))
	}
	return Vertex{
		Position: vmath.V(f(0), f(1)),
		Rotation: vmath.V(f(2), f(3)),
		Origin:   vmath.V(f(4), f(5)),
		Color:    binary.LittleEndian.Uint32(src[24:]),
	}
}

// Transformed applies the rotation about the origin, the same step the
// vertex stage performs before projection.
func (v Vertex) Transformed() vmath.Vec2 {
	return v.Position.Sub(v.Origin).Rotated(v.Rotation).Add(v.Origin)
}

// AppendMatrixBytes appends m in column-major little endian order.
func AppendMatrixBytes(dst []byte, m mgl32.Mat4) []byte {
	for _, f := range m {
		dst = appendFloat(dst, f)
	}
	return dst
}

// DecodeMatrix reads a matrix written by AppendMatrixBytes.
func DecodeMatrix(src []byte) mgl32.Mat4 {
	_ = src[MatrixSize-1]
	var m mgl32.Mat4
	for i := range m {
		m[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*4:]))
	}
	return m
}

func appendFloat(dst []byte, f float32) []byte {
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
}
