// Package ebitendev implements render.Device on top of ebiten's triangle
// rasterizer. Buffers live in CPU memory; the vertex stage (rotation about the
// origin followed by the view-projection) runs on the CPU when a batch is
// drawn.
package ebitendev

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/korp/render"
)

const (
	// MinUniformOffsetAlignment mirrors the common desktop GPU limit so
	// uniform layouts match what a native backend would use.
	MinUniformOffsetAlignment = 256

	// maxBatchVertices keeps indices addressable by uint16 and is a multiple
	// of three so no triangle straddles two calls.
	maxBatchVertices = 65535
)

// Device draws into the screen image set for the current frame.
type Device struct {
	screen *ebiten.Image
	white  *ebiten.Image

	scratch []ebiten.Vertex
	indices []uint16
	options ebiten.DrawTrianglesOptions
}

func New() *Device {
	return &Device{
		options: ebiten.DrawTrianglesOptions{
			ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
		},
	}
}

// SetScreen sets the image the next frame is drawn into. A nil screen makes
// Acquire report a lost frame.
func (d *Device) SetScreen(screen *ebiten.Image) {
	d.screen = screen
}

func (d *Device) Limits() render.Limits {
	return render.Limits{MinUniformOffsetAlignment: MinUniformOffsetAlignment}
}

func (d *Device) CreateVertexBuffer(size int) (render.Buffer, error) {
	return newBuffer(size)
}

func (d *Device) CreateUniformBuffer(size int) (render.Buffer, error) {
	return newBuffer(size)
}

func (d *Device) CreatePipeline(uniforms render.Buffer, stride int) (render.Pipeline, error) {
	b, ok := uniforms.(*buffer)
	if !ok {
		return nil, fmt.Errorf("ebitendev: foreign uniform buffer %T", uniforms)
	}
	if stride < render.MatrixSize {
		return nil, fmt.Errorf("ebitendev: uniform stride %d below matrix size", stride)
	}
	return &pipeline{uniforms: b, stride: stride}, nil
}

func (d *Device) Acquire() (render.Target, error) {
	if d.screen == nil {
		return nil, fmt.Errorf("ebitendev: no screen image: %w", render.ErrFrameLost)
	}
	bounds := d.screen.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("ebitendev: empty screen %v: %w", bounds, render.ErrFrameLost)
	}
	if d.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		d.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return &target{device: d, screen: d.screen}, nil
}

type buffer struct {
	data     []byte
	released bool
}

func newBuffer(size int) (*buffer, error) {
	if size < 0 {
		return nil, fmt.Errorf("ebitendev: negative buffer size %d", size)
	}
	return &buffer{data: make([]byte, size)}, nil
}

func (b *buffer) Size() int { return len(b.data) }

func (b *buffer) Write(offset int, data []byte) {
	copy(b.data[offset:], data)
}

func (b *buffer) Release() {
	b.released = true
	b.data = nil
}

type pipeline struct {
	uniforms *buffer
	stride   int
}

func (p *pipeline) Release() {}

type target struct {
	device *Device
	screen *ebiten.Image
}

func (t *target) Clear(c render.Color) {
	t.screen.Fill(color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
}

func (t *target) Draw(p render.Pipeline, vertices, uniforms render.Buffer, dynamicOffset uint32, start, end uint32) {
	vb := vertices.(*buffer)
	ub := uniforms.(*buffer)
	viewProjection := render.DecodeMatrix(ub.data[dynamicOffset:])

	bounds := t.screen.Bounds()
	width, height := float32(bounds.Dx()), float32(bounds.Dy())

	d := t.device
	for first := start; first < end; first += maxBatchVertices {
		last := min(first+maxBatchVertices, end)

		d.scratch = appendScreenVertices(d.scratch[:0], vb.data, first, last, viewProjection, width, height)
		d.indices = d.indices[:0]
		for i := range len(d.scratch) {
			d.indices = append(d.indices, uint16(i))
		}

		t.screen.DrawTriangles(d.scratch, d.indices, d.white, &d.options)
	}
}

func (t *target) Present() error {
	return nil
}

// appendScreenVertices runs the vertex stage for vertices [first, last) of
// data and appends the results in screen pixels.
func appendScreenVertices(dst []ebiten.Vertex, data []byte, first, last uint32, viewProjection mgl32.Mat4, width, height float32) []ebiten.Vertex {
	for i := first; i < last; i++ {
		v := render.DecodeVertex(data[int(i)*render.VertexSize:])
		x, y := clipToScreen(project(viewProjection, v), width, height)
		r, g, b, a := render.Unpack(v.Color).Floats()

		dst = append(dst, ebiten.Vertex{
			DstX:   x,
			DstY:   y,
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
	}
	return dst
}

func project(viewProjection mgl32.Mat4, v render.Vertex) mgl32.Vec4 {
	p := v.Transformed()
	return viewProjection.Mul4x1(mgl32.Vec4{p.X, p.Y, 0, 1})
}

// clipToScreen maps clip space, +y up, to pixels with y down.
func clipToScreen(clip mgl32.Vec4, width, height float32) (float32, float32) {
	return (clip.X() + 1) * 0.5 * width, (1 - clip.Y()) * 0.5 * height
}
