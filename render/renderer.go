package render

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/korp/vmath"
	"go.uber.org/zap"
)

const (
	initialVertexCapacity         = 8
	initialViewProjectionCapacity = 1
)

// ErrScopeOpen is returned by Frame.End when a BeginScope was not matched by
// an EndScope. The frame is discarded.
var ErrScopeOpen = errors.New("render: frame ended with an open scope")

// UniformStride rounds size up to a multiple of alignment.
func UniformStride(size, alignment int) int {
	if alignment <= 1 {
		return size
	}
	return (size + alignment - 1) / alignment * alignment
}

// GrowCapacity doubles current until it holds required. It never shrinks.
func GrowCapacity(current, required int) int {
	if current < 1 {
		current = 1
	}
	for current < required {
		current *= 2
	}
	return current
}

// Stats describes the last submitted frame and the current allocations.
type Stats struct {
	Frames                 uint64
	LostFrames             uint64
	Reallocations          uint64
	Vertices               int
	Batches                int
	DrawCalls              int
	ViewProjections        int
	VertexCapacity         int
	ViewProjectionCapacity int
	UniformStride          int
}

// Renderer batches primitives into a vertex buffer and submits one draw call
// per run of vertices sharing a view-projection. It owns every resource it
// creates on the device.
type Renderer struct {
	device Device
	logger *zap.Logger

	stride                 int
	vertexCapacity         int
	viewProjectionCapacity int

	vertices Buffer
	uniforms Buffer
	pipeline Pipeline

	screen  *Camera
	frame   Frame
	scratch []byte
	stats   Stats
}

// New creates a renderer for a width by height surface. Failures here leave
// no usable renderer and should be treated as fatal by the caller.
func New(device Device, width, height int, logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Renderer{
		device:                 device,
		logger:                 logger,
		stride:                 UniformStride(MatrixSize, device.Limits().MinUniformOffsetAlignment),
		vertexCapacity:         initialVertexCapacity,
		viewProjectionCapacity: initialViewProjectionCapacity,
		screen:                 NewScreenCamera(float32(width), float32(height)),
	}
	r.frame.renderer = r

	var err error
	if r.vertices, err = device.CreateVertexBuffer(r.vertexCapacity * VertexSize); err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}
	if r.uniforms, err = device.CreateUniformBuffer(r.viewProjectionCapacity * r.stride); err != nil {
		r.vertices.Release()
		return nil, fmt.Errorf("create uniform buffer: %w", err)
	}
	if r.pipeline, err = device.CreatePipeline(r.uniforms, r.stride); err != nil {
		r.vertices.Release()
		r.uniforms.Release()
		return nil, fmt.Errorf("create pipeline: %w", err)
	}

	r.stats.VertexCapacity = r.vertexCapacity
	r.stats.ViewProjectionCapacity = r.viewProjectionCapacity
	r.stats.UniformStride = r.stride
	return r, nil
}

// Resize adapts the default screen camera to a new surface size.
func (r *Renderer) Resize(width, height int) {
	r.screen.Resize(float32(width), float32(height))
	r.screen.Reposition(vmath.V(float32(width)*0.5, float32(height)*0.5))
}

// Screen returns the camera used outside of any scope.
func (r *Renderer) Screen() *Camera {
	return r.screen
}

func (r *Renderer) Stats() Stats {
	return r.stats
}

// Begin starts a new frame. Draws outside any scope use the screen camera.
// The returned frame must be finished with End or Discard.
func (r *Renderer) Begin() *Frame {
	f := &r.frame
	f.reset(r.screen.ViewProjection())
	return f
}

// Release frees all device resources.
func (r *Renderer) Release() {
	r.pipeline.Release()
	r.uniforms.Release()
	r.vertices.Release()
}

func (r *Renderer) submit(f *Frame) error {
	if err := r.reserve(len(f.vertices), len(f.viewProjections)); err != nil {
		return err
	}

	target, err := r.device.Acquire()
	if err != nil {
		if errors.Is(err, ErrFrameLost) {
			r.stats.LostFrames++
		}
		return err
	}

	r.scratch = r.scratch[:0]
	for _, v := range f.vertices {
		r.scratch = AppendVertexBytes(r.scratch, v)
	}
	r.vertices.Write(0, r.scratch)

	for i, vp := range f.viewProjections {
		r.scratch = AppendMatrixBytes(r.scratch[:0], vp)
		r.uniforms.Write(i*r.stride, r.scratch)
	}

	target.Clear(f.clear)
	for _, b := range f.batches {
		target.Draw(r.pipeline, r.vertices, r.uniforms, b.viewProjection*uint32(r.stride), b.start, b.end)
	}

	r.stats.Frames++
	r.stats.Vertices = len(f.vertices)
	r.stats.Batches = len(f.batches)
	r.stats.DrawCalls = len(f.batches)
	r.stats.ViewProjections = len(f.viewProjections)

	return target.Present()
}

// reserve grows the device buffers to hold the frame. Replacing the uniform
// buffer also replaces the pipeline bound to its layout. Growth completes
// before any draw call of the frame is issued.
func (r *Renderer) reserve(vertices, viewProjections int) error {
	if viewProjections > r.viewProjectionCapacity {
		capacity := GrowCapacity(r.viewProjectionCapacity, viewProjections)

		uniforms, err := r.device.CreateUniformBuffer(capacity * r.stride)
		if err != nil {
			return fmt.Errorf("grow uniform buffer to %d view projections: %w", capacity, err)
		}
		pipeline, err := r.device.CreatePipeline(uniforms, r.stride)
		if err != nil {
			uniforms.Release()
			return fmt.Errorf("recreate pipeline for %d view projections: %w", capacity, err)
		}

		r.pipeline.Release()
		r.uniforms.Release()
		r.pipeline = pipeline
		r.uniforms = uniforms

		r.logger.Debug("grew uniform buffer",
			zap.Int("from", r.viewProjectionCapacity),
			zap.Int("to", capacity),
			zap.Int("stride", r.stride))

		r.viewProjectionCapacity = capacity
		r.stats.ViewProjectionCapacity = capacity
		r.stats.Reallocations++
	}

	if vertices > r.vertexCapacity {
		capacity := GrowCapacity(r.vertexCapacity, vertices)

		buffer, err := r.device.CreateVertexBuffer(capacity * VertexSize)
		if err != nil {
			return fmt.Errorf("grow vertex buffer to %d vertices: %w", capacity, err)
		}

		r.vertices.Release()
		r.vertices = buffer

		r.logger.Debug("grew vertex buffer",
			zap.Int("from", r.vertexCapacity),
			zap.Int("to", capacity))

		r.vertexCapacity = capacity
		r.stats.VertexCapacity = capacity
		r.stats.Reallocations++
	}

	return nil
}

type batch struct {
	start          uint32
	end            uint32
	viewProjection uint32
}

// Frame accumulates the geometry of one displayed frame.
type Frame struct {
	renderer        *Renderer
	vertices        []Vertex
	batches         []batch
	viewProjections []mgl32.Mat4
	scopes          []uint32
	clear           Color
}

func (f *Frame) reset(screen mgl32.Mat4) {
	f.vertices = f.vertices[:0]
	f.batches = f.batches[:0]
	f.viewProjections = append(f.viewProjections[:0], screen)
	f.scopes = f.scopes[:0]
	f.clear = Black
	f.batches = append(f.batches, batch{})
}

// SetClearColor sets the color the target is cleared to before drawing.
func (f *Frame) SetClearColor(c Color) {
	f.clear = c
}

// Screen returns the camera active outside of any scope.
func (f *Frame) Screen() *Camera {
	return f.renderer.screen
}

// BeginScope closes the current batch and opens one that draws through
// camera. View-projections equal by value share a uniform slot.
func (f *Frame) BeginScope(camera *Camera) {
	parent := f.closeBatch()
	f.scopes = append(f.scopes, parent)
	f.openBatch(f.viewProjectionIndex(camera.ViewProjection()))
}

// EndScope closes the current batch and resumes the enclosing transform.
func (f *Frame) EndScope() {
	if len(f.scopes) == 0 {
		panic("render: EndScope without matching BeginScope")
	}
	f.closeBatch()
	parent := f.scopes[len(f.scopes)-1]
	f.scopes = f.scopes[:len(f.scopes)-1]
	f.openBatch(parent)
}

// WithScope runs fn inside a camera scope that is closed even if fn panics.
func (f *Frame) WithScope(camera *Camera, fn func(f *Frame)) {
	f.BeginScope(camera)
	defer f.EndScope()
	fn(f)
}

// End closes the last batch, drops empty batches and submits the frame.
func (f *Frame) End() error {
	if open := len(f.scopes); open != 0 {
		f.Discard()
		return fmt.Errorf("%d unclosed: %w", open, ErrScopeOpen)
	}

	f.closeBatch()
	kept := f.batches[:0]
	for _, b := range f.batches {
		if b.start != b.end {
			kept = append(kept, b)
		}
	}
	f.batches = kept

	return f.renderer.submit(f)
}

// Discard abandons everything drawn so far without submitting it. The frame
// stays usable and draws through the screen camera again.
func (f *Frame) Discard() {
	f.vertices = f.vertices[:0]
	f.batches = append(f.batches[:0], batch{})
	f.viewProjections = f.viewProjections[:1]
	f.scopes = f.scopes[:0]
}

// Len returns the number of vertices drawn so far.
func (f *Frame) Len() int {
	return len(f.vertices)
}

func (f *Frame) closeBatch() uint32 {
	last := &f.batches[len(f.batches)-1]
	last.end = uint32(len(f.vertices))
	return last.viewProjection
}

func (f *Frame) openBatch(viewProjection uint32) {
	n := uint32(len(f.vertices))
	f.batches = append(f.batches, batch{start: n, end: n, viewProjection: viewProjection})
}

func (f *Frame) viewProjectionIndex(m mgl32.Mat4) uint32 {
	for i, existing := range f.viewProjections {
		if existing == m {
			return uint32(i)
		}
	}
	f.viewProjections = append(f.viewProjections, m)
	return uint32(len(f.viewProjections) - 1)
}
