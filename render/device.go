package render

import "errors"

var (
	// ErrFrameLost reports that the presentation surface could not be acquired
	// for this frame. The frame is dropped; rendering continues next frame.
	ErrFrameLost = errors.New("render: frame lost")
	// ErrBufferTooLarge is returned by devices that cannot allocate a buffer
	// of the requested size.
	ErrBufferTooLarge = errors.New("render: buffer exceeds device limit")
)

// Limits describes device constraints the renderer has to honor.
type Limits struct {
	// MinUniformOffsetAlignment is the alignment dynamic uniform offsets must
	// be a multiple of.
	MinUniformOffsetAlignment int
	// MaxBufferSize bounds a single buffer allocation in bytes. Zero means
	// unbounded.
	MaxBufferSize int
}

// Buffer is a device side allocation written by the renderer.
type Buffer interface {
	// Size returns the allocation size in bytes.
	Size() int
	// Write copies data to offset. Writes never extend the buffer.
	Write(offset int, data []byte)
	Release()
}

// Pipeline is the draw state built against a uniform buffer layout. It has
// to be recreated whenever the uniform buffer is replaced.
type Pipeline interface {
	Release()
}

// Target is a single frame's render pass.
type Target interface {
	Clear(color Color)
	// Draw issues one draw call over vertices [start, end) with the uniform
	// binding offset by dynamicOffset bytes.
	Draw(pipeline Pipeline, vertices, uniforms Buffer, dynamicOffset uint32, start, end uint32)
	Present() error
}

// Device creates GPU resources. All resources are exclusively owned by the
// Renderer that created them.
type Device interface {
	Limits() Limits
	CreateVertexBuffer(size int) (Buffer, error)
	CreateUniformBuffer(size int) (Buffer, error)
	CreatePipeline(uniforms Buffer, stride int) (Pipeline, error)
	// Acquire returns the target for the next frame, or an error wrapping
	// ErrFrameLost when the surface is temporarily unavailable.
	Acquire() (Target, error)
}
