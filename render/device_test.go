package render_test

import (
	"fmt"

	"github.com/plus3/korp/render"
)

type recordingBuffer struct {
	kind     string
	data     []byte
	released bool
}

func (b *recordingBuffer) Size() int { return len(b.data) }

func (b *recordingBuffer) Write(offset int, data []byte) {
	if b.released {
		panic("write to released " + b.kind + " buffer")
	}
	if offset+len(data) > len(b.data) {
		panic(fmt.Sprintf("%s buffer overflow: %d+%d > %d", b.kind, offset, len(data), len(b.data)))
	}
	copy(b.data[offset:], data)
}

func (b *recordingBuffer) Release() { b.released = true }

type recordingPipeline struct {
	uniforms *recordingBuffer
	stride   int
	released bool
}

func (p *recordingPipeline) Release() { p.released = true }

type drawCall struct {
	pipeline      *recordingPipeline
	dynamicOffset uint32
	start, end    uint32
}

type recordingTarget struct {
	device *recordingDevice
}

func (t *recordingTarget) Clear(color render.Color) {
	t.device.clears = append(t.device.clears, color)
}

func (t *recordingTarget) Draw(pipeline render.Pipeline, vertices, uniforms render.Buffer, dynamicOffset uint32, start, end uint32) {
	p := pipeline.(*recordingPipeline)
	if p.released || vertices.(*recordingBuffer).released || uniforms.(*recordingBuffer).released {
		panic("draw with released resources")
	}
	if p.uniforms != uniforms {
		panic("pipeline bound to a different uniform buffer")
	}
	t.device.draws = append(t.device.draws, drawCall{pipeline: p, dynamicOffset: dynamicOffset, start: start, end: end})
}

func (t *recordingTarget) Present() error {
	t.device.presents++
	return nil
}

// recordingDevice records every allocation and draw call.
type recordingDevice struct {
	limits    render.Limits
	vertices  []*recordingBuffer
	uniforms  []*recordingBuffer
	pipelines []*recordingPipeline
	draws     []drawCall
	clears    []render.Color
	presents  int
	lose      int
}

func newRecordingDevice(alignment int) *recordingDevice {
	return &recordingDevice{limits: render.Limits{MinUniformOffsetAlignment: alignment}}
}

func (d *recordingDevice) Limits() render.Limits { return d.limits }

func (d *recordingDevice) allocate(kind string, size int) (*recordingBuffer, error) {
	if d.limits.MaxBufferSize > 0 && size > d.limits.MaxBufferSize {
		return nil, render.ErrBufferTooLarge
	}
	return &recordingBuffer{kind: kind, data: make([]byte, size)}, nil
}

func (d *recordingDevice) CreateVertexBuffer(size int) (render.Buffer, error) {
	b, err := d.allocate("vertex", size)
	if err != nil {
		return nil, err
	}
	d.vertices = append(d.vertices, b)
	return b, nil
}

func (d *recordingDevice) CreateUniformBuffer(size int) (render.Buffer, error) {
	b, err := d.allocate("uniform", size)
	if err != nil {
		return nil, err
	}
	d.uniforms = append(d.uniforms, b)
	return b, nil
}

func (d *recordingDevice) CreatePipeline(uniforms render.Buffer, stride int) (render.Pipeline, error) {
	p := &recordingPipeline{uniforms: uniforms.(*recordingBuffer), stride: stride}
	d.pipelines = append(d.pipelines, p)
	return p, nil
}

func (d *recordingDevice) Acquire() (render.Target, error) {
	if d.lose > 0 {
		d.lose--
		return nil, fmt.Errorf("acquire surface: %w", render.ErrFrameLost)
	}
	return &recordingTarget{device: d}, nil
}

func (d *recordingDevice) vertexBuffer() *recordingBuffer {
	return d.vertices[len(d.vertices)-1]
}

func (d *recordingDevice) uniformBuffer() *recordingBuffer {
	return d.uniforms[len(d.uniforms)-1]
}

func (d *recordingDevice) reset() {
	d.draws = d.draws[:0]
	d.clears = d.clears[:0]
	d.presents = 0
}
