package main

import (
	"github.com/plus3/korp/render"
)

// nullDevice is a headless render.Device. Buffers live in memory and draw
// calls are only counted, so the stress run measures batching and uploads
// without a window.
type nullDevice struct {
	draws    uint64
	vertices uint64
}

type memBuffer []byte

func (b memBuffer) Size() int                     { return len(b) }
func (b memBuffer) Write(offset int, data []byte) { copy(b[offset:], data) }
func (b memBuffer) Release()                      {}

type nullPipeline struct{}

func (nullPipeline) Release() {}

type nullTarget struct {
	device *nullDevice
}

func (t nullTarget) Clear(render.Color) {}

func (t nullTarget) Draw(_ render.Pipeline, _, _ render.Buffer, _ uint32, start, end uint32) {
	t.device.draws++
	t.device.vertices += uint64(end - start)
}

func (t nullTarget) Present() error { return nil }

func (d *nullDevice) Limits() render.Limits {
	return render.Limits{MinUniformOffsetAlignment: 256}
}

func (d *nullDevice) CreateVertexBuffer(size int) (render.Buffer, error) {
	return make(memBuffer, size), nil
}

func (d *nullDevice) CreateUniformBuffer(size int) (render.Buffer, error) {
	return make(memBuffer, size), nil
}

func (d *nullDevice) CreatePipeline(render.Buffer, int) (render.Pipeline, error) {
	return nullPipeline{}, nil
}

func (d *nullDevice) Acquire() (render.Target, error) {
	return nullTarget{device: d}, nil
}
