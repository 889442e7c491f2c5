package gl

import (
	"encoding/binary"
	"fmt"
	"math"
)

type bufferState struct {
	g    *GL
	id   BufferID
	refs int
}

// ArrayBuffer is a shared handle to a context-side array-data buffer.
// Retain hands out additional handles; the context object is deleted
// exactly once, when the last handle is released. Handles referring to
// the same context object compare equal regardless of which holder
// created them.
type ArrayBuffer struct {
	shared *bufferState
}

// NewArrayBuffer creates a buffer and uploads data with the given usage
// hint. Allocation failure is returned to the caller; retrying is the
// application's decision.
func NewArrayBuffer(g *GL, data []byte, usage BufferUsage) (*ArrayBuffer, error) {
	id, err := g.ctx.CreateBuffer()
	if err != nil {
		return nil, fmt.Errorf("gl: creating array buffer: %w", err)
	}
	b := &ArrayBuffer{shared: &bufferState{g: g, id: id, refs: 1}}
	Logger().Debug("created array buffer", "id", uint32(id), "bytes", len(data))
	b.Write(data, usage)
	return b, nil
}

// ID returns the underlying context handle.
func (b *ArrayBuffer) ID() BufferID {
	return b.shared.id
}

// Write uploads data to the buffer. The buffer is bound as the array
// buffer for the duration of the upload and the previous binding is
// restored afterward, whatever it was.
func (b *ArrayBuffer) Write(data []byte, usage BufferUsage) {
	b.alive("Write")
	g := b.shared.g
	g.Apply(Settings().ArrayBuffer(b), func() {
		g.ctx.BufferData(b.shared.id, data, usage)
	})
}

// Retain returns a new handle sharing ownership of the same buffer.
func (b *ArrayBuffer) Retain() *ArrayBuffer {
	b.alive("Retain")
	b.shared.refs++
	return &ArrayBuffer{shared: b.shared}
}

// Release drops this handle's share of ownership. The last release
// deletes the context-side buffer.
func (b *ArrayBuffer) Release() {
	b.alive("Release")
	b.shared.refs--
	if b.shared.refs == 0 {
		b.shared.g.ctx.DeleteBuffer(b.shared.id)
		Logger().Debug("deleted array buffer", "id", uint32(b.shared.id))
	}
}

// Equal reports whether both handles refer to the same context-side
// buffer.
func (b *ArrayBuffer) Equal(o *ArrayBuffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.shared.id == o.shared.id
}

func (b *ArrayBuffer) alive(op string) {
	if b.shared.refs <= 0 {
		panic(fmt.Sprintf("gl: ArrayBuffer.%s on released buffer %d", op, b.shared.id))
	}
}

// Float32Bytes converts vertex data to the little-endian byte layout
// expected by buffer uploads.
func Float32Bytes(data []float32) []byte {
	out := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}
