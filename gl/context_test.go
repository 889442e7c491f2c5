package gl

import (
	"errors"
	"fmt"
	"strings"
)

// fakeContext records every call it receives and mirrors the state a real
// context would hold, so tests can assert both the exact call sequence
// (including its absence) and the resulting context state.
type fakeContext struct {
	calls []string

	enabled       map[Capability]bool
	activeUnit    int
	boundBuffer   BufferID
	boundTextures [MaxTextureUnits]TextureID

	nextBuffer  uint32
	nextTexture uint32
	failCreate  bool
}

func newFakeContext() *fakeContext {
	return &fakeContext{enabled: map[Capability]bool{}}
}

func (f *fakeContext) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeContext) reset() {
	f.calls = nil
}

// countCalls returns how many recorded calls start with prefix.
func (f *fakeContext) countCalls(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeContext) Enable(c Capability) {
	f.record("enable %d", c)
	f.enabled[c] = true
}

func (f *fakeContext) Disable(c Capability) {
	f.record("disable %d", c)
	f.enabled[c] = false
}

func (f *fakeContext) ActiveTexture(unit int) {
	f.record("activeTexture %d", unit)
	f.activeUnit = unit
}

func (f *fakeContext) BindArrayBuffer(id BufferID) {
	f.record("bindArrayBuffer %d", id)
	f.boundBuffer = id
}

func (f *fakeContext) BindTexture(unit int, id TextureID) {
	f.record("bindTexture %d %d", unit, id)
	f.boundTextures[unit] = id
}

func (f *fakeContext) TexParameter(unit int, p TexParam, filter TextureFilter) {
	f.record("texParameter %d %d %v", unit, p, filter)
}

func (f *fakeContext) CreateBuffer() (BufferID, error) {
	if f.failCreate {
		return 0, errors.New("out of handles")
	}
	f.nextBuffer++
	f.record("createBuffer %d", f.nextBuffer)
	return BufferID(f.nextBuffer), nil
}

func (f *fakeContext) DeleteBuffer(id BufferID) {
	f.record("deleteBuffer %d", id)
}

func (f *fakeContext) BufferData(id BufferID, data []byte, usage BufferUsage) {
	f.record("bufferData %d %d %d", id, len(data), usage)
}

func (f *fakeContext) CreateTexture() (TextureID, error) {
	if f.failCreate {
		return 0, errors.New("out of handles")
	}
	f.nextTexture++
	f.record("createTexture %d", f.nextTexture)
	return TextureID(f.nextTexture), nil
}

func (f *fakeContext) DeleteTexture(id TextureID) {
	f.record("deleteTexture %d", id)
}

func (f *fakeContext) TexImage2D(id TextureID, width, height int, format TextureFormat, typ TextureType, pixels []byte) {
	f.record("texImage2D %d %dx%d %d", id, width, height, len(pixels))
}
