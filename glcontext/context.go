// Package glcontext implements the gl.Context interface on a real OpenGL
// 4.1 core context via go-gl. A context (GLFW window or otherwise) must be
// current on the calling thread before New is called, and all later calls
// must come from that same thread.
package glcontext

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	glstate "github.com/richinsley/goglscope/gl"
)

// Context issues OpenGL calls for the scoped state layer. It keeps its own
// mirror of the active texture unit so that BindTexture and TexParameter
// can target an arbitrary unit without leaving the active-unit selection
// changed behind the caller's back.
type Context struct {
	activeUnit int
}

// New loads the OpenGL function pointers for the current context.
func New() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("glcontext: initializing OpenGL: %w", err)
	}
	return &Context{}, nil
}

func capability(c glstate.Capability) uint32 {
	switch c {
	case glstate.CapBlend:
		return gl.BLEND
	case glstate.CapDepthTest:
		return gl.DEPTH_TEST
	}
	panic(fmt.Sprintf("glcontext: unknown capability %d", c))
}

func (c *Context) Enable(cap glstate.Capability) {
	gl.Enable(capability(cap))
}

func (c *Context) Disable(cap glstate.Capability) {
	gl.Disable(capability(cap))
}

func (c *Context) ActiveTexture(unit int) {
	c.activeUnit = unit
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
}

// withUnit runs f with the given unit selected, then reselects the unit
// the caller had active.
func (c *Context) withUnit(unit int, f func()) {
	if unit != c.activeUnit {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	}
	f()
	if unit != c.activeUnit {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(c.activeUnit))
	}
}

func (c *Context) BindArrayBuffer(id glstate.BufferID) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(id))
}

func (c *Context) BindTexture(unit int, id glstate.TextureID) {
	c.withUnit(unit, func() {
		gl.BindTexture(gl.TEXTURE_2D, uint32(id))
	})
}

func (c *Context) TexParameter(unit int, p glstate.TexParam, f glstate.TextureFilter) {
	var pname uint32
	switch p {
	case glstate.TextureMagFilter:
		pname = gl.TEXTURE_MAG_FILTER
	case glstate.TextureMinFilter:
		pname = gl.TEXTURE_MIN_FILTER
	default:
		panic(fmt.Sprintf("glcontext: unknown texture parameter %d", p))
	}
	value := int32(gl.LINEAR)
	if f == glstate.FilterNearest {
		value = int32(gl.NEAREST)
	}
	c.withUnit(unit, func() {
		gl.TexParameteri(gl.TEXTURE_2D, pname, value)
	})
}

func (c *Context) CreateBuffer() (glstate.BufferID, error) {
	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		return 0, fmt.Errorf("glcontext: context refused to allocate a buffer")
	}
	return glstate.BufferID(id), nil
}

func (c *Context) DeleteBuffer(id glstate.BufferID) {
	u := uint32(id)
	gl.DeleteBuffers(1, &u)
}

func (c *Context) BufferData(id glstate.BufferID, data []byte, usage glstate.BufferUsage) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data), ptr, bufferUsage(usage))
}

func bufferUsage(u glstate.BufferUsage) uint32 {
	switch u {
	case glstate.UsageStream:
		return gl.STREAM_DRAW
	case glstate.UsageDynamic:
		return gl.DYNAMIC_DRAW
	default:
		return gl.STATIC_DRAW
	}
}

func (c *Context) CreateTexture() (glstate.TextureID, error) {
	var id uint32
	gl.GenTextures(1, &id)
	if id == 0 {
		return 0, fmt.Errorf("glcontext: context refused to allocate a texture")
	}
	return glstate.TextureID(id), nil
}

func (c *Context) DeleteTexture(id glstate.TextureID) {
	u := uint32(id)
	gl.DeleteTextures(1, &u)
}

// texFormats maps a portable (format, type) pair to the core-profile
// internal format, pixel format and pixel type. The legacy alpha and
// luminance layouts land on the single- and two-channel core formats.
func texFormats(format glstate.TextureFormat, typ glstate.TextureType) (internal int32, pixFormat, pixType uint32) {
	isFloat := typ == glstate.TypeFloat
	pixType = gl.UNSIGNED_BYTE
	if isFloat {
		pixType = gl.FLOAT
	}
	switch format {
	case glstate.FormatAlpha, glstate.FormatLuminance:
		pixFormat = gl.RED
		internal = gl.R8
		if isFloat {
			internal = gl.R32F
		}
	case glstate.FormatLuminanceAlpha:
		pixFormat = gl.RG
		internal = gl.RG8
		if isFloat {
			internal = gl.RG32F
		}
	case glstate.FormatRGB:
		pixFormat = gl.RGB
		internal = gl.RGB8
		if isFloat {
			internal = gl.RGB32F
		}
	default:
		pixFormat = gl.RGBA
		internal = gl.RGBA8
		if isFloat {
			internal = gl.RGBA32F
		}
	}
	return internal, pixFormat, pixType
}

func (c *Context) TexImage2D(id glstate.TextureID, width, height int, format glstate.TextureFormat, typ glstate.TextureType, pixels []byte) {
	internal, pixFormat, pixType := texFormats(format, typ)
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = gl.Ptr(pixels)
	}
	// The caller binds id to unit 0 for the duration of the upload, so
	// the write must go through unit 0's TEXTURE_2D target no matter
	// which unit is currently active.
	c.withUnit(0, func() {
		gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(width), int32(height), 0, pixFormat, pixType, ptr)
	})
}
