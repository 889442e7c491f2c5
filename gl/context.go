package gl

// BufferID identifies a buffer object owned by the context.
// The zero value means "no buffer".
type BufferID uint32

// TextureID identifies a texture object owned by the context.
// The zero value means "no texture".
type TextureID uint32

// Capability is a context feature that can be enabled or disabled.
type Capability int

const (
	CapBlend Capability = iota
	CapDepthTest
)

// TexParam names a per-texture parameter set through TexParameter.
type TexParam int

const (
	TextureMagFilter TexParam = iota
	TextureMinFilter
)

// TextureFilter is the sampling filter of a texture.
// The zero value is FilterLinear, matching a freshly created texture.
type TextureFilter int

const (
	FilterLinear TextureFilter = iota
	FilterNearest
)

func (f TextureFilter) String() string {
	switch f {
	case FilterLinear:
		return "linear"
	case FilterNearest:
		return "nearest"
	}
	return "unknown"
}

// TextureType is the component type of a texture's pixel data.
type TextureType int

const (
	TypeByte TextureType = iota
	TypeFloat
)

// TextureFormat is the channel layout of a texture's pixel data.
type TextureFormat int

const (
	FormatAlpha TextureFormat = iota
	FormatLuminance
	FormatLuminanceAlpha
	FormatRGB
	FormatRGBA
)

// channels returns the number of color channels per pixel.
func (f TextureFormat) channels() int {
	switch f {
	case FormatAlpha, FormatLuminance:
		return 1
	case FormatLuminanceAlpha:
		return 2
	case FormatRGB:
		return 3
	case FormatRGBA:
		return 4
	}
	return 0
}

// BufferUsage is the usage hint passed along with buffer data uploads.
type BufferUsage int

const (
	// UsageStream: the data store contents will be modified once and used
	// at most a few times.
	UsageStream BufferUsage = iota
	// UsageStatic: the data store contents will be modified once and used
	// many times.
	UsageStatic
	// UsageDynamic: the data store contents will be modified repeatedly
	// and used many times.
	UsageDynamic
)

// Context defines the interface to an immediate-mode graphics context.
// Every call is synchronous and affects exactly the named aspect of
// context state; each state-changing call must be safe to repeat with
// the same arguments.
//
// All state mutation of the underlying context must go through a single
// *GL wrapping one Context, otherwise the wrapper's cache no longer
// mirrors the context and scoped restoration stops being meaningful.
type Context interface {
	// Enable and Disable flip a context capability.
	Enable(c Capability)
	Disable(c Capability)

	// ActiveTexture selects the active texture unit.
	ActiveTexture(unit int)

	// BindArrayBuffer binds id as the array-data buffer, or unbinds
	// when id is zero.
	BindArrayBuffer(id BufferID)

	// BindTexture binds id to the given texture unit, or unbinds when
	// id is zero. It must not change which unit is active.
	BindTexture(unit int, id TextureID)

	// TexParameter sets a parameter of the texture bound to the given
	// unit. It must not change which unit is active.
	TexParameter(unit int, p TexParam, f TextureFilter)

	// CreateBuffer allocates a buffer object.
	CreateBuffer() (BufferID, error)

	// DeleteBuffer releases a buffer object.
	DeleteBuffer(id BufferID)

	// BufferData uploads data to the buffer identified by id. The core
	// guarantees id is the currently bound array buffer for the duration
	// of the call.
	BufferData(id BufferID, data []byte, usage BufferUsage)

	// CreateTexture allocates a texture object.
	CreateTexture() (TextureID, error)

	// DeleteTexture releases a texture object.
	DeleteTexture(id TextureID)

	// TexImage2D uploads a full texture image to the texture identified
	// by id. The core guarantees id is bound to unit 0 for the duration
	// of the call. pixels may be nil to allocate without content.
	TexImage2D(id TextureID, width, height int, format TextureFormat, typ TextureType, pixels []byte)
}
