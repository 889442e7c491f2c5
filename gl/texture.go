package gl

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

type textureState struct {
	g      *GL
	id     TextureID
	width  int
	height int
	typ    TextureType
	format TextureFormat
	filter TextureFilter
	refs   int
}

// Texture is a shared handle to a context-side texture object plus its
// cached metadata. Retain hands out additional handles; the context
// object is deleted exactly once, when the last handle is released.
// Handles referring to the same context object compare equal, which is
// what lets a binding scope recognize "this texture is already bound"
// across independently held handles.
//
// The filter lives here rather than in the shared settings cache: it is a
// property of the texture object itself in the underlying graphics model
// and survives any number of binds and unbinds.
type Texture struct {
	shared *textureState
}

func newTexture(g *GL, width, height int, typ TextureType, format TextureFormat, pixels []byte) (*Texture, error) {
	id, err := g.ctx.CreateTexture()
	if err != nil {
		return nil, fmt.Errorf("gl: creating texture: %w", err)
	}
	t := &Texture{shared: &textureState{
		g:      g,
		id:     id,
		width:  width,
		height: height,
		typ:    typ,
		format: format,
		refs:   1,
	}}
	g.Apply(Settings().Texture(0, t), func() {
		g.ctx.TexImage2D(id, width, height, format, typ, pixels)
	})
	Logger().Debug("created texture", "id", uint32(id), "width", width, "height", height)
	return t, nil
}

// NewTexture creates a texture of the given size with no initial content.
func NewTexture(g *GL, width, height int, typ TextureType, format TextureFormat) (*Texture, error) {
	return newTexture(g, width, height, typ, format, nil)
}

// NewTextureFromBytes creates a texture from raw pixel data, which must
// be exactly width*height pixels in the given format and type.
func NewTextureFromBytes(g *GL, width, height int, typ TextureType, format TextureFormat, pixels []byte) (*Texture, error) {
	want := width * height * format.channels() * typ.byteSize()
	if len(pixels) != want {
		return nil, fmt.Errorf("gl: texture data is %d bytes, want %d for %dx%d", len(pixels), want, width, height)
	}
	return newTexture(g, width, height, typ, format, pixels)
}

// NewTextureFromImage creates an RGBA byte texture of the given size from
// any image, converting and, when the sizes differ, scaling with a
// bilinear kernel.
func NewTextureFromImage(g *GL, width, height int, img image.Image) (*Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("gl: texture image is nil")
	}
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	if b := img.Bounds(); b.Dx() == width && b.Dy() == height {
		xdraw.Copy(rgba, image.Point{}, img, b, xdraw.Src, nil)
	} else {
		xdraw.BiLinear.Scale(rgba, rgba.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	}
	return newTexture(g, width, height, TypeByte, FormatRGBA, rgba.Pix)
}

func (t TextureType) byteSize() int {
	if t == TypeFloat {
		return 4
	}
	return 1
}

// ID returns the underlying context handle.
func (t *Texture) ID() TextureID {
	return t.shared.id
}

func (t *Texture) Width() int            { return t.shared.width }
func (t *Texture) Height() int           { return t.shared.height }
func (t *Texture) Type() TextureType     { return t.shared.typ }
func (t *Texture) Format() TextureFormat { return t.shared.format }

// Size returns the texture's width and height.
func (t *Texture) Size() (int, int) {
	return t.shared.width, t.shared.height
}

// Filter returns the texture's current sampling filter.
func (t *Texture) Filter() TextureFilter {
	return t.shared.filter
}

// SetFilter changes the texture's sampling filter. Setting the filter it
// already has does nothing. Otherwise the texture is bound to unit 0,
// the mag and min filter parameters are set, the cached filter is
// updated, and whatever was bound to unit 0 before is rebound.
func (t *Texture) SetFilter(f TextureFilter) {
	t.alive("SetFilter")
	if t.shared.filter == f {
		return
	}
	g := t.shared.g
	g.Apply(Settings().Texture(0, t), func() {
		g.ctx.TexParameter(0, TextureMagFilter, f)
		g.ctx.TexParameter(0, TextureMinFilter, f)
		t.shared.filter = f
	})
}

// Retain returns a new handle sharing ownership of the same texture.
func (t *Texture) Retain() *Texture {
	t.alive("Retain")
	t.shared.refs++
	return &Texture{shared: t.shared}
}

// Release drops this handle's share of ownership. The last release
// deletes the context-side texture.
func (t *Texture) Release() {
	t.alive("Release")
	t.shared.refs--
	if t.shared.refs == 0 {
		t.shared.g.ctx.DeleteTexture(t.shared.id)
		Logger().Debug("deleted texture", "id", uint32(t.shared.id))
	}
}

// Equal reports whether both handles refer to the same context-side
// texture.
func (t *Texture) Equal(o *Texture) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.shared.id == o.shared.id
}

func (t *Texture) alive(op string) {
	if t.shared.refs <= 0 {
		panic(fmt.Sprintf("gl: Texture.%s on released texture %d", op, t.shared.id))
	}
}
