package gl

import "fmt"

// MaxTextureUnits is the number of texture units tracked by the cache.
const MaxTextureUnits = 16

// settingsCache mirrors the last-applied value of every tracked aspect of
// context state. It is default-initialized to the documented state of a
// freshly created context: blending and depth testing off, unit 0 active,
// nothing bound anywhere.
//
// The cache is owned by a GL and written only by the scope executor. It is
// never reconciled against the real context, so it stays correct exactly
// as long as all state changes go through scopes on the same GL.
type settingsCache struct {
	blend      bool
	depthTest  bool
	activeUnit int
	buffer     BufferID
	textures   [MaxTextureUnits]TextureID
}

// setting is the contract every state aspect implements. cached and store
// touch only the cache; set touches only the context. apply runs work with
// the aspect temporarily overridden, via the shared scope executor.
type setting interface {
	set(ctx Context)
	cached(c *settingsCache) setting
	store(c *settingsCache)
	equal(o setting) bool
	apply(ctx Context, c *settingsCache, work func())
}

// runScoped is the scope executor shared by every leaf setting. If the
// requested value already matches the cache the context is not touched at
// all. Otherwise the new value is applied for the duration of work and the
// previous value restored afterward, on every exit path.
func runScoped(s setting, ctx Context, c *settingsCache, work func()) {
	old := s.cached(c)
	if s.equal(old) {
		work()
		return
	}
	s.store(c)
	s.set(ctx)
	defer func() {
		old.set(ctx)
		old.store(c)
	}()
	work()
}

// Setting describes desired context state for a bounded span of work.
// The zero value requests nothing. Settings are immutable; each chaining
// method returns a new Setting with one more aspect nested inside the
// previous ones.
type Setting struct {
	s setting
}

// Settings returns the empty Setting, the usual starting point for
// chaining.
func Settings() Setting {
	return Setting{}
}

func (a Setting) compose(next setting) Setting {
	if a.s == nil {
		return Setting{s: next}
	}
	return Setting{s: composedSetting{left: a.s, right: next}}
}

// Blend adds a blend-enabled override.
func (a Setting) Blend(on bool) Setting {
	return a.compose(blendSetting(on))
}

// DepthTest adds a depth-test-enabled override.
func (a Setting) DepthTest(on bool) Setting {
	return a.compose(depthTestSetting(on))
}

// ActiveTexture adds an active-texture-unit override.
func (a Setting) ActiveTexture(unit int) Setting {
	checkUnit(unit)
	return a.compose(activeTextureSetting(unit))
}

// ArrayBuffer adds an array-buffer binding override. A nil buffer
// requests the unbound state. The buffer must not have been released.
func (a Setting) ArrayBuffer(b *ArrayBuffer) Setting {
	var id BufferID
	if b != nil {
		b.alive("Bind")
		id = b.ID()
	}
	return a.compose(arrayBufferSetting(id))
}

// Texture adds a texture binding override at the given unit. A nil
// texture requests the unbound state for that unit. The texture must
// not have been released.
func (a Setting) Texture(unit int, t *Texture) Setting {
	checkUnit(unit)
	var id TextureID
	if t != nil {
		t.alive("Bind")
		id = t.ID()
	}
	return a.compose(textureSetting{unit: unit, id: id})
}

// TextureFilter adds a filter override for the given texture. Unlike the
// other aspects its cached value lives on the texture itself, since the
// filter is a property of the texture object rather than of a binding
// point. The override binds the texture to unit 0 for its duration, so
// the parameter calls always target this texture regardless of ambient
// bindings.
func (a Setting) TextureFilter(t *Texture, f TextureFilter) Setting {
	if t == nil {
		panic("gl: TextureFilter requires a texture")
	}
	t.alive("Filter")
	return a.compose(composedSetting{
		left:  textureSetting{unit: 0, id: t.ID()},
		right: filterSetting{tex: t, filter: f},
	})
}

func (a Setting) apply(ctx Context, c *settingsCache, work func()) {
	if a.s == nil {
		work()
		return
	}
	a.s.apply(ctx, c, work)
}

func checkUnit(unit int) {
	if unit < 0 || unit >= MaxTextureUnits {
		panic(fmt.Sprintf("gl: texture unit %d out of range [0, %d)", unit, MaxTextureUnits))
	}
}

// composedSetting nests two settings: left is entered before right and
// exited after it, so chained aspects unwind in exact reverse order of
// application.
type composedSetting struct {
	left, right setting
}

func (s composedSetting) set(ctx Context) {
	s.left.set(ctx)
	s.right.set(ctx)
}

func (s composedSetting) cached(c *settingsCache) setting {
	return composedSetting{left: s.left.cached(c), right: s.right.cached(c)}
}

func (s composedSetting) store(c *settingsCache) {
	s.left.store(c)
	s.right.store(c)
}

func (s composedSetting) equal(o setting) bool {
	other, ok := o.(composedSetting)
	return ok && s.left.equal(other.left) && s.right.equal(other.right)
}

func (s composedSetting) apply(ctx Context, c *settingsCache, work func()) {
	s.left.apply(ctx, c, func() {
		s.right.apply(ctx, c, work)
	})
}

type blendSetting bool

func (s blendSetting) set(ctx Context) {
	if s {
		ctx.Enable(CapBlend)
	} else {
		ctx.Disable(CapBlend)
	}
}

func (s blendSetting) cached(c *settingsCache) setting { return blendSetting(c.blend) }
func (s blendSetting) store(c *settingsCache)          { c.blend = bool(s) }

func (s blendSetting) equal(o setting) bool {
	other, ok := o.(blendSetting)
	return ok && s == other
}

func (s blendSetting) apply(ctx Context, c *settingsCache, work func()) {
	runScoped(s, ctx, c, work)
}

type depthTestSetting bool

func (s depthTestSetting) set(ctx Context) {
	if s {
		ctx.Enable(CapDepthTest)
	} else {
		ctx.Disable(CapDepthTest)
	}
}

func (s depthTestSetting) cached(c *settingsCache) setting { return depthTestSetting(c.depthTest) }
func (s depthTestSetting) store(c *settingsCache)          { c.depthTest = bool(s) }

func (s depthTestSetting) equal(o setting) bool {
	other, ok := o.(depthTestSetting)
	return ok && s == other
}

func (s depthTestSetting) apply(ctx Context, c *settingsCache, work func()) {
	runScoped(s, ctx, c, work)
}

type activeTextureSetting int

func (s activeTextureSetting) set(ctx Context) {
	ctx.ActiveTexture(int(s))
}

func (s activeTextureSetting) cached(c *settingsCache) setting {
	return activeTextureSetting(c.activeUnit)
}

func (s activeTextureSetting) store(c *settingsCache) { c.activeUnit = int(s) }

func (s activeTextureSetting) equal(o setting) bool {
	other, ok := o.(activeTextureSetting)
	return ok && s == other
}

func (s activeTextureSetting) apply(ctx Context, c *settingsCache, work func()) {
	runScoped(s, ctx, c, work)
}

type arrayBufferSetting BufferID

func (s arrayBufferSetting) set(ctx Context) {
	ctx.BindArrayBuffer(BufferID(s))
}

func (s arrayBufferSetting) cached(c *settingsCache) setting { return arrayBufferSetting(c.buffer) }
func (s arrayBufferSetting) store(c *settingsCache)          { c.buffer = BufferID(s) }

func (s arrayBufferSetting) equal(o setting) bool {
	other, ok := o.(arrayBufferSetting)
	return ok && s == other
}

func (s arrayBufferSetting) apply(ctx Context, c *settingsCache, work func()) {
	runScoped(s, ctx, c, work)
}

// textureSetting binds a texture (by identity) to one unit. Identity is
// the underlying handle, so independently held wrappers of the same
// texture compare as "already bound".
type textureSetting struct {
	unit int
	id   TextureID
}

func (s textureSetting) set(ctx Context) {
	ctx.BindTexture(s.unit, s.id)
}

func (s textureSetting) cached(c *settingsCache) setting {
	return textureSetting{unit: s.unit, id: c.textures[s.unit]}
}

func (s textureSetting) store(c *settingsCache) { c.textures[s.unit] = s.id }

func (s textureSetting) equal(o setting) bool {
	other, ok := o.(textureSetting)
	return ok && s == other
}

func (s textureSetting) apply(ctx Context, c *settingsCache, work func()) {
	runScoped(s, ctx, c, work)
}

// filterSetting overrides a texture's filter. Its cache is the filter
// cell on the texture itself, not a slot in settingsCache: the filter
// survives binds and unbinds because it belongs to the texture object in
// the underlying graphics model.
type filterSetting struct {
	tex    *Texture
	filter TextureFilter
}

func (s filterSetting) set(ctx Context) {
	ctx.TexParameter(0, TextureMagFilter, s.filter)
	ctx.TexParameter(0, TextureMinFilter, s.filter)
}

func (s filterSetting) cached(c *settingsCache) setting {
	return filterSetting{tex: s.tex, filter: s.tex.Filter()}
}

func (s filterSetting) store(c *settingsCache) { s.tex.shared.filter = s.filter }

func (s filterSetting) equal(o setting) bool {
	other, ok := o.(filterSetting)
	return ok && s.tex.ID() == other.tex.ID() && s.filter == other.filter
}

func (s filterSetting) apply(ctx Context, c *settingsCache, work func()) {
	runScoped(s, ctx, c, work)
}
