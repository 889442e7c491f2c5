// Package gl provides scoped, cached, composable state management for an
// immediate-mode graphics context.
//
// A graphics context is a bind-based state machine: blending on or off,
// one active texture unit, one bound buffer, one bound texture per unit.
// Instead of mutating that global state imperatively, callers describe the
// state a span of work needs and run the work inside a scope:
//
//	g.Apply(gl.Settings().Blend(true).Texture(0, tex), func() {
//	    // blending is on and tex is bound to unit 0 here
//	})
//
// The wrapper caches the last-applied value of every aspect, so entering a
// scope issues context calls only for the aspects that actually change,
// and leaving a scope restores exactly the previous state — including on
// panic. Scopes nest arbitrarily and unwind in reverse order of entry.
package gl

// GL wraps a Context together with the settings cache that mirrors its
// state. Create one GL per context and route every state change through
// it; out-of-band context mutation invalidates the cache.
//
// GL and everything reached through it is confined to a single goroutine,
// the same way the underlying context is confined to its thread.
type GL struct {
	ctx   Context
	cache settingsCache
}

// New wraps a freshly created context. The cache starts at the context's
// documented defaults (blending and depth testing disabled, unit 0
// active, nothing bound), so the context must still be in that state.
func New(ctx Context) *GL {
	return &GL{ctx: ctx}
}

// Context returns the wrapped context, for draw calls and other
// operations that do not touch tracked state.
func (g *GL) Context() Context {
	return g.ctx
}

// Apply runs work with the given setting in effect, then restores the
// previous state. Aspects whose requested value already matches the
// cache cost nothing.
func (g *GL) Apply(s Setting, work func()) {
	s.apply(g.ctx, &g.cache, work)
}

// With is Apply for work that produces a value.
func With[R any](g *GL, s Setting, work func() R) R {
	var result R
	g.Apply(s, func() {
		result = work()
	})
	return result
}
