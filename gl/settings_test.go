package gl

import (
	"fmt"
	"reflect"
	"testing"
)

// marker lets tests pin down exactly where in the call sequence the work
// function ran.
func marker(f *fakeContext) func() {
	return func() { f.record("work") }
}

func TestEmptySettingForwardsToWork(t *testing.T) {
	f := newFakeContext()
	g := New(f)

	ran := false
	g.Apply(Settings(), func() { ran = true })

	if !ran {
		t.Fatal("work did not run")
	}
	if len(f.calls) != 0 {
		t.Errorf("empty setting issued calls: %v", f.calls)
	}
}

func TestApplyNoOpWhenValueMatchesCache(t *testing.T) {
	f := newFakeContext()
	g := New(f)

	// All of these match a fresh context's defaults.
	s := Settings().Blend(false).DepthTest(false).ActiveTexture(0).ArrayBuffer(nil).Texture(3, nil)
	g.Apply(s, marker(f))

	want := []string{"work"}
	if !reflect.DeepEqual(f.calls, want) {
		t.Errorf("calls = %v, want %v", f.calls, want)
	}
}

func TestApplySetsAndRestores(t *testing.T) {
	f := newFakeContext()
	g := New(f)

	g.Apply(Settings().Blend(true), func() {
		f.record("work")
		if !f.enabled[CapBlend] {
			t.Error("blend not enabled during work")
		}
	})

	want := []string{
		fmt.Sprintf("enable %d", CapBlend),
		"work",
		fmt.Sprintf("disable %d", CapBlend),
	}
	if !reflect.DeepEqual(f.calls, want) {
		t.Errorf("calls = %v, want %v", f.calls, want)
	}
	if f.enabled[CapBlend] {
		t.Error("blend still enabled after scope")
	}
}

func TestCompositionOrder(t *testing.T) {
	f := newFakeContext()
	g := New(f)

	g.Apply(Settings().Blend(true).DepthTest(true), marker(f))

	want := []string{
		fmt.Sprintf("enable %d", CapBlend),
		fmt.Sprintf("enable %d", CapDepthTest),
		"work",
		fmt.Sprintf("disable %d", CapDepthTest),
		fmt.Sprintf("disable %d", CapBlend),
	}
	if !reflect.DeepEqual(f.calls, want) {
		t.Errorf("calls = %v, want %v", f.calls, want)
	}
}

func TestCompositionSkipsUnchangedAspect(t *testing.T) {
	f := newFakeContext()
	g := New(f)

	// Blend is already on in the outer scope, so the inner composed
	// setting must only touch depth testing.
	g.Apply(Settings().Blend(true), func() {
		f.reset()
		g.Apply(Settings().Blend(true).DepthTest(true), marker(f))

		want := []string{
			fmt.Sprintf("enable %d", CapDepthTest),
			"work",
			fmt.Sprintf("disable %d", CapDepthTest),
		}
		if !reflect.DeepEqual(f.calls, want) {
			t.Errorf("calls = %v, want %v", f.calls, want)
		}
		f.reset()
	})
}

func TestNestedOverrideRestoresEachLevel(t *testing.T) {
	f := newFakeContext()
	g := New(f)

	g.Apply(Settings().ActiveTexture(1), func() {
		g.Apply(Settings().ActiveTexture(2), func() {
			if f.activeUnit != 2 {
				t.Errorf("inner scope: active unit = %d, want 2", f.activeUnit)
			}
		})
		if f.activeUnit != 1 {
			t.Errorf("after inner scope: active unit = %d, want 1", f.activeUnit)
		}
		// Re-entering the outer value is now a no-op.
		f.reset()
		g.Apply(Settings().ActiveTexture(1), marker(f))
		if !reflect.DeepEqual(f.calls, []string{"work"}) {
			t.Errorf("re-entry issued calls: %v", f.calls)
		}
	})

	if f.activeUnit != 0 {
		t.Errorf("after outer scope: active unit = %d, want 0", f.activeUnit)
	}
}

func TestSameAspectComposedTwiceLastWins(t *testing.T) {
	f := newFakeContext()
	g := New(f)

	g.Apply(Settings().Blend(true).Blend(false), func() {
		if f.enabled[CapBlend] {
			t.Error("inner value should win during work")
		}
	})

	want := []string{
		fmt.Sprintf("enable %d", CapBlend),
		fmt.Sprintf("disable %d", CapBlend),
		fmt.Sprintf("enable %d", CapBlend),
		fmt.Sprintf("disable %d", CapBlend),
	}
	if !reflect.DeepEqual(f.calls, want) {
		t.Errorf("calls = %v, want %v", f.calls, want)
	}
	if f.enabled[CapBlend] {
		t.Error("blend still enabled after scope")
	}
}

func TestRestorationRunsOnPanic(t *testing.T) {
	f := newFakeContext()
	g := New(f)

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		g.Apply(Settings().Blend(true).ActiveTexture(4), func() {
			panic("boom")
		})
	}()

	if f.enabled[CapBlend] {
		t.Error("blend not restored after panic")
	}
	if f.activeUnit != 0 {
		t.Errorf("active unit = %d after panic, want 0", f.activeUnit)
	}

	// The cache must be restored too: re-applying the defaults is a no-op.
	f.reset()
	g.Apply(Settings().Blend(false).ActiveTexture(0), marker(f))
	if !reflect.DeepEqual(f.calls, []string{"work"}) {
		t.Errorf("cache not restored after panic, calls = %v", f.calls)
	}
}

func TestWithReturnsResult(t *testing.T) {
	f := newFakeContext()
	g := New(f)

	got := With(g, Settings().DepthTest(true), func() int {
		return 42
	})
	if got != 42 {
		t.Errorf("With returned %d, want 42", got)
	}
	if f.enabled[CapDepthTest] {
		t.Error("depth test still enabled after With")
	}
}

func TestChainedTextureFilterBindsAndRestores(t *testing.T) {
	f := newFakeContext()
	g := New(f)
	tex := newTestTexture(t, g)

	f.reset()
	g.Apply(Settings().TextureFilter(tex, FilterNearest), func() {
		f.record("work")
		if tex.Filter() != FilterNearest {
			t.Errorf("filter = %v during scope, want nearest", tex.Filter())
		}
		if f.boundTextures[0] != tex.ID() {
			t.Errorf("unit 0 bound to %d during scope, want %d", f.boundTextures[0], tex.ID())
		}
	})

	want := []string{
		"bindTexture 0 1",
		fmt.Sprintf("texParameter 0 %d %v", TextureMagFilter, FilterNearest),
		fmt.Sprintf("texParameter 0 %d %v", TextureMinFilter, FilterNearest),
		"work",
		fmt.Sprintf("texParameter 0 %d %v", TextureMagFilter, FilterLinear),
		fmt.Sprintf("texParameter 0 %d %v", TextureMinFilter, FilterLinear),
		"bindTexture 0 0",
	}
	if !reflect.DeepEqual(f.calls, want) {
		t.Errorf("calls = %v, want %v", f.calls, want)
	}
	if tex.Filter() != FilterLinear {
		t.Errorf("filter = %v after scope, want linear restored", tex.Filter())
	}
}

func TestChainedTextureFilterNoOpWhenCurrent(t *testing.T) {
	f := newFakeContext()
	g := New(f)
	tex := newTestTexture(t, g)

	f.reset()
	g.Apply(Settings().TextureFilter(tex, FilterLinear), marker(f))

	// The binding override still enters and exits, but the filter value
	// already matches the texture's cell, so no parameter calls.
	want := []string{"bindTexture 0 1", "work", "bindTexture 0 0"}
	if !reflect.DeepEqual(f.calls, want) {
		t.Errorf("calls = %v, want %v", f.calls, want)
	}
}

func TestBindingReleasedResourcePanics(t *testing.T) {
	f := newFakeContext()
	g := New(f)
	tex := newTestTexture(t, g)
	tex.Release()
	buf := newTestBuffer(t, g, []byte{1})
	buf.Release()

	cases := map[string]func(){
		"texture":        func() { Settings().Texture(0, tex) },
		"texture filter": func() { Settings().TextureFilter(tex, FilterNearest) },
		"array buffer":   func() { Settings().ArrayBuffer(buf) },
	}
	for name, chain := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("chaining a released %s did not panic", name)
				}
			}()
			chain()
		})
	}
}

func TestTextureUnitOutOfRangePanics(t *testing.T) {
	for _, unit := range []int{-1, MaxTextureUnits} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Texture(%d, nil) did not panic", unit)
				}
			}()
			Settings().Texture(unit, nil)
		}()
	}
}
