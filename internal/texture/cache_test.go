package texture

import (
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"testing"
)

// countingLoader fills every request with a 1x1 image unless the ref is
// listed in fail.
type countingLoader struct {
	calls atomic.Int32
	refs  []string
	mu    sync.Mutex
	fail  map[string]bool
	gate  chan struct{}
}

func (l *countingLoader) LoadBatch(reqs []Request) []string {
	l.calls.Add(1)
	if l.gate != nil {
		<-l.gate
	}
	var missing []string
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, req := range reqs {
		l.refs = append(l.refs, req.Ref)
		if l.fail[req.Ref] {
			missing = append(missing, req.Ref)
			continue
		}
		img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
		req.Texture.SetImage(img)
	}
	return missing
}

func TestResolveIsIdempotent(t *testing.T) {
	loader := &countingLoader{}
	cache := NewCache(loader, "")

	a := cache.Resolve("block/stone")
	b := cache.Resolve("block/stone")

	if a != b {
		t.Error("expected identical handles for the same ref")
	}
	if n := loader.calls.Load(); n != 1 {
		t.Errorf("expected 1 loader call, got %d", n)
	}
	if a.State() != StateLoaded {
		t.Errorf("expected loaded, got %s", a.State())
	}
	if a.Image() == Placeholder() {
		t.Error("loaded texture should not use the placeholder")
	}
}

func TestResolveAllBatchesNewRefs(t *testing.T) {
	loader := &countingLoader{}
	cache := NewCache(loader, "")

	texs := cache.ResolveAll([]string{"block/stone", "block/dirt", "block/stone"})
	if len(texs) != 3 {
		t.Fatalf("expected 3 handles, got %d", len(texs))
	}
	if texs[0] != texs[2] {
		t.Error("duplicate refs should share a handle")
	}
	if n := loader.calls.Load(); n != 1 {
		t.Errorf("expected 1 batch, got %d", n)
	}
	if len(loader.refs) != 2 {
		t.Errorf("expected 2 refs loaded, got %v", loader.refs)
	}

	cache.ResolveAll([]string{"block/dirt", "block/sand"})
	if n := loader.calls.Load(); n != 2 {
		t.Errorf("expected 2 batches, got %d", n)
	}
	if len(loader.refs) != 3 {
		t.Errorf("only the new ref should be loaded, got %v", loader.refs)
	}
}

func TestUnresolvedNeverLoads(t *testing.T) {
	loader := &countingLoader{}
	cache := NewCache(loader, "")

	tex := cache.Resolve("#side")

	if n := loader.calls.Load(); n != 0 {
		t.Errorf("expected no loader calls, got %d", n)
	}
	if tex.State() != StateUnresolved {
		t.Errorf("expected unresolved, got %s", tex.State())
	}
	if tex.Image() != Placeholder() {
		t.Error("unresolved texture should use the placeholder")
	}
}

func TestMissingIsCached(t *testing.T) {
	loader := &countingLoader{fail: map[string]bool{"block/nope": true}}
	cache := NewCache(loader, "")

	a := cache.Resolve("block/nope")
	b := cache.Resolve("block/nope")

	if a != b {
		t.Error("missing texture should stay cached")
	}
	if n := loader.calls.Load(); n != 1 {
		t.Errorf("expected 1 loader call, got %d", n)
	}
	if a.State() != StateMissing {
		t.Errorf("expected missing, got %s", a.State())
	}
	if a.Image() != Placeholder() {
		t.Error("missing texture should use the placeholder")
	}
}

func TestSilentLoaderFailureIsMissing(t *testing.T) {
	cache := NewCache(LoaderFunc(func([]Request) []string { return nil }), "")
	if s := cache.Resolve("block/stone").State(); s != StateMissing {
		t.Errorf("expected missing when the loader set no image, got %s", s)
	}
}

func TestConcurrentResolveLoadsOnce(t *testing.T) {
	loader := &countingLoader{gate: make(chan struct{})}
	cache := NewCache(loader, "")

	const workers = 16
	results := make([]*Texture, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cache.Resolve("block/oak_planks")
		}(i)
	}

	close(loader.gate)
	wg.Wait()

	if n := loader.calls.Load(); n != 1 {
		t.Errorf("expected exactly 1 loader call, got %d", n)
	}
	for i, tex := range results {
		if tex != results[0] {
			t.Errorf("worker %d observed a different handle", i)
		}
		if tex.State() != StateLoaded {
			t.Errorf("worker %d observed state %s", i, tex.State())
		}
	}
}

func TestStats(t *testing.T) {
	loader := &countingLoader{fail: map[string]bool{"block/nope": true}}
	cache := NewCache(loader, "")
	cache.ResolveAll([]string{"block/stone", "block/nope", "#all"})

	got := cache.Stats()
	want := Stats{Entries: 3, Loads: 1, Loaded: 1, Unresolved: 1, Missing: 1}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestPathFor(t *testing.T) {
	cache := NewCache(nil, "minecraft")
	tests := []struct {
		ref  string
		want string
	}{
		{"block/stone", "assets/minecraft/textures/block/stone.png"},
		{"mymod:item/gem", "assets/mymod/textures/item/gem.png"},
		{"entity/armorstand/wood", "assets/minecraft/textures/entity/armorstand/wood.png"},
	}
	for _, tt := range tests {
		if got := cache.PathFor(tt.ref); got != tt.want {
			t.Errorf("PathFor(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestSetImageConvertsToNRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 8))
	src.Set(5, 5, color.RGBA{R: 255, A: 255})

	tex := newTexture("x")
	tex.SetImage(src)
	tex.settle(StateLoaded)

	img := tex.Image()
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 3 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if c := img.NRGBAAt(0, 0); c.R != 255 || c.A != 255 {
		t.Errorf("pixel (0,0) = %v, want red", c)
	}
}

func TestSetImageKeepsFirstAnimationFrame(t *testing.T) {
	strip := image.NewNRGBA(image.Rect(0, 0, 4, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 4; x++ {
			strip.SetNRGBA(x, y, color.NRGBA{G: uint8(y / 4 * 100), A: 255})
		}
	}

	tex := newTexture("block/water_still")
	tex.SetImage(strip)
	tex.settle(StateLoaded)

	img := tex.Image()
	if img.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Fatalf("bounds = %v, want 4x4 first frame", img.Bounds())
	}
	if c := img.NRGBAAt(3, 3); c.G != 0 {
		t.Errorf("pixel (3,3) = %v, want first frame", c)
	}
}

func TestDetachedUsesPlaceholder(t *testing.T) {
	tex := Detached("block/stone")
	if tex.Ref() != "block/stone" {
		t.Errorf("Ref() = %q", tex.Ref())
	}
	if tex.State() != StateUnresolved {
		t.Errorf("State() = %s, want unresolved", tex.State())
	}
	if tex.Image() != Placeholder() {
		t.Error("detached texture should render with the placeholder")
	}
}
