package texture

import (
	"path"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeforge/internal/logger"
)

// Request asks a Loader to fill Texture from the pack entry at Path.
type Request struct {
	Ref     string
	Path    string
	Texture *Texture
}

// Loader loads a batch of textures and reports the refs it could not load.
type Loader interface {
	LoadBatch(reqs []Request) (missing []string)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(reqs []Request) []string

// LoadBatch calls f.
func (f LoaderFunc) LoadBatch(reqs []Request) []string { return f(reqs) }

// Stats reports cache counters.
type Stats struct {
	Entries    int // distinct refs seen
	Loads      int // Loader.LoadBatch calls
	Loaded     int
	Unresolved int
	Missing    int
}

// Cache maps texture references to handles.
type Cache struct {
	loader    Loader
	namespace string

	mu      sync.Mutex
	entries map[string]*Texture
	loads   int
}

// NewCache creates a cache backed by loader. Refs without an explicit
// namespace prefix resolve under namespace.
func NewCache(loader Loader, namespace string) *Cache {
	if namespace == "" {
		namespace = "minecraft"
	}
	return &Cache{
		loader:    loader,
		namespace: namespace,
		entries:   make(map[string]*Texture),
	}
}

// Resolve returns the handle for ref, loading it on first sight.
func (c *Cache) Resolve(ref string) *Texture {
	return c.ResolveAll([]string{ref})[0]
}

// ResolveAll returns one handle per ref, in order. Refs seen for the first
// time are loaded in a single batch. The call returns once every returned
// handle is settled, including handles loaded by a concurrent caller.
func (c *Cache) ResolveAll(refs []string) []*Texture {
	out := make([]*Texture, len(refs))
	var batch []Request

	c.mu.Lock()
	for i, ref := range refs {
		if tex, ok := c.entries[ref]; ok {
			out[i] = tex
			continue
		}
		tex := newTexture(ref)
		c.entries[ref] = tex
		out[i] = tex

		if IsUnresolved(ref) {
			logger.Named("texture").Warn("unresolved texture reference", zap.String("ref", ref))
			tex.settle(StateUnresolved)
			continue
		}
		batch = append(batch, Request{Ref: ref, Path: c.PathFor(ref), Texture: tex})
	}
	if len(batch) > 0 {
		c.loads++
	}
	c.mu.Unlock()

	if len(batch) > 0 {
		c.load(batch)
	}

	for _, tex := range out {
		<-tex.ready
	}
	return out
}

// load runs one loader batch and settles every requested handle, even if
// the loader panics.
func (c *Cache) load(batch []Request) {
	log := logger.Named("texture")
	refs := make([]string, len(batch))
	for i, req := range batch {
		refs[i] = req.Ref
	}
	log.Debug("loading textures", zap.Strings("refs", refs))

	var missing []string
	defer func() {
		failed := make(map[string]bool, len(missing))
		for _, ref := range missing {
			failed[ref] = true
		}
		for _, req := range batch {
			if failed[req.Ref] || req.Texture.img == nil {
				log.Error("failed to load texture", zap.String("ref", req.Ref), zap.String("path", req.Path))
				req.Texture.img = nil
				req.Texture.settle(StateMissing)
				continue
			}
			req.Texture.settle(StateLoaded)
		}
	}()

	if c.loader != nil {
		missing = c.loader.LoadBatch(batch)
	}
}

// PathFor returns the resource pack path of ref: a "ns:name" ref resolves
// to assets/ns/textures/name.png, a bare ref uses the cache namespace.
func (c *Cache) PathFor(ref string) string {
	ns, name := c.namespace, ref
	if i := strings.IndexByte(ref, ':'); i >= 0 {
		ns, name = ref[:i], ref[i+1:]
	}
	return path.Join("assets", ns, "textures", name+".png")
}

// Stats returns a snapshot of the cache counters. Handles still loading
// are counted as entries only.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{Entries: len(c.entries), Loads: c.loads}
	for _, tex := range c.entries {
		select {
		case <-tex.ready:
		default:
			continue
		}
		switch tex.state {
		case StateLoaded:
			s.Loaded++
		case StateUnresolved:
			s.Unresolved++
		case StateMissing:
			s.Missing++
		}
	}
	return s
}
