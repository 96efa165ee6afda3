// Package scene holds ordered entity collections and their file formats.
package scene

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeforge/internal/entity"
	"github.com/Faultbox/cubeforge/internal/logger"
	"github.com/Faultbox/cubeforge/internal/render"
	"github.com/Faultbox/cubeforge/pkg/math"
)

// Scene is an ordered list of entities.
type Scene struct {
	Name     string
	Entities []entity.Entity
}

// New creates an empty scene.
func New(name string) *Scene {
	return &Scene{Name: name}
}

// Add appends entities.
func (s *Scene) Add(entities ...entity.Entity) {
	s.Entities = append(s.Entities, entities...)
}

// Len returns the number of entities.
func (s *Scene) Len() int {
	return len(s.Entities)
}

// CountByKind returns the number of entities of each kind.
func (s *Scene) CountByKind() map[entity.Kind]int {
	counts := make(map[entity.Kind]int)
	for _, e := range s.Entities {
		counts[e.Kind()]++
	}
	return counts
}

// Primitives builds every entity's triangles on up to workers goroutines
// and concatenates them in entity order. Cancelling ctx stops handing out
// entities; entities already in progress run to completion.
func (s *Scene) Primitives(ctx context.Context, env *entity.Env, offset math.Vec3, workers int) ([]render.Triangle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(s.Entities) {
		workers = len(s.Entities)
	}

	parts := make([][]render.Triangle, len(s.Entities))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				parts[i] = s.Entities[i].Primitives(env, offset)
			}
		}()
	}

	var err error
feed:
	for i := range s.Entities {
		select {
		case jobs <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]render.Triangle, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}

	logger.Named("scene").Debug("built scene primitives",
		zap.String("scene", s.Name),
		zap.Int("entities", len(s.Entities)),
		zap.Int("triangles", total),
		zap.Int("workers", workers))
	return out, nil
}
