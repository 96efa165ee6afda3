package assets

import (
	"errors"
	"io/fs"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeforge/internal/config"
	"github.com/Faultbox/cubeforge/internal/entity"
	"github.com/Faultbox/cubeforge/internal/logger"
	"github.com/Faultbox/cubeforge/internal/model"
	"github.com/Faultbox/cubeforge/internal/texture"
)

// Workspace bundles everything needed to compile models and render
// entities against one set of packs.
type Workspace struct {
	Packs    *Manager
	Textures *texture.Cache
	Compiler *model.Compiler
	Items    *model.Library
	Env      *entity.Env
	UVScale  float64
}

// Open layers the configured resource pack and item model directory.
// A pack path that does not exist is skipped with a warning; every
// texture then renders as the placeholder.
func Open(cfg config.AssetsConfig) (*Workspace, error) {
	packs := NewManager()
	for _, path := range []string{cfg.ResourcePack, cfg.ItemModels} {
		if path == "" {
			continue
		}
		if err := packs.AddPack(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Named("assets").Warn("resource pack not found", zap.String("path", path))
				continue
			}
			packs.Close()
			return nil, err
		}
		logger.Named("assets").Info("resource pack added", zap.String("path", path))
	}
	return NewWorkspace(packs, cfg.Namespace, cfg.UVScale), nil
}

// NewWorkspace wires a workspace over packs.
func NewWorkspace(packs *Manager, namespace string, uvScale float64) *Workspace {
	if uvScale <= 0 {
		uvScale = model.DefaultUVScale
	}
	textures := texture.NewCache(texture.NewFSLoader(packs), namespace)
	compiler := model.NewCompiler(textures)
	items := model.NewLibrary(compiler, packs, namespace, uvScale)

	env := entity.NewEnv(textures, items)
	env.UVScale = uvScale

	return &Workspace{
		Packs:    packs,
		Textures: textures,
		Compiler: compiler,
		Items:    items,
		Env:      env,
		UVScale:  uvScale,
	}
}

// Close releases the packs.
func (w *Workspace) Close() error {
	return w.Packs.Close()
}
