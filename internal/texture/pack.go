package texture

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeforge/internal/logger"
)

// PackLoader reads PNG textures from a resource pack directory or zip.
type PackLoader struct {
	fsys   fs.FS
	closer io.Closer
	source string
}

// OpenPack opens a resource pack. Paths ending in .zip are read as
// archives, anything else as a directory.
func OpenPack(path string) (*PackLoader, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		zr, err := zip.OpenReader(path)
		if err != nil {
			return nil, fmt.Errorf("opening resource pack %s: %w", path, err)
		}
		return &PackLoader{fsys: zr, closer: zr, source: path}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening resource pack %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("resource pack %s: not a directory or zip", path)
	}
	return &PackLoader{fsys: os.DirFS(path), source: path}, nil
}

// NewFSLoader returns a loader over an arbitrary file system.
func NewFSLoader(fsys fs.FS) *PackLoader {
	return &PackLoader{fsys: fsys, source: "fs"}
}

// LoadBatch decodes every requested texture.
func (p *PackLoader) LoadBatch(reqs []Request) []string {
	var missing []string
	for _, req := range reqs {
		if err := p.loadOne(req); err != nil {
			logger.Named("texture").Debug("texture not in pack",
				zap.String("pack", p.source),
				zap.String("path", req.Path),
				zap.Error(err))
			missing = append(missing, req.Ref)
		}
	}
	return missing
}

func (p *PackLoader) loadOne(req Request) error {
	data, err := fs.ReadFile(p.fsys, req.Path)
	if err != nil {
		return err
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decoding %s: %w", req.Path, err)
	}
	req.Texture.SetImage(img)
	return nil
}

// FS returns the file system textures are read from.
func (p *PackLoader) FS() fs.FS { return p.fsys }

// Close releases the archive, if any.
func (p *PackLoader) Close() error {
	if p.closer != nil {
		return p.closer.Close()
	}
	return nil
}
