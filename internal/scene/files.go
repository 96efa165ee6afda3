package scene

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/cubeforge/internal/logger"
	"github.com/Faultbox/cubeforge/pkg/document"
)

// Format is a scene file encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatJSONZstd
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatJSONZstd:
		return "json.zst"
	default:
		return "unknown"
	}
}

// FormatFor picks the format from a file name.
func FormatFor(path string) (Format, error) {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".json.zst"):
		return FormatJSONZstd, nil
	case strings.HasSuffix(name, ".json"):
		return FormatJSON, nil
	case strings.HasSuffix(name, ".yaml"), strings.HasSuffix(name, ".yml"):
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("unknown scene format: %s", path)
	}
}

// Encode serializes the scene document.
func Encode(s *Scene, format Format) ([]byte, error) {
	doc := s.Document()
	switch format {
	case FormatJSON:
		data, err := doc.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encoding scene: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encoding scene: %w", err)
		}
		return data, nil
	case FormatJSONZstd:
		raw, err := doc.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encoding scene: %w", err)
		}
		var buf bytes.Buffer
		enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		if _, err := enc.Write(raw); err != nil {
			enc.Close()
			return nil, fmt.Errorf("compressing scene: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("compressing scene: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown scene format %d", format)
	}
}

// Decode parses a scene. See FromDocument for the handling of bad records.
func Decode(data []byte, format Format, validate bool) (*Scene, int, error) {
	var (
		doc *document.Object
		err error
	)
	switch format {
	case FormatJSON:
		doc, err = document.ParseJSONObject(data)
	case FormatYAML:
		doc, err = document.ParseYAMLObject(data)
	case FormatJSONZstd:
		var dec *zstd.Decoder
		dec, err = zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, 0, err
		}
		defer dec.Close()
		var raw []byte
		if raw, err = io.ReadAll(dec); err != nil {
			return nil, 0, fmt.Errorf("decompressing scene: %w", err)
		}
		doc, err = document.ParseJSONObject(raw)
	default:
		return nil, 0, fmt.Errorf("unknown scene format %d", format)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return FromDocument(doc, validate)
}

// Load reads a scene file, picking the format from its name.
func Load(ctx context.Context, path string, validate bool) (*Scene, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	s, dropped, err := Decode(data, format, validate)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	logger.Named("scene").Info("scene loaded",
		zap.String("path", path),
		zap.Int("entities", s.Len()),
		zap.Int("dropped", dropped))
	return s, nil
}

// Save writes a scene file, picking the format from its name.
func Save(ctx context.Context, path string, s *Scene) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Encode(s, format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating scene dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing scene: %w", err)
	}
	return nil
}
