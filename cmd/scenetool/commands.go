package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeforge/internal/assets"
	"github.com/Faultbox/cubeforge/internal/config"
	"github.com/Faultbox/cubeforge/internal/entity"
	"github.com/Faultbox/cubeforge/internal/logger"
	"github.com/Faultbox/cubeforge/internal/render"
	"github.com/Faultbox/cubeforge/internal/scene"
	"github.com/Faultbox/cubeforge/pkg/math"
)

func cmdInfo(ctx context.Context, cfg *config.Config, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: scenetool info <scene>")
		return 1
	}

	s, err := scene.Load(ctx, args[0], cfg.Scene.Validate)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Scene:    %s\n", s.Name)
	fmt.Printf("Entities: %d\n", s.Len())

	counts := s.CountByKind()
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Printf("  %-12s %d\n", k, counts[entity.Kind(k)])
	}

	fmt.Println()
	for i, e := range s.Entities {
		p := e.Position()
		switch v := e.(type) {
		case *entity.ArmorStand:
			fmt.Printf("%4d  %-12s (%.2f, %.2f, %.2f)  yaw=%.1f head=%s\n",
				i, v.Kind(), p.X, p.Y, p.Z, v.Yaw, orDash(v.Armor(entity.SlotHead)))
		case *entity.Item:
			fmt.Printf("%4d  %-12s (%.2f, %.2f, %.2f)  id=%s\n", i, v.Kind(), p.X, p.Y, p.Z, v.ID)
		}
	}
	return 0
}

func cmdValidate(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: scenetool validate <scene>")
		return 1
	}

	format, err := scene.FormatFor(args[0])
	if err != nil {
		return fail(err)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fail(err)
	}
	s, dropped, err := scene.Decode(data, format, true)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("%s: %d entities valid, %d dropped\n", args[0], s.Len(), dropped)
	if dropped > 0 {
		return 2
	}
	return 0
}

func cmdConvert(ctx context.Context, cfg *config.Config, args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: scenetool convert <in> <out>")
		return 1
	}

	s, err := scene.Load(ctx, args[0], cfg.Scene.Validate)
	if err != nil {
		return fail(err)
	}
	if err := scene.Save(ctx, args[1], s); err != nil {
		return fail(err)
	}
	fmt.Printf("Converted: %s -> %s (%d entities)\n", args[0], args[1], s.Len())
	return 0
}

func cmdPrimitives(ctx context.Context, cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("primitives", flag.ExitOnError)
	offsetFlag := fs.String("offset", "", "World offset x,y,z (default: render.offset)")
	objPath := fs.String("obj", "", "Write triangles to a Wavefront OBJ file")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: scenetool primitives [-offset x,y,z] [-obj out.obj] <scene>")
		return 1
	}

	offset := math.Vec3{X: cfg.Render.Offset[0], Y: cfg.Render.Offset[1], Z: cfg.Render.Offset[2]}
	if *offsetFlag != "" {
		var err error
		if offset, err = parseVec3(*offsetFlag); err != nil {
			return fail(err)
		}
	}

	s, err := scene.Load(ctx, fs.Arg(0), cfg.Scene.Validate)
	if err != nil {
		return fail(err)
	}

	ws, err := assets.Open(cfg.Assets)
	if err != nil {
		return fail(err)
	}
	defer ws.Close()

	start := time.Now()
	tris, err := s.Primitives(ctx, ws.Env, offset, cfg.Render.Workers)
	if err != nil {
		return fail(err)
	}
	logger.Named("scenetool").Info("primitives built",
		zap.Int("triangles", len(tris)),
		zap.Duration("elapsed", time.Since(start)))

	materials := make(map[*render.Material]struct{})
	for _, t := range tris {
		materials[t.Material] = struct{}{}
	}

	st := ws.Textures.Stats()
	fmt.Printf("Scene:     %s\n", s.Name)
	fmt.Printf("Entities:  %d\n", s.Len())
	fmt.Printf("Triangles: %d\n", len(tris))
	fmt.Printf("Materials: %d\n", len(materials))
	fmt.Printf("Textures:  %d loaded, %d unresolved, %d missing (%d loads)\n",
		st.Loaded, st.Unresolved, st.Missing, st.Loads)

	if *objPath != "" {
		f, err := os.Create(*objPath)
		if err != nil {
			return fail(err)
		}
		if err := render.WriteOBJ(f, tris); err != nil {
			f.Close()
			return fail(err)
		}
		if err := f.Close(); err != nil {
			return fail(err)
		}
		fmt.Printf("Wrote:     %s\n", *objPath)
	}
	return 0
}

func parseVec3(s string) (math.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math.Vec3{}, fmt.Errorf("offset %q: want x,y,z", s)
	}
	var c [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("offset %q: %w", s, err)
		}
		c[i] = f
	}
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
