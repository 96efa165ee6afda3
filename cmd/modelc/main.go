// modelc compiles block and item models into quads and reports what the
// texture cache resolved.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeforge/internal/assets"
	"github.com/Faultbox/cubeforge/internal/config"
	"github.com/Faultbox/cubeforge/internal/geom"
	"github.com/Faultbox/cubeforge/internal/logger"
	"github.com/Faultbox/cubeforge/internal/model"
	"github.com/Faultbox/cubeforge/pkg/document"
)

func main() {
	config.ParseFlags()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	command, rest := args[0], args[1:]
	var code int
	switch command {
	case "compile", "c":
		code = cmdCompile(cfg, rest)
	case "item", "i":
		code = cmdItem(cfg, rest)
	case "records":
		code = cmdRecords(cfg, rest)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		code = 1
	}
	logger.Sync()
	os.Exit(code)
}

func printUsage() {
	fmt.Println(`modelc - block model compiler

Usage:
  modelc [global flags] <command> [options]

Commands:
  compile <model.json|yaml>   Compile a block model and list its quads
  item <namespace:name>       Compile an item model from the resource pack
  records <model.json|yaml>   Print quads as Go quad records

Global flags:
  -pack <dir|zip>    Resource pack
  -namespace <ns>    Default texture namespace
  -uv-scale <n>      Texture-space unit of block models
  -config <file>     Config file
  -debug             Debug logging

Examples:
  modelc -pack faithful.zip compile models/slab.json
  modelc item minecraft:diamond_helmet
  modelc records -tex 64 armorstand.yaml`)
}

func openWorkspace(cfg *config.Config) *assets.Workspace {
	ws, err := assets.Open(cfg.Assets)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return ws
}

// readModel parses a model document, picking the decoder by extension.
func readModel(path string, uvScale float64) ([]model.Cuboid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc *document.Object
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		doc, err = document.ParseYAMLObject(data)
	default:
		doc, err = document.ParseJSONObject(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return model.CuboidsFromDocument(doc, uvScale)
}

func cmdCompile(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	quiet := fs.Bool("q", false, "Only print the summary")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: modelc compile [-q] <model.json|yaml>")
		return 1
	}

	cuboids, err := readModel(fs.Arg(0), cfg.Assets.UVScale)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ws := openWorkspace(cfg)
	defer ws.Close()

	m := ws.Compiler.Compile(cuboids, ws.UVScale)
	logger.Named("modelc").Debug("compiled", zap.String("model", fs.Arg(0)), zap.Int("quads", m.Len()))

	if !*quiet {
		for i, q := range m.Quads {
			printQuad(i, q, m.Textures[i].Ref(), m.Textures[i].State().String())
		}
		fmt.Println()
	}
	printSummary(fs.Arg(0), len(cuboids), m, ws)
	return 0
}

func cmdItem(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("item", flag.ExitOnError)
	quiet := fs.Bool("q", false, "Only print the summary")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: modelc item [-q] <namespace:name>")
		return 1
	}

	ws := openWorkspace(cfg)
	defer ws.Close()

	id, err := model.ParseItemID(fs.Arg(0), cfg.Assets.Namespace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	m := ws.Items.Item(id.String())
	if !*quiet {
		for i, q := range m.Quads {
			printQuad(i, q, m.Textures[i].Ref(), m.Textures[i].State().String())
		}
		fmt.Println()
	}
	printSummary(id.String(), -1, m, ws)
	return 0
}

func cmdRecords(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("records", flag.ExitOnError)
	texSize := fs.Float64("tex", 0, "Texture size in pixels for the UV columns (default: uv scale)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: modelc records [-tex N] <model.json|yaml>")
		return 1
	}

	uvScale := cfg.Assets.UVScale
	if *texSize > 0 {
		uvScale = *texSize
	}
	cuboids, err := readModel(fs.Arg(0), uvScale)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	g := model.Build(cuboids, uvScale)

	fmt.Printf("// %s: %d quads\n", filepath.Base(fs.Arg(0)), len(g.Quads))
	for _, q := range g.Quads {
		o, u, v := q.Origin.Scale(model.Unit), q.UEnd.Scale(model.Unit), q.VEnd.Scale(model.Unit)
		uv := q.UV.Scale(uvScale)
		fmt.Printf("{%g, %g, %g, %g, %g, %g, %g, %g, %g, %g, %g, %g, %g},\n",
			o.X, o.Y, o.Z, u.X, u.Y, u.Z, v.X, v.Y, v.Z, uv.X, uv.Y, uv.Z, uv.W)
	}
	return 0
}

func printQuad(i int, q geom.Quad, ref, state string) {
	n := q.Normal().Normalize()
	fmt.Printf("%3d  origin=%v u=%v v=%v  uv=[%.4f %.4f %.4f %.4f]  n=(%.0f,%.0f,%.0f)  %s (%s)\n",
		i, q.Origin, q.UEnd, q.VEnd, q.UV.X, q.UV.Y, q.UV.Z, q.UV.W, n.X, n.Y, n.Z, ref, state)
}

func printSummary(name string, cuboids int, m *model.CompiledModel, ws *assets.Workspace) {
	fmt.Printf("Model:    %s\n", name)
	if cuboids >= 0 {
		fmt.Printf("Cuboids:  %d\n", cuboids)
	}
	fmt.Printf("Quads:    %d\n", m.Len())

	refCount := make(map[string]int)
	for _, ref := range m.Refs {
		refCount[ref]++
	}
	refs := make([]string, 0, len(refCount))
	for ref := range refCount {
		refs = append(refs, ref)
	}
	sort.Strings(refs)

	fmt.Println()
	fmt.Println("Textures:")
	for _, ref := range refs {
		fmt.Printf("  %-40s %d\n", ref, refCount[ref])
	}

	st := ws.Textures.Stats()
	fmt.Println()
	fmt.Printf("Cache:    %d entries, %d loads, %d loaded, %d unresolved, %d missing\n",
		st.Entries, st.Loads, st.Loaded, st.Unresolved, st.Missing)
}
