// scenetool inspects, converts and renders entity scenes, and manages the
// scene snapshot store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Faultbox/cubeforge/internal/config"
	"github.com/Faultbox/cubeforge/internal/logger"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	command, rest := args[0], args[1:]
	var code int
	switch command {
	case "info":
		code = cmdInfo(ctx, cfg, rest)
	case "validate":
		code = cmdValidate(rest)
	case "convert":
		code = cmdConvert(ctx, cfg, rest)
	case "primitives", "prims":
		code = cmdPrimitives(ctx, cfg, rest)
	case "store":
		code = cmdStore(ctx, cfg, rest)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		code = 1
	}

	stop()
	logger.Sync()
	os.Exit(code)
}

func printUsage() {
	fmt.Println(`scenetool - entity scene utility

Usage:
  scenetool [global flags] <command> [options]

Commands:
  info <scene>                       Show scene name and entities
  validate <scene>                   Schema-check every entity record
  convert <in> <out>                 Re-encode a scene (.json, .yaml, .json.zst)
  primitives [-offset x,y,z] [-obj out.obj] <scene>
                                     Build render triangles for a scene
  store save <scene>                 Snapshot a scene into the store
  store list [name]                  List snapshots, newest first
  store load [-latest] <id|name> <out>
                                     Write a snapshot to a scene file
  store rm <id>                      Delete a snapshot

Global flags:
  -pack <dir|zip>    Resource pack
  -workers <n>       Parallel entity workers
  -store <file>      Snapshot database
  -config <file>     Config file
  -debug             Debug logging

Examples:
  scenetool info plaza.yaml
  scenetool -pack faithful.zip primitives -obj plaza.obj plaza.json
  scenetool store load -latest plaza plaza.json.zst`)
}

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}
