package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Faultbox/cubeforge/internal/config"
	"github.com/Faultbox/cubeforge/internal/scene"
	"github.com/Faultbox/cubeforge/internal/store"
)

func cmdStore(ctx context.Context, cfg *config.Config, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: scenetool store <save|list|load|rm> ...")
		return 1
	}

	db, err := store.Open(ctx, cfg.Scene.StorePath, store.Options{
		Compress: cfg.Scene.Compress,
		Validate: cfg.Scene.Validate,
	})
	if err != nil {
		return fail(err)
	}
	defer db.Close()

	sub, rest := args[0], args[1:]
	switch sub {
	case "save":
		return storeSave(ctx, cfg, db, rest)
	case "list", "ls":
		return storeList(ctx, db, rest)
	case "load":
		return storeLoad(ctx, db, rest)
	case "rm", "delete":
		return storeDelete(ctx, db, rest)
	default:
		fmt.Fprintf(os.Stderr, "Unknown store command: %s\n", sub)
		return 1
	}
}

func storeSave(ctx context.Context, cfg *config.Config, db *store.Store, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: scenetool store save <scene>")
		return 1
	}
	s, err := scene.Load(ctx, args[0], cfg.Scene.Validate)
	if err != nil {
		return fail(err)
	}
	snap, err := db.SaveScene(ctx, s)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Saved: %s (%s, %d entities, %s)\n", snap.ID, snap.Scene, snap.Entities, snap.Encoding)
	return 0
}

func storeList(ctx context.Context, db *store.Store, args []string) int {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	snaps, err := db.List(ctx, name)
	if err != nil {
		return fail(err)
	}
	for _, s := range snaps {
		fmt.Printf("%s  %-20s %5d  %-8s %s\n",
			s.ID, s.Scene, s.Entities, s.Encoding, s.CreatedAt.Local().Format(time.DateTime))
	}
	fmt.Fprintf(os.Stderr, "\n(%d snapshots)\n", len(snaps))
	return 0
}

func storeLoad(ctx context.Context, db *store.Store, args []string) int {
	fs := flag.NewFlagSet("load", flag.ExitOnError)
	latest := fs.Bool("latest", false, "Treat the argument as a scene name and load its newest snapshot")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: scenetool store load [-latest] <id|name> <out>")
		return 1
	}

	var (
		s   *scene.Scene
		err error
	)
	if *latest {
		s, err = db.Latest(ctx, fs.Arg(0))
	} else {
		s, err = db.LoadScene(ctx, fs.Arg(0))
	}
	if err != nil {
		return fail(err)
	}
	if err := scene.Save(ctx, fs.Arg(1), s); err != nil {
		return fail(err)
	}
	fmt.Printf("Wrote: %s (%s, %d entities)\n", fs.Arg(1), s.Name, s.Len())
	return 0
}

func storeDelete(ctx context.Context, db *store.Store, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: scenetool store rm <id>")
		return 1
	}
	if err := db.Delete(ctx, args[0]); err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted: %s\n", args[0])
	return 0
}
