// objtool inspects OBJ models and renders them to PNG without a window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/objview/internal/assets"
	"github.com/Faultbox/objview/internal/config"
	"github.com/Faultbox/objview/internal/model"
	"github.com/Faultbox/objview/internal/snapshot"
	"github.com/Faultbox/objview/internal/viewport"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "list", "ls":
		cmdList(args)
	case "info":
		cmdInfo(args)
	case "render":
		cmdRender(args)
	case "init-config":
		cmdInitConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objtool - OBJ model utility

Usage:
  objtool <command> [options]

Commands:
  list [pattern]             List models (optional glob pattern)
  info <name>                Show vertex count, objects and bounds
  render <name|->            Project a model once and write a PNG
  init-config [-user] [path] Write the default viewer config

Examples:
  objtool list -models ./Models
  objtool info Donut.obj
  objtool render -objects Cube -x 0.5 -y -0.2 -o cube.png Scene.obj
  objtool init-config objview.yaml`)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func cmdList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	models := fs.String("models", "Models", "Models directory")
	fs.Parse(args)

	names, err := assets.NewCatalog(*models).List()
	if err != nil {
		fail(err)
	}

	pattern := fs.Arg(0)
	count := 0
	for _, name := range names {
		if pattern != "" {
			if ok, _ := filepath.Match(strings.ToLower(pattern), strings.ToLower(name)); !ok {
				continue
			}
		}
		fmt.Println(name)
		count++
	}
	fmt.Fprintf(os.Stderr, "\n%d model(s)\n", count)
}

// loadFlags are shared by the commands that read a model.
type loadFlags struct {
	models   *string
	encoding *string
	lines    *bool
	objects  *string
}

func addLoadFlags(fs *flag.FlagSet) loadFlags {
	return loadFlags{
		models:   fs.String("models", "Models", "Models directory"),
		encoding: fs.String("encoding", "", "Source text encoding (e.g. euc-kr, shift_jis)"),
		lines:    fs.Bool("lines", false, "Read \"l\" elements as edges"),
		objects:  fs.String("objects", "", "Comma-separated object filter"),
	}
}

func (f loadFlags) load(name string) (*model.Store, error) {
	store := model.NewStore(assets.NewCatalog(*f.models), model.Options{
		LineElements: *f.lines,
		Encoding:     *f.encoding,
	})
	filter := config.SplitList(*f.objects)

	// "-" reads the model from stdin.
	var err error
	if name == "-" {
		err = store.LoadReader("stdin", os.Stdin, filter)
	} else {
		err = store.Load(name, filter)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	lf := addLoadFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool info [options] <name>")
		os.Exit(1)
	}

	store, err := lf.load(fs.Arg(0))
	if err != nil {
		var fault *model.ParseFault
		if errors.As(err, &fault) && fault.Line > 0 {
			fmt.Fprintf(os.Stderr, "Line %d is malformed\n", fault.Line)
		}
		fail(err)
	}

	fmt.Printf("Model:    %s\n", store.Name())
	fmt.Printf("Vertices: %d\n", store.VertexCount())
	fmt.Printf("Edges:    %d\n", len(store.Edges()))

	objects := store.Objects()
	fmt.Printf("Objects:  %d\n", len(objects))
	for _, name := range objects {
		fmt.Printf("  %s\n", name)
	}

	if min, max, ok := store.Bounds(); ok {
		fmt.Println()
		fmt.Printf("Bounds min: (%.4f, %.4f, %.4f)\n", min.X, min.Y, min.Z)
		fmt.Printf("Bounds max: (%.4f, %.4f, %.4f)\n", max.X, max.Y, max.Z)

		size := max.Sub(min)
		centre := min.Add(max).Scale(0.5)
		fmt.Printf("Centre:     (%.4f, %.4f, %.4f)\n", centre.X, centre.Y, centre.Z)
		fmt.Printf("Size:       %.4f x %.4f x %.4f (diagonal %.4f)\n", size.X, size.Y, size.Z, size.Length())
	}
}

func cmdRender(args []string) {
	defaults := viewport.DefaultConfig()

	fs := flag.NewFlagSet("render", flag.ExitOnError)
	lf := addLoadFlags(fs)
	xAngle := fs.Float64("x", defaults.InitialXAngle, "Horizontal rotation accumulator")
	yAngle := fs.Float64("y", defaults.InitialYAngle, "Vertical rotation accumulator")
	scale := fs.Float64("scale", defaults.Scale, "Pixels per model unit")
	width := fs.Int("width", defaults.Width, "Image width")
	height := fs.Int("height", defaults.Height, "Image height")
	radius := fs.Float64("point", 1, "Point radius in pixels")
	output := fs.String("o", "", "Output PNG (default <name>.png)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool render [options] <name>")
		os.Exit(1)
	}
	if *width <= 0 || *height <= 0 {
		fail(fmt.Errorf("invalid image size %dx%d", *width, *height))
	}

	name := fs.Arg(0)
	store, err := lf.load(name)
	if err != nil {
		fail(err)
	}

	cfg := defaults
	cfg.Width, cfg.Height = *width, *height
	cfg.Scale = *scale
	cfg.InitialXAngle, cfg.InitialYAngle = *xAngle, *yAngle
	proj := viewport.New(store, cfg)

	out := *output
	if out == "" {
		out = strings.TrimSuffix(filepath.Base(store.Name()), filepath.Ext(store.Name())) + ".png"
	}

	file, err := os.Create(out)
	if err != nil {
		fail(err)
	}

	style := snapshot.DefaultStyle()
	style.PointRadius = *radius
	if err := snapshot.WritePNG(file, proj.Project(), store.Edges(), *width, *height, style); err != nil {
		file.Close()
		fail(err)
	}
	if err := file.Close(); err != nil {
		fail(err)
	}

	state := proj.State()
	fmt.Printf("Rendered %d vertices to %s (%.1f, %.1f deg)\n",
		store.VertexCount(), out, state.CircleX, state.CircleY)
}

func cmdInitConfig(args []string) {
	fs := flag.NewFlagSet("init-config", flag.ExitOnError)
	force := fs.Bool("f", false, "Overwrite an existing file")
	user := fs.Bool("user", false, "Write to the user config directory")
	fs.Parse(args)

	cfg := config.Default()

	path := fs.Arg(0)
	switch {
	case *user:
		path = filepath.Join(config.ConfigDir(), config.FileName)
	case path == "":
		path = config.FileName
	}

	if _, err := os.Stat(path); err == nil && !*force {
		fail(fmt.Errorf("%s exists (use -f to overwrite)", path))
	}

	var err error
	if *user {
		err = cfg.Save()
	} else {
		err = cfg.SaveTo(path)
	}
	if err != nil {
		fail(err)
	}
	fmt.Printf("Wrote %s\n", path)
}
