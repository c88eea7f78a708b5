// Package main is the entry point for the objview point-cloud viewer.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/app"
	"github.com/Faultbox/objview/internal/assets"
	"github.com/Faultbox/objview/internal/config"
	"github.com/Faultbox/objview/internal/engine/input"
	"github.com/Faultbox/objview/internal/engine/renderer"
	"github.com/Faultbox/objview/internal/engine/window"
	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/internal/model"
	"github.com/Faultbox/objview/internal/selector"
	"github.com/Faultbox/objview/internal/snapshot"
	"github.com/Faultbox/objview/internal/viewport"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== objview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	catalog := assets.NewCatalog(cfg.Models.Dir)
	store := model.NewStore(catalog, model.Options{
		LineElements: cfg.Models.LineElements,
		Encoding:     cfg.Models.Encoding,
	})

	if err := choose(cfg, catalog, store); err != nil {
		return fmt.Errorf("selecting model: %w", err)
	}

	title := filepath.Base(store.Name())
	win, err := window.New(window.Config{
		Title:      title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	// Fullscreen windows may not get the requested size.
	width, height := win.Size()
	viewCfg := cfg.Viewport()
	viewCfg.Width, viewCfg.Height = width, height

	// Renderer AFTER window, since the OpenGL context must exist
	rend, err := renderer.New(renderer.Config{
		Width:     width,
		Height:    height,
		PointSize: cfg.View.PointSize,
		Surface:   win,
	})
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer rend.Close()

	prefix := cfg.Snapshot.Prefix
	if prefix == "" {
		prefix = title
	}

	viewer, err := app.New(app.Config{
		Store:        store,
		Projector:    viewport.New(store, viewCfg),
		Input:        input.New(),
		Renderer:     rend,
		Presenter:    win,
		Snapshots:    snapshot.NewWriter(cfg.Snapshot.Dir, prefix, snapshot.DefaultStyle()),
		TickInterval: cfg.TickInterval(),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := viewer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// choose picks the model and objects. A preset model skips the interactive
// selector. A mistyped name at the prompt is reported and asked again.
func choose(cfg *config.Config, catalog *assets.Catalog, store *model.Store) error {
	kind := cfg.Models.Selector
	if cfg.Models.Model != "" {
		kind = selector.KindStatic
	}

	sel, err := selector.New(kind, selector.Options{
		Dir:     catalog.Dir(),
		Model:   cfg.Models.Model,
		Objects: cfg.Models.Objects,
	})
	if err != nil {
		return err
	}

	for {
		err := selector.Choose(sel, catalog, store)
		if err == nil {
			return nil
		}
		if kind == selector.KindPrompt && errors.Is(err, model.ErrAssetNotFound) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			continue
		}
		return err
	}
}
