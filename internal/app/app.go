// Package app runs the viewer's tick loop: poll input, update the view,
// project, draw.
package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/engine/input"
	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/internal/model"
	"github.com/Faultbox/objview/internal/viewport"
	"github.com/Faultbox/objview/pkg/formats"
	"github.com/Faultbox/objview/pkg/math"
)

// ErrIncomplete is returned by New when a required collaborator is missing.
var ErrIncomplete = errors.New("app: store, projector, input and renderer are required")

// InputSource yields one input frame per tick.
type InputSource interface {
	Poll() input.Frame
}

// Renderer draws projected points and edges.
type Renderer interface {
	Draw(points []math.Vec2, edges []formats.Edge)
	Resize(width, height int)
}

// Presenter shows the finished frame, e.g. by swapping buffers.
type Presenter interface {
	SwapBuffers()
}

// Snapshotter saves a frame to disk and returns where it went.
type Snapshotter interface {
	Capture(points []math.Vec2, edges []formats.Edge, width, height int) (string, error)
}

// Config wires the collaborators. Presenter and Snapshots are optional.
type Config struct {
	Store     *model.Store
	Projector *viewport.Projector
	Input     InputSource
	Renderer  Renderer
	Presenter Presenter
	Snapshots Snapshotter

	// TickInterval paces Run. Zero runs ticks back to back.
	TickInterval time.Duration
}

// App is the viewer instance.
type App struct {
	cfg   Config
	edges []formats.Edge
	log   *zap.Logger

	ticks uint64
}

// New creates an app from cfg.
func New(cfg Config) (*App, error) {
	if cfg.Store == nil || cfg.Projector == nil || cfg.Input == nil || cfg.Renderer == nil {
		return nil, ErrIncomplete
	}

	a := &App{
		cfg:   cfg,
		edges: cfg.Store.Edges(),
		log:   logger.Named("app"),
	}

	a.log.Info("viewer ready",
		zap.String("model", cfg.Store.Name()),
		zap.Int("vertices", cfg.Store.VertexCount()),
		zap.Int("edges", len(a.edges)),
		zap.Duration("tick", cfg.TickInterval),
	)
	return a, nil
}

// Tick runs one frame and reports whether the user asked to quit.
func (a *App) Tick() bool {
	a.ticks++
	frame := a.cfg.Input.Poll()
	if frame.Quit {
		return true
	}

	p := a.cfg.Projector

	// Drag before release so a press and release in the same tick still
	// rotates once and leaves no stale baseline behind.
	if frame.DragHeld {
		p.Drag(float64(frame.PointerX), float64(frame.PointerY))
	}
	if frame.DragReleased {
		p.Release()
	}

	if frame.Wheel != 0 {
		p.Zoom(frame.Wheel)
		a.log.Debug("zoom", zap.Int("notches", frame.Wheel), zap.Float64("scale", p.Scale()))
	}

	if frame.Resized && frame.Width > 0 && frame.Height > 0 {
		p.Resize(frame.Width, frame.Height)
		a.cfg.Renderer.Resize(frame.Width, frame.Height)
		a.log.Debug("resized", zap.Int("width", frame.Width), zap.Int("height", frame.Height))
	}

	if frame.PrintStats {
		state := p.State()
		a.log.Info("model stats",
			zap.String("model", a.cfg.Store.Name()),
			zap.Int("vertices", a.cfg.Store.VertexCount()),
			zap.Float64("circle_x", state.CircleX),
			zap.Float64("circle_y", state.CircleY),
			zap.Float64("scale", p.Scale()),
		)
	}

	points := p.Project()
	a.cfg.Renderer.Draw(points, a.edges)

	if frame.Snapshot {
		a.snapshot(points)
	}

	if a.cfg.Presenter != nil {
		a.cfg.Presenter.SwapBuffers()
	}
	return false
}

func (a *App) snapshot(points []math.Vec2) {
	if a.cfg.Snapshots == nil {
		a.log.Warn("snapshot requested but no writer configured")
		return
	}
	w, h := a.cfg.Projector.Size()
	name, err := a.cfg.Snapshots.Capture(points, a.edges, w, h)
	if err != nil {
		a.log.Error("snapshot failed", zap.Error(err))
		return
	}
	a.log.Info("snapshot saved", zap.String("file", name))
}

// Run ticks until the user quits or ctx is cancelled. Quitting returns nil;
// cancellation returns ctx.Err().
func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting tick loop")

	if a.cfg.TickInterval <= 0 {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			if a.Tick() {
				a.log.Info("quit requested", zap.Uint64("ticks", a.ticks))
				return nil
			}
		}
	}

	ticker := time.NewTicker(a.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if a.Tick() {
				a.log.Info("quit requested", zap.Uint64("ticks", a.ticks))
				return nil
			}
		}
	}
}
