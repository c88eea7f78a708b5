// Package renderer draws projected frames with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/engine/shader"
	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/pkg/formats"
	"github.com/Faultbox/objview/pkg/math"
)

// Colours match the snapshot renderer.
var (
	Background = [3]float32{30 / 255.0, 30 / 255.0, 30 / 255.0}
	Foreground = [3]float32{1, 1, 1}
)

// Surface reports the GL drawable size, which differs from the window
// size on HiDPI displays.
type Surface interface {
	DrawableSize() (int, int)
}

// Config holds renderer configuration. Width and Height are in window
// coordinates, the space projected points are in.
type Config struct {
	Width     int
	Height    int
	PointSize float32

	// Surface sizes the GL viewport. Nil means the drawable matches
	// Width x Height.
	Surface Surface
}

// Renderer draws screen-space points and the edges between them.
// IMPORTANT: New must be called AFTER the OpenGL context is created.
type Renderer struct {
	config Config
	log    *zap.Logger

	program     uint32
	locViewport int32
	locColor    int32
	locPoint    int32

	vao uint32
	vbo uint32
	ebo uint32

	// Per-frame staging, reused to avoid allocation.
	positions []float32
	indices   []uint32
}

const vertexShaderSource = `#version 410 core
layout (location = 0) in vec2 aScreen;

uniform vec2 uViewport;
uniform float uPointSize;

void main() {
    // Pixels, origin top-left, to NDC.
    vec2 ndc = aScreen / uViewport * 2.0 - 1.0;
    gl_Position = vec4(ndc.x, -ndc.y, 0.0, 1.0);
    gl_PointSize = uPointSize;
}
`

const fragmentShaderSource = `#version 410 core
uniform vec3 uColor;
out vec4 FragColor;

void main() {
    FragColor = vec4(uColor, 1.0);
}
`

// New creates a new renderer.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(Background[0], Background[1], Background[2], 1.0)
	r.setViewport()

	var err error
	r.program, err = shader.Build(
		shader.Stage{Name: "vertex", Type: gl.VERTEX_SHADER, Source: vertexShaderSource},
		shader.Stage{Name: "fragment", Type: gl.FRAGMENT_SHADER, Source: fragmentShaderSource},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	for _, u := range []struct {
		name string
		loc  *int32
	}{
		{"uViewport", &r.locViewport},
		{"uColor", &r.locColor},
		{"uPointSize", &r.locPoint},
	} {
		if *u.loc, err = shader.Uniform(r.program, u.name); err != nil {
			gl.DeleteProgram(r.program)
			return nil, fmt.Errorf("renderer program: %w", err)
		}
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, nil)
	gl.EnableVertexAttribArray(0)

	// The element buffer binding is VAO state.
	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.log.Debug("renderer created",
		zap.Uint32("program", r.program),
		zap.Uint32("vao", r.vao),
	)
	return r, nil
}

// Close releases GL objects.
func (r *Renderer) Close() {
	r.log.Debug("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	dw, dh := r.setViewport()
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("drawable_width", dw),
		zap.Int("drawable_height", dh),
	)
}

func (r *Renderer) setViewport() (int, int) {
	w, h := drawableSize(r.config)
	gl.Viewport(0, 0, int32(w), int32(h))
	return w, h
}

// drawableSize is the pixel size the GL viewport must cover.
func drawableSize(cfg Config) (int, int) {
	if cfg.Surface != nil {
		if w, h := cfg.Surface.DrawableSize(); w > 0 && h > 0 {
			return w, h
		}
	}
	return cfg.Width, cfg.Height
}

// Draw clears the frame and draws points, then edges between them.
// Edges referencing points outside the slice are skipped.
func (r *Renderer) Draw(points []math.Vec2, edges []formats.Edge) {
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if len(points) == 0 {
		return
	}

	r.positions = r.positions[:0]
	for _, p := range points {
		r.positions = append(r.positions, float32(p.X), float32(p.Y))
	}

	r.indices = r.indices[:0]
	for _, e := range edges {
		if e.A < 0 || e.B < 0 || e.A >= len(points) || e.B >= len(points) {
			continue
		}
		r.indices = append(r.indices, uint32(e.A), uint32(e.B))
	}

	gl.UseProgram(r.program)
	gl.Uniform2f(r.locViewport, float32(r.config.Width), float32(r.config.Height))
	gl.Uniform3f(r.locColor, Foreground[0], Foreground[1], Foreground[2])
	gl.Uniform1f(r.locPoint, r.config.PointSize)

	gl.BindVertexArray(r.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.positions)*4, gl.Ptr(r.positions), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(len(points)))

	if len(r.indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(r.indices)*4, gl.Ptr(r.indices), gl.STREAM_DRAW)
		gl.DrawElements(gl.LINES, int32(len(r.indices)), gl.UNSIGNED_INT, nil)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}
