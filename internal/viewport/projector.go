// Package viewport turns pointer drags into rotation angles and projects the
// loaded vertices onto the screen.
package viewport

import (
	gomath "math"

	"github.com/Faultbox/objview/pkg/math"
)

// Default view parameters.
const (
	DefaultWidth       = 1000
	DefaultHeight      = 800
	DefaultScale       = 100.0
	DefaultZoomStep    = 20.0
	DefaultSensitivity = 57.35 // degrees per accumulated angle unit

	// Start pose, a three-quarter view from slightly above.
	DefaultXAngle = -0.59
	DefaultYAngle = -0.26

	// Pointer pixels per unit of accumulated angle.
	pixelsPerUnit = 100.0
)

// Source is the vertex sequence being projected.
type Source interface {
	VertexCount() int
	Vertex(i int) math.Vec3
}

// Config holds view parameters. Zero fields are not defaulted; use
// DefaultConfig and override.
type Config struct {
	Width       int
	Height      int
	Scale       float64
	ZoomStep    float64
	Sensitivity float64

	InitialXAngle float64
	InitialYAngle float64
}

// DefaultConfig returns the standard 1000x800 view at the start pose.
func DefaultConfig() Config {
	return Config{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Scale:         DefaultScale,
		ZoomStep:      DefaultZoomStep,
		Sensitivity:   DefaultSensitivity,
		InitialXAngle: DefaultXAngle,
		InitialYAngle: DefaultYAngle,
	}
}

// RotationState is the accumulated rotation input.
type RotationState struct {
	XAngle float64 // About the vertical axis, unbounded
	YAngle float64 // About the horizontal axis, unbounded

	// Display angles in degrees, in [0, 360).
	CircleX float64
	CircleY float64
}

// UpsideDown reports whether the view has crossed into the inverted
// hemisphere on the vertical axis.
func (r RotationState) UpsideDown() bool {
	return r.CircleY >= 90 && r.CircleY <= 270
}

// Projector owns the rotation state and the per-frame projected points.
// It is not safe for concurrent use; the tick loop is its only caller.
type Projector struct {
	source Source
	cfg    Config

	rot   RotationState
	scale float64

	// Drag baseline, valid while dragging.
	dragging     bool
	prevX, prevY float64

	// RotationX(YAngle) * RotationY(XAngle): vertical axis first.
	rotation math.Mat3
	points     []math.Vec2
}

// New creates a projector over source.
func New(source Source, cfg Config) *Projector {
	p := &Projector{
		source: source,
		cfg:    cfg,
		scale:  cfg.Scale,
	}
	p.SetAngles(cfg.InitialXAngle, cfg.InitialYAngle)
	return p
}

// Drag feeds the pointer position for a tick on which the drag button is
// held. The first call after Release only captures the baseline. Each call
// moves the baseline, so displacement is measured frame to frame.
func (p *Projector) Drag(x, y float64) {
	if !p.dragging {
		p.dragging = true
		p.prevX, p.prevY = x, y
	}
	dx, dy := x-p.prevX, y-p.prevY
	p.prevX, p.prevY = x, y

	p.Rotate(dx, dy)
}

// Release ends the current drag.
func (p *Projector) Release() {
	p.dragging = false
}

// Dragging reports whether a drag baseline is captured.
func (p *Projector) Dragging() bool {
	return p.dragging
}

// Rotate applies one tick of pointer displacement.
//
// While upside down the horizontal accumulator is pushed back by twice the
// tick's horizontal input, so dragging right keeps turning the model the
// same way on screen. This runs on every tick the view is inverted, not
// just on the tick it flips, and can drift XAngle under sustained drags.
func (p *Projector) Rotate(dx, dy float64) {
	p.rot.XAngle += dx / pixelsPerUnit
	p.rot.YAngle -= dy / pixelsPerUnit

	p.rot.CircleX = math.Wrap360(p.rot.XAngle * p.cfg.Sensitivity)
	p.rot.CircleY = math.Wrap360(p.rot.YAngle * p.cfg.Sensitivity)

	if p.rot.UpsideDown() {
		p.rot.CircleX = math.Wrap360(180 + p.rot.CircleX)
		p.rot.XAngle += 2 * (-dx / pixelsPerUnit)
	}

	p.updateMatrices()
}

// Zoom applies wheel notches. Positive notches zoom in, which shrinks the
// scale. Scale is unbounded; zero or negative values collapse or mirror the
// image but are not errors.
func (p *Projector) Zoom(notches int) {
	p.scale -= float64(notches) * p.cfg.ZoomStep
}

// Resize moves the centre offset for a new viewport size.
func (p *Projector) Resize(width, height int) {
	p.cfg.Width = width
	p.cfg.Height = height
}

// State returns the current rotation state.
func (p *Projector) State() RotationState {
	return p.rot
}

// SetAngles jumps to a pose, recomputing the display angles.
func (p *Projector) SetAngles(xAngle, yAngle float64) {
	p.rot.XAngle = xAngle
	p.rot.YAngle = yAngle
	p.rot.CircleX = math.Wrap360(xAngle * p.cfg.Sensitivity)
	p.rot.CircleY = math.Wrap360(yAngle * p.cfg.Sensitivity)
	if p.rot.UpsideDown() {
		p.rot.CircleX = math.Wrap360(180 + p.rot.CircleX)
	}
	p.updateMatrices()
}

// Scale returns the current zoom scale.
func (p *Projector) Scale() float64 {
	return p.scale
}

// SetScale overrides the zoom scale.
func (p *Projector) SetScale(scale float64) {
	p.scale = scale
}

// Size returns the viewport size.
func (p *Projector) Size() (width, height int) {
	return p.cfg.Width, p.cfg.Height
}

func (p *Projector) updateMatrices() {
	p.rotation = math.RotationX(p.rot.YAngle).Mul(math.RotationY(p.rot.XAngle))
}

// ProjectVertex rotates v about the vertical then the horizontal axis and
// drops depth. The result is in model units, before scale and offset.
func (p *Projector) ProjectVertex(v math.Vec3) math.Vec2 {
	return math.Orthographic(p.rotation.MulVec3(v))
}

// Project computes the screen position of every source vertex. The result
// has the same length and order as the source and is reused by the next
// call; copy it to keep it across frames.
func (p *Projector) Project() []math.Vec2 {
	n := p.source.VertexCount()
	if cap(p.points) < n {
		p.points = make([]math.Vec2, n)
	}
	p.points = p.points[:n]

	centre := math.Vec2{X: float64(p.cfg.Width) / 2, Y: float64(p.cfg.Height) / 2}
	for i := 0; i < n; i++ {
		v := p.ProjectVertex(p.source.Vertex(i)).Scale(p.scale)
		// Whole pixels, truncated toward zero before centring.
		p.points[i] = math.Vec2{X: gomath.Trunc(v.X), Y: gomath.Trunc(v.Y)}.Add(centre)
	}
	return p.points
}
