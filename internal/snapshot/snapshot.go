// Package snapshot renders projected frames to PNG without a window.
package snapshot

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/gg"

	"github.com/Faultbox/objview/pkg/formats"
	"github.com/Faultbox/objview/pkg/math"
)

// Frame colours, the same grey and white the live renderer uses.
var (
	Background = gg.RGB(30/255.0, 30/255.0, 30/255.0)
	Foreground = gg.RGB(1, 1, 1)
)

// Style controls how a frame is drawn.
type Style struct {
	PointRadius float64
	LineWidth   float64
}

// DefaultStyle returns 1px points and lines.
func DefaultStyle() Style {
	return Style{PointRadius: 1, LineWidth: 1}
}

// Render draws points and edges on a width x height canvas.
func Render(points []math.Vec2, edges []formats.Edge, width, height int, style Style) (image.Image, error) {
	dc := gg.NewContext(width, height)
	defer dc.Close()
	if err := draw(dc, points, edges, style); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// WritePNG renders a frame and encodes it to w.
func WritePNG(w io.Writer, points []math.Vec2, edges []formats.Edge, width, height int, style Style) error {
	dc := gg.NewContext(width, height)
	defer dc.Close()
	if err := draw(dc, points, edges, style); err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// draw paints edges first so points stay visible on top.
// Edges referencing points outside the slice are skipped.
func draw(dc *gg.Context, points []math.Vec2, edges []formats.Edge, style Style) error {
	dc.ClearWithColor(Background)
	dc.SetColor(Foreground.Color())

	if len(edges) > 0 {
		dc.SetLineWidth(style.LineWidth)
		for _, e := range edges {
			if e.A < 0 || e.B < 0 || e.A >= len(points) || e.B >= len(points) {
				continue
			}
			a, b := points[e.A], points[e.B]
			dc.DrawLine(a.X, a.Y, b.X, b.Y)
		}
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroking edges: %w", err)
		}
	}

	if len(points) > 0 && style.PointRadius > 0 {
		for _, p := range points {
			dc.DrawPoint(p.X, p.Y, style.PointRadius)
		}
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("filling points: %w", err)
		}
	}

	if err := dc.FlushGPU(); err != nil {
		return fmt.Errorf("flushing: %w", err)
	}
	return nil
}

// Writer saves frames as timestamped PNG files.
type Writer struct {
	outputDir string
	prefix    string
	style     Style

	now func() time.Time
}

// NewWriter creates a writer saving into outputDir ("" = working directory).
func NewWriter(outputDir, prefix string, style Style) *Writer {
	return &Writer{
		outputDir: outputDir,
		prefix:    prefix,
		style:     style,
		now:       time.Now,
	}
}

// Capture renders a frame and saves it, returning the file name.
func (w *Writer) Capture(points []math.Vec2, edges []formats.Edge, width, height int) (string, error) {
	if w.outputDir != "" {
		if err := os.MkdirAll(w.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := w.GenerateFilename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if err := WritePNG(file, points, edges, width, height, w.style); err != nil {
		file.Close()
		os.Remove(filename)
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing file: %w", err)
	}
	return filename, nil
}

// GenerateFilename returns the path the next capture would use.
func (w *Writer) GenerateFilename() string {
	timestamp := w.now().Format("2006-01-02_15-04-05.000")
	filename := fmt.Sprintf("%s_%s.png", w.prefix, timestamp)
	if w.outputDir != "" {
		filename = filepath.Join(w.outputDir, filename)
	}
	return filename
}
