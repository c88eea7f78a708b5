// Package model holds the vertex data of the currently loaded model.
package model

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/assets"
	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/pkg/formats"
	"github.com/Faultbox/objview/pkg/math"
)

// ErrAssetNotFound is returned by Load when the model file does not exist.
var ErrAssetNotFound = assets.ErrNotFound

// ParseFault reports any other failure while reading or interpreting a model.
type ParseFault struct {
	Name string // Asset name
	Line int    // 1-based line, 0 if the fault is not tied to a line
	Err  error
}

func (e *ParseFault) Error() string {
	// A wrapped LineError already names the line.
	var lineErr *formats.LineError
	if e.Line > 0 && !errors.As(e.Err, &lineErr) {
		return fmt.Sprintf("parsing %s at line %d: %v", e.Name, e.Line, e.Err)
	}
	return fmt.Sprintf("parsing %s: %v", e.Name, e.Err)
}

func (e *ParseFault) Unwrap() error {
	return e.Err
}

// Options configures how model sources are read.
type Options struct {
	LineElements bool   // Emit edges for "l" elements
	Encoding     string // Source text encoding label, "" for UTF-8
}

// Store owns the vertices, object names and edges of one model.
// Load replaces everything; a failed Load leaves the store empty.
type Store struct {
	catalog *assets.Catalog
	opts    Options

	name     string
	vertices []math.Vec3
	objects  []string

	// Always empty unless Options.LineElements is set and the source has
	// "l" elements. Renderers draw whatever is here.
	edges []formats.Edge
}

// NewStore creates an empty store reading from catalog.
func NewStore(catalog *assets.Catalog, opts Options) *Store {
	return &Store{
		catalog: catalog,
		opts:    opts,
	}
}

// Load reads the named model from the catalog. An empty filter loads every
// object; otherwise loading stops at the first object not in filter.
//
// Failures are logged and returned. They never leave partial data behind:
// the store is empty afterwards and the caller may retry another name.
func (s *Store) Load(name string, filter []string) error {
	f, err := s.catalog.Open(name)
	if err != nil {
		s.reset(name)
		if errors.Is(err, assets.ErrNotFound) {
			logger.Warn("model not found", zap.String("name", name), zap.Error(err))
			return err
		}
		fault := &ParseFault{Name: name, Err: err}
		logger.Warn("model load failed", zap.String("name", name), zap.Error(fault))
		return fault
	}
	defer f.Close()

	return s.LoadReader(name, f, filter)
}

// LoadReader is Load on an already open source.
func (s *Store) LoadReader(name string, r io.Reader, filter []string) error {
	s.reset(name)

	obj, err := formats.ParseOBJ(r, formats.ParseOptions{
		Filter:       filter,
		LineElements: s.opts.LineElements,
		Encoding:     s.opts.Encoding,
	})
	if err != nil {
		fault := &ParseFault{Name: name, Err: err}
		var lineErr *formats.LineError
		if errors.As(err, &lineErr) {
			fault.Line = lineErr.Line
		}
		logger.Warn("model load failed", zap.String("name", name), zap.Error(fault))
		return fault
	}

	s.vertices = obj.Vertices
	s.objects = obj.Objects
	s.edges = obj.Edges

	logger.Info("model loaded",
		zap.String("name", name),
		zap.Int("vertices", len(s.vertices)),
		zap.Strings("objects", s.objects),
		zap.Int("edges", len(s.edges)),
	)
	if obj.StoppedAt != "" {
		logger.Debug("object filter cut off scan", zap.String("at", obj.StoppedAt))
	}
	return nil
}

func (s *Store) reset(name string) {
	s.name = name
	s.vertices = nil
	s.objects = nil
	s.edges = nil
}

// Name returns the asset name of the last Load.
func (s *Store) Name() string {
	return s.name
}

// Vertices returns a copy of the vertex positions in file order.
func (s *Store) Vertices() []math.Vec3 {
	return append([]math.Vec3(nil), s.vertices...)
}

// Objects returns a copy of the object names seen before any filter cutoff.
func (s *Store) Objects() []string {
	return append([]string(nil), s.objects...)
}

// Edges returns a copy of the edge list.
func (s *Store) Edges() []formats.Edge {
	return append([]formats.Edge(nil), s.edges...)
}

// VertexCount returns the number of loaded vertices.
func (s *Store) VertexCount() int {
	return len(s.vertices)
}

// Vertex returns vertex i. It panics if i is out of range, like a slice.
func (s *Store) Vertex(i int) math.Vec3 {
	return s.vertices[i]
}

// Bounds returns the axis-aligned bounding box of the vertices.
// ok is false for an empty store.
func (s *Store) Bounds() (min, max math.Vec3, ok bool) {
	if len(s.vertices) == 0 {
		return math.Vec3{}, math.Vec3{}, false
	}
	min, max = s.vertices[0], s.vertices[0]
	for _, v := range s.vertices[1:] {
		min = min.Min(v)
		max = max.Max(v)
	}
	return min, max, true
}
