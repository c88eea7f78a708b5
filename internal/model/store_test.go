package model

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/Faultbox/objview/internal/assets"
	"github.com/Faultbox/objview/pkg/formats"
	"github.com/Faultbox/objview/pkg/math"
)

const cubeSphere = "o Cube\nv 0 0 0\nv 1 0 0\no Sphere\nv 0 1 0\n"

func newTestStore(t *testing.T, files map[string]string) *Store {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return NewStore(assets.NewCatalog(dir), Options{})
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func TestLoadVerticesInOrder(t *testing.T) {
	var b strings.Builder
	want := make([]math.Vec3, 0, 50)
	for i := 0; i < 50; i++ {
		v := math.Vec3{X: float64(i), Y: float64(i) * 0.5, Z: -float64(i)}
		want = append(want, v)
		b.WriteString("v ")
		b.WriteString(strings.Join([]string{
			formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z),
		}, " "))
		b.WriteString("\n")
		if i%10 == 0 {
			b.WriteString("vn 0 0 1\n")
		}
	}

	s := newTestStore(t, map[string]string{"line.obj": b.String()})
	if err := s.Load("line.obj", nil); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if s.VertexCount() != 50 {
		t.Fatalf("expected 50 vertices, got %d", s.VertexCount())
	}
	if !reflect.DeepEqual(s.Vertices(), want) {
		t.Errorf("vertices differ from file order")
	}
	if len(s.Edges()) != 0 {
		t.Errorf("expected no edges, got %v", s.Edges())
	}
}

func TestLoadScenario(t *testing.T) {
	s := newTestStore(t, map[string]string{"scene.obj": cubeSphere})

	if err := s.Load("scene.obj", []string{"Cube"}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	wantVerts := []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}}
	if !reflect.DeepEqual(s.Vertices(), wantVerts) {
		t.Errorf("vertices = %v, want %v", s.Vertices(), wantVerts)
	}
	if !reflect.DeepEqual(s.Objects(), []string{"Cube"}) {
		t.Errorf("objects = %v, want [Cube]", s.Objects())
	}

	// Reload is a full replacement, not additive.
	if err := s.Load("scene.obj", []string{"Sphere"}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.VertexCount() != 0 {
		t.Errorf("expected 0 vertices when the first object is excluded, got %d", s.VertexCount())
	}
	if len(s.Objects()) != 0 {
		t.Errorf("expected no objects, got %v", s.Objects())
	}

	if err := s.Load("scene.obj", nil); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.VertexCount() != 3 {
		t.Errorf("expected 3 vertices unfiltered, got %d", s.VertexCount())
	}
	if !reflect.DeepEqual(s.Objects(), []string{"Cube", "Sphere"}) {
		t.Errorf("objects = %v, want [Cube Sphere]", s.Objects())
	}
}

func TestLoadMissingAsset(t *testing.T) {
	s := newTestStore(t, map[string]string{"scene.obj": cubeSphere})
	if err := s.Load("scene.obj", nil); err != nil {
		t.Fatalf("Load: %v", err)
	}

	err := s.Load("missing.obj", nil)
	if !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
	if s.VertexCount() != 0 || len(s.Objects()) != 0 {
		t.Errorf("expected empty store after missing asset, got %d vertices, %v", s.VertexCount(), s.Objects())
	}
	if s.Name() != "missing.obj" {
		t.Errorf("Name() = %q", s.Name())
	}
}

func TestLoadParseFault(t *testing.T) {
	s := newTestStore(t, map[string]string{
		"good.obj": cubeSphere,
		"bad.obj":  "o Cube\nv 0 0 0\nv 1 oops 0\n",
	})
	if err := s.Load("good.obj", nil); err != nil {
		t.Fatalf("Load: %v", err)
	}

	err := s.Load("bad.obj", nil)
	var fault *ParseFault
	if !errors.As(err, &fault) {
		t.Fatalf("expected *ParseFault, got %T: %v", err, err)
	}
	if fault.Line != 3 {
		t.Errorf("fault line = %d, want 3", fault.Line)
	}
	if !errors.Is(err, formats.ErrMalformedVertex) {
		t.Errorf("expected ErrMalformedVertex in chain, got %v", err)
	}
	if s.VertexCount() != 0 || len(s.Objects()) != 0 {
		t.Error("expected no partial data after a parse fault")
	}
}

func TestLoadReaderReadError(t *testing.T) {
	s := NewStore(nil, Options{})
	if err := s.LoadReader("scene", strings.NewReader(cubeSphere), nil); err != nil {
		t.Fatalf("LoadReader: %v", err)
	}

	diskGone := errors.New("disk gone")
	src := io.MultiReader(strings.NewReader("o A\nv 1 2 3\n"), iotest.ErrReader(diskGone))

	err := s.LoadReader("scene", src, nil)
	var fault *ParseFault
	if !errors.As(err, &fault) {
		t.Fatalf("expected *ParseFault, got %T: %v", err, err)
	}
	if !errors.Is(err, diskGone) {
		t.Errorf("expected the read error in chain, got %v", err)
	}
	if fault.Line != 3 {
		t.Errorf("fault line = %d, want 3", fault.Line)
	}
	if s.VertexCount() != 0 || len(s.Objects()) != 0 || len(s.Edges()) != 0 {
		t.Error("expected an empty store after a read error")
	}
}

func TestParseFaultMessage(t *testing.T) {
	tests := []struct {
		name  string
		fault *ParseFault
		want  string
	}{
		{
			name: "line error names the line once",
			fault: &ParseFault{Name: "bad.obj", Line: 3, Err: &formats.LineError{
				Line: 3, Text: "v 1 oops 0", Err: formats.ErrMalformedVertex,
			}},
			want: `parsing bad.obj: line 3: ` + formats.ErrMalformedVertex.Error() + `: "v 1 oops 0"`,
		},
		{
			name:  "read error without text",
			fault: &ParseFault{Name: "x", Line: 4, Err: &formats.LineError{Line: 4, Err: errors.New("disk gone")}},
			want:  "parsing x: line 4: disk gone",
		},
		{
			name:  "bare error with line",
			fault: &ParseFault{Name: "x", Line: 2, Err: errors.New("boom")},
			want:  "parsing x at line 2: boom",
		},
		{
			name:  "no line",
			fault: &ParseFault{Name: "x", Err: errors.New("boom")},
			want:  "parsing x: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fault.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadReaderLineElements(t *testing.T) {
	s := NewStore(assets.NewCatalog(t.TempDir()), Options{LineElements: true})
	src := "v 0 0 0\nv 1 0 0\nv 1 1 0\nl 1 2 3 1\n"

	if err := s.LoadReader("tri", strings.NewReader(src), nil); err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	want := []formats.Edge{{A: 0, B: 1}, {A: 1, B: 2}, {A: 2, B: 0}}
	if !reflect.DeepEqual(s.Edges(), want) {
		t.Errorf("edges = %v, want %v", s.Edges(), want)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := newTestStore(t, map[string]string{"scene.obj": cubeSphere})
	if err := s.Load("scene.obj", nil); err != nil {
		t.Fatalf("Load: %v", err)
	}

	verts := s.Vertices()
	verts[0] = math.Vec3{X: 99}
	if s.Vertex(0) != (math.Vec3{}) {
		t.Error("mutating Vertices() result changed the store")
	}

	objs := s.Objects()
	objs[0] = "Changed"
	if s.Objects()[0] != "Cube" {
		t.Error("mutating Objects() result changed the store")
	}
}

func TestBounds(t *testing.T) {
	s := newTestStore(t, map[string]string{
		"box.obj": "v -1 2 0\nv 3 -4 5\nv 0 0 -6\n",
	})

	if _, _, ok := s.Bounds(); ok {
		t.Error("expected no bounds for an empty store")
	}
	if err := s.Load("box.obj", nil); err != nil {
		t.Fatalf("Load: %v", err)
	}

	min, max, ok := s.Bounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	if min != (math.Vec3{X: -1, Y: -4, Z: -6}) || max != (math.Vec3{X: 3, Y: 2, Z: 5}) {
		t.Errorf("Bounds() = %v, %v", min, max)
	}
}
