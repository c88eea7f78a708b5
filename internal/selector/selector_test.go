package selector

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Faultbox/objview/internal/assets"
	"github.com/Faultbox/objview/internal/model"
)

const scene = `o Cube
v 1 1 1
v 2 2 2
o Sphere
v 3 3 3
o Cone
v 4 4 4
`

func TestPromptSelectModel(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompt(strings.NewReader("  Donut.obj \n"), &out)

	name, err := p.SelectModel([]string{"Cube.obj", "Donut.obj"})
	if err != nil {
		t.Fatalf("SelectModel: %v", err)
	}
	if name != "Donut.obj" {
		t.Errorf("name = %q, want Donut.obj", name)
	}

	want := "Input a model to load:\n- Cube.obj\n- Donut.obj\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestPromptSelectModelWithoutNewline(t *testing.T) {
	p := NewPrompt(strings.NewReader("Cube.obj"), &bytes.Buffer{})

	name, err := p.SelectModel(nil)
	if err != nil {
		t.Fatalf("SelectModel: %v", err)
	}
	if name != "Cube.obj" {
		t.Errorf("name = %q, want Cube.obj", name)
	}
}

func TestPromptSelectModelEmpty(t *testing.T) {
	tests := []string{"", "\n", "   \n"}
	for _, input := range tests {
		p := NewPrompt(strings.NewReader(input), &bytes.Buffer{})
		if _, err := p.SelectModel(nil); !errors.Is(err, ErrNoModel) {
			t.Errorf("input %q: error = %v, want ErrNoModel", input, err)
		}
	}
}

func TestPromptSelectObjects(t *testing.T) {
	tests := []struct {
		name    string
		answers string
		want    []string
	}{
		{"all yes", "y\nyes\nY\n", []string{"Cube", "Sphere", "Cone"}},
		{"mixed", "y\nn\nyes\n", []string{"Cube", "Cone"}},
		{"none", "no\n\nnope\n", nil},
		{"input ends early", "yes\n", []string{"Cube"}},
		{"spaces trimmed", " y \n yes\t\nn\n", []string{"Cube", "Sphere"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompt(strings.NewReader(tt.answers), &out)

			got, err := p.SelectObjects([]string{"Cube", "Sphere", "Cone"})
			if err != nil {
				t.Fatalf("SelectObjects: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if !strings.Contains(out.String(), "Would you like to render Sphere?") {
				t.Errorf("output %q does not ask about Sphere", out.String())
			}
		})
	}
}

func TestStatic(t *testing.T) {
	s := NewStatic("Cube.obj", []string{"Cube"})

	name, err := s.SelectModel(nil)
	if err != nil || name != "Cube.obj" {
		t.Errorf("SelectModel = %q, %v", name, err)
	}

	objs, err := s.SelectObjects([]string{"Cube", "Sphere"})
	if err != nil {
		t.Fatalf("SelectObjects: %v", err)
	}
	objs[0] = "changed"
	if s.Objects[0] != "Cube" {
		t.Error("SelectObjects returned the selector's own slice")
	}

	if _, err := NewStatic("", nil).SelectModel(nil); !errors.Is(err, ErrNoModel) {
		t.Errorf("empty static: error = %v, want ErrNoModel", err)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		kind string
		want Selector
	}{
		{"", &Prompt{}},
		{KindPrompt, &Prompt{}},
		{KindDialog, &Dialog{}},
		{KindStatic, &Static{}},
	}
	for _, tt := range tests {
		sel, err := New(tt.kind, Options{Dir: "Models", Model: "Cube.obj"})
		if err != nil {
			t.Fatalf("New(%q): %v", tt.kind, err)
		}
		if reflect.TypeOf(sel) != reflect.TypeOf(tt.want) {
			t.Errorf("New(%q) = %T, want %T", tt.kind, sel, tt.want)
		}
	}

	if _, err := New("telepathy", Options{}); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("unknown kind: error = %v, want ErrUnknownKind", err)
	}
}

func newScene(t *testing.T) (*assets.Catalog, *model.Store) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Scene.obj"), []byte(scene), 0644); err != nil {
		t.Fatal(err)
	}
	catalog := assets.NewCatalog(dir)
	return catalog, model.NewStore(catalog, model.Options{})
}

func TestChooseWithPrompt(t *testing.T) {
	catalog, store := newScene(t)
	var out bytes.Buffer
	p := NewPrompt(strings.NewReader("Scene.obj\ny\nn\ny\n"), &out)

	if err := Choose(p, catalog, store); err != nil {
		t.Fatalf("Choose: %v", err)
	}

	if !strings.Contains(out.String(), "- Scene.obj") {
		t.Errorf("catalog listing missing from output %q", out.String())
	}
	// Sphere was declined, so loading stops there and Cone is never reached.
	if got := store.Objects(); !reflect.DeepEqual(got, []string{"Cube"}) {
		t.Errorf("objects = %v, want [Cube]", got)
	}
	if store.VertexCount() != 2 {
		t.Errorf("vertices = %d, want 2", store.VertexCount())
	}
}

func TestChooseNoFilter(t *testing.T) {
	catalog, store := newScene(t)

	if err := Choose(NewStatic("Scene.obj", nil), catalog, store); err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if store.VertexCount() != 4 {
		t.Errorf("vertices = %d, want 4", store.VertexCount())
	}
}

func TestChooseMissingModel(t *testing.T) {
	catalog, store := newScene(t)

	err := Choose(NewStatic("Nope.obj", nil), catalog, store)
	if !errors.Is(err, model.ErrAssetNotFound) {
		t.Errorf("error = %v, want ErrAssetNotFound", err)
	}
	if store.VertexCount() != 0 {
		t.Error("store not empty after a missing model")
	}
}

func TestChooseMissingDirectory(t *testing.T) {
	catalog := assets.NewCatalog(filepath.Join(t.TempDir(), "missing"))
	store := model.NewStore(catalog, model.Options{})

	err := Choose(NewPrompt(strings.NewReader(""), &bytes.Buffer{}), catalog, store)
	if !errors.Is(err, ErrNoModel) {
		t.Errorf("error = %v, want ErrNoModel", err)
	}
}
