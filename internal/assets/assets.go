// Package assets locates model files inside the models directory.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ModelExt is the extension listed by the catalog.
const ModelExt = ".obj"

// ErrNotFound is returned when a model name does not resolve to a file.
var ErrNotFound = errors.New("asset not found")

// Catalog resolves simple model names ("Donut.obj") against one directory.
type Catalog struct {
	dir string

	// Listing cache, refreshed by Refresh.
	mu    sync.RWMutex
	names []string
}

// NewCatalog creates a catalog rooted at dir.
func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir}
}

// Dir returns the models directory.
func (c *Catalog) Dir() string {
	return c.dir
}

// List returns the sorted model names in the directory.
// The first call reads the directory; later calls reuse the result.
func (c *Catalog) List() ([]string, error) {
	c.mu.RLock()
	if c.names != nil {
		names := append([]string(nil), c.names...)
		c.mu.RUnlock()
		return names, nil
	}
	c.mu.RUnlock()

	if err := c.Refresh(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.names...), nil
}

// Refresh re-reads the models directory.
func (c *Catalog) Refresh() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("listing %s: %w", c.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ModelExt) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	c.mu.Lock()
	c.names = names
	c.mu.Unlock()
	return nil
}

// Path returns the file path for a model name without checking it exists.
// Names are taken relative to the directory; absolute paths are kept as is.
func (c *Catalog) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.dir, name)
}

// Open opens a model by name.
func (c *Catalog) Open(name string) (*os.File, error) {
	path := c.Path(name)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}
	return f, nil
}
