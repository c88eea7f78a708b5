package selector

import (
	"errors"
	"fmt"

	"github.com/sqweek/dialog"
)

// Dialog asks with native message boxes.
type Dialog struct {
	dir string
}

// NewDialog creates a dialog selector opening in dir.
func NewDialog(dir string) *Dialog {
	return &Dialog{dir: dir}
}

// SelectModel shows a file-open dialog for .obj files. The returned path is
// absolute, which the catalog accepts as is.
func (d *Dialog) SelectModel(_ []string) (string, error) {
	filename, err := dialog.File().
		Filter("OBJ Models", "obj").
		Filter("All Files", "*").
		SetStartDir(d.dir).
		Title("Open Model").
		Load()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("file dialog: %w", err)
	}
	return filename, nil
}

// SelectObjects asks yes/no for each object.
func (d *Dialog) SelectObjects(objects []string) ([]string, error) {
	var keep []string
	for _, name := range objects {
		if dialog.Message("Would you like to render %s?", name).Title("Select Objects").YesNo() {
			keep = append(keep, name)
		}
	}
	return keep, nil
}
