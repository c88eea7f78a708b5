// Package selector chooses which model and which of its objects to view.
package selector

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/assets"
	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/internal/model"
)

// Selector kinds accepted by New.
const (
	KindPrompt = "prompt"
	KindDialog = "dialog"
	KindStatic = "static"
)

var (
	// ErrNoModel is returned when no model name was given.
	ErrNoModel = errors.New("no model selected")

	// ErrCancelled is returned when the user dismissed a selection.
	ErrCancelled = errors.New("selection cancelled")

	// ErrUnknownKind is returned by New for an unsupported selector kind.
	ErrUnknownKind = errors.New("unknown selector")
)

// Selector asks for a model and for the objects to keep from it.
type Selector interface {
	// SelectModel picks one name. names may be empty when the models
	// directory could not be listed; the selector may still return a name.
	SelectModel(names []string) (string, error)

	// SelectObjects picks the objects to render, in the order given.
	// An empty result means no filter.
	SelectObjects(objects []string) ([]string, error)
}

// Options configures New.
type Options struct {
	Dir     string   // Models directory, start point for dialogs
	Model   string   // Static model name
	Objects []string // Static object filter
}

// New returns the selector for kind.
func New(kind string, opts Options) (Selector, error) {
	switch kind {
	case KindPrompt, "":
		return NewPrompt(nil, nil), nil
	case KindDialog:
		return NewDialog(opts.Dir), nil
	case KindStatic:
		return NewStatic(opts.Model, opts.Objects), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Choose runs the full selection against store: list the catalog, pick a
// model, load it unfiltered to learn its object names, pick objects, then
// reload with that selection as the filter.
func Choose(sel Selector, catalog *assets.Catalog, store *model.Store) error {
	names, err := catalog.List()
	if err != nil {
		logger.Warn("could not list models", zap.String("dir", catalog.Dir()), zap.Error(err))
	}

	name, err := sel.SelectModel(names)
	if err != nil {
		return err
	}
	if name == "" {
		return ErrNoModel
	}

	if err := store.Load(name, nil); err != nil {
		return err
	}

	filter, err := sel.SelectObjects(store.Objects())
	if err != nil {
		return err
	}
	if len(filter) == 0 {
		return nil
	}

	logger.Debug("reloading with object filter", zap.String("model", name), zap.Strings("objects", filter))
	return store.Load(name, filter)
}
