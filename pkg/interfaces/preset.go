// Package interfaces defines the contracts between the configuration layer
// and its storage backends.
package interfaces

import (
	"context"
	"errors"

	"github.com/run-bigpig/genconfig/pkg/genconfig"
)

// ErrPresetNotFound is returned when a named preset does not exist in a store.
var ErrPresetNotFound = errors.New("generation config preset not found")

// PresetStore holds named base generation configurations. Callers resolve a
// preset by name and overlay per-request overrides on a copy; the stored base
// is never mutated.
type PresetStore interface {
	// Save stores the configuration under the given name, replacing any
	// previous revision, and returns the new revision id.
	Save(ctx context.Context, name string, cfg *genconfig.GenerationConfig) (string, error)

	// Get returns a copy of the configuration stored under the given name,
	// or ErrPresetNotFound.
	Get(ctx context.Context, name string) (*genconfig.GenerationConfig, error)

	// Delete removes the named preset. Deleting an absent preset is not an
	// error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored presets.
	List(ctx context.Context) ([]string, error)
}
