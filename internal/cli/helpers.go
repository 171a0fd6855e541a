package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mesh-intelligence/shoppr/internal/store"
	"github.com/mesh-intelligence/shoppr/pkg/types"
)

// attach opens the configured backend. The caller must Detach it.
func (a *app) attach() (*store.Backend, error) {
	b := store.NewBackend(a.log)
	if err := b.Attach(a.settings.Store); err != nil {
		return nil, sysError(fmt.Errorf("attach backend: %w", err))
	}
	return b, nil
}

// storeError classifies an error returned by a unit of work.
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidName),
		errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrInvalidDate):
		return userError(err)
	}
	return sysError(err)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	return nil
}
