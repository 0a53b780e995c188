//go:build !cgo

package jsast

import (
	"context"
	"errors"
)

// ErrNoCGO is returned when parsing is unavailable because the binary was
// built without cgo, so the tree-sitter grammars could not be linked in.
var ErrNoCGO = errors.New("jsast: parsing requires cgo (tree-sitter)")

// Parse is a stub for non-cgo builds. Callers treat the returned error the
// same as any other per-file parse failure: absorb it into empty
// ModuleFacts rather than aborting the run.
func Parse(ctx context.Context, source []byte, ext string) (*ModuleFacts, error) {
	return Empty(), ErrNoCGO
}
