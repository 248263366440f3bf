package questiongen

import (
	"fmt"

	"github.com/eduexcel/icfesgen/internal/item"
	"github.com/eduexcel/icfesgen/internal/normalize"
)

// Validator checks a post-processed item before it is returned.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier, e.g. "structural".
	Name() string

	// Validate returns nil if it passes, or a *CheckError.
	Validate(it *item.Item, req normalize.Request) *CheckError
}

// CheckError describes why an item was rejected.
type CheckError struct {
	Validator string
	Message   string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
