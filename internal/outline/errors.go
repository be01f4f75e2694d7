package outline

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat indicates a reader could not parse its source.
	ErrFormat = errors.New("format error")
	// ErrStructure indicates the block set violates a tree invariant.
	ErrStructure = errors.New("structural error")
	// ErrMissingContent indicates a caller asked for text that does not exist.
	ErrMissingContent = errors.New("missing content")
	// ErrUnsupportedDistribution indicates an unknown target distribution.
	ErrUnsupportedDistribution = errors.New("unsupported distribution")
)

// FormatError wraps the diagnostic of a reader that rejected its input.
type FormatError struct {
	Reader string // Reader name, for diagnostics
	Err    error  // Underlying parse error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: malformed input: %v", e.Reader, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// StructuralError reports broken ID continuity or a dangling reference. It
// always points at a bug in a reader or a caller that edited blocks directly.
type StructuralError struct {
	Expected int    // Expected block ID, when the failure is a continuity gap
	Found    int    // ID found instead
	Message  string // Set for failures other than continuity gaps
}

func (e *StructuralError) Error() string {
	if e.Message != "" {
		return "structural error: " + e.Message
	}
	return fmt.Sprintf("structural error: expected block id %d but found %d; block ids must start at 1 and be continuous", e.Expected, e.Found)
}

func (e *StructuralError) Unwrap() error {
	return ErrStructure
}

// ContentError reports a request for text of a block or range that is not
// available.
type ContentError struct {
	BlockID int
	Reason  string
}

func (e *ContentError) Error() string {
	if e.BlockID != 0 {
		return fmt.Sprintf("content of block %d unavailable: %s", e.BlockID, e.Reason)
	}
	return "content unavailable: " + e.Reason
}

func (e *ContentError) Unwrap() error {
	return ErrMissingContent
}
