package reduction

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure modes the engine can report. Callers match
// them with errors.Is through any SpecimenError wrapping.
var (
	// ErrInvalidGeometry is returned when a specimen dimension required by
	// the selected standard (width, depth, bonded area, gauge length, span)
	// is zero or negative.
	ErrInvalidGeometry = errors.New("invalid specimen geometry")

	// ErrEmptySeries is returned when a specimen's raw series holds no
	// samples.
	ErrEmptySeries = errors.New("empty raw series")

	// ErrInsufficientSamples is returned when the pre-peak segment is too
	// short for the sliding-window slope search.
	ErrInsufficientSamples = errors.New("insufficient pre-peak samples")

	// ErrThresholdNotReached is returned when a strain sequence never
	// crosses a chord anchor, or when the adaptive adjustment leaves the
	// anchors unordered. It signals a data-quality problem and is never
	// silently defaulted.
	ErrThresholdNotReached = errors.New("strain threshold not reached")

	// ErrNoValidSpecimens is returned when every specimen in a run was
	// excluded and no aggregate can be formed.
	ErrNoValidSpecimens = errors.New("no valid specimens remain")
)

// SpecimenError records a specimen-scoped failure together with the pipeline
// stage that produced it, so a run can report which specimens were excluded
// and why.
type SpecimenError struct {
	SpecimenID string
	Stage      string
	Err        error
}

// Error implements the error interface.
func (e *SpecimenError) Error() string {
	return fmt.Sprintf("specimen %s: %s: %v", e.SpecimenID, e.Stage, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *SpecimenError) Unwrap() error {
	return e.Err
}

func specimenErr(id, stage string, err error) *SpecimenError {
	return &SpecimenError{SpecimenID: id, Stage: stage, Err: err}
}
