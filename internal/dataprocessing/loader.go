package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"mechcli/pkg/contracts/domain"
)

// Entry names one specimen and the raw file carrying its acquisition record.
type Entry struct {
	Specimen domain.Specimen
	Path     string
}

// LoadResult is the outcome of ingesting one batch: the specimens whose
// files parsed, and the per-specimen failures for the run report. Ingestion
// failures are specimen-scoped, matching the engine's exclusion policy.
type LoadResult struct {
	Specimens []domain.SpecimenData
	Failed    []LoadError
}

// LoadError records why one specimen's file could not be ingested.
type LoadError struct {
	SpecimenID string
	Path       string
	Err        error
}

// Error implements the error interface.
func (e LoadError) Error() string {
	return fmt.Sprintf("specimen %s (%s): %v", e.SpecimenID, e.Path, e.Err)
}

// Unwrap exposes the underlying cause.
func (e LoadError) Unwrap() error {
	return e.Err
}

// maxConcurrentReads bounds parallel file ingestion. Reads are independent
// per specimen, so they run concurrently up to this limit.
const maxConcurrentReads = 4

// LoadAll ingests every entry's raw file concurrently. A file that cannot
// be read or parsed excludes only its own specimen; the rest of the batch
// proceeds. Order of the returned specimens follows the entry order.
func LoadAll(ctx context.Context, entries []Entry, logger *slog.Logger) (*LoadResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	type slot struct {
		data domain.SpecimenData
		err  error
	}
	slots := make([]slot, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)

	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			series, err := ReadSeries(entry.Path)
			if err != nil {
				slots[i] = slot{err: err}
				return nil // specimen-scoped, not batch-fatal
			}
			slots[i] = slot{data: domain.SpecimenData{Specimen: entry.Specimen, Series: series}}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load raw files: %w", err)
	}

	result := &LoadResult{}
	for i, s := range slots {
		if s.err != nil {
			result.Failed = append(result.Failed, LoadError{
				SpecimenID: entries[i].Specimen.ID,
				Path:       entries[i].Path,
				Err:        s.err,
			})
			logger.WarnContext(ctx, "raw file skipped",
				"specimen", entries[i].Specimen.ID,
				"path", entries[i].Path,
				"error", s.err,
			)
			continue
		}
		result.Specimens = append(result.Specimens, s.data)
		logger.DebugContext(ctx, "raw file ingested",
			"specimen", entries[i].Specimen.ID,
			"samples", len(s.data.Series),
		)
	}
	return result, nil
}
