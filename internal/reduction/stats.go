package reduction

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// NewAggregate computes the mean and sample (N−1 divisor) standard deviation
// of per-specimen values. A population of one reports a standard deviation
// of exactly zero; this is a reporting convention, not a statistical claim.
func NewAggregate(values []float64) (Aggregate, error) {
	if len(values) == 0 {
		return Aggregate{}, ErrNoValidSpecimens
	}

	mean, err := stats.Mean(stats.Float64Data(values))
	if err != nil {
		return Aggregate{}, fmt.Errorf("mean: %w", err)
	}

	sd := 0.0
	if len(values) > 1 {
		sd, err = stats.StandardDeviationSample(stats.Float64Data(values))
		if err != nil {
			return Aggregate{}, fmt.Errorf("sample standard deviation: %w", err)
		}
	}

	out := Aggregate{
		PerSpecimen: make([]float64, len(values)),
		Mean:        mean,
		StdDev:      sd,
	}
	copy(out.PerSpecimen, values)
	return out, nil
}
