package reduction

import "sort"

// averageRagged computes the variable-denominator average of sequences with
// unequal lengths. Specimens are retired as their data runs out: the active
// set starts with every sequence and shrinks at each distinct remaining
// length, so the denominator at an index counts exactly the sequences that
// still have data there. The result extends to the longest sequence without
// ever extrapolating past any specimen's measured extent.
func averageRagged(series [][]float64) []float64 {
	if len(series) == 0 {
		return nil
	}

	// Distinct lengths in ascending order are the retirement boundaries.
	boundaries := make([]int, 0, len(series))
	seen := make(map[int]bool, len(series))
	for _, s := range series {
		if !seen[len(s)] {
			seen[len(s)] = true
			boundaries = append(boundaries, len(s))
		}
	}
	sort.Ints(boundaries)

	longest := boundaries[len(boundaries)-1]
	out := make([]float64, 0, longest)

	active := make([][]float64, len(series))
	copy(active, series)
	prev := 0

	for _, limit := range boundaries {
		for i := prev; i < limit; i++ {
			sum := 0.0
			for _, s := range active {
				sum += s[i]
			}
			out = append(out, sum/float64(len(active)))
		}
		prev = limit

		// Retire every sequence that ends at this boundary.
		kept := active[:0]
		for _, s := range active {
			if len(s) > limit {
				kept = append(kept, s)
			}
		}
		active = kept
	}
	return out
}

// averageTruncated cuts every sequence to the shortest common length and
// returns the per-index mean over that support. Used where the curve must
// end at a physically meaningful rupture boundary.
func averageTruncated(series [][]float64) []float64 {
	if len(series) == 0 {
		return nil
	}
	shortest := len(series[0])
	for _, s := range series[1:] {
		if len(s) < shortest {
			shortest = len(s)
		}
	}
	out := make([]float64, shortest)
	for i := range out {
		sum := 0.0
		for _, s := range series {
			sum += s[i]
		}
		out[i] = sum / float64(len(series))
	}
	return out
}

// AverageCurves combines the specimens' curves into one average curve under
// the method's policy. Flexure keeps the tails of longer specimens via the
// ragged average; tension and lap-shear curves already end at rupture and
// are averaged over the shortest common support only.
func AverageCurves(curves []Curve, method Method) Curve {
	if len(curves) == 0 {
		return Curve{}
	}

	strains := make([][]float64, 0, len(curves))
	stresses := make([][]float64, 0, len(curves))
	times := make([][]float64, 0, len(curves))
	for _, c := range curves {
		stresses = append(stresses, c.Stress)
		if c.Strain != nil {
			strains = append(strains, c.Strain)
		}
		if c.Time != nil {
			times = append(times, c.Time)
		}
	}

	avg := func(series [][]float64) []float64 {
		if len(series) == 0 {
			return nil
		}
		if method.TruncatesAtPeak() {
			return averageTruncated(series)
		}
		return averageRagged(series)
	}

	return Curve{
		Strain: avg(strains),
		Stress: avg(stresses),
		Time:   avg(times),
	}
}
