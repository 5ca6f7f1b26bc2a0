package reduction

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"mechcli/pkg/contracts/domain"
)

// TangentModulus fits the maximum-slope tangent modulus for a flexure
// specimen. It works on the raw load/crosshead record, restricted to the
// samples strictly before the first occurrence of the maximum load. Finite
// differences are taken over a sliding window of cfg.Window samples stepped
// by cfg.Stride; the largest slope m gives
//
//	E = L³m / (4bd³)
//
// in MPa for span L and specimen width b, depth d in mm.
func TangentModulus(series domain.RawSeries, sp domain.Specimen, span float64, cfg TangentConfig) (float64, error) {
	if sp.Width <= 0 || sp.Depth <= 0 || span <= 0 {
		return 0, fmt.Errorf("%w: width=%.3f depth=%.3f span=%.3f", ErrInvalidGeometry, sp.Width, sp.Depth, span)
	}
	if len(series) == 0 {
		return 0, ErrEmptySeries
	}

	loads := series.Loads()
	defl := series.Crossheads()

	// Pre-peak segment: everything strictly before the maximum load.
	peak := 0
	for i, v := range loads {
		if v > loads[peak] {
			peak = i
		}
	}
	loads = loads[:peak]
	defl = defl[:peak]

	if len(loads) < cfg.Window+1 {
		return 0, fmt.Errorf("%w: %d pre-peak samples, need at least %d",
			ErrInsufficientSamples, len(loads), cfg.Window+1)
	}

	found := false
	maxSlope := 0.0
	for e := 0; e+cfg.Window < len(loads); e += cfg.Stride {
		dd := defl[e+cfg.Window] - defl[e]
		if dd == 0 {
			continue
		}
		slope := (loads[e+cfg.Window] - loads[e]) / dd
		if !found || slope > maxSlope {
			maxSlope = slope
			found = true
		}
	}
	if !found {
		return 0, fmt.Errorf("%w: no window with non-zero displacement travel", ErrInsufficientSamples)
	}

	return span * span * span * maxSlope / (4 * sp.Width * sp.Depth * sp.Depth * sp.Depth), nil
}

// ChordAnchors are the finalized strain anchors for a chord modulus pass.
// They are resolved once per population and applied unchanged to every
// specimen.
type ChordAnchors struct {
	Low  float64
	High float64
}

// ResolveChordAnchors decides the chord anchors from the population's break
// strains. When the mean break strain is below the adaptive trigger the
// upper anchor is reduced to AdaptiveScale times that mean, the adjustment
// the standard mandates for low-elongation materials. The anchors must stay
// strictly ordered after adjustment; anything else is a data-quality
// failure, not something to default around.
func ResolveChordAnchors(breakStrains []float64, cfg ChordConfig) (ChordAnchors, error) {
	if len(breakStrains) == 0 {
		return ChordAnchors{}, ErrNoValidSpecimens
	}

	anchors := ChordAnchors{Low: cfg.AnchorLow, High: cfg.AnchorHigh}

	mean, err := stats.Mean(stats.Float64Data(breakStrains))
	if err != nil {
		return ChordAnchors{}, fmt.Errorf("mean break strain: %w", err)
	}
	if cfg.AdaptiveTrigger > 0 && mean < cfg.AdaptiveTrigger {
		anchors.High = cfg.AdaptiveScale * mean
	}

	if anchors.Low <= 0 || anchors.High <= anchors.Low {
		return ChordAnchors{}, fmt.Errorf("%w: anchors %.6f/%.6f unordered after adaptive adjustment (mean break strain %.6f)",
			ErrThresholdNotReached, anchors.Low, anchors.High, mean)
	}
	return anchors, nil
}

// ChordModulus fits the two-point chord modulus between the strain anchors.
// Each anchor index is the first sample whose strain is at or above the
// threshold (the first-crossing rule, never a nearest-value search) so the
// fit is reproducible against the standard's intent.
func ChordModulus(c Curve, anchors ChordAnchors) (float64, error) {
	if c.Len() == 0 {
		return 0, ErrEmptySeries
	}
	if len(c.Strain) != c.Len() {
		return 0, fmt.Errorf("%w: curve has no strain channel", ErrThresholdNotReached)
	}

	idxLow, ok := firstCrossing(c.Strain, anchors.Low)
	if !ok {
		return 0, fmt.Errorf("%w: no strain sample reaches lower anchor %.6f", ErrThresholdNotReached, anchors.Low)
	}
	idxHigh, ok := firstCrossing(c.Strain, anchors.High)
	if !ok {
		return 0, fmt.Errorf("%w: no strain sample reaches upper anchor %.6f", ErrThresholdNotReached, anchors.High)
	}

	dStrain := c.Strain[idxHigh] - c.Strain[idxLow]
	if dStrain == 0 {
		return 0, fmt.Errorf("%w: anchors %.6f/%.6f resolve to the same strain value", ErrThresholdNotReached, anchors.Low, anchors.High)
	}

	return (c.Stress[idxHigh] - c.Stress[idxLow]) / dStrain, nil
}

// firstCrossing returns the first index whose value is at or above the
// threshold.
func firstCrossing(values []float64, threshold float64) (int, bool) {
	for i, v := range values {
		if v >= threshold {
			return i, true
		}
	}
	return 0, false
}
