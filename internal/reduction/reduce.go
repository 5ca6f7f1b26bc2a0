package reduction

import (
	"fmt"

	"mechcli/pkg/contracts/domain"
)

// Reduce converts one specimen's raw acquisition record into an engineering
// stress-strain curve under the profile's standard. Units follow the
// ingestion contract: load in N, lengths in mm, which yields stress in MPa
// and strain in mm/mm. The returned curve has exactly one point per raw
// sample; truncation policy is applied later by the analyzer.
func Reduce(series domain.RawSeries, sp domain.Specimen, p Profile) (Curve, error) {
	if len(series) == 0 {
		return Curve{}, ErrEmptySeries
	}

	switch p.Method {
	case MethodFlexure, MethodFlexureLargeSpan:
		return reduceFlexure(series, sp, p.Span, p.Method == MethodFlexureLargeSpan)
	case MethodTension:
		return reduceTension(series, sp, p.GaugeLength)
	case MethodLapShear:
		return reduceLapShear(series, sp)
	default:
		return Curve{}, fmt.Errorf("unknown test method %d", p.Method)
	}
}

// reduceFlexure applies the three-point bending formulas. Standard span:
//
//	stress = 3FL / (2bd²)    strain = 6δd / L²
//
// With largeSpan the stress picks up the geometric correction for large
// support-span-to-depth ratios:
//
//	stress = [3FL / (2bd²)] · [1 + 6(δ/L)² − 4(d/L)(δ/L)]
//
// Strain is unchanged by the correction.
func reduceFlexure(series domain.RawSeries, sp domain.Specimen, span float64, largeSpan bool) (Curve, error) {
	if sp.Width <= 0 || sp.Depth <= 0 {
		return Curve{}, fmt.Errorf("%w: width=%.3f depth=%.3f", ErrInvalidGeometry, sp.Width, sp.Depth)
	}
	if span <= 0 {
		return Curve{}, fmt.Errorf("%w: span=%.3f", ErrInvalidGeometry, span)
	}

	c := Curve{
		Strain: make([]float64, len(series)),
		Stress: make([]float64, len(series)),
	}
	base := 3 * span / (2 * sp.Width * sp.Depth * sp.Depth)
	for i, s := range series {
		stress := base * s.Load
		if largeSpan {
			r := s.Crosshead / span
			stress *= 1 + 6*r*r - 4*(sp.Depth/span)*r
		}
		c.Stress[i] = stress
		c.Strain[i] = 6 * s.Crosshead * sp.Depth / (span * span)
	}
	return c, nil
}

// reduceTension applies the uniaxial formulas. Strain comes from the
// extensometer channel over the fixed gauge length, never from the
// crosshead.
func reduceTension(series domain.RawSeries, sp domain.Specimen, gauge float64) (Curve, error) {
	if sp.Width <= 0 || sp.Depth <= 0 {
		return Curve{}, fmt.Errorf("%w: width=%.3f thickness=%.3f", ErrInvalidGeometry, sp.Width, sp.Depth)
	}
	if gauge <= 0 {
		return Curve{}, fmt.Errorf("%w: gauge length=%.3f", ErrInvalidGeometry, gauge)
	}

	c := Curve{
		Strain: make([]float64, len(series)),
		Stress: make([]float64, len(series)),
	}
	area := sp.Width * sp.Depth
	for i, s := range series {
		c.Stress[i] = s.Load / area
		c.Strain[i] = s.Extensometer / gauge
	}
	return c, nil
}

// reduceLapShear divides load by the bonded area. No strain is defined for
// the joint, so the time channel is kept as the abscissa for stress-vs-time
// reporting.
func reduceLapShear(series domain.RawSeries, sp domain.Specimen) (Curve, error) {
	if sp.BondedArea <= 0 {
		return Curve{}, fmt.Errorf("%w: bonded area=%.3f", ErrInvalidGeometry, sp.BondedArea)
	}

	c := Curve{
		Stress: make([]float64, len(series)),
		Time:   make([]float64, len(series)),
	}
	for i, s := range series {
		c.Stress[i] = s.Load / sp.BondedArea
		c.Time[i] = s.Time
	}
	return c, nil
}
