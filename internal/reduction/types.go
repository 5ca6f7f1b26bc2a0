package reduction

import (
	"mechcli/pkg/contracts/domain"
)

// Method selects which test standard's formulas and strategies apply.
type Method int

const (
	// MethodFlexure is three-point flexure at a standard support span.
	MethodFlexure Method = iota
	// MethodFlexureLargeSpan is flexure with the large-deflection geometric
	// stress correction applied.
	MethodFlexureLargeSpan
	// MethodTension is uniaxial tension with an extensometer strain channel.
	MethodTension
	// MethodLapShear is single-lap adhesive shear; stress is reported
	// against time because no strain is defined.
	MethodLapShear
)

// String returns the method name used in logs and reports.
func (m Method) String() string {
	switch m {
	case MethodFlexure:
		return "flexure"
	case MethodFlexureLargeSpan:
		return "flexure-large-span"
	case MethodTension:
		return "tension"
	case MethodLapShear:
		return "lap-shear"
	default:
		return "unknown"
	}
}

// IsFlexure reports whether the method uses the flexure formulas.
func (m Method) IsFlexure() bool {
	return m == MethodFlexure || m == MethodFlexureLargeSpan
}

// TruncatesAtPeak reports whether curves must be cut at their own peak
// stress before averaging or modulus fitting. Data past peak load is
// post-rupture slip for these standards and carries no meaning.
func (m Method) TruncatesAtPeak() bool {
	return m == MethodTension || m == MethodLapShear
}

// TangentConfig parameterizes the maximum-slope tangent modulus search.
// Window and Stride are in samples; the defaults follow the standard's
// guidance but must stay configurable because sample rate varies by
// instrument.
type TangentConfig struct {
	Window int `json:"window" yaml:"window" validate:"gt=0"`
	Stride int `json:"stride" yaml:"stride" validate:"gt=0"`
}

// ChordConfig parameterizes the two-point chord modulus. Anchors are strain
// values located by the first-crossing rule. When the mean break strain of
// the population falls below AdaptiveTrigger, AnchorHigh is replaced by
// AdaptiveScale times that mean before any per-specimen modulus is computed.
type ChordConfig struct {
	AnchorLow       float64 `json:"anchor_low" yaml:"anchor_low" validate:"gt=0"`
	AnchorHigh      float64 `json:"anchor_high" yaml:"anchor_high" validate:"gt=0"`
	AdaptiveTrigger float64 `json:"adaptive_trigger" yaml:"adaptive_trigger" validate:"gte=0"`
	AdaptiveScale   float64 `json:"adaptive_scale" yaml:"adaptive_scale" validate:"gte=0"`
}

// Default engine parameters.
const (
	// DefaultTangentWindow is the slope window width in samples.
	DefaultTangentWindow = 25
	// DefaultTangentStride is the slope window step in samples.
	DefaultTangentStride = 5
	// DefaultChordAnchorLow is the lower chord strain anchor.
	DefaultChordAnchorLow = 0.001
	// DefaultChordAnchorHigh is the upper chord strain anchor.
	DefaultChordAnchorHigh = 0.003
	// DefaultAdaptiveTrigger is the mean break strain below which the upper
	// anchor is reduced for low-elongation materials.
	DefaultAdaptiveTrigger = 0.006
	// DefaultAdaptiveScale is the fraction of mean break strain used as the
	// reduced upper anchor.
	DefaultAdaptiveScale = 0.375
	// BreakStrainLimit separates "broke below 5% strain" from specimens that
	// reached the strain limit without catastrophic rupture.
	BreakStrainLimit = 0.05
)

// Profile is the full configuration of one test-standard run: which stress
// formula applies, which modulus strategy, and the fixture geometry shared
// by every specimen. A Profile is immutable for the duration of a run.
type Profile struct {
	Method      Method        `json:"method" yaml:"method"`
	Span        float64       `json:"span_mm,omitempty" yaml:"span,omitempty"`
	GaugeLength float64       `json:"gauge_length_mm,omitempty" yaml:"gauge_length,omitempty"`
	Tangent     TangentConfig `json:"tangent" yaml:"tangent"`
	Chord       ChordConfig   `json:"chord" yaml:"chord"`
}

// DefaultProfile returns a profile for the given method with the default
// engine parameters filled in. Span and GaugeLength are fixture-specific and
// must be supplied by the caller where the method needs them.
func DefaultProfile(method Method) Profile {
	return Profile{
		Method: method,
		Tangent: TangentConfig{
			Window: DefaultTangentWindow,
			Stride: DefaultTangentStride,
		},
		Chord: ChordConfig{
			AnchorLow:       DefaultChordAnchorLow,
			AnchorHigh:      DefaultChordAnchorHigh,
			AdaptiveTrigger: DefaultAdaptiveTrigger,
			AdaptiveScale:   DefaultAdaptiveScale,
		},
	}
}

// Validate checks the profile for internal consistency before a run.
func (p Profile) Validate() error {
	switch p.Method {
	case MethodFlexure, MethodFlexureLargeSpan:
		if p.Span <= 0 {
			return errValidation("Span", "flexure requires a positive support span")
		}
		if p.Tangent.Window <= 0 || p.Tangent.Stride <= 0 {
			return errValidation("Tangent", "window and stride must be positive")
		}
	case MethodTension:
		if p.GaugeLength <= 0 {
			return errValidation("GaugeLength", "tension requires a positive extensometer gauge length")
		}
		if p.Chord.AnchorLow <= 0 || p.Chord.AnchorHigh <= p.Chord.AnchorLow {
			return errValidation("Chord", "chord anchors must satisfy 0 < low < high")
		}
	case MethodLapShear:
		// Geometry lives entirely on the specimen (bonded area).
	default:
		return errValidation("Method", "unknown test method")
	}
	return nil
}

// Curve is one specimen's derived stress sequence with its abscissa. Stress
// and Strain are index-aligned and equal length; for lap-shear Strain is nil
// and Time carries the abscissa instead. Values are MPa, mm/mm and seconds.
type Curve struct {
	Strain []float64 `json:"strain,omitempty"`
	Stress []float64 `json:"stress"`
	Time   []float64 `json:"time,omitempty"`
}

// Len returns the number of points on the curve.
func (c Curve) Len() int {
	return len(c.Stress)
}

// PeakIndex returns the index of the first occurrence of the maximum stress.
// The boolean is false for an empty curve.
func (c Curve) PeakIndex() (int, bool) {
	if len(c.Stress) == 0 {
		return 0, false
	}
	peak := 0
	for i, v := range c.Stress {
		if v > c.Stress[peak] {
			peak = i
		}
	}
	return peak, true
}

// slice returns the curve cut to [0, n) across every populated channel.
func (c Curve) slice(n int) Curve {
	out := Curve{Stress: c.Stress[:n]}
	if c.Strain != nil {
		out.Strain = c.Strain[:n]
	}
	if c.Time != nil {
		out.Time = c.Time[:n]
	}
	return out
}

// Aggregate is a population statistic over the valid specimens: the
// per-specimen values in run order, their arithmetic mean, and the sample
// (N−1 divisor) standard deviation. A single specimen reports a standard
// deviation of exactly zero by convention.
type Aggregate struct {
	PerSpecimen []float64 `json:"per_specimen"`
	Mean        float64   `json:"mean"`
	StdDev      float64   `json:"std_dev"`
}

// BreakPoint is the flexure break-point record: stress and strain at the
// final recorded sample, plus the standard's 5%-strain compliance flag.
type BreakPoint struct {
	SpecimenID            string  `json:"specimen_id"`
	Stress                float64 `json:"stress"`
	Strain                float64 `json:"strain"`
	BrokeBelowFivePercent bool    `json:"broke_below_five_percent"`
}

// SpecimenResult holds everything computed for one specimen that survived
// reduction. ModulusOK is false when the modulus fit failed for this
// specimen alone; its strength and curve remain valid.
type SpecimenResult struct {
	Specimen  domain.Specimen `json:"specimen"`
	Curve     Curve           `json:"curve"`
	Strength  float64         `json:"strength"`
	Modulus   float64         `json:"modulus,omitempty"`
	ModulusOK bool            `json:"modulus_ok"`
}

// Report is the complete outcome of one test-standard run, handed as-is to
// the reporting collaborator. All values are unformatted numerics.
type Report struct {
	RunID     string           `json:"run_id"`
	Material  string           `json:"material"`
	Profile   Profile          `json:"profile"`
	Specimens []SpecimenResult `json:"specimens"`
	Average   Curve            `json:"average"`
	Strength  Aggregate        `json:"strength"`
	Modulus   Aggregate        `json:"modulus"`
	Breaks    []BreakPoint     `json:"breaks,omitempty"`
	// BreakStrain aggregates the flexure break strains; empty for methods
	// without a break-point record.
	BreakStrain Aggregate `json:"break_strain,omitempty"`
	Excluded  []*SpecimenError `json:"-"`
}

// ValidationError reports a configuration field that failed a consistency
// check.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func errValidation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
