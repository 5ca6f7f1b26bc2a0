package reduction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mechcli/pkg/contracts/domain"
)

// Analyzer runs the full reduction pipeline for one specimen set under one
// test-standard profile. It holds no mutable state across runs; every Run is
// a pure function of its inputs plus a fresh run identifier.
type Analyzer struct {
	profile  Profile
	material string
	logger   *slog.Logger
}

// NewAnalyzer creates an analyzer for the given profile. The material name
// is carried through to the report for the exporter's benefit.
func NewAnalyzer(profile Profile, material string, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{profile: profile, material: material, logger: logger}
}

// Run reduces every specimen, applies the standard's truncation policy,
// aggregates strength and modulus statistics and averages the curves.
//
// Failures are specimen-scoped wherever possible: a specimen whose reduction
// fails is excluded and reported; a specimen whose modulus fit fails keeps
// its curve and strength. The run aborts only when no valid specimen
// remains, or when chord anchors cannot be ordered for the whole population.
//
// Two ordering barriers are honored: curves are final before any average is
// formed, and every break strain is known before chord anchors are resolved
// for any specimen.
func (a *Analyzer) Run(ctx context.Context, specimens []domain.SpecimenData) (*Report, error) {
	start := time.Now()
	report := &Report{
		RunID:    uuid.NewString(),
		Material: a.material,
		Profile:  a.profile,
	}

	a.logger.InfoContext(ctx, "starting reduction run",
		"run_id", report.RunID,
		"method", a.profile.Method.String(),
		"specimens", len(specimens),
	)

	if err := a.profile.Validate(); err != nil {
		return nil, fmt.Errorf("validate profile: %w", err)
	}
	if len(specimens) == 0 {
		return nil, ErrNoValidSpecimens
	}

	// Phase 1: per-specimen reduction. Each specimen is independent here.
	for _, sd := range specimens {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run canceled: %w", err)
		}

		curve, err := Reduce(sd.Series, sd.Specimen, a.profile)
		if err != nil {
			serr := specimenErr(sd.Specimen.ID, "reduce", err)
			report.Excluded = append(report.Excluded, serr)
			a.logger.WarnContext(ctx, "specimen excluded",
				"run_id", report.RunID,
				"specimen", sd.Specimen.ID,
				"error", err,
			)
			continue
		}

		if a.profile.Method.TruncatesAtPeak() {
			curve = TruncateAtPeak(curve)
		}

		strength, _ := Strength(curve)
		report.Specimens = append(report.Specimens, SpecimenResult{
			Specimen: sd.Specimen,
			Curve:    curve,
			Strength: strength,
		})
	}

	if len(report.Specimens) == 0 {
		return nil, fmt.Errorf("%w: all %d specimens excluded", ErrNoValidSpecimens, len(specimens))
	}

	// Phase 2: population aggregates. Every curve is final from here on.
	strengths := make([]float64, len(report.Specimens))
	for i, r := range report.Specimens {
		strengths[i] = r.Strength
	}
	strength, err := NewAggregate(strengths)
	if err != nil {
		return nil, fmt.Errorf("aggregate strength: %w", err)
	}
	report.Strength = strength

	if a.profile.Method.IsFlexure() {
		for _, r := range report.Specimens {
			if bp, ok := BreakPointOf(r.Specimen.ID, r.Curve); ok {
				report.Breaks = append(report.Breaks, bp)
			}
		}
		if len(report.Breaks) > 0 {
			breakStrains := make([]float64, len(report.Breaks))
			for i, bp := range report.Breaks {
				breakStrains[i] = bp.Strain
			}
			agg, err := NewAggregate(breakStrains)
			if err != nil {
				return nil, fmt.Errorf("aggregate break strain: %w", err)
			}
			report.BreakStrain = agg
		}
	}

	if err := a.fitModuli(ctx, report, specimens); err != nil {
		return nil, err
	}

	report.Average = AverageCurves(curvesOf(report.Specimens), a.profile.Method)

	a.logger.InfoContext(ctx, "reduction run completed",
		"run_id", report.RunID,
		"duration", time.Since(start),
		"valid_specimens", len(report.Specimens),
		"excluded", len(report.Excluded),
		"mean_strength", report.Strength.Mean,
	)
	return report, nil
}

// fitModuli dispatches the profile's modulus strategy and fills the modulus
// aggregate. Per-specimen fit failures are recorded and skipped; they do not
// invalidate the specimen's other results.
func (a *Analyzer) fitModuli(ctx context.Context, report *Report, specimens []domain.SpecimenData) error {
	if a.profile.Method == MethodLapShear {
		return nil // no strain, no modulus
	}

	var anchors ChordAnchors
	if a.profile.Method == MethodTension {
		// Barrier: the adaptive upper anchor depends on the whole
		// population's break strains and must be fixed before any
		// per-specimen modulus.
		breakStrains := make([]float64, 0, len(report.Specimens))
		for _, r := range report.Specimens {
			if n := len(r.Curve.Strain); n > 0 {
				breakStrains = append(breakStrains, r.Curve.Strain[n-1])
			}
		}
		var err error
		anchors, err = ResolveChordAnchors(breakStrains, a.profile.Chord)
		if err != nil {
			return fmt.Errorf("resolve chord anchors: %w", err)
		}
		a.logger.DebugContext(ctx, "chord anchors resolved",
			"run_id", report.RunID,
			"anchor_low", anchors.Low,
			"anchor_high", anchors.High,
		)
	}

	rawByID := make(map[string]domain.RawSeries, len(specimens))
	for _, sd := range specimens {
		rawByID[sd.Specimen.ID] = sd.Series
	}

	var values []float64
	for i := range report.Specimens {
		r := &report.Specimens[i]

		var modulus float64
		var err error
		switch a.profile.Method {
		case MethodTension:
			modulus, err = ChordModulus(r.Curve, anchors)
		default:
			modulus, err = TangentModulus(rawByID[r.Specimen.ID], r.Specimen, a.profile.Span, a.profile.Tangent)
		}

		if err != nil {
			report.Excluded = append(report.Excluded, specimenErr(r.Specimen.ID, "modulus", err))
			a.logger.WarnContext(ctx, "modulus fit failed",
				"run_id", report.RunID,
				"specimen", r.Specimen.ID,
				"error", err,
			)
			continue
		}
		r.Modulus = modulus
		r.ModulusOK = true
		values = append(values, modulus)
	}

	if len(values) == 0 {
		a.logger.WarnContext(ctx, "no specimen produced a modulus",
			"run_id", report.RunID,
		)
		return nil
	}

	agg, err := NewAggregate(values)
	if err != nil {
		return fmt.Errorf("aggregate modulus: %w", err)
	}
	report.Modulus = agg
	return nil
}

func curvesOf(results []SpecimenResult) []Curve {
	out := make([]Curve, len(results))
	for i, r := range results {
		out[i] = r.Curve
	}
	return out
}
