// Package reduction turns raw mechanical-test acquisition records into
// engineering stress-strain curves and reported material properties.
//
// The package is the numerical core of the suite. Given one raw
// load/displacement series per specimen, the geometry of each specimen and a
// test-standard profile, it produces:
//
//  1. Per-specimen stress-strain curves under the standard's formulas
//     (flexure with standard or large support span, tension against an
//     extensometer gauge, lap-shear stress over bonded area)
//  2. A cross-specimen average curve (variable-denominator ragged average,
//     or a strictly truncated mean for standards whose curves end at rupture)
//  3. Strength and modulus statistics (mean and unbiased standard deviation)
//  4. Break-point classification for flexure specimens
//
// # Components
//
//   - types.go: curves, aggregates and the test-standard profile
//   - reduce.go: stress/strain formula dispatch per standard
//   - average.go: ragged and truncated replicate averaging
//   - rupture.go: peak extraction, post-peak truncation, break points
//   - modulus.go: maximum-slope tangent and two-point chord strategies
//   - stats.go: population aggregates
//   - analyzer.go: the orchestrator tying a specimen set together
//
// All computation is pure: no component keeps state between calls. The two
// aggregation barriers (every curve must be final before averaging, and all
// break strains must be known before chord anchors are resolved) are
// sequenced explicitly inside Analyzer.Run.
//
// # Usage
//
//	profile := reduction.DefaultProfile(reduction.MethodTension)
//	profile.GaugeLength = 50.8
//
//	analyzer := reduction.NewAnalyzer(profile, "carbon-laminate", slog.Default())
//	report, err := analyzer.Run(ctx, specimens)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Failures are specimen-scoped wherever the mathematics allows: one bad
// specimen is excluded and reported, not fatal to the batch. Only an empty
// valid set, or chord anchors that cannot be ordered, abort the run.
package reduction
