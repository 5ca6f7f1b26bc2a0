package reduction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mechcli/pkg/contracts/domain"
)

func flexureSeries(loads, crossheads []float64) domain.RawSeries {
	series := make(domain.RawSeries, len(loads))
	for i := range loads {
		series[i] = domain.Sample{Time: float64(i), Load: loads[i], Crosshead: crossheads[i]}
	}
	return series
}

func TestReduceFlexureStandardSpan(t *testing.T) {
	sp := domain.Specimen{ID: "F1", Width: 10, Depth: 4}
	profile := DefaultProfile(MethodFlexure)
	profile.Span = 64

	series := flexureSeries([]float64{0, 100, 200}, []float64{0, 0.5, 1.0})

	curve, err := Reduce(series, sp, profile)
	require.NoError(t, err)
	require.Equal(t, len(series), curve.Len())
	require.Equal(t, curve.Len(), len(curve.Strain))

	// stress = 3FL / (2bd²)
	assert.InDelta(t, 3*100*64.0/(2*10*16), curve.Stress[1], 1e-9)
	// strain = 6δd / L²
	assert.InDelta(t, 6*0.5*4/(64.0*64.0), curve.Strain[1], 1e-12)
}

// The stress formula must invert back to the applied load.
func TestReduceFlexureRoundTrip(t *testing.T) {
	sp := domain.Specimen{ID: "F1", Width: 12.7, Depth: 3.2}
	profile := DefaultProfile(MethodFlexure)
	profile.Span = 51.2

	loads := []float64{10, 55.5, 120.25, 300}
	series := flexureSeries(loads, []float64{0.1, 0.2, 0.3, 0.4})

	curve, err := Reduce(series, sp, profile)
	require.NoError(t, err)

	for i, stress := range curve.Stress {
		recovered := stress * 2 * sp.Width * sp.Depth * sp.Depth / (3 * profile.Span)
		assert.InDelta(t, loads[i], recovered, 1e-9)
	}
}

// The large-span correction converges to the standard formula as the
// deflection becomes small relative to the span.
func TestReduceFlexureLargeSpanConvergence(t *testing.T) {
	sp := domain.Specimen{ID: "F1", Width: 10, Depth: 2}
	span := 100.0

	standard := DefaultProfile(MethodFlexure)
	standard.Span = span
	corrected := DefaultProfile(MethodFlexureLargeSpan)
	corrected.Span = span

	for _, deflection := range []float64{1e-3, 1e-5, 1e-7} {
		series := flexureSeries([]float64{200}, []float64{deflection})

		base, err := Reduce(series, sp, standard)
		require.NoError(t, err)
		large, err := Reduce(series, sp, corrected)
		require.NoError(t, err)

		ratio := large.Stress[0] / base.Stress[0]
		assert.InDelta(t, 1.0, ratio, 10*deflection/span,
			"correction should vanish as deflection/span -> 0")
		// Strain is unchanged by the correction.
		assert.Equal(t, base.Strain[0], large.Strain[0])
	}
}

func TestReduceFlexureLargeSpanCorrection(t *testing.T) {
	sp := domain.Specimen{ID: "F1", Width: 10, Depth: 4}
	span := 64.0
	profile := DefaultProfile(MethodFlexureLargeSpan)
	profile.Span = span

	deflection := 8.0
	series := flexureSeries([]float64{100}, []float64{deflection})

	curve, err := Reduce(series, sp, profile)
	require.NoError(t, err)

	r := deflection / span
	want := 3 * 100 * span / (2 * sp.Width * sp.Depth * sp.Depth) *
		(1 + 6*r*r - 4*(sp.Depth/span)*r)
	assert.InDelta(t, want, curve.Stress[0], 1e-9)
}

func TestReduceTension(t *testing.T) {
	sp := domain.Specimen{ID: "T1", Width: 25, Depth: 2.5, Length: 250}
	profile := DefaultProfile(MethodTension)
	profile.GaugeLength = 50.8

	series := domain.RawSeries{
		{Time: 0, Load: 0, Crosshead: 0, Extensometer: 0},
		{Time: 1, Load: 1250, Crosshead: 0.9, Extensometer: 0.0508},
	}

	curve, err := Reduce(series, sp, profile)
	require.NoError(t, err)

	// stress = F / (b·d), strain from the extensometer channel only.
	assert.InDelta(t, 1250/(25*2.5), curve.Stress[1], 1e-9)
	assert.InDelta(t, 0.0508/50.8, curve.Strain[1], 1e-12)
	assert.Zero(t, curve.Strain[0])
}

func TestReduceLapShear(t *testing.T) {
	sp := domain.Specimen{ID: "L1", BondedArea: 645.16}
	profile := DefaultProfile(MethodLapShear)

	series := domain.RawSeries{
		{Time: 0.0, Load: 0},
		{Time: 0.5, Load: 3225.8},
	}

	curve, err := Reduce(series, sp, profile)
	require.NoError(t, err)

	assert.Nil(t, curve.Strain, "lap-shear defines no strain")
	require.Len(t, curve.Time, 2)
	assert.InDelta(t, 3225.8/645.16, curve.Stress[1], 1e-9)
	assert.Equal(t, 0.5, curve.Time[1])
}

func TestReduceErrors(t *testing.T) {
	validSeries := flexureSeries([]float64{1, 2}, []float64{0.1, 0.2})

	tests := []struct {
		name     string
		specimen domain.Specimen
		profile  func() Profile
		series   domain.RawSeries
		wantErr  error
	}{
		{
			name:     "empty series",
			specimen: domain.Specimen{ID: "S", Width: 10, Depth: 4},
			profile: func() Profile {
				p := DefaultProfile(MethodFlexure)
				p.Span = 64
				return p
			},
			series:  domain.RawSeries{},
			wantErr: ErrEmptySeries,
		},
		{
			name:     "flexure zero width",
			specimen: domain.Specimen{ID: "S", Width: 0, Depth: 4},
			profile: func() Profile {
				p := DefaultProfile(MethodFlexure)
				p.Span = 64
				return p
			},
			series:  validSeries,
			wantErr: ErrInvalidGeometry,
		},
		{
			name:     "flexure negative depth",
			specimen: domain.Specimen{ID: "S", Width: 10, Depth: -1},
			profile: func() Profile {
				p := DefaultProfile(MethodFlexureLargeSpan)
				p.Span = 64
				return p
			},
			series:  validSeries,
			wantErr: ErrInvalidGeometry,
		},
		{
			name:     "tension zero gauge length",
			specimen: domain.Specimen{ID: "S", Width: 25, Depth: 2.5},
			profile: func() Profile {
				return DefaultProfile(MethodTension)
			},
			series:  validSeries,
			wantErr: ErrInvalidGeometry,
		},
		{
			name:     "lap-shear zero area",
			specimen: domain.Specimen{ID: "S"},
			profile: func() Profile {
				return DefaultProfile(MethodLapShear)
			},
			series:  validSeries,
			wantErr: ErrInvalidGeometry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Reduce(tt.series, tt.specimen, tt.profile())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile func() Profile
		wantOK  bool
	}{
		{
			name: "valid flexure",
			profile: func() Profile {
				p := DefaultProfile(MethodFlexure)
				p.Span = 64
				return p
			},
			wantOK: true,
		},
		{
			name: "flexure without span",
			profile: func() Profile {
				return DefaultProfile(MethodFlexure)
			},
			wantOK: false,
		},
		{
			name: "tension without gauge length",
			profile: func() Profile {
				return DefaultProfile(MethodTension)
			},
			wantOK: false,
		},
		{
			name: "tension unordered anchors",
			profile: func() Profile {
				p := DefaultProfile(MethodTension)
				p.GaugeLength = 50.8
				p.Chord.AnchorHigh = p.Chord.AnchorLow
				return p
			},
			wantOK: false,
		},
		{
			name: "lap-shear needs no fixture geometry",
			profile: func() Profile {
				return DefaultProfile(MethodLapShear)
			},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile().Validate()
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
