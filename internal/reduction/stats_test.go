package reduction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAggregate(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
		wantStd  float64
	}{
		{
			name:     "single specimen reports zero deviation",
			values:   []float64{12500},
			wantMean: 12500,
			wantStd:  0,
		},
		{
			name:     "two specimens",
			values:   []float64{10, 14},
			wantMean: 12,
			wantStd:  2.8284271247,
		},
		{
			name:     "three-replicate strength scenario",
			values:   []float64{20, 22, 19},
			wantMean: 20.3333333333,
			wantStd:  1.5275252317,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg, err := NewAggregate(tt.values)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantMean, agg.Mean, 1e-9)
			assert.InDelta(t, tt.wantStd, agg.StdDev, 1e-9)
			assert.Equal(t, tt.values, agg.PerSpecimen)
		})
	}

	t.Run("empty population", func(t *testing.T) {
		_, err := NewAggregate(nil)
		assert.ErrorIs(t, err, ErrNoValidSpecimens)
	})

	t.Run("input slice is copied, not aliased", func(t *testing.T) {
		values := []float64{1, 2, 3}
		agg, err := NewAggregate(values)
		require.NoError(t, err)
		values[0] = 99
		assert.Equal(t, 1.0, agg.PerSpecimen[0])
	})
}
