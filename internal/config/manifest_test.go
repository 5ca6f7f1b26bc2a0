package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mechcli/internal/reduction"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadManifest(t *testing.T) {
	t.Run("flexure run", func(t *testing.T) {
		path := writeManifest(t, `
material: glass-epoxy
standard: flexure
span: 64
specimens:
  - id: F1
    file: raw/f1.csv
    width: 12.7
    depth: 3.2
  - id: F2
    file: /abs/f2.csv
    width: 12.8
    depth: 3.1
`)
		m, err := LoadManifest(path)
		require.NoError(t, err)
		assert.Equal(t, "glass-epoxy", m.Material)

		profile, err := m.Profile()
		require.NoError(t, err)
		assert.Equal(t, reduction.MethodFlexure, profile.Method)
		assert.Equal(t, 64.0, profile.Span)
		assert.Equal(t, reduction.DefaultTangentWindow, profile.Tangent.Window)

		entries := m.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, filepath.Join(filepath.Dir(path), "raw/f1.csv"), entries[0].Path)
		assert.Equal(t, "/abs/f2.csv", entries[1].Path, "absolute paths kept as-is")
		assert.Equal(t, 12.7, entries[0].Specimen.Width)
	})

	t.Run("tension run with chord override", func(t *testing.T) {
		path := writeManifest(t, `
material: carbon-laminate
standard: tension
gauge_length: 50.8
chord:
  anchor_low: 0.001
  anchor_high: 0.002
  adaptive_trigger: 0.006
  adaptive_scale: 0.375
specimens:
  - id: T1
    file: t1.csv
    width: 25
    depth: 2.5
`)
		m, err := LoadManifest(path)
		require.NoError(t, err)

		profile, err := m.Profile()
		require.NoError(t, err)
		assert.Equal(t, reduction.MethodTension, profile.Method)
		assert.Equal(t, 0.002, profile.Chord.AnchorHigh)
	})

	t.Run("lap-shear run", func(t *testing.T) {
		path := writeManifest(t, `
material: adhesive-A
standard: lap-shear
specimens:
  - id: L1
    file: l1.xlsx
    area: 645.16
`)
		m, err := LoadManifest(path)
		require.NoError(t, err)

		profile, err := m.Profile()
		require.NoError(t, err)
		assert.Equal(t, reduction.MethodLapShear, profile.Method)
		assert.Equal(t, 645.16, m.Entries()[0].Specimen.BondedArea)
	})

	tests := []struct {
		name     string
		manifest string
	}{
		{
			name: "unknown standard",
			manifest: `
material: m
standard: torsion
specimens:
  - {id: S1, file: s1.csv}
`,
		},
		{
			name: "no specimens",
			manifest: `
material: m
standard: lap-shear
specimens: []
`,
		},
		{
			name: "negative geometry",
			manifest: `
material: m
standard: flexure
span: 64
specimens:
  - {id: S1, file: s1.csv, width: -1, depth: 3}
`,
		},
		{
			name: "flexure without span",
			manifest: `
material: m
standard: flexure
specimens:
  - {id: S1, file: s1.csv, width: 10, depth: 3}
`,
		},
		{
			name: "unknown field rejected",
			manifest: `
material: m
standard: lap-shear
surprise: true
specimens:
  - {id: S1, file: s1.csv, area: 100}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.manifest)
			m, err := LoadManifest(path)
			if err != nil {
				return // rejected at load time
			}
			_, err = m.Profile()
			assert.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadManifest(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "results", cfg.Output.Dir)
}
