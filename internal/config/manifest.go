package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	"mechcli/internal/reduction"
	"mechcli/pkg/contracts/domain"
)

// Manifest describes one reduction run: the material, the test standard,
// the fixture geometry, and every specimen with its raw data file. Raw file
// paths are resolved relative to the manifest's own directory.
type Manifest struct {
	Material string  `yaml:"material" validate:"required"`
	Standard string  `yaml:"standard" validate:"required,oneof=flexure flexure-large-span tension lap-shear"`
	Span     float64 `yaml:"span,omitempty" validate:"omitempty,gt=0"`
	Gauge    float64 `yaml:"gauge_length,omitempty" validate:"omitempty,gt=0"`

	// Optional engine parameter overrides; zero values keep the defaults.
	Tangent *reduction.TangentConfig `yaml:"tangent,omitempty"`
	Chord   *reduction.ChordConfig   `yaml:"chord,omitempty"`

	Specimens []ManifestSpecimen `yaml:"specimens" validate:"required,min=1,dive"`

	dir string // directory of the manifest file, for path resolution
}

// ManifestSpecimen is one specimen entry: identity, geometry and raw file.
type ManifestSpecimen struct {
	ID     string  `yaml:"id" validate:"required"`
	File   string  `yaml:"file" validate:"required"`
	Width  float64 `yaml:"width,omitempty" validate:"omitempty,gt=0"`
	Depth  float64 `yaml:"depth,omitempty" validate:"omitempty,gt=0"`
	Length float64 `yaml:"length,omitempty" validate:"omitempty,gt=0"`
	Area   float64 `yaml:"area,omitempty" validate:"omitempty,gt=0"`
}

// LoadManifest reads and validates a run manifest.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.UnmarshalStrict(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", filepath.Base(path), err)
	}
	m.dir = filepath.Dir(path)

	if err := validator.New().Struct(&m); err != nil {
		return nil, fmt.Errorf("validate manifest %s: %w", filepath.Base(path), err)
	}
	if _, err := m.Method(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Method maps the manifest's standard name onto the engine's method tag.
func (m *Manifest) Method() (reduction.Method, error) {
	switch m.Standard {
	case "flexure":
		return reduction.MethodFlexure, nil
	case "flexure-large-span":
		return reduction.MethodFlexureLargeSpan, nil
	case "tension":
		return reduction.MethodTension, nil
	case "lap-shear":
		return reduction.MethodLapShear, nil
	default:
		return 0, fmt.Errorf("unknown standard %q", m.Standard)
	}
}

// Profile builds the engine profile the manifest describes, applying any
// parameter overrides on top of the method defaults.
func (m *Manifest) Profile() (reduction.Profile, error) {
	method, err := m.Method()
	if err != nil {
		return reduction.Profile{}, err
	}

	p := reduction.DefaultProfile(method)
	p.Span = m.Span
	p.GaugeLength = m.Gauge
	if m.Tangent != nil {
		p.Tangent = *m.Tangent
	}
	if m.Chord != nil {
		p.Chord = *m.Chord
	}

	if err := p.Validate(); err != nil {
		return reduction.Profile{}, fmt.Errorf("manifest profile: %w", err)
	}
	return p, nil
}

// Entries converts the specimen list into ingestion entries with raw file
// paths resolved against the manifest directory.
func (m *Manifest) Entries() []ManifestEntry {
	out := make([]ManifestEntry, len(m.Specimens))
	for i, s := range m.Specimens {
		path := s.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(m.dir, path)
		}
		out[i] = ManifestEntry{
			Specimen: domain.Specimen{
				ID:         s.ID,
				Width:      s.Width,
				Depth:      s.Depth,
				Length:     s.Length,
				BondedArea: s.Area,
			},
			Path: path,
		}
	}
	return out
}

// ManifestEntry pairs a resolved specimen with its raw file path.
type ManifestEntry struct {
	Specimen domain.Specimen
	Path     string
}
