package domain

// Specimen describes one physical test sample. Geometry is in millimetres
// and is fixed once the specimen is constructed; which fields are meaningful
// depends on the test standard (flexure uses Width/Depth, tension adds
// Length, lap-shear only needs BondedArea).
type Specimen struct {
	ID         string  `json:"id" yaml:"id" validate:"required"`
	Width      float64 `json:"width_mm,omitempty" yaml:"width,omitempty" validate:"omitempty,gt=0"`
	Depth      float64 `json:"depth_mm,omitempty" yaml:"depth,omitempty" validate:"omitempty,gt=0"`
	Length     float64 `json:"length_mm,omitempty" yaml:"length,omitempty" validate:"omitempty,gt=0"`
	BondedArea float64 `json:"bonded_area_mm2,omitempty" yaml:"area,omitempty" validate:"omitempty,gt=0"`
}

// Sample is a single time-aligned acquisition point from the test machine.
// Load is in N, displacements in mm, time in seconds. Crosshead is the
// machine displacement channel; Extensometer is the independent gauge-length
// channel and is zero when the instrument did not record one.
type Sample struct {
	Time         float64 `json:"time_s"`
	Load         float64 `json:"load_n"`
	Crosshead    float64 `json:"crosshead_mm"`
	Extensometer float64 `json:"extensometer_mm"`
}

// RawSeries is one specimen's ordered acquisition record. It is owned by the
// specimen it describes and is never mutated after ingestion.
type RawSeries []Sample

// Times returns the time channel as a slice.
func (rs RawSeries) Times() []float64 {
	out := make([]float64, len(rs))
	for i, s := range rs {
		out[i] = s.Time
	}
	return out
}

// Loads returns the load channel as a slice.
func (rs RawSeries) Loads() []float64 {
	out := make([]float64, len(rs))
	for i, s := range rs {
		out[i] = s.Load
	}
	return out
}

// Crossheads returns the crosshead displacement channel as a slice.
func (rs RawSeries) Crossheads() []float64 {
	out := make([]float64, len(rs))
	for i, s := range rs {
		out[i] = s.Crosshead
	}
	return out
}

// Extensometers returns the gauge-length displacement channel as a slice.
func (rs RawSeries) Extensometers() []float64 {
	out := make([]float64, len(rs))
	for i, s := range rs {
		out[i] = s.Extensometer
	}
	return out
}

// SpecimenData pairs a specimen with its acquisition record. This is the
// hand-off shape between the ingestion layer and the reduction engine.
type SpecimenData struct {
	Specimen Specimen  `json:"specimen"`
	Series   RawSeries `json:"series"`
}
