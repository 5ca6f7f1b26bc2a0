package reduction

// Strength returns the peak stress a specimen sustained. The boolean is
// false for an empty curve.
func Strength(c Curve) (float64, bool) {
	peak, ok := c.PeakIndex()
	if !ok {
		return 0, false
	}
	return c.Stress[peak], true
}

// TruncateAtPeak cuts the curve at the first occurrence of its maximum
// stress, keeping the peak sample itself. Everything after peak load is
// post-rupture softening or grip slip and must not reach averaging or
// modulus fitting for standards that rupture cleanly.
func TruncateAtPeak(c Curve) Curve {
	peak, ok := c.PeakIndex()
	if !ok {
		return c
	}
	return c.slice(peak + 1)
}

// BreakPointOf reports stress and strain at the final recorded sample, the
// flexure reading of "break" when rupture is not catastrophic, along with
// the standard's 5%-strain compliance flag. The boolean is false when the
// curve is empty or carries no strain channel.
func BreakPointOf(id string, c Curve) (BreakPoint, bool) {
	n := c.Len()
	if n == 0 || len(c.Strain) != n {
		return BreakPoint{}, false
	}
	strain := c.Strain[n-1]
	return BreakPoint{
		SpecimenID:            id,
		Stress:                c.Stress[n-1],
		Strain:                strain,
		BrokeBelowFivePercent: strain <= BreakStrainLimit,
	}, true
}
