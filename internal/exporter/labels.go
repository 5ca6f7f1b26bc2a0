package exporter

import "mechcli/internal/reduction"

// strengthLabel names the strength statistic the way the standard's report
// does.
func strengthLabel(m reduction.Method) string {
	switch m {
	case reduction.MethodTension:
		return "Tensile strength"
	case reduction.MethodLapShear:
		return "Shear strength"
	default:
		return "Flexural strength"
	}
}

// modulusLabel names the modulus statistic; empty when the standard
// defines none.
func modulusLabel(m reduction.Method) string {
	switch m {
	case reduction.MethodTension:
		return "Chord tensile modulus"
	case reduction.MethodLapShear:
		return ""
	default:
		return "Tangent flexural modulus"
	}
}

// abscissaHeader is the first CSV column for the method's curves.
func abscissaHeader(m reduction.Method) string {
	if m == reduction.MethodLapShear {
		return "time_s"
	}
	return "strain"
}
