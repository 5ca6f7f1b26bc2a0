package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mechcli/internal/reduction"
)

// Writer renders reports into an output directory.
type Writer struct {
	outDir string
	logger *slog.Logger
}

// New creates a writer rooted at outDir. The directory is created on first
// write.
func New(outDir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{outDir: outDir, logger: logger}
}

// WriteSummary renders the plain-text result sheet and returns its path.
func (w *Writer) WriteSummary(report *reduction.Report) (string, error) {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(w.outDir, "results_"+report.Profile.Method.String()+".txt")
	if err := os.WriteFile(path, []byte(formatSummary(report)), 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}

	w.logger.Info("summary written",
		"run_id", report.RunID,
		"path", path,
	)
	return path, nil
}

func formatSummary(report *reduction.Report) string {
	var b strings.Builder
	method := report.Profile.Method

	fmt.Fprintf(&b, "%s test report\n", strings.ToUpper(method.String()[:1])+method.String()[1:])
	fmt.Fprintf(&b, "Run ID : %s\n\n", report.RunID)

	b.WriteString("1. Testing parameters\n")
	fmt.Fprintf(&b, "Material name : %s\n", report.Material)
	switch {
	case method.IsFlexure():
		fmt.Fprintf(&b, "Support span : %g mm\n", report.Profile.Span)
	case method == reduction.MethodTension:
		fmt.Fprintf(&b, "Extensometer gauge length : %g mm\n", report.Profile.GaugeLength)
	}
	fmt.Fprintf(&b, "Specimens tested : %d\n", len(report.Specimens))
	b.WriteString("\n")

	b.WriteString("2. Test results\n")
	if label := modulusLabel(method); label != "" && len(report.Modulus.PerSpecimen) > 0 {
		fmt.Fprintf(&b, "%s : %.0f MPa\n", label, report.Modulus.Mean)
		fmt.Fprintf(&b, "Standard deviation : (%.0f)\n", report.Modulus.StdDev)
	}
	fmt.Fprintf(&b, "%s : %.2f MPa\n", strengthLabel(method), report.Strength.Mean)
	fmt.Fprintf(&b, "Standard deviation : (%.2f)\n", report.Strength.StdDev)

	if len(report.Breaks) > 0 {
		b.WriteString("\n3. Break classification\n")
		fmt.Fprintf(&b, "Mean break strain : %.4f mm/mm\n", report.BreakStrain.Mean)
		fmt.Fprintf(&b, "Standard deviation : (%.4f)\n", report.BreakStrain.StdDev)
		for _, bp := range report.Breaks {
			verdict := "did not break below 5% strain"
			if bp.BrokeBelowFivePercent {
				verdict = "broke below 5% strain"
			}
			fmt.Fprintf(&b, "%s : %.2f MPa at %.4f mm/mm (%s)\n",
				bp.SpecimenID, bp.Stress, bp.Strain, verdict)
		}
	}

	if len(report.Excluded) > 0 {
		fmt.Fprintf(&b, "\n%d. Excluded specimens\n", sectionAfterResults(report))
		for _, e := range report.Excluded {
			fmt.Fprintf(&b, "%s : %s (%v)\n", e.SpecimenID, e.Stage, e.Err)
		}
	}

	return b.String()
}

func sectionAfterResults(report *reduction.Report) int {
	if len(report.Breaks) > 0 {
		return 4
	}
	return 3
}
