package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"mechcli/internal/reduction"
)

// WriteCurvesCSV writes one CSV per specimen plus the average curve and
// returns the written paths. Column layout is abscissa first, stress second,
// so the files plot directly.
func (w *Writer) WriteCurvesCSV(report *reduction.Report) ([]string, error) {
	dir := filepath.Join(w.outDir, "curves")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create curves directory: %w", err)
	}

	header := abscissaHeader(report.Profile.Method)
	var paths []string

	for _, sr := range report.Specimens {
		path := filepath.Join(dir, sr.Specimen.ID+".csv")
		if err := writeCurveCSV(path, header, sr.Curve); err != nil {
			return nil, fmt.Errorf("specimen %s: %w", sr.Specimen.ID, err)
		}
		paths = append(paths, path)
	}

	if report.Average.Len() > 0 {
		path := filepath.Join(dir, "average.csv")
		if err := writeCurveCSV(path, header, report.Average); err != nil {
			return nil, fmt.Errorf("average curve: %w", err)
		}
		paths = append(paths, path)
	}

	w.logger.Info("curve CSVs written",
		"run_id", report.RunID,
		"count", len(paths),
		"dir", dir,
	)
	return paths, nil
}

func writeCurveCSV(path, abscissa string, c reduction.Curve) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create curve file: %w", err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write([]string{abscissa, "stress_mpa"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < c.Len(); i++ {
		row := []string{
			formatFloat(curveAbscissa(c, i)),
			formatFloat(c.Stress[i]),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush curve file: %w", err)
	}
	return nil
}

// curveAbscissa picks the populated abscissa channel for row i.
func curveAbscissa(c reduction.Curve, i int) float64 {
	if c.Strain != nil {
		return c.Strain[i]
	}
	return c.Time[i]
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
