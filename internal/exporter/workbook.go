package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"mechcli/internal/reduction"
)

// WriteWorkbook bundles the run into a single Excel workbook: a summary
// sheet, one sheet per specimen curve, and an average-curve sheet. Returns
// the workbook path.
func (w *Writer) WriteWorkbook(report *reduction.Report) (string, error) {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, report); err != nil {
		return "", err
	}

	header := abscissaHeader(report.Profile.Method)
	for _, sr := range report.Specimens {
		if err := writeCurveSheet(f, sr.Specimen.ID, header, sr.Curve); err != nil {
			return "", fmt.Errorf("specimen %s: %w", sr.Specimen.ID, err)
		}
	}
	if report.Average.Len() > 0 {
		if err := writeCurveSheet(f, "Average", header, report.Average); err != nil {
			return "", fmt.Errorf("average curve: %w", err)
		}
	}

	path := filepath.Join(w.outDir, "report_"+report.Profile.Method.String()+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	w.logger.Info("workbook written",
		"run_id", report.RunID,
		"path", path,
		"sheets", len(report.Specimens)+2,
	)
	return path, nil
}

func writeSummarySheet(f *excelize.File, report *reduction.Report) error {
	const sheet = "Summary"
	f.SetSheetName(f.GetSheetName(0), sheet)

	rows := [][]interface{}{
		{"Material", report.Material},
		{"Method", report.Profile.Method.String()},
		{"Run ID", report.RunID},
		{"Specimens", len(report.Specimens)},
		{},
		{strengthLabel(report.Profile.Method) + " (MPa)", report.Strength.Mean},
		{"Strength std dev (MPa)", report.Strength.StdDev},
	}
	if label := modulusLabel(report.Profile.Method); label != "" && len(report.Modulus.PerSpecimen) > 0 {
		rows = append(rows,
			[]interface{}{label + " (MPa)", report.Modulus.Mean},
			[]interface{}{"Modulus std dev (MPa)", report.Modulus.StdDev},
		)
	}
	rows = append(rows, []interface{}{}, []interface{}{"Specimen", "Strength (MPa)", "Modulus (MPa)"})
	for _, sr := range report.Specimens {
		row := []interface{}{sr.Specimen.ID, sr.Strength}
		if sr.ModulusOK {
			row = append(row, sr.Modulus)
		}
		rows = append(rows, row)
	}
	for _, e := range report.Excluded {
		rows = append(rows, []interface{}{e.SpecimenID, "excluded: " + e.Stage})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("summary cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("summary row %d: %w", i+1, err)
		}
	}
	return nil
}

func writeCurveSheet(f *excelize.File, name, abscissa string, c reduction.Curve) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}

	header := []interface{}{abscissa, "stress_mpa"}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < c.Len(); i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("curve cell: %w", err)
		}
		row := []interface{}{curveAbscissa(c, i), c.Stress[i]}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	return nil
}

// WriteAll renders every output format and returns the paths written, summary
// first.
func (w *Writer) WriteAll(report *reduction.Report) ([]string, error) {
	summary, err := w.WriteSummary(report)
	if err != nil {
		return nil, err
	}
	paths := []string{summary}

	curves, err := w.WriteCurvesCSV(report)
	if err != nil {
		return nil, err
	}
	paths = append(paths, curves...)

	workbook, err := w.WriteWorkbook(report)
	if err != nil {
		return nil, err
	}
	paths = append(paths, workbook)

	return paths, nil
}
