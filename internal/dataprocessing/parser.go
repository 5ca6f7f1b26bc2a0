package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"mechcli/pkg/contracts/domain"
)

// Ingestion failure modes.
var (
	// ErrNoHeader is returned when no row in the file maps onto the
	// required channels.
	ErrNoHeader = errors.New("no recognizable header row")
	// ErrNoSamples is returned when the header was found but no data row
	// parsed as numbers.
	ErrNoSamples = errors.New("no numeric samples after header")
)

// headerSearchLimit caps how deep into a file the header row is searched.
// Instrument exports put preamble metadata above the header, never more
// than a couple dozen rows of it.
const headerSearchLimit = 32

// ReadSeries loads one specimen's raw series, dispatching on the file
// extension. CSV and .xlsx exports are supported.
func ReadSeries(path string) (domain.RawSeries, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadExcelSeries(path)
	default:
		return ReadCSVSeries(path)
	}
}

// ReadCSVSeries loads a raw series from a CSV export. The header row is
// located by scanning for a row that names the load channel and at least
// one displacement channel; rows above it (preamble) and non-numeric rows
// below it (units, footers) are discarded.
func ReadCSVSeries(path string) (domain.RawSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raw file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // preamble rows are ragged

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	return seriesFromRows(path, rows)
}

// ReadExcelSeries loads a raw series from an .xlsx export. The sheet
// holding acquisition data is discovered by looking for a header row, the
// same way the CSV path does, trying each sheet in workbook order.
func ReadExcelSeries(path string) (domain.RawSeries, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var lastErr error = ErrNoHeader
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			lastErr = fmt.Errorf("read sheet %q: %w", sheet, err)
			continue
		}
		series, err := seriesFromRows(path, rows)
		if err == nil {
			slog.Debug("acquisition data located",
				slog.String("file", filepath.Base(path)),
				slog.String("sheet", sheet),
				slog.Int("samples", len(series)),
			)
			return series, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%s: %w", filepath.Base(path), lastErr)
}

// seriesFromRows finds the header row within the search limit and parses
// everything below it.
func seriesFromRows(path string, rows [][]string) (domain.RawSeries, error) {
	limit := headerSearchLimit
	if limit > len(rows) {
		limit = len(rows)
	}

	for i := 0; i < limit; i++ {
		cm, ok := mapColumns(rows[i])
		if !ok {
			continue
		}
		series := parseRows(rows[i+1:], cm)
		if len(series) == 0 {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrNoSamples)
		}
		return series, nil
	}
	return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrNoHeader)
}
