package dataprocessing

import (
	"strconv"
	"strings"

	"mechcli/pkg/contracts/domain"
)

// columnMap holds the resolved index of each channel in the instrument's
// export, or -1 when the export does not carry the channel.
type columnMap struct {
	time         int
	load         int
	crosshead    int
	extensometer int
}

func newColumnMap() columnMap {
	return columnMap{time: -1, load: -1, crosshead: -1, extensometer: -1}
}

// complete reports whether the mapping is usable: a load channel plus at
// least one displacement channel.
func (cm columnMap) complete() bool {
	return cm.load >= 0 && (cm.crosshead >= 0 || cm.extensometer >= 0)
}

// normalizeHeader lowers a header cell and strips unit suffixes such as
// "Load (N)" or "Time [s]".
func normalizeHeader(cell string) string {
	s := strings.ToLower(strings.TrimSpace(cell))
	for _, cut := range []string{"(", "["} {
		if i := strings.Index(s, cut); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}

// mapColumns tries to interpret a row as the header row. Instrument exports
// disagree on channel names, so several synonyms are accepted per channel.
func mapColumns(row []string) (columnMap, bool) {
	cm := newColumnMap()
	for i, cell := range row {
		switch normalizeHeader(cell) {
		case "time", "test time", "elapsed time":
			cm.time = i
		case "load", "force", "standard force":
			cm.load = i
		case "crosshead", "position", "displacement", "crosshead displacement", "stroke":
			cm.crosshead = i
		case "extensometer", "extension", "gauge displacement", "strain 1":
			cm.extensometer = i
		}
	}
	return cm, cm.complete()
}

// parseRows converts the data rows below the header into a series. Rows
// whose required cells do not parse as numbers (unit rows, footers, blank
// separators) are skipped.
func parseRows(rows [][]string, cm columnMap) domain.RawSeries {
	var series domain.RawSeries
	for _, row := range rows {
		sample, ok := parseSample(row, cm)
		if !ok {
			continue
		}
		if cm.time < 0 {
			// Exports without a time channel are still usable for the
			// strain-based standards; index order stands in for time.
			sample.Time = float64(len(series))
		}
		series = append(series, sample)
	}
	return series
}

func parseSample(row []string, cm columnMap) (domain.Sample, bool) {
	var sample domain.Sample

	cell := func(idx int) (float64, bool) {
		if idx < 0 || idx >= len(row) {
			return 0, idx < 0 // a missing optional channel is fine
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}

	load, ok := cell(cm.load)
	if !ok || cm.load < 0 {
		return sample, false
	}
	sample.Load = load

	if cm.crosshead >= 0 {
		v, ok := cell(cm.crosshead)
		if !ok {
			return sample, false
		}
		sample.Crosshead = v
	}
	if cm.extensometer >= 0 {
		v, ok := cell(cm.extensometer)
		if !ok {
			return sample, false
		}
		sample.Extensometer = v
	}
	if cm.time >= 0 {
		v, ok := cell(cm.time)
		if !ok {
			return sample, false
		}
		sample.Time = v
	}
	return sample, true
}
