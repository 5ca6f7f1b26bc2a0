// Package exporter renders finished reduction reports for human and
// downstream consumption: a plain-text summary, per-specimen and average
// curve CSVs (the plotting collaborator's input format), and an Excel
// workbook bundling both.
//
// All rounding and unit labeling happens here. The reduction engine hands
// over raw numerics only; nothing in this package feeds back into a
// computation.
package exporter
