// Package dataprocessing ingests raw test-machine exports and hands the
// reduction engine clean, unit-normalized acquisition records.
//
// Supported inputs are CSV and Excel (.xlsx) exports. Files are expected in
// machine units already normalized to N, mm and seconds; this package is
// responsible for locating the header row, mapping the instrument's column
// names onto the time/load/crosshead/extensometer channels, and discarding
// unit rows and any other non-numeric rows before the core ever sees a
// sample. It performs no physics.
package dataprocessing
