// Command reduce runs one mechanical-test reduction: it reads a YAML run
// manifest, ingests every specimen's raw acquisition file, reduces the batch
// under the manifest's test standard, and writes the summary, curve CSVs and
// Excel workbook into the output directory.
//
// Usage:
//
//	reduce -manifest run.yaml [-out results]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"mechcli/internal/config"
	"mechcli/internal/dataprocessing"
	"mechcli/internal/exporter"
	"mechcli/internal/infrastructure"
	"mechcli/internal/reduction"
)

func main() {
	if err := run(); err != nil {
		slog.Error("reduction failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	manifestPath := flag.String("manifest", "", "path to the run manifest (YAML)")
	outDir := flag.String("out", "", "output directory (overrides MECH_OUTPUT_DIR)")
	flag.Parse()

	if *manifestPath == "" {
		flag.Usage()
		return fmt.Errorf("missing required -manifest flag")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}

	logger, closer, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	if closer != nil {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manifest, err := config.LoadManifest(*manifestPath)
	if err != nil {
		return err
	}
	profile, err := manifest.Profile()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "manifest loaded",
		"material", manifest.Material,
		"standard", manifest.Standard,
		"specimens", len(manifest.Specimens),
	)

	entries := make([]dataprocessing.Entry, 0, len(manifest.Specimens))
	for _, e := range manifest.Entries() {
		entries = append(entries, dataprocessing.Entry{Specimen: e.Specimen, Path: e.Path})
	}

	loaded, err := dataprocessing.LoadAll(ctx, entries, logger)
	if err != nil {
		return err
	}
	if len(loaded.Specimens) == 0 {
		return fmt.Errorf("no raw file could be ingested (%d failures)", len(loaded.Failed))
	}

	analyzer := reduction.NewAnalyzer(profile, manifest.Material, logger)
	report, err := analyzer.Run(ctx, loaded.Specimens)
	if err != nil {
		return err
	}

	// Ingestion failures join the run's exclusion record so the summary
	// accounts for every manifest entry.
	for _, f := range loaded.Failed {
		report.Excluded = append(report.Excluded, &reduction.SpecimenError{
			SpecimenID: f.SpecimenID,
			Stage:      "ingest",
			Err:        f.Err,
		})
	}

	writer := exporter.New(cfg.Output.Dir, logger)
	paths, err := writer.WriteAll(report)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "run finished",
		"run_id", report.RunID,
		"outputs", len(paths),
		"out_dir", cfg.Output.Dir,
	)
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}
