package pipeline

import (
	"context"

	"github.com/Shreyas-077/Diligent-Assessment/internal/config"
	"github.com/Shreyas-077/Diligent-Assessment/internal/exporter"
	"github.com/Shreyas-077/Diligent-Assessment/internal/generator"
	"github.com/Shreyas-077/Diligent-Assessment/internal/loader"
	"github.com/Shreyas-077/Diligent-Assessment/internal/store"
)

// Summary reports what one pipeline run produced.
type Summary struct {
	Dataset *generator.Dataset
	Load    *loader.Report
}

// Run executes generate → export → load → verify as a strict sequential
// pipeline. Each run fully replaces the CSV files and the database; invoking
// it repeatedly is safe.
func Run(ctx context.Context, cfg *config.Config) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fail(StageConfig, err)
	}

	ds, err := generator.Generate(cfg)
	if err != nil {
		return nil, fail(StageGenerate, err)
	}

	if err := exporter.Export(ds, cfg); err != nil {
		return nil, fail(StageExport, err)
	}

	report, err := loader.Load(ctx, cfg)
	if err != nil {
		return nil, fail(StageLoad, err)
	}
	summary := &Summary{Dataset: ds, Load: report}
	if err := report.Err(); err != nil {
		return summary, fail(StageLoad, err)
	}

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return summary, fail(StageLoad, err)
	}
	defer st.Close()

	if err := loader.VerifyIntegrity(ctx, st); err != nil {
		return summary, fail(StageLoad, err)
	}

	return summary, nil
}
