package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jpfielding/dcmtags.go/pkg/util"
)

// Config carries the validated pipeline settings
type Config struct {
	InputDir  string `json:"input"`
	OutputDir string `json:"output"`
	DumpDir   string `json:"dump"`
	Ext       string `json:"ext"`
	Recursive bool   `json:"recursive"`
	Sanitize  bool   `json:"sanitize"`
}

// Run executes the pipeline: discover files, parse tags, tabulate,
// write outputs, dump raw tags. A single bad input file never aborts
// the run; only output directory setup can.
func Run(ctx context.Context, cfg Config) error {
	start := time.Now()
	slog.InfoContext(ctx, "pipeline starting",
		"config", util.HashUUID(cfg),
		"input", cfg.InputDir)

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.MkdirAll(cfg.DumpDir, 0o755); err != nil {
		return fmt.Errorf("creating dump dir: %w", err)
	}

	paths := Discover(ctx, cfg.InputDir, cfg.Ext, cfg.Recursive)

	records, failed := ParseAll(ctx, paths, cfg.Sanitize)
	if failed > 0 {
		slog.WarnContext(ctx, "some files were skipped", "failed", failed)
	}

	table := Tabulate(records, time.Now())
	if table == nil {
		slog.InfoContext(ctx, "no records extracted, nothing to write")
	} else if !WriteOutputs(ctx, table, cfg.OutputDir) {
		slog.ErrorContext(ctx, "writing extracts failed", "path", cfg.OutputDir)
	}

	DumpAll(ctx, paths, cfg.DumpDir)

	slog.InfoContext(ctx, "pipeline finished",
		"elapsed", time.Since(start).Round(10*time.Millisecond).String(),
		"records", len(records),
		"failed", failed)
	return nil
}
