package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jpfielding/dcmtags.go/pkg/export"
	"github.com/jpfielding/dcmtags.go/pkg/logging"
	"github.com/spf13/cobra"
)

// NewExportCmd creates the export cobra command
func NewExportCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Extract DICOM tag values to CSV/JSON extracts and tag dumps",
		Long: "Scans a directory for DICOM files, extracts a fixed attribute set from each " +
			"file's header (no pixel data), and writes export_dicom_tags.csv/.json plus " +
			"per-file .txt tag dumps. Prior artifacts are replaced on each run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			output, _ := cmd.Flags().GetString("output")
			dump, _ := cmd.Flags().GetString("dump")
			ext, _ := cmd.Flags().GetString("ext")
			recursive, _ := cmd.Flags().GetBool("recursive")
			sanitize, _ := cmd.Flags().GetBool("sanitize")
			logFile, _ := cmd.Flags().GetString("log-file")

			for name, dir := range map[string]string{"input": input, "output": output, "dump": dump} {
				info, err := os.Stat(dir)
				if err != nil || !info.IsDir() {
					return fmt.Errorf("invalid %s path: %q is not a directory", name, dir)
				}
			}

			if logFile != "" {
				logLevel, _ := cmd.Flags().GetString("log-level")
				var level slog.Level
				if err := level.UnmarshalText([]byte(strings.ToUpper(logLevel))); err != nil {
					level = slog.LevelInfo
				}
				sink := logging.Tee(os.Stdout, logging.Rotating(logFile))
				slog.SetDefault(logging.Logger(sink, false, level))
			}

			return export.Run(ctx, export.Config{
				InputDir:  input,
				OutputDir: output,
				DumpDir:   dump,
				Ext:       ext,
				Recursive: recursive,
				Sanitize:  sanitize,
			})
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringP("input", "i", "data/input", "source directory containing DICOM files")
	pf.StringP("output", "o", "data/output", "output directory for extracts (.csv, .json)")
	pf.StringP("dump", "d", "data/tag_dumps", "output directory for per-file tag dumps")
	pf.String("ext", ".dcm", "file extension to scan for (.dcm, .dicom, .gz, .nii)")
	pf.Bool("recursive", false, "include subfolders in the scan")
	pf.Bool("sanitize", false, "sanitize extracted tag values")
	pf.String("log-file", "export_dicom_tags.log", "also write logs to this file (empty disables the file sink)")

	return cmd
}
