// Package batch handles directory-wide extraction commands
package batch

import (
	"context"
	"fmt"
	"path/filepath"

	"fjacquet/pdf-expenses/cmd/root"
	internalbatch "fjacquet/pdf-expenses/internal/batch"
	"fjacquet/pdf-expenses/internal/common"
	"fjacquet/pdf-expenses/internal/extraction"
	"fjacquet/pdf-expenses/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// InputDir is the directory scanned for PDFs.
	InputDir string
	// OutputDir receives the consolidated CSV.
	OutputDir string
	// Mode is the extraction mode. Empty means the configured default.
	Mode string
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract expenses from every PDF in a directory",
	Long: `Extract expenses from every PDF under a directory and write them,
ordered by date, to a single CSV named after their date range.
Files that cannot be processed are reported and skipped.`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().StringVar(&InputDir, "input-dir", "", "Directory containing PDF files")
	Cmd.Flags().StringVar(&OutputDir, "output-dir", ".", "Directory for the consolidated CSV")
	Cmd.Flags().StringVarP(&Mode, "mode", "m", "", "Extraction mode: itemized or bill (default from config)")
	_ = Cmd.MarkFlagRequired("input-dir")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}
	cfg := appContainer.GetConfig()

	modeName := Mode
	if modeName == "" {
		modeName = cfg.Extraction.Mode
	}
	mode, err := extraction.ParseMode(modeName)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return Run(ctx, appContainer.GetPipeline(), InputDir, OutputDir, mode, cfg.DelimiterRune(), cmd, appContainer.GetLogger())
}

// Run extracts every PDF under inputDir and writes the consolidated CSV to
// outputDir. A summary line goes to cmd's output.
func Run(ctx context.Context, p internalbatch.DocumentProcessor, inputDir, outputDir string, mode extraction.Mode, delimiter rune, cmd *cobra.Command, log logging.Logger) error {
	if inputDir == "" {
		return fmt.Errorf("input directory is required")
	}

	result, err := internalbatch.NewAggregator(p, log).Run(ctx, inputDir, mode)
	if err != nil {
		return err
	}
	if len(result.Expenses) == 0 {
		return fmt.Errorf("no expenses extracted from %d file(s) in %s", len(result.Files), inputDir)
	}

	outputFile := filepath.Join(outputDir, internalbatch.OutputFilename(result.DateRange))
	if err := common.WriteExpensesToCSV(result.Expenses, outputFile, delimiter, log); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Processed %d file(s), %d failed: wrote %d expense(s) to %s\n",
		len(result.Files), result.Failed(), len(result.Expenses), outputFile)
	return err
}
