// Package extract handles the PDF expense extraction command
package extract

import (
	"context"
	"fmt"

	"fjacquet/pdf-expenses/cmd/common"
	"fjacquet/pdf-expenses/cmd/root"
	"fjacquet/pdf-expenses/internal/extraction"
	"fjacquet/pdf-expenses/internal/logging"
	"fjacquet/pdf-expenses/internal/parsererror"

	"github.com/spf13/cobra"
)

// Mode is the --mode flag value. Empty means the configured default.
var Mode string

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract [file.pdf]",
	Short: "Extract expenses from a PDF to CSV",
	Long: `Extract candidate expenses from a PDF statement or bill and write them as CSV.

In itemized mode every recognizable line item becomes an expense categorized
by description. In bill mode the document's total becomes a single expense.`,
	Args: cobra.MaximumNArgs(1),
	RunE: extractFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Mode, "mode", "m", "", "Extraction mode: itemized or bill (default from config)")
}

func extractFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}
	cfg := appContainer.GetConfig()
	log := appContainer.GetLogger()

	modeName := Mode
	if modeName == "" {
		modeName = cfg.Extraction.Mode
	}
	mode, err := extraction.ParseMode(modeName)
	if err != nil {
		return err
	}

	input := root.SharedFlags.Input
	if len(args) == 1 {
		input = args[0]
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	_, err = common.ProcessFile(ctx, appContainer.GetPipeline(), common.ProcessOptions{
		InputFile:  input,
		OutputFile: root.SharedFlags.Output,
		Mode:       mode,
		Delimiter:  cfg.DelimiterRune(),
	}, cmd.OutOrStdout(), log)
	if parsererror.IsNothingToImport(err) {
		log.Warn("Nothing to import", logging.Field{Key: logging.FieldReason, Value: err.Error()})
	}
	return err
}
