// Package validate handles the PDF structure validation command
package validate

import (
	"fmt"

	"fjacquet/pdf-expenses/cmd/root"
	"fjacquet/pdf-expenses/internal/fileutils"
	"fjacquet/pdf-expenses/internal/logging"
	"fjacquet/pdf-expenses/internal/parsererror"
	"fjacquet/pdf-expenses/internal/pdfextract"

	"github.com/spf13/cobra"
)

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate [file.pdf]",
	Short: "Check that a PDF is structurally readable",
	Long:  `Check that a PDF is structurally readable and print its page count.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  validateFunc,
}

// Validator checks PDF bytes and returns the page count.
type Validator interface {
	Validate(data []byte) (int, error)
}

func validateFunc(cmd *cobra.Command, args []string) error {
	input := root.SharedFlags.Input
	if len(args) == 1 {
		input = args[0]
	}

	var v Validator = pdfextract.NewStructureValidator()
	log := logging.GetLogger()
	if c := root.GetContainer(); c != nil {
		v = c.GetValidator()
		log = c.GetLogger()
	}
	return Run(input, v, cmd, log)
}

// Run validates one file and prints its page count to cmd's output.
func Run(input string, v Validator, cmd *cobra.Command, log logging.Logger) error {
	if input == "" {
		return fmt.Errorf("input file is required")
	}
	if err := pdfextract.ValidateFilename(input); err != nil {
		return err
	}
	data, err := fileutils.ReadDocument(input)
	if err != nil {
		return fmt.Errorf("error reading input file: %w", err)
	}

	pages, err := v.Validate(data)
	if err != nil {
		return parsererror.AsReadError(input, err)
	}
	log.Info("Validation successful",
		logging.Field{Key: logging.FieldFile, Value: input},
		logging.Field{Key: logging.FieldPages, Value: pages})
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: valid PDF, %d page(s)\n", input, pages)
	return err
}
