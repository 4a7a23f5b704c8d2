package pdfextract

import (
	"bytes"
	"errors"
	"fmt"

	"fjacquet/pdf-expenses/internal/parsererror"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// StructureValidator checks PDF structure with pdfcpu in relaxed mode.
type StructureValidator struct {
	conf *model.Configuration
}

// NewStructureValidator creates a relaxed pdfcpu validator.
func NewStructureValidator() *StructureValidator {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &StructureValidator{conf: conf}
}

// Validate parses and validates data and returns its page count.
func (v *StructureValidator) Validate(data []byte) (pages int, err error) {
	if len(data) == 0 {
		return 0, &parsererror.DocumentReadError{Err: errors.New("empty document")}
	}

	defer func() {
		if r := recover(); r != nil {
			pages = 0
			err = &parsererror.DocumentReadError{Err: fmt.Errorf("panic while validating PDF: %v", r)}
		}
	}()

	ctx, err := api.ReadContext(bytes.NewReader(data), v.conf)
	if err != nil {
		return 0, &parsererror.DocumentReadError{Err: fmt.Errorf("read PDF structure: %w", err)}
	}
	if err := api.ValidateContext(ctx); err != nil {
		return 0, &parsererror.DocumentReadError{Err: fmt.Errorf("validate PDF structure: %w", err)}
	}
	return ctx.PageCount, nil
}
