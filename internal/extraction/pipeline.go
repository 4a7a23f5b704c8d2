package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fjacquet/pdf-expenses/internal/categorizer"
	"fjacquet/pdf-expenses/internal/dateutils"
	"fjacquet/pdf-expenses/internal/logging"
	"fjacquet/pdf-expenses/internal/models"
	"fjacquet/pdf-expenses/internal/parsererror"
	"fjacquet/pdf-expenses/internal/pdfextract"

	"github.com/google/uuid"
)

// Mode selects how extracted text is parsed.
type Mode string

const (
	ModeItemized Mode = "itemized"
	ModeBill     Mode = "bill"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeItemized, ModeBill:
		return m, nil
	}
	return "", fmt.Errorf("unknown extraction mode %q (expected %q or %q)", s, ModeItemized, ModeBill)
}

// Document is a named PDF payload.
type Document struct {
	Name string
	Data []byte
}

// DocumentValidator checks PDF structure before text extraction and returns
// the page count.
type DocumentValidator interface {
	Validate(data []byte) (int, error)
}

// PipelineConfig holds the collaborators of a Pipeline. Validator and Clock
// are optional.
type PipelineConfig struct {
	Extractor   pdfextract.TextExtractor
	Validator   DocumentValidator
	Categorizer categorizer.Categorizer
	Logger      logging.Logger
	Clock       dateutils.Clock
}

// Pipeline runs extraction, parsing and categorization for one document at a
// time. It holds no per-call state and is safe for concurrent use.
type Pipeline struct {
	extractor   pdfextract.TextExtractor
	validator   DocumentValidator
	categorizer categorizer.Categorizer
	itemized    *ItemizedParser
	bill        *BillTotalParser
	logger      logging.Logger
}

// NewPipeline creates a Pipeline. The extractor and categorizer are required.
func NewPipeline(cfg PipelineConfig) (*Pipeline, error) {
	if cfg.Extractor == nil {
		return nil, errors.New("pipeline requires a text extractor")
	}
	if cfg.Categorizer == nil {
		return nil, errors.New("pipeline requires a categorizer")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.GetLogger()
	}

	opts := []Option{WithLogger(logger), WithClock(cfg.Clock)}
	return &Pipeline{
		extractor:   cfg.Extractor,
		validator:   cfg.Validator,
		categorizer: cfg.Categorizer,
		itemized:    NewItemizedParser(opts...),
		bill:        NewBillTotalParser(opts...),
		logger:      logger,
	}, nil
}

// ProcessDocument extracts text from doc and parses it in the given mode.
// Every returned expense is flagged as coming from a PDF.
func (p *Pipeline) ProcessDocument(ctx context.Context, doc Document, mode Mode) ([]models.CandidateExpense, error) {
	log := p.logger.WithFields(
		logging.Field{Key: logging.FieldDocumentID, Value: uuid.NewString()},
		logging.Field{Key: logging.FieldFile, Value: doc.Name},
		logging.Field{Key: logging.FieldMode, Value: string(mode)},
	)
	start := time.Now()

	if p.validator != nil {
		pages, err := p.validator.Validate(doc.Data)
		if err != nil {
			return nil, parsererror.AsReadError(doc.Name, err)
		}
		log.Debug("Document structure valid", logging.Field{Key: logging.FieldPages, Value: pages})
	}

	text, err := p.extractor.ExtractText(doc.Data)
	if err != nil {
		log.WithError(err).Warn("Text extraction failed")
		return nil, parsererror.AsReadError(doc.Name, err)
	}

	expenses, err := p.process(ctx, log, doc.Name, text, mode)
	if err != nil {
		return nil, err
	}
	for i := range expenses {
		expenses[i].FromPDF = true
	}

	log.Info("Document processed",
		logging.Field{Key: logging.FieldCount, Value: len(expenses)},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	return expenses, nil
}

// ProcessText parses already extracted text in the given mode.
func (p *Pipeline) ProcessText(ctx context.Context, text string, mode Mode) ([]models.CandidateExpense, error) {
	log := p.logger.WithFields(
		logging.Field{Key: logging.FieldDocumentID, Value: uuid.NewString()},
		logging.Field{Key: logging.FieldMode, Value: string(mode)},
	)
	return p.process(ctx, log, "text", text, mode)
}

func (p *Pipeline) process(ctx context.Context, log logging.Logger, source, text string, mode Mode) ([]models.CandidateExpense, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &parsererror.NoExtractableContentError{Source: source}
	}

	switch mode {
	case ModeItemized:
		expenses := p.itemized.Parse(text)
		if len(expenses) == 0 {
			return nil, &parsererror.NoExpensesFoundError{Source: source}
		}
		for i := range expenses {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("categorizing expenses: %w", err)
			}
			expenses[i].Category = p.categorizer.Categorize(ctx, expenses[i].Description)
		}
		log.Debug("Categorized line items",
			logging.Field{Key: logging.FieldCount, Value: len(expenses)},
			logging.Field{Key: "categorizer", Value: p.categorizer.Name()})
		return expenses, nil

	case ModeBill:
		expenses := p.bill.ParseTotal(text)
		if len(expenses) == 0 {
			return nil, &parsererror.NoTotalFoundError{Source: source}
		}
		return expenses, nil
	}

	return nil, fmt.Errorf("unknown extraction mode %q", mode)
}
