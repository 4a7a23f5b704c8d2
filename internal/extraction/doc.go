// Package extraction turns extracted document text into candidate expenses.
//
// Two parsers share the package: ItemizedParser recovers many line items from
// statements and receipts, BillTotalParser recovers the single grand total of
// an invoice. Pipeline ties them to a text extractor and a categorizer.
// Parsers never return errors; lines that do not yield a valid candidate are
// skipped and counted.
package extraction
