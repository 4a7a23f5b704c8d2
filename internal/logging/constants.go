package logging

// Field names shared by every component so log output stays filterable.
const (
	FieldDocumentID = "document_id"
	FieldFile       = "file_path"
	FieldMode       = "mode"
	FieldCount      = "count"
	FieldCategory   = "category"
	FieldScore      = "score"
	FieldReason     = "reason"
	FieldAmount     = "amount"
	FieldLine       = "line"
	FieldPages      = "pages"
	FieldProvider   = "provider"
	FieldModel      = "model"
	FieldDuration   = "duration_ms"
	FieldOutputFile = "output_file"
)
