package logging

// Standardized field names for structured logging.
const (
	FieldRunID       = "run_id"
	FieldParty       = "party"
	FieldDebtor      = "debtor"
	FieldCreditor    = "creditor"
	FieldAmount      = "amount"
	FieldCurrency    = "currency"
	FieldGroupSize   = "group_size"
	FieldParties     = "parties"
	FieldPayments    = "payments"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldFormat      = "format"
	FieldAddr        = "addr"
	FieldCombination = "combinations_tried"

	// HTTP request fields
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldRequestID = "request_id"
)
