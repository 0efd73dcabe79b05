package errors

// ErrorCode identifies an application error category. Codes are stable:
// clients match on the string form, so renumbering is safe but renaming is not.
type ErrorCode int

const (
	ErrorCode_INTERNAL ErrorCode = iota
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_INVALID_PAYLOAD
	ErrorCode_NOT_FOUND
	ErrorCode_ALREADY_EXISTS
	ErrorCode_COMPANY_NOT_FOUND
	ErrorCode_TRANSCRIPT_NOT_FOUND
	ErrorCode_TRANSCRIPT_NOT_READY
	ErrorCode_ANALYSIS_NOT_FOUND
	ErrorCode_ANALYSIS_FAILED
	ErrorCode_DISPATCH_EXHAUSTED
	ErrorCode_LLM_RESPONSE_INVALID
	ErrorCode_UNKNOWN_MODEL
	ErrorCode_TRANSCRIPTION_FAILED
	ErrorCode_STORAGE_FAILED
	ErrorCode_CACHE_FAILED
	ErrorCode_DB_CONNECTION_FAILED
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_INTERNAL:             "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:     "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:      "INVALID_PAYLOAD",
	ErrorCode_NOT_FOUND:            "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:       "ALREADY_EXISTS",
	ErrorCode_COMPANY_NOT_FOUND:    "COMPANY_NOT_FOUND",
	ErrorCode_TRANSCRIPT_NOT_FOUND: "TRANSCRIPT_NOT_FOUND",
	ErrorCode_TRANSCRIPT_NOT_READY: "TRANSCRIPT_NOT_READY",
	ErrorCode_ANALYSIS_NOT_FOUND:   "ANALYSIS_NOT_FOUND",
	ErrorCode_ANALYSIS_FAILED:      "ANALYSIS_FAILED",
	ErrorCode_DISPATCH_EXHAUSTED:   "DISPATCH_EXHAUSTED",
	ErrorCode_LLM_RESPONSE_INVALID: "LLM_RESPONSE_INVALID",
	ErrorCode_UNKNOWN_MODEL:        "UNKNOWN_MODEL",
	ErrorCode_TRANSCRIPTION_FAILED: "TRANSCRIPTION_FAILED",
	ErrorCode_STORAGE_FAILED:       "STORAGE_FAILED",
	ErrorCode_CACHE_FAILED:         "CACHE_FAILED",
	ErrorCode_DB_CONNECTION_FAILED: "DB_CONNECTION_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
