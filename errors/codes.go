package errors

// ErrorCode is the machine-readable code returned in error responses
type ErrorCode int32

const (
	ErrorCode_UNSPECIFIED      ErrorCode = 0
	ErrorCode_HTTP_OK          ErrorCode = 200
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1000
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS   ErrorCode = 1003
	ErrorCode_INTERNAL         ErrorCode = 1004

	// Assessment
	ErrorCode_ASSESSMENT_NOT_FOUND         ErrorCode = 2000
	ErrorCode_ASSESSMENT_TRANSCRIPT_SHORT  ErrorCode = 2001
	ErrorCode_ASSESSMENT_EVALUATION_FAILED ErrorCode = 2002
	ErrorCode_ASSESSMENT_BATCH_INVALID     ErrorCode = 2003
	ErrorCode_ASSESSMENT_IMMUTABLE         ErrorCode = 2004

	// Integration
	ErrorCode_INTEGRATION_CACHE_FAILED        ErrorCode = 3000
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = 3001

	// Database
	ErrorCode_DB_CONNECTION_FAILED ErrorCode = 4000
	ErrorCode_DB_QUERY_FAILED      ErrorCode = 4001
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNSPECIFIED:                     "UNSPECIFIED",
	ErrorCode_HTTP_OK:                         "HTTP_OK",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_NOT_FOUND:                       "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:                  "ALREADY_EXISTS",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_ASSESSMENT_NOT_FOUND:            "ASSESSMENT_NOT_FOUND",
	ErrorCode_ASSESSMENT_TRANSCRIPT_SHORT:     "ASSESSMENT_TRANSCRIPT_SHORT",
	ErrorCode_ASSESSMENT_EVALUATION_FAILED:    "ASSESSMENT_EVALUATION_FAILED",
	ErrorCode_ASSESSMENT_BATCH_INVALID:        "ASSESSMENT_BATCH_INVALID",
	ErrorCode_ASSESSMENT_IMMUTABLE:            "ASSESSMENT_IMMUTABLE",
	ErrorCode_INTEGRATION_CACHE_FAILED:        "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:            "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:                 "DB_QUERY_FAILED",
}

// String returns the code name
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
