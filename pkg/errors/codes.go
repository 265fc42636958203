package errors

import "net/http"

// ErrorCode is a string representation of a specific error condition.
// Codes carry a module prefix ("PAT", "CMP", "RPT", "AI") followed by a
// sequence number so that logs and API responses can be grouped by module.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeNotImplemented     ErrorCode = "COMMON_016"
)

// Aliases used by call sites that predate the module-prefixed naming.
const (
	CodeInternal     = ErrCodeInternal
	CodeNotFound     = ErrCodeNotFound
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")

	CodePatentNotFound  = ErrCodePatentNotFound
	CodeCompanyNotFound = ErrCodeCompanyNotFound
	CodeReportNotFound  = ErrCodeReportNotFound
)

// Patent Module Error Codes
const (
	ErrCodePatentNotFound    ErrorCode = "PAT_001"
	ErrCodePatentParseFailed ErrorCode = "PAT_006"
)

// Company Module Error Codes
const (
	ErrCodeCompanyNotFound    ErrorCode = "CMP_001"
	ErrCodeCompanyParseFailed ErrorCode = "CMP_002"
)

// Report Module Error Codes
const (
	ErrCodeReportNotFound ErrorCode = "RPT_001"
	ErrCodeReportInvalid  ErrorCode = "RPT_002"
	ErrCodeRenderFailed   ErrorCode = "RPT_003"
)

// Reference Data Error Codes
const (
	ErrCodeDataSourceUnavailable ErrorCode = "SRC_001"
	ErrCodeDataSourceParseError  ErrorCode = "SRC_004"
)

// AI/LLM Module Error Codes
const (
	ErrCodeAIModelNotAvailable ErrorCode = "AI_001"
	ErrCodeAIInferenceFailed   ErrorCode = "AI_002"
	ErrCodeAIEmptyResponse     ErrorCode = "AI_006"
	ErrCodeAIMalformedResponse ErrorCode = "AI_007"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodePatentNotFound:    http.StatusNotFound,
	ErrCodePatentParseFailed: http.StatusInternalServerError,

	ErrCodeCompanyNotFound:    http.StatusNotFound,
	ErrCodeCompanyParseFailed: http.StatusInternalServerError,

	ErrCodeReportNotFound: http.StatusNotFound,
	ErrCodeReportInvalid:  http.StatusBadRequest,
	ErrCodeRenderFailed:   http.StatusInternalServerError,

	ErrCodeDataSourceUnavailable: http.StatusServiceUnavailable,
	ErrCodeDataSourceParseError:  http.StatusInternalServerError,

	ErrCodeAIModelNotAvailable: http.StatusServiceUnavailable,
	ErrCodeAIInferenceFailed:   http.StatusInternalServerError,
	ErrCodeAIEmptyResponse:     http.StatusInternalServerError,
	ErrCodeAIMalformedResponse: http.StatusInternalServerError,
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

//Personal.AI order the ending
