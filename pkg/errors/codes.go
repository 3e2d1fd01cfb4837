package errors

import "net/http"

// ErrorCode is a string identifier for a specific error condition.
// Codes are grouped by module prefix so that logging and metrics layers can
// aggregate failures per subsystem without parsing messages.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeValidation         ErrorCode = "COMMON_002"
	ErrCodeUnauthorized       ErrorCode = "COMMON_003"
	ErrCodeForbidden          ErrorCode = "COMMON_004"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_007"
	ErrCodeSerialization      ErrorCode = "COMMON_008"
	ErrCodeDatabaseError      ErrorCode = "COMMON_009"
	ErrCodeCacheError         ErrorCode = "COMMON_010"
	ErrCodeStorageError       ErrorCode = "COMMON_011"
	ErrCodeConfiguration      ErrorCode = "COMMON_012"
)

// Claim module error codes
const (
	ErrCodeClaimNotFound     ErrorCode = "CLAIM_001"
	ErrCodeClaimEmptyDetail  ErrorCode = "CLAIM_002"
	ErrCodeStatusUnchanged   ErrorCode = "CLAIM_003"
	ErrCodeStatusInvalid     ErrorCode = "CLAIM_004"
	ErrCodeOwnClaimSupport   ErrorCode = "CLAIM_005"
	ErrCodeAlreadySupporting ErrorCode = "CLAIM_006"
	ErrCodeNotSupporting     ErrorCode = "CLAIM_007"
	ErrCodeSameDepartment    ErrorCode = "CLAIM_008"
	ErrCodeClaimAccessDenied ErrorCode = "CLAIM_009"
)

// Department module error codes
const (
	ErrCodeDepartmentNotFound   ErrorCode = "DEPT_001"
	ErrCodeDepartmentInvalid    ErrorCode = "DEPT_002"
	ErrCodeNoFallbackDepartment ErrorCode = "DEPT_003"
)

// Classifier module error codes
const (
	ErrCodeModelUnavailable ErrorCode = "CLS_001"
	ErrCodeTrainingInput    ErrorCode = "CLS_002"
	ErrCodeUnmatchedLabels  ErrorCode = "CLS_003"
	ErrCodeArtifactCorrupt  ErrorCode = "CLS_004"
)

// Notification module error codes
const (
	ErrCodeNotificationNotFound ErrorCode = "NTF_001"
	ErrCodeNotificationOwner    ErrorCode = "NTF_002"
)

// Account module error codes
const (
	ErrCodeAccountNotFound ErrorCode = "ACC_001"
)

// errorCodeHTTPStatus maps ErrorCodes to HTTP status codes for the interface layer.
var errorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeStorageError:       http.StatusInternalServerError,
	ErrCodeConfiguration:      http.StatusInternalServerError,

	ErrCodeClaimNotFound:     http.StatusNotFound,
	ErrCodeClaimEmptyDetail:  http.StatusUnprocessableEntity,
	ErrCodeStatusUnchanged:   http.StatusConflict,
	ErrCodeStatusInvalid:     http.StatusBadRequest,
	ErrCodeOwnClaimSupport:   http.StatusConflict,
	ErrCodeAlreadySupporting: http.StatusConflict,
	ErrCodeNotSupporting:     http.StatusConflict,
	ErrCodeSameDepartment:    http.StatusConflict,
	ErrCodeClaimAccessDenied: http.StatusForbidden,

	ErrCodeDepartmentNotFound:   http.StatusNotFound,
	ErrCodeDepartmentInvalid:    http.StatusBadRequest,
	ErrCodeNoFallbackDepartment: http.StatusInternalServerError,

	ErrCodeModelUnavailable: http.StatusServiceUnavailable,
	ErrCodeTrainingInput:    http.StatusBadRequest,
	ErrCodeUnmatchedLabels:  http.StatusBadRequest,
	ErrCodeArtifactCorrupt:  http.StatusInternalServerError,

	ErrCodeNotificationNotFound: http.StatusNotFound,
	ErrCodeNotificationOwner:    http.StatusForbidden,

	ErrCodeAccountNotFound: http.StatusNotFound,
}

// HTTPStatusForCode returns the HTTP status for an ErrorCode, defaulting to 500.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsClientError reports whether the code maps to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError reports whether the code maps to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}
