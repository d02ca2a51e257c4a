package apperror

// ErrorCode is the system-level category of an error.
type ErrorCode string

// BusinessCode names the specific reason behind an error.
type BusinessCode string

const (
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeValidationFailed    ErrorCode = "VALIDATION_FAILED"
	CodeUnauthorized        ErrorCode = "UNAUTHORIZED"
	CodeConflict            ErrorCode = "CONFLICT"
	CodeUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"
	CodeInternalError       ErrorCode = "INTERNAL_SERVER_ERROR"
)

const (
	BusinessCodeGeneral            BusinessCode = "GENERAL"
	BusinessCodePostNotFound       BusinessCode = "POST_NOT_FOUND"
	BusinessCodeInvalidSlug        BusinessCode = "INVALID_SLUG"
	BusinessCodeInvalidFeedState   BusinessCode = "INVALID_FEED_STATE"
	BusinessCodeContentUnavailable BusinessCode = "CONTENT_UNAVAILABLE"
	BusinessCodePreviewUnavailable BusinessCode = "PREVIEW_UNAVAILABLE"
	BusinessCodeSnapshotFailed     BusinessCode = "SNAPSHOT_FAILED"
)
