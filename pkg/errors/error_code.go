package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter ErrorCode = 100
	ErrCodeInvalidQuantity  ErrorCode = 101
	ErrCodeInvalidPrice     ErrorCode = 102
	ErrCodeInvalidOrder     ErrorCode = 103
	ErrCodeInvalidSymbol    ErrorCode = 104
	ErrCodeInvalidState     ErrorCode = 105

	// Session errors (200-299)
	ErrCodeConnectFailed    ErrorCode = 200
	ErrCodeNotConnected     ErrorCode = 201
	ErrCodeTransportFailed  ErrorCode = 202
	ErrCodeDispatchRejected ErrorCode = 203
	ErrCodeQueueClosed      ErrorCode = 204
	ErrCodeSessionStopped   ErrorCode = 205
	ErrCodeGatewayError     ErrorCode = 206

	// Order errors (300-399)
	ErrCodeOrderNotFound     ErrorCode = 300
	ErrCodeOrderNotOpen      ErrorCode = 301
	ErrCodeOrderRejected     ErrorCode = 302
	ErrCodeInsufficientCash  ErrorCode = 303
	ErrCodeOverfill          ErrorCode = 304
	ErrCodeNoPriceForSymbol  ErrorCode = 305
	ErrCodePositionNotFound  ErrorCode = 306
	ErrCodeNoPositionToClose ErrorCode = 307

	// Data errors (500-599)
	ErrCodeHistoryStoreFailed ErrorCode = 500
	ErrCodeHistoryQueryFailed ErrorCode = 501
	ErrCodeDataNotFound       ErrorCode = 502

	// Config errors (600-699)
	ErrCodeConfigLoadFailed    ErrorCode = 600
	ErrCodeConfigInvalid       ErrorCode = 601
	ErrCodeConfigSchemaFailed  ErrorCode = 602
	ErrCodeConfigReloadFailed  ErrorCode = 603
	ErrCodeConfigColdFieldOnly ErrorCode = 604

	// Callback errors (700-799)
	ErrCodeCallbackFailed ErrorCode = 700
)
