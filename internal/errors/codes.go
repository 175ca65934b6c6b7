package errors

// Error code constants, CATEGORY_SPECIFIC_DETAIL. The storefront maps these
// codes to its own display strings; Message stays a human fallback.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Cart (CART_) ====================
	CartEmpty        = "CART_EMPTY"
	CartItemNotFound = "CART_ITEM_NOT_FOUND"

	// ==================== Checkout (CHECKOUT_) ====================
	CheckoutServiceRequired  = "CHECKOUT_SERVICE_REQUIRED"
	CheckoutScheduleRequired = "CHECKOUT_SCHEDULE_REQUIRED"
	CheckoutInvalidStep      = "CHECKOUT_INVALID_STEP"
	CheckoutNotReady         = "CHECKOUT_NOT_READY"
	CheckoutNoContact        = "CHECKOUT_NO_CONTACT"

	// ==================== Settings (SETTINGS_) ====================
	SettingsSaveFailed = "SETTINGS_SAVE_FAILED"

	// ==================== Pages (PAGE_) ====================
	PageNotFound = "PAGE_NOT_FOUND"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound      = "ORDER_NOT_FOUND"
	OrderInvalidStatus = "ORDER_INVALID_STATUS"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
