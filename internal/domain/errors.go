package domain

import "errors"

// Domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrInternalError = errors.New("internal error")

	ErrUserNotFound      = errors.New("user not found")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrUsernameTooShort  = errors.New("username must be at least 3 characters")
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters")
	ErrInvalidCredential = errors.New("invalid username or password")

	ErrLedgerNotFound      = errors.New("ledger not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrShareNotFound       = errors.New("share not found")

	ErrNameRequired        = errors.New("name is required")
	ErrNameTooLong         = errors.New("name exceeds maximum length")
	ErrInvalidCurrency     = errors.New("invalid currency code")
	ErrInvalidRole         = errors.New("invalid share role")
	ErrInvalidEntryType    = errors.New("type must be income or expense")
	ErrAmountNotPositive   = errors.New("amount must be positive")
	ErrCategoryInUse       = errors.New("category has transactions assigned")
	ErrCategoryMismatch    = errors.New("category belongs to a different ledger")
	ErrCategoryNameTaken   = errors.New("a category with this name already exists")
	ErrShareSelf           = errors.New("cannot share a ledger with its owner")
	ErrShareExists         = errors.New("ledger is already shared with this user")
	ErrReceiptTooLarge     = errors.New("receipt exceeds maximum size")
	ErrReceiptInvalid      = errors.New("receipt is not a valid image data URI")
)

// Validation constants
const (
	MinUsernameLength   = 3
	MinPasswordLength   = 6
	MaxUsernameLength   = 32
	MaxLedgerNameLength = 100
	MaxCategoryNameLen  = 100
	MaxDescriptionLen   = 255
	MaxNoteLength       = 1024
)
