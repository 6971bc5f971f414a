package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyEmail       = errors.New("email is required")
	ErrInvalidEmail     = errors.New("email is invalid")
	ErrEmptyPassword    = errors.New("password is required")
	ErrEmptyID          = errors.New("id is required")
	ErrEmptyName        = errors.New("name is required")
	ErrInvalidCurrency  = errors.New("currency must be a 3-letter ISO code")
	ErrInvalidAmount    = errors.New("amount must not be negative")
	ErrInvalidRange     = errors.New("minimum amount must not exceed maximum amount")
	ErrInvalidLeverage  = errors.New("leverage must be between 1 and the maximum leverage")
	ErrInvalidRate      = errors.New("rate must be positive")
	ErrSameCurrency     = errors.New("currencies of a rate must differ")
	ErrEmptyReason      = errors.New("reason is required")
	ErrInvalidDepositID = errors.New("deposit id is required")
)
