package validators

import (
	"context"
	"net/mail"
	"strings"

	"github.com/MKhiriev/fx-desk/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldID           = "id"
	FieldName         = "name"
	FieldCurrency     = "currency"
	FieldAmounts      = "amounts"
	FieldLeverage     = "leverage"
	FieldCurrencies   = "currencies"
	FieldRate         = "rate"
	FieldRejectReason = "reject_reason"
)

type FormValidator struct{}

func NewFormValidator() Validator {
	return &FormValidator{}
}

func (v *FormValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(value, fields...)
	case *models.Credentials:
		return v.validateCredentials(*value, fields...)

	case models.PaymentMethod:
		return v.validatePaymentMethod(value, fields...)
	case *models.PaymentMethod:
		return v.validatePaymentMethod(*value, fields...)

	case models.LeverageGroup:
		return v.validateLeverageGroup(value, fields...)
	case *models.LeverageGroup:
		return v.validateLeverageGroup(*value, fields...)

	case models.ExchangeRate:
		return v.validateExchangeRate(value, fields...)
	case *models.ExchangeRate:
		return v.validateExchangeRate(*value, fields...)

	case models.Deposit:
		return v.validateDeposit(value, fields...)
	case *models.Deposit:
		return v.validateDeposit(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *FormValidator) validateCredentials(c models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			email := strings.TrimSpace(c.Email)
			if email == "" {
				return ErrEmptyEmail
			}
			if _, err := mail.ParseAddress(email); err != nil {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if c.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *FormValidator) validatePaymentMethod(m models.PaymentMethod, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldCurrency, FieldAmounts}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(m.ID) == "" {
				return ErrEmptyID
			}
		case FieldName:
			if strings.TrimSpace(m.Name) == "" {
				return ErrEmptyName
			}
		case FieldCurrency:
			if !isCurrency(m.Currency) {
				return ErrInvalidCurrency
			}
		case FieldAmounts:
			if m.MinAmount < 0 || m.MaxAmount < 0 {
				return ErrInvalidAmount
			}
			// A zero maximum means no upper bound.
			if m.MaxAmount > 0 && m.MinAmount > m.MaxAmount {
				return ErrInvalidRange
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *FormValidator) validateLeverageGroup(g models.LeverageGroup, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldName, FieldLeverage}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(g.ID) == "" {
				return ErrEmptyID
			}
		case FieldName:
			if strings.TrimSpace(g.Name) == "" {
				return ErrEmptyName
			}
		case FieldLeverage:
			if g.Leverage < 1 || (g.MaxLeverage > 0 && g.Leverage > g.MaxLeverage) {
				return ErrInvalidLeverage
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *FormValidator) validateExchangeRate(r models.ExchangeRate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldCurrencies, FieldRate}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(r.ID) == "" {
				return ErrEmptyID
			}
		case FieldCurrencies:
			if !isCurrency(r.From) || !isCurrency(r.To) {
				return ErrInvalidCurrency
			}
			if strings.EqualFold(r.From, r.To) {
				return ErrSameCurrency
			}
		case FieldRate:
			if r.Rate <= 0 {
				return ErrInvalidRate
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *FormValidator) validateDeposit(d models.Deposit, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(d.ID) == "" {
				return ErrInvalidDepositID
			}
		case FieldRejectReason:
			if strings.TrimSpace(d.RejectReason) == "" {
				return ErrEmptyReason
			}
		case FieldAmounts:
			if d.Amount < 0 {
				return ErrInvalidAmount
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func isCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
