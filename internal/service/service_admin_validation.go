package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/fx-desk/internal/validators"
	"github.com/MKhiriev/fx-desk/models"
)

// AdminValidationService checks back-office form input before the request
// leaves the client.
type AdminValidationService struct {
	inner     AdminService
	validator validators.Validator
}

func NewAdminValidationService() AdminServiceWrapper {
	return &AdminValidationService{
		validator: validators.NewFormValidator(),
	}
}

func (v *AdminValidationService) Deposits(ctx context.Context, filter models.DepositFilter) (models.Page[models.Deposit], error) {
	if filter.Page < 0 || filter.Limit < 0 {
		return models.Page[models.Deposit]{}, fmt.Errorf("%w: negative page or limit", ErrInvalidInput)
	}
	return v.inner.Deposits(ctx, filter)
}

func (v *AdminValidationService) ApproveDeposit(ctx context.Context, id string) (models.Deposit, error) {
	if err := v.validate(ctx, models.Deposit{ID: id}, validators.FieldID); err != nil {
		return models.Deposit{}, err
	}
	return v.inner.ApproveDeposit(ctx, id)
}

func (v *AdminValidationService) RejectDeposit(ctx context.Context, id, reason string) (models.Deposit, error) {
	reason = strings.TrimSpace(reason)
	if err := v.validate(ctx, models.Deposit{ID: id, RejectReason: reason}, validators.FieldID, validators.FieldRejectReason); err != nil {
		return models.Deposit{}, err
	}
	return v.inner.RejectDeposit(ctx, id, reason)
}

func (v *AdminValidationService) PaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	return v.inner.PaymentMethods(ctx)
}

func (v *AdminValidationService) CreatePaymentMethod(ctx context.Context, method models.PaymentMethod) (models.PaymentMethod, error) {
	if err := v.validate(ctx, method, validators.FieldName, validators.FieldCurrency, validators.FieldAmounts); err != nil {
		return models.PaymentMethod{}, err
	}
	return v.inner.CreatePaymentMethod(ctx, method)
}

func (v *AdminValidationService) UpdatePaymentMethod(ctx context.Context, method models.PaymentMethod) (models.PaymentMethod, error) {
	if err := v.validate(ctx, method, validators.FieldID, validators.FieldName, validators.FieldCurrency, validators.FieldAmounts); err != nil {
		return models.PaymentMethod{}, err
	}
	return v.inner.UpdatePaymentMethod(ctx, method)
}

func (v *AdminValidationService) DeletePaymentMethod(ctx context.Context, id string) error {
	if err := v.validate(ctx, models.PaymentMethod{ID: id}, validators.FieldID); err != nil {
		return err
	}
	return v.inner.DeletePaymentMethod(ctx, id)
}

func (v *AdminValidationService) LeverageGroups(ctx context.Context) ([]models.LeverageGroup, error) {
	return v.inner.LeverageGroups(ctx)
}

func (v *AdminValidationService) UpdateLeverageGroup(ctx context.Context, group models.LeverageGroup) (models.LeverageGroup, error) {
	if err := v.validate(ctx, group); err != nil {
		return models.LeverageGroup{}, err
	}
	return v.inner.UpdateLeverageGroup(ctx, group)
}

func (v *AdminValidationService) ExchangeRates(ctx context.Context) ([]models.ExchangeRate, error) {
	return v.inner.ExchangeRates(ctx)
}

func (v *AdminValidationService) UpdateExchangeRate(ctx context.Context, rate models.ExchangeRate) (models.ExchangeRate, error) {
	rate.From = strings.ToUpper(rate.From)
	rate.To = strings.ToUpper(rate.To)
	if err := v.validate(ctx, rate); err != nil {
		return models.ExchangeRate{}, err
	}
	return v.inner.UpdateExchangeRate(ctx, rate)
}

func (v *AdminValidationService) Wrap(wrapped AdminService) AdminService {
	v.inner = wrapped
	return v
}

func (v *AdminValidationService) validate(ctx context.Context, obj any, fields ...string) error {
	if err := v.validator.Validate(ctx, obj, fields...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}
