package service

import (
	"context"

	"github.com/MKhiriev/fx-desk/internal/adapter"
	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/models"
)

type adminService struct {
	adapter adapter.ServerAdapter

	logger *logger.Logger
}

func NewAdminService(serverAdapter adapter.ServerAdapter, logger *logger.Logger) AdminService {
	return &adminService{adapter: serverAdapter, logger: logger}
}

func (s *adminService) Deposits(ctx context.Context, filter models.DepositFilter) (models.Page[models.Deposit], error) {
	page, err := s.adapter.Deposits(ctx, filter)
	return page, mapAdapterError(err)
}

func (s *adminService) ApproveDeposit(ctx context.Context, id string) (models.Deposit, error) {
	deposit, err := s.adapter.ApproveDeposit(ctx, id)
	if err != nil {
		return models.Deposit{}, mapAdapterError(err)
	}

	s.logger.Info().Str("func", "adminService.ApproveDeposit").Str("deposit_id", id).Msg("deposit approved")
	return deposit, nil
}

func (s *adminService) RejectDeposit(ctx context.Context, id, reason string) (models.Deposit, error) {
	deposit, err := s.adapter.RejectDeposit(ctx, id, reason)
	if err != nil {
		return models.Deposit{}, mapAdapterError(err)
	}

	s.logger.Info().Str("func", "adminService.RejectDeposit").Str("deposit_id", id).Msg("deposit rejected")
	return deposit, nil
}

func (s *adminService) PaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	methods, err := s.adapter.PaymentMethods(ctx)
	return methods, mapAdapterError(err)
}

func (s *adminService) CreatePaymentMethod(ctx context.Context, method models.PaymentMethod) (models.PaymentMethod, error) {
	created, err := s.adapter.CreatePaymentMethod(ctx, method)
	if err != nil {
		return models.PaymentMethod{}, mapAdapterError(err)
	}

	s.logger.Info().Str("func", "adminService.CreatePaymentMethod").Str("payment_method_id", created.ID).Msg("payment method created")
	return created, nil
}

func (s *adminService) UpdatePaymentMethod(ctx context.Context, method models.PaymentMethod) (models.PaymentMethod, error) {
	updated, err := s.adapter.UpdatePaymentMethod(ctx, method)
	return updated, mapAdapterError(err)
}

func (s *adminService) DeletePaymentMethod(ctx context.Context, id string) error {
	if err := s.adapter.DeletePaymentMethod(ctx, id); err != nil {
		return mapAdapterError(err)
	}

	s.logger.Info().Str("func", "adminService.DeletePaymentMethod").Str("payment_method_id", id).Msg("payment method deleted")
	return nil
}

func (s *adminService) LeverageGroups(ctx context.Context) ([]models.LeverageGroup, error) {
	groups, err := s.adapter.LeverageGroups(ctx)
	return groups, mapAdapterError(err)
}

func (s *adminService) UpdateLeverageGroup(ctx context.Context, group models.LeverageGroup) (models.LeverageGroup, error) {
	updated, err := s.adapter.UpdateLeverageGroup(ctx, group)
	return updated, mapAdapterError(err)
}

func (s *adminService) ExchangeRates(ctx context.Context) ([]models.ExchangeRate, error) {
	rates, err := s.adapter.ExchangeRates(ctx)
	return rates, mapAdapterError(err)
}

func (s *adminService) UpdateExchangeRate(ctx context.Context, rate models.ExchangeRate) (models.ExchangeRate, error) {
	updated, err := s.adapter.UpdateExchangeRate(ctx, rate)
	return updated, mapAdapterError(err)
}
