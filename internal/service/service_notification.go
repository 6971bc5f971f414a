package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/fx-desk/internal/adapter"
	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/models"
)

type notificationService struct {
	adapter adapter.ServerAdapter

	logger *logger.Logger
}

func NewNotificationService(serverAdapter adapter.ServerAdapter, logger *logger.Logger) NotificationService {
	return &notificationService{adapter: serverAdapter, logger: logger}
}

func (s *notificationService) Feed(ctx context.Context) (NotificationFeed, error) {
	items, err := s.adapter.Notifications(ctx)
	if err != nil {
		return NotificationFeed{}, err
	}

	feed := NotificationFeed{Items: items}
	for _, n := range items {
		if !n.Header().Read {
			feed.Unread++
		}
	}
	return feed, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: notification id is required", ErrInvalidInput)
	}
	return mapAdapterError(s.adapter.MarkNotificationRead(ctx, id))
}

// DescribeNotification renders the one-line summary of a notification.
func DescribeNotification(n models.Notification) string {
	switch v := n.(type) {
	case models.DepositNotification:
		return fmt.Sprintf("Deposit of %.2f %s %s", v.Amount, v.Currency, v.Status)
	case models.WithdrawalNotification:
		return fmt.Sprintf("Withdrawal of %.2f %s %s", v.Amount, v.Currency, v.Status)
	case models.TicketReplyNotification:
		return fmt.Sprintf("New reply on %q", v.Subject)
	case models.LeverageChangeNotification:
		return fmt.Sprintf("Leverage of %s changed from 1:%d to 1:%d", v.AccountID, v.OldLeverage, v.NewLeverage)
	case models.SystemNotification:
		return v.Title
	default:
		return n.Header().Title
	}
}
