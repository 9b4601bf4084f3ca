// internal/services/notification_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vendora/vendora-backend/internal/models"
	"github.com/vendora/vendora-backend/internal/store"
	"github.com/vendora/vendora-backend/internal/utils"
)

// NotificationService writes stored notices for users. Notices are
// best-effort: failures are logged and never fail the operation that
// triggered them.
type NotificationService struct {
	store store.Store
}

func NewNotificationService(store store.Store) *NotificationService {
	return &NotificationService{store: store}
}

func (s *NotificationService) NotifySale(sellerID uuid.UUID, product *models.Product, payout int64) {
	s.create(&models.Notification{
		UserID:  sellerID,
		Type:    models.NotificationTypeSale,
		Title:   "Product sold",
		Message: fmt.Sprintf("%q sold for %d (your payout: %d)", product.Title, product.Price, payout),
		Data:    models.JSONB{"product_id": product.ID, "payout": payout},
	})
}

func (s *NotificationService) NotifyPayout(userID uuid.UUID, amount int64) {
	s.create(&models.Notification{
		UserID:  userID,
		Type:    models.NotificationTypePayout,
		Title:   "Withdrawal completed",
		Message: fmt.Sprintf("%d was transferred to your wallet", amount),
		Data:    models.JSONB{"amount": amount},
	})
}

func (s *NotificationService) NotifyFeeRateChange(operatorID uuid.UUID, oldBasisPoints, newBasisPoints int) {
	s.create(&models.Notification{
		UserID:  operatorID,
		Type:    models.NotificationTypeFeeRateChange,
		Title:   "Platform fee rate changed",
		Message: fmt.Sprintf("Fee rate changed from %dbp to %dbp", oldBasisPoints, newBasisPoints),
		Data:    models.JSONB{"old_basis_points": oldBasisPoints, "new_basis_points": newBasisPoints},
	})
}

func (s *NotificationService) NotifyProductPulled(sellerID uuid.UUID, product *models.Product) {
	s.create(&models.Notification{
		UserID:  sellerID,
		Type:    models.NotificationTypeProductPulled,
		Title:   "Product deactivated",
		Message: fmt.Sprintf("%q was deactivated by the marketplace operator", product.Title),
		Data:    models.JSONB{"product_id": product.ID},
	})
}

func (s *NotificationService) ListForUser(userID uuid.UUID, params utils.PaginationParams) ([]models.Notification, int64, error) {
	notes, total, err := s.store.ListNotifications(userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("listing notifications: %w", err)
	}
	return notes, total, nil
}

func (s *NotificationService) create(n *models.Notification) {
	n.Status = models.NotificationStatusUnread
	if err := s.store.CreateNotification(n); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": n.UserID,
			"type":    n.Type,
		}).WithError(err).Warn("Failed to store notification")
	}
}
