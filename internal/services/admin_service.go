// internal/services/admin_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vendora/vendora-backend/internal/apperr"
	"github.com/vendora/vendora-backend/internal/config"
	"github.com/vendora/vendora-backend/internal/ledger"
	"github.com/vendora/vendora-backend/internal/models"
	"github.com/vendora/vendora-backend/internal/store"
)

// AdminService covers the operator-only surface that is not tied to a single
// product or seller: platform health numbers and account suspension.
type AdminService struct {
	store         store.Store
	config        *config.Config
	notifications *NotificationService
}

type DashboardStats struct {
	TotalUsers       int64 `json:"total_users"`
	TotalProducts    int64 `json:"total_products"`
	ActiveProducts   int64 `json:"active_products"`
	TotalPurchases   int64 `json:"total_purchases"`
	SalesVolume      int64 `json:"sales_volume"`
	FeesCollected    int64 `json:"fees_collected"`
	FeesWithdrawable int64 `json:"fees_withdrawable"`
	FeeBasisPoints   int   `json:"fee_basis_points"`
	TreasuryBalance  int64 `json:"treasury_balance"`
}

func NewAdminService(store store.Store, cfg *config.Config, notifications *NotificationService) *AdminService {
	return &AdminService{
		store:         store,
		config:        cfg,
		notifications: notifications,
	}
}

// GetDashboardStats aggregates marketplace totals with the current fee
// configuration and treasury funds.
func (s *AdminService) GetDashboardStats(callerID uuid.UUID) (*DashboardStats, error) {
	if callerID != s.config.Platform.OperatorID {
		return nil, apperr.NotAuthorized("only the platform operator may view dashboard stats")
	}

	totals, err := s.store.MarketplaceTotals()
	if err != nil {
		return nil, fmt.Errorf("aggregating marketplace totals: %w", err)
	}

	cfg, err := s.store.GetPlatformConfig()
	if err != nil {
		return nil, fmt.Errorf("loading platform config: %w", err)
	}

	treasury, err := ledger.Balance(s.store, s.config.Platform.TreasuryID)
	if err != nil {
		return nil, fmt.Errorf("reading treasury balance: %w", err)
	}

	return &DashboardStats{
		TotalUsers:       totals.Users,
		TotalProducts:    totals.Products,
		ActiveProducts:   totals.ActiveProducts,
		TotalPurchases:   totals.Purchases,
		SalesVolume:      totals.SalesVolume,
		FeesCollected:    totals.FeesCollected,
		FeesWithdrawable: cfg.AccumulatedFees,
		FeeBasisPoints:   cfg.FeeBasisPoints,
		TreasuryBalance:  treasury,
	}, nil
}

// SuspendUser blocks an account from logging in. Existing purchases and
// listings are untouched.
func (s *AdminService) SuspendUser(callerID, userID uuid.UUID) (*models.User, error) {
	return s.setUserStatus(callerID, userID, models.UserStatusSuspended)
}

// ReinstateUser lifts a suspension.
func (s *AdminService) ReinstateUser(callerID, userID uuid.UUID) (*models.User, error) {
	return s.setUserStatus(callerID, userID, models.UserStatusActive)
}

func (s *AdminService) setUserStatus(callerID, userID uuid.UUID, status models.UserStatus) (*models.User, error) {
	if callerID != s.config.Platform.OperatorID {
		return nil, apperr.NotAuthorized("only the platform operator may change account status")
	}
	if userID == s.config.Platform.OperatorID {
		return nil, apperr.NotAuthorized("the operator account cannot be suspended")
	}

	user, err := s.store.GetUser(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}

	user.Status = status
	if err := s.store.SaveUser(user); err != nil {
		return nil, fmt.Errorf("updating user status: %w", err)
	}

	return user, nil
}
