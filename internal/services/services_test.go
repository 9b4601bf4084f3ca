// internal/services/services_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vendora/vendora-backend/internal/config"
	"github.com/vendora/vendora-backend/internal/ledger"
	"github.com/vendora/vendora-backend/internal/models"
	"github.com/vendora/vendora-backend/internal/store/storetest"
	"github.com/vendora/vendora-backend/internal/utils"
)

// marketplaceEnv wires every service against the in-memory store with a
// fixed operator and treasury identity.
type marketplaceEnv struct {
	store         *storetest.Memory
	config        *config.Config
	notifications *NotificationService
	auth          *AuthService
	catalog       *CatalogService
	purchases     *PurchaseService
	earnings      *EarningsService
	reviews       *ReviewService
	admin         *AdminService
}

func newMarketplaceEnv(t *testing.T) *marketplaceEnv {
	t.Helper()

	st := storetest.New()
	cfg := &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
		Platform: config.PlatformConfig{
			OperatorID:     uuid.MustParse("00000000-0000-0000-0000-000000000001"),
			TreasuryID:     uuid.MustParse("00000000-0000-0000-0000-000000000002"),
			FeeBasisPoints: 250,
		},
	}

	utils.SetJWTSecret(cfg.JWT.SecretKey)

	notifications := NewNotificationService(st)
	return &marketplaceEnv{
		store:         st,
		config:        cfg,
		notifications: notifications,
		auth:          NewAuthService(st, cfg),
		catalog:       NewCatalogService(st, cfg, notifications),
		purchases:     NewPurchaseService(st, cfg, notifications),
		earnings:      NewEarningsService(st, cfg, notifications),
		reviews:       NewReviewService(st),
		admin:         NewAdminService(st, cfg, notifications),
	}
}

func (e *marketplaceEnv) operatorID() uuid.UUID { return e.config.Platform.OperatorID }
func (e *marketplaceEnv) treasuryID() uuid.UUID { return e.config.Platform.TreasuryID }

func (e *marketplaceEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Status:   models.UserStatusActive,
	}
	require.NoError(t, u.SetPassword("TestPass123!"))
	require.NoError(t, e.store.CreateUser(u))
	require.NoError(t, e.store.CreateWallet(&models.Wallet{OwnerID: u.ID}))
	return u
}

// createOperator registers the user that matches the configured operator id.
func (e *marketplaceEnv) createOperator(t *testing.T) *models.User {
	t.Helper()
	u := &models.User{
		Username: "operator",
		Email:    "operator@example.com",
		Status:   models.UserStatusActive,
	}
	u.ID = e.operatorID()
	require.NoError(t, u.SetPassword("TestPass123!"))
	require.NoError(t, e.store.CreateUser(u))
	require.NoError(t, e.store.CreateWallet(&models.Wallet{OwnerID: u.ID}))
	return u
}

func (e *marketplaceEnv) fund(t *testing.T, owner uuid.UUID, amount int64) {
	t.Helper()
	_, err := ledger.Deposit(e.store, owner, amount, "test-topup-"+uuid.NewString())
	require.NoError(t, err)
}

func (e *marketplaceEnv) balance(t *testing.T, owner uuid.UUID) int64 {
	t.Helper()
	b, err := ledger.Balance(e.store, owner)
	require.NoError(t, err)
	return b
}

func (e *marketplaceEnv) listProduct(t *testing.T, sellerID uuid.UUID, title string, price int64) *models.Product {
	t.Helper()
	p, err := e.catalog.ListProduct(sellerID, &ListProductRequest{
		Title:       title,
		Description: "a digital download",
		Price:       price,
		ResourceKey: "assets/" + title + ".zip",
		Category:    "templates",
		Tags:        []string{"design"},
	})
	require.NoError(t, err)
	return p
}
