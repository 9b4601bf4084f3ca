// internal/store/store.go
package store

import (
	"errors"

	"github.com/google/uuid"

	"github.com/vendora/vendora-backend/internal/models"
)

var (
	// ErrNotFound is returned by point reads when no row matches the key.
	ErrNotFound = errors.New("store: record not found")
	// ErrDuplicate is returned when an insert violates a uniqueness rule.
	ErrDuplicate = errors.New("store: duplicate record")
)

// ProductFilter narrows ListProducts. Zero values mean "no constraint";
// inactive products are hidden unless IncludeInactive is set.
type ProductFilter struct {
	SellerID        *uuid.UUID
	Category        string
	Tag             string
	Search          string
	IncludeInactive bool
	Limit           int
	Offset          int
}

// Totals are the marketplace-wide aggregates for the operator dashboard.
type Totals struct {
	Users          int64 `json:"users"`
	Products       int64 `json:"products"`
	ActiveProducts int64 `json:"active_products"`
	Purchases      int64 `json:"purchases"`
	SalesVolume    int64 `json:"sales_volume"`
	FeesCollected  int64 `json:"fees_collected"`
}

// Store is the keyed persistence boundary every service works against. Each
// entity gets point reads and writes keyed the way the domain addresses it
// (products by numeric id, purchases and reviews by their composite keys,
// wallets by owner). Mutating operations run inside Atomic, whose callback
// receives a Store view scoped to one transaction; ForUpdate reads take row
// locks inside that scope so concurrent settlements serialize.
type Store interface {
	Atomic(fn func(Store) error) error

	// Users
	CreateUser(u *models.User) error
	GetUser(id uuid.UUID) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	SaveUser(u *models.User) error
	CountUsers() (int64, error)

	// Products
	CreateProduct(p *models.Product) error
	GetProduct(id uint64) (*models.Product, error)
	GetProductForUpdate(id uint64) (*models.Product, error)
	SaveProduct(p *models.Product) error
	ListProducts(f ProductFilter) ([]models.Product, int64, error)

	// Purchases
	CreatePurchase(p *models.Purchase) error
	FindPurchase(buyerID uuid.UUID, productID uint64) (*models.Purchase, error)
	ListPurchasesByBuyer(buyerID uuid.UUID, limit, offset int) ([]models.Purchase, int64, error)

	// Seller accounts
	CreateSellerAccount(a *models.SellerAccount) error
	GetSellerAccount(sellerID uuid.UUID) (*models.SellerAccount, error)
	GetSellerAccountForUpdate(sellerID uuid.UUID) (*models.SellerAccount, error)
	SaveSellerAccount(a *models.SellerAccount) error

	// Reviews
	CreateReview(r *models.Review) error
	FindReview(productID uint64, reviewerID uuid.UUID) (*models.Review, error)
	FindReviewForUpdate(productID uint64, reviewerID uuid.UUID) (*models.Review, error)
	SaveReview(r *models.Review) error
	ListReviews(productID uint64, limit, offset int) ([]models.Review, int64, error)

	// Platform config
	GetPlatformConfig() (*models.PlatformConfig, error)
	GetPlatformConfigForUpdate() (*models.PlatformConfig, error)
	SavePlatformConfig(c *models.PlatformConfig) error

	// Wallets
	CreateWallet(w *models.Wallet) error
	GetWalletByOwner(ownerID uuid.UUID) (*models.Wallet, error)
	GetWalletByOwnerForUpdate(ownerID uuid.UUID) (*models.Wallet, error)
	SaveWallet(w *models.Wallet) error
	CreateWalletTransaction(t *models.WalletTransaction) error
	FindWalletTransactionByReference(kind models.WalletTxKind, reference string) (*models.WalletTransaction, error)
	ListWalletTransactions(ownerID uuid.UUID, limit int) ([]models.WalletTransaction, error)

	// Notifications and audit
	CreateNotification(n *models.Notification) error
	ListNotifications(userID uuid.UUID, limit, offset int) ([]models.Notification, int64, error)
	CreateAuditLog(l *models.AuditLog) error

	// Aggregates
	MarketplaceTotals() (*Totals, error)
}
