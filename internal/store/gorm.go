// internal/store/gorm.go
package store

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vendora/vendora-backend/internal/models"
)

// gormStore implements Store on PostgreSQL through gorm. Connections are
// opened with TranslateError so uniqueness violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
type gormStore struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Atomic(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Users

func (s *gormStore) CreateUser(u *models.User) error {
	return translate(s.db.Create(u).Error)
}

func (s *gormStore) GetUser(id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *gormStore) GetUserByEmail(email string) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *gormStore) GetUserByUsername(username string) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, "username = ?", username).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *gormStore) SaveUser(u *models.User) error {
	return translate(s.db.Save(u).Error)
}

func (s *gormStore) CountUsers() (int64, error) {
	var n int64
	err := s.db.Model(&models.User{}).Count(&n).Error
	return n, translate(err)
}

// Products

func (s *gormStore) CreateProduct(p *models.Product) error {
	return translate(s.db.Create(p).Error)
}

func (s *gormStore) GetProduct(id uint64) (*models.Product, error) {
	var p models.Product
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *gormStore) GetProductForUpdate(id uint64) (*models.Product, error) {
	var p models.Product
	err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *gormStore) SaveProduct(p *models.Product) error {
	return translate(s.db.Save(p).Error)
}

func (s *gormStore) ListProducts(f ProductFilter) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	if !f.IncludeInactive {
		query = query.Where("active = ?", true)
	}
	if f.SellerID != nil {
		query = query.Where("seller_id = ?", *f.SellerID)
	}
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Tag != "" {
		query = query.Where("? = ANY(tags)", f.Tag)
	}
	if f.Search != "" {
		query = query.Where("title ILIKE ?", "%"+f.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	limit, offset := normalizePage(f.Limit, f.Offset)
	var products []models.Product
	err := query.Order("id DESC").Limit(limit).Offset(offset).Find(&products).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return products, total, nil
}

// Purchases

func (s *gormStore) CreatePurchase(p *models.Purchase) error {
	return translate(s.db.Create(p).Error)
}

func (s *gormStore) FindPurchase(buyerID uuid.UUID, productID uint64) (*models.Purchase, error) {
	var p models.Purchase
	err := s.db.First(&p, "buyer_id = ? AND product_id = ?", buyerID, productID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *gormStore) ListPurchasesByBuyer(buyerID uuid.UUID, limit, offset int) ([]models.Purchase, int64, error) {
	query := s.db.Model(&models.Purchase{}).Where("buyer_id = ?", buyerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	limit, offset = normalizePage(limit, offset)
	var purchases []models.Purchase
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&purchases).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return purchases, total, nil
}

// Seller accounts

func (s *gormStore) CreateSellerAccount(a *models.SellerAccount) error {
	return translate(s.db.Create(a).Error)
}

func (s *gormStore) GetSellerAccount(sellerID uuid.UUID) (*models.SellerAccount, error) {
	var a models.SellerAccount
	if err := s.db.First(&a, "seller_id = ?", sellerID).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *gormStore) GetSellerAccountForUpdate(sellerID uuid.UUID) (*models.SellerAccount, error) {
	var a models.SellerAccount
	err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&a, "seller_id = ?", sellerID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *gormStore) SaveSellerAccount(a *models.SellerAccount) error {
	return translate(s.db.Save(a).Error)
}

// Reviews

func (s *gormStore) CreateReview(r *models.Review) error {
	return translate(s.db.Create(r).Error)
}

func (s *gormStore) FindReview(productID uint64, reviewerID uuid.UUID) (*models.Review, error) {
	var r models.Review
	err := s.db.First(&r, "product_id = ? AND reviewer_id = ?", productID, reviewerID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *gormStore) FindReviewForUpdate(productID uint64, reviewerID uuid.UUID) (*models.Review, error) {
	var r models.Review
	err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&r, "product_id = ? AND reviewer_id = ?", productID, reviewerID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *gormStore) SaveReview(r *models.Review) error {
	return translate(s.db.Save(r).Error)
}

func (s *gormStore) ListReviews(productID uint64, limit, offset int) ([]models.Review, int64, error) {
	query := s.db.Model(&models.Review{}).Where("product_id = ?", productID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	limit, offset = normalizePage(limit, offset)
	var reviews []models.Review
	err := query.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&reviews).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return reviews, total, nil
}

// Platform config

func (s *gormStore) GetPlatformConfig() (*models.PlatformConfig, error) {
	var c models.PlatformConfig
	if err := s.db.First(&c, "id = ?", models.PlatformConfigID).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *gormStore) GetPlatformConfigForUpdate() (*models.PlatformConfig, error) {
	var c models.PlatformConfig
	err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, "id = ?", models.PlatformConfigID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *gormStore) SavePlatformConfig(c *models.PlatformConfig) error {
	return translate(s.db.Save(c).Error)
}

// Wallets

func (s *gormStore) CreateWallet(w *models.Wallet) error {
	return translate(s.db.Create(w).Error)
}

func (s *gormStore) GetWalletByOwner(ownerID uuid.UUID) (*models.Wallet, error) {
	var w models.Wallet
	if err := s.db.First(&w, "owner_id = ?", ownerID).Error; err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

func (s *gormStore) GetWalletByOwnerForUpdate(ownerID uuid.UUID) (*models.Wallet, error) {
	var w models.Wallet
	err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&w, "owner_id = ?", ownerID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

func (s *gormStore) SaveWallet(w *models.Wallet) error {
	return translate(s.db.Save(w).Error)
}

func (s *gormStore) CreateWalletTransaction(t *models.WalletTransaction) error {
	return translate(s.db.Create(t).Error)
}

func (s *gormStore) FindWalletTransactionByReference(kind models.WalletTxKind, reference string) (*models.WalletTransaction, error) {
	var t models.WalletTransaction
	err := s.db.First(&t, "kind = ? AND reference = ?", kind, reference).Error
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (s *gormStore) ListWalletTransactions(ownerID uuid.UUID, limit int) ([]models.WalletTransaction, error) {
	limit, _ = normalizePage(limit, 0)
	var txns []models.WalletTransaction
	err := s.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").Limit(limit).Find(&txns).Error
	if err != nil {
		return nil, translate(err)
	}
	return txns, nil
}

// Notifications and audit

func (s *gormStore) CreateNotification(n *models.Notification) error {
	return translate(s.db.Create(n).Error)
}

func (s *gormStore) ListNotifications(userID uuid.UUID, limit, offset int) ([]models.Notification, int64, error) {
	query := s.db.Model(&models.Notification{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	limit, offset = normalizePage(limit, offset)
	var notes []models.Notification
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notes).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return notes, total, nil
}

func (s *gormStore) CreateAuditLog(l *models.AuditLog) error {
	return translate(s.db.Create(l).Error)
}

// Aggregates

func (s *gormStore) MarketplaceTotals() (*Totals, error) {
	var t Totals

	if err := s.db.Model(&models.User{}).Count(&t.Users).Error; err != nil {
		return nil, translate(err)
	}
	if err := s.db.Model(&models.Product{}).Count(&t.Products).Error; err != nil {
		return nil, translate(err)
	}
	if err := s.db.Model(&models.Product{}).Where("active = ?", true).
		Count(&t.ActiveProducts).Error; err != nil {
		return nil, translate(err)
	}
	if err := s.db.Model(&models.Purchase{}).Count(&t.Purchases).Error; err != nil {
		return nil, translate(err)
	}
	if err := s.db.Model(&models.Purchase{}).
		Select("COALESCE(SUM(price_paid), 0)").Scan(&t.SalesVolume).Error; err != nil {
		return nil, translate(err)
	}
	if err := s.db.Model(&models.Purchase{}).
		Select("COALESCE(SUM(fee_paid), 0)").Scan(&t.FeesCollected).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}
