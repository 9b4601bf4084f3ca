// internal/store/storetest/memory_api.go
package storetest

import (
	"github.com/google/uuid"

	"github.com/vendora/vendora-backend/internal/models"
	"github.com/vendora/vendora-backend/internal/store"
)

// Memory methods take the store lock; memTx methods run inside Atomic, which
// already holds it.

func (m *Memory) CreateUser(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.createUser(u)
}

func (m *Memory) GetUser(id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.getUser(id)
}

func (m *Memory) GetUserByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.getUserByEmail(email)
}

func (m *Memory) GetUserByUsername(username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.getUserByUsername(username)
}

func (m *Memory) SaveUser(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.saveUser(u)
}

func (m *Memory) CountUsers() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.countUsers()
}

func (m *Memory) CreateProduct(p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.createProduct(p)
}

func (m *Memory) GetProduct(id uint64) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.getProduct(id)
}

func (m *Memory) GetProductForUpdate(id uint64) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.getProduct(id)
}

func (m *Memory) SaveProduct(p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.saveProduct(p)
}

func (m *Memory) ListProducts(f store.ProductFilter) ([]models.Product, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.listProducts(f)
}

func (m *Memory) CreatePurchase(p *models.Purchase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.createPurchase(p)
}

func (m *Memory) FindPurchase(buyerID uuid.UUID, productID uint64) (*models.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.findPurchase(buyerID, productID)
}

func (m *Memory) ListPurchasesByBuyer(buyerID uuid.UUID, limit, offset int) ([]models.Purchase, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.listPurchasesByBuyer(buyerID, limit, offset)
}

func (m *Memory) CreateSellerAccount(a *models.SellerAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.createSellerAccount(a)
}

func (m *Memory) GetSellerAccount(sellerID uuid.UUID) (*models.SellerAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.getSellerAccount(sellerID)
}

func (m *Memory) GetSellerAccountForUpdate(sellerID uuid.UUID) (*models.SellerAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.getSellerAccount(sellerID)
}

func (m *Memory) SaveSellerAccount(a *models.SellerAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.saveSellerAccount(a)
}

func (m *Memory) CreateReview(r *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.createReview(r)
}

func (m *Memory) FindReview(productID uint64, reviewerID uuid.UUID) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.findReview(productID, reviewerID)
}

func (m *Memory) FindReviewForUpdate(productID uint64, reviewerID uuid.UUID) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.findReview(productID, reviewerID)
}

func (m *Memory) SaveReview(r *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.saveReview(r)
}

func (m *Memory) ListReviews(productID uint64, limit, offset int) ([]models.Review, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.listReviews(productID, limit, offset)
}

func (m *Memory) GetPlatformConfig() (*models.PlatformConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.getPlatformConfig()
}

func (m *Memory) GetPlatformConfigForUpdate() (*models.PlatformConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.getPlatformConfig()
}

func (m *Memory) SavePlatformConfig(c *models.PlatformConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.savePlatformConfig(c)
}

func (m *Memory) CreateWallet(w *models.Wallet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.createWallet(w)
}

func (m *Memory) GetWalletByOwner(ownerID uuid.UUID) (*models.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.getWalletByOwner(ownerID)
}

func (m *Memory) GetWalletByOwnerForUpdate(ownerID uuid.UUID) (*models.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.getWalletByOwner(ownerID)
}

func (m *Memory) SaveWallet(w *models.Wallet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.saveWallet(w)
}

func (m *Memory) CreateWalletTransaction(t *models.WalletTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.createWalletTransaction(t)
}

func (m *Memory) FindWalletTransactionByReference(kind models.WalletTxKind, reference string) (*models.WalletTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.findWalletTransactionByReference(kind, reference)
}

func (m *Memory) ListWalletTransactions(ownerID uuid.UUID, limit int) ([]models.WalletTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.listWalletTransactions(ownerID, limit)
}

func (m *Memory) CreateNotification(n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.createNotification(n)
}

func (m *Memory) ListNotifications(userID uuid.UUID, limit, offset int) ([]models.Notification, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.listNotifications(userID, limit, offset)
}

func (m *Memory) CreateAuditLog(l *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.createAuditLog(l)
}

func (m *Memory) MarketplaceTotals() (*store.Totals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.marketplaceTotals()
}

func (t *memTx) CreateUser(u *models.User) error            { return t.d.createUser(u) }
func (t *memTx) GetUser(id uuid.UUID) (*models.User, error) { return t.d.getUser(id) }
func (t *memTx) GetUserByEmail(email string) (*models.User, error) {
	return t.d.getUserByEmail(email)
}
func (t *memTx) GetUserByUsername(username string) (*models.User, error) {
	return t.d.getUserByUsername(username)
}
func (t *memTx) SaveUser(u *models.User) error { return t.d.saveUser(u) }
func (t *memTx) CountUsers() (int64, error)    { return t.d.countUsers() }

func (t *memTx) CreateProduct(p *models.Product) error { return t.d.createProduct(p) }
func (t *memTx) GetProduct(id uint64) (*models.Product, error) {
	return t.d.getProduct(id)
}
func (t *memTx) GetProductForUpdate(id uint64) (*models.Product, error) {
	return t.d.getProduct(id)
}
func (t *memTx) SaveProduct(p *models.Product) error { return t.d.saveProduct(p) }
func (t *memTx) ListProducts(f store.ProductFilter) ([]models.Product, int64, error) {
	return t.d.listProducts(f)
}

func (t *memTx) CreatePurchase(p *models.Purchase) error { return t.d.createPurchase(p) }
func (t *memTx) FindPurchase(buyerID uuid.UUID, productID uint64) (*models.Purchase, error) {
	return t.d.findPurchase(buyerID, productID)
}
func (t *memTx) ListPurchasesByBuyer(buyerID uuid.UUID, limit, offset int) ([]models.Purchase, int64, error) {
	return t.d.listPurchasesByBuyer(buyerID, limit, offset)
}

func (t *memTx) CreateSellerAccount(a *models.SellerAccount) error {
	return t.d.createSellerAccount(a)
}
func (t *memTx) GetSellerAccount(sellerID uuid.UUID) (*models.SellerAccount, error) {
	return t.d.getSellerAccount(sellerID)
}
func (t *memTx) GetSellerAccountForUpdate(sellerID uuid.UUID) (*models.SellerAccount, error) {
	return t.d.getSellerAccount(sellerID)
}
func (t *memTx) SaveSellerAccount(a *models.SellerAccount) error {
	return t.d.saveSellerAccount(a)
}

func (t *memTx) CreateReview(r *models.Review) error { return t.d.createReview(r) }
func (t *memTx) FindReview(productID uint64, reviewerID uuid.UUID) (*models.Review, error) {
	return t.d.findReview(productID, reviewerID)
}
func (t *memTx) FindReviewForUpdate(productID uint64, reviewerID uuid.UUID) (*models.Review, error) {
	return t.d.findReview(productID, reviewerID)
}
func (t *memTx) SaveReview(r *models.Review) error { return t.d.saveReview(r) }
func (t *memTx) ListReviews(productID uint64, limit, offset int) ([]models.Review, int64, error) {
	return t.d.listReviews(productID, limit, offset)
}

func (t *memTx) GetPlatformConfig() (*models.PlatformConfig, error) {
	return t.d.getPlatformConfig()
}
func (t *memTx) GetPlatformConfigForUpdate() (*models.PlatformConfig, error) {
	return t.d.getPlatformConfig()
}
func (t *memTx) SavePlatformConfig(c *models.PlatformConfig) error {
	return t.d.savePlatformConfig(c)
}

func (t *memTx) CreateWallet(w *models.Wallet) error { return t.d.createWallet(w) }
func (t *memTx) GetWalletByOwner(ownerID uuid.UUID) (*models.Wallet, error) {
	return t.d.getWalletByOwner(ownerID)
}
func (t *memTx) GetWalletByOwnerForUpdate(ownerID uuid.UUID) (*models.Wallet, error) {
	return t.d.getWalletByOwner(ownerID)
}
func (t *memTx) SaveWallet(w *models.Wallet) error { return t.d.saveWallet(w) }
func (t *memTx) CreateWalletTransaction(tx *models.WalletTransaction) error {
	return t.d.createWalletTransaction(tx)
}
func (t *memTx) FindWalletTransactionByReference(kind models.WalletTxKind, reference string) (*models.WalletTransaction, error) {
	return t.d.findWalletTransactionByReference(kind, reference)
}
func (t *memTx) ListWalletTransactions(ownerID uuid.UUID, limit int) ([]models.WalletTransaction, error) {
	return t.d.listWalletTransactions(ownerID, limit)
}

func (t *memTx) CreateNotification(n *models.Notification) error {
	return t.d.createNotification(n)
}
func (t *memTx) ListNotifications(userID uuid.UUID, limit, offset int) ([]models.Notification, int64, error) {
	return t.d.listNotifications(userID, limit, offset)
}
func (t *memTx) CreateAuditLog(l *models.AuditLog) error { return t.d.createAuditLog(l) }

func (t *memTx) MarketplaceTotals() (*store.Totals, error) { return t.d.marketplaceTotals() }
