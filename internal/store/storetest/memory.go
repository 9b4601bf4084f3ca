// internal/store/storetest/memory.go
package storetest

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vendora/vendora-backend/internal/models"
	"github.com/vendora/vendora-backend/internal/store"
)

// Memory is an in-memory store.Store for tests. It enforces the same
// uniqueness rules as the Postgres schema and gives Atomic snapshot/rollback
// semantics, so service tests exercise the real transactional code paths
// without a database.
type Memory struct {
	mu sync.Mutex
	d  *data
}

// New returns a Memory seeded with the default platform configuration row,
// matching what the database bootstrap guarantees in production.
func New() *Memory {
	return &Memory{d: &data{
		config: models.PlatformConfig{
			ID:             models.PlatformConfigID,
			FeeBasisPoints: models.DefaultFeeBasisPoints,
			NextProductID:  1,
			UpdatedAt:      time.Now(),
		},
	}}
}

func (m *Memory) Atomic(fn func(store.Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.d.snapshot()
	if err := fn(&memTx{d: m.d}); err != nil {
		*m.d = *snap
		return err
	}
	return nil
}

// memTx is the view handed to Atomic callbacks. It reuses the already-locked
// data; nested Atomic calls join the ambient scope.
type memTx struct {
	d *data
}

func (t *memTx) Atomic(fn func(store.Store) error) error { return fn(t) }

type data struct {
	users      []models.User
	products   []models.Product
	purchases  []models.Purchase
	sellers    []models.SellerAccount
	reviews    []models.Review
	config     models.PlatformConfig
	wallets    []models.Wallet
	walletTxns []models.WalletTransaction
	notes      []models.Notification
	audits     []models.AuditLog
}

func (d *data) snapshot() *data {
	s := &data{config: d.config}
	s.users = append([]models.User(nil), d.users...)
	s.products = append([]models.Product(nil), d.products...)
	s.purchases = append([]models.Purchase(nil), d.purchases...)
	s.sellers = append([]models.SellerAccount(nil), d.sellers...)
	s.reviews = append([]models.Review(nil), d.reviews...)
	s.wallets = append([]models.Wallet(nil), d.wallets...)
	s.walletTxns = append([]models.WalletTransaction(nil), d.walletTxns...)
	s.notes = append([]models.Notification(nil), d.notes...)
	s.audits = append([]models.AuditLog(nil), d.audits...)
	return s
}

func stampBase(b *models.BaseModel) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

func clampPage(limit, offset int) (int, int) {
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

func page[T any](rows []T, limit, offset int) []T {
	limit, offset = clampPage(limit, offset)
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

// Users

func (d *data) createUser(u *models.User) error {
	for i := range d.users {
		if d.users[i].Username == u.Username || d.users[i].Email == u.Email {
			return store.ErrDuplicate
		}
	}
	stampBase(&u.BaseModel)
	d.users = append(d.users, *u)
	return nil
}

func (d *data) getUser(id uuid.UUID) (*models.User, error) {
	for i := range d.users {
		if d.users[i].ID == id {
			u := d.users[i]
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (d *data) getUserByEmail(email string) (*models.User, error) {
	for i := range d.users {
		if d.users[i].Email == email {
			u := d.users[i]
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (d *data) getUserByUsername(username string) (*models.User, error) {
	for i := range d.users {
		if d.users[i].Username == username {
			u := d.users[i]
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (d *data) saveUser(u *models.User) error {
	for i := range d.users {
		if d.users[i].ID == u.ID {
			u.UpdatedAt = time.Now()
			d.users[i] = *u
			return nil
		}
	}
	return store.ErrNotFound
}

func (d *data) countUsers() (int64, error) {
	return int64(len(d.users)), nil
}

// Products

func (d *data) createProduct(p *models.Product) error {
	for i := range d.products {
		if d.products[i].ID == p.ID {
			return store.ErrDuplicate
		}
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	d.products = append(d.products, *p)
	return nil
}

func (d *data) getProduct(id uint64) (*models.Product, error) {
	for i := range d.products {
		if d.products[i].ID == id {
			p := d.products[i]
			return &p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (d *data) saveProduct(p *models.Product) error {
	for i := range d.products {
		if d.products[i].ID == p.ID {
			p.UpdatedAt = time.Now()
			d.products[i] = *p
			return nil
		}
	}
	return store.ErrNotFound
}

func (d *data) listProducts(f store.ProductFilter) ([]models.Product, int64, error) {
	matched := make([]models.Product, 0, len(d.products))
	for i := range d.products {
		p := d.products[i]
		if !f.IncludeInactive && !p.Active {
			continue
		}
		if f.SellerID != nil && p.SellerID != *f.SellerID {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Tag != "" && !containsTag(p.Tags, f.Tag) {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Search)) {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return page(matched, f.Limit, f.Offset), int64(len(matched)), nil
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Purchases

func (d *data) createPurchase(p *models.Purchase) error {
	for i := range d.purchases {
		if d.purchases[i].BuyerID == p.BuyerID && d.purchases[i].ProductID == p.ProductID {
			return store.ErrDuplicate
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	d.purchases = append(d.purchases, *p)
	return nil
}

func (d *data) findPurchase(buyerID uuid.UUID, productID uint64) (*models.Purchase, error) {
	for i := range d.purchases {
		if d.purchases[i].BuyerID == buyerID && d.purchases[i].ProductID == productID {
			p := d.purchases[i]
			return &p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (d *data) listPurchasesByBuyer(buyerID uuid.UUID, limit, offset int) ([]models.Purchase, int64, error) {
	matched := make([]models.Purchase, 0)
	for i := len(d.purchases) - 1; i >= 0; i-- {
		if d.purchases[i].BuyerID == buyerID {
			matched = append(matched, d.purchases[i])
		}
	}
	return page(matched, limit, offset), int64(len(matched)), nil
}

// Seller accounts

func (d *data) createSellerAccount(a *models.SellerAccount) error {
	for i := range d.sellers {
		if d.sellers[i].SellerID == a.SellerID {
			return store.ErrDuplicate
		}
	}
	stampBase(&a.BaseModel)
	d.sellers = append(d.sellers, *a)
	return nil
}

func (d *data) getSellerAccount(sellerID uuid.UUID) (*models.SellerAccount, error) {
	for i := range d.sellers {
		if d.sellers[i].SellerID == sellerID {
			a := d.sellers[i]
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}

func (d *data) saveSellerAccount(a *models.SellerAccount) error {
	for i := range d.sellers {
		if d.sellers[i].ID == a.ID {
			a.UpdatedAt = time.Now()
			d.sellers[i] = *a
			return nil
		}
	}
	return store.ErrNotFound
}

// Reviews

func (d *data) createReview(r *models.Review) error {
	for i := range d.reviews {
		if d.reviews[i].ProductID == r.ProductID && d.reviews[i].ReviewerID == r.ReviewerID {
			return store.ErrDuplicate
		}
	}
	stampBase(&r.BaseModel)
	d.reviews = append(d.reviews, *r)
	return nil
}

func (d *data) findReview(productID uint64, reviewerID uuid.UUID) (*models.Review, error) {
	for i := range d.reviews {
		if d.reviews[i].ProductID == productID && d.reviews[i].ReviewerID == reviewerID {
			r := d.reviews[i]
			return &r, nil
		}
	}
	return nil, store.ErrNotFound
}

func (d *data) saveReview(r *models.Review) error {
	for i := range d.reviews {
		if d.reviews[i].ID == r.ID {
			r.UpdatedAt = time.Now()
			d.reviews[i] = *r
			return nil
		}
	}
	return store.ErrNotFound
}

func (d *data) listReviews(productID uint64, limit, offset int) ([]models.Review, int64, error) {
	matched := make([]models.Review, 0)
	for i := range d.reviews {
		if d.reviews[i].ProductID == productID {
			matched = append(matched, d.reviews[i])
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})
	return page(matched, limit, offset), int64(len(matched)), nil
}

// Platform config

func (d *data) getPlatformConfig() (*models.PlatformConfig, error) {
	c := d.config
	return &c, nil
}

func (d *data) savePlatformConfig(c *models.PlatformConfig) error {
	c.UpdatedAt = time.Now()
	d.config = *c
	return nil
}

// Wallets

func (d *data) createWallet(w *models.Wallet) error {
	for i := range d.wallets {
		if d.wallets[i].OwnerID == w.OwnerID {
			return store.ErrDuplicate
		}
	}
	stampBase(&w.BaseModel)
	d.wallets = append(d.wallets, *w)
	return nil
}

func (d *data) getWalletByOwner(ownerID uuid.UUID) (*models.Wallet, error) {
	for i := range d.wallets {
		if d.wallets[i].OwnerID == ownerID {
			w := d.wallets[i]
			return &w, nil
		}
	}
	return nil, store.ErrNotFound
}

func (d *data) saveWallet(w *models.Wallet) error {
	for i := range d.wallets {
		if d.wallets[i].ID == w.ID {
			w.UpdatedAt = time.Now()
			d.wallets[i] = *w
			return nil
		}
	}
	return store.ErrNotFound
}

func (d *data) createWalletTransaction(t *models.WalletTransaction) error {
	if t.Kind == models.WalletTxDeposit && t.Reference != "" {
		for i := range d.walletTxns {
			if d.walletTxns[i].Kind == t.Kind && d.walletTxns[i].Reference == t.Reference {
				return store.ErrDuplicate
			}
		}
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	d.walletTxns = append(d.walletTxns, *t)
	return nil
}

func (d *data) findWalletTransactionByReference(kind models.WalletTxKind, reference string) (*models.WalletTransaction, error) {
	for i := range d.walletTxns {
		if d.walletTxns[i].Kind == kind && d.walletTxns[i].Reference == reference {
			t := d.walletTxns[i]
			return &t, nil
		}
	}
	return nil, store.ErrNotFound
}

func (d *data) listWalletTransactions(ownerID uuid.UUID, limit int) ([]models.WalletTransaction, error) {
	matched := make([]models.WalletTransaction, 0)
	for i := len(d.walletTxns) - 1; i >= 0; i-- {
		if d.walletTxns[i].OwnerID == ownerID {
			matched = append(matched, d.walletTxns[i])
		}
	}
	return page(matched, limit, 0), nil
}

// Notifications and audit

func (d *data) createNotification(n *models.Notification) error {
	stampBase(&n.BaseModel)
	if n.Status == "" {
		n.Status = models.NotificationStatusUnread
	}
	d.notes = append(d.notes, *n)
	return nil
}

func (d *data) listNotifications(userID uuid.UUID, limit, offset int) ([]models.Notification, int64, error) {
	matched := make([]models.Notification, 0)
	for i := len(d.notes) - 1; i >= 0; i-- {
		if d.notes[i].UserID == userID {
			matched = append(matched, d.notes[i])
		}
	}
	return page(matched, limit, offset), int64(len(matched)), nil
}

func (d *data) createAuditLog(l *models.AuditLog) error {
	stampBase(&l.BaseModel)
	d.audits = append(d.audits, *l)
	return nil
}

// Aggregates

func (d *data) marketplaceTotals() (*store.Totals, error) {
	t := &store.Totals{
		Users:     int64(len(d.users)),
		Products:  int64(len(d.products)),
		Purchases: int64(len(d.purchases)),
	}
	for i := range d.products {
		if d.products[i].Active {
			t.ActiveProducts++
		}
	}
	for i := range d.purchases {
		t.SalesVolume += d.purchases[i].PricePaid
		t.FeesCollected += d.purchases[i].FeePaid
	}
	return t, nil
}
