// internal/services/purchase_service.go
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
	"github.com/vendora/vendora-backend/internal/utils"
)

// PurchaseService settles purchases and answers the purchase-gated access
// questions. A settlement is one transaction covering the buyer's payment
// into the treasury, the purchase record, and the seller/fee bookkeeping;
// if any step fails nothing is observed.
type PurchaseService struct {
	store         store.Store
	config        *config.Config
	notifications *NotificationService
}

// DownloadAccess is the gated resource handed to verified buyers.
type DownloadAccess struct {
	ProductID   uint64 `json:"product_id"`
	Title       string `json:"title"`
	ResourceKey string `json:"resource_key"`
}

func NewPurchaseService(store store.Store, cfg *config.Config, notifications *NotificationService) *PurchaseService {
	return &PurchaseService{
		store:         store,
		config:        cfg,
		notifications: notifications,
	}
}

// PurchaseProduct buys one product for the caller. Validation order is
// fixed: missing product, inactive product, duplicate purchase, then the
// funds transfer. The fee rate used is the one committed with this
// transaction; the purchase stores a price snapshot immune to later edits.
func (s *PurchaseService) PurchaseProduct(buyerID uuid.UUID, productID uint64) (*models.Purchase, error) {
	var (
		purchase *models.Purchase
		product  *models.Product
		payout   int64
	)

	err := s.store.Atomic(func(tx store.Store) error {
		var err error
		product, err = tx.GetProductForUpdate(productID)
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("product not found")
		}
		if err != nil {
			return fmt.Errorf("loading product: %w", err)
		}
		if !product.Active {
			return apperr.ProductInactive("product is not available for purchase")
		}

		if _, err := tx.FindPurchase(buyerID, productID); err == nil {
			return apperr.AlreadyExists("product already purchased")
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("checking purchase uniqueness: %w", err)
		}

		cfg, err := tx.GetPlatformConfigForUpdate()
		if err != nil {
			return fmt.Errorf("loading platform config: %w", err)
		}
		fee := CalculatePlatformFee(product.Price, cfg.FeeBasisPoints)
		payout = product.Price - fee

		cfg.AccumulatedFees += fee
		if err := tx.SavePlatformConfig(cfg); err != nil {
			return fmt.Errorf("accumulating platform fee: %w", err)
		}

		product.TotalSales++
		if err := tx.SaveProduct(product); err != nil {
			return fmt.Errorf("updating sales counter: %w", err)
		}

		account, err := tx.GetSellerAccountForUpdate(product.SellerID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			account = &models.SellerAccount{
				SellerID:         product.SellerID,
				TotalEarned:      payout,
				TotalSales:       1,
				AvailableBalance: payout,
			}
			if err := tx.CreateSellerAccount(account); err != nil {
				return fmt.Errorf("creating seller account: %w", err)
			}
		case err != nil:
			return fmt.Errorf("loading seller account: %w", err)
		default:
			account.TotalEarned += payout
			account.TotalSales++
			account.AvailableBalance += payout
			if err := tx.SaveSellerAccount(account); err != nil {
				return fmt.Errorf("crediting seller account: %w", err)
			}
		}

		// The transfer is the last step that can fail for business reasons;
		// its failure rolls back everything above.
		txID, err := ledger.Transfer(tx, buyerID, s.config.Platform.TreasuryID, product.Price, models.WalletTxPurchase)
		if err != nil {
			return err
		}

		purchase = &models.Purchase{
			BuyerID:        buyerID,
			ProductID:      productID,
			PricePaid:      product.Price,
			FeePaid:        fee,
			TransactionRef: txID,
		}
		if err := tx.CreatePurchase(purchase); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return apperr.AlreadyExists("product already purchased")
			}
			return fmt.Errorf("recording purchase: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifications != nil {
		s.notifications.NotifySale(product.SellerID, product, payout)
	}
	return purchase, nil
}

// HasPurchased is a pure lookup; unknown products simply have no purchases.
func (s *PurchaseService) HasPurchased(buyerID uuid.UUID, productID uint64) (bool, error) {
	_, err := s.store.FindPurchase(buyerID, productID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up purchase: %w", err)
	}
	return true, nil
}

func (s *PurchaseService) GetPurchase(buyerID uuid.UUID, productID uint64) (*models.Purchase, error) {
	purchase, err := s.store.FindPurchase(buyerID, productID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("purchase not found")
	}
	if err != nil {
		return nil, fmt.Errorf("looking up purchase: %w", err)
	}
	return purchase, nil
}

// GetDownloadAccess returns the product's resource reference to buyers who
// own a purchase. Deactivation does not revoke access already paid for.
func (s *PurchaseService) GetDownloadAccess(buyerID uuid.UUID, productID uint64) (*DownloadAccess, error) {
	product, err := s.store.GetProduct(productID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("loading product: %w", err)
	}

	owned, err := s.HasPurchased(buyerID, productID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, apperr.NotAuthorized("download access requires a purchase")
	}

	return &DownloadAccess{
		ProductID:   product.ID,
		Title:       product.Title,
		ResourceKey: product.ResourceKey,
	}, nil
}

// BuyerPurchases lists the caller's purchase history, newest first.
func (s *PurchaseService) BuyerPurchases(buyerID uuid.UUID, params utils.PaginationParams) ([]models.Purchase, int64, error) {
	purchases, total, err := s.store.ListPurchasesByBuyer(buyerID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("listing purchases: %w", err)
	}
	return purchases, total, nil
}
