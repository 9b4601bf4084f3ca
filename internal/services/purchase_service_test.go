// internal/services/purchase_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/vendora-backend/internal/apperr"
	"github.com/vendora/vendora-backend/internal/models"
	"github.com/vendora/vendora-backend/internal/utils"
)

func TestPurchaseSettlesFundsAndEarnings(t *testing.T) {
	env := newMarketplaceEnv(t)
	seller := env.createUser(t, "seller")
	buyer := env.createUser(t, "buyer")

	p := env.listProduct(t, seller.ID, "ebook", 1_000_000)
	env.fund(t, buyer.ID, 1_500_000)

	purchase, err := env.purchases.PurchaseProduct(buyer.ID, p.ID)
	require.NoError(t, err)

	// 250 basis points of 1,000,000.
	assert.Equal(t, int64(1_000_000), purchase.PricePaid)
	assert.Equal(t, int64(25_000), purchase.FeePaid)
	assert.Equal(t, buyer.ID, purchase.BuyerID)
	assert.Equal(t, p.ID, purchase.ProductID)

	// The full price moved from the buyer into the treasury.
	assert.Equal(t, int64(500_000), env.balance(t, buyer.ID))
	assert.Equal(t, int64(1_000_000), env.balance(t, env.treasuryID()))

	// Earnings accrued to the seller account, fees to the platform pot.
	account, err := env.store.GetSellerAccount(seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(975_000), account.AvailableBalance)
	assert.Equal(t, int64(975_000), account.TotalEarned)
	assert.Equal(t, int64(1), account.TotalSales)

	cfg, err := env.store.GetPlatformConfig()
	require.NoError(t, err)
	assert.Equal(t, int64(25_000), cfg.AccumulatedFees)

	got, err := env.catalog.GetProduct(p.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TotalSales)

	// Both transfer legs reference the purchase transaction.
	txns, err := env.store.ListWalletTransactions(buyer.ID, 10)
	require.NoError(t, err)
	require.Len(t, txns, 2) // deposit plus the purchase debit
	assert.Equal(t, models.WalletTxPurchase, txns[0].Kind)
	assert.Equal(t, int64(-1_000_000), txns[0].Amount)
	assert.Equal(t, purchase.TransactionRef.String(), txns[0].Reference)

	// The seller heard about the sale.
	notes, _, err := env.notifications.ListForUser(seller.ID, utils.PaginationParams{Page: 1, Limit: 5})
	require.NoError(t, err)
	require.NotEmpty(t, notes)
	assert.Equal(t, models.NotificationTypeSale, notes[0].Type)
}

func TestPurchaseFeeRoundsDownInPlatformFavor(t *testing.T) {
	env := newMarketplaceEnv(t)
	seller := env.createUser(t, "seller")
	buyer := env.createUser(t, "buyer")

	p := env.listProduct(t, seller.ID, "sticker", 999)
	env.fund(t, buyer.ID, 999)

	purchase, err := env.purchases.PurchaseProduct(buyer.ID, p.ID)
	require.NoError(t, err)

	// floor(999 * 250 / 10000) = 24, payout covers the remainder exactly.
	assert.Equal(t, int64(24), purchase.FeePaid)

	account, err := env.store.GetSellerAccount(seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(975), account.AvailableBalance)
	assert.Equal(t, purchase.PricePaid, purchase.FeePaid+account.AvailableBalance)
}

func TestPurchaseValidationOrder(t *testing.T) {
	env := newMarketplaceEnv(t)
	env.createOperator(t)
	seller := env.createUser(t, "seller")
	buyer := env.createUser(t, "buyer")

	// Unknown product beats everything else.
	_, err := env.purchases.PurchaseProduct(buyer.ID, 404)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	p := env.listProduct(t, seller.ID, "course", 5_000)
	env.fund(t, buyer.ID, 20_000)

	_, err = env.purchases.PurchaseProduct(buyer.ID, p.ID)
	require.NoError(t, err)

	// A repeat buy is a conflict, not a funds problem.
	_, err = env.purchases.PurchaseProduct(buyer.ID, p.ID)
	assert.ErrorIs(t, err, apperr.ErrAlreadyExists)

	// Once pulled, inactive wins over the duplicate check.
	_, err = env.catalog.DeactivateProduct(env.operatorID(), p.ID)
	require.NoError(t, err)

	_, err = env.purchases.PurchaseProduct(buyer.ID, p.ID)
	assert.ErrorIs(t, err, apperr.ErrProductInactive)
}

func TestPurchaseWithoutFundsRollsBackEverything(t *testing.T) {
	env := newMarketplaceEnv(t)
	seller := env.createUser(t, "seller")
	buyer := env.createUser(t, "buyer")

	p := env.listProduct(t, seller.ID, "template", 1_000_000)
	env.fund(t, buyer.ID, 999_999)

	_, err := env.purchases.PurchaseProduct(buyer.ID, p.ID)
	assert.ErrorIs(t, err, apperr.ErrInsufficientFunds)

	// Nothing moved and nothing accrued.
	assert.Equal(t, int64(999_999), env.balance(t, buyer.ID))
	assert.Equal(t, int64(0), env.balance(t, env.treasuryID()))

	got, err := env.catalog.GetProduct(p.ID, nil)
	require.NoError(t, err)
	assert.Zero(t, got.TotalSales)

	cfg, err := env.store.GetPlatformConfig()
	require.NoError(t, err)
	assert.Zero(t, cfg.AccumulatedFees)

	_, err = env.store.GetSellerAccount(seller.ID)
	assert.Error(t, err)

	has, err := env.purchases.HasPurchased(buyer.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestSellersMayBuyTheirOwnProducts(t *testing.T) {
	env := newMarketplaceEnv(t)
	seller := env.createUser(t, "seller")

	p := env.listProduct(t, seller.ID, "own-goods", 10_000)
	env.fund(t, seller.ID, 10_000)

	purchase, err := env.purchases.PurchaseProduct(seller.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, seller.ID, purchase.BuyerID)

	account, err := env.store.GetSellerAccount(seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(9_750), account.AvailableBalance)
}

func TestEarningsAccumulateAcrossBuyers(t *testing.T) {
	env := newMarketplaceEnv(t)
	seller := env.createUser(t, "seller")

	p := env.listProduct(t, seller.ID, "bundle", 4_000)

	for _, name := range []string{"b1", "b2", "b3"} {
		buyer := env.createUser(t, name)
		env.fund(t, buyer.ID, 4_000)
		_, err := env.purchases.PurchaseProduct(buyer.ID, p.ID)
		require.NoError(t, err)
	}

	// fee per sale: floor(4000 * 250 / 10000) = 100
	account, err := env.store.GetSellerAccount(seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), account.TotalSales)
	assert.Equal(t, int64(11_700), account.TotalEarned)
	assert.Equal(t, int64(11_700), account.AvailableBalance)

	cfg, err := env.store.GetPlatformConfig()
	require.NoError(t, err)
	assert.Equal(t, int64(300), cfg.AccumulatedFees)

	assert.Equal(t, int64(12_000), env.balance(t, env.treasuryID()))
}

func TestHasPurchasedIsAPureLookup(t *testing.T) {
	env := newMarketplaceEnv(t)
	seller := env.createUser(t, "seller")
	buyer := env.createUser(t, "buyer")

	// Unknown products read as not purchased rather than failing.
	has, err := env.purchases.HasPurchased(buyer.ID, 12345)
	require.NoError(t, err)
	assert.False(t, has)

	p := env.listProduct(t, seller.ID, "loops", 800)
	has, err = env.purchases.HasPurchased(buyer.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, has)

	env.fund(t, buyer.ID, 800)
	_, err = env.purchases.PurchaseProduct(buyer.ID, p.ID)
	require.NoError(t, err)

	has, err = env.purchases.HasPurchased(buyer.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestDownloadAccessRequiresAPurchase(t *testing.T) {
	env := newMarketplaceEnv(t)
	env.createOperator(t)
	seller := env.createUser(t, "seller")
	buyer := env.createUser(t, "buyer")

	// Missing product reads as not found, not as unauthorized.
	_, err := env.purchases.GetDownloadAccess(buyer.ID, 777)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	p := env.listProduct(t, seller.ID, "samples", 600)

	_, err = env.purchases.GetDownloadAccess(buyer.ID, p.ID)
	assert.ErrorIs(t, err, apperr.ErrNotAuthorized)

	env.fund(t, buyer.ID, 600)
	_, err = env.purchases.PurchaseProduct(buyer.ID, p.ID)
	require.NoError(t, err)

	access, err := env.purchases.GetDownloadAccess(buyer.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "assets/samples.zip", access.ResourceKey)

	// Pulling the listing does not revoke paid-for access.
	_, err = env.catalog.DeactivateProduct(env.operatorID(), p.ID)
	require.NoError(t, err)

	access, err = env.purchases.GetDownloadAccess(buyer.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "assets/samples.zip", access.ResourceKey)
}

func TestBuyerPurchaseHistory(t *testing.T) {
	env := newMarketplaceEnv(t)
	seller := env.createUser(t, "seller")
	buyer := env.createUser(t, "buyer")
	env.fund(t, buyer.ID, 10_000)

	first := env.listProduct(t, seller.ID, "one", 1_000)
	second := env.listProduct(t, seller.ID, "two", 2_000)

	_, err := env.purchases.PurchaseProduct(buyer.ID, first.ID)
	require.NoError(t, err)
	_, err = env.purchases.PurchaseProduct(buyer.ID, second.ID)
	require.NoError(t, err)

	purchases, total, err := env.purchases.BuyerPurchases(buyer.ID, utils.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, purchases, 2)

	one, err := env.purchases.GetPurchase(buyer.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1_000), one.PricePaid)

	_, err = env.purchases.GetPurchase(buyer.ID, 999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
