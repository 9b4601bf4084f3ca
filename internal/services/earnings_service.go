// internal/services/earnings_service.go
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

// EarningsService owns the money bookkeeping around sales: fee arithmetic,
// seller balances and the two withdrawal paths. Seller earnings and platform
// fees both sit in the custodial treasury wallet until withdrawn; the split
// is tracked by SellerAccount.AvailableBalance on one side and
// PlatformConfig.AccumulatedFees on the other, so neither party can ever be
// paid the other's share.
type EarningsService struct {
	store         store.Store
	config        *config.Config
	notifications *NotificationService
}

type FeeQuote struct {
	Price          int64 `json:"price"`
	FeeBasisPoints int   `json:"fee_basis_points"`
	Fee            int64 `json:"fee"`
	Payout         int64 `json:"payout"`
}

type WithdrawalReceipt struct {
	Amount         int64     `json:"amount"`
	TransactionRef uuid.UUID `json:"transaction_ref"`
}

func NewEarningsService(store store.Store, cfg *config.Config, notifications *NotificationService) *EarningsService {
	return &EarningsService{
		store:         store,
		config:        cfg,
		notifications: notifications,
	}
}

// CalculatePlatformFee returns floor(price * feeBasisPoints / 10000). The
// computation is decomposed so it cannot overflow for any valid price:
// price = 10000q + r, so floor(price*bp/10000) = q*bp + floor(r*bp/10000).
func CalculatePlatformFee(price int64, feeBasisPoints int) int64 {
	bp := int64(feeBasisPoints)
	q, r := price/10000, price%10000
	return q*bp + r*bp/10000
}

// CalculateSellerEarnings returns the payout that remains after the platform
// fee. Fee plus payout always equals price exactly.
func CalculateSellerEarnings(price int64, feeBasisPoints int) int64 {
	return price - CalculatePlatformFee(price, feeBasisPoints)
}

// FeeRate returns the fee rate in basis points currently applied to
// purchases.
func (s *EarningsService) FeeRate() (int, error) {
	cfg, err := s.store.GetPlatformConfig()
	if err != nil {
		return 0, fmt.Errorf("loading platform config: %w", err)
	}
	return cfg.FeeBasisPoints, nil
}

// Quote computes the fee split a purchase at the given price would settle
// with under the current rate.
func (s *EarningsService) Quote(price int64) (*FeeQuote, error) {
	if price <= 0 {
		return nil, apperr.InvalidPrice("price must be a positive amount")
	}
	rate, err := s.FeeRate()
	if err != nil {
		return nil, err
	}
	fee := CalculatePlatformFee(price, rate)
	return &FeeQuote{
		Price:          price,
		FeeBasisPoints: rate,
		Fee:            fee,
		Payout:         price - fee,
	}, nil
}

// SellerStats returns the caller's earnings account; sellers without a sale
// yet get a zero-valued account rather than an error.
func (s *EarningsService) SellerStats(sellerID uuid.UUID) (*models.SellerAccount, error) {
	account, err := s.store.GetSellerAccount(sellerID)
	if errors.Is(err, store.ErrNotFound) {
		return &models.SellerAccount{SellerID: sellerID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading seller account: %w", err)
	}
	return account, nil
}

// WithdrawEarnings pays out the caller's entire available balance from the
// treasury to their wallet and resets the balance to zero. The balance read
// and reset share one transaction, so concurrent calls cannot double-pay.
func (s *EarningsService) WithdrawEarnings(sellerID uuid.UUID) (*WithdrawalReceipt, error) {
	var receipt *WithdrawalReceipt
	err := s.store.Atomic(func(tx store.Store) error {
		account, err := tx.GetSellerAccountForUpdate(sellerID)
		if errors.Is(err, store.ErrNotFound) {
			return apperr.InsufficientFunds("no earnings available to withdraw")
		}
		if err != nil {
			return fmt.Errorf("loading seller account: %w", err)
		}
		if account.AvailableBalance == 0 {
			return apperr.InsufficientFunds("no earnings available to withdraw")
		}

		amount := account.AvailableBalance
		txID, err := ledger.Transfer(tx, s.config.Platform.TreasuryID, sellerID, amount, models.WalletTxEarningsWithdrawal)
		if err != nil {
			// The treasury always covers the sum of seller balances; a short
			// treasury is corrupted state, not a caller error.
			if errors.Is(err, apperr.ErrInsufficientFunds) {
				return fmt.Errorf("treasury cannot cover seller balance of %d: %w", amount, err)
			}
			return err
		}

		account.AvailableBalance = 0
		if err := tx.SaveSellerAccount(account); err != nil {
			return fmt.Errorf("resetting seller balance: %w", err)
		}

		receipt = &WithdrawalReceipt{Amount: amount, TransactionRef: txID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifications != nil {
		s.notifications.NotifyPayout(sellerID, receipt.Amount)
	}
	return receipt, nil
}

// WithdrawPlatformFees pays the accumulated fee pot to the operator's wallet
// and zeroes the pot. Only the explicitly tracked fee total ever leaves the
// treasury here, never the residual balance, which still owes sellers their
// unwithdrawn earnings.
func (s *EarningsService) WithdrawPlatformFees(callerID uuid.UUID) (*WithdrawalReceipt, error) {
	if callerID != s.config.Platform.OperatorID {
		return nil, apperr.NotAuthorized("operator privileges required")
	}

	var receipt *WithdrawalReceipt
	err := s.store.Atomic(func(tx store.Store) error {
		cfg, err := tx.GetPlatformConfigForUpdate()
		if err != nil {
			return fmt.Errorf("loading platform config: %w", err)
		}
		if cfg.AccumulatedFees == 0 {
			return apperr.InsufficientFunds("no accumulated fees to withdraw")
		}

		amount := cfg.AccumulatedFees
		txID, err := ledger.Transfer(tx, s.config.Platform.TreasuryID, callerID, amount, models.WalletTxPlatformFeeWithdraw)
		if err != nil {
			if errors.Is(err, apperr.ErrInsufficientFunds) {
				return fmt.Errorf("treasury cannot cover fee pot of %d: %w", amount, err)
			}
			return err
		}

		cfg.AccumulatedFees = 0
		if err := tx.SavePlatformConfig(cfg); err != nil {
			return fmt.Errorf("resetting fee pot: %w", err)
		}

		receipt = &WithdrawalReceipt{Amount: amount, TransactionRef: txID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// SetFeeRate updates the platform fee. The new rate applies to future
// purchases only; settled purchases keep the fee they committed with.
func (s *EarningsService) SetFeeRate(callerID uuid.UUID, newBasisPoints int) (*models.PlatformConfig, error) {
	if callerID != s.config.Platform.OperatorID {
		return nil, apperr.NotAuthorized("operator privileges required")
	}
	if newBasisPoints < 0 || newBasisPoints > models.MaxFeeBasisPoints {
		return nil, apperr.Newf(apperr.CodeInvalidPrice, "fee rate must be between 0 and %d basis points", models.MaxFeeBasisPoints)
	}

	var oldRate int
	var updated *models.PlatformConfig
	err := s.store.Atomic(func(tx store.Store) error {
		cfg, err := tx.GetPlatformConfigForUpdate()
		if err != nil {
			return fmt.Errorf("loading platform config: %w", err)
		}
		oldRate = cfg.FeeBasisPoints
		cfg.FeeBasisPoints = newBasisPoints
		if err := tx.SavePlatformConfig(cfg); err != nil {
			return fmt.Errorf("saving platform config: %w", err)
		}
		updated = cfg
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifications != nil && oldRate != newBasisPoints {
		s.notifications.NotifyFeeRateChange(callerID, oldRate, newBasisPoints)
	}
	return updated, nil
}
