// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/vendora/vendora-backend/internal/apperr"
	"github.com/vendora/vendora-backend/internal/config"
	"github.com/vendora/vendora-backend/internal/ledger"
	"github.com/vendora/vendora-backend/internal/models"
	"github.com/vendora/vendora-backend/internal/store"
)

// ErrPaymentNotCompleted is returned when a top-up confirmation references a
// payment intent that has not succeeded yet.
var ErrPaymentNotCompleted = errors.New("payment has not completed")

// PaymentService funds buyer wallets from card payments. A top-up is a
// two-step flow: create a Stripe payment intent for the amount, then confirm
// it once the client-side payment succeeds, which credits the wallet.
// Confirmation is idempotent per intent id.
type PaymentService struct {
	store  store.Store
	config *config.Config
}

type CreateTopUpRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

type TopUpIntent struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type ConfirmTopUpRequest struct {
	IntentID string `json:"intent_id" validate:"required"`
}

type WalletStatement struct {
	Balance      int64                      `json:"balance"`
	Transactions []models.WalletTransaction `json:"transactions"`
}

func NewPaymentService(store store.Store, cfg *config.Config) *PaymentService {
	// Initialize Stripe
	stripe.Key = cfg.Payment.StripeSecretKey

	return &PaymentService{
		store:  store,
		config: cfg,
	}
}

// CreateTopUpIntent opens a Stripe payment intent for a wallet top-up. The
// amount is in the smallest currency unit, matching wallet balances.
func (s *PaymentService) CreateTopUpIntent(userID uuid.UUID, req *CreateTopUpRequest) (*TopUpIntent, error) {
	if req.Amount <= 0 {
		return nil, apperr.InvalidPrice("top-up amount must be positive")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(s.config.Payment.Currency),
	}
	params.AddMetadata("user_id", userID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("creating payment intent: %w", err)
	}

	return &TopUpIntent{
		IntentID:     pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       req.Amount,
		Currency:     s.config.Payment.Currency,
	}, nil
}

// ConfirmTopUp verifies a succeeded payment intent belonging to the caller
// and credits its amount to their wallet. Confirming the same intent again
// is a no-op thanks to the deposit reference.
func (s *PaymentService) ConfirmTopUp(userID uuid.UUID, req *ConfirmTopUpRequest) (*WalletStatement, error) {
	pi, err := paymentintent.Get(req.IntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching payment intent: %w", err)
	}
	if pi.Metadata["user_id"] != userID.String() {
		return nil, apperr.NotAuthorized("payment intent belongs to a different account")
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, ErrPaymentNotCompleted
	}

	err = s.store.Atomic(func(tx store.Store) error {
		_, err := ledger.Deposit(tx, userID, pi.Amount, pi.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.WalletStatement(userID)
}

// WalletStatement returns the caller's balance with their most recent
// movements.
func (s *PaymentService) WalletStatement(userID uuid.UUID) (*WalletStatement, error) {
	balance, err := ledger.Balance(s.store, userID)
	if err != nil {
		return nil, err
	}
	txns, err := s.store.ListWalletTransactions(userID, 20)
	if err != nil {
		return nil, fmt.Errorf("listing wallet transactions: %w", err)
	}
	return &WalletStatement{Balance: balance, Transactions: txns}, nil
}
