// internal/ledger/ledger.go

// Package ledger implements the wallet funds-transfer primitive the
// marketplace settles against. Money enters through Deposit (external top-up,
// idempotent per reference), moves between wallets through Transfer, and
// every movement writes one WalletTransaction row per affected wallet.
//
// All functions operate on the store they are given and perform no
// transaction management of their own: callers invoke them inside an Atomic
// scope, which is what makes multi-step settlements all-or-nothing. Debits
// fail closed; a missing source wallet is indistinguishable from a zero
// balance.
package ledger

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vendora/vendora-backend/internal/apperr"
	"github.com/vendora/vendora-backend/internal/models"
	"github.com/vendora/vendora-backend/internal/store"
)

// Deposit credits amount to the owner's wallet, creating the wallet when it
// does not exist yet. A non-empty reference makes the deposit idempotent: a
// repeat call with the same reference returns the original transaction
// without moving funds again.
func Deposit(s store.Store, owner uuid.UUID, amount int64, reference string) (*models.WalletTransaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("ledger: deposit amount must be positive, got %d", amount)
	}

	if reference != "" {
		existing, err := s.FindWalletTransactionByReference(models.WalletTxDeposit, reference)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("checking deposit reference: %w", err)
		}
	}

	if err := credit(s, owner, amount); err != nil {
		return nil, err
	}

	txn := &models.WalletTransaction{
		OwnerID:   owner,
		Amount:    amount,
		Kind:      models.WalletTxDeposit,
		Reference: reference,
	}
	if err := s.CreateWalletTransaction(txn); err != nil {
		return nil, fmt.Errorf("recording deposit: %w", err)
	}
	return txn, nil
}

// Transfer moves amount from one wallet to another and records a debit and a
// credit leg sharing a fresh group id, which is returned. The debit fails
// with INSUFFICIENT_FUNDS when the source wallet is missing or holds less
// than amount.
func Transfer(s store.Store, from, to uuid.UUID, amount int64, kind models.WalletTxKind) (uuid.UUID, error) {
	if amount <= 0 {
		return uuid.Nil, fmt.Errorf("ledger: transfer amount must be positive, got %d", amount)
	}
	if from == to {
		return uuid.Nil, fmt.Errorf("ledger: transfer source and destination are the same wallet")
	}

	// Wallets lock in id order so crossing transfers cannot deadlock.
	src, dst, err := lockPair(s, from, to)
	if err != nil {
		return uuid.Nil, err
	}

	if src == nil || src.Balance < amount {
		return uuid.Nil, apperr.InsufficientFunds("balance too low to cover transfer")
	}
	src.Balance -= amount
	if err := s.SaveWallet(src); err != nil {
		return uuid.Nil, fmt.Errorf("debiting wallet: %w", err)
	}

	if dst == nil {
		dst = &models.Wallet{OwnerID: to, Balance: amount}
		if err := s.CreateWallet(dst); err != nil {
			return uuid.Nil, fmt.Errorf("creating destination wallet: %w", err)
		}
	} else {
		dst.Balance += amount
		if err := s.SaveWallet(dst); err != nil {
			return uuid.Nil, fmt.Errorf("crediting wallet: %w", err)
		}
	}

	groupID := uuid.New()
	legs := []*models.WalletTransaction{
		{OwnerID: from, Amount: -amount, Kind: kind, Reference: groupID.String(), CounterpartyID: &to},
		{OwnerID: to, Amount: amount, Kind: kind, Reference: groupID.String(), CounterpartyID: &from},
	}
	for _, leg := range legs {
		if err := s.CreateWalletTransaction(leg); err != nil {
			return uuid.Nil, fmt.Errorf("recording transfer leg: %w", err)
		}
	}
	return groupID, nil
}

// Balance reports the owner's spendable funds. Owners without a wallet have
// a zero balance.
func Balance(s store.Store, owner uuid.UUID) (int64, error) {
	w, err := s.GetWalletByOwner(owner)
	if errors.Is(err, store.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading wallet: %w", err)
	}
	return w.Balance, nil
}

func credit(s store.Store, owner uuid.UUID, amount int64) error {
	w, err := s.GetWalletByOwnerForUpdate(owner)
	if errors.Is(err, store.ErrNotFound) {
		if err := s.CreateWallet(&models.Wallet{OwnerID: owner, Balance: amount}); err != nil {
			return fmt.Errorf("creating wallet: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("locking wallet: %w", err)
	}
	w.Balance += amount
	if err := s.SaveWallet(w); err != nil {
		return fmt.Errorf("crediting wallet: %w", err)
	}
	return nil
}

// lockPair acquires row locks on both wallets in a deterministic order and
// hands back (source, destination); either may be nil when no wallet exists
// for that owner.
func lockPair(s store.Store, from, to uuid.UUID) (*models.Wallet, *models.Wallet, error) {
	first, second := from, to
	if bytes.Compare(second[:], first[:]) < 0 {
		first, second = second, first
	}

	byOwner := make(map[uuid.UUID]*models.Wallet, 2)
	for _, owner := range []uuid.UUID{first, second} {
		w, err := s.GetWalletByOwnerForUpdate(owner)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("locking wallet: %w", err)
		}
		byOwner[owner] = w
	}
	return byOwner[from], byOwner[to], nil
}
