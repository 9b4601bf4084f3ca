// internal/models/wallet.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Wallet holds spendable funds for one owner. Owners are user ids, plus the
// configured treasury id for the platform custodial wallet that receives the
// full purchase price and pays withdrawals back out. Balances never go
// negative; debits fail closed instead.
type Wallet struct {
	BaseModel
	OwnerID uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;uniqueIndex"`
	Balance int64     `json:"balance" gorm:"not null;default:0"`
}

// WalletTransaction is one leg of a ledger movement: a debit (negative
// amount) or credit (positive amount) against a single wallet. Legs of the
// same logical transfer share a Reference. For deposits the reference is the
// external payment id and must not repeat, which is what makes top-up
// confirmation idempotent.
type WalletTransaction struct {
	ID             uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID        uuid.UUID    `json:"owner_id" gorm:"type:uuid;not null;index"`
	Amount         int64        `json:"amount" gorm:"not null"`
	Kind           WalletTxKind `json:"kind" gorm:"type:varchar(30);not null;index"`
	Reference      string       `json:"reference" gorm:"size:255;not null;index"`
	CounterpartyID *uuid.UUID   `json:"counterparty_id,omitempty" gorm:"type:uuid"`
	CreatedAt      time.Time    `json:"created_at"`
}
