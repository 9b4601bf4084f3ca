// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// WalletTxKind classifies a ledger movement. Debit legs carry negative
// amounts, credit legs positive ones.
type WalletTxKind string

const (
	WalletTxDeposit             WalletTxKind = "deposit"
	WalletTxPurchase            WalletTxKind = "purchase"
	WalletTxEarningsWithdrawal  WalletTxKind = "earnings_withdrawal"
	WalletTxPlatformFeeWithdraw WalletTxKind = "fee_withdrawal"
)

type NotificationType string

const (
	NotificationTypeSale          NotificationType = "sale"
	NotificationTypePayout        NotificationType = "payout"
	NotificationTypeFeeRateChange NotificationType = "fee_rate_change"
	NotificationTypeProductPulled NotificationType = "product_pulled"
)

type NotificationStatus string

const (
	NotificationStatusUnread NotificationStatus = "unread"
	NotificationStatusRead   NotificationStatus = "read"
)
