// internal/models/platform_config.go
package models

import "time"

// PlatformConfigID is the primary key of the single platform_configs row.
const PlatformConfigID = 1

// DefaultFeeBasisPoints is the platform fee applied until the operator sets
// another rate (2.5%).
const DefaultFeeBasisPoints = 250

// MaxFeeBasisPoints caps the operator-settable fee at 10%.
const MaxFeeBasisPoints = 1000

// PlatformConfig is the marketplace's single mutable configuration row. It
// carries the current fee rate, the product id allocator and the fee pot.
// AccumulatedFees counts exactly the fees retained by settled purchases and
// is zeroed by a platform-fee withdrawal; it is tracked separately from the
// custodial wallet balance, which also holds unwithdrawn seller earnings.
type PlatformConfig struct {
	ID              int       `json:"id" gorm:"primaryKey;autoIncrement:false"`
	FeeBasisPoints  int       `json:"fee_basis_points" gorm:"not null;default:250"`
	NextProductID   uint64    `json:"next_product_id" gorm:"not null;default:1"`
	AccumulatedFees int64     `json:"accumulated_fees" gorm:"not null;default:0"`
	UpdatedAt       time.Time `json:"updated_at"`
}
