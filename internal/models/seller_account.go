// internal/models/seller_account.go
package models

import "github.com/google/uuid"

// SellerAccount aggregates a seller's lifetime earnings. It is created
// lazily by the first settled sale. AvailableBalance is the unwithdrawn
// portion held in the platform custodial wallet; TotalEarned never
// decreases.
type SellerAccount struct {
	BaseModel
	SellerID         uuid.UUID `json:"seller_id" gorm:"type:uuid;not null;uniqueIndex"`
	TotalEarned      int64     `json:"total_earned" gorm:"not null;default:0"`
	TotalSales       int64     `json:"total_sales" gorm:"not null;default:0"`
	AvailableBalance int64     `json:"available_balance" gorm:"not null;default:0"`

	// Relationships
	Seller User `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
}
