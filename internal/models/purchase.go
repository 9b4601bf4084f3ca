// internal/models/purchase.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Purchase records one buyer acquiring one product. The composite unique
// index enforces the one-purchase-per-buyer-per-product rule at the storage
// layer; rows are immutable once written (no refunds), hence no update or
// soft-delete columns.
type Purchase struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	BuyerID        uuid.UUID `json:"buyer_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_purchases_buyer_product"`
	ProductID      uint64    `json:"product_id" gorm:"not null;index;uniqueIndex:idx_purchases_buyer_product"`
	PricePaid      int64     `json:"price_paid" gorm:"not null"`
	FeePaid        int64     `json:"fee_paid" gorm:"not null"`
	TransactionRef uuid.UUID `json:"transaction_ref" gorm:"type:uuid;not null"`
	CreatedAt      time.Time `json:"purchased_at"`

	// Relationships
	Buyer   User    `json:"buyer,omitempty" gorm:"foreignKey:BuyerID"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
