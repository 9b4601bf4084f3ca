// internal/models/product.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product is a digital listing. IDs are allocated sequentially from
// PlatformConfig.NextProductID inside the listing transaction, so they are
// dense and start at 1; the column is therefore not auto-incrementing.
// Products are deactivated rather than deleted so purchase history stays
// resolvable.
type Product struct {
	ID          uint64         `json:"id" gorm:"primaryKey;autoIncrement:false"`
	SellerID    uuid.UUID      `json:"seller_id" gorm:"type:uuid;not null;index"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Category    string         `json:"category" gorm:"size:100;index"`
	Tags        pq.StringArray `json:"tags" gorm:"type:text[]"`
	Price       int64          `json:"price" gorm:"not null"`
	ResourceKey string         `json:"-" gorm:"size:512;not null"`
	Active      bool           `json:"active" gorm:"not null;default:true;index"`
	TotalSales  int64          `json:"total_sales" gorm:"not null;default:0"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	// Relationships
	Seller    User       `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Purchases []Purchase `json:"purchases,omitempty" gorm:"foreignKey:ProductID"`
	Reviews   []Review   `json:"reviews,omitempty" gorm:"foreignKey:ProductID"`
}
