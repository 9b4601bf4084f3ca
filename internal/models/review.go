// internal/models/review.go
package models

import (
	"github.com/google/uuid"
)

// Review is a buyer's rating of a product they purchased. One review per
// (product, reviewer); re-submitting replaces the previous rating and body,
// so UpdatedAt doubles as the review timestamp.
type Review struct {
	BaseModel
	ProductID  uint64    `json:"product_id" gorm:"not null;index;uniqueIndex:idx_reviews_product_reviewer"`
	ReviewerID uuid.UUID `json:"reviewer_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_reviews_product_reviewer"`
	Rating     int       `json:"rating" gorm:"not null"`
	Body       string    `json:"body" gorm:"type:text"`

	// Relationships
	Product  Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Reviewer User    `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID"`
}
