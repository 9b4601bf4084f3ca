// internal/models/admin.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records a mutating API request. Written asynchronously by the
// audit middleware; ResourceID is a string because resources are keyed both
// by uuid (users, purchases) and by numeric product id.
type AuditLog struct {
	BaseModel
	UserID       *uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	Action       string     `json:"action" gorm:"size:100;not null;index"`
	ResourceType string     `json:"resource_type" gorm:"size:50;not null;index"`
	ResourceID   string     `json:"resource_id" gorm:"size:100;index"`
	StatusCode   int        `json:"status_code"`
	IPAddress    string     `json:"ip_address" gorm:"size:45"`
	UserAgent    string     `json:"user_agent" gorm:"type:text"`

	// Relationships
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Notification is a stored notice for one user (sale settled, payout sent,
// fee rate changed, product pulled by the operator).
type Notification struct {
	BaseModel
	UserID  uuid.UUID          `json:"user_id" gorm:"type:uuid;not null;index"`
	Type    NotificationType   `json:"type" gorm:"type:varchar(50);not null;index"`
	Title   string             `json:"title" gorm:"size:255;not null"`
	Message string             `json:"message" gorm:"type:text;not null"`
	Data    JSONB              `json:"data,omitempty" gorm:"type:jsonb"`
	Status  NotificationStatus `json:"status" gorm:"type:varchar(20);default:'unread';index"`
	ReadAt  *time.Time         `json:"read_at"`
}
