package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Notification types emitted across the marketplace. This service only
// writes NEW_MESSAGE; the rest are produced by the job and account
// subsystems and listed here so the enum lives in one place.
const (
	NotificationNewMessage         = "NEW_MESSAGE"
	NotificationNewApplication     = "NEW_APPLICATION"
	NotificationApplicationUpdated = "APPLICATION_STATUS_UPDATED"
	NotificationJobApproved        = "JOB_APPROVED"
	NotificationJobRejected        = "JOB_REJECTED"
	NotificationJobDeleted         = "JOB_DELETED"
)

// Metadata is a free-form JSON bag stored on a notification so list views
// can render without further lookups.
type Metadata map[string]interface{}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("metadata: cannot scan %T", value)
	}
	return json.Unmarshal(b, m)
}

// Notification is a per-recipient activity record.
type Notification struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	RecipientID   uint      `json:"recipient_id" gorm:"index:idx_notifications_recipient_read"`
	RecipientKind PartyKind `json:"recipient_kind" gorm:"size:10"`
	Type          string    `json:"type" gorm:"size:40;index"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	Metadata      Metadata  `json:"metadata,omitempty" gorm:"type:jsonb"`
	IsRead        bool      `json:"is_read" gorm:"default:false;index:idx_notifications_recipient_read"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
}
