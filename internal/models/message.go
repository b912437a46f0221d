package models

import "time"

// MaxMessageLength bounds message content after trimming.
const MaxMessageLength = 2000

// Message belongs to exactly one job-application conversation. Recipient is
// denormalized at creation time (it is always the conversation party that is
// not the sender) so unread counts never need a join. Only the Read flag is
// ever updated, and only false -> true by the recipient.
type Message struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	JobApplicationID uint      `json:"job_application_id" gorm:"index:idx_messages_app_created"`
	SenderID         uint      `json:"sender_id" gorm:"index"`
	SenderKind       PartyKind `json:"sender_kind" gorm:"size:10"`
	RecipientID      uint      `json:"recipient_id" gorm:"index:idx_messages_recipient_read"`
	RecipientKind    PartyKind `json:"recipient_kind" gorm:"size:10"`
	Content          string    `json:"content" gorm:"size:2000"`
	Read             bool      `json:"read" gorm:"default:false;index:idx_messages_recipient_read"`
	CreatedAt        time.Time `json:"created_at" gorm:"index:idx_messages_app_created,sort:desc"`
}

// SendMessageRequest is the body of a send-message call.
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}
