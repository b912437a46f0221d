package models

import "time"

// Application status values, owned by the job subsystem.
const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// JobApplication doubles as the conversation between the applicant and the
// job's business. Its two parties never change after creation: the applicant
// is UserID and the business side is reached through the job. UpdatedAt is
// touched on every message send so conversation lists sort by activity.
type JobApplication struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index:idx_applications_user_job,unique"`
	JobID       uint      `json:"job_id" gorm:"index:idx_applications_user_job,unique"`
	Status      string    `json:"status" gorm:"size:20;default:pending"`
	CoverLetter string    `json:"cover_letter,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"index"`

	User User `json:"-" gorm:"foreignKey:UserID"`
	Job  Job  `json:"-" gorm:"foreignKey:JobID"`
}

// ApplicationContext is the slice of a JobApplication the access check
// resolves once per request and the message handlers work from. It is what
// gets cached, so it stays small and flat.
type ApplicationContext struct {
	ID         uint   `json:"id"`
	UserID     uint   `json:"user_id"`
	JobID      uint   `json:"job_id"`
	BusinessID uint   `json:"business_id"`
	JobTitle   string `json:"job_title"`
}

// PartyID returns the identity on the given side of the conversation.
func (a ApplicationContext) PartyID(kind PartyKind) uint {
	if kind == PartyUser {
		return a.UserID
	}
	return a.BusinessID
}
