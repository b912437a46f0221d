package models

// Job is a posting owned by a business. Job CRUD lives outside this
// service; we read jobs to resolve the business side of a conversation and
// to label summaries and notifications.
type Job struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	BusinessID uint     `json:"business_id" gorm:"index"`
	Title      string   `json:"title"`
	Business   Business `json:"business" gorm:"foreignKey:BusinessID"`
}
