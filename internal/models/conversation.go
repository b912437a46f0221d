package models

import "time"

// ConversationSummary is one row of the conversations list: the application
// with its parties and job labels, plus per-requester unread count and a
// preview of the latest message. Everything needed to render the list is
// denormalized here.
type ConversationSummary struct {
	Application ApplicationSummary  `json:"application"`
	UnreadCount int64               `json:"unreadCount"`
	LastMessage *LastMessagePreview `json:"lastMessage"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// ApplicationSummary labels the conversation for the list view.
type ApplicationSummary struct {
	ID     uint        `json:"id"`
	Status string      `json:"status"`
	User   UserCompact `json:"user"`
	Job    JobSummary  `json:"job"`
}

// JobSummary is the job context attached to a conversation summary.
type JobSummary struct {
	ID       uint            `json:"id"`
	Title    string          `json:"title"`
	Business BusinessCompact `json:"business"`
}

// LastMessagePreview is the newest message of a conversation as shown in
// the list. IsOwnMessage is computed relative to the requester.
type LastMessagePreview struct {
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	IsOwnMessage bool      `json:"isOwnMessage"`
}
