package repositories

import (
	"github.com/hirebridge/backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the message store operations. Messages are
// append-only; the read flag is the single mutable field.
type MessageRepository interface {
	Create(message *models.Message) error
	GetByApplicationID(applicationID uint, page, limit int) ([]models.Message, int64, error)
	MarkReadForRecipient(applicationID, recipientID uint, kind models.PartyKind) (int64, error)
	CountUnreadForRecipient(recipientID uint, kind models.PartyKind) (int64, error)
	LatestByApplicationIDs(applicationIDs []uint) (map[uint]models.Message, error)
	UnreadCountsByApplicationIDs(applicationIDs []uint, recipientID uint, kind models.PartyKind) (map[uint]int64, error)
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// Create appends a message to its conversation. CreatedAt is assigned by
// GORM at insert time and defines the conversation's order together with
// the serial id as tiebreak.
func (r *PostgresMessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// GetByApplicationID returns one page of a conversation, newest first, plus
// the total message count for pagination.
func (r *PostgresMessageRepository) GetByApplicationID(applicationID uint, page, limit int) ([]models.Message, int64, error) {
	var total int64
	if err := r.db.Model(&models.Message{}).
		Where("job_application_id = ?", applicationID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.Message
	offset := (page - 1) * limit
	err := r.db.Where("job_application_id = ?", applicationID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// MarkReadForRecipient flips every unread message addressed to the
// recipient in this conversation and reports how many rows changed. The
// read = false predicate makes it idempotent and keeps it from touching
// messages appended after the triggering fetch.
func (r *PostgresMessageRepository) MarkReadForRecipient(applicationID, recipientID uint, kind models.PartyKind) (int64, error) {
	result := r.db.Model(&models.Message{}).
		Where("job_application_id = ? AND recipient_id = ? AND recipient_kind = ? AND read = ?",
			applicationID, recipientID, kind, false).
		Update("read", true)
	return result.RowsAffected, result.Error
}

// CountUnreadForRecipient counts unread messages across every conversation,
// for the badge on the requester's inbox.
func (r *PostgresMessageRepository) CountUnreadForRecipient(recipientID uint, kind models.PartyKind) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("recipient_id = ? AND recipient_kind = ? AND read = ?", recipientID, kind, false).
		Count(&count).Error
	return count, err
}

// LatestByApplicationIDs returns the newest message of each listed
// conversation in a single DISTINCT ON query. Conversations with no
// messages simply have no entry in the result.
func (r *PostgresMessageRepository) LatestByApplicationIDs(applicationIDs []uint) (map[uint]models.Message, error) {
	latest := make(map[uint]models.Message)
	if len(applicationIDs) == 0 {
		return latest, nil
	}

	var messages []models.Message
	err := r.db.
		Select("DISTINCT ON (job_application_id) *").
		Where("job_application_id IN ?", applicationIDs).
		Order("job_application_id, created_at DESC, id DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	for _, m := range messages {
		latest[m.JobApplicationID] = m
	}
	return latest, nil
}

// UnreadCountsByApplicationIDs returns per-conversation unread counts
// scoped to the recipient, in a single GROUP BY query.
func (r *PostgresMessageRepository) UnreadCountsByApplicationIDs(applicationIDs []uint, recipientID uint, kind models.PartyKind) (map[uint]int64, error) {
	counts := make(map[uint]int64)
	if len(applicationIDs) == 0 {
		return counts, nil
	}

	type row struct {
		JobApplicationID uint
		Count            int64
	}
	var rows []row
	err := r.db.Model(&models.Message{}).
		Select("job_application_id, COUNT(*) AS count").
		Where("job_application_id IN ? AND recipient_id = ? AND recipient_kind = ? AND read = ?",
			applicationIDs, recipientID, kind, false).
		Group("job_application_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.JobApplicationID] = row.Count
	}
	return counts, nil
}
