package notify

import (
	"errors"
	"sync"
	"testing"

	"github.com/hirebridge/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureRepo struct {
	mu      sync.Mutex
	created []models.Notification
	err     error
}

func (r *captureRepo) CreateNotification(n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, *n)
	return nil
}

func (r *captureRepo) CreateNotifications(ns []models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, ns...)
	return nil
}

func (r *captureRepo) GetByRecipient(uint, models.PartyKind, int, int) ([]models.Notification, int64, error) {
	return nil, 0, nil
}
func (r *captureRepo) GetUnreadCount(uint, models.PartyKind) (int64, error) { return 0, nil }
func (r *captureRepo) MarkAsRead(uint, uint, models.PartyKind) error        { return nil }
func (r *captureRepo) MarkAllAsRead(uint, models.PartyKind) error           { return nil }

func TestNewMessage_BuildsRenderableRecord(t *testing.T) {
	repo := &captureRepo{}
	n := New(repo, nil)

	message := &models.Message{
		ID:            42,
		SenderID:      2,
		SenderKind:    models.PartyBusiness,
		RecipientID:   1,
		RecipientKind: models.PartyUser,
		Content:       "Thanks for applying",
	}
	app := models.ApplicationContext{ID: 7, UserID: 1, JobID: 3, BusinessID: 2, JobTitle: "Line Cook"}

	n.NewMessage(message, app)

	require.Len(t, repo.created, 1)
	got := repo.created[0]
	assert.Equal(t, models.NotificationNewMessage, got.Type)
	assert.Equal(t, uint(1), got.RecipientID)
	assert.Equal(t, models.PartyUser, got.RecipientKind)
	assert.Equal(t, "New Message", got.Title)
	assert.Contains(t, got.Message, `"Line Cook"`)
	assert.Equal(t, uint(42), got.Metadata["messageId"])
	assert.Equal(t, uint(7), got.Metadata["applicationId"])
	assert.Equal(t, uint(3), got.Metadata["jobId"])
	assert.Equal(t, uint(2), got.Metadata["senderId"])
	assert.Equal(t, models.PartyBusiness, got.Metadata["senderKind"])
}

func TestNewMessage_SwallowsStoreFailure(t *testing.T) {
	repo := &captureRepo{err: errors.New("insert failed")}
	n := New(repo, nil)

	// Must not panic or propagate; the send path never sees this error.
	n.NewMessage(&models.Message{ID: 1}, models.ApplicationContext{ID: 7})
	assert.Empty(t, repo.created)
}
