package handlers

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/hirebridge/backend/internal/models"
	"gorm.io/gorm"
)

// In-memory stand-ins for the Postgres repositories. They reproduce the
// store's ordering and read-flag semantics so handler behavior can be
// exercised end to end without a database. Mutex-guarded because mark-read,
// touch and notification writes run on detached goroutines.

type memMessageRepo struct {
	mu            sync.Mutex
	messages      []models.Message
	nextID        uint
	markReadCalls int
	failMarkRead  bool
	failCreate    bool
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{nextID: 1}
}

func (r *memMessageRepo) Create(message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errors.New("insert failed")
	}
	message.ID = r.nextID
	r.nextID++
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	r.messages = append(r.messages, *message)
	return nil
}

func (r *memMessageRepo) sortedByApplication(applicationID uint) []models.Message {
	var out []models.Message
	for _, m := range r.messages {
		if m.JobApplicationID == applicationID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *memMessageRepo) GetByApplicationID(applicationID uint, page, limit int) ([]models.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sortedByApplication(applicationID)
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []models.Message{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *memMessageRepo) MarkReadForRecipient(applicationID, recipientID uint, kind models.PartyKind) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markReadCalls++
	if r.failMarkRead {
		return 0, errors.New("update failed")
	}
	var updated int64
	for i := range r.messages {
		m := &r.messages[i]
		if m.JobApplicationID == applicationID && m.RecipientID == recipientID && m.RecipientKind == kind && !m.Read {
			m.Read = true
			updated++
		}
	}
	return updated, nil
}

func (r *memMessageRepo) CountUnreadForRecipient(recipientID uint, kind models.PartyKind) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, m := range r.messages {
		if m.RecipientID == recipientID && m.RecipientKind == kind && !m.Read {
			count++
		}
	}
	return count, nil
}

func (r *memMessageRepo) LatestByApplicationIDs(applicationIDs []uint) (map[uint]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	latest := make(map[uint]models.Message)
	for _, id := range applicationIDs {
		if all := r.sortedByApplication(id); len(all) > 0 {
			latest[id] = all[0]
		}
	}
	return latest, nil
}

func (r *memMessageRepo) UnreadCountsByApplicationIDs(applicationIDs []uint, recipientID uint, kind models.PartyKind) (map[uint]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[uint]int64)
	for _, id := range applicationIDs {
		for _, m := range r.messages {
			if m.JobApplicationID == id && m.RecipientID == recipientID && m.RecipientKind == kind && !m.Read {
				counts[id]++
			}
		}
	}
	return counts, nil
}

func (r *memMessageRepo) markReadCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.markReadCalls
}

type memApplicationRepo struct {
	mu      sync.Mutex
	apps    []models.JobApplication
	access  map[uint]models.ApplicationContext
	touched []uint
}

func newMemApplicationRepo() *memApplicationRepo {
	return &memApplicationRepo{access: make(map[uint]models.ApplicationContext)}
}

func (r *memApplicationRepo) GetAccessContext(id uint) (*models.ApplicationContext, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.access[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &app, nil
}

func (r *memApplicationRepo) ListForRequester(requesterID uint, kind models.PartyKind) ([]models.JobApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.JobApplication
	for _, app := range r.apps {
		if kind == models.PartyUser && app.UserID == requesterID {
			out = append(out, app)
		}
		if kind == models.PartyBusiness {
			if ctx, ok := r.access[app.ID]; ok && ctx.BusinessID == requesterID {
				out = append(out, app)
			}
		}
	}
	return out, nil
}

func (r *memApplicationRepo) Touch(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touched = append(r.touched, id)
	return nil
}

func (r *memApplicationRepo) touchCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.touched)
}

type memUserRepo struct {
	users map[uint]models.User
}

func (r *memUserRepo) GetUserByID(id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return &u, nil
}

func (r *memUserRepo) GetUsersByIDs(ids []uint) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

type memJobRepo struct {
	jobs map[uint]models.Job
}

func (r *memJobRepo) GetJobsByIDs(ids []uint) ([]models.Job, error) {
	var out []models.Job
	for _, id := range ids {
		if j, ok := r.jobs[id]; ok {
			out = append(out, j)
		}
	}
	return out, nil
}

type memNotificationRepo struct {
	mu            sync.Mutex
	notifications []models.Notification
	failCreate    bool
}

func (r *memNotificationRepo) CreateNotification(n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errors.New("insert failed")
	}
	n.ID = uint(len(r.notifications) + 1)
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *memNotificationRepo) CreateNotifications(ns []models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errors.New("insert failed")
	}
	r.notifications = append(r.notifications, ns...)
	return nil
}

func (r *memNotificationRepo) GetByRecipient(recipientID uint, kind models.PartyKind, page, limit int) ([]models.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []models.Notification
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && n.RecipientKind == kind {
			all = append(all, n)
		}
	}
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []models.Notification{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *memNotificationRepo) GetUnreadCount(recipientID uint, kind models.PartyKind) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && n.RecipientKind == kind && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *memNotificationRepo) MarkAsRead(notificationID, recipientID uint, kind models.PartyKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		n := &r.notifications[i]
		if n.ID == notificationID && n.RecipientID == recipientID && n.RecipientKind == kind {
			n.IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memNotificationRepo) MarkAllAsRead(recipientID uint, kind models.PartyKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		n := &r.notifications[i]
		if n.RecipientID == recipientID && n.RecipientKind == kind {
			n.IsRead = true
		}
	}
	return nil
}

func (r *memNotificationRepo) all() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}
