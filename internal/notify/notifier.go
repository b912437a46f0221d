package notify

import (
	"fmt"

	"github.com/hirebridge/backend/internal/models"
	"github.com/hirebridge/backend/internal/repositories"
	"go.uber.org/zap"
)

// Notifier records notifications for conversation counterparts. It is
// invoked off the request path: a send whose notification fails is still a
// successful send, so every error ends here in the log and nowhere else.
type Notifier struct {
	notifications repositories.NotificationRepository
	log           *zap.Logger
}

func New(notifications repositories.NotificationRepository, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{notifications: notifications, log: log}
}

// NewMessage records a NEW_MESSAGE notification for the message's
// recipient. The metadata bag carries everything the notification list view
// needs to render without further lookups.
func (n *Notifier) NewMessage(message *models.Message, app models.ApplicationContext) {
	notification := &models.Notification{
		RecipientID:   message.RecipientID,
		RecipientKind: message.RecipientKind,
		Type:          models.NotificationNewMessage,
		Title:         "New Message",
		Message:       fmt.Sprintf("You have a new message regarding the application for %q", app.JobTitle),
		Metadata: models.Metadata{
			"messageId":     message.ID,
			"applicationId": app.ID,
			"jobId":         app.JobID,
			"jobTitle":      app.JobTitle,
			"senderId":      message.SenderID,
			"senderKind":    message.SenderKind,
		},
	}
	if err := n.notifications.CreateNotification(notification); err != nil {
		n.log.Error("failed to create notification",
			zap.Uint("message_id", message.ID),
			zap.Uint("application_id", app.ID),
			zap.Error(err))
	}
}

// Broadcast records the same notification for a batch of recipients in one
// insert. Used by the surrounding platform for job-wide announcements.
func (n *Notifier) Broadcast(recipients []models.Notification) {
	if err := n.notifications.CreateNotifications(recipients); err != nil {
		n.log.Error("failed to create notification batch",
			zap.Int("count", len(recipients)),
			zap.Error(err))
	}
}
