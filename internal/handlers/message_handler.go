package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/hirebridge/backend/internal/middleware"
	"github.com/hirebridge/backend/internal/models"
	"github.com/hirebridge/backend/internal/notify"
	"github.com/hirebridge/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// maxItemsPerPage is the fixed page size for conversations and messages.
const maxItemsPerPage = 30

// MessageHandler handles conversation and message HTTP requests
type MessageHandler struct {
	messageRepository     repositories.MessageRepository
	applicationRepository repositories.ApplicationRepository
	userRepository        repositories.UserRepository
	jobRepository         repositories.JobRepository
	notifier              *notify.Notifier
	log                   *zap.Logger
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(
	messageRepo repositories.MessageRepository,
	applicationRepo repositories.ApplicationRepository,
	userRepo repositories.UserRepository,
	jobRepo repositories.JobRepository,
	notifier *notify.Notifier,
	log *zap.Logger,
) *MessageHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &MessageHandler{
		messageRepository:     messageRepo,
		applicationRepository: applicationRepo,
		userRepository:        userRepo,
		jobRepository:         jobRepo,
		notifier:              notifier,
		log:                   log,
	}
}

// RegisterMessageRoutes registers message routes. Routes carrying an
// :applicationId are guarded by the conversation access check; the
// conversations list is scoped by the requester identity directly.
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group, access *middleware.AccessChecker) {
	g.GET("/messages/conversations", h.GetConversations)
	g.GET("/messages/unread/count", h.GetUnreadCount)
	g.GET("/messages/:applicationId", h.GetMessages, access.EnsureConversationAccess)
	g.POST("/messages/:applicationId", h.SendMessage, access.EnsureConversationAccess)
}

// GetConversations returns the requester's conversations, newest activity
// first: counterpart and job labels, last message preview and unread count
// per row. The candidate set is the requester's full application list, so
// everything is fetched in a fixed number of batched queries and stitched
// in memory rather than once per row.
func (h *MessageHandler) GetConversations(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	page := pageParam(c)

	apps, err := h.applicationRepository.ListForRequester(claims.UserID, claims.PartyKind)
	if err != nil {
		h.log.Error("failed to list applications", zap.Uint("requester_id", claims.UserID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	appIDs := make([]uint, len(apps))
	for i, app := range apps {
		appIDs[i] = app.ID
	}

	latest, err := h.messageRepository.LatestByApplicationIDs(appIDs)
	if err != nil {
		h.log.Error("failed to load latest messages", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	unread, err := h.messageRepository.UnreadCountsByApplicationIDs(appIDs, claims.UserID, claims.PartyKind)
	if err != nil {
		h.log.Error("failed to load unread counts", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	// Labels are only needed for applications that actually have messages.
	userIDs := make([]uint, 0, len(latest))
	jobIDs := make([]uint, 0, len(latest))
	seenUsers := make(map[uint]bool)
	seenJobs := make(map[uint]bool)
	for _, app := range apps {
		if _, ok := latest[app.ID]; !ok {
			continue
		}
		if !seenUsers[app.UserID] {
			seenUsers[app.UserID] = true
			userIDs = append(userIDs, app.UserID)
		}
		if !seenJobs[app.JobID] {
			seenJobs[app.JobID] = true
			jobIDs = append(jobIDs, app.JobID)
		}
	}

	users, err := h.userRepository.GetUsersByIDs(userIDs)
	if err != nil {
		h.log.Error("failed to load users", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	jobs, err := h.jobRepository.GetJobsByIDs(jobIDs)
	if err != nil {
		h.log.Error("failed to load jobs", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	userMap := make(map[uint]models.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}
	jobMap := make(map[uint]models.Job, len(jobs))
	for _, j := range jobs {
		jobMap[j.ID] = j
	}

	summaries := buildConversationSummaries(apps, latest, unread, userMap, jobMap, claims)
	pageItems, total := pageOf(summaries, page, maxItemsPerPage)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"conversations": pageItems,
		},
		"meta": paginationMeta(page, maxItemsPerPage, total),
	})
}

// GetMessages returns one page of a conversation, newest first. Fetching a
// page marks the requester's unread messages in that conversation as read,
// off the response path: a failed mark is only logged and heals on the next
// fetch since the update is idempotent.
func (h *MessageHandler) GetMessages(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	app, ok := c.Get(middleware.ApplicationContextKey).(models.ApplicationContext)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	page := pageParam(c)

	messages, total, err := h.messageRepository.GetByApplicationID(app.ID, page, maxItemsPerPage)
	if err != nil {
		h.log.Error("failed to load messages", zap.Uint("application_id", app.ID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	if len(messages) > 0 {
		go func(applicationID, recipientID uint, kind models.PartyKind) {
			if _, err := h.messageRepository.MarkReadForRecipient(applicationID, recipientID, kind); err != nil {
				h.log.Error("failed to mark messages read",
					zap.Uint("application_id", applicationID),
					zap.Uint("recipient_id", recipientID),
					zap.Error(err))
			}
		}(app.ID, claims.UserID, claims.PartyKind)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"messages": messages,
		},
		"meta": paginationMeta(page, maxItemsPerPage, total),
	})
}

// SendMessage appends a message to the conversation. The recipient is
// always the conversation party that is not the sender, denormalized onto
// the row. The activity touch and the notification run off the request
// path; their failures never fail the send.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	app, ok := c.Get(middleware.ApplicationContextKey).(models.ApplicationContext)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Message content is required")
	}
	if utf8.RuneCountInString(content) > models.MaxMessageLength {
		return echo.NewHTTPError(http.StatusBadRequest, "Message content cannot exceed 2000 characters")
	}

	recipientKind := claims.PartyKind.Other()
	message := &models.Message{
		JobApplicationID: app.ID,
		SenderID:         claims.UserID,
		SenderKind:       claims.PartyKind,
		RecipientID:      app.PartyID(recipientKind),
		RecipientKind:    recipientKind,
		Content:          content,
	}

	if err := h.messageRepository.Create(message); err != nil {
		h.log.Error("failed to create message", zap.Uint("application_id", app.ID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	go func(applicationID uint) {
		if err := h.applicationRepository.Touch(applicationID); err != nil {
			h.log.Error("failed to touch application", zap.Uint("application_id", applicationID), zap.Error(err))
		}
	}(app.ID)
	go h.notifier.NewMessage(message, app)

	return c.JSON(http.StatusCreated, message)
}

// GetUnreadCount returns the requester's unread message count across all
// conversations, for the inbox badge.
func (h *MessageHandler) GetUnreadCount(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	count, err := h.messageRepository.CountUnreadForRecipient(claims.UserID, claims.PartyKind)
	if err != nil {
		h.log.Error("failed to count unread messages", zap.Uint("recipient_id", claims.UserID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"count": count})
}
