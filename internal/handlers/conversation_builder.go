package handlers

import (
	"sort"

	"github.com/hirebridge/backend/internal/models"
)

// buildConversationSummaries stitches the batched lookups into denormalized
// summary rows. Applications without a latest message are skipped: a
// conversation with zero messages is not a conversation yet. The result is
// sorted newest-activity-first; equal timestamps fall back to the message id
// so pagination stays stable across repeated queries.
func buildConversationSummaries(
	apps []models.JobApplication,
	latest map[uint]models.Message,
	unread map[uint]int64,
	users map[uint]models.User,
	jobs map[uint]models.Job,
	requester *models.JwtCustomClaims,
) []models.ConversationSummary {
	summaries := make([]models.ConversationSummary, 0, len(latest))
	for _, app := range apps {
		last, ok := latest[app.ID]
		if !ok {
			continue
		}

		summary := models.ConversationSummary{
			Application: models.ApplicationSummary{
				ID:     app.ID,
				Status: app.Status,
			},
			UnreadCount: unread[app.ID],
			LastMessage: &models.LastMessagePreview{
				Content:   last.Content,
				CreatedAt: last.CreatedAt,
				IsOwnMessage: last.SenderID == requester.UserID &&
					last.SenderKind == requester.PartyKind,
			},
			UpdatedAt: app.UpdatedAt,
		}
		if user, ok := users[app.UserID]; ok {
			summary.Application.User = user.ToCompact()
		}
		if job, ok := jobs[app.JobID]; ok {
			summary.Application.Job = models.JobSummary{
				ID:       job.ID,
				Title:    job.Title,
				Business: job.Business.ToCompact(),
			}
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		a, b := latest[summaries[i].Application.ID], latest[summaries[j].Application.ID]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return summaries
}

// pageOf cuts one page out of the sorted summaries. The total it returns is
// the size of the filtered set, which is what pagination must be computed
// against.
func pageOf(summaries []models.ConversationSummary, page, limit int) ([]models.ConversationSummary, int64) {
	total := int64(len(summaries))
	start := (page - 1) * limit
	if start >= len(summaries) {
		return []models.ConversationSummary{}, total
	}
	end := start + limit
	if end > len(summaries) {
		end = len(summaries)
	}
	return summaries[start:end], total
}
