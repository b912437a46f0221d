package middleware

import (
	"net/http"
	"strconv"

	"github.com/hirebridge/backend/internal/cache"
	"github.com/hirebridge/backend/internal/models"
	"github.com/hirebridge/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ApplicationContextKey is where granted access checks stash the resolved
// application for the downstream handler.
const ApplicationContextKey = "application"

// AccessChecker resolves whether the caller is a party to a conversation.
// The check joins application -> job -> business, which makes it the most
// expensive lookup on the hot path, so verdicts are memoized in the access
// cache for a fixed TTL. The cache is an optimization only: with a nil
// cache every decision is identical, just slower.
type AccessChecker struct {
	applications repositories.ApplicationRepository
	cache        cache.ConversationAccessCache
	log          *zap.Logger
}

// NewAccessChecker creates an AccessChecker. accessCache may be nil to
// disable memoization.
func NewAccessChecker(applications repositories.ApplicationRepository, accessCache cache.ConversationAccessCache, log *zap.Logger) *AccessChecker {
	if log == nil {
		log = zap.NewNop()
	}
	return &AccessChecker{applications: applications, cache: accessCache, log: log}
}

// EnsureConversationAccess guards routes carrying an :applicationId param.
// It resolves the conversation's two parties and compares the caller
// against the side matching their claimed kind. Both granted and denied
// verdicts are written through to the cache, so repeated probes within one
// TTL window cost no lookup.
func (a *AccessChecker) EnsureConversationAccess(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		applicationID, err := strconv.ParseUint(c.Param("applicationId"), 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid application ID")
		}

		claims, ok := c.Get("user").(*models.JwtCustomClaims)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
		}

		ctx := c.Request().Context()
		key := cache.Key(uint(applicationID), claims.UserID, claims.PartyKind)

		if a.cache != nil {
			if entry, hit := a.cache.Get(ctx, key); hit {
				if !entry.HasAccess {
					return echo.NewHTTPError(http.StatusForbidden, "You do not have access to this conversation")
				}
				c.Set(ApplicationContextKey, entry.Application)
				return next(c)
			}
		}

		app, err := a.applications.GetAccessContext(uint(applicationID))
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return echo.NewHTTPError(http.StatusNotFound, "Job application not found")
			}
			a.log.Error("access check failed", zap.Uint64("application_id", applicationID), zap.Error(err))
			return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
		}

		hasAccess := app.PartyID(claims.PartyKind) == claims.UserID

		if a.cache != nil {
			a.cache.Put(ctx, key, cache.Entry{HasAccess: hasAccess, Application: *app})
		}

		if !hasAccess {
			return echo.NewHTTPError(http.StatusForbidden, "You do not have access to this conversation")
		}

		c.Set(ApplicationContextKey, *app)
		return next(c)
	}
}
