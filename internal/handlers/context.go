package handlers

import (
	"math"
	"strconv"

	"github.com/hirebridge/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// getClaims returns the authenticated caller's claims, or nil when the
// request somehow bypassed the auth middleware.
func getClaims(c echo.Context) *models.JwtCustomClaims {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}

// pageParam parses ?page=, clamping to 1.
func pageParam(c echo.Context) int {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	return page
}

// paginationMeta builds the meta block attached to every paged response.
// totalPages is derived from the same filtered total the page was cut from.
func paginationMeta(page, limit int, total int64) echo.Map {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return echo.Map{
		"currentPage":     page,
		"totalPages":      totalPages,
		"totalItems":      total,
		"itemsPerPage":    limit,
		"hasNextPage":     page < totalPages,
		"hasPreviousPage": page > 1,
	}
}
