package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mveselov/fitflow/internal/schedule"
	"mveselov/fitflow/internal/service"
)

// CalendarHandler holds the calendar and share service dependencies.
type CalendarHandler struct {
	calendarService service.CalendarService
	shareService    service.ShareService
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(calendarService service.CalendarService, shareService service.ShareService) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
		shareService:    shareService,
	}
}

// --- DTOs ---

type CreateShareLinkRequest struct {
	Year  int `json:"year" binding:"required,min=2000,max=2200"`
	Month int `json:"month" binding:"required,min=1,max=12"`
	// TTL in hours; zero means the link never expires.
	TTLHours int `json:"ttlHours" binding:"omitempty,min=1"`
}

// --- Handler Methods ---

// GetMonth projects one calendar month for the authenticated user.
// Route: GET /calendar/:year/:month
func (h *CalendarHandler) GetMonth(c *gin.Context) {
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	view, err := h.calendarService.GetMonth(c.Request.Context(), userID, year, month, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMonth), errors.Is(err, schedule.ErrInvalidRange):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to compute calendar.")
		}
		return
	}
	c.JSON(http.StatusOK, view)
}

// CreateShareLink mints a public token for one month of the user's calendar.
func (h *CalendarHandler) CreateShareLink(c *gin.Context) {
	var req CreateShareLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	link, err := h.shareService.CreateLink(
		c.Request.Context(),
		userID,
		req.Year,
		time.Month(req.Month),
		time.Duration(req.TTLHours)*time.Hour,
	)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMonth) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create share link.")
		}
		return
	}
	c.JSON(http.StatusCreated, link)
}

// ResolveShareLink is the public, unauthenticated view of a shared month.
// Route: GET /shared/:token
func (h *CalendarHandler) ResolveShareLink(c *gin.Context) {
	token := c.Param("token")
	view, err := h.shareService.ResolveLink(c.Request.Context(), token, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShareLinkNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrShareLinkExpired):
			abortWithError(c, http.StatusGone, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to resolve share link.")
		}
		return
	}
	c.JSON(http.StatusOK, view)
}

// parseYearMonth validates the :year/:month path parameters before the
// engine ever sees them; malformed dates never reach the projection.
func parseYearMonth(c *gin.Context) (int, time.Month, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2200 {
		abortWithError(c, http.StatusBadRequest, "Invalid year.")
		return 0, 0, false
	}
	monthNum, err := strconv.Atoi(c.Param("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		abortWithError(c, http.StatusBadRequest, "Invalid month.")
		return 0, 0, false
	}
	return year, time.Month(monthNum), true
}
