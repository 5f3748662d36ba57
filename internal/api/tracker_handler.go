package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mveselov/fitflow/internal/schedule"
	"mveselov/fitflow/internal/service"
)

// TrackerHandler holds the tracker service dependency.
type TrackerHandler struct {
	trackerService service.TrackerService
}

// NewTrackerHandler creates a new TrackerHandler.
func NewTrackerHandler(trackerService service.TrackerService) *TrackerHandler {
	return &TrackerHandler{trackerService: trackerService}
}

// --- DTOs ---

type ActivateProgramRequest struct {
	ProgramID string `json:"programId" binding:"required"`
	StartDate string `json:"startDate" binding:"required"` // ISO yyyy-mm-dd
	Timezone  string `json:"timezone" binding:"omitempty"`
}

type LogWorkoutRequest struct {
	SlotID          string `json:"slotId" binding:"required"`
	OccurredAt      string `json:"occurredAt" binding:"required"` // RFC 3339
	Skipped         bool   `json:"skipped"`
	Notes           string `json:"notes"`
	Rating          *int   `json:"rating" binding:"omitempty,min=1,max=5"`
	DurationMinutes *int   `json:"durationMinutes" binding:"omitempty,min=1"`
}

type EditLogRequest struct {
	Notes  string `json:"notes"`
	Rating *int   `json:"rating" binding:"omitempty,min=1,max=5"`
}

// --- Handler Methods ---

// ActivateProgram starts a program for the authenticated athlete.
func (h *TrackerHandler) ActivateProgram(c *gin.Context) {
	var req ActivateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	programID, err := primitive.ObjectIDFromHex(req.ProgramID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid program ID format.")
		return
	}
	startDate, err := time.Parse(schedule.DateLayout, req.StartDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid start date; expected yyyy-mm-dd.")
		return
	}

	up, err := h.trackerService.ActivateProgram(c.Request.Context(), userID, programID, startDate, req.Timezone)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgramNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrProgramNotPublished),
			errors.Is(err, service.ErrProgramHasNoSlots),
			errors.Is(err, service.ErrInvalidTimezone):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to activate program.")
		}
		return
	}
	c.JSON(http.StatusCreated, up)
}

// GetActiveProgram returns the athlete's current activation and pointer.
func (h *TrackerHandler) GetActiveProgram(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	up, err := h.trackerService.GetActiveProgram(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveProgram) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve active program.")
		}
		return
	}
	c.JSON(http.StatusOK, up)
}

// LogWorkout records a completion or skip and advances the progress pointer.
func (h *TrackerHandler) LogWorkout(c *gin.Context) {
	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	slotID, err := primitive.ObjectIDFromHex(req.SlotID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid slot ID format.")
		return
	}
	occurredAt, err := time.Parse(time.RFC3339, req.OccurredAt)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid occurredAt; expected RFC 3339 timestamp.")
		return
	}

	log, err := h.trackerService.LogWorkout(
		c.Request.Context(),
		userID,
		slotID,
		occurredAt,
		req.Skipped,
		req.Notes,
		req.Rating,
		req.DurationMinutes,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveProgram), errors.Is(err, service.ErrSlotNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSlotNotInProgram), errors.Is(err, service.ErrInvalidRating):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to log workout.")
		}
		return
	}
	c.JSON(http.StatusCreated, log)
}

// EditLog updates the notes and rating of an existing log entry.
func (h *TrackerHandler) EditLog(c *gin.Context) {
	logID, err := primitive.ObjectIDFromHex(c.Param("logId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid log ID format.")
		return
	}

	var req EditLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	log, err := h.trackerService.EditLog(c.Request.Context(), userID, logID, req.Notes, req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLogNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidRating):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update log.")
		}
		return
	}
	c.JSON(http.StatusOK, log)
}
