package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mveselov/fitflow/internal/domain"
	"mveselov/fitflow/internal/service"
)

// ProgramHandler holds the program service dependency.
type ProgramHandler struct {
	programService service.ProgramService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// --- DTOs ---

type CreateProgramRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Level       string `json:"level" binding:"omitempty,oneof=Novice Intermediate Advanced"`
}

type SlotExerciseRequest struct {
	Name  string `json:"name" binding:"required"`
	Sets  int    `json:"sets" binding:"omitempty,min=1"`
	Reps  string `json:"reps"`
	Notes string `json:"notes"`
}

type AddSlotRequest struct {
	Week             int                   `json:"week" binding:"required,min=1"`
	Day              int                   `json:"day" binding:"required,min=1,max=6"`
	Name             string                `json:"name" binding:"required"`
	WorkoutType      string                `json:"workoutType"`
	EstimatedMinutes int                   `json:"estimatedMinutes" binding:"omitempty,min=1"`
	Exercises        []SlotExerciseRequest `json:"exercises" binding:"omitempty,dive"`
}

type PublishProgramRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// --- Handler Methods ---

// CreateProgram creates a new unpublished program for the authenticated coach.
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	coachID, ok := currentUserID(c)
	if !ok {
		return
	}

	program, err := h.programService.CreateProgram(c.Request.Context(), coachID, req.Name, req.Description, req.Level)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create program.")
		return
	}
	c.JSON(http.StatusCreated, program)
}

// AddSlot appends one workout slot to a program's catalog.
func (h *ProgramHandler) AddSlot(c *gin.Context) {
	programID, err := primitive.ObjectIDFromHex(c.Param("programId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid program ID format.")
		return
	}

	var req AddSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	coachID, ok := currentUserID(c)
	if !ok {
		return
	}

	exercises := make([]domain.SlotExercise, len(req.Exercises))
	for i, e := range req.Exercises {
		exercises[i] = domain.SlotExercise{Name: e.Name, Sets: e.Sets, Reps: e.Reps, Notes: e.Notes}
	}

	slot, err := h.programService.AddSlot(
		c.Request.Context(),
		coachID,
		programID,
		req.Week,
		req.Day,
		req.Name,
		req.WorkoutType,
		req.EstimatedMinutes,
		exercises,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgramNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrProgramAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrSlotValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSlotAlreadyExists):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to add slot.")
		}
		return
	}
	c.JSON(http.StatusCreated, slot)
}

// GetMyPrograms lists the authenticated coach's programs.
func (h *ProgramHandler) GetMyPrograms(c *gin.Context) {
	coachID, ok := currentUserID(c)
	if !ok {
		return
	}

	programs, err := h.programService.GetProgramsByCoach(c.Request.Context(), coachID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve programs.")
		return
	}
	if programs == nil {
		programs = []domain.Program{}
	}
	c.JSON(http.StatusOK, programs)
}

// ListPublished lists the browsable catalog of published programs.
func (h *ProgramHandler) ListPublished(c *gin.Context) {
	programs, err := h.programService.ListPublishedPrograms(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve programs.")
		return
	}
	if programs == nil {
		programs = []domain.Program{}
	}
	c.JSON(http.StatusOK, programs)
}

// GetProgramDetails returns a program with its full ordered slot list.
func (h *ProgramHandler) GetProgramDetails(c *gin.Context) {
	programID, err := primitive.ObjectIDFromHex(c.Param("programId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid program ID format.")
		return
	}

	details, err := h.programService.GetProgramDetails(c.Request.Context(), programID)
	if err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve program.")
		}
		return
	}
	c.JSON(http.StatusOK, details)
}

// PublishProgram flips a program's published flag.
func (h *ProgramHandler) PublishProgram(c *gin.Context) {
	programID, err := primitive.ObjectIDFromHex(c.Param("programId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid program ID format.")
		return
	}

	var req PublishProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	coachID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.programService.PublishProgram(c.Request.Context(), coachID, programID, *req.Published); err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update program.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// currentUserID pulls the authenticated user's ObjectID out of the gin
// context, aborting the request on failure.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	idStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format in token.")
		return primitive.NilObjectID, false
	}
	return id, true
}
