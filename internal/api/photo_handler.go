package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mveselov/fitflow/internal/schedule"
	"mveselov/fitflow/internal/service"
)

// PhotoHandler holds the photo service dependency.
type PhotoHandler struct {
	photoService service.PhotoService
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(photoService service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoService: photoService}
}

// --- DTOs ---

type RequestUploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmUploadRequest struct {
	ObjectKey   string `json:"objectKey" binding:"required"`
	FileName    string `json:"fileName" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required,min=1"`
	ContentType string `json:"contentType" binding:"required"`
	TakenOn     string `json:"takenOn" binding:"omitempty"` // ISO yyyy-mm-dd
}

// --- Handler Methods ---

// RequestUploadURL returns a presigned PUT URL for a progress photo.
func (h *PhotoHandler) RequestUploadURL(c *gin.Context) {
	var req RequestUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.photoService.RequestUploadURL(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidContentType) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL.")
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmUpload records photo metadata after the client finished the S3 PUT.
func (h *PhotoHandler) ConfirmUpload(c *gin.Context) {
	var req ConfirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var takenOn *time.Time
	if req.TakenOn != "" {
		parsed, err := time.Parse(schedule.DateLayout, req.TakenOn)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid takenOn date; expected yyyy-mm-dd.")
			return
		}
		takenOn = &parsed
	}

	upload, err := h.photoService.ConfirmUpload(
		c.Request.Context(),
		userID,
		req.ObjectKey,
		req.FileName,
		req.FileSize,
		req.ContentType,
		takenOn,
	)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to confirm upload.")
		return
	}
	c.JSON(http.StatusCreated, upload)
}

// GetMyPhotos lists the athlete's photos with temporary viewing URLs.
func (h *PhotoHandler) GetMyPhotos(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	photos, err := h.photoService.GetMyPhotos(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve photos.")
		return
	}
	if photos == nil {
		photos = []service.PhotoDetails{}
	}
	c.JSON(http.StatusOK, photos)
}
