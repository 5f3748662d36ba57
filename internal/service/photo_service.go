package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mveselov/fitflow/internal/domain"
	"mveselov/fitflow/internal/repository"
	"mveselov/fitflow/internal/storage"
)

// --- Error Definitions ---
var (
	ErrUploadURLError     = errors.New("failed to generate upload URL")
	ErrDownloadURLError   = errors.New("failed to generate download URL")
	ErrInvalidContentType = errors.New("invalid or missing image content type")
	ErrPhotoNotFound      = errors.New("photo not found")
)

// UploadURLResponse structure for returning URL and object key
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"` // The key the client reports back on confirm
}

// PhotoDetails is a photo record enriched with a temporary viewing URL.
type PhotoDetails struct {
	domain.PhotoUpload
	DownloadURL string `json:"downloadUrl"`
}

// PhotoService handles progress-photo uploads: the browser PUTs directly to
// S3 against a presigned URL, then confirms so metadata lands in Mongo.
type PhotoService interface {
	RequestUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*UploadURLResponse, error)
	ConfirmUpload(ctx context.Context, userID primitive.ObjectID, objectKey, fileName string, fileSize int64, contentType string, takenOn *time.Time) (*domain.PhotoUpload, error)
	GetMyPhotos(ctx context.Context, userID primitive.ObjectID) ([]PhotoDetails, error)
}

// photoService implements the PhotoService interface.
type photoService struct {
	photoRepo   repository.PhotoUploadRepository
	fileStorage storage.FileStorage
}

// NewPhotoService creates a new instance of photoService.
func NewPhotoService(photoRepo repository.PhotoUploadRepository, fileStorage storage.FileStorage) PhotoService {
	return &photoService{
		photoRepo:   photoRepo,
		fileStorage: fileStorage,
	}
}

// RequestUploadURL generates a pre-signed URL for an athlete to upload a
// progress photo.
func (s *photoService) RequestUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*UploadURLResponse, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrInvalidContentType
	}

	fileExtension := ""
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("photos", userID.Hex(), fmt.Sprintf("%s.%s", uuid.NewString(), fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	return &UploadURLResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

// ConfirmUpload records the metadata after the client finished the S3 PUT.
func (s *photoService) ConfirmUpload(ctx context.Context, userID primitive.ObjectID, objectKey, fileName string, fileSize int64, contentType string, takenOn *time.Time) (*domain.PhotoUpload, error) {
	if userID == primitive.NilObjectID || objectKey == "" {
		return nil, errors.New("user ID and object key are required")
	}
	// Only accept keys under the user's own prefix.
	if !strings.HasPrefix(objectKey, path.Join("photos", userID.Hex())+"/") {
		return nil, errors.New("object key does not belong to this user")
	}

	upload := &domain.PhotoUpload{
		UserID:      userID,
		S3ObjectKey: objectKey,
		FileName:    fileName,
		ContentType: contentType,
		Size:        fileSize,
		TakenOn:     takenOn,
	}
	id, err := s.photoRepo.Create(ctx, upload)
	if err != nil {
		return nil, err
	}
	upload.ID = id
	return upload, nil
}

// GetMyPhotos lists the user's photos with temporary viewing URLs attached.
func (s *photoService) GetMyPhotos(ctx context.Context, userID primitive.ObjectID) ([]PhotoDetails, error) {
	uploads, err := s.photoRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := make([]PhotoDetails, 0, len(uploads))
	for _, u := range uploads {
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, u.S3ObjectKey, storage.DefaultPresignedURLExpiry)
		if err != nil {
			return nil, ErrDownloadURLError
		}
		details = append(details, PhotoDetails{PhotoUpload: u, DownloadURL: url})
	}
	return details, nil
}
