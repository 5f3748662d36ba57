package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mveselov/fitflow/internal/domain"
	"mveselov/fitflow/internal/repository"
)

// --- Error Definitions ---
var (
	ErrShareLinkNotFound = errors.New("share link not found")
	ErrShareLinkExpired  = errors.New("share link has expired")
)

// ShareService issues public read-only tokens that resolve to one month of a
// user's calendar projection. The token is the only credential; resolving it
// reuses the same engine output the owner sees.
type ShareService interface {
	CreateLink(ctx context.Context, userID primitive.ObjectID, year int, month time.Month, ttl time.Duration) (*domain.ShareLink, error)
	ResolveLink(ctx context.Context, token string, now time.Time) (*CalendarView, error)
	RevokeLink(ctx context.Context, userID, linkID primitive.ObjectID) error
}

// shareService implements the ShareService interface.
type shareService struct {
	shareLinkRepo   repository.ShareLinkRepository
	calendarService CalendarService
}

// NewShareService creates a new instance of shareService.
func NewShareService(shareLinkRepo repository.ShareLinkRepository, calendarService CalendarService) ShareService {
	return &shareService{
		shareLinkRepo:   shareLinkRepo,
		calendarService: calendarService,
	}
}

// CreateLink mints a uuid token for the given month. A zero ttl means the
// link never expires.
func (s *shareService) CreateLink(ctx context.Context, userID primitive.ObjectID, year int, month time.Month, ttl time.Duration) (*domain.ShareLink, error) {
	if month < time.January || month > time.December {
		return nil, ErrInvalidMonth
	}

	link := &domain.ShareLink{
		UserID: userID,
		Token:  uuid.NewString(),
		Year:   year,
		Month:  int(month),
	}
	if ttl > 0 {
		expires := time.Now().UTC().Add(ttl)
		link.ExpiresAt = &expires
	}

	id, err := s.shareLinkRepo.Create(ctx, link)
	if err != nil {
		return nil, err
	}
	link.ID = id
	return link, nil
}

// ResolveLink projects the linked month for whoever holds the token.
func (s *shareService) ResolveLink(ctx context.Context, token string, now time.Time) (*CalendarView, error) {
	link, err := s.shareLinkRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrShareLinkNotFound
		}
		return nil, err
	}
	if link.ExpiresAt != nil && link.ExpiresAt.Before(now) {
		return nil, ErrShareLinkExpired
	}
	return s.calendarService.GetMonth(ctx, link.UserID, link.Year, time.Month(link.Month), now)
}

// RevokeLink deletes a link the user owns.
func (s *shareService) RevokeLink(ctx context.Context, userID, linkID primitive.ObjectID) error {
	err := s.shareLinkRepo.DeleteByUser(ctx, linkID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrShareLinkNotFound
	}
	return err
}
