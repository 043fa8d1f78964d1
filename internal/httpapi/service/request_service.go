package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"libraryhub/internal/cache"
	"libraryhub/internal/httpapi/models"
	"libraryhub/internal/httpapi/repository"

	"gorm.io/gorm"
)

const (
	minBorrowingDays = 1
	maxBorrowingDays = 30

	statsCacheKey = "library:requests:stats"
)

// SubmitInput is a member's ask to borrow a book. MemberID may be zero, in
// which case the member is resolved (or created) from the email address.
type SubmitInput struct {
	BookID        int64
	BorrowingDays int
	MemberID      int64
	Email         string
	Name          string
}

// Stats summarizes the request table for the admin dashboard.
type Stats struct {
	Total    int `json:"total_requests"`
	Pending  int `json:"pending_requests"`
	Approved int `json:"approved_requests"`
	Declined int `json:"declined_requests"`
}

type RequestService interface {
	Submit(ctx context.Context, input SubmitInput) (*models.BookRequest, error)
	Approve(ctx context.Context, requestID string) (*models.BookRequest, error)
	Decline(ctx context.Context, requestID string) (*models.BookRequest, error)
	Collect(ctx context.Context, requestID string) (*models.BookRequest, error)
	Delete(ctx context.Context, requestID string) error
	List(ctx context.Context) ([]models.BookRequest, Stats, error)
}

type requestService struct {
	requests      repository.RequestRepository
	books         repository.BookRepository
	borrows       repository.BorrowRepository
	members       repository.MemberRepository
	notifications repository.NotificationRepository
	notifier      *Notifier
	statsCache    *cache.Cache
	logger        *slog.Logger
	restoreOnDel  bool
	now           func() time.Time
}

func NewRequestService(
	requests repository.RequestRepository,
	books repository.BookRepository,
	borrows repository.BorrowRepository,
	members repository.MemberRepository,
	notifications repository.NotificationRepository,
	notifier *Notifier,
	statsCache *cache.Cache,
	logger *slog.Logger,
	restoreOnDelete bool,
) RequestService {
	return &requestService{
		requests:      requests,
		books:         books,
		borrows:       borrows,
		members:       members,
		notifications: notifications,
		notifier:      notifier,
		statsCache:    statsCache,
		logger:        logger,
		restoreOnDel:  restoreOnDelete,
		now:           time.Now,
	}
}

func (s *requestService) Submit(ctx context.Context, input SubmitInput) (*models.BookRequest, error) {
	if input.BorrowingDays < minBorrowingDays || input.BorrowingDays > maxBorrowingDays {
		return nil, fmt.Errorf("%w: borrowing days must be between %d and %d",
			ErrValidation, minBorrowingDays, maxBorrowingDays)
	}

	member, err := s.resolveMember(ctx, input)
	if err != nil {
		return nil, err
	}

	book, err := s.books.GetByID(ctx, input.BookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	now := s.now()
	request := &models.BookRequest{
		MemberID:      member.ID,
		BookID:        book.ID,
		RequestedDays: input.BorrowingDays,
		RequestDate:   now,
		DueDate:       now.AddDate(0, 0, input.BorrowingDays),
		Status:        models.StatusPending.String(),

		BookTitle:   book.Title,
		BookAuthor:  book.Author,
		BookSubject: book.Subject,
		MemberName:  member.Name,
		MemberEmail: member.Email,
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	s.notifier.Emit(ctx, OutcomeRequest, request)
	s.invalidateStats(ctx)

	return request, nil
}

func (s *requestService) resolveMember(ctx context.Context, input SubmitInput) (*models.Member, error) {
	if input.MemberID != 0 {
		member, err := s.members.GetByID(ctx, input.MemberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMemberNotFound
			}
			return nil, err
		}
		return member, nil
	}

	if input.Email == "" {
		return nil, fmt.Errorf("%w: a member id or an email address is required", ErrValidation)
	}

	return s.members.ResolveOrCreate(ctx, input.Email, input.Name)
}

func (s *requestService) Approve(ctx context.Context, requestID string) (*models.BookRequest, error) {
	request, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if models.Normalize(request.Status) != models.StatusPending {
		return nil, fmt.Errorf("%w: cannot approve a request with status %q",
			ErrInvalidState, request.Status)
	}

	if _, err := s.books.GetByID(ctx, request.BookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	if err := s.books.ReserveCopy(ctx, request.BookID); err != nil {
		if errors.Is(err, repository.ErrNoCopies) {
			return nil, ErrNoCopies
		}
		return nil, err
	}

	now := s.now()
	record := &models.BorrowRecord{
		MemberID:     request.MemberID,
		BookID:       request.BookID,
		BorrowedDate: now,
		DueDate:      request.DueDate,
		Status:       models.BorrowStatusBorrowed,
	}
	if err := s.borrows.Create(ctx, record); err != nil {
		return nil, err
	}

	if err := s.requests.UpdateStatus(ctx, request.ID, models.StatusApproved, now); err != nil {
		return nil, err
	}
	request.Status = models.StatusApproved.String()
	request.ProcessedDate = &now

	s.notifier.Emit(ctx, OutcomeApprove, request)
	s.invalidateStats(ctx)

	return request, nil
}

func (s *requestService) Decline(ctx context.Context, requestID string) (*models.BookRequest, error) {
	request, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if models.Normalize(request.Status) != models.StatusPending {
		return nil, fmt.Errorf("%w: cannot decline a request with status %q",
			ErrInvalidState, request.Status)
	}

	now := s.now()
	if err := s.requests.UpdateStatus(ctx, request.ID, models.StatusDeclined, now); err != nil {
		return nil, err
	}
	request.Status = models.StatusDeclined.String()
	request.ProcessedDate = &now

	s.notifier.Emit(ctx, OutcomeDecline, request)
	s.invalidateStats(ctx)

	return request, nil
}

// Collect only requires the request to exist. Handing the book over is the
// admin's call; a pending request collected early just lands in the approval
// family once normalized.
func (s *requestService) Collect(ctx context.Context, requestID string) (*models.BookRequest, error) {
	request, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.requests.UpdateStatus(ctx, request.ID, models.StatusCollected, now); err != nil {
		return nil, err
	}
	request.Status = models.StatusCollected.String()
	request.ProcessedDate = &now

	s.notifier.Emit(ctx, OutcomeCollect, request)
	s.invalidateStats(ctx)

	return request, nil
}

// Delete removes a request and its dependents. Dependent cleanup is
// best-effort and runs before the primary row delete; a failed cleanup step
// is logged but never blocks the delete itself.
func (s *requestService) Delete(ctx context.Context, requestID string) error {
	request, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return err
	}

	if n, err := s.notifications.DeleteByRequestID(ctx, request.ID); err != nil {
		s.logger.Error("failed to delete notifications for request",
			"request_id", request.ID, "error", err)
	} else if n > 0 {
		s.logger.Info("deleted notifications for request", "request_id", request.ID, "count", n)
	}

	removed, err := s.borrows.DeleteByDueDate(ctx, request.MemberID, request.BookID, request.DueDate)
	if err != nil {
		s.logger.Error("failed to delete borrow record by due date",
			"request_id", request.ID, "error", err)
	}
	if err == nil && removed == 0 {
		// Legacy records never stored a due date; fall back to the looser match.
		if _, err := s.borrows.DeleteBorrowed(ctx, request.MemberID, request.BookID); err != nil {
			s.logger.Error("failed to delete borrow record by status",
				"request_id", request.ID, "error", err)
		}
	}

	if s.restoreOnDel && models.InApprovalFamily(request.Status) {
		if err := s.books.ReleaseCopy(ctx, request.BookID); err != nil {
			s.logger.Error("failed to restore book quantity",
				"request_id", request.ID, "book_id", request.BookID, "error", err)
		}
	}

	if err := s.requests.Delete(ctx, request.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	s.invalidateStats(ctx)
	return nil
}

func (s *requestService) List(ctx context.Context) ([]models.BookRequest, Stats, error) {
	requests, err := s.requests.List(ctx)
	if err != nil {
		return nil, Stats{}, err
	}

	var stats Stats
	if hit, err := s.statsCache.GetJSON(ctx, statsCacheKey, &stats); err == nil && hit {
		return requests, stats, nil
	}

	stats = computeStats(requests)
	if err := s.statsCache.SetJSON(ctx, statsCacheKey, stats); err != nil {
		s.logger.Warn("failed to cache request stats", "error", err)
	}

	return requests, stats, nil
}

func computeStats(requests []models.BookRequest) Stats {
	stats := Stats{Total: len(requests)}
	for _, request := range requests {
		switch {
		case models.Normalize(request.Status) == models.StatusPending:
			stats.Pending++
		case models.InApprovalFamily(request.Status):
			stats.Approved++
		case models.InDeclineFamily(request.Status):
			stats.Declined++
		}
	}
	return stats
}

func (s *requestService) loadRequest(ctx context.Context, requestID string) (*models.BookRequest, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return request, nil
}

func (s *requestService) invalidateStats(ctx context.Context) {
	if err := s.statsCache.Invalidate(ctx, statsCacheKey); err != nil {
		s.logger.Warn("failed to invalidate stats cache", "error", err)
	}
}
