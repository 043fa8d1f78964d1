package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"libraryhub/internal/httpapi/models"
	"libraryhub/internal/httpapi/repository"
	"libraryhub/internal/mailer"

	"gorm.io/gorm"
)

// In-memory fakes for the repository interfaces. They mirror the row-level
// behavior the GORM implementations have, including ErrRecordNotFound and
// RowsAffected-style return values.

type fakeRequestRepo struct {
	mu      sync.Mutex
	rows    map[string]models.BookRequest
	nextID  int
	failAll bool
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{rows: make(map[string]models.BookRequest)}
}

func (r *fakeRequestRepo) Create(ctx context.Context, request *models.BookRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return fmt.Errorf("create book request: connection refused")
	}
	if request.ID == "" {
		r.nextID++
		request.ID = fmt.Sprintf("01TESTREQUEST%013d", r.nextID)
	}
	r.rows[request.ID] = *request
	return nil
}

func (r *fakeRequestRepo) GetByID(ctx context.Context, requestID string) (*models.BookRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[requestID]
	if !ok {
		return nil, fmt.Errorf("get request %s: %w", requestID, gorm.ErrRecordNotFound)
	}
	out := row
	return &out, nil
}

func (r *fakeRequestRepo) List(ctx context.Context) ([]models.BookRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return nil, fmt.Errorf("list requests: connection refused")
	}
	out := make([]models.BookRequest, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeRequestRepo) UpdateStatus(ctx context.Context, requestID string, status models.RequestStatus, processedDate time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[requestID]
	if !ok {
		return fmt.Errorf("update request %s status: %w", requestID, gorm.ErrRecordNotFound)
	}
	row.Status = status.String()
	row.ProcessedDate = &processedDate
	r.rows[requestID] = row
	return nil
}

func (r *fakeRequestRepo) Delete(ctx context.Context, requestID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[requestID]; !ok {
		return fmt.Errorf("delete request %s: %w", requestID, gorm.ErrRecordNotFound)
	}
	delete(r.rows, requestID)
	return nil
}

type fakeBookRepo struct {
	mu   sync.Mutex
	rows map[int64]models.Book
}

func newFakeBookRepo(books ...models.Book) *fakeBookRepo {
	repo := &fakeBookRepo{rows: make(map[int64]models.Book)}
	for _, book := range books {
		repo.rows[book.ID] = book
	}
	return repo
}

func (r *fakeBookRepo) GetByID(ctx context.Context, bookID int64) (*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[bookID]
	if !ok {
		return nil, fmt.Errorf("get book %d: %w", bookID, gorm.ErrRecordNotFound)
	}
	out := row
	return &out, nil
}

func (r *fakeBookRepo) List(ctx context.Context) ([]models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Book, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeBookRepo) Create(ctx context.Context, book *models.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	book.Available = book.Quantity > 0
	r.rows[book.ID] = *book
	return nil
}

func (r *fakeBookRepo) ReserveCopy(ctx context.Context, bookID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[bookID]
	if !ok || row.Quantity <= 0 {
		return repository.ErrNoCopies
	}
	row.Quantity--
	row.Available = row.Quantity > 0
	r.rows[bookID] = row
	return nil
}

func (r *fakeBookRepo) ReleaseCopy(ctx context.Context, bookID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[bookID]
	if !ok {
		return fmt.Errorf("release copy of book %d: %w", bookID, gorm.ErrRecordNotFound)
	}
	row.Quantity++
	row.Available = true
	r.rows[bookID] = row
	return nil
}

type fakeBorrowRepo struct {
	mu     sync.Mutex
	rows   []models.BorrowRecord
	nextID int64
}

func (r *fakeBorrowRepo) Create(ctx context.Context, record *models.BorrowRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	record.ID = r.nextID
	if record.Status == "" {
		record.Status = models.BorrowStatusBorrowed
	}
	r.rows = append(r.rows, *record)
	return nil
}

func (r *fakeBorrowRepo) DeleteByDueDate(ctx context.Context, memberID, bookID int64, dueDate time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []models.BorrowRecord
	var removed int64
	for _, row := range r.rows {
		if row.MemberID == memberID && row.BookID == bookID && row.DueDate.Equal(dueDate) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	r.rows = kept
	return removed, nil
}

func (r *fakeBorrowRepo) DeleteBorrowed(ctx context.Context, memberID, bookID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []models.BorrowRecord
	var removed int64
	for _, row := range r.rows {
		if row.MemberID == memberID && row.BookID == bookID && row.Status == models.BorrowStatusBorrowed {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	r.rows = kept
	return removed, nil
}

func (r *fakeBorrowRepo) ListOverdue(ctx context.Context, now time.Time) ([]models.BorrowRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.BorrowRecord
	for _, row := range r.rows {
		if row.Status == models.BorrowStatusBorrowed && row.DueDate.Before(now) {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeMemberRepo struct {
	mu     sync.Mutex
	rows   map[int64]models.Member
	nextID int64
}

func newFakeMemberRepo(members ...models.Member) *fakeMemberRepo {
	repo := &fakeMemberRepo{rows: make(map[int64]models.Member)}
	for _, member := range members {
		repo.rows[member.ID] = member
		if member.ID > repo.nextID {
			repo.nextID = member.ID
		}
	}
	return repo
}

func (r *fakeMemberRepo) GetByID(ctx context.Context, memberID int64) (*models.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[memberID]
	if !ok {
		return nil, fmt.Errorf("get member %d: %w", memberID, gorm.ErrRecordNotFound)
	}
	out := row
	return &out, nil
}

func (r *fakeMemberRepo) ResolveOrCreate(ctx context.Context, email, name string) (*models.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Email == email {
			out := row
			return &out, nil
		}
	}
	r.nextID++
	member := models.Member{ID: r.nextID, Email: email, Name: name}
	r.rows[member.ID] = member
	return &member, nil
}

type fakeNotificationRepo struct {
	mu         sync.Mutex
	rows       []models.Notification
	nextID     int64
	failCreate bool
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return fmt.Errorf("create notification: connection refused")
	}
	r.nextID++
	notification.ID = r.nextID
	r.rows = append(r.rows, *notification)
	return nil
}

func (r *fakeNotificationRepo) GetUnreadByMember(ctx context.Context, memberID int64) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, row := range r.rows {
		if row.MemberID == memberID && !row.Read {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkAsRead(ctx context.Context, notificationID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == notificationID {
			r.rows[i].Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(ctx context.Context, memberID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].MemberID == memberID {
			r.rows[i].Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) DeleteByRequestID(ctx context.Context, requestID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []models.Notification
	var removed int64
	for _, row := range r.rows {
		if row.RelatedRequestID != nil && *row.RelatedRequestID == requestID {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	r.rows = kept
	return removed, nil
}

func (r *fakeNotificationRepo) ListUnemailed(ctx context.Context, limit int) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, row := range r.rows {
		if row.EmailedAt == nil && !row.Read {
			out = append(out, row)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) StampEmailed(ctx context.Context, notificationID int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == notificationID {
			stamped := at
			r.rows[i].EmailedAt = &stamped
		}
	}
	return nil
}

func (r *fakeNotificationRepo) byType(notificationType string) []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, row := range r.rows {
		if row.Type == notificationType {
			out = append(out, row)
		}
	}
	return out
}

type recorderSender struct {
	mu     sync.Mutex
	sent   []mailer.Email
	failed bool
}

func (s *recorderSender) Send(ctx context.Context, email mailer.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed {
		return fmt.Errorf("email service returned status 502")
	}
	s.sent = append(s.sent, email)
	return nil
}

func (s *recorderSender) sentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}
