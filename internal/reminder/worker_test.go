package reminder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryhub/internal/httpapi/models"
	"libraryhub/internal/mailer"

	"gorm.io/gorm"
)

type stubNotificationRepo struct {
	rows   []models.Notification
	nextID int64
}

func (r *stubNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	r.nextID++
	notification.ID = r.nextID
	r.rows = append(r.rows, *notification)
	return nil
}

func (r *stubNotificationRepo) GetUnreadByMember(ctx context.Context, memberID int64) ([]models.Notification, error) {
	return nil, nil
}

func (r *stubNotificationRepo) MarkAsRead(ctx context.Context, notificationID int64) error {
	return nil
}

func (r *stubNotificationRepo) MarkAllAsRead(ctx context.Context, memberID int64) error {
	return nil
}

func (r *stubNotificationRepo) DeleteByRequestID(ctx context.Context, requestID string) (int64, error) {
	return 0, nil
}

func (r *stubNotificationRepo) ListUnemailed(ctx context.Context, limit int) ([]models.Notification, error) {
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

func (r *stubNotificationRepo) StampEmailed(ctx context.Context, notificationID int64, at time.Time) error {
	for i := range r.rows {
		if r.rows[i].ID == notificationID {
			stamped := at
			r.rows[i].EmailedAt = &stamped
		}
	}
	return nil
}

type stubBorrowRepo struct {
	overdue []models.BorrowRecord
}

func (r *stubBorrowRepo) Create(ctx context.Context, record *models.BorrowRecord) error { return nil }

func (r *stubBorrowRepo) DeleteByDueDate(ctx context.Context, memberID, bookID int64, dueDate time.Time) (int64, error) {
	return 0, nil
}

func (r *stubBorrowRepo) DeleteBorrowed(ctx context.Context, memberID, bookID int64) (int64, error) {
	return 0, nil
}

func (r *stubBorrowRepo) ListOverdue(ctx context.Context, now time.Time) ([]models.BorrowRecord, error) {
	return r.overdue, nil
}

type stubMemberRepo struct {
	members map[int64]models.Member
}

func (r *stubMemberRepo) GetByID(ctx context.Context, memberID int64) (*models.Member, error) {
	member, ok := r.members[memberID]
	if !ok {
		return nil, fmt.Errorf("get member %d: %w", memberID, gorm.ErrRecordNotFound)
	}
	return &member, nil
}

func (r *stubMemberRepo) ResolveOrCreate(ctx context.Context, email, name string) (*models.Member, error) {
	return nil, fmt.Errorf("not implemented")
}

type recorderSender struct {
	sent []mailer.Email
}

func (s *recorderSender) Send(ctx context.Context, email mailer.Email) error {
	s.sent = append(s.sent, email)
	return nil
}

func newTestWorker(notes *stubNotificationRepo, borrows *stubBorrowRepo, members *stubMemberRepo, sender *recorderSender) *Worker {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewWorker(notes, borrows, members, sender, nil, logger)
}

func TestRunOnceResendsUnemailedNotifications(t *testing.T) {
	notes := &stubNotificationRepo{}
	require.NoError(t, notes.Create(context.Background(), &models.Notification{
		MemberID: 1,
		Type:     models.NotificationBookApproved,
		Title:    "Book Request Approved",
		Message:  "Your request was approved.",
	}))

	members := &stubMemberRepo{members: map[int64]models.Member{
		1: {ID: 1, Name: "Ana Reyes", Email: "ana@school.edu"},
	}}
	sender := &recorderSender{}

	worker := newTestWorker(notes, &stubBorrowRepo{}, members, sender)
	worker.RunOnce(context.Background())

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "ana@school.edu", sender.sent[0].To)
	assert.NotNil(t, notes.rows[0].EmailedAt)

	// A second pass finds nothing left to resend.
	worker.RunOnce(context.Background())
	assert.Len(t, sender.sent, 1)
}

func TestRunOnceSkipsNotificationsWithoutEmail(t *testing.T) {
	notes := &stubNotificationRepo{}
	require.NoError(t, notes.Create(context.Background(), &models.Notification{
		MemberID: 9,
		Type:     models.NotificationBookDeclined,
	}))

	sender := &recorderSender{}
	worker := newTestWorker(notes, &stubBorrowRepo{}, &stubMemberRepo{members: map[int64]models.Member{}}, sender)
	worker.RunOnce(context.Background())

	assert.Empty(t, sender.sent)
	assert.Nil(t, notes.rows[0].EmailedAt)
}

func TestRunOnceEmitsOverdueNotices(t *testing.T) {
	member := models.Member{ID: 1, Name: "Ana Reyes", Email: "ana@school.edu"}
	book := models.Book{ID: 5, Title: "Watership Down"}

	borrows := &stubBorrowRepo{overdue: []models.BorrowRecord{{
		ID:       7,
		MemberID: 1,
		BookID:   5,
		DueDate:  time.Now().AddDate(0, 0, -3),
		Status:   models.BorrowStatusBorrowed,
		Member:   &member,
		Book:     &book,
	}}}

	notes := &stubNotificationRepo{}
	sender := &recorderSender{}
	worker := newTestWorker(notes, borrows, &stubMemberRepo{members: map[int64]models.Member{1: member}}, sender)

	worker.RunOnce(context.Background())

	overdue := 0
	for _, row := range notes.rows {
		if row.Type == models.NotificationOverdueNotice {
			overdue++
			assert.Contains(t, row.Message, "Watership Down")
		}
	}
	assert.Equal(t, 1, overdue)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, models.NotificationOverdueNotice, sender.sent[0].Type)
}
