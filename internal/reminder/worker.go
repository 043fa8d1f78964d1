package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"libraryhub/internal/cache"
	"libraryhub/internal/httpapi/models"
	"libraryhub/internal/httpapi/repository"
	"libraryhub/internal/mailer"
)

const (
	resendBatchSize = 100
	dedupeWindow    = 24 * time.Hour
)

// Worker periodically resends notification emails that never went out and
// emits overdue notices for borrow records past their due date. Overdue
// notices are deduped through Redis so a member gets at most one per day.
type Worker struct {
	notifications repository.NotificationRepository
	borrows       repository.BorrowRepository
	members       repository.MemberRepository
	sender        mailer.Sender
	dedupe        *cache.Cache
	logger        *slog.Logger
	now           func() time.Time
}

func NewWorker(
	notifications repository.NotificationRepository,
	borrows repository.BorrowRepository,
	members repository.MemberRepository,
	sender mailer.Sender,
	dedupe *cache.Cache,
	logger *slog.Logger,
) *Worker {
	return &Worker{
		notifications: notifications,
		borrows:       borrows,
		members:       members,
		sender:        sender,
		dedupe:        dedupe,
		logger:        logger,
		now:           time.Now,
	}
}

// Run executes scans on the given interval until the context is cancelled.
func (w *Worker) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single scan. Errors are logged, never fatal; the next
// tick retries whatever is still outstanding.
func (w *Worker) RunOnce(ctx context.Context) {
	w.resendUnemailed(ctx)
	w.sendOverdueNotices(ctx)
}

func (w *Worker) resendUnemailed(ctx context.Context) {
	notifications, err := w.notifications.ListUnemailed(ctx, resendBatchSize)
	if err != nil {
		w.logger.Error("failed to list unemailed notifications", "error", err)
		return
	}

	for _, notification := range notifications {
		email := ""
		if notification.Member != nil {
			email = notification.Member.Email
		}
		if email == "" {
			member, err := w.members.GetByID(ctx, notification.MemberID)
			if err != nil {
				w.logger.Warn("no email resolvable for notification",
					"notification_id", notification.ID, "error", err)
				continue
			}
			email = member.Email
		}

		err := w.sender.Send(ctx, mailer.Email{
			To:       email,
			Subject:  notification.Title,
			Message:  notification.Message,
			Type:     notification.Type,
			MemberID: notification.MemberID,
		})
		if err != nil {
			w.logger.Error("failed to resend notification email",
				"notification_id", notification.ID, "error", err)
			continue
		}

		if err := w.notifications.StampEmailed(ctx, notification.ID, w.now()); err != nil {
			w.logger.Error("failed to stamp emailed_at",
				"notification_id", notification.ID, "error", err)
		}
	}
}

func (w *Worker) sendOverdueNotices(ctx context.Context) {
	now := w.now()
	records, err := w.borrows.ListOverdue(ctx, now)
	if err != nil {
		w.logger.Error("failed to list overdue borrow records", "error", err)
		return
	}

	for _, record := range records {
		key := fmt.Sprintf("reminder:overdue:%d:%s", record.ID, now.Format("2006-01-02"))
		first, err := w.dedupe.Once(ctx, key, dedupeWindow)
		if err != nil {
			w.logger.Warn("overdue dedupe check failed", "record_id", record.ID, "error", err)
			continue
		}
		if !first {
			continue
		}

		title := fmt.Sprintf("book #%d", record.BookID)
		if record.Book != nil {
			title = record.Book.Title
		}
		due := record.DueDate.Format("January 2, 2006")

		notification := &models.Notification{
			MemberID: record.MemberID,
			Type:     models.NotificationOverdueNotice,
			Title:    "Book Overdue",
			Message:  fmt.Sprintf("%q was due back on %s. Please return it to the library.", title, due),
		}
		if err := w.notifications.Create(ctx, notification); err != nil {
			w.logger.Error("failed to store overdue notification",
				"record_id", record.ID, "error", err)
			continue
		}

		if record.Member == nil || record.Member.Email == "" {
			continue
		}

		err = w.sender.Send(ctx, mailer.Email{
			To:      record.Member.Email,
			Subject: "Book Overdue",
			Message: fmt.Sprintf("Hello %s,\n\n%q was due back on %s. Please return it to the library desk as soon as possible.\n\nThe Library Team",
				record.Member.Name, title, due),
			Type:     models.NotificationOverdueNotice,
			MemberID: record.MemberID,
			BookID:   record.BookID,
		})
		if err != nil {
			w.logger.Error("failed to send overdue email", "record_id", record.ID, "error", err)
			continue
		}

		if err := w.notifications.StampEmailed(ctx, notification.ID, w.now()); err != nil {
			w.logger.Error("failed to stamp emailed_at",
				"notification_id", notification.ID, "error", err)
		}
	}
}
