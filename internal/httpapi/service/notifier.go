package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"libraryhub/internal/httpapi/models"
	"libraryhub/internal/httpapi/repository"
	"libraryhub/internal/mailer"
)

// Outcome names the lifecycle event a notification is emitted for.
type Outcome string

const (
	OutcomeRequest Outcome = "request"
	OutcomeApprove Outcome = "approve"
	OutcomeDecline Outcome = "decline"
	OutcomeCollect Outcome = "collect"
)

// Notifier records an in-app notification for a lifecycle event and attempts
// a best-effort email. Emit never returns an error: a lifecycle transition
// that already committed must not fail because a notification or email could
// not be delivered.
type Notifier struct {
	notifications repository.NotificationRepository
	members       repository.MemberRepository
	sender        mailer.Sender
	logger        *slog.Logger
	now           func() time.Time
}

func NewNotifier(
	notifications repository.NotificationRepository,
	members repository.MemberRepository,
	sender mailer.Sender,
	logger *slog.Logger,
) *Notifier {
	return &Notifier{
		notifications: notifications,
		members:       members,
		sender:        sender,
		logger:        logger,
		now:           time.Now,
	}
}

type messageTemplate struct {
	notificationType string
	title            string
	inApp            string
	emailBody        string
	sendEmail        bool
}

func (n *Notifier) buildTemplate(outcome Outcome, request *models.BookRequest) messageTemplate {
	title := request.BookTitle
	if title == "" {
		title = fmt.Sprintf("book #%d", request.BookID)
	}
	due := request.DueDate.Format("January 2, 2006")

	greeting := "Hello,"
	if request.MemberName != "" {
		greeting = fmt.Sprintf("Hello %s,", request.MemberName)
	}

	switch outcome {
	case OutcomeApprove:
		return messageTemplate{
			notificationType: models.NotificationBookApproved,
			title:            "Book Request Approved",
			inApp:            fmt.Sprintf("Your request for %q has been approved. The book is due back on %s.", title, due),
			emailBody: fmt.Sprintf(
				"%s\n\nGood news! Your request to borrow %q has been approved. "+
					"You can pick up your copy at the library desk. Please return it by %s.\n\n"+
					"Happy reading,\nThe Library Team",
				greeting, title, due),
			sendEmail: true,
		}
	case OutcomeDecline:
		return messageTemplate{
			notificationType: models.NotificationBookDeclined,
			title:            "Book Request Declined",
			inApp:            fmt.Sprintf("Your request for %q was declined. Please contact the library for details.", title),
			emailBody: fmt.Sprintf(
				"%s\n\nUnfortunately your request to borrow %q could not be approved at this time. "+
					"Feel free to contact the library desk if you have questions, or request the book again later.\n\n"+
					"The Library Team",
				greeting, title),
			sendEmail: true,
		}
	case OutcomeCollect:
		return messageTemplate{
			notificationType: models.NotificationBookReceived,
			title:            "Book Pickup Confirmed",
			inApp:            fmt.Sprintf("You have collected %q. It is due back on %s.", title, due),
			emailBody: fmt.Sprintf(
				"%s\n\nThis confirms you picked up %q from the library. Please return it by %s.\n\n"+
					"The Library Team",
				greeting, title, due),
			sendEmail: true,
		}
	default: // OutcomeRequest
		return messageTemplate{
			notificationType: models.NotificationBookRequest,
			title:            "Book Request Received",
			inApp:            fmt.Sprintf("We received your request for %q. You will be notified once it is reviewed.", title),
			// Submission gets an in-app notification only.
			sendEmail: false,
		}
	}
}

// Emit records the in-app notification and attempts the email send. All
// failures are logged and swallowed.
func (n *Notifier) Emit(ctx context.Context, outcome Outcome, request *models.BookRequest) {
	tmpl := n.buildTemplate(outcome, request)

	notification := &models.Notification{
		MemberID:         request.MemberID,
		Type:             tmpl.notificationType,
		Title:            tmpl.title,
		Message:          tmpl.inApp,
		RelatedRequestID: &request.ID,
	}

	notificationStored := true
	if err := n.notifications.Create(ctx, notification); err != nil {
		notificationStored = false
		n.logger.Error("failed to store notification",
			"request_id", request.ID, "outcome", string(outcome), "error", err)
	}

	if !tmpl.sendEmail {
		return
	}

	email := n.resolveEmail(ctx, request)
	if email == "" {
		n.logger.Warn("no email address resolvable for member, skipping email",
			"request_id", request.ID, "member_id", request.MemberID)
		return
	}

	err := n.sender.Send(ctx, mailer.Email{
		To:       email,
		Subject:  tmpl.title,
		Message:  tmpl.emailBody,
		Type:     tmpl.notificationType,
		MemberID: request.MemberID,
		BookID:   request.BookID,
	})
	if err != nil {
		n.logger.Error("failed to send email",
			"request_id", request.ID, "outcome", string(outcome), "error", err)
		return
	}

	if notificationStored {
		if err := n.notifications.StampEmailed(ctx, notification.ID, n.now()); err != nil {
			n.logger.Error("failed to stamp emailed_at", "notification_id", notification.ID, "error", err)
		}
	}
}

// resolveEmail prefers the snapshot taken at submission time, falling back to
// the live member row.
func (n *Notifier) resolveEmail(ctx context.Context, request *models.BookRequest) string {
	if request.MemberEmail != "" {
		return request.MemberEmail
	}

	member, err := n.members.GetByID(ctx, request.MemberID)
	if err != nil {
		n.logger.Warn("could not load member for email resolution",
			"member_id", request.MemberID, "error", err)
		return ""
	}
	return member.Email
}
