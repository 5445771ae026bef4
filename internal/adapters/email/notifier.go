package email

import (
	"context"
	"fmt"

	"eventboard/internal/domain"
)

type notifier struct {
	mailer Mailer
}

// NewNotifier returns a Notifier that emails initiators about moderation
// outcomes through the given mailer.
func NewNotifier(mailer Mailer) domain.Notifier {
	return &notifier{mailer: mailer}
}

func (n *notifier) EventPublished(ctx context.Context, initiator *domain.User, event *domain.Event) error {
	subject := fmt.Sprintf("Your event %q has been published", event.Title)
	text := fmt.Sprintf(
		"Hi %s,\n\nYour event %q was approved and is now visible to everyone. It starts on %s.\n",
		initiator.Name, event.Title, event.EventDate.Format("2 Jan 2006 15:04"),
	)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your event <b>%s</b> was approved and is now visible to everyone. It starts on %s.</p>",
		initiator.Name, event.Title, event.EventDate.Format("2 Jan 2006 15:04"),
	)
	return n.mailer.Send(initiator.Email, subject, html, text)
}

func (n *notifier) EventRejected(ctx context.Context, initiator *domain.User, event *domain.Event) error {
	subject := fmt.Sprintf("Your event %q was not approved", event.Title)
	text := fmt.Sprintf(
		"Hi %s,\n\nYour event %q did not pass moderation and has been canceled. You can edit it and send it for review again.\n",
		initiator.Name, event.Title,
	)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your event <b>%s</b> did not pass moderation and has been canceled. You can edit it and send it for review again.</p>",
		initiator.Name, event.Title,
	)
	return n.mailer.Send(initiator.Email, subject, html, text)
}
