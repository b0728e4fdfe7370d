package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ContactMessage is a message submitted through the site contact form
type ContactMessage struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Subject   *string   `db:"subject" json:"subject,omitempty"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewsletterSubscription is one opted-in email address
type NewsletterSubscription struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	SubscribedAt time.Time `db:"subscribed_at" json:"subscribed_at"`
}

type ContactRepository interface {
	SaveMessage(ctx context.Context, msg *ContactMessage) error
	ListMessages(ctx context.Context, limit, offset int) ([]ContactMessage, int, error)
	Subscribe(ctx context.Context, email string) (*NewsletterSubscription, error)
	Unsubscribe(ctx context.Context, email string) error
}
