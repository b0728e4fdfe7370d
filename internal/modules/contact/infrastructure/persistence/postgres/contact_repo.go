package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mwesigwa/tunestream-backend/internal/modules/contact/domain"
)

// PgContactRepository persists contact messages and newsletter signups.
type PgContactRepository struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) *PgContactRepository {
	return &PgContactRepository{db: db}
}

func (r *PgContactRepository) SaveMessage(ctx context.Context, msg *domain.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := r.db.QueryRowxContext(ctx, query, msg.Name, msg.Email, msg.Subject, msg.Message).
		Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save contact message: %w", err)
	}
	return nil
}

// ListMessages returns submitted messages newest first with the true total.
func (r *PgContactRepository) ListMessages(ctx context.Context, limit, offset int) ([]domain.ContactMessage, int, error) {
	query := `
		SELECT *, COUNT(*) OVER() AS total_count
		FROM contact_messages
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryxContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	messages := []domain.ContactMessage{}
	total := 0
	for rows.Next() {
		var row struct {
			domain.ContactMessage
			TotalCount int `db:"total_count"`
		}
		if err := rows.StructScan(&row); err != nil {
			return nil, 0, fmt.Errorf("failed to scan contact message: %w", err)
		}
		messages = append(messages, row.ContactMessage)
		total = row.TotalCount
	}
	return messages, total, rows.Err()
}

// Subscribe adds the address to the newsletter list; a duplicate reports
// ErrAlreadySubscribed.
func (r *PgContactRepository) Subscribe(ctx context.Context, email string) (*domain.NewsletterSubscription, error) {
	sub := &domain.NewsletterSubscription{Email: email}
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO newsletter_subscriptions (email) VALUES ($1) RETURNING id, subscribed_at`, email).
		Scan(&sub.ID, &sub.SubscribedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, domain.ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}
	return sub, nil
}

func (r *PgContactRepository) Unsubscribe(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM newsletter_subscriptions WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotSubscribed
	}
	return nil
}
