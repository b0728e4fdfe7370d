package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mwesigwa/tunestream-backend/internal/modules/contact/domain"
	contactPostgres "github.com/mwesigwa/tunestream-backend/internal/modules/contact/infrastructure/persistence/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgContactRepository_SaveMessage(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := contactPostgres.NewContactRepository(db)
	ctx := context.Background()
	msgID := uuid.New()

	mock.ExpectQuery("INSERT INTO contact_messages \\(name, email, subject, message\\)").
		WithArgs("Jane", "jane@example.com", nil, "Hello there").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(msgID, time.Now()))

	msg := &domain.ContactMessage{Name: "Jane", Email: "jane@example.com", Message: "Hello there"}
	require.NoError(t, repo.SaveMessage(ctx, msg))
	assert.Equal(t, msgID, msg.ID)
}

func TestPgContactRepository_ListMessages(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := contactPostgres.NewContactRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "subject", "message", "created_at", "total_count"}).
		AddRow(uuid.New(), "Jane", "jane@example.com", nil, "Hello", now, 7).
		AddRow(uuid.New(), "John", "john@example.com", nil, "Hi", now, 7)
	mock.ExpectQuery("SELECT \\*, COUNT\\(\\*\\) OVER\\(\\) AS total_count").
		WithArgs(20, 0).WillReturnRows(rows)

	messages, total, err := repo.ListMessages(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Equal(t, 7, total)
}

func TestPgContactRepository_SubscribeDuplicate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := contactPostgres.NewContactRepository(db)
	ctx := context.Background()

	subID := uuid.New()
	mock.ExpectQuery("INSERT INTO newsletter_subscriptions \\(email\\)").
		WithArgs("fan@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "subscribed_at"}).AddRow(subID, time.Now()))

	sub, err := repo.Subscribe(ctx, "fan@example.com")
	require.NoError(t, err)
	assert.Equal(t, subID, sub.ID)

	mock.ExpectQuery("INSERT INTO newsletter_subscriptions \\(email\\)").
		WithArgs("fan@example.com").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err = repo.Subscribe(ctx, "fan@example.com")
	assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)
}

func TestPgContactRepository_UnsubscribeNotSubscribed(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := contactPostgres.NewContactRepository(db)

	mock.ExpectExec("DELETE FROM newsletter_subscriptions WHERE email = \\$1").
		WithArgs("ghost@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Unsubscribe(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrNotSubscribed)
}
