package application

import (
	"context"
	"errors"
	"strings"

	"github.com/mwesigwa/tunestream-backend/internal/modules/contact/domain"
	"github.com/mwesigwa/tunestream-backend/internal/shared/utils"
)

// ContactService handles contact form and newsletter operations
type ContactService struct {
	repo domain.ContactRepository
}

func NewContactService(repo domain.ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

// SubmitMessage validates and stores a contact form submission
func (s *ContactService) SubmitMessage(ctx context.Context, name, email string, subject *string, message string) (*domain.ContactMessage, error) {
	name = strings.TrimSpace(name)
	message = strings.TrimSpace(message)
	if name == "" {
		return nil, errors.New("name is required")
	}
	if !utils.IsValidEmail(email) {
		return nil, errors.New("a valid email is required")
	}
	if message == "" {
		return nil, errors.New("message is required")
	}

	msg := &domain.ContactMessage{Name: name, Email: email, Subject: subject, Message: message}
	if err := s.repo.SaveMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ListMessages returns submitted messages for admin review
func (s *ContactService) ListMessages(ctx context.Context, limit, offset int) ([]domain.ContactMessage, int, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListMessages(ctx, limit, offset)
}

// Subscribe opts an address into the newsletter
func (s *ContactService) Subscribe(ctx context.Context, email string) (*domain.NewsletterSubscription, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !utils.IsValidEmail(email) {
		return nil, errors.New("a valid email is required")
	}
	return s.repo.Subscribe(ctx, email)
}

// Unsubscribe removes an address from the newsletter
func (s *ContactService) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !utils.IsValidEmail(email) {
		return errors.New("a valid email is required")
	}
	return s.repo.Unsubscribe(ctx, email)
}
