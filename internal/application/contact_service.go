package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/moraleja/portfolio/internal/domain"
	"go.uber.org/zap"
)

// ContactNotifier tells the studio about a new inquiry.
type ContactNotifier interface {
	SendContactNotification(ctx context.Context, id int, inquiry domain.ContactInquiry) error
}

type ContactService struct {
	repo      domain.ContactRepository
	notifier  ContactNotifier
	limiter   *RateLimiter
	logger    *zap.Logger
	validator Validator
}

// NewContactService builds the service. notifier may be nil when SMTP is not
// configured; inquiries are still stored.
func NewContactService(repo domain.ContactRepository, notifier ContactNotifier, limiter *RateLimiter, logger *zap.Logger) *ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{repo: repo, notifier: notifier, limiter: limiter, logger: logger}
}

// Submit stores an inquiry from clientKey and notifies the inbox. A failed
// notification is logged; the inquiry is kept either way.
func (s *ContactService) Submit(ctx context.Context, clientKey string, in domain.ContactInquiry) (int, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Company = strings.TrimSpace(in.Company)
	in.Budget = strings.TrimSpace(in.Budget)
	in.Message = strings.TrimSpace(in.Message)

	var errs []error
	if err := s.validator.ValidateName(in.Name, "name", 2, 100); err != nil {
		errs = append(errs, err)
	}
	if err := s.validator.ValidateEmail(in.Email); err != nil {
		errs = append(errs, err)
	}
	if err := s.validator.ValidateName(in.Message, "message", 10, 5000); err != nil {
		errs = append(errs, err)
	}
	if err := s.validator.FormatValidationErrors(errs); err != nil {
		return 0, err
	}

	if s.limiter != nil {
		if err := s.limiter.Allow("contact:" + clientKey); err != nil {
			return 0, err
		}
	}

	id, err := s.repo.Create(ctx, in)
	if err != nil {
		return 0, fmt.Errorf("storing inquiry: %w", err)
	}
	s.logger.Info("contact inquiry received", zap.Int("id", id), zap.String("client", clientKey))

	if s.notifier != nil {
		if err := s.notifier.SendContactNotification(ctx, id, in); err != nil {
			s.logger.Error("contact notification failed", zap.Int("id", id), zap.Error(err))
		}
	}
	return id, nil
}

func (s *ContactService) List(ctx context.Context) ([]domain.Contact, error) {
	return s.repo.List(ctx)
}

func (s *ContactService) UpdateStatus(ctx context.Context, id int, status domain.InquiryStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
