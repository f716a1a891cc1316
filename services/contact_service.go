package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/smart450/site/geoip"
	"github.com/smart450/site/mailer"
	"github.com/smart450/site/models"
	"github.com/smart450/site/repositories"
)

var (
	// ErrOwnerNotification means the owner was not notified; nothing was stored
	ErrOwnerNotification = errors.New("owner notification failed")
	// ErrPersistence means the owner was notified but the contact was not stored
	ErrPersistence = errors.New("contact persistence failed")
)

// ContactService interface defines the contact intake pipeline
type ContactService interface {
	Submit(ctx context.Context, submission models.ContactSubmission, ip string) (*models.StoredContact, error)
}

// ContactOptions holds addressing and display settings for contact emails
type ContactOptions struct {
	From        string
	Destination string
	Location    *time.Location
}

// contactService implements ContactService interface
type contactService struct {
	sender  mailer.Sender
	repo    repositories.ContactRepository
	locator geoip.Locator
	opts    ContactOptions
	now     func() time.Time
}

// NewContactService creates a new contact service
func NewContactService(sender mailer.Sender, repo repositories.ContactRepository, locator geoip.Locator, opts ContactOptions) ContactService {
	if locator == nil {
		locator = geoip.Noop{}
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &contactService{
		sender:  sender,
		repo:    repo,
		locator: locator,
		opts:    opts,
		now:     time.Now,
	}
}

// Submit validates a submission, notifies the owner, acknowledges the user and
// stores the contact, in that order. The owner notification is the commit
// point: once it is sent, a failed acknowledgement is only logged.
func (s *contactService) Submit(ctx context.Context, submission models.ContactSubmission, ip string) (*models.StoredContact, error) {
	if err := submission.Validate(); err != nil {
		return nil, err
	}

	sentAt := s.now()
	contact := models.StoredContact{
		Timestamp: models.FormatISO(sentAt),
		Name:      submission.Name,
		Email:     submission.Email,
		Phone:     submission.Phone,
		Subject:   submission.SubjectLabel(),
		Message:   submission.Message,
		IP:        ip,
		ID:        uuid.NewString(),
	}

	owner, ack, err := s.composeMessages(&contact, s.locator.Locate(ip), sentAt)
	if err != nil {
		return nil, fmt.Errorf("failed to compose contact emails: %w", err)
	}

	if err := s.sender.Send(ctx, owner); err != nil {
		log.Printf("❌ Owner notification for %s failed: %v", contact.Email, err)
		return nil, fmt.Errorf("%w: %w", ErrOwnerNotification, err)
	}

	// The owner has the lead; finish even if the client goes away
	ctx = context.WithoutCancel(ctx)

	if err := s.sender.Send(ctx, ack); err != nil {
		log.Printf("⚠️  Acknowledgement to %s failed: %v", contact.Email, err)
	}

	log.Printf("📧 Contact from %s (%s) - %s", contact.Name, contact.Email, contact.Subject)

	if err := s.repo.Append(ctx, contact); err != nil {
		log.Printf("❌ Failed to store contact from %s: %v", contact.Email, err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return &contact, nil
}
