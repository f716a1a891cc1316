package services

import (
	"context"
	"log"
	"time"

	"github.com/smart450/site/models"
	"github.com/smart450/site/repositories"
)

// Visit describes one request as seen by the access recorder
type Visit struct {
	IP       string
	Protocol string
	Method   string
	URL      string
}

// AccessService interface defines access telemetry recording
type AccessService interface {
	Record(ctx context.Context, visit Visit)
}

// accessService implements AccessService interface
type accessService struct {
	repo repositories.AccessRepository
	now  func() time.Time
}

// NewAccessService creates a new access service
func NewAccessService(repo repositories.AccessRepository) AccessService {
	return &accessService{repo: repo, now: time.Now}
}

// Record appends the visit to accessi.log and to the per-IP aggregate.
// Failures are logged and never reach the caller.
func (s *accessService) Record(ctx context.Context, visit Visit) {
	rec := models.AccessRecord{
		Timestamp: models.FormatISO(s.now()),
		Protocol:  visit.Protocol,
		Method:    visit.Method,
		URL:       visit.URL,
	}

	if err := s.repo.AppendLog(ctx, rec.LogLine(visit.IP)); err != nil {
		log.Printf("⚠️  Access log: %v", err)
	}

	count, err := s.repo.Record(ctx, visit.IP, rec)
	if err != nil {
		log.Printf("⚠️  Access stats: %v", err)
	}

	log.Printf("📥 Access from %s via %s (total: %d)", visit.IP, visit.Protocol, count)
}
