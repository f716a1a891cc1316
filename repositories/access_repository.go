package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/renameio/v2"

	"github.com/smart450/site/models"
)

// AccessRepository handles access telemetry persistence
type AccessRepository interface {
	AppendLog(ctx context.Context, line string) error
	Record(ctx context.Context, ip string, rec models.AccessRecord) (int, error)
}

// accessRepository keeps the per-IP aggregates in memory and mirrors them to
// accessi.json after every update
type accessRepository struct {
	logPath   string
	statsPath string

	mu    sync.Mutex
	stats map[string]*models.IPAggregate
}

// NewAccessRepository creates an access repository, loading accessi.json once
func NewAccessRepository(dir string) AccessRepository {
	r := &accessRepository{
		logPath:   filepath.Join(dir, AccessLogFile),
		statsPath: filepath.Join(dir, AccessStatsFile),
		stats:     make(map[string]*models.IPAggregate),
	}

	stats, err := loadAccessStats(r.statsPath)
	if err != nil {
		log.Printf("⚠️  Failed to load %s, starting empty: %v", r.statsPath, err)
	} else {
		r.stats = stats
	}

	return r
}

func loadAccessStats(path string) (map[string]*models.IPAggregate, error) {
	stats := make(map[string]*models.IPAggregate)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return stats, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to parse access stats: %w", err)
	}

	// Drop null entries so updates never dereference nil
	for ip, agg := range stats {
		if agg == nil {
			delete(stats, ip)
		}
	}
	return stats, nil
}

// AppendLog appends one line to accessi.log with a single write
func (r *accessRepository) AppendLog(ctx context.Context, line string) error {
	f, err := os.OpenFile(r.logPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open access log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append access log: %w", err)
	}
	return nil
}

// Record adds rec to the aggregate of ip, persists the whole map and returns the
// new request count for ip
func (r *accessRepository) Record(ctx context.Context, ip string, rec models.AccessRecord) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	agg, ok := r.stats[ip]
	if !ok {
		agg = &models.IPAggregate{Logs: []models.AccessRecord{}}
		r.stats[ip] = agg
	}
	agg.Record(rec)

	data, err := json.MarshalIndent(r.stats, "", "  ")
	if err != nil {
		return agg.Count, fmt.Errorf("failed to encode access stats: %w", err)
	}
	if err := renameio.WriteFile(r.statsPath, data, 0o644, renameio.WithTempDir(filepath.Dir(r.statsPath))); err != nil {
		return agg.Count, fmt.Errorf("failed to save access stats: %w", err)
	}

	return agg.Count, nil
}
