package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/renameio/v2"

	"github.com/smart450/site/models"
)

// ContactRepository handles contact history persistence
type ContactRepository interface {
	Append(ctx context.Context, contact models.StoredContact) error
	GetAll(ctx context.Context) ([]models.StoredContact, error)
}

// contactRepository stores the history as a JSON array, rewritten on every append
type contactRepository struct {
	path string
	mu   sync.Mutex
}

// NewContactRepository creates a new contact repository
func NewContactRepository(dir string) ContactRepository {
	return &contactRepository{path: filepath.Join(dir, ContactsFile)}
}

// Append adds a contact to the end of contacts.json.
// An unparseable file is moved aside and the history restarts from it.
func (r *contactRepository) Append(ctx context.Context, contact models.StoredContact) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	contacts, err := r.read()
	if err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &syntaxErr) && !errors.As(err, &typeErr) {
			return err
		}

		aside := r.path + ".corrupt-" + strconv.FormatInt(time.Now().Unix(), 10)
		if renameErr := os.Rename(r.path, aside); renameErr != nil {
			return fmt.Errorf("failed to move corrupt contacts file: %w", renameErr)
		}
		log.Printf("⚠️  %s was not valid JSON (%v), moved to %s", r.path, err, aside)
		contacts = nil
	}

	contacts = append(contacts, contact)

	data, err := json.MarshalIndent(contacts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode contacts: %w", err)
	}
	if err := renameio.WriteFile(r.path, data, 0o600, renameio.WithTempDir(filepath.Dir(r.path))); err != nil {
		return fmt.Errorf("failed to save contacts: %w", err)
	}

	return nil
}

// GetAll returns the full contact history in submission order
func (r *contactRepository) GetAll(ctx context.Context) ([]models.StoredContact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.read()
}

func (r *contactRepository) read() ([]models.StoredContact, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.StoredContact{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read contacts: %w", err)
	}

	var contacts []models.StoredContact
	if err := json.Unmarshal(data, &contacts); err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []models.StoredContact{}
	}
	return contacts, nil
}
