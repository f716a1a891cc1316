package models

import (
	"bytes"
	"encoding/json"
	"net/url"
	"regexp"
	"strconv"
)

// User-facing validation messages
const (
	MsgRequiredFields = "Tutti i campi obbligatori devono essere compilati"
	MsgInvalidEmail   = "Formato email non valido"
)

// DefaultSubjectLabel is used for unknown or missing subject keys
const DefaultSubjectLabel = "Contatto dal sito"

// SubjectLabels maps the form's subject keys to readable labels
var SubjectLabels = map[string]string{
	"info-generali":  "Richiesta Informazioni Generali",
	"visione-auto":   "Richiesta Visione Auto",
	"prova-auto":     "Richiesta Prova Auto",
	"documentazione": "Richiesta Documentazione Aggiuntiva",
	"trattativa":     "Proposta di Trattativa",
	"rivenditore":    "Contatto Rivenditore",
	"altro":          "Altro",
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SubjectLabel returns the readable label for a subject key
func SubjectLabel(key string) string {
	if label, ok := SubjectLabels[key]; ok {
		return label
	}
	return DefaultSubjectLabel
}

// IsValidEmail checks the address against the contact form pattern
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Consent is a loosely typed truthy flag: true, a non-empty string or a non-zero
// number all count as given
type Consent bool

// UnmarshalJSON implements json.Unmarshaler
func (c *Consent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*c = false
	case bytes.Equal(data, []byte("true")):
		*c = true
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = s != ""
	case data[0] == '{' || data[0] == '[':
		*c = true
	default:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		*c = n != 0
	}
	return nil
}

// ContactSubmission represents the contact form payload
type ContactSubmission struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Subject string  `json:"subject"`
	Message string  `json:"message"`
	Privacy Consent `json:"privacy"`
}

// ContactSubmissionFromForm builds a submission from URL-encoded form values
func ContactSubmissionFromForm(form url.Values) ContactSubmission {
	return ContactSubmission{
		Name:    form.Get("name"),
		Email:   form.Get("email"),
		Phone:   form.Get("phone"),
		Subject: form.Get("subject"),
		Message: form.Get("message"),
		Privacy: Consent(form.Get("privacy") != ""),
	}
}

// Validate returns the first validation failure, or nil
func (s *ContactSubmission) Validate() error {
	if s.Name == "" || s.Email == "" || s.Message == "" || !bool(s.Privacy) {
		return &ValidationError{Message: MsgRequiredFields}
	}
	if !IsValidEmail(s.Email) {
		return &ValidationError{Field: "email", Message: MsgInvalidEmail}
	}
	return nil
}

// SubjectLabel returns the readable label of the submission's subject
func (s *ContactSubmission) SubjectLabel() string {
	return SubjectLabel(s.Subject)
}

// StoredContact is a submission as persisted in contacts.json
type StoredContact struct {
	Timestamp string `json:"timestamp"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	IP        string `json:"ip"`
	ID        string `json:"id,omitempty"`
}
