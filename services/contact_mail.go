package services

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/smart450/site/mailer"
	"github.com/smart450/site/models"
)

// Email subjects
const (
	ownerSubjectPrefix = "🚗 Smart Fortwo 450 - "
	ackSubject         = "✅ Messaggio ricevuto - Smart Fortwo 450 Cabrio"
)

//go:embed templates/*.html
var templateFS embed.FS

var mailTemplates = template.Must(
	template.New("mail").Funcs(template.FuncMap{
		"nl2br": nl2br,
	}).ParseFS(templateFS, "templates/*.html"),
)

// nl2br escapes s and turns its line breaks into <br>
func nl2br(s string) template.HTML {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
}

// mailData is what both email templates render
type mailData struct {
	Name     string
	Email    string
	Phone    string
	Subject  string
	IP       string
	Location string
	SentAt   string
	Message  string
}

func renderMail(name string, data mailData) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

// composeMessages builds the owner notification and the user acknowledgement
// for one submission
func (s *contactService) composeMessages(contact *models.StoredContact, location string, sentAt time.Time) (owner, ack *mailer.Message, err error) {
	data := mailData{
		Name:     contact.Name,
		Email:    contact.Email,
		Phone:    contact.Phone,
		Subject:  contact.Subject,
		IP:       contact.IP,
		Location: location,
		SentAt:   models.FormatLocal(sentAt, s.opts.Location),
		Message:  contact.Message,
	}

	ownerHTML, err := renderMail("owner_notification.html", data)
	if err != nil {
		return nil, nil, err
	}
	ackHTML, err := renderMail("user_acknowledgement.html", data)
	if err != nil {
		return nil, nil, err
	}

	domain := "localhost"
	if at := strings.LastIndex(s.opts.From, "@"); at != -1 {
		domain = s.opts.From[at+1:]
	}

	owner = &mailer.Message{
		ID:      contact.ID + ".owner@" + domain,
		From:    s.opts.From,
		To:      []string{s.opts.Destination},
		ReplyTo: contact.Email,
		Subject: ownerSubjectPrefix + contact.Subject,
		HTML:    ownerHTML,
		Date:    sentAt,
	}
	ack = &mailer.Message{
		ID:      contact.ID + ".ack@" + domain,
		From:    s.opts.From,
		To:      []string{contact.Email},
		Subject: ackSubject,
		HTML:    ackHTML,
		Date:    sentAt,
	}
	return owner, ack, nil
}
