package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-message/mail"
)

// Message is an HTML email ready to be submitted
type Message struct {
	ID      string
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Date    time.Time
}

// Bytes renders the message as an RFC 5322 document with a quoted-printable
// UTF-8 HTML body
func (m *Message) Bytes() ([]byte, error) {
	if m.From == "" {
		return nil, errors.New("message has no sender")
	}
	if len(m.To) == 0 {
		return nil, errors.New("message has no recipients")
	}

	date := m.Date
	if date.IsZero() {
		date = time.Now()
	}

	var h mail.Header
	h.Set("MIME-Version", "1.0")
	h.SetDate(date)
	h.SetAddressList("From", []*mail.Address{{Address: m.From}})
	h.SetAddressList("To", toAddresses(m.To))
	if m.ReplyTo != "" {
		h.SetAddressList("Reply-To", []*mail.Address{{Address: m.ReplyTo}})
	}
	h.SetSubject(m.Subject)
	if m.ID != "" {
		h.SetMessageID(m.ID)
	}
	h.SetContentType("text/html", map[string]string{"charset": "utf-8"})
	h.Set("Content-Transfer-Encoding", "quoted-printable")

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("failed to create message writer: %w", err)
	}
	if _, err := io.WriteString(w, m.HTML); err != nil {
		return nil, fmt.Errorf("failed to write message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish message: %w", err)
	}

	return buf.Bytes(), nil
}

func toAddresses(list []string) []*mail.Address {
	addrs := make([]*mail.Address, 0, len(list))
	for _, a := range list {
		addrs = append(addrs, &mail.Address{Address: a})
	}
	return addrs
}
