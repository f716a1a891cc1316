package models

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectLabel(t *testing.T) {
	for key, label := range SubjectLabels {
		assert.Equal(t, label, SubjectLabel(key))
	}

	// Anything outside the fixed set falls back
	for _, key := range []string{"", "PROVA-AUTO", "unknown", " altro", "info_generali"} {
		assert.Equal(t, DefaultSubjectLabel, SubjectLabel(key), "key %q", key)
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"ada@x.it", "a.b+c@sub.domain.com", "x@y.z"}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{"", "not-an-email", "a@b", "a b@c.it", "@x.it", "a@.it", "a@@x.it", "a@x.", "a@x.it\n"}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestConsentUnmarshal(t *testing.T) {
	tests := map[string]bool{
		`true`:    true,
		`false`:   false,
		`null`:    false,
		`"on"`:    true,
		`""`:      false,
		`"false"`: true,
		`1`:       true,
		`0`:       false,
		`0.0`:     false,
		`{}`:      true,
		`[]`:      true,
	}

	for raw, want := range tests {
		var c Consent
		require.NoError(t, json.Unmarshal([]byte(raw), &c), raw)
		assert.Equal(t, want, bool(c), raw)
	}

	var c Consent
	assert.Error(t, json.Unmarshal([]byte(`"unterminated`), &c))
}

func TestContactSubmissionValidate(t *testing.T) {
	valid := ContactSubmission{
		Name:    "Ada",
		Email:   "ada@x.it",
		Message: "hi",
		Privacy: true,
		Subject: "prova-auto",
	}
	assert.NoError(t, valid.Validate())
	assert.Equal(t, "Richiesta Prova Auto", valid.SubjectLabel())

	missing := []func(s *ContactSubmission){
		func(s *ContactSubmission) { s.Name = "" },
		func(s *ContactSubmission) { s.Email = "" },
		func(s *ContactSubmission) { s.Message = "" },
		func(s *ContactSubmission) { s.Privacy = false },
	}
	for _, mutate := range missing {
		s := valid
		mutate(&s)
		err := s.Validate()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, MsgRequiredFields, verr.Message)
	}

	bad := valid
	bad.Email = "not-an-email"
	err := bad.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, MsgInvalidEmail, verr.Message)
	assert.Equal(t, "email", verr.Field)

	// Required fields are checked before the email format
	both := bad
	both.Privacy = false
	assert.EqualError(t, both.Validate(), MsgRequiredFields)
}

func TestContactSubmissionFromForm(t *testing.T) {
	form := url.Values{
		"name":    {"Ada"},
		"email":   {"ada@x.it"},
		"message": {"hi"},
		"privacy": {"on"},
	}
	s := ContactSubmissionFromForm(form)
	assert.Equal(t, "Ada", s.Name)
	assert.True(t, bool(s.Privacy))
	assert.NoError(t, s.Validate())

	form.Del("privacy")
	s = ContactSubmissionFromForm(form)
	assert.False(t, bool(s.Privacy))
}

func TestIPAggregateRecord(t *testing.T) {
	var agg IPAggregate
	assert.Nil(t, agg.LastAccess)

	for i := 0; i < 3; i++ {
		agg.Record(AccessRecord{Timestamp: FormatISO(time.Unix(int64(i), 0)), Protocol: ProtocolHTTP, Method: "GET", URL: "/"})
	}

	assert.Equal(t, 3, agg.Count)
	assert.Len(t, agg.Logs, agg.Count)
	require.NotNil(t, agg.LastAccess)
	assert.Equal(t, "1970-01-01T00:00:02.000Z", *agg.LastAccess)
}

func TestAccessRecordLogLine(t *testing.T) {
	rec := AccessRecord{Timestamp: "2026-10-19T10:00:00.000Z", Protocol: ProtocolHTTPS, Method: "GET", URL: "/img/a.jpg?x=1"}
	assert.Equal(t, "2026-10-19T10:00:00.000Z - 1.2.3.4 - HTTPS GET /img/a.jpg?x=1\n", rec.LogLine("1.2.3.4"))
}

func TestTimeFormatting(t *testing.T) {
	ts := time.Date(2026, 3, 5, 9, 7, 3, 123456789, time.UTC)
	assert.Equal(t, "2026-03-05T09:07:03.123Z", FormatISO(ts))

	assert.Equal(t, "2026-03-05T09:07:03.000Z", FormatISO(ts.In(time.FixedZone("CET", 3600)).Truncate(time.Second)))

	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)
	assert.Equal(t, "5/3/2026, 10:07:03", FormatLocal(ts, rome))
	assert.Equal(t, "5/3/2026, 09:07:03", FormatLocal(ts, time.UTC))
}
