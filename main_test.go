package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/smart450/site/config"
	"github.com/smart450/site/controllers"
	"github.com/smart450/site/mailer/mocks"
	"github.com/smart450/site/models"
	"github.com/smart450/site/repositories"
	"github.com/smart450/site/services"
)

func newTestRouter(t *testing.T, env string) (http.Handler, *mocks.MockSender, string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Smart</h1>"), 0o644))

	cfg := config.Config{Environment: env, DocRoot: dir, MaxBodyBytes: 10 << 20}
	sender := mocks.NewMockSender(t)
	repos := repositories.NewRepositories(dir)
	srvs := services.NewServices(repos, sender, nil, services.ContactOptions{From: "site@example.com", Destination: "owner@example.com"})
	ctrl := controllers.NewControllers(srvs, dir)

	return setupRouter(ctrl, srvs, cfg), sender, dir
}

func readContacts(t *testing.T, dir string) []models.StoredContact {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, repositories.ContactsFile))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	var contacts []models.StoredContact
	require.NoError(t, json.Unmarshal(data, &contacts))
	return contacts
}

func TestRouterLandingPage(t *testing.T) {
	r, _, dir := newTestRouter(t, "development")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<h1>Smart</h1>", rec.Body.String())
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))

	logData, err := os.ReadFile(filepath.Join(dir, repositories.AccessLogFile))
	require.NoError(t, err)
	assert.Contains(t, string(logData), " - 203.0.113.5 - HTTP GET /\n")

	statsData, err := os.ReadFile(filepath.Join(dir, repositories.AccessStatsFile))
	require.NoError(t, err)
	var stats map[string]models.IPAggregate
	require.NoError(t, json.Unmarshal(statsData, &stats))
	assert.Equal(t, 1, stats["203.0.113.5"].Count)
}

func TestRouterLandingPageMissingIndex(t *testing.T) {
	r, _, dir := newTestRouter(t, "development")
	require.NoError(t, os.Remove(filepath.Join(dir, "index.html")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	// Other static paths only get the headers on success
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing.css", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Frame-Options"))
}

func TestRouterHealth(t *testing.T) {
	r, _, _ := newTestRouter(t, "development")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "HTTP", body["protocol"])
}

func TestRouterSendEmail(t *testing.T) {
	r, sender, dir := newTestRouter(t, "development")
	sender.EXPECT().Send(mock.Anything, mock.Anything).Return(nil).Twice()

	req := httptest.NewRequest(http.MethodPost, "/send-email",
		strings.NewReader(`{"name":"Ada","email":"ada@x.it","message":"hi","privacy":true,"subject":"prova-auto"}`))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "198.51.100.4:40000"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	contacts := readContacts(t, dir)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Richiesta Prova Auto", contacts[0].Subject)
	assert.Equal(t, "198.51.100.4", contacts[0].IP)
}

func TestRouterHidesDataFiles(t *testing.T) {
	r, _, _ := newTestRouter(t, "development")

	// The first request creates accessi.log and accessi.json
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	for _, path := range []string{"/accessi.log", "/accessi.json", "/contacts.json", "/.env"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestRouterUnknownMethodOnStaticPath(t *testing.T) {
	r, _, _ := newTestRouter(t, "development")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/send-email", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterProductionRedirect(t *testing.T) {
	r, _, dir := newTestRouter(t, "production")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://smart.example.com/", nil))
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "https://smart.example.com/", rec.Header().Get("Location"))

	// Redirected requests are still recorded
	_, err := os.Stat(filepath.Join(dir, repositories.AccessLogFile))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "http://smart.example.com/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
