package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"

	"github.com/smart450/site/models"
	"github.com/smart450/site/reqctx"
	"github.com/smart450/site/services"
)

// Contact form responses
const (
	msgSendSuccess = "Messaggio inviato con successo! Ti risponderò al più presto."
	msgSendFailure = "Errore nell'invio del messaggio. Riprova più tardi."
)

type contactSuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type contactErrorResponse struct {
	Error string `json:"error"`
}

// ContactController handles contact form submissions
type ContactController struct {
	services *services.Services
}

// NewContactController creates a new contact controller
func NewContactController(services *services.Services) *ContactController {
	return &ContactController{
		services: services,
	}
}

// Send handles POST /send-email
func (c *ContactController) Send(w http.ResponseWriter, r *http.Request) {
	submission, err := decodeSubmission(r)
	if err != nil {
		log.Printf("⚠️  Unreadable contact submission: %v", err)
		sendJSONResponse(w, http.StatusBadRequest, contactErrorResponse{Error: models.MsgRequiredFields})
		return
	}

	ip := reqctx.GetClientIP(r.Context())
	if _, err := c.services.Contact.Submit(r.Context(), submission, ip); err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			sendJSONResponse(w, http.StatusBadRequest, contactErrorResponse{Error: verr.Message})
			return
		}

		log.Printf("❌ Contact submission from %s failed: %v", ip, err)
		sendJSONResponse(w, http.StatusInternalServerError, contactErrorResponse{Error: msgSendFailure})
		return
	}

	sendJSONResponse(w, http.StatusOK, contactSuccessResponse{Success: true, Message: msgSendSuccess})
}

var errUnsupportedMediaType = errors.New("unsupported content type")

// decodeSubmission reads a URL-encoded form or a single JSON object
func decodeSubmission(r *http.Request) (models.ContactSubmission, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return models.ContactSubmission{}, err
		}
		return models.ContactSubmissionFromForm(r.PostForm), nil
	case "application/json":
		var submission models.ContactSubmission
		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(&submission); err != nil {
			return models.ContactSubmission{}, err
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			return models.ContactSubmission{}, errors.New("unexpected data after JSON object")
		}
		return submission, nil
	default:
		return models.ContactSubmission{}, fmt.Errorf("%w %q", errUnsupportedMediaType, mediaType)
	}
}
