package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/smart450/site/services"
)

// sendJSONResponse writes v as a JSON body with the given status code
func sendJSONResponse(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// Controllers holds all controller instances
type Controllers struct {
	Contact *ContactController
	Health  *HealthController
	Static  *StaticController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services, docRoot string) *Controllers {
	return &Controllers{
		Contact: NewContactController(services),
		Health:  NewHealthController(),
		Static:  NewStaticController(docRoot),
	}
}
