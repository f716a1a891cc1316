package middleware

import (
	"errors"
	"log"
	"net/http"
	"runtime/debug"
)

// MsgInternalError is the body returned when a handler panics
const MsgInternalError = "Errore interno del server"

// Recoverer middleware turns a panic into a 500 with a short Italian message
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			// Let net/http abort the connection
			if err, ok := rvr.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rvr)
			}

			log.Printf("💥 Panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rvr, debug.Stack())
			http.Error(w, MsgInternalError, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
