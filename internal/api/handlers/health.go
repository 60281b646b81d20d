package handlers

import (
	"net/http"
)

// Health is the liveness probe. The engine is built before the listener
// starts, so a response here means simulations can be served.
func Health(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "delivery-dispatch",
	})
}
