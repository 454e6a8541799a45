package handler

import (
	"net/http"

	"github.com/quantive/kb-catalog/internal/api/response"
)

// Health reports liveness
func Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "ok"})
}
