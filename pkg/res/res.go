package res

import (
	"encoding/json"
	"net/http"
)

// JsonResponse sends data as JSON with the given status.
func JsonResponse(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// TextResponse sends msg as a plain text body.
func TextResponse(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

// EmptyResponse sends status without a body.
func EmptyResponse(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}
