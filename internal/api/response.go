package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
)

type response struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

func success(data any) response {
	return response{Status: "ok", Data: data}
}

func failure(msg string) response {
	return response{Status: "error", Error: msg}
}

// writeJSON marshals before writing headers so an encoding failure can
// still produce a well-formed error response.
func writeJSON(w http.ResponseWriter, statusCode int, resp response) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		statusCode = http.StatusInternalServerError
		data = []byte(`{"status":"error","error":"internal server error"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(data); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
