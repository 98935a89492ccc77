package pkg

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var ContentType = struct {
	JSON string
	Text string
}{
	JSON: "application/json",
	Text: "text/plain; charset=utf-8",
}

// Envelope is the body shape of every fitness API reply.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func WriteResponseBytes(w http.ResponseWriter, contentType string, body []byte, statusCode int) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(statusCode)

	if _, err := w.Write(body); err != nil {
		log.Errorf("write response (%d bytes): %s", len(body), err)
	}
}

// WriteJSON marshals v and writes it with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal json response: %s", err)
		WriteResponseBytes(w, ContentType.Text, []byte("internal error"), http.StatusInternalServerError)
		return
	}
	WriteResponseBytes(w, ContentType.JSON, body, statusCode)
}

// WriteEnvelope writes a successful envelope. A nil data is sent as
// "data":null, which clients read as "nothing found".
func WriteEnvelope(w http.ResponseWriter, statusCode int, data any) {
	if data == nil {
		WriteResponseBytes(w, ContentType.JSON, []byte(`{"success":true,"data":null}`), statusCode)
		return
	}
	WriteJSON(w, statusCode, Envelope{Success: true, Data: data})
}

func WriteEnvelopeError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, Envelope{Message: message})
}
