package controllers

import (
	"errors"
	"io"
	"net/http"
	"weddingsite/internal/providers"
	"weddingsite/internal/services"

	json "github.com/goccy/go-json"
)

const (
	maxRequestBodySize = 1 << 20 // 1 MB
	maxMultipartMemory = 32 << 20

	statusSuccess = "success"
	statusError   = "error"
)

type messageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ApiController holds what every resource controller needs: the logger and
// the JSON plumbing shared by the handlers.
type ApiController struct {
	logger providers.Logger
}

func NewApiController(logger providers.Logger) *ApiController {
	return &ApiController{logger: logger}
}

func (ac *ApiController) writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		ac.logger.Errorf(providers.TypeApp, "Unable to encode response: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func (ac *ApiController) writeMessage(w http.ResponseWriter, status int, state, message string) {
	ac.writeJSON(w, status, messageResponse{Status: state, Message: message})
}

// readBody returns the raw request body, capped at maxRequestBodySize.
func (ac *ApiController) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 || !json.Valid(body) {
		ac.writeMessage(w, http.StatusBadRequest, statusError, "Bad Request")
		return nil, false
	}
	return body, true
}

func (ac *ApiController) decode(w http.ResponseWriter, r *http.Request, payload any) bool {
	body, ok := ac.readBody(w, r)
	if !ok {
		return false
	}
	if err := json.Unmarshal(body, payload); err != nil {
		ac.writeMessage(w, http.StatusBadRequest, statusError, "Bad Request")
		return false
	}
	return true
}

// parseMultipart parses an upload form. Oversized or malformed forms are a
// client error.
func (ac *ApiController) parseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		ac.writeMessage(w, http.StatusBadRequest, statusError, "Invalid upload form")
		return false
	}
	return true
}

// writeError maps the service error taxonomy onto HTTP. Storage failures are
// logged and answered with fallback, never with the underlying error.
func (ac *ApiController) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		ac.writeMessage(w, http.StatusBadRequest, statusError, ve.Message)
	case errors.Is(err, services.ErrNotFound):
		ac.writeMessage(w, http.StatusNotFound, statusError, "Not found")
	default:
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
		ac.writeMessage(w, http.StatusInternalServerError, statusError, fallback)
	}
}
