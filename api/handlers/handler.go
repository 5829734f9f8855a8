package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/jusunglee/mvg-go/internal/departures"
	"github.com/jusunglee/mvg-go/pkg/mvg"
)

// Handler handles HTTP requests
type Handler struct {
	client mvg.Client
	query  mvg.DepartureQuery
}

// NewHandler creates a new HTTP handler requesting query for every station
func NewHandler(client mvg.Client, query mvg.DepartureQuery) *Handler {
	return &Handler{client: client, query: query}
}

// Router returns the routes wrapped in the request logging and CORS middleware.
// CORS sits outside the router so preflight requests never reach route matching.
func (h *Handler) Router() http.Handler {
	r := mux.NewRouter().StrictSlash(true)
	h.RegisterRoutes(r)

	return LoggingMiddleware(CORSMiddleware(r))
}

// RegisterRoutes registers all routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.handleIndex).Methods("GET")
	r.HandleFunc("/stations/", h.handleStations).Methods("GET")
	r.HandleFunc("/stations/{id}/departures", h.handleDepartures).Methods("GET")
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"title":  "mvg-go",
		"readme": "Visit https://github.com/jusunglee/mvg-go for more info",
	}
	h.writeJSON(w, response)
}

func (h *Handler) handleStations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.client.GetStations(r.Context())
	if err != nil {
		h.writeProviderError(w, err)
		return
	}

	h.writeJSON(w, stations)
}

func (h *Handler) handleDepartures(w http.ResponseWriter, r *http.Request) {
	stationID := mux.Vars(r)["id"]

	raw, err := h.client.GetDepartures(r.Context(), stationID, h.query)
	if err != nil {
		h.writeProviderError(w, err)
		return
	}

	board := departures.Transform(departures.Normalize(raw))

	log.Debug().
		Str("station", stationID).
		Int("departures", len(raw)).
		Int("lines", len(board)).
		Msg("Built departure board")

	h.writeJSON(w, board)
}

// writeProviderError maps provider failures onto HTTP statuses
func (h *Handler) writeProviderError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	message := "upstream transit provider failed"

	switch {
	case errors.Is(err, mvg.ErrInvalidStationID):
		status, message = http.StatusBadRequest, "invalid station id"
	case errors.Is(err, mvg.ErrStationNotFound):
		status, message = http.StatusNotFound, "station not found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status, message = http.StatusServiceUnavailable, "request cancelled"
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("Provider request failed")
	}

	h.writeError(w, message, status)
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
		h.writeError(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func (h *Handler) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
