package stub

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type authBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body authBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" || body.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[body.Email]; exists {
		respondError(w, http.StatusConflict, "account already exists")
		return
	}
	s.users[body.Email] = body.Password

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body authBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	s.mu.Lock()
	password, exists := s.users[body.Email]
	s.mu.Unlock()
	if !exists || password != body.Password {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := s.issueToken(body.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

type advisorBody struct {
	Destination string `json:"destination"`
	DepartTime  string `json:"departTime"`
	ReturnTime  string `json:"returnTime"`
	Preference  string `json:"preference"`
	Theme       string `json:"theme"`
	LocalTravel string `json:"localTravel"`
}

func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var body advisorBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Destination == "" {
		respondError(w, http.StatusBadRequest, "destination is required")
		return
	}

	trip := &storedTrip{
		id:          uuid.NewString(),
		destination: body.Destination,
		departDate:  body.DepartTime,
		returnDate:  body.ReturnTime,
		createdAt:   time.Now().UTC(),
	}
	trip.payload = cannedItinerary(body.Destination, body.DepartTime, body.ReturnTime)

	s.mu.Lock()
	s.trips[trip.id] = trip
	s.order = append(s.order, trip.id)
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, map[string]string{
		"tripId":   trip.id,
		"shareUrl": s.frontendURL + "/trip/" + trip.id,
	})
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	trip, ok := s.trips[id]
	s.mu.Unlock()
	if !ok {
		respondError(w, http.StatusNotFound, "trip not found")
		return
	}

	respondJSON(w, http.StatusOK, trip.payload)
}

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	take := 20
	if v := r.URL.Query().Get("take"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			take = n
		}
	}
	if take < 1 {
		take = 1
	}
	if take > 100 {
		take = 100
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	summaries := make([]map[string]string, 0, take)
	// Newest first.
	for i := len(s.order) - 1; i >= 0 && len(summaries) < take; i-- {
		trip := s.trips[s.order[i]]
		summaries = append(summaries, map[string]string{
			"id":          trip.id,
			"destination": trip.destination,
			"departDate":  trip.departDate,
			"returnDate":  trip.returnDate,
			"createdAt":   trip.createdAt.Format(time.RFC3339),
		})
	}
	respondJSON(w, http.StatusOK, summaries)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
