package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"atlas_recs/internal/adapters/observability"
	"atlas_recs/internal/app"
	"atlas_recs/internal/domain"
	"atlas_recs/internal/recommend"
)

type Handlers struct {
	Q      *app.QueryService
	Engine *recommend.Engine
	Metric string
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type recommendRequest struct {
	UserRatings      map[string]float64 `json:"user_ratings"`
	NRecommendations int                `json:"n_recommendations"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/api/health", h.health)
	s.mux.Get("/api/hotels", h.listHotels)
	s.mux.Get("/api/hotels/{id}", h.getHotel)
	s.mux.Get("/api/stats", h.stats)
	s.mux.Post("/api/recommend", h.recommendList)
	s.mux.Post("/api/recommend/simple", h.recommendSimple)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if !h.Q.Loaded() {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]any{
		"status":      status,
		"data_loaded": h.Q.Loaded(),
	})
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.Q.ListHotels(r.Context())
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Service Unavailable", "hotel tables not loaded")
		return
	}

	etag, body := calcETagAndBody(hotels)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write hotels body")
	}
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hv, err := h.Q.GetHotel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}
	writeJSON(w, http.StatusOK, hv)
}

func (h *Handlers) stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Q.Stats(r.Context())
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Service Unavailable", "hotel tables not loaded")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// recommend runs the engine and translates its outcome; shared by both
// recommendation routes.
func (h *Handlers) recommend(w http.ResponseWriter, ratings map[string]float64, n int) (recommend.Result, bool) {
	if len(ratings) == 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "at least one hotel rating is required")
		return recommend.Result{}, false
	}

	start := time.Now()
	res, err := h.Engine.Recommend(ratings, n)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRating) {
			writeProblem(w, http.StatusBadRequest, "Invalid Rating", err.Error())
			return recommend.Result{}, false
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "recommendation failed")
		return recommend.Result{}, false
	}
	observability.ObserveRecommendation(string(res.Source), res.Reason, time.Since(start))
	return res, true
}

func (h *Handlers) recommendList(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	res, ok := h.recommend(w, req.UserRatings, req.NRecommendations)
	if !ok {
		return
	}
	if res.Items == nil {
		res.Items = []domain.Recommendation{}
	}
	writeJSON(w, http.StatusOK, res.Items)
}

func (h *Handlers) recommendSimple(w http.ResponseWriter, r *http.Request) {
	var ratings map[string]float64
	if err := json.NewDecoder(r.Body).Decode(&ratings); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	res, ok := h.recommend(w, ratings, 0)
	if !ok {
		return
	}
	if res.Items == nil {
		res.Items = []domain.Recommendation{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"recommendations":       res.Items,
		"total_recommendations": len(res.Items),
		"user_ratings_count":    len(ratings),
		"source":                res.Source,
		"reason":                res.Reason,
		"algorithm":             "kNN collaborative filtering",
		"similarity_metric":     h.Metric,
	})
}
