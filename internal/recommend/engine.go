package recommend

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"atlas_recs/internal/domain"
)

// Config carries the engine's policy values. Observed variants treat these as
// tunable, so they come from configuration rather than constants.
type Config struct {
	K                int     // neighbors considered, default 5
	Metric           Metric  // similarity metric, default cosine
	LikedThreshold   float64 // "liked" cutoff for jaccard, default 3.5
	ColdStartMin     int     // below this many query ratings the engine skips personalization, default 2
	PriceTolerance   float64 // absolute price distance for the price explanation, default 100
	DefaultN, MaxN   int     // requested-count bounds, defaults 5 and 50
}

func (c Config) withDefaults() Config {
	if c.K <= 0 {
		c.K = 5
	}
	if c.Metric == "" {
		c.Metric = MetricCosine
	}
	if c.LikedThreshold <= 0 {
		c.LikedThreshold = 3.5
	}
	if c.ColdStartMin <= 0 {
		c.ColdStartMin = 2
	}
	if c.PriceTolerance <= 0 {
		c.PriceTolerance = 100
	}
	if c.DefaultN <= 0 {
		c.DefaultN = 5
	}
	if c.MaxN <= 0 {
		c.MaxN = 50
	}
	return c
}

// Source tells which path produced a Result, so callers and tests can assert
// the path instead of inferring it from content.
type Source string

const (
	SourcePersonalized Source = "personalized"
	SourceFallback     Source = "fallback"
)

// Fallback reasons.
const (
	ReasonColdStart     = "cold_start"
	ReasonNoNeighbors   = "no_neighbors"
	ReasonInternalError = "internal_error"
)

type Result struct {
	Items  []domain.Recommendation
	Source Source
	Reason string // empty on the personalized path
}

// Engine holds the immutable table snapshot and everything derived from it.
// The matrix and popularity ranking are built once at construction; nothing
// mutates after load, so concurrent requests read without coordination.
type Engine struct {
	cfg     Config
	catalog map[string]domain.Hotel
	matrix  *Matrix
	popular []PopularHotel
	sim     Similarity
	explain Explainer
}

func NewEngine(tables domain.Tables, cfg Config) *Engine {
	cfg = cfg.withDefaults()
	catalog := lo.Associate(tables.Hotels, func(h domain.Hotel) (string, domain.Hotel) {
		return h.ID, h
	})
	e := &Engine{
		cfg:     cfg,
		catalog: catalog,
		matrix:  BuildMatrix(tables.Ratings),
		popular: RankPopularity(tables.Ratings),
		sim:     Similarity{Metric: cfg.Metric, LikedThreshold: cfg.LikedThreshold},
		explain: Explainer{Catalog: catalog, PriceTolerance: cfg.PriceTolerance},
	}
	log.Info().
		Int("users", e.matrix.Rows()).
		Int("hotels", e.matrix.Cols()).
		Str("metric", string(cfg.Metric)).
		Int("k", cfg.K).
		Msg("recommendation engine ready")
	return e
}

// Recommend produces at most n recommendations for the given query rating
// set. The only error it returns is input validation; every internal failure
// degrades to the popularity fallback so the caller always gets a best-effort
// list.
func (e *Engine) Recommend(ratings map[string]float64, n int) (Result, error) {
	for id, v := range ratings {
		if v < 1 || v > 5 {
			return Result{}, fmt.Errorf("hotel %s: %w", id, domain.ErrInvalidRating)
		}
	}
	if n <= 0 {
		n = e.cfg.DefaultN
	}
	if n > e.cfg.MaxN {
		n = e.cfg.MaxN
	}

	exclude := make(map[string]struct{}, len(ratings))
	for id := range ratings {
		exclude[id] = struct{}{}
	}

	if len(ratings) < e.cfg.ColdStartMin {
		return e.fallback(n, exclude, ReasonColdStart), nil
	}

	items, reason := e.personalized(ratings, n)
	if reason != "" {
		return e.fallback(n, exclude, reason), nil
	}
	if len(items) < n {
		for _, it := range items {
			exclude[it.HotelID] = struct{}{}
		}
		items = append(items, e.popularItems(n-len(items), exclude)...)
	}
	return Result{Items: items, Source: SourcePersonalized}, nil
}

// personalized runs the similarity -> neighbors -> prediction pipeline. Any
// panic in here is an internal scoring failure: it is logged and reported as
// a fallback reason, never surfaced to the caller.
func (e *Engine) personalized(ratings map[string]float64, n int) (items []domain.Recommendation, reason string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("personalized scoring failed, degrading to popularity")
			items, reason = nil, ReasonInternalError
		}
	}()

	query := e.matrix.Vector(ratings)
	scores := e.sim.AllRows(query, e.matrix)
	neighbors := TopNeighbors(e.matrix, scores, e.cfg.K)
	if len(neighbors) == 0 {
		return nil, ReasonNoNeighbors
	}

	preds := Predict(e.matrix, neighbors, ratings)
	if len(preds) > n {
		preds = preds[:n]
	}
	items = make([]domain.Recommendation, 0, len(preds))
	for _, p := range preds {
		h, ok := e.catalog[p.HotelID]
		if !ok {
			continue // rated but unlisted hotel
		}
		items = append(items, domain.Recommendation{
			HotelID:         h.ID,
			Name:            h.Name,
			Category:        h.Category,
			Location:        h.Location,
			Price:           h.Price,
			Amenities:       h.Amenities,
			PredictedRating: round2(p.Score),
			Explanation:     e.explain.Personalized(ratings, h),
		})
	}
	return items, ""
}

func (e *Engine) fallback(n int, exclude map[string]struct{}, reason string) Result {
	return Result{
		Items:  e.popularItems(n, exclude),
		Source: SourceFallback,
		Reason: reason,
	}
}

func (e *Engine) popularItems(n int, exclude map[string]struct{}) []domain.Recommendation {
	top := TopPopular(e.popular, n, exclude)
	items := make([]domain.Recommendation, 0, len(top))
	for _, p := range top {
		h, ok := e.catalog[p.HotelID]
		if !ok {
			continue
		}
		items = append(items, domain.Recommendation{
			HotelID:         h.ID,
			Name:            h.Name,
			Category:        h.Category,
			Location:        h.Location,
			Price:           h.Price,
			Amenities:       h.Amenities,
			PredictedRating: round2(p.AvgRating),
			Explanation:     Popular(p.AvgRating),
		})
	}
	return items
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
