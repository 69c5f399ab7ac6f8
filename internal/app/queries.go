package app

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"

	"atlas_recs/internal/domain"
)

// QueryService serves the read-only catalog endpoints. Hotel views and stats
// are derived from the immutable table snapshot, with a redis-backed response
// cache in front (same shape as the listing cache it replaced).
type QueryService struct {
	tables   domain.Tables
	avg      map[string]float64
	cache    domain.Cache
	cacheTTL time.Duration
	loaded   bool
}

func NewQueryService(tables domain.Tables, c domain.Cache, ttl time.Duration) *QueryService {
	avg := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range tables.Ratings {
		avg[r.HotelID] += r.Value
		counts[r.HotelID]++
	}
	for id, c := range counts {
		avg[id] /= float64(c)
	}
	return &QueryService{
		tables:   tables,
		avg:      avg,
		cache:    c,
		cacheTTL: ttl,
		loaded:   !tables.Empty(),
	}
}

func (s *QueryService) Loaded() bool { return s.loaded }

func (s *QueryService) view(h domain.Hotel) domain.HotelView {
	return domain.HotelView{
		ID:          h.ID,
		Name:        h.Name,
		Category:    h.Category,
		Location:    h.Location,
		Price:       h.Price,
		Amenities:   h.Amenities,
		Description: h.Description,
		AvgRating:   round1(s.avg[h.ID]),
	}
}

func (s *QueryService) ListHotels(ctx context.Context) ([]domain.HotelView, error) {
	const key = "hotels:all"
	var out []domain.HotelView
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	if !s.loaded {
		return nil, domain.ErrNotLoaded
	}

	out = lo.Map(s.tables.Hotels, func(h domain.Hotel, _ int) domain.HotelView {
		return s.view(h)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

func (s *QueryService) GetHotel(ctx context.Context, id string) (domain.HotelView, error) {
	h, ok := lo.Find(s.tables.Hotels, func(h domain.Hotel) bool { return h.ID == id })
	if !ok {
		return domain.HotelView{}, domain.ErrNotFound
	}
	return s.view(h), nil
}

func (s *QueryService) Stats(ctx context.Context) (domain.Stats, error) {
	const key = "stats"
	var out domain.Stats
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	if !s.loaded {
		return domain.Stats{}, domain.ErrNotLoaded
	}

	out = domain.Stats{
		TotalHotels:  len(s.tables.Hotels),
		TotalUsers:   len(s.tables.Users),
		TotalRatings: len(s.tables.Ratings),
		Categories:   lo.CountValuesBy(s.tables.Hotels, func(h domain.Hotel) string { return h.Category }),
		Locations:    lo.CountValuesBy(s.tables.Hotels, func(h domain.Hotel) string { return h.Location }),
	}
	if n := len(s.tables.Ratings); n > 0 {
		min, max := s.tables.Ratings[0].Value, s.tables.Ratings[0].Value
		var sum float64
		for _, r := range s.tables.Ratings {
			sum += r.Value
			if r.Value < min {
				min = r.Value
			}
			if r.Value > max {
				max = r.Value
			}
		}
		out.RatingAvg = round2(sum / float64(n))
		out.RatingMin = min
		out.RatingMax = max
	}

	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}
