package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrNotLoaded     = errors.New("tables not loaded")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// TableSource loads the relational snapshot (hotels, users, ratings) at
// process start. Implementations: csvstore, mysql.
type TableSource interface {
	Load(ctx context.Context) (Tables, error)
}

// Cache is the response-cache port; the redis adapter implements it.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models

// HotelView is a hotel joined with its derived average rating. The average is
// recomputed from the ratings table, never stored authoritatively.
type HotelView struct {
	ID          string   `json:"hotel_id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Price       float64  `json:"price"`
	Amenities   []string `json:"amenities"`
	Description string   `json:"description,omitempty"`
	AvgRating   float64  `json:"avg_rating"`
}

// Recommendation is constructed fresh per request, never persisted.
type Recommendation struct {
	HotelID         string   `json:"hotel_id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Location        string   `json:"location"`
	Price           float64  `json:"price"`
	Amenities       []string `json:"amenities"`
	PredictedRating float64  `json:"predicted_rating"`
	Explanation     string   `json:"explanation"`
}

type Stats struct {
	TotalHotels  int            `json:"total_hotels"`
	TotalUsers   int            `json:"total_users"`
	TotalRatings int            `json:"total_ratings"`
	RatingAvg    float64        `json:"rating_avg"`
	RatingMin    float64        `json:"rating_min"`
	RatingMax    float64        `json:"rating_max"`
	Categories   map[string]int `json:"categories"`
	Locations    map[string]int `json:"locations"`
}
