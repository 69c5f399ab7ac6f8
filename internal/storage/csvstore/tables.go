// Package csvstore loads the hotels/users/ratings tables from CSV files.
package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"atlas_recs/internal/domain"
)

// Column aliases: the datasets circulate with both French and English
// headers, so each logical column accepts either.
var columnAliases = map[string][]string{
	"hotel_id":    {"hotel_id", "id"},
	"name":        {"nom", "name"},
	"category":    {"categorie", "category"},
	"location":    {"localisation", "location"},
	"price":       {"prix", "price"},
	"amenities":   {"commodites", "amenities"},
	"description": {"description"},
	"user_id":     {"user_id"},
	"age":         {"age"},
	"travel_type": {"type_voyage", "travel_type"},
	"budget":      {"budget"},
	"nationality": {"nationalite", "nationality"},
	"rating":      {"rating", "note"},
	"stay_date":   {"date_sejour", "stay_date"},
}

type Store struct{ dir string }

func New(dir string) *Store { return &Store{dir: dir} }

// Load reads hotels.csv, users.csv and ratings.csv. A missing or malformed
// file is fatal at startup: without the tables the service cannot serve
// anything, not even popularity.
func (s *Store) Load(ctx context.Context) (domain.Tables, error) {
	var t domain.Tables
	var err error
	if t.Hotels, err = s.loadHotels(); err != nil {
		return domain.Tables{}, fmt.Errorf("load hotels: %w", err)
	}
	if t.Users, err = s.loadUsers(); err != nil {
		return domain.Tables{}, fmt.Errorf("load users: %w", err)
	}
	if t.Ratings, err = s.loadRatings(); err != nil {
		return domain.Tables{}, fmt.Errorf("load ratings: %w", err)
	}
	log.Info().
		Int("hotels", len(t.Hotels)).
		Int("users", len(t.Users)).
		Int("ratings", len(t.Ratings)).
		Str("dir", s.dir).
		Msg("tables loaded from CSV")
	return t, nil
}

// row is one CSV record indexed by logical column name.
type row map[string]string

func (r row) str(col string) string { return strings.TrimSpace(r[col]) }

// float parses tolerantly: comma decimals and surrounding spaces are fine.
func (r row) float(col string) (float64, error) {
	s := strings.ReplaceAll(r.str(col), ",", ".")
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func (r row) int(col string) (int, error) {
	s := r.str(col)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func (s *Store) readRows(file string) ([]row, error) {
	f, err := os.Open(filepath.Join(s.dir, file))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.TrimLeadingSpace = true
	records, err := rd.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file", file)
	}

	// Map physical headers to logical column names.
	logical := make(map[int]string, len(records[0]))
	for i, hdr := range records[0] {
		h := strings.ToLower(strings.TrimSpace(hdr))
		for col, aliases := range columnAliases {
			for _, a := range aliases {
				if a == h {
					logical[i] = col
				}
			}
		}
	}

	rows := make([]row, 0, len(records)-1)
	for _, rec := range records[1:] {
		r := make(row, len(logical))
		for i, col := range logical {
			if i < len(rec) {
				r[col] = rec[i]
			}
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func (s *Store) loadHotels() ([]domain.Hotel, error) {
	rows, err := s.readRows("hotels.csv")
	if err != nil {
		return nil, err
	}
	hotels := make([]domain.Hotel, 0, len(rows))
	for i, r := range rows {
		id := r.str("hotel_id")
		if id == "" {
			return nil, fmt.Errorf("hotels.csv row %d: missing hotel_id", i+2)
		}
		price, err := r.float("price")
		if err != nil {
			return nil, fmt.Errorf("hotels.csv row %d: bad price: %w", i+2, err)
		}
		hotels = append(hotels, domain.Hotel{
			ID:          id,
			Name:        r.str("name"),
			Category:    r.str("category"),
			Location:    r.str("location"),
			Price:       price,
			Amenities:   splitAmenities(r.str("amenities")),
			Description: r.str("description"),
		})
	}
	return hotels, nil
}

func (s *Store) loadUsers() ([]domain.User, error) {
	rows, err := s.readRows("users.csv")
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(rows))
	for i, r := range rows {
		id := r.str("user_id")
		if id == "" {
			return nil, fmt.Errorf("users.csv row %d: missing user_id", i+2)
		}
		age, err := r.int("age")
		if err != nil {
			return nil, fmt.Errorf("users.csv row %d: bad age: %w", i+2, err)
		}
		users = append(users, domain.User{
			ID:          id,
			Age:         age,
			TravelType:  r.str("travel_type"),
			Budget:      r.str("budget"),
			Nationality: r.str("nationality"),
		})
	}
	return users, nil
}

func (s *Store) loadRatings() ([]domain.Rating, error) {
	rows, err := s.readRows("ratings.csv")
	if err != nil {
		return nil, err
	}
	ratings := make([]domain.Rating, 0, len(rows))
	for i, r := range rows {
		uid, hid := r.str("user_id"), r.str("hotel_id")
		if uid == "" || hid == "" {
			return nil, fmt.Errorf("ratings.csv row %d: missing user_id or hotel_id", i+2)
		}
		val, err := r.float("rating")
		if err != nil {
			return nil, fmt.Errorf("ratings.csv row %d: bad rating: %w", i+2, err)
		}
		rating := domain.Rating{UserID: uid, HotelID: hid, Value: val}
		if d := r.str("stay_date"); d != "" {
			if ts, err := time.Parse("2006-01-02", d); err == nil {
				rating.StayDate = &ts
			}
		}
		ratings = append(ratings, rating)
	}
	return ratings, nil
}

func splitAmenities(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
