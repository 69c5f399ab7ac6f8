package seed

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"atlas_recs/internal/domain"
)

// WriteCSV writes the tables as hotels.csv, users.csv and ratings.csv with
// the same French headers the loader accepts, so a seeded directory
// round-trips through csvstore unchanged.
func WriteCSV(dir string, t domain.Tables) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	hotels := [][]string{{"hotel_id", "nom", "categorie", "localisation", "prix", "commodites", "description"}}
	for _, h := range t.Hotels {
		hotels = append(hotels, []string{
			h.ID, h.Name, h.Category, h.Location,
			strconv.FormatFloat(h.Price, 'f', -1, 64),
			strings.Join(h.Amenities, ", "),
			h.Description,
		})
	}
	if err := writeFile(filepath.Join(dir, "hotels.csv"), hotels); err != nil {
		return fmt.Errorf("write hotels.csv: %w", err)
	}

	users := [][]string{{"user_id", "age", "type_voyage", "budget", "nationalite"}}
	for _, u := range t.Users {
		users = append(users, []string{
			u.ID, strconv.Itoa(u.Age), u.TravelType, u.Budget, u.Nationality,
		})
	}
	if err := writeFile(filepath.Join(dir, "users.csv"), users); err != nil {
		return fmt.Errorf("write users.csv: %w", err)
	}

	ratings := [][]string{{"user_id", "hotel_id", "rating", "date_sejour"}}
	for _, r := range t.Ratings {
		stay := ""
		if r.StayDate != nil {
			stay = r.StayDate.Format("2006-01-02")
		}
		ratings = append(ratings, []string{
			r.UserID, r.HotelID,
			strconv.FormatFloat(r.Value, 'f', -1, 64),
			stay,
		})
	}
	if err := writeFile(filepath.Join(dir, "ratings.csv"), ratings); err != nil {
		return fmt.Errorf("write ratings.csv: %w", err)
	}
	return nil
}

func writeFile(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
