package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"atlas_recs/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// EnsureSchema creates the three tables when they do not exist yet. The
// seeder and the integration tests call this; production deployments are
// expected to run it once at startup too, it is idempotent.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	for _, ddl := range []string{createHotelsSQL, createUsersSQL, createRatingsSQL} {
		if _, err := r.db.ExecContext(ctx, ddl); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) UpsertHotels(ctx context.Context, hs []domain.Hotel) error {
	if len(hs) == 0 {
		return nil
	}
	values := make([]string, 0, len(hs))
	args := make([]any, 0, len(hs)*7)
	for _, h := range hs {
		values = append(values, "(?,?,?,?,?,?,?)")
		args = append(args,
			h.ID,
			h.Name,
			h.Category,
			h.Location,
			h.Price,
			strings.Join(h.Amenities, ","),
			h.Description,
		)
	}
	sqlStr := insertHotelsPrefix + strings.Join(values, ",") + insertHotelsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *Repo) UpsertUsers(ctx context.Context, us []domain.User) error {
	if len(us) == 0 {
		return nil
	}
	values := make([]string, 0, len(us))
	args := make([]any, 0, len(us)*5)
	for _, u := range us {
		values = append(values, "(?,?,?,?,?)")
		args = append(args, u.ID, u.Age, u.TravelType, u.Budget, u.Nationality)
	}
	sqlStr := insertUsersPrefix + strings.Join(values, ",") + insertUsersOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *Repo) UpsertRatings(ctx context.Context, rs []domain.Rating) error {
	if len(rs) == 0 {
		return nil
	}
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*4)
	for _, rt := range rs {
		values = append(values, "(?,?,?,?)")
		var stay any
		if rt.StayDate != nil {
			stay = rt.StayDate.Format("2006-01-02")
		}
		args = append(args, rt.UserID, rt.HotelID, rt.Value, stay)
	}
	sqlStr := insertRatingsPrefix + strings.Join(values, ",") + insertRatingsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// Load reads all three tables. Implements domain.TableSource so the API
// process can start from MySQL instead of the CSV files.
func (r *Repo) Load(ctx context.Context) (domain.Tables, error) {
	var t domain.Tables
	var err error
	if t.Hotels, err = r.loadHotels(ctx); err != nil {
		return domain.Tables{}, err
	}
	if t.Users, err = r.loadUsers(ctx); err != nil {
		return domain.Tables{}, err
	}
	if t.Ratings, err = r.loadRatings(ctx); err != nil {
		return domain.Tables{}, err
	}
	log.Info().
		Int("hotels", len(t.Hotels)).
		Int("users", len(t.Users)).
		Int("ratings", len(t.Ratings)).
		Msg("tables loaded from mysql")
	return t, nil
}

func (r *Repo) loadHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, selectHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		var h domain.Hotel
		var amenities, description sql.NullString
		if err := rows.Scan(&h.ID, &h.Name, &h.Category, &h.Location, &h.Price, &amenities, &description); err != nil {
			return nil, err
		}
		if amenities.Valid && amenities.String != "" {
			for _, a := range strings.Split(amenities.String, ",") {
				if t := strings.TrimSpace(a); t != "" {
					h.Amenities = append(h.Amenities, t)
				}
			}
		}
		h.Description = description.String
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) loadUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUsersSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var u domain.User
		var travelType, budget, nationality sql.NullString
		if err := rows.Scan(&u.ID, &u.Age, &travelType, &budget, &nationality); err != nil {
			return nil, err
		}
		u.TravelType = travelType.String
		u.Budget = budget.String
		u.Nationality = nationality.String
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repo) loadRatings(ctx context.Context) ([]domain.Rating, error) {
	rows, err := r.db.QueryContext(ctx, selectRatingsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Rating
	for rows.Next() {
		var rt domain.Rating
		var stay sql.NullTime
		if err := rows.Scan(&rt.UserID, &rt.HotelID, &rt.Value, &stay); err != nil {
			return nil, err
		}
		if stay.Valid {
			d := stay.Time.UTC().Truncate(24 * time.Hour)
			rt.StayDate = &d
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}
