package domain

import "time"

// Hotel is one row of the hotels table. IDs are canonical strings: every
// source (CSV, MySQL, request bodies) converts at ingress, never downstream.
type Hotel struct {
	ID          string
	Name        string
	Category    string
	Location    string
	Price       float64
	Amenities   []string
	Description string
}

type User struct {
	ID          string
	Age         int
	TravelType  string
	Budget      string
	Nationality string
}

// Rating values live in [1,5]. A 0 is never a legitimate rating, which is
// what lets the engine use 0 as its "unrated" sentinel.
type Rating struct {
	UserID   string
	HotelID  string
	Value    float64
	StayDate *time.Time
}

// Tables is the relational snapshot loaded once at startup and treated as
// read-only for the process lifetime.
type Tables struct {
	Hotels  []Hotel
	Users   []User
	Ratings []Rating
}

func (t Tables) Empty() bool {
	return len(t.Hotels) == 0 && len(t.Ratings) == 0
}
