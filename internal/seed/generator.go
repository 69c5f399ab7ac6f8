// Package seed generates a synthetic Marrakech hotel dataset: hotels,
// user profiles and ratings whose distribution follows the travel-type
// and budget preferences of each user. The same seed always produces
// the same tables.
package seed

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/samber/lo"

	"atlas_recs/internal/domain"
)

type Config struct {
	Hotels  int
	Users   int
	Ratings int
	Seed    int64
}

func (c Config) withDefaults() Config {
	if c.Hotels <= 0 {
		c.Hotels = 80
	}
	if c.Users <= 0 {
		c.Users = 2000
	}
	if c.Ratings <= 0 {
		c.Ratings = 50000
	}
	if c.Seed == 0 {
		c.Seed = 42
	}
	return c
}

var (
	categories = []string{"Luxe", "Riad", "Budget", "Affaires", "Boutique"}
	districts  = []string{"Medina", "Gueliz", "Hivernage", "Palmeraie", "Kasbah"}

	amenityPools = map[string][]string{
		"Luxe": {"Piscine", "SPA", "WiFi", "Parking", "Restaurant gastronomique",
			"Room Service", "Fitness", "Bar", "Concierge", "Hammam"},
		"Riad": {"Terrasse panoramique", "Petit-dejeuner marocain", "WiFi",
			"Patio traditionnel", "Cuisine locale", "Fontaine", "Jardin andalou"},
		"Budget": {"WiFi gratuit", "Parking", "Petit-dejeuner continental",
			"Climatisation", "Salle de bain privee", "Reception 24h"},
		"Affaires": {"WiFi haut debit", "Parking gratuit", "Business Center",
			"Petit-dejeuner buffet", "Salle de reunion", "Service pressing"},
		"Boutique": {"Piscine design", "WiFi", "Decoration unique", "Restaurant",
			"Art local", "Jardin zen", "Bibliotheque"},
	}

	// Price band per category, in euros per night.
	priceBands = map[string][2]int{
		"Luxe":     {300, 800},
		"Riad":     {120, 350},
		"Budget":   {40, 120},
		"Affaires": {100, 250},
		"Boutique": {150, 400},
	}

	// Real Marrakech hotels, placed first so small datasets stay recognisable.
	famousHotels = []struct{ name, category, district string }{
		{"La Mamounia", "Luxe", "Medina"},
		{"Royal Mansour", "Luxe", "Medina"},
		{"Four Seasons", "Luxe", "Hivernage"},
		{"Riad Kniza", "Riad", "Medina"},
		{"Hotel Ibis Centre", "Budget", "Gueliz"},
		{"Sofitel Marrakech", "Luxe", "Palmeraie"},
		{"Le Meridien N'Fis", "Affaires", "Hivernage"},
		{"Riad El Fenn", "Riad", "Medina"},
		{"Palais Namaskar", "Luxe", "Palmeraie"},
		{"Riad Dar Anika", "Riad", "Medina"},
		{"Hotel Atlas Asni", "Budget", "Gueliz"},
		{"Movenpick Mansour Eddahbi", "Affaires", "Hivernage"},
		{"Villa des Orangers", "Boutique", "Medina"},
		{"Es Saadi Gardens", "Luxe", "Hivernage"},
		{"Riad Farnatchi", "Riad", "Medina"},
	}

	namePrefixes = map[string][]string{
		"Luxe":     {"Palais", "Royal", "Grand Hotel", "Palace"},
		"Riad":     {"Riad", "Dar", "Maison"},
		"Budget":   {"Hotel", "Auberge", "Pension"},
		"Affaires": {"Hotel", "Business Hotel", "Executive"},
		"Boutique": {"Villa", "Maison", "Residence"},
	}

	nameSuffixes = map[string][]string{
		"Medina":    {"de la Medina", "Traditionnel", "des Souks", "du Centre"},
		"Gueliz":    {"Moderne", "Central", "City", "Urbain"},
		"Hivernage": {"Garden", "Resort", "des Jardins", "Paradise"},
		"Palmeraie": {"des Palmiers", "Oasis", "Desert", "Sahara"},
		"Kasbah":    {"de la Kasbah", "Historique", "Heritage", "Ancien"},
	}

	surnames = []string{
		"Alaoui", "Bennani", "Cherkaoui", "El Fassi", "Idrissi", "Tazi",
		"Berrada", "Lahlou", "Amrani", "Sqalli", "Benjelloun", "Mansouri",
		"Dubois", "Martin", "Laurent", "Moreau", "Fontaine", "Garnier",
	}

	travelTypes   = []string{"Romantique", "Affaires", "Familial", "Solo", "Groupe"}
	nationalities = []string{"France", "Allemagne", "Espagne", "Italie", "Etats-Unis",
		"Canada", "Royaume-Uni", "Maroc", "Belgique", "Pays-Bas"}

	// Base rating by travel type and hotel category.
	preferences = map[string]map[string]float64{
		"Romantique": {"Luxe": 4.6, "Riad": 4.8, "Budget": 2.2, "Affaires": 2.8, "Boutique": 4.4},
		"Affaires":   {"Luxe": 4.3, "Riad": 3.2, "Budget": 3.6, "Affaires": 4.7, "Boutique": 3.8},
		"Familial":   {"Luxe": 4.4, "Riad": 4.0, "Budget": 4.2, "Affaires": 3.5, "Boutique": 4.1},
		"Solo":       {"Luxe": 3.9, "Riad": 4.5, "Budget": 4.4, "Affaires": 3.3, "Boutique": 4.2},
		"Groupe":     {"Luxe": 4.1, "Riad": 4.2, "Budget": 4.5, "Affaires": 3.1, "Boutique": 3.9},
	}

	budgetAdjust = map[string]map[string]float64{
		"Economique": {"Luxe": -1.5, "Riad": -0.3, "Budget": 0.5, "Affaires": 0.0, "Boutique": -0.8},
		"Moyen":      {"Luxe": -0.3, "Riad": 0.2, "Budget": 0.2, "Affaires": 0.3, "Boutique": 0.2},
		"Luxe":       {"Luxe": 0.4, "Riad": 0.3, "Budget": -1.0, "Affaires": 0.1, "Boutique": 0.3},
	}
)

type Generator struct {
	cfg Config
	rng *rand.Rand
	now time.Time
}

func New(cfg Config) *Generator {
	cfg = cfg.withDefaults()
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
		now: time.Now().UTC().Truncate(24 * time.Hour),
	}
}

// Generate builds the three tables. Ratings reference only generated users
// and hotels, and every user gets at least five of them so the
// collaborative filter has something to chew on.
func (g *Generator) Generate() domain.Tables {
	hotels := g.hotels()
	users := g.users()
	return domain.Tables{
		Hotels:  hotels,
		Users:   users,
		Ratings: g.ratings(hotels, users),
	}
}

func (g *Generator) hotels() []domain.Hotel {
	hotels := make([]domain.Hotel, 0, g.cfg.Hotels)
	for i, fh := range famousHotels {
		if i >= g.cfg.Hotels {
			break
		}
		hotels = append(hotels, g.hotel(len(hotels)+1, fh.name, fh.category, fh.district))
	}
	for len(hotels) < g.cfg.Hotels {
		category := g.pick(categories)
		district := g.pick(districts)
		name := g.hotelName(category, district)
		hotels = append(hotels, g.hotel(len(hotels)+1, name, category, district))
	}
	return hotels
}

func (g *Generator) hotel(seq int, name, category, district string) domain.Hotel {
	band := priceBands[category]
	pool := amenityPools[category]
	n := 3 + g.rng.Intn(min(6, len(pool))-2)
	return domain.Hotel{
		ID:        fmt.Sprintf("H%03d", seq),
		Name:      name,
		Category:  category,
		Location:  district,
		Price:     float64(band[0] + g.rng.Intn(band[1]-band[0]+1)),
		Amenities: g.sample(pool, n),
		Description: fmt.Sprintf("Hotel %s situe dans le quartier %s de Marrakech",
			category, district),
	}
}

func (g *Generator) hotelName(category, district string) string {
	return fmt.Sprintf("%s %s %s",
		g.pick(namePrefixes[category]), g.pick(surnames), g.pick(nameSuffixes[district]))
}

func (g *Generator) users() []domain.User {
	users := make([]domain.User, 0, g.cfg.Users)
	for i := 1; i <= g.cfg.Users; i++ {
		age := int(g.rng.NormFloat64()*15 + 40)
		age = max(18, min(75, age))
		travelType, budget := g.profile(age)
		users = append(users, domain.User{
			ID:          fmt.Sprintf("U%04d", i),
			Age:         age,
			TravelType:  travelType,
			Budget:      budget,
			Nationality: g.pick(nationalities),
		})
	}
	return users
}

// profile skews travel type and budget by age bracket; older travellers
// spend more, the under-25s mostly travel solo or in groups on a budget.
func (g *Generator) profile(age int) (travelType, budget string) {
	switch {
	case age < 25:
		travelType = g.weighted([]string{"Solo", "Groupe", "Romantique"}, []float64{0.4, 0.4, 0.2})
		budget = g.weighted([]string{"Economique", "Moyen", "Luxe"}, []float64{0.6, 0.3, 0.1})
	case age < 40:
		travelType = g.weighted([]string{"Romantique", "Affaires", "Familial", "Solo"}, []float64{0.3, 0.3, 0.2, 0.2})
		budget = g.weighted([]string{"Economique", "Moyen", "Luxe"}, []float64{0.2, 0.5, 0.3})
	case age < 60:
		travelType = g.weighted([]string{"Familial", "Affaires", "Romantique"}, []float64{0.4, 0.4, 0.2})
		budget = g.weighted([]string{"Economique", "Moyen", "Luxe"}, []float64{0.1, 0.4, 0.5})
	default:
		travelType = g.weighted([]string{"Romantique", "Familial", "Groupe"}, []float64{0.4, 0.3, 0.3})
		budget = g.weighted([]string{"Moyen", "Luxe"}, []float64{0.4, 0.6})
	}
	return travelType, budget
}

func (g *Generator) ratings(hotels []domain.Hotel, users []domain.User) []domain.Rating {
	perUser := g.cfg.Ratings / len(users)
	ratings := make([]domain.Rating, 0, g.cfg.Ratings+len(users)*5)

	for _, u := range users {
		n := max(5, g.poisson(float64(perUser)))
		n = min(n, len(hotels))
		for _, h := range g.sampleHotels(hotels, n) {
			ratings = append(ratings, domain.Rating{
				UserID:   u.ID,
				HotelID:  h.ID,
				Value:    g.rate(u, h),
				StayDate: g.stayDate(),
			})
		}
	}

	if len(ratings) > g.cfg.Ratings {
		g.rng.Shuffle(len(ratings), func(i, j int) {
			ratings[i], ratings[j] = ratings[j], ratings[i]
		})
		ratings = ratings[:g.cfg.Ratings]
	}
	return ratings
}

// rate scores one stay: preference matrix, budget adjustment, price
// coherence, age bias, gaussian noise, then clamp to [1,5] and round to
// the nearest half star.
func (g *Generator) rate(u domain.User, h domain.Hotel) float64 {
	r := preferences[u.TravelType][h.Category]
	r += budgetAdjust[u.Budget][h.Category]

	if u.Budget == "Economique" && h.Price > 200 {
		r -= 0.8
	} else if u.Budget == "Luxe" && h.Price < 100 {
		r -= 0.5
	}
	if u.Age > 50 {
		r -= 0.2
	} else if u.Age < 30 {
		r += 0.1
	}

	r += g.rng.NormFloat64() * 0.4
	r = math.Max(1.0, math.Min(5.0, r))
	return math.Round(r*2) / 2
}

func (g *Generator) stayDate() *time.Time {
	d := g.now.AddDate(0, 0, -g.rng.Intn(730))
	return &d
}

func (g *Generator) pick(options []string) string {
	return options[g.rng.Intn(len(options))]
}

func (g *Generator) weighted(options []string, weights []float64) string {
	total := lo.Sum(weights)
	x := g.rng.Float64() * total
	for i, w := range weights {
		if x -= w; x < 0 {
			return options[i]
		}
	}
	return options[len(options)-1]
}

func (g *Generator) sample(pool []string, n int) []string {
	idx := g.rng.Perm(len(pool))[:n]
	return lo.Map(idx, func(i int, _ int) string { return pool[i] })
}

func (g *Generator) sampleHotels(hotels []domain.Hotel, n int) []domain.Hotel {
	idx := g.rng.Perm(len(hotels))[:n]
	return lo.Map(idx, func(i int, _ int) domain.Hotel { return hotels[i] })
}

// poisson draws via Knuth's method, fine for the small means used here.
func (g *Generator) poisson(mean float64) int {
	if mean <= 0 {
		return 0
	}
	l := math.Exp(-mean)
	k, p := 0, 1.0
	for {
		p *= g.rng.Float64()
		if p <= l {
			return k
		}
		k++
	}
}
