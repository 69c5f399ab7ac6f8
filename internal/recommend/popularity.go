package recommend

import (
	"math"
	"sort"

	"atlas_recs/internal/domain"
)

// PopularHotel is one entry of the process-wide popularity ranking. The score
// is avg_rating * ln(count+1): the logarithm keeps high-volume hotels from
// drowning out high-quality ones.
type PopularHotel struct {
	HotelID   string
	Score     float64
	AvgRating float64
	Count     int
}

// RankPopularity computes the popularity ranking over the entire ratings
// table, ordered by descending score with ties broken by ascending hotel id.
// The table never changes at runtime, so the ranking is computed once.
func RankPopularity(ratings []domain.Rating) []PopularHotel {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range ratings {
		sums[r.HotelID] += r.Value
		counts[r.HotelID]++
	}

	ranked := make([]PopularHotel, 0, len(counts))
	for id, c := range counts {
		avg := sums[id] / float64(c)
		ranked = append(ranked, PopularHotel{
			HotelID:   id,
			Score:     avg * math.Log(float64(c)+1),
			AvgRating: avg,
			Count:     c,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].HotelID < ranked[j].HotelID
	})
	return ranked
}

// TopPopular returns the n best-ranked hotels not in the exclusion set.
// It serves both cold starts and gap-filling behind short personalized lists.
func TopPopular(ranked []PopularHotel, n int, exclude map[string]struct{}) []PopularHotel {
	if n <= 0 {
		return nil
	}
	out := make([]PopularHotel, 0, n)
	for _, p := range ranked {
		if _, skip := exclude[p.HotelID]; skip {
			continue
		}
		out = append(out, p)
		if len(out) == n {
			break
		}
	}
	return out
}
