package recommend

import (
	"fmt"
	"strings"

	"atlas_recs/internal/domain"
)

// highlyRated is the minimum rating for a hotel to count toward a user's
// inferred preferences.
const highlyRated = 4.0

// Explainer derives a one-line justification per recommendation from the
// query user's highly rated hotels, by priority: shared category, shared
// location, price proximity, then a generic similar-users message.
type Explainer struct {
	Catalog map[string]domain.Hotel

	// PriceTolerance is the absolute distance from the mean price of the
	// user's highly rated hotels that still counts as "their price range".
	PriceTolerance float64
}

func (e Explainer) Personalized(ratings map[string]float64, candidate domain.Hotel) string {
	liked := make([]domain.Hotel, 0, len(ratings))
	for id, v := range ratings {
		if v >= highlyRated {
			if h, ok := e.Catalog[id]; ok {
				liked = append(liked, h)
			}
		}
	}
	if len(liked) == 0 {
		return "Recommended by users with tastes similar to yours"
	}

	var priceSum float64
	categoryMatch, locationMatch := false, false
	for _, h := range liked {
		priceSum += h.Price
		categoryMatch = categoryMatch || h.Category == candidate.Category
		locationMatch = locationMatch || h.Location == candidate.Location
	}
	if categoryMatch {
		return fmt.Sprintf("Similar to the %s hotels you rated highly", strings.ToLower(candidate.Category))
	}
	if locationMatch {
		return fmt.Sprintf("In %s, like your favourite hotels", candidate.Location)
	}
	meanPrice := priceSum / float64(len(liked))
	if diff := candidate.Price - meanPrice; diff < e.PriceTolerance && diff > -e.PriceTolerance {
		return "Within your preferred price range"
	}
	return "Recommended by users with tastes similar to yours"
}

// Popular is the explanation for popularity-fallback entries; it never goes
// through the personalized rules.
func Popular(avgRating float64) string {
	return fmt.Sprintf("Popular hotel with an average rating of %.1f/5", avgRating)
}
