package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"atlas_recs/internal/domain"
)

func testExplainer() Explainer {
	return Explainer{
		PriceTolerance: 100,
		Catalog: map[string]domain.Hotel{
			"h1": {ID: "h1", Category: "Riad", Location: "Medina", Price: 200},
			"h2": {ID: "h2", Category: "Budget", Location: "Gueliz", Price: 60},
			"h3": {ID: "h3", Category: "Luxury", Location: "Hivernage", Price: 500},
		},
	}
}

func TestExplain_CategoryMatchWinsOverLocation(t *testing.T) {
	e := testExplainer()
	candidate := domain.Hotel{ID: "x", Category: "Riad", Location: "Medina", Price: 900}
	got := e.Personalized(map[string]float64{"h1": 5}, candidate)
	assert.Equal(t, "Similar to the riad hotels you rated highly", got)
}

func TestExplain_LocationMatch(t *testing.T) {
	e := testExplainer()
	candidate := domain.Hotel{ID: "x", Category: "Boutique", Location: "Medina", Price: 900}
	got := e.Personalized(map[string]float64{"h1": 4.5}, candidate)
	assert.Equal(t, "In Medina, like your favourite hotels", got)
}

func TestExplain_PriceProximity(t *testing.T) {
	e := testExplainer()
	// liked mean price 200; candidate at 260 is inside the 100 tolerance
	candidate := domain.Hotel{ID: "x", Category: "Boutique", Location: "Palmeraie", Price: 260}
	got := e.Personalized(map[string]float64{"h1": 4}, candidate)
	assert.Equal(t, "Within your preferred price range", got)
}

func TestExplain_GenericWhenNothingMatches(t *testing.T) {
	e := testExplainer()
	candidate := domain.Hotel{ID: "x", Category: "Boutique", Location: "Palmeraie", Price: 900}
	got := e.Personalized(map[string]float64{"h1": 4}, candidate)
	assert.Equal(t, "Recommended by users with tastes similar to yours", got)
}

func TestExplain_LowRatingsCarryNoPreferenceSignal(t *testing.T) {
	e := testExplainer()
	candidate := domain.Hotel{ID: "x", Category: "Riad", Location: "Medina", Price: 200}
	got := e.Personalized(map[string]float64{"h1": 2}, candidate)
	assert.Equal(t, "Recommended by users with tastes similar to yours", got)
}

func TestExplain_PopularMessage(t *testing.T) {
	assert.Equal(t, "Popular hotel with an average rating of 4.3/5", Popular(4.31))
}
