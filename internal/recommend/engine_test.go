package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlas_recs/internal/domain"
)

// Fixture from the classic three-user scenario: U1 and U2 share taste over
// H1/H2, U3 lives in a different corner of the matrix.
func scenarioTables() domain.Tables {
	return domain.Tables{
		Hotels: []domain.Hotel{
			{ID: "H1", Name: "Riad Yasmine", Category: "Riad", Location: "Medina", Price: 180},
			{ID: "H2", Name: "Palais Amani", Category: "Luxury", Location: "Hivernage", Price: 450},
			{ID: "H3", Name: "Hotel Gueliz", Category: "Budget", Location: "Gueliz", Price: 70},
			{ID: "H4", Name: "Villa Palmeraie", Category: "Boutique", Location: "Palmeraie", Price: 300},
		},
		Ratings: []domain.Rating{
			rating("U1", "H1", 5), rating("U1", "H2", 5),
			rating("U2", "H1", 5), rating("U2", "H2", 4), rating("U2", "H3", 3),
			rating("U3", "H3", 5), rating("U3", "H4", 5),
		},
	}
}

func TestEngine_RejectsOutOfRangeRatings(t *testing.T) {
	e := NewEngine(scenarioTables(), Config{})
	for _, bad := range []float64{0, 0.5, 5.5, -1} {
		_, err := e.Recommend(map[string]float64{"H1": bad, "H2": 4}, 5)
		require.Error(t, err, "rating %v", bad)
		assert.ErrorIs(t, err, domain.ErrInvalidRating)
	}
}

func TestEngine_ColdStartEqualsPopularityFallback(t *testing.T) {
	e := NewEngine(scenarioTables(), Config{})

	res, err := e.Recommend(map[string]float64{"H1": 5}, 3)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, ReasonColdStart, res.Reason)

	// Same ordering and explanations as the raw popularity ranking,
	// excluding the already-rated hotel.
	exclude := map[string]struct{}{"H1": {}}
	want := TopPopular(e.popular, 3, exclude)
	require.Len(t, res.Items, len(want))
	for i, p := range want {
		assert.Equal(t, p.HotelID, res.Items[i].HotelID)
		assert.Equal(t, Popular(p.AvgRating), res.Items[i].Explanation)
	}
}

func TestEngine_ScenarioNearestNeighborPrediction(t *testing.T) {
	e := NewEngine(scenarioTables(), Config{})
	query := map[string]float64{"H1": 5, "H2": 5}

	scores := e.sim.AllRows(e.matrix.Vector(query), e.matrix)
	neighbors := TopNeighbors(e.matrix, scores, e.cfg.K)
	require.NotEmpty(t, neighbors)
	// k clamps to rows-1 = 2; U1 is identical, U2 close behind.
	require.Len(t, neighbors, 2)
	assert.Equal(t, "U1", neighbors[0].UserID)
	assert.Equal(t, "U2", neighbors[1].UserID)

	preds := Predict(e.matrix, neighbors, query)
	require.Len(t, preds, 1, "H4 has no neighbor overlap and must be omitted")
	assert.Equal(t, "H3", preds[0].HotelID)
	assert.InDelta(t, 3.0, preds[0].Score, 1e-9)
}

func TestEngine_PersonalizedThenPopularityPadding(t *testing.T) {
	e := NewEngine(scenarioTables(), Config{})
	res, err := e.Recommend(map[string]float64{"H1": 5, "H2": 5}, 2)
	require.NoError(t, err)

	assert.Equal(t, SourcePersonalized, res.Source)
	assert.Empty(t, res.Reason)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "H3", res.Items[0].HotelID)
	assert.InDelta(t, 3.0, res.Items[0].PredictedRating, 1e-9)
	// Only H4 is left for the popularity fill.
	assert.Equal(t, "H4", res.Items[1].HotelID)
	assert.Equal(t, Popular(5), res.Items[1].Explanation)
}

func TestEngine_NeverReturnsRatedHotelsAndAtMostN(t *testing.T) {
	e := NewEngine(scenarioTables(), Config{})
	for _, query := range []map[string]float64{
		{"H1": 5},
		{"H1": 5, "H2": 5},
		{"H1": 5, "H2": 4, "H3": 3},
	} {
		for _, n := range []int{1, 2, 5} {
			res, err := e.Recommend(query, n)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(res.Items), n)
			for _, it := range res.Items {
				_, rated := query[it.HotelID]
				assert.False(t, rated, "hotel %s was already rated", it.HotelID)
			}
		}
	}
}

func TestEngine_Deterministic(t *testing.T) {
	query := map[string]float64{"H1": 5, "H2": 5}
	a, err := NewEngine(scenarioTables(), Config{}).Recommend(query, 4)
	require.NoError(t, err)
	b, err := NewEngine(scenarioTables(), Config{}).Recommend(query, 4)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEngine_UnknownHotelIDsIgnored(t *testing.T) {
	e := NewEngine(scenarioTables(), Config{})
	res, err := e.Recommend(map[string]float64{"H1": 5, "H2": 5, "ghost": 4}, 2)
	require.NoError(t, err)
	assert.Equal(t, SourcePersonalized, res.Source)
	require.NotEmpty(t, res.Items)
	assert.Equal(t, "H3", res.Items[0].HotelID)
}

func TestEngine_NoNeighborsFallsBack(t *testing.T) {
	e := NewEngine(scenarioTables(), Config{})
	// Rated hotels exist but share no support with anyone once densified:
	// both ids are unknown to the matrix, so every similarity is zero.
	res, err := e.Recommend(map[string]float64{"x1": 5, "x2": 4}, 2)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, ReasonNoNeighbors, res.Reason)
	assert.Len(t, res.Items, 2)
}

func TestEngine_EmptyTableServesEmptyLists(t *testing.T) {
	e := NewEngine(domain.Tables{}, Config{})
	res, err := e.Recommend(map[string]float64{"H1": 5, "H2": 4}, 5)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Empty(t, res.Items)
}

func TestEngine_DefaultAndMaxN(t *testing.T) {
	tables := scenarioTables()
	e := NewEngine(tables, Config{DefaultN: 2, MaxN: 3})

	res, err := e.Recommend(map[string]float64{"H1": 5}, 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(res.Items), 2)

	res, err = e.Recommend(map[string]float64{"H1": 5}, 100)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(res.Items), 3)
}
