package recommend

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlas_recs/internal/domain"
)

func TestRankPopularity_LogDampedCountBeatsRawAverage(t *testing.T) {
	// A: avg 4.0 over 100 ratings -> 4.0*ln(101) ~= 18.45
	// B: avg 4.5 over 3 ratings   -> 4.5*ln(4)   ~= 6.24
	var ratings []domain.Rating
	for i := 0; i < 100; i++ {
		ratings = append(ratings, rating("u", "A", 4.0))
	}
	for i := 0; i < 3; i++ {
		ratings = append(ratings, rating("u", "B", 4.5))
	}

	ranked := RankPopularity(ratings)
	require.Len(t, ranked, 2)
	assert.Equal(t, "A", ranked[0].HotelID)
	assert.Equal(t, "B", ranked[1].HotelID)
	assert.InDelta(t, 4.0*math.Log(101), ranked[0].Score, 1e-9)
	assert.InDelta(t, 4.5*math.Log(4), ranked[1].Score, 1e-9)
}

func TestRankPopularity_TieBrokenByHotelID(t *testing.T) {
	ranked := RankPopularity([]domain.Rating{
		rating("u1", "b", 4),
		rating("u1", "a", 4),
	})
	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].HotelID)
	assert.Equal(t, "b", ranked[1].HotelID)
}

func TestTopPopular_RespectsExclusionAndSize(t *testing.T) {
	ranked := []PopularHotel{
		{HotelID: "h1", Score: 9},
		{HotelID: "h2", Score: 8},
		{HotelID: "h3", Score: 7},
	}
	out := TopPopular(ranked, 2, map[string]struct{}{"h1": {}})
	require.Len(t, out, 2)
	assert.Equal(t, "h2", out[0].HotelID)
	assert.Equal(t, "h3", out[1].HotelID)
}
