package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlas_recs/internal/domain"
)

func rating(user, hotel string, v float64) domain.Rating {
	return domain.Rating{UserID: user, HotelID: hotel, Value: v}
}

func TestBuildMatrix_OrdersRowsAndColumnsAscending(t *testing.T) {
	m := BuildMatrix([]domain.Rating{
		rating("u2", "h3", 3),
		rating("u1", "h1", 5),
		rating("u2", "h1", 4),
	})
	assert.Equal(t, []string{"u1", "u2"}, m.UserIDs)
	assert.Equal(t, []string{"h1", "h3"}, m.HotelIDs)
	assert.Equal(t, []float64{5, 0}, m.Row(0))
	assert.Equal(t, []float64{4, 3}, m.Row(1))
}

func TestBuildMatrix_DuplicatesAveragedNotRejected(t *testing.T) {
	m := BuildMatrix([]domain.Rating{
		rating("u1", "h1", 2),
		rating("u1", "h1", 4),
		rating("u1", "h1", 3),
	})
	require.Equal(t, 1, m.Rows())
	assert.InDelta(t, 3.0, m.Row(0)[0], 1e-9)
}

func TestBuildMatrix_EmptyTable(t *testing.T) {
	m := BuildMatrix(nil)
	assert.Zero(t, m.Rows())
	assert.Zero(t, m.Cols())
}

func TestBuildMatrix_Deterministic(t *testing.T) {
	rows := []domain.Rating{
		rating("u3", "h2", 1),
		rating("u1", "h9", 5),
		rating("u2", "h10", 4),
	}
	a, b := BuildMatrix(rows), BuildMatrix(rows)
	assert.Equal(t, a.UserIDs, b.UserIDs)
	assert.Equal(t, a.HotelIDs, b.HotelIDs)
	for i := 0; i < a.Rows(); i++ {
		assert.Equal(t, a.Row(i), b.Row(i))
	}
}

func TestMatrix_VectorIgnoresUnknownHotels(t *testing.T) {
	m := BuildMatrix([]domain.Rating{rating("u1", "h1", 5), rating("u1", "h2", 3)})
	v := m.Vector(map[string]float64{"h2": 4, "nope": 5})
	assert.Equal(t, []float64{0, 4}, v)
}
