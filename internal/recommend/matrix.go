package recommend

import (
	"sort"

	"atlas_recs/internal/domain"
)

// Unrated cells hold 0. Ratings are always >= 1, so 0 is unambiguous here;
// any future rating scale that allows a literal 0 must revisit every
// `> 0` branch in this package.
const unrated = 0.0

// Matrix is the dense user-item grid: one row per user, one column per hotel.
// Row and column order are ascending by id, so two builds from the same table
// are identical.
type Matrix struct {
	UserIDs  []string
	HotelIDs []string

	cells    [][]float64
	hotelIdx map[string]int
}

// BuildMatrix aggregates duplicate (user, hotel) ratings by arithmetic mean
// and pivots the table into a dense grid. An empty table yields a matrix with
// zero rows and columns; callers treat that as "no neighbors available".
func BuildMatrix(ratings []domain.Rating) *Matrix {
	type cellKey struct{ user, hotel string }

	sums := make(map[cellKey]float64, len(ratings))
	counts := make(map[cellKey]int, len(ratings))
	userSet := make(map[string]struct{})
	hotelSet := make(map[string]struct{})

	for _, r := range ratings {
		k := cellKey{r.UserID, r.HotelID}
		sums[k] += r.Value
		counts[k]++
		userSet[r.UserID] = struct{}{}
		hotelSet[r.HotelID] = struct{}{}
	}

	m := &Matrix{
		UserIDs:  sortedKeys(userSet),
		HotelIDs: sortedKeys(hotelSet),
	}
	m.hotelIdx = make(map[string]int, len(m.HotelIDs))
	for i, id := range m.HotelIDs {
		m.hotelIdx[id] = i
	}

	m.cells = make([][]float64, len(m.UserIDs))
	for i, uid := range m.UserIDs {
		row := make([]float64, len(m.HotelIDs))
		for j, hid := range m.HotelIDs {
			k := cellKey{uid, hid}
			if c := counts[k]; c > 0 {
				row[j] = sums[k] / float64(c)
			}
		}
		m.cells[i] = row
	}
	return m
}

func (m *Matrix) Rows() int { return len(m.UserIDs) }
func (m *Matrix) Cols() int { return len(m.HotelIDs) }

// Row returns the dense rating vector of the i-th user. The slice aliases the
// matrix; callers must not mutate it.
func (m *Matrix) Row(i int) []float64 { return m.cells[i] }

func (m *Matrix) HotelIndex(id string) (int, bool) {
	i, ok := m.hotelIdx[id]
	return i, ok
}

// Vector densifies a query rating set against the matrix columns. Hotel ids
// absent from the matrix are silently ignored.
func (m *Matrix) Vector(ratings map[string]float64) []float64 {
	v := make([]float64, len(m.HotelIDs))
	for id, val := range ratings {
		if j, ok := m.hotelIdx[id]; ok {
			v[j] = val
		}
	}
	return v
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
