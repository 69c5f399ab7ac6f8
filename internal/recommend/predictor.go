package recommend

import "sort"

// Prediction carries the unrounded score; ranking always uses it. Rounding to
// two decimals happens only when a Recommendation is assembled.
type Prediction struct {
	HotelID string
	Score   float64
}

// Predict estimates a rating for every matrix hotel the query user has not
// rated, as the similarity-weighted average over neighbors that rated it.
// Hotels no neighbor has rated are omitted, not scored 0. Results are ordered
// by descending score, ties by ascending hotel id.
func Predict(m *Matrix, neighbors []Neighbor, rated map[string]float64) []Prediction {
	if len(neighbors) == 0 {
		return nil
	}

	rowIdx := make(map[string]int, m.Rows())
	for i, uid := range m.UserIDs {
		rowIdx[uid] = i
	}

	preds := make([]Prediction, 0, m.Cols())
	for j, hid := range m.HotelIDs {
		if _, ok := rated[hid]; ok {
			continue
		}
		var weighted, simSum float64
		for _, nb := range neighbors {
			r := m.Row(rowIdx[nb.UserID])[j]
			if r > unrated {
				weighted += r * nb.Score
				simSum += nb.Score
			}
		}
		if simSum > 0 {
			preds = append(preds, Prediction{HotelID: hid, Score: weighted / simSum})
		}
	}

	sort.Slice(preds, func(i, j int) bool {
		if preds[i].Score != preds[j].Score {
			return preds[i].Score > preds[j].Score
		}
		return preds[i].HotelID < preds[j].HotelID
	})
	return preds
}
