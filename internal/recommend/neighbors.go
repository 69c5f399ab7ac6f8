package recommend

import "sort"

// Neighbor is a reference user together with its similarity to the query.
// Scores are clipped to [0,1]: negative similarity is not actionable for
// weighted averaging.
type Neighbor struct {
	UserID string
	Score  float64
}

// TopNeighbors returns the k most similar users with strictly positive
// scores, ordered by descending score and then ascending user id. k is
// clamped to one less than the number of matrix rows, mirroring the idea
// that the query user is notionally one of them. An empty result is the
// cold-path trigger, not an error.
func TopNeighbors(m *Matrix, scores []float64, k int) []Neighbor {
	if m.Rows() == 0 {
		return nil
	}
	if max := m.Rows() - 1; k > max {
		k = max
	}
	if k <= 0 {
		return nil
	}

	candidates := make([]Neighbor, 0, len(scores))
	for i, s := range scores {
		if s > 0 {
			if s > 1 {
				s = 1
			}
			candidates = append(candidates, Neighbor{UserID: m.UserIDs[i], Score: s})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].UserID < candidates[j].UserID
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}
