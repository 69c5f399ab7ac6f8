package recommend

import (
	"fmt"
	"math"
)

// Metric selects how two partial rating sets are compared. The set is closed:
// anything else fails at config time, not per request.
type Metric string

const (
	MetricCosine    Metric = "cosine"
	MetricPearson   Metric = "pearson"
	MetricEuclidean Metric = "euclidean"
	MetricJaccard   Metric = "jaccard"
)

func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricCosine, MetricPearson, MetricEuclidean, MetricJaccard:
		return Metric(s), nil
	case "":
		return MetricCosine, nil
	}
	return "", fmt.Errorf("unknown similarity metric %q", s)
}

// Similarity computes a score between two rating vectors. All metrics operate
// only over the dimensions both sides actually rated, and return 0 whenever a
// denominator would be zero or undefined; they never produce NaN.
type Similarity struct {
	Metric Metric

	// LikedThreshold is the minimum rating for an item to count as "liked"
	// under the Jaccard metric.
	LikedThreshold float64
}

// Vectors scores two dense vectors of equal length, treating 0 cells as
// unrated.
func (s Similarity) Vectors(a, b []float64) float64 {
	if s.Metric == MetricJaccard {
		return jaccardVectors(a, b, s.LikedThreshold)
	}
	xs, ys := commonDims(a, b)
	return s.kernel(xs, ys)
}

// Sets scores two sparse rating mappings (hotel id -> rating).
func (s Similarity) Sets(a, b map[string]float64) float64 {
	if s.Metric == MetricJaccard {
		return jaccardSets(a, b, s.LikedThreshold)
	}
	xs := make([]float64, 0, len(a))
	ys := make([]float64, 0, len(a))
	for id, av := range a {
		if bv, ok := b[id]; ok && av > unrated && bv > unrated {
			xs = append(xs, av)
			ys = append(ys, bv)
		}
	}
	return s.kernel(xs, ys)
}

// AllRows scores the query vector against every matrix row.
func (s Similarity) AllRows(query []float64, m *Matrix) []float64 {
	scores := make([]float64, m.Rows())
	for i := range scores {
		scores[i] = s.Vectors(query, m.Row(i))
	}
	return scores
}

func (s Similarity) kernel(xs, ys []float64) float64 {
	switch s.Metric {
	case MetricPearson:
		return pearson(xs, ys)
	case MetricEuclidean:
		return euclidean(xs, ys)
	default:
		return cosine(xs, ys)
	}
}

// commonDims projects two dense vectors onto the dimensions rated by both.
func commonDims(a, b []float64) (xs, ys []float64) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] > unrated && b[i] > unrated {
			xs = append(xs, a[i])
			ys = append(ys, b[i])
		}
	}
	return xs, ys
}

func cosine(xs, ys []float64) float64 {
	var dot, nx, ny float64
	for i := range xs {
		dot += xs[i] * ys[i]
		nx += xs[i] * xs[i]
		ny += ys[i] * ys[i]
	}
	if nx == 0 || ny == 0 {
		return 0
	}
	return dot / (math.Sqrt(nx) * math.Sqrt(ny))
}

// pearson requires at least two commonly rated items; fewer carry no
// correlation signal.
func pearson(xs, ys []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var meanX, meanY float64
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= float64(len(xs))
	meanY /= float64(len(ys))

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

// euclidean maps distance over common items into (0,1] via 1/(1+d).
func euclidean(xs, ys []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sumSq float64
	for i := range xs {
		d := xs[i] - ys[i]
		sumSq += d * d
	}
	return 1 / (1 + math.Sqrt(sumSq))
}

func jaccardVectors(a, b []float64, threshold float64) float64 {
	var inter, union int
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		likedA := i < len(a) && a[i] >= threshold && a[i] > unrated
		likedB := i < len(b) && b[i] >= threshold && b[i] > unrated
		if likedA && likedB {
			inter++
		}
		if likedA || likedB {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func jaccardSets(a, b map[string]float64, threshold float64) float64 {
	var inter, union int
	for id, v := range a {
		if v < threshold {
			continue
		}
		union++
		if bv, ok := b[id]; ok && bv >= threshold {
			inter++
		}
	}
	for id, v := range b {
		if v < threshold {
			continue
		}
		if av, ok := a[id]; !ok || av < threshold {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
