package index

// SimilarityScores converts a result set's distances into relative
// similarity scores: 1 - d/max(d).
//
// The maximum-distance candidate scores exactly 0 and the nearest candidate
// scores highest. If every distance is 0 (all candidates identical to the
// query), all scores are 1.0.
//
// Scores are relative to a single result set. They must not be compared
// across different queries or candidate pools.
func SimilarityScores(distances []float32) []float32 {
	if len(distances) == 0 {
		return []float32{}
	}

	var maxDist float32
	for _, d := range distances {
		if d > maxDist {
			maxDist = d
		}
	}

	scores := make([]float32, len(distances))
	if maxDist == 0 {
		for i := range scores {
			scores[i] = 1.0
		}
		return scores
	}

	for i, d := range distances {
		scores[i] = 1 - d/maxDist
	}
	return scores
}
