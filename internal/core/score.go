package core

// ScoreWithin reports whether a bm25 rank score meets a threshold.
// SQLite's bm25() returns lower values for better matches, so a score
// is "within" a threshold when it is numerically less than or equal
// to it.
func ScoreWithin(score, threshold float64) bool {
	return score <= threshold
}
