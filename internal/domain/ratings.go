package domain

// RatingScale is the fixed set of selectable ratings, highest first.
var RatingScale = []float64{5.0, 4.5, 4.0, 3.5, 3.0, 2.5, 2.0, 1.5, 1.0, 0.5}

// RatingBucket is one bar of a rating distribution.
type RatingBucket struct {
	Rating float64
	Count  int
}

// RatingHistogram counts a user's rated albums per step of the rating
// scale, in scale order.
func RatingHistogram(ratings []RatedAlbum) []RatingBucket {
	buckets := make([]RatingBucket, len(RatingScale))
	for i, step := range RatingScale {
		buckets[i].Rating = step
		for _, r := range ratings {
			if r.Rating == step {
				buckets[i].Count++
			}
		}
	}
	return buckets
}
