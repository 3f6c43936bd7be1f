package scoring

import "github.com/leadpilot/leadpilot/pkg/domain"

// Bucket thresholds. Boundaries are inclusive on the lower bound of each
// bucket.
const (
	HotThreshold  = 70
	WarmThreshold = 40
)

// Bucket converts a numeric score into its label. It is pure and total and
// must be used everywhere a score becomes a label: creation, re-scoring,
// bulk scoring and demo fixture generation.
func Bucket(score int) domain.ScoreLabel {
	switch {
	case score >= HotThreshold:
		return domain.LabelHot
	case score >= WarmThreshold:
		return domain.LabelWarm
	default:
		return domain.LabelCold
	}
}

// ClampScore forces a classifier-reported score into [0,100].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
