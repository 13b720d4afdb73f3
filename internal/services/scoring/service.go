package scoring

import (
	"github.com/hotseat-games/millionaire/internal/model"
)

// DefaultPointScale is the 10-tier prize ladder, indexed by cumulative
// correct-answer count
var DefaultPointScale = []int{
	500, 1000, 2000, 5000, 10000, 50000, 100000, 250000, 500000, 1000000,
}

// Service computes scores from question history against a fixed point scale
type Service struct {
	pointScale []int
}

// New creates a new ScoringService. A nil or empty scale falls back to
// DefaultPointScale.
func New(pointScale []int) *Service {
	if len(pointScale) == 0 {
		pointScale = DefaultPointScale
	}
	return &Service{pointScale: pointScale}
}

// PointIndex walks the question history in order and counts correctly
// answered questions. Passed and wrongly answered questions leave the
// counter unchanged. Returns -1 for a history with no correct answers.
func PointIndex(questions []*model.Question) int {
	index := -1
	for _, question := range questions {
		if question.Passed {
			continue
		}
		if !question.AnsweredCorrectly {
			continue
		}
		index++
	}
	return index
}

// Score returns the prize value for the given question history.
// An index past the end of the ladder is clamped to the top tier.
func (s *Service) Score(questions []*model.Question) int {
	index := PointIndex(questions)
	if index < 0 {
		return 0
	}
	if index >= len(s.pointScale) {
		index = len(s.pointScale) - 1
	}
	return s.pointScale[index]
}

// NextTierValue returns the prize for the next unclaimed tier, used to
// calibrate question difficulty. Past the top of the ladder it wraps back
// to the first tier.
func (s *Service) NextTierValue(questions []*model.Question) int {
	index := PointIndex(questions) + 1
	if index >= len(s.pointScale) {
		return s.pointScale[0]
	}
	return s.pointScale[index]
}

// PointScale returns the configured ladder
func (s *Service) PointScale() []int {
	return s.pointScale
}
