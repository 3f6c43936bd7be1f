package demo

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/leadpilot/leadpilot/pkg/domain"
	"github.com/leadpilot/leadpilot/pkg/scoring"
)

// Scorer fakes lead classification without calling a model. Scores land in
// the 40-89 range so demo data shows a mix of Warm and Hot leads.
type Scorer struct {
	faker *gofakeit.Faker
}

var _ domain.Scorer = (*Scorer)(nil)

// NewScorer creates a demo scorer.
func NewScorer() *Scorer {
	return &Scorer{faker: gofakeit.New(0)}
}

// ScoreLead produces a plausible scoring result for the lead.
func (s *Scorer) ScoreLead(_ context.Context, lead *domain.Lead) (*domain.ScoreResult, error) {
	score := s.faker.Number(40, 89)
	label := scoring.Bucket(score)

	potential := "limited"
	switch label {
	case domain.LabelHot:
		potential = "strong"
	case domain.LabelWarm:
		potential = "moderate"
	}

	role := "Their profile"
	if lead.Title != "" {
		role = fmt.Sprintf("Their role as %s", lead.Title)
	}
	company := lead.Company
	if company == "" {
		company = "their organization"
	}
	authority := "some influence in the buying process"
	if label == domain.LabelHot {
		authority = "high buying authority"
	}

	nextStep := "Send educational content and follow up in 5 days"
	if label == domain.LabelHot {
		nextStep = "Schedule a demo call this week"
	}

	strengths := lead.KeyStrengths
	if len(strengths) == 0 {
		strengths = []string{"Profile data available"}
	}
	concerns := lead.Concerns
	if len(concerns) == 0 {
		concerns = []string{"Needs further qualification"}
	}

	return &domain.ScoreResult{
		Score:      score,
		ScoreLabel: label,
		Insights: fmt.Sprintf("Re-scored: %s shows %s potential based on updated analysis. %s at %s indicates %s.",
			lead.Name, potential, role, company, authority),
		KeyStrengths:      strengths,
		Concerns:          concerns,
		SuggestedNextStep: nextStep,
	}, nil
}
