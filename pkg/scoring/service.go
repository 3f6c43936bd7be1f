package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/leadpilot/leadpilot/pkg/ai/llm"
	"github.com/leadpilot/leadpilot/pkg/domain"
	"github.com/leadpilot/leadpilot/pkg/models"
)

// bulkConcurrency bounds how many leads are scored at once during a bulk run.
const bulkConcurrency = 4

const scoringSystemPrompt = `You are an expert B2B sales lead scoring assistant. Analyze the provided lead information and return a JSON object with the following fields:
- score: number between 0-100
- insights: 2-3 sentence analysis of the lead quality
- keyStrengths: array of 2-4 specific strengths
- concerns: array of 0-3 specific concerns
- suggestedNextStep: one specific actionable recommendation

Scoring criteria (weight each appropriately):
1. Title/Seniority: C-suite/VP (30pts), Director (20pts), Manager (10pts), Individual (5pts)
2. Company: Enterprise 500+ (25pts), Mid-market (15pts), Small business (10pts), No company/Freelance (2pts)
3. Lead Source: Referral (20pts), Event (15pts), LinkedIn (12pts), Website (10pts), Cold Outreach (5pts)
4. Email Domain: Corporate (15pts), Personal/Gmail etc (3pts)
5. Profile Completeness: Full profile (10pts), Partial (5pts), Minimal (2pts)

Return ONLY valid JSON, no other text.`

// LLMScorer implements lead classification on top of a chat-completion model.
type LLMScorer struct {
	llm    llm.Client
	logger *log.Logger
}

var _ domain.Scorer = (*LLMScorer)(nil)

// NewLLMScorer creates a new LLM-backed scorer.
func NewLLMScorer(client llm.Client, logger *log.Logger) *LLMScorer {
	if logger == nil {
		logger = log.Default()
	}
	return &LLMScorer{llm: client, logger: logger}
}

// ScoreLead asks the model to grade one lead. The returned label is always
// derived from the clamped score, never taken from the model output.
func (s *LLMScorer) ScoreLead(ctx context.Context, lead *domain.Lead) (*domain.ScoreResult, error) {
	s.logger.Printf("🔍 Scorer: scoring lead %s (%s)", lead.ID, lead.Name)

	content, err := s.llm.Complete(ctx, leadInfo(lead), scoringSystemPrompt)
	if err != nil {
		// A missing credential is a configuration problem, not a vendor outage.
		if domain.IsNotConfigured(err) {
			return nil, err
		}
		return nil, domain.NewUpstreamError("lead scoring failed", err)
	}

	payload, ok := extractJSON(content)
	if !ok {
		return nil, domain.NewUpstreamError("failed to parse scoring response", fmt.Errorf("no JSON object in model output"))
	}

	var raw struct {
		Score             float64  `json:"score"`
		Insights          string   `json:"insights"`
		KeyStrengths      []string `json:"keyStrengths"`
		Concerns          []string `json:"concerns"`
		SuggestedNextStep string   `json:"suggestedNextStep"`
	}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, domain.NewUpstreamError("failed to parse scoring response", err)
	}

	score := ClampScore(int(raw.Score))

	result := &domain.ScoreResult{
		Score:             score,
		ScoreLabel:        Bucket(score),
		Insights:          cleanString(raw.Insights),
		KeyStrengths:      cleanStrings(raw.KeyStrengths),
		Concerns:          cleanStrings(raw.Concerns),
		SuggestedNextStep: cleanString(raw.SuggestedNextStep),
	}
	if result.SuggestedNextStep == "" {
		result.SuggestedNextStep = "Follow up with more information"
	}

	s.logger.Printf("✅ Scorer: lead %s scored %d (%s)", lead.ID, result.Score, result.ScoreLabel)
	return result, nil
}

func leadInfo(lead *domain.Lead) string {
	return fmt.Sprintf(`Lead Information:
- Name: %s
- Email: %s
- Company: %s
- Title: %s
- Phone: %s
- LinkedIn: %s
- Lead Source: %s
- Notes: %s`,
		orDefault(lead.Name, "Unknown"),
		orDefault(lead.Email, "Unknown"),
		orDefault(lead.Company, "Not provided"),
		orDefault(lead.Title, "Not provided"),
		orDefault(lead.Phone, "Not provided"),
		orDefault(lead.LinkedInURL, "Not provided"),
		orDefault(string(lead.Source), "Not provided"),
		orDefault(lead.Notes, "None"))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// extractJSON pulls the outermost {...} object out of a model reply that may
// be wrapped in prose or a code fence.
func extractJSON(content string) (string, bool) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return content[start : end+1], true
}

// cleanString strips the stray quotes models sometimes wrap around string
// values.
func cleanString(s string) string {
	return strings.TrimSpace(strings.Trim(s, `"'`))
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, cleanString(s))
	}
	return out
}

// Service coordinates scoring against the record store.
type Service struct {
	store  domain.LeadStore
	scorer domain.Scorer
	logger *log.Logger
}

// NewService creates a new scoring service.
func NewService(store domain.LeadStore, scorer domain.Scorer, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{store: store, scorer: scorer, logger: logger}
}

// ScoreAndStore scores one lead and persists the result.
func (s *Service) ScoreAndStore(ctx context.Context, id string) (*domain.Lead, *domain.ScoreResult, error) {
	lead, err := s.store.GetLead(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.scorer.ScoreLead(ctx, lead)
	if err != nil {
		return nil, nil, err
	}

	updated, err := s.store.UpdateLead(ctx, id, domain.LeadPatch{
		Score:             &result.Score,
		ScoreLabel:        &result.ScoreLabel,
		Insights:          &result.Insights,
		KeyStrengths:      result.KeyStrengths,
		Concerns:          result.Concerns,
		SuggestedNextStep: &result.SuggestedNextStep,
	})
	if err != nil {
		return nil, nil, err
	}

	return updated, result, nil
}

// BulkScore scores a batch of leads concurrently. Each lead succeeds or fails
// on its own; one bad lead never aborts the rest. Results come back in the
// same order as the input ids.
func (s *Service) BulkScore(ctx context.Context, ids []string) []models.BulkScoreItem {
	results := make([]models.BulkScoreItem, len(ids))

	var g errgroup.Group
	g.SetLimit(bulkConcurrency)

	for i, id := range ids {
		g.Go(func() error {
			_, result, err := s.ScoreAndStore(ctx, id)
			if err != nil {
				s.logger.Printf("⚠️ Scorer: bulk item %s failed: %v", id, err)
				results[i] = models.BulkScoreItem{ID: id, Error: err.Error()}
				return nil
			}
			results[i] = models.BulkScoreItem{
				ID:         id,
				Success:    true,
				Score:      result.Score,
				ScoreLabel: string(result.ScoreLabel),
			}
			return nil
		})
	}

	// Goroutines report failures per item, never as errors.
	_ = g.Wait()

	return results
}
