package demo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/leadpilot/leadpilot/pkg/domain"
	"github.com/leadpilot/leadpilot/pkg/scoring"
)

// fixtureSeed keeps demo data stable across restarts.
const fixtureSeed = 42

const (
	seedLeads      = 25
	seedActivities = 40
)

// Store is an in-memory lead store seeded with plausible demo data. It backs
// the whole API when no record-store credentials are configured.
type Store struct {
	mu         sync.RWMutex
	leads      []domain.Lead
	activities []domain.Activity
	calls      []domain.Call
	nextID     int
}

var _ domain.LeadStore = (*Store)(nil)

// NewStore creates a demo store pre-populated with leads, activities and
// calls.
func NewStore() *Store {
	s := &Store{nextID: 1}
	s.seed()
	return s
}

var seedTitles = []string{
	"CEO", "VP of Sales", "VP of Engineering", "Director of Marketing",
	"Director of Operations", "Engineering Manager", "Product Manager",
	"Sales Manager", "Software Engineer", "Account Executive",
}

func (s *Store) seed() {
	faker := gofakeit.New(fixtureSeed)
	now := time.Now()

	for i := 0; i < seedLeads; i++ {
		name := faker.Name()
		company := faker.Company()
		created := now.Add(-time.Duration(faker.Number(1, 90)) * 24 * time.Hour)

		lead := domain.Lead{
			ID:          s.allocID(),
			Name:        name,
			Email:       strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@" + faker.DomainName(),
			Phone:       "+1" + faker.Numerify("##########"),
			Company:     company,
			Title:       seedTitles[faker.Number(0, len(seedTitles)-1)],
			LinkedInURL: "https://linkedin.com/in/" + strings.ToLower(strings.ReplaceAll(name, " ", "-")),
			Source:      domain.Sources[faker.Number(0, len(domain.Sources)-1)],
			Status:      domain.PipelineOrder[faker.Number(0, len(domain.PipelineOrder)-1)],
			Notes:       faker.Sentence(8),
			CreatedAt:   &created,
		}

		// Most demo leads arrive pre-scored, a few stay unscored
		if i%5 != 4 {
			score := faker.Number(15, 95)
			lead.Score = &score
			lead.ScoreLabel = scoring.Bucket(score)
			lead.Insights = fmt.Sprintf("%s at %s shows %s engagement with consistent follow-up potential.",
				lead.Title, company, strings.ToLower(string(lead.ScoreLabel)))
			lead.KeyStrengths = []string{"Decision-making authority", "Active in target market"}
			lead.Concerns = []string{"Budget cycle unclear"}
			lead.SuggestedNextStep = "Schedule a discovery call"
		}

		switch faker.Number(0, 4) {
		case 0:
			lead.CallStatus = domain.CallScheduled
		case 1:
			lead.CallStatus = domain.CallCompleted
			lead.CallSummary = faker.Sentence(10)
		default:
			lead.CallStatus = domain.CallNotCalled
		}

		s.leads = append(s.leads, lead)
	}

	activityTypes := []domain.ActivityType{
		domain.ActivityEmailSent, domain.ActivityCallMade, domain.ActivityMeetingScheduled,
		domain.ActivityProposalSent, domain.ActivityFollowUp, domain.ActivityNoteAdded,
	}
	outcomes := []domain.ActivityOutcome{
		domain.OutcomePositive, domain.OutcomeNeutral, domain.OutcomeNegative, domain.OutcomeNoResponse,
	}
	for i := 0; i < seedActivities; i++ {
		lead := s.leads[faker.Number(0, len(s.leads)-1)]
		created := now.Add(-time.Duration(faker.Number(1, 336)) * time.Hour)
		s.activities = append(s.activities, domain.Activity{
			ID:          fmt.Sprintf("act_demo_%d", i+1),
			Type:        activityTypes[faker.Number(0, len(activityTypes)-1)],
			LeadID:      lead.ID,
			LeadName:    lead.Name,
			Description: faker.Sentence(10),
			Outcome:     outcomes[faker.Number(0, len(outcomes)-1)],
			CreatedAt:   &created,
		})
	}

	for i, lead := range s.leads {
		if lead.CallStatus == domain.CallNotCalled {
			continue
		}
		scheduled := now.Add(time.Duration(faker.Number(-48, 48)) * time.Hour)
		call := domain.Call{
			ID:          fmt.Sprintf("call_demo_%d", i+1),
			LeadID:      lead.ID,
			LeadName:    lead.Name,
			ScheduledAt: &scheduled,
			Status:      lead.CallStatus,
		}
		if lead.CallStatus == domain.CallCompleted {
			completed := scheduled.Add(7 * time.Minute)
			call.CompletedAt = &completed
			call.Duration = faker.Number(120, 900)
			call.Outcome = "qualified"
			call.Summary = lead.CallSummary
		}
		s.calls = append(s.calls, call)
	}
}

func (s *Store) allocID() string {
	id := fmt.Sprintf("rec_demo_%03d", s.nextID)
	s.nextID++
	return id
}

// ListLeads returns leads matching the filter, newest first. All filter
// fields are conjunctive.
func (s *Store) ListLeads(_ context.Context, filter domain.LeadFilter) ([]domain.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.Lead, 0, len(s.leads))
	for _, lead := range s.leads {
		if matches(lead, filter) {
			matched = append(matched, lead)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		ti, tj := matched[i].CreatedAt, matched[j].CreatedAt
		if ti == nil || tj == nil {
			return tj == nil && ti != nil
		}
		return ti.After(*tj)
	})

	if filter.MaxRecords > 0 && len(matched) > filter.MaxRecords {
		matched = matched[:filter.MaxRecords]
	}
	return matched, nil
}

func matches(lead domain.Lead, filter domain.LeadFilter) bool {
	if filter.Search != "" {
		q := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(lead.Name), q) &&
			!strings.Contains(strings.ToLower(lead.Email), q) &&
			!strings.Contains(strings.ToLower(lead.Company), q) {
			return false
		}
	}
	if filter.ScoreLabel != "" && lead.ScoreLabel != filter.ScoreLabel {
		return false
	}
	if filter.Status != "" && lead.Status != filter.Status {
		return false
	}
	if filter.Source != "" && lead.Source != filter.Source {
		return false
	}
	return true
}

// GetLead returns one lead by id.
func (s *Store) GetLead(_ context.Context, id string) (*domain.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, lead := range s.leads {
		if lead.ID == id {
			copied := lead
			return &copied, nil
		}
	}
	return nil, domain.NewNotFoundError("lead")
}

// CreateLead appends a new lead. Status defaults to New.
func (s *Store) CreateLead(_ context.Context, newLead domain.NewLead) (*domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := newLead.Status
	if status == "" {
		status = domain.StatusNew
	}

	now := time.Now()
	lead := domain.Lead{
		ID:          s.allocID(),
		Name:        newLead.Name,
		Email:       newLead.Email,
		Phone:       newLead.Phone,
		Company:     newLead.Company,
		Title:       newLead.Title,
		LinkedInURL: newLead.LinkedInURL,
		Source:      newLead.Source,
		Status:      status,
		Notes:       newLead.Notes,
		CallStatus:  domain.CallNotCalled,
		CreatedAt:   &now,
	}
	s.leads = append(s.leads, lead)

	copied := lead
	return &copied, nil
}

// UpdateLead applies a partial update. Nil patch fields leave stored values
// untouched.
func (s *Store) UpdateLead(_ context.Context, id string, patch domain.LeadPatch) (*domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.leads {
		if s.leads[i].ID != id {
			continue
		}
		applyPatch(&s.leads[i], patch)
		copied := s.leads[i]
		return &copied, nil
	}
	return nil, domain.NewNotFoundError("lead")
}

func applyPatch(lead *domain.Lead, patch domain.LeadPatch) {
	if patch.Name != nil {
		lead.Name = *patch.Name
	}
	if patch.Email != nil {
		lead.Email = *patch.Email
	}
	if patch.Phone != nil {
		lead.Phone = *patch.Phone
	}
	if patch.Company != nil {
		lead.Company = *patch.Company
	}
	if patch.Title != nil {
		lead.Title = *patch.Title
	}
	if patch.LinkedInURL != nil {
		lead.LinkedInURL = *patch.LinkedInURL
	}
	if patch.Source != nil {
		lead.Source = *patch.Source
	}
	if patch.Status != nil {
		lead.Status = *patch.Status
	}
	if patch.Score != nil {
		score := *patch.Score
		lead.Score = &score
	}
	if patch.ScoreLabel != nil {
		lead.ScoreLabel = *patch.ScoreLabel
	}
	if patch.Insights != nil {
		lead.Insights = *patch.Insights
	}
	if patch.KeyStrengths != nil {
		lead.KeyStrengths = patch.KeyStrengths
	}
	if patch.Concerns != nil {
		lead.Concerns = patch.Concerns
	}
	if patch.SuggestedNextStep != nil {
		lead.SuggestedNextStep = *patch.SuggestedNextStep
	}
	if patch.LastContacted != nil {
		if t, err := time.Parse(time.RFC3339, *patch.LastContacted); err == nil {
			lead.LastContacted = &t
		}
	}
	if patch.NextFollowUp != nil {
		if t, err := time.Parse(time.RFC3339, *patch.NextFollowUp); err == nil {
			lead.NextFollowUp = &t
		}
	}
	if patch.Notes != nil {
		lead.Notes = *patch.Notes
	}
	if patch.CallStatus != nil {
		lead.CallStatus = *patch.CallStatus
	}
	if patch.CallSummary != nil {
		lead.CallSummary = *patch.CallSummary
	}
}

// DeleteLead removes a lead by id.
func (s *Store) DeleteLead(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.leads {
		if s.leads[i].ID == id {
			s.leads = append(s.leads[:i], s.leads[i+1:]...)
			return nil
		}
	}
	return domain.NewNotFoundError("lead")
}

// ListActivities returns activities, optionally filtered to one lead, newest
// first.
func (s *Store) ListActivities(_ context.Context, leadID string) ([]domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.Activity, 0, len(s.activities))
	for _, act := range s.activities {
		if leadID == "" || act.LeadID == leadID {
			matched = append(matched, act)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		ti, tj := matched[i].CreatedAt, matched[j].CreatedAt
		if ti == nil || tj == nil {
			return tj == nil && ti != nil
		}
		return ti.After(*tj)
	})
	return matched, nil
}

// CreateActivity logs a new activity against a lead.
func (s *Store) CreateActivity(_ context.Context, newActivity domain.NewActivity) (*domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	leadName := ""
	for _, lead := range s.leads {
		if lead.ID == newActivity.LeadID {
			leadName = lead.Name
			break
		}
	}
	if leadName == "" {
		return nil, domain.NewNotFoundError("lead")
	}

	now := time.Now()
	activity := domain.Activity{
		ID:          fmt.Sprintf("act_demo_%d", len(s.activities)+1),
		Type:        newActivity.Type,
		LeadID:      newActivity.LeadID,
		LeadName:    leadName,
		Description: newActivity.Description,
		Outcome:     newActivity.Outcome,
		CreatedAt:   &now,
	}
	s.activities = append(s.activities, activity)

	copied := activity
	return &copied, nil
}

// Calls returns the seeded demo calls, for the demo telephony client.
func (s *Store) Calls() []domain.Call {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// AddCall records a demo-scheduled call.
func (s *Store) AddCall(call domain.Call) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}
