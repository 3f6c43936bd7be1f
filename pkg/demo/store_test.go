package demo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadpilot/leadpilot/pkg/domain"
	"github.com/leadpilot/leadpilot/pkg/scoring"
)

func TestNewStore_SeedsFixtures(t *testing.T) {
	store := NewStore()

	leads, err := store.ListLeads(context.Background(), domain.LeadFilter{})
	require.NoError(t, err)
	assert.Len(t, leads, seedLeads)

	activities, err := store.ListActivities(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, activities, seedActivities)
}

func TestNewStore_Deterministic(t *testing.T) {
	a, _ := NewStore().ListLeads(context.Background(), domain.LeadFilter{})
	b, _ := NewStore().ListLeads(context.Background(), domain.LeadFilter{})

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Name, b[i].Name)
		assert.Equal(t, a[i].Email, b[i].Email)
		assert.Equal(t, a[i].Status, b[i].Status)
	}
}

func TestSeed_ScoreLabelsConsistentWithScores(t *testing.T) {
	leads, _ := NewStore().ListLeads(context.Background(), domain.LeadFilter{})

	for _, lead := range leads {
		if lead.Score == nil {
			assert.Empty(t, lead.ScoreLabel)
			continue
		}
		assert.Equal(t, scoring.Bucket(*lead.Score), lead.ScoreLabel, "lead %s", lead.ID)
	}
}

func TestListLeads_NewestFirst(t *testing.T) {
	leads, _ := NewStore().ListLeads(context.Background(), domain.LeadFilter{})

	for i := 1; i < len(leads); i++ {
		prev, cur := leads[i-1].CreatedAt, leads[i].CreatedAt
		require.NotNil(t, prev)
		require.NotNil(t, cur)
		assert.False(t, cur.After(*prev), "leads must be sorted newest first")
	}
}

func TestListLeads_ConjunctiveFilters(t *testing.T) {
	store := NewStore()

	all, _ := store.ListLeads(context.Background(), domain.LeadFilter{})
	require.NotEmpty(t, all)
	target := all[0]

	leads, err := store.ListLeads(context.Background(), domain.LeadFilter{
		Status: target.Status,
		Source: target.Source,
	})
	require.NoError(t, err)
	require.NotEmpty(t, leads)
	for _, lead := range leads {
		assert.Equal(t, target.Status, lead.Status)
		assert.Equal(t, target.Source, lead.Source)
	}
}

func TestListLeads_SearchMatchesNameEmailCompany(t *testing.T) {
	store := NewStore()
	all, _ := store.ListLeads(context.Background(), domain.LeadFilter{})
	target := all[0]

	leads, err := store.ListLeads(context.Background(), domain.LeadFilter{Search: target.Name})
	require.NoError(t, err)
	require.NotEmpty(t, leads)
	assert.Equal(t, target.ID, leads[0].ID)
}

func TestListLeads_MaxRecords(t *testing.T) {
	leads, err := NewStore().ListLeads(context.Background(), domain.LeadFilter{MaxRecords: 5})
	require.NoError(t, err)
	assert.Len(t, leads, 5)
}

func TestCreateLead_Defaults(t *testing.T) {
	store := NewStore()

	lead, err := store.CreateLead(context.Background(), domain.NewLead{
		Name:  "Ada Chen",
		Email: "ada@acme.com",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, domain.StatusNew, lead.Status)
	assert.Equal(t, domain.CallNotCalled, lead.CallStatus)
	require.NotNil(t, lead.CreatedAt)

	fetched, err := store.GetLead(context.Background(), lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Chen", fetched.Name)
}

func TestGetLead_NotFound(t *testing.T) {
	_, err := NewStore().GetLead(context.Background(), "rec_nope")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestUpdateLead_PartialPatch(t *testing.T) {
	store := NewStore()
	lead, _ := store.CreateLead(context.Background(), domain.NewLead{Name: "Ada", Email: "ada@acme.com"})

	score := 88
	label := domain.LabelHot
	when := "2026-08-15T10:00:00Z"
	updated, err := store.UpdateLead(context.Background(), lead.ID, domain.LeadPatch{
		Score:         &score,
		ScoreLabel:    &label,
		LastContacted: &when,
	})
	require.NoError(t, err)

	require.NotNil(t, updated.Score)
	assert.Equal(t, 88, *updated.Score)
	assert.Equal(t, domain.LabelHot, updated.ScoreLabel)
	require.NotNil(t, updated.LastContacted)
	assert.Equal(t, "Ada", updated.Name, "unpatched fields stay untouched")
}

func TestDeleteLead(t *testing.T) {
	store := NewStore()
	lead, _ := store.CreateLead(context.Background(), domain.NewLead{Name: "Ada", Email: "ada@acme.com"})

	require.NoError(t, store.DeleteLead(context.Background(), lead.ID))

	_, err := store.GetLead(context.Background(), lead.ID)
	assert.True(t, domain.IsNotFound(err))

	err = store.DeleteLead(context.Background(), lead.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestCreateActivity_RequiresExistingLead(t *testing.T) {
	store := NewStore()

	_, err := store.CreateActivity(context.Background(), domain.NewActivity{
		Type:        domain.ActivityCallMade,
		LeadID:      "rec_nope",
		Description: "ghost call",
	})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestCreateActivity_DenormalizesLeadName(t *testing.T) {
	store := NewStore()
	lead, _ := store.CreateLead(context.Background(), domain.NewLead{Name: "Ada Chen", Email: "ada@acme.com"})

	activity, err := store.CreateActivity(context.Background(), domain.NewActivity{
		Type:        domain.ActivityEmailSent,
		LeadID:      lead.ID,
		Description: "Sent intro email",
		Outcome:     domain.OutcomePositive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Chen", activity.LeadName)

	activities, err := store.ListActivities(context.Background(), lead.ID)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "Sent intro email", activities[0].Description)
}

func TestScorer_ProducesConsistentLabel(t *testing.T) {
	scorer := NewScorer()

	for i := 0; i < 20; i++ {
		result, err := scorer.ScoreLead(context.Background(), &domain.Lead{ID: "rec1", Name: "Ada"})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Score, 40)
		assert.LessOrEqual(t, result.Score, 89)
		assert.Equal(t, scoring.Bucket(result.Score), result.ScoreLabel)
		assert.NotEmpty(t, result.Insights)
		assert.NotEmpty(t, result.SuggestedNextStep)
	}
}

func TestTelephony_ScheduleAndList(t *testing.T) {
	store := NewStore()
	tel := NewTelephony(store)

	before := len(store.Calls())

	scheduled, err := tel.ScheduleCall(context.Background(), "+15551234567", "Ada Chen", "Acme Corp")
	require.NoError(t, err)
	assert.NotEmpty(t, scheduled.CallID)
	assert.Equal(t, "scheduled", scheduled.Status)

	calls, err := tel.ListCalls(context.Background())
	require.NoError(t, err)
	assert.Len(t, calls, before+1)
}

func TestOutreach_TemplatesPerChannel(t *testing.T) {
	gen := NewOutreach()
	lead := &domain.Lead{ID: "rec1", Name: "Ada Chen", Company: "Acme Corp"}

	email, err := gen.Generate(context.Background(), lead, domain.ChannelEmail, domain.ToneProfessional)
	require.NoError(t, err)
	assert.NotEmpty(t, email.Subject)
	assert.Contains(t, email.Message, "Ada")

	sms, err := gen.Generate(context.Background(), lead, domain.ChannelSMS, domain.ToneCasual)
	require.NoError(t, err)
	assert.Empty(t, sms.Subject)
	assert.LessOrEqual(t, len(sms.Message), 160)
}
