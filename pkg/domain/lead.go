package domain

import "time"

// LeadStatus is a pipeline stage. The declared order is the canonical
// pipeline order and must not be reordered.
type LeadStatus string

const (
	StatusNew       LeadStatus = "New"
	StatusContacted LeadStatus = "Contacted"
	StatusQualified LeadStatus = "Qualified"
	StatusProposal  LeadStatus = "Proposal"
	StatusWon       LeadStatus = "Won"
	StatusLost      LeadStatus = "Lost"
)

// PipelineOrder lists every status in canonical pipeline/funnel display order.
var PipelineOrder = []LeadStatus{
	StatusNew,
	StatusContacted,
	StatusQualified,
	StatusProposal,
	StatusWon,
	StatusLost,
}

// Valid reports whether the status is one of the six known stages.
func (s LeadStatus) Valid() bool {
	for _, known := range PipelineOrder {
		if s == known {
			return true
		}
	}
	return false
}

// LeadSource identifies where a lead came from.
type LeadSource string

const (
	SourceWebsite      LeadSource = "Website"
	SourceLinkedIn     LeadSource = "LinkedIn"
	SourceReferral     LeadSource = "Referral"
	SourceColdOutreach LeadSource = "Cold Outreach"
	SourceEvent        LeadSource = "Event"
)

// Sources lists every known lead source.
var Sources = []LeadSource{
	SourceWebsite,
	SourceLinkedIn,
	SourceReferral,
	SourceColdOutreach,
	SourceEvent,
}

// Valid reports whether the source is one of the known values.
func (s LeadSource) Valid() bool {
	for _, known := range Sources {
		if s == known {
			return true
		}
	}
	return false
}

// ScoreLabel is one of the three score buckets.
type ScoreLabel string

const (
	LabelHot  ScoreLabel = "Hot"
	LabelWarm ScoreLabel = "Warm"
	LabelCold ScoreLabel = "Cold"
)

// ScoreLabels lists the three canonical buckets, hottest first.
var ScoreLabels = []ScoreLabel{LabelHot, LabelWarm, LabelCold}

// CallStatus tracks a lead's position in the calling workflow.
type CallStatus string

const (
	CallNotCalled         CallStatus = "Not Called"
	CallScheduled         CallStatus = "Scheduled"
	CallCompleted         CallStatus = "Completed"
	CallNoAnswer          CallStatus = "No Answer"
	CallCallbackRequested CallStatus = "Callback Requested"
)

// Valid reports whether the call status is one of the known values.
func (s CallStatus) Valid() bool {
	switch s {
	case CallNotCalled, CallScheduled, CallCompleted, CallNoAnswer, CallCallbackRequested:
		return true
	}
	return false
}

// ActivityType categorizes a logged interaction.
type ActivityType string

const (
	ActivityEmailSent        ActivityType = "Email Sent"
	ActivityCallMade         ActivityType = "Call Made"
	ActivityMeetingScheduled ActivityType = "Meeting Scheduled"
	ActivityProposalSent     ActivityType = "Proposal Sent"
	ActivityFollowUp         ActivityType = "Follow Up"
	ActivityNoteAdded        ActivityType = "Note Added"
)

// Valid reports whether the activity type is one of the known values.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityEmailSent, ActivityCallMade, ActivityMeetingScheduled,
		ActivityProposalSent, ActivityFollowUp, ActivityNoteAdded:
		return true
	}
	return false
}

// ActivityOutcome records how an interaction went.
type ActivityOutcome string

const (
	OutcomePositive   ActivityOutcome = "Positive"
	OutcomeNeutral    ActivityOutcome = "Neutral"
	OutcomeNegative   ActivityOutcome = "Negative"
	OutcomeNoResponse ActivityOutcome = "No Response"
)

// Lead is a sales prospect tracked through the pipeline. The record store
// assigns the ID and creation timestamp.
type Lead struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Email             string      `json:"email"`
	Phone             string      `json:"phone,omitempty"`
	Company           string      `json:"company,omitempty"`
	Title             string      `json:"title,omitempty"`
	LinkedInURL       string      `json:"linkedin_url,omitempty"`
	Source            LeadSource  `json:"lead_source,omitempty"`
	Status            LeadStatus  `json:"status"`
	Score             *int        `json:"score,omitempty"`
	ScoreLabel        ScoreLabel  `json:"score_label,omitempty"`
	Insights          string      `json:"insights,omitempty"`
	KeyStrengths      []string    `json:"key_strengths,omitempty"`
	Concerns          []string    `json:"concerns,omitempty"`
	SuggestedNextStep string      `json:"suggested_next_step,omitempty"`
	LastContacted     *time.Time  `json:"last_contacted,omitempty"`
	NextFollowUp      *time.Time  `json:"next_follow_up,omitempty"`
	Notes             string      `json:"notes,omitempty"`
	CallStatus        CallStatus  `json:"call_status,omitempty"`
	CallSummary       string      `json:"call_summary,omitempty"`
	CreatedAt         *time.Time  `json:"created_at,omitempty"`
}

// ScoreValue returns the stored score, treating a missing score as 0 (Cold).
func (l *Lead) ScoreValue() int {
	if l.Score == nil {
		return 0
	}
	return *l.Score
}

// Activity is an immutable interaction record linked to exactly one lead.
type Activity struct {
	ID          string          `json:"id"`
	Type        ActivityType    `json:"activity_type"`
	LeadID      string          `json:"lead_id"`
	LeadName    string          `json:"lead_name,omitempty"`
	Description string          `json:"description"`
	Outcome     ActivityOutcome `json:"outcome,omitempty"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
}

// Call represents one telephony session tied to a lead.
type Call struct {
	ID          string     `json:"id"`
	LeadID      string     `json:"lead_id"`
	LeadName    string     `json:"lead_name"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Duration    int        `json:"duration,omitempty"`
	Outcome     string     `json:"outcome,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	Status      CallStatus `json:"status"`
}
