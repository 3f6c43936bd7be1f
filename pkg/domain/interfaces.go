package domain

import "context"

// LeadFilter holds the optional, conjunctive list filters. Empty fields are
// ignored; when several are set they are ANDed together.
type LeadFilter struct {
	Search     string
	ScoreLabel ScoreLabel
	Status     LeadStatus
	Source     LeadSource
	MaxRecords int
}

// LeadPatch holds a partial lead update. Nil pointers leave the stored value
// untouched.
type LeadPatch struct {
	Name              *string
	Email             *string
	Phone             *string
	Company           *string
	Title             *string
	LinkedInURL       *string
	Source            *LeadSource
	Status            *LeadStatus
	Score             *int
	ScoreLabel        *ScoreLabel
	Insights          *string
	KeyStrengths      []string
	Concerns          []string
	SuggestedNextStep *string
	LastContacted     *string
	NextFollowUp      *string
	Notes             *string
	CallStatus        *CallStatus
	CallSummary       *string
}

// NewLead holds the fields accepted at lead creation.
type NewLead struct {
	Name        string
	Email       string
	Phone       string
	Company     string
	Title       string
	LinkedInURL string
	Source      LeadSource
	Status      LeadStatus
	Notes       string
}

// NewActivity holds the fields accepted when logging an activity.
type NewActivity struct {
	Type        ActivityType
	LeadID      string
	Description string
	Outcome     ActivityOutcome
}

// LeadStore defines record-store operations for leads and activities.
// Field-level mapping to the store's named-column representation is the
// store's responsibility, not the caller's.
type LeadStore interface {
	ListLeads(ctx context.Context, filter LeadFilter) ([]Lead, error)
	GetLead(ctx context.Context, id string) (*Lead, error)
	CreateLead(ctx context.Context, lead NewLead) (*Lead, error)
	UpdateLead(ctx context.Context, id string, patch LeadPatch) (*Lead, error)
	DeleteLead(ctx context.Context, id string) error

	ListActivities(ctx context.Context, leadID string) ([]Activity, error)
	CreateActivity(ctx context.Context, activity NewActivity) (*Activity, error)
}

// ScoreResult is what the classification collaborator returns for one lead.
// The label is always derived locally from the score, never taken from the
// classifier.
type ScoreResult struct {
	Score             int        `json:"score"`
	ScoreLabel        ScoreLabel `json:"score_label"`
	Insights          string     `json:"insights"`
	KeyStrengths      []string   `json:"key_strengths"`
	Concerns          []string   `json:"concerns"`
	SuggestedNextStep string     `json:"suggested_next_step"`
}

// Scorer defines the lead classification collaborator.
type Scorer interface {
	ScoreLead(ctx context.Context, lead *Lead) (*ScoreResult, error)
}

// OutreachChannel selects the message format.
type OutreachChannel string

const (
	ChannelEmail    OutreachChannel = "email"
	ChannelLinkedIn OutreachChannel = "linkedin"
	ChannelSMS      OutreachChannel = "sms"
)

// Valid reports whether the channel is one of the known values.
func (c OutreachChannel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelLinkedIn, ChannelSMS:
		return true
	}
	return false
}

// OutreachTone selects the writing style.
type OutreachTone string

const (
	ToneProfessional OutreachTone = "professional"
	ToneCasual       OutreachTone = "casual"
	ToneFriendly     OutreachTone = "friendly"
)

// Valid reports whether the tone is one of the known values.
func (t OutreachTone) Valid() bool {
	switch t {
	case ToneProfessional, ToneCasual, ToneFriendly:
		return true
	}
	return false
}

// OutreachResult is a generated message. Subject is only set for email.
type OutreachResult struct {
	Subject string          `json:"subject,omitempty"`
	Message string          `json:"message"`
	Channel OutreachChannel `json:"type"`
	Tone    OutreachTone    `json:"tone"`
}

// OutreachGenerator defines the message-generation collaborator.
type OutreachGenerator interface {
	Generate(ctx context.Context, lead *Lead, channel OutreachChannel, tone OutreachTone) (*OutreachResult, error)
}

// ScheduledCall is the telephony vendor's acknowledgement of a scheduling
// request.
type ScheduledCall struct {
	CallID string `json:"call_id"`
	Status string `json:"status"`
}

// Telephony defines the voice-call scheduling collaborator.
type Telephony interface {
	ScheduleCall(ctx context.Context, phoneNumber, leadName, leadCompany string) (*ScheduledCall, error)
	ListCalls(ctx context.Context) ([]Call, error)
}
