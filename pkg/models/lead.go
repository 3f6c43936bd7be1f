package models

import "github.com/leadpilot/leadpilot/pkg/domain"

// LeadListRequest represents list filters for leads
type LeadListRequest struct {
	Search     string `query:"search"`
	ScoreLabel string `query:"score_label" validate:"omitempty,oneof=Hot Warm Cold"`
	Status     string `query:"status" validate:"omitempty,oneof=New Contacted Qualified Proposal Won Lost"`
	Source     string `query:"source" validate:"omitempty,oneof=Website LinkedIn Referral 'Cold Outreach' Event"`
}

// LeadListResponse represents a list of leads
type LeadListResponse struct {
	Leads []domain.Lead `json:"leads"`
	Total int           `json:"total"`
}

// LeadResponse wraps a single lead
type LeadResponse struct {
	Lead *domain.Lead `json:"lead"`
}

// CreateLeadRequest represents the payload for creating a lead
type CreateLeadRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	Title       string `json:"title"`
	LinkedInURL string `json:"linkedin_url" validate:"omitempty,url"`
	Source      string `json:"lead_source" validate:"omitempty,oneof=Website LinkedIn Referral 'Cold Outreach' Event"`
	Status      string `json:"status" validate:"omitempty,oneof=New Contacted Qualified Proposal Won Lost"`
	Notes       string `json:"notes"`
}

// UpdateLeadRequest represents a partial lead update. Nil fields are left
// unchanged in the record store.
type UpdateLeadRequest struct {
	Name          *string `json:"name"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone"`
	Company       *string `json:"company"`
	Title         *string `json:"title"`
	LinkedInURL   *string `json:"linkedin_url"`
	Source        *string `json:"lead_source" validate:"omitempty,oneof=Website LinkedIn Referral 'Cold Outreach' Event"`
	Status        *string `json:"status" validate:"omitempty,oneof=New Contacted Qualified Proposal Won Lost"`
	Notes         *string `json:"notes"`
	LastContacted *string `json:"last_contacted"`
	NextFollowUp  *string `json:"next_follow_up"`
}

// BulkScoreRequest represents a bulk scoring request
type BulkScoreRequest struct {
	LeadIDs []string `json:"lead_ids" validate:"required,min=1,max=100,dive,required"`
}

// BulkScoreItem is the per-lead result of a bulk scoring run. Failures are
// reported per item and never abort sibling items.
type BulkScoreItem struct {
	ID         string `json:"id"`
	Success    bool   `json:"success"`
	Score      int    `json:"score,omitempty"`
	ScoreLabel string `json:"score_label,omitempty"`
	Error      string `json:"error,omitempty"`
}

// BulkScoreResponse represents a bulk scoring response
type BulkScoreResponse struct {
	Results []BulkScoreItem `json:"results"`
}

// ImportLeadsRequest represents a batch import request
type ImportLeadsRequest struct {
	Leads []CreateLeadRequest `json:"leads" validate:"required,min=1,max=500,dive"`
}

// ImportLeadsResponse represents a batch import response
type ImportLeadsResponse struct {
	Imported []domain.Lead   `json:"imported"`
	Failed   []ImportFailure `json:"failed,omitempty"`
	Count    int             `json:"count"`
}

// ImportFailure reports one lead that could not be imported
type ImportFailure struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Error string `json:"error"`
}

// OutreachRequest represents an outreach generation request
type OutreachRequest struct {
	Type string `json:"type" validate:"required,oneof=email linkedin sms"`
	Tone string `json:"tone" validate:"required,oneof=professional casual friendly"`
}

// CreateActivityRequest represents the payload for logging an activity
type CreateActivityRequest struct {
	Type        string `json:"activity_type" validate:"required,oneof='Email Sent' 'Call Made' 'Meeting Scheduled' 'Proposal Sent' 'Follow Up' 'Note Added'"`
	LeadID      string `json:"lead_id" validate:"required"`
	Description string `json:"description" validate:"required"`
	Outcome     string `json:"outcome" validate:"omitempty,oneof=Positive Neutral Negative 'No Response'"`
}

// ActivityListResponse represents a list of activities
type ActivityListResponse struct {
	Activities []domain.Activity `json:"activities"`
}

// ActivityResponse wraps a single activity
type ActivityResponse struct {
	Activity *domain.Activity `json:"activity"`
}

// ScheduleCallRequest represents a call scheduling request
type ScheduleCallRequest struct {
	LeadID      string `json:"lead_id" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	LeadName    string `json:"lead_name" validate:"required"`
	LeadCompany string `json:"lead_company"`
}

// CallListResponse represents a list of calls
type CallListResponse struct {
	Calls []domain.Call `json:"calls"`
}

// TriggerWorkflowRequest represents a manual workflow trigger request
type TriggerWorkflowRequest struct {
	TriggerType string                 `json:"trigger_type" validate:"required,oneof=hot_lead follow_up cold_nurture call_completed"`
	Data        map[string]interface{} `json:"data"`
}
