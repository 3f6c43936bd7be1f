package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/leadpilot/leadpilot/pkg/domain"
)

const defaultBaseURL = "https://api.airtable.com"

// LabelResolver reconciles a score label against the store's accepted
// vocabulary before it is written.
type LabelResolver interface {
	Resolve(ctx context.Context, candidate string) string
}

// Config for the Airtable client.
type Config struct {
	APIKey          string
	BaseID          string
	LeadsTable      string // default: Leads
	ActivitiesTable string // default: Activities
	BaseURL         string // overridable for tests
}

// Client talks to the Airtable REST and metadata APIs. It owns the mapping
// between the domain model and Airtable's named-column representation.
type Client struct {
	httpClient      *http.Client
	apiKey          string
	baseID          string
	baseURL         string
	leadsTable      string
	activitiesTable string
	resolver        LabelResolver
}

var _ domain.LeadStore = (*Client)(nil)

// NewClient creates a new Airtable client.
func NewClient(cfg Config) *Client {
	if cfg.LeadsTable == "" {
		cfg.LeadsTable = "Leads"
	}
	if cfg.ActivitiesTable == "" {
		cfg.ActivitiesTable = "Activities"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiKey:          cfg.APIKey,
		baseID:          cfg.BaseID,
		baseURL:         cfg.BaseURL,
		leadsTable:      cfg.LeadsTable,
		activitiesTable: cfg.ActivitiesTable,
	}
}

// SetLabelResolver installs the label resolver. Set after construction
// because the resolver reads its vocabulary through this client.
func (c *Client) SetLabelResolver(r LabelResolver) {
	c.resolver = r
}

// record is Airtable's wire representation of one row.
type record struct {
	ID          string                 `json:"id"`
	CreatedTime string                 `json:"createdTime,omitempty"`
	Fields      map[string]interface{} `json:"fields"`
}

type recordList struct {
	Records []record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ListLeads lists leads matching the filter, newest first. Airtable pages at
// 100 records, so the offset cursor is followed until MaxRecords is reached
// or the table is exhausted.
func (c *Client) ListLeads(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error) {
	query := url.Values{}
	if formula := BuildLeadFormula(c.resolveFilter(ctx, filter)); formula != "" {
		query.Set("filterByFormula", formula)
	}
	query.Set("sort[0][field]", "Created")
	query.Set("sort[0][direction]", "desc")

	maxRecords := filter.MaxRecords
	if maxRecords <= 0 {
		maxRecords = 100
	}

	leads := []domain.Lead{}
	for len(leads) < maxRecords {
		pageSize := maxRecords - len(leads)
		if pageSize > 100 {
			pageSize = 100
		}
		query.Set("pageSize", strconv.Itoa(pageSize))

		var list recordList
		if err := c.do(ctx, http.MethodGet, c.tablePath(c.leadsTable), query, nil, &list); err != nil {
			return nil, err
		}
		for _, rec := range list.Records {
			leads = append(leads, recordToLead(rec))
		}

		if list.Offset == "" || len(list.Records) == 0 {
			break
		}
		query.Set("offset", list.Offset)
	}
	return leads, nil
}

// GetLead retrieves one lead by id.
func (c *Client) GetLead(ctx context.Context, id string) (*domain.Lead, error) {
	var rec record
	if err := c.do(ctx, http.MethodGet, c.tablePath(c.leadsTable)+"/"+url.PathEscape(id), nil, nil, &rec); err != nil {
		return nil, err
	}
	lead := recordToLead(rec)
	return &lead, nil
}

// CreateLead creates a lead. Status defaults to New.
func (c *Client) CreateLead(ctx context.Context, lead domain.NewLead) (*domain.Lead, error) {
	fields := map[string]interface{}{
		"Name":  lead.Name,
		"Email": lead.Email,
	}
	setIfNotEmpty(fields, "Phone", lead.Phone)
	setIfNotEmpty(fields, "Company", lead.Company)
	setIfNotEmpty(fields, "Title", lead.Title)
	setIfNotEmpty(fields, "LinkedIn URL", lead.LinkedInURL)
	setIfNotEmpty(fields, "Lead Source", string(lead.Source))
	setIfNotEmpty(fields, "Notes", lead.Notes)

	status := lead.Status
	if status == "" {
		status = domain.StatusNew
	}
	fields["Status"] = string(status)

	var rec record
	if err := c.do(ctx, http.MethodPost, c.tablePath(c.leadsTable), nil, record{Fields: fields}, &rec); err != nil {
		return nil, err
	}
	created := recordToLead(rec)
	return &created, nil
}

// UpdateLead applies a partial update to a lead.
func (c *Client) UpdateLead(ctx context.Context, id string, patch domain.LeadPatch) (*domain.Lead, error) {
	fields := map[string]interface{}{}
	setPtr(fields, "Name", patch.Name)
	setPtr(fields, "Email", patch.Email)
	setPtr(fields, "Phone", patch.Phone)
	setPtr(fields, "Company", patch.Company)
	setPtr(fields, "Title", patch.Title)
	setPtr(fields, "LinkedIn URL", patch.LinkedInURL)
	setPtr(fields, "Notes", patch.Notes)
	setPtr(fields, "Suggested Next Step", patch.SuggestedNextStep)
	setPtr(fields, "AI Insights", patch.Insights)
	setPtr(fields, "Last Contacted", patch.LastContacted)
	setPtr(fields, "Next Follow Up", patch.NextFollowUp)
	setPtr(fields, "Vapi Call Summary", patch.CallSummary)

	if patch.Source != nil {
		fields["Lead Source"] = string(*patch.Source)
	}
	if patch.Status != nil {
		fields["Status"] = string(*patch.Status)
	}
	if patch.CallStatus != nil {
		fields["Vapi Call Status"] = string(*patch.CallStatus)
	}
	if patch.Score != nil {
		fields["AI Score"] = *patch.Score
	}
	if patch.ScoreLabel != nil {
		fields["AI Score Label"] = c.resolveLabel(ctx, string(*patch.ScoreLabel))
	}
	if patch.KeyStrengths != nil {
		fields["Key Strengths"] = marshalList(patch.KeyStrengths)
	}
	if patch.Concerns != nil {
		fields["Concerns"] = marshalList(patch.Concerns)
	}

	var rec record
	if err := c.do(ctx, http.MethodPatch, c.tablePath(c.leadsTable)+"/"+url.PathEscape(id), nil, record{Fields: fields}, &rec); err != nil {
		return nil, err
	}
	updated := recordToLead(rec)
	return &updated, nil
}

// DeleteLead deletes a lead by id.
func (c *Client) DeleteLead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.tablePath(c.leadsTable)+"/"+url.PathEscape(id), nil, nil, nil)
}

// ListActivities lists activities, newest first, optionally filtered by the
// linked lead.
func (c *Client) ListActivities(ctx context.Context, leadID string) ([]domain.Activity, error) {
	query := url.Values{}
	query.Set("sort[0][field]", "Created")
	query.Set("sort[0][direction]", "desc")
	if formula := BuildActivityFormula(leadID); formula != "" {
		query.Set("filterByFormula", formula)
	}

	var list recordList
	if err := c.do(ctx, http.MethodGet, c.tablePath(c.activitiesTable), query, nil, &list); err != nil {
		return nil, err
	}

	activities := make([]domain.Activity, 0, len(list.Records))
	for _, rec := range list.Records {
		activities = append(activities, recordToActivity(rec))
	}
	return activities, nil
}

// CreateActivity logs a new activity against a lead.
func (c *Client) CreateActivity(ctx context.Context, activity domain.NewActivity) (*domain.Activity, error) {
	fields := map[string]interface{}{
		"Activity Type": string(activity.Type),
		"Lead":          []string{activity.LeadID},
		"Description":   activity.Description,
	}
	if activity.Outcome != "" {
		fields["Outcome"] = string(activity.Outcome)
	}

	var rec record
	if err := c.do(ctx, http.MethodPost, c.tablePath(c.activitiesTable), nil, record{Fields: fields}, &rec); err != nil {
		return nil, err
	}
	created := recordToActivity(rec)
	return &created, nil
}

// ScoreLabelOptions fetches the accepted "AI Score Label" select options via
// the metadata API. An empty result means the vocabulary is unavailable.
func (c *Client) ScoreLabelOptions(ctx context.Context) ([]string, error) {
	var meta struct {
		Tables []struct {
			Name   string `json:"name"`
			Fields []struct {
				Name    string `json:"name"`
				Options struct {
					Choices []struct {
						Name string `json:"name"`
					} `json:"choices"`
				} `json:"options"`
			} `json:"fields"`
		} `json:"tables"`
	}

	path := "/v0/meta/bases/" + url.PathEscape(c.baseID) + "/tables"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &meta); err != nil {
		return nil, err
	}

	for _, table := range meta.Tables {
		if table.Name != c.leadsTable {
			continue
		}
		for _, field := range table.Fields {
			if field.Name != "AI Score Label" {
				continue
			}
			options := make([]string, 0, len(field.Options.Choices))
			for _, choice := range field.Options.Choices {
				options = append(options, choice.Name)
			}
			return options, nil
		}
	}
	return nil, nil
}

// resolveFilter reconciles the canonical score label in a filter against the
// store's vocabulary so the formula matches the stored spelling.
func (c *Client) resolveFilter(ctx context.Context, filter domain.LeadFilter) domain.LeadFilter {
	if filter.ScoreLabel != "" && c.resolver != nil {
		filter.ScoreLabel = domain.ScoreLabel(c.resolver.Resolve(ctx, string(filter.ScoreLabel)))
	}
	return filter
}

func (c *Client) resolveLabel(ctx context.Context, label string) string {
	if c.resolver != nil {
		return c.resolver.Resolve(ctx, label)
	}
	return label
}

func (c *Client) tablePath(table string) string {
	return "/v0/" + url.PathEscape(c.baseID) + "/" + url.PathEscape(table)
}

// do executes one API request and decodes the response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	if c.apiKey == "" || c.baseID == "" {
		return domain.NewNotConfiguredError("Airtable")
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewUpstreamError("Airtable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.NewNotFoundError("record")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Message != "" {
			return domain.NewUpstreamError("Airtable", fmt.Errorf("status %d: %s", resp.StatusCode, apiErr.Error.Message))
		}
		return domain.NewUpstreamError("Airtable", fmt.Errorf("status %d", resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewUpstreamError("Airtable", fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// Field mapping helpers

func recordToLead(rec record) domain.Lead {
	lead := domain.Lead{
		ID:                rec.ID,
		Name:              fieldString(rec.Fields, "Name"),
		Email:             fieldString(rec.Fields, "Email"),
		Phone:             fieldString(rec.Fields, "Phone"),
		Company:           fieldString(rec.Fields, "Company"),
		Title:             fieldString(rec.Fields, "Title"),
		LinkedInURL:       fieldString(rec.Fields, "LinkedIn URL"),
		Source:            domain.LeadSource(fieldString(rec.Fields, "Lead Source")),
		Status:            domain.LeadStatus(fieldString(rec.Fields, "Status")),
		ScoreLabel:        domain.ScoreLabel(fieldString(rec.Fields, "AI Score Label")),
		Insights:          fieldString(rec.Fields, "AI Insights"),
		KeyStrengths:      fieldStringList(rec.Fields, "Key Strengths"),
		Concerns:          fieldStringList(rec.Fields, "Concerns"),
		SuggestedNextStep: fieldString(rec.Fields, "Suggested Next Step"),
		Notes:             fieldString(rec.Fields, "Notes"),
		CallStatus:        domain.CallStatus(fieldString(rec.Fields, "Vapi Call Status")),
		CallSummary:       fieldString(rec.Fields, "Vapi Call Summary"),
	}

	if lead.Status == "" {
		lead.Status = domain.StatusNew
	}
	if score, ok := fieldInt(rec.Fields, "AI Score"); ok {
		lead.Score = &score
	}
	lead.LastContacted = fieldTime(rec.Fields, "Last Contacted")
	lead.NextFollowUp = fieldTime(rec.Fields, "Next Follow Up")
	if created := fieldTime(rec.Fields, "Created"); created != nil {
		lead.CreatedAt = created
	} else if t, err := time.Parse(time.RFC3339, rec.CreatedTime); err == nil {
		lead.CreatedAt = &t
	}

	return lead
}

func recordToActivity(rec record) domain.Activity {
	activity := domain.Activity{
		ID:          rec.ID,
		Type:        domain.ActivityType(fieldString(rec.Fields, "Activity Type")),
		Description: fieldString(rec.Fields, "Description"),
		Outcome:     domain.ActivityOutcome(fieldString(rec.Fields, "Outcome")),
	}

	// The Lead column is a linked-record array holding exactly one id.
	if linked, ok := rec.Fields["Lead"].([]interface{}); ok && len(linked) > 0 {
		if id, ok := linked[0].(string); ok {
			activity.LeadID = id
		}
	}

	if created := fieldTime(rec.Fields, "Created"); created != nil {
		activity.CreatedAt = created
	} else if t, err := time.Parse(time.RFC3339, rec.CreatedTime); err == nil {
		activity.CreatedAt = &t
	}

	return activity
}

func fieldString(fields map[string]interface{}, name string) string {
	if v, ok := fields[name].(string); ok {
		return v
	}
	return ""
}

func fieldInt(fields map[string]interface{}, name string) (int, bool) {
	if v, ok := fields[name].(float64); ok {
		return int(v), true
	}
	return 0, false
}

func fieldTime(fields map[string]interface{}, name string) *time.Time {
	raw := fieldString(fields, name)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// fieldStringList decodes a JSON-encoded string array column.
func fieldStringList(fields map[string]interface{}, name string) []string {
	raw := fieldString(fields, name)
	if raw == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil
	}
	return list
}

func marshalList(list []string) string {
	raw, _ := json.Marshal(list)
	return string(raw)
}

func setIfNotEmpty(fields map[string]interface{}, name, value string) {
	if value != "" {
		fields[name] = value
	}
}

func setPtr(fields map[string]interface{}, name string, value *string) {
	if value != nil {
		fields[name] = *value
	}
}
