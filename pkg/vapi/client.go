package vapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/leadpilot/leadpilot/pkg/domain"
)

const defaultBaseURL = "https://api.vapi.ai"

// Config for the Vapi client
type Config struct {
	APIKey      string
	AssistantID string
	BaseURL     string // overridable for tests
}

// Client is a thin wrapper over the Vapi voice-agent API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *log.Logger
}

var _ domain.Telephony = (*Client)(nil)

// NewClient creates a new Vapi client.
func NewClient(cfg Config, logger *log.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

type apiCall struct {
	ID        string     `json:"id"`
	Status    string     `json:"status"`
	StartedAt *time.Time `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt"`
	Customer  struct {
		Number string `json:"number"`
		Name   string `json:"name"`
	} `json:"customer"`
	Analysis struct {
		Summary           string `json:"summary"`
		SuccessEvaluation string `json:"successEvaluation"`
	} `json:"analysis"`
	EndedReason string `json:"endedReason"`
}

// ScheduleCall asks the voice agent to call the lead.
func (c *Client) ScheduleCall(ctx context.Context, phoneNumber, leadName, leadCompany string) (*domain.ScheduledCall, error) {
	if c.cfg.APIKey == "" {
		return nil, domain.NewNotConfiguredError("Vapi")
	}
	if c.cfg.AssistantID == "" {
		return nil, domain.NewNotConfiguredError("Vapi assistant")
	}

	firstMessage := fmt.Sprintf("Hi, this is Sarah from the sales team. Am I speaking with %s?", leadName)
	if leadCompany != "" {
		firstMessage = fmt.Sprintf("Hi, this is Sarah from the sales team. Am I speaking with %s from %s?", leadName, leadCompany)
	}

	payload := map[string]any{
		"assistantId": c.cfg.AssistantID,
		"customer": map[string]string{
			"number": phoneNumber,
			"name":   leadName,
		},
		"assistantOverrides": map[string]string{
			"firstMessage": firstMessage,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal call request: %w", err)
	}

	c.logger.Printf("📞 Vapi: scheduling call to %s (%s)", leadName, phoneNumber)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/call", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build call request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewUpstreamError("Vapi request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.logger.Printf("❌ Vapi: schedule call failed with status %d: %s", resp.StatusCode, detail)
		return nil, domain.NewUpstreamError(fmt.Sprintf("Vapi API error (status %d)", resp.StatusCode), nil)
	}

	var created apiCall
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, domain.NewUpstreamError("failed to decode Vapi response", err)
	}

	c.logger.Printf("✅ Vapi: call %s scheduled (status: %s)", created.ID, created.Status)

	return &domain.ScheduledCall{
		CallID: created.ID,
		Status: created.Status,
	}, nil
}

// ListCalls fetches recent calls from the vendor and maps them to the local
// call model.
func (c *Client) ListCalls(ctx context.Context) ([]domain.Call, error) {
	if c.cfg.APIKey == "" {
		return nil, domain.NewNotConfiguredError("Vapi")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/call", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build list request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewUpstreamError("Vapi request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewUpstreamError(fmt.Sprintf("failed to fetch Vapi calls (status %d)", resp.StatusCode), nil)
	}

	var raw []apiCall
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, domain.NewUpstreamError("failed to decode Vapi calls", err)
	}

	calls := make([]domain.Call, 0, len(raw))
	for _, rc := range raw {
		calls = append(calls, rc.toDomain())
	}
	return calls, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
}

func (rc apiCall) toDomain() domain.Call {
	call := domain.Call{
		ID:          rc.ID,
		LeadName:    rc.Customer.Name,
		ScheduledAt: rc.StartedAt,
		CompletedAt: rc.EndedAt,
		Outcome:     rc.Analysis.SuccessEvaluation,
		Summary:     rc.Analysis.Summary,
		Status:      mapCallStatus(rc.Status, rc.EndedReason),
	}
	if rc.StartedAt != nil && rc.EndedAt != nil {
		call.Duration = int(rc.EndedAt.Sub(*rc.StartedAt).Seconds())
	}
	return call
}

func mapCallStatus(status, endedReason string) domain.CallStatus {
	switch {
	case status == "no-answer" || endedReason == "no-answer":
		return domain.CallNoAnswer
	case status == "busy" || endedReason == "busy":
		return domain.CallCallbackRequested
	case status == "queued" || status == "scheduled" || status == "ringing" || status == "in-progress":
		return domain.CallScheduled
	default:
		return domain.CallCompleted
	}
}
