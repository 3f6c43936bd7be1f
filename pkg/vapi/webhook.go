package vapi

import (
	"encoding/json"
	"fmt"

	"github.com/leadpilot/leadpilot/pkg/domain"
)

// WebhookEvent is the normalized form of an end-of-call report pushed by the
// vendor.
type WebhookEvent struct {
	CallID     string            `json:"call_id"`
	Status     domain.CallStatus `json:"status"`
	Duration   int               `json:"duration,omitempty"`
	Summary    string            `json:"summary,omitempty"`
	Outcome    string            `json:"outcome"`
	Transcript string            `json:"transcript,omitempty"`
}

type webhookMessage struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	EndedReason string `json:"endedReason"`
	Duration    int    `json:"duration"`
	Summary     string `json:"summary"`
	Transcript  string `json:"transcript"`
	Call        *struct {
		ID       string `json:"id"`
		Duration int    `json:"duration"`
	} `json:"call"`
	Analysis *struct {
		Summary           string `json:"summary"`
		SuccessEvaluation string `json:"successEvaluation"`
	} `json:"analysis"`
}

// ParseWebhook normalizes a webhook payload. The vendor wraps end-of-call
// reports in a "message" envelope but sends some event types bare, so both
// shapes are accepted. Unknown statuses map to Completed.
func ParseWebhook(body []byte) (*WebhookEvent, error) {
	var envelope struct {
		Message *webhookMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("invalid webhook payload: %w", err)
	}

	msg := envelope.Message
	if msg == nil {
		msg = &webhookMessage{}
		if err := json.Unmarshal(body, msg); err != nil {
			return nil, fmt.Errorf("invalid webhook payload: %w", err)
		}
	}

	status := domain.CallCompleted
	if msg.Status == "no-answer" || msg.EndedReason == "no-answer" {
		status = domain.CallNoAnswer
	} else if msg.Status == "busy" || msg.EndedReason == "busy" {
		status = domain.CallCallbackRequested
	}

	event := &WebhookEvent{
		CallID:     msg.ID,
		Status:     status,
		Duration:   msg.Duration,
		Summary:    msg.Summary,
		Outcome:    "unknown",
		Transcript: msg.Transcript,
	}
	if msg.Call != nil {
		if msg.Call.ID != "" {
			event.CallID = msg.Call.ID
		}
		if msg.Call.Duration != 0 {
			event.Duration = msg.Call.Duration
		}
	}
	if msg.Analysis != nil {
		if msg.Analysis.Summary != "" {
			event.Summary = msg.Analysis.Summary
		}
		if msg.Analysis.SuccessEvaluation != "" {
			event.Outcome = msg.Analysis.SuccessEvaluation
		}
	}
	return event, nil
}
