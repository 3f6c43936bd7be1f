package workflow

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// TriggerType identifies which automation workflow to kick off.
type TriggerType string

const (
	TriggerHotLead       TriggerType = "hot_lead"
	TriggerFollowUp      TriggerType = "follow_up"
	TriggerColdNurture   TriggerType = "cold_nurture"
	TriggerCallCompleted TriggerType = "call_completed"
)

// Valid reports whether the trigger type is one of the known values.
func (t TriggerType) Valid() bool {
	switch t {
	case TriggerHotLead, TriggerFollowUp, TriggerColdNurture, TriggerCallCompleted:
		return true
	}
	return false
}

// Config for the workflow service
type Config struct {
	HotLeadURL       string
	ColdLeadURL      string
	CallCompletedURL string
	Secret           string
	// Production makes secret verification fail closed when no secret is
	// configured.
	Production bool
}

const (
	maxAttempts    = 3
	initialBackoff = 500 * time.Millisecond
	asyncTimeout   = 30 * time.Second
)

// Service posts trigger payloads to the automation engine's webhook URLs.
type Service struct {
	cfg        Config
	httpClient *http.Client
	logger     *log.Logger
}

// NewService creates a new workflow service.
func NewService(cfg Config, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// TriggerResult reports the outcome of a trigger attempt. Failures are data,
// not errors: an unreachable automation engine must never fail the operation
// that raised the trigger.
type TriggerResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type triggerPayload struct {
	TriggerType TriggerType    `json:"triggerType"`
	Timestamp   string         `json:"timestamp"`
	Data        map[string]any `json:"data"`
}

// Trigger posts one workflow trigger, retrying transient failures with
// exponential backoff.
func (s *Service) Trigger(ctx context.Context, triggerType TriggerType, data map[string]any) TriggerResult {
	url := s.webhookURL(triggerType)
	if url == "" {
		s.logger.Printf("⚠️ Workflow: no webhook URL configured for %s", triggerType)
		return TriggerResult{Success: false, Message: fmt.Sprintf("webhook URL not configured for %s", triggerType)}
	}

	body, err := json.Marshal(triggerPayload{
		TriggerType: triggerType,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Data:        data,
	})
	if err != nil {
		return TriggerResult{Success: false, Message: fmt.Sprintf("failed to marshal payload: %v", err)}
	}

	backoff := initialBackoff
	var lastErr string
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		ok, detail := s.post(ctx, url, body)
		if ok {
			s.logger.Printf("✅ Workflow: %s triggered (attempt %d)", triggerType, attempt)
			return TriggerResult{Success: true, Message: "Workflow triggered successfully"}
		}
		lastErr = detail

		if attempt < maxAttempts {
			s.logger.Printf("⚠️ Workflow: %s trigger attempt %d failed: %s (retrying in %v)", triggerType, attempt, detail, backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return TriggerResult{Success: false, Message: ctx.Err().Error()}
			}
			backoff *= 2
		}
	}

	s.logger.Printf("❌ Workflow: %s trigger failed after %d attempts: %s", triggerType, maxAttempts, lastErr)
	return TriggerResult{Success: false, Message: lastErr}
}

// TriggerAsync fires a trigger in the background. Used where the caller must
// not wait on the automation engine, e.g. after scoring a hot lead.
func (s *Service) TriggerAsync(triggerType TriggerType, data map[string]any) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()
		s.Trigger(ctx, triggerType, data)
	}()
}

// VerifySecret checks an inbound webhook's shared secret. With no secret
// configured, verification passes in development and fails in production.
func (s *Service) VerifySecret(provided string) bool {
	if s.cfg.Secret == "" {
		return !s.cfg.Production
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(s.cfg.Secret)) == 1
}

func (s *Service) post(ctx context.Context, url string, body []byte) (bool, string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return false, err.Error()
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.Secret != "" {
		req.Header.Set("X-Webhook-Secret", s.cfg.Secret)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false, err.Error()
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return false, fmt.Sprintf("webhook returned status %d: %s", resp.StatusCode, detail)
	}
	return true, ""
}

// webhookURL maps a trigger to its destination. Follow-up nudges ride the hot
// lead workflow.
func (s *Service) webhookURL(t TriggerType) string {
	switch t {
	case TriggerHotLead, TriggerFollowUp:
		return s.cfg.HotLeadURL
	case TriggerColdNurture:
		return s.cfg.ColdLeadURL
	case TriggerCallCompleted:
		return s.cfg.CallCompletedURL
	default:
		return ""
	}
}
