package vapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadpilot/leadpilot/pkg/domain"
)

func TestParseWebhook_EnvelopedReport(t *testing.T) {
	body := []byte(`{
		"message": {
			"id": "msg_1",
			"status": "ended",
			"duration": 240,
			"summary": "Spoke with the lead, interested in a demo.",
			"transcript": "Hello...",
			"call": {"id": "call_123", "duration": 245},
			"analysis": {"summary": "Positive call", "successEvaluation": "qualified"}
		}
	}`)

	event, err := ParseWebhook(body)
	require.NoError(t, err)

	// call.id and call.duration take precedence over the envelope fields
	assert.Equal(t, "call_123", event.CallID)
	assert.Equal(t, 245, event.Duration)
	assert.Equal(t, domain.CallCompleted, event.Status)
	assert.Equal(t, "Positive call", event.Summary)
	assert.Equal(t, "qualified", event.Outcome)
	assert.Equal(t, "Hello...", event.Transcript)
}

func TestParseWebhook_BareBody(t *testing.T) {
	body := []byte(`{"id": "call_9", "status": "ended", "duration": 60, "summary": "short call"}`)

	event, err := ParseWebhook(body)
	require.NoError(t, err)

	assert.Equal(t, "call_9", event.CallID)
	assert.Equal(t, 60, event.Duration)
	assert.Equal(t, "short call", event.Summary)
}

func TestParseWebhook_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected domain.CallStatus
	}{
		{"no-answer status", `{"id": "c1", "status": "no-answer"}`, domain.CallNoAnswer},
		{"no-answer reason", `{"id": "c2", "status": "ended", "endedReason": "no-answer"}`, domain.CallNoAnswer},
		{"busy status", `{"id": "c3", "status": "busy"}`, domain.CallCallbackRequested},
		{"busy reason", `{"id": "c4", "endedReason": "busy"}`, domain.CallCallbackRequested},
		{"anything else", `{"id": "c5", "status": "ended"}`, domain.CallCompleted},
		{"unknown status", `{"id": "c6", "status": "exploded"}`, domain.CallCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := ParseWebhook([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, event.Status)
		})
	}
}

func TestParseWebhook_OutcomeDefaultsToUnknown(t *testing.T) {
	event, err := ParseWebhook([]byte(`{"id": "c1", "status": "ended"}`))
	require.NoError(t, err)
	assert.Equal(t, "unknown", event.Outcome)
}

func TestParseWebhook_InvalidJSON(t *testing.T) {
	_, err := ParseWebhook([]byte(`not json`))
	assert.Error(t, err)
}
