package vapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadpilot/leadpilot/pkg/domain"
)

func newTestVapi(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		APIKey:      "vapi_key",
		AssistantID: "asst_1",
		BaseURL:     server.URL,
	}, nil)
}

func TestScheduleCall_NotConfigured(t *testing.T) {
	_, err := NewClient(Config{}, nil).ScheduleCall(context.Background(), "+15551234567", "Ada", "")
	require.Error(t, err)
	assert.True(t, domain.IsNotConfigured(err))
	assert.Contains(t, err.Error(), "Vapi is not configured")

	_, err = NewClient(Config{APIKey: "key"}, nil).ScheduleCall(context.Background(), "+15551234567", "Ada", "")
	require.Error(t, err)
	assert.True(t, domain.IsNotConfigured(err))
	assert.Contains(t, err.Error(), "Vapi assistant is not configured")
}

func TestScheduleCall_Payload(t *testing.T) {
	client := newTestVapi(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/call", r.URL.Path)
		assert.Equal(t, "Bearer vapi_key", r.Header.Get("Authorization"))

		var payload struct {
			AssistantID string `json:"assistantId"`
			Customer    struct {
				Number string `json:"number"`
				Name   string `json:"name"`
			} `json:"customer"`
			AssistantOverrides struct {
				FirstMessage string `json:"firstMessage"`
			} `json:"assistantOverrides"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		assert.Equal(t, "asst_1", payload.AssistantID)
		assert.Equal(t, "+15551234567", payload.Customer.Number)
		assert.Equal(t, "Ada Chen", payload.Customer.Name)
		assert.Equal(t, "Hi, this is Sarah from the sales team. Am I speaking with Ada Chen from Acme Corp?", payload.AssistantOverrides.FirstMessage)

		json.NewEncoder(w).Encode(map[string]string{"id": "call_1", "status": "queued"})
	})

	scheduled, err := client.ScheduleCall(context.Background(), "+15551234567", "Ada Chen", "Acme Corp")
	require.NoError(t, err)
	assert.Equal(t, "call_1", scheduled.CallID)
	assert.Equal(t, "queued", scheduled.Status)
}

func TestScheduleCall_FirstMessageWithoutCompany(t *testing.T) {
	client := newTestVapi(t, func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			AssistantOverrides struct {
				FirstMessage string `json:"firstMessage"`
			} `json:"assistantOverrides"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Hi, this is Sarah from the sales team. Am I speaking with Ada Chen?", payload.AssistantOverrides.FirstMessage)

		json.NewEncoder(w).Encode(map[string]string{"id": "call_2", "status": "queued"})
	})

	_, err := client.ScheduleCall(context.Background(), "+15551234567", "Ada Chen", "")
	require.NoError(t, err)
}

func TestScheduleCall_UpstreamError(t *testing.T) {
	client := newTestVapi(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.ScheduleCall(context.Background(), "+15551234567", "Ada", "")
	require.Error(t, err)
	assert.True(t, domain.IsUpstream(err))
}

func TestListCalls_MapsToDomain(t *testing.T) {
	started := time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC)
	ended := started.Add(4 * time.Minute)

	client := newTestVapi(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/call", r.URL.Path)

		json.NewEncoder(w).Encode([]apiCall{
			{
				ID:        "call_1",
				Status:    "ended",
				StartedAt: &started,
				EndedAt:   &ended,
				Customer: struct {
					Number string `json:"number"`
					Name   string `json:"name"`
				}{Number: "+15551234567", Name: "Ada Chen"},
				Analysis: struct {
					Summary           string `json:"summary"`
					SuccessEvaluation string `json:"successEvaluation"`
				}{Summary: "Great call", SuccessEvaluation: "qualified"},
			},
			{ID: "call_2", Status: "no-answer"},
			{ID: "call_3", Status: "queued"},
		})
	})

	calls, err := client.ListCalls(context.Background())
	require.NoError(t, err)
	require.Len(t, calls, 3)

	assert.Equal(t, "call_1", calls[0].ID)
	assert.Equal(t, "Ada Chen", calls[0].LeadName)
	assert.Equal(t, 240, calls[0].Duration)
	assert.Equal(t, domain.CallCompleted, calls[0].Status)
	assert.Equal(t, "Great call", calls[0].Summary)
	assert.Equal(t, "qualified", calls[0].Outcome)

	assert.Equal(t, domain.CallNoAnswer, calls[1].Status)
	assert.Equal(t, domain.CallScheduled, calls[2].Status)
}

func TestMapCallStatus(t *testing.T) {
	assert.Equal(t, domain.CallNoAnswer, mapCallStatus("no-answer", ""))
	assert.Equal(t, domain.CallNoAnswer, mapCallStatus("ended", "no-answer"))
	assert.Equal(t, domain.CallCallbackRequested, mapCallStatus("busy", ""))
	assert.Equal(t, domain.CallScheduled, mapCallStatus("ringing", ""))
	assert.Equal(t, domain.CallScheduled, mapCallStatus("in-progress", ""))
	assert.Equal(t, domain.CallCompleted, mapCallStatus("ended", "customer-ended-call"))
}
