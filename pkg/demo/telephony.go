package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/leadpilot/leadpilot/pkg/domain"
)

// Telephony fakes the voice-agent vendor. Scheduled calls land in the demo
// store so they show up in call listings.
type Telephony struct {
	store *Store
}

var _ domain.Telephony = (*Telephony)(nil)

// NewTelephony creates a demo telephony client backed by the demo store.
func NewTelephony(store *Store) *Telephony {
	return &Telephony{store: store}
}

// ScheduleCall pretends to schedule a call and records it.
func (t *Telephony) ScheduleCall(_ context.Context, phoneNumber, leadName, leadCompany string) (*domain.ScheduledCall, error) {
	now := time.Now()
	callID := fmt.Sprintf("call_demo_%d", now.UnixMilli())

	t.store.AddCall(domain.Call{
		ID:          callID,
		LeadName:    leadName,
		ScheduledAt: &now,
		Status:      domain.CallScheduled,
	})

	return &domain.ScheduledCall{
		CallID: callID,
		Status: "scheduled",
	}, nil
}

// ListCalls returns the demo call log.
func (t *Telephony) ListCalls(_ context.Context) ([]domain.Call, error) {
	return t.store.Calls(), nil
}
