package demo

import (
	"context"
	"fmt"

	"github.com/leadpilot/leadpilot/pkg/domain"
)

// Outreach fakes copy generation with templated messages.
type Outreach struct{}

var _ domain.OutreachGenerator = (*Outreach)(nil)

// NewOutreach creates a demo outreach generator.
func NewOutreach() *Outreach {
	return &Outreach{}
}

var greetings = map[domain.OutreachTone]string{
	domain.ToneProfessional: "Dear",
	domain.ToneCasual:       "Hey",
	domain.ToneFriendly:     "Hi",
}

// Generate returns a canned message personalized with the lead's details.
func (o *Outreach) Generate(_ context.Context, lead *domain.Lead, channel domain.OutreachChannel, tone domain.OutreachTone) (*domain.OutreachResult, error) {
	firstName := lead.Name
	company := lead.Company
	if company == "" {
		company = "your team"
	}

	result := &domain.OutreachResult{Channel: channel, Tone: tone}

	switch channel {
	case domain.ChannelEmail:
		result.Subject = fmt.Sprintf("Quick question about %s", company)
		result.Message = fmt.Sprintf("%s %s,\n\nI came across %s and was impressed by what you're building. I'd love to show you how teams like yours shorten their sales cycle with us.\n\nWould you be open to a quick call this week?\n\nBest regards,\nThe Sales Team",
			greetings[tone], firstName, company)
	case domain.ChannelLinkedIn:
		result.Message = fmt.Sprintf("%s %s, I've been following %s and would love to connect. I work with teams in your space and think there's a great fit worth a quick conversation.",
			greetings[tone], firstName, company)
	case domain.ChannelSMS:
		result.Message = fmt.Sprintf("%s %s, this is the sales team. Do you have 15 minutes this week to talk about %s? Reply YES to book.",
			greetings[tone], firstName, company)
	}

	return result, nil
}
