package outreach

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/leadpilot/leadpilot/pkg/ai/llm"
	"github.com/leadpilot/leadpilot/pkg/domain"
)

// lengthLimits is the hard character cap per channel, applied to the message
// body after generation regardless of what the model produced.
var lengthLimits = map[domain.OutreachChannel]int{
	domain.ChannelEmail:    500,
	domain.ChannelLinkedIn: 300,
	domain.ChannelSMS:      160,
}

var toneDescriptions = map[domain.OutreachTone]string{
	domain.ToneProfessional: "formal, business-appropriate, and authoritative",
	domain.ToneCasual:       "relaxed, conversational, and approachable",
	domain.ToneFriendly:     "warm, personable, and enthusiastic",
}

var channelInstructions = map[domain.OutreachChannel]string{
	domain.ChannelEmail:    `Write a personalized sales email. Include a subject line on the first line prefixed with "Subject: ". The email should have a greeting, body, and sign-off.`,
	domain.ChannelLinkedIn: `Write a LinkedIn connection request message or InMail. Keep it concise and networking-focused. No subject line needed.`,
	domain.ChannelSMS:      `Write a brief, impactful SMS message. Must be under 160 characters. No greeting/sign-off needed, just the core message.`,
}

var subjectLineRe = regexp.MustCompile(`(?m)^Subject:\s*(.+)`)

// Generator produces personalized outreach copy with a chat-completion model.
type Generator struct {
	llm    llm.Client
	logger *log.Logger
}

var _ domain.OutreachGenerator = (*Generator)(nil)

// NewGenerator creates a new outreach generator.
func NewGenerator(client llm.Client, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{llm: client, logger: logger}
}

// Generate writes one outreach message for the lead. The body is clamped to
// the channel's length limit; for email the subject line is parsed off the
// first line when present.
func (g *Generator) Generate(ctx context.Context, lead *domain.Lead, channel domain.OutreachChannel, tone domain.OutreachTone) (*domain.OutreachResult, error) {
	g.logger.Printf("✉️ Outreach: generating %s (%s) for lead %s", channel, tone, lead.ID)

	content, err := g.llm.Complete(ctx, leadContext(lead), systemPrompt(channel, tone))
	if err != nil {
		// A missing credential is a configuration problem, not a vendor outage.
		if domain.IsNotConfigured(err) {
			return nil, err
		}
		return nil, domain.NewUpstreamError("outreach generation failed", err)
	}

	result := &domain.OutreachResult{
		Message: strings.TrimSpace(content),
		Channel: channel,
		Tone:    tone,
	}

	if channel == domain.ChannelEmail {
		if m := subjectLineRe.FindStringSubmatch(result.Message); m != nil {
			result.Subject = strings.TrimSpace(m[1])
			result.Message = strings.TrimSpace(subjectLineRe.ReplaceAllString(result.Message, ""))
		}
	}

	if limit := lengthLimits[channel]; len(result.Message) > limit {
		result.Message = clamp(result.Message, limit)
	}

	g.logger.Printf("✅ Outreach: generated %s message for lead %s (%d chars)", channel, lead.ID, len(result.Message))
	return result, nil
}

func systemPrompt(channel domain.OutreachChannel, tone domain.OutreachTone) string {
	return fmt.Sprintf(`You are an expert sales copywriter. Generate a %s message for a sales outreach.

%s

Tone: %s
Maximum length: %d characters (for the body, excluding subject line)

Personalize the message based on the lead's information. Reference their role, company, or any relevant details. Make it feel genuine, not templated.

If the lead has AI insights, use them to inform the message angle.`,
		channel, channelInstructions[channel], toneDescriptions[tone], lengthLimits[channel])
}

func leadContext(lead *domain.Lead) string {
	strengths := "Unknown"
	if len(lead.KeyStrengths) > 0 {
		strengths = strings.Join(lead.KeyStrengths, ", ")
	}
	return fmt.Sprintf(`Lead Information:
- Name: %s
- Company: %s
- Title: %s
- Lead Source: %s
- AI Insights: %s
- Key Strengths: %s
- Suggested Next Step: %s`,
		lead.Name,
		orDefault(lead.Company, "Unknown"),
		orDefault(lead.Title, "Unknown"),
		orDefault(string(lead.Source), "Unknown"),
		orDefault(lead.Insights, "No insights available"),
		strengths,
		orDefault(lead.SuggestedNextStep, "General follow-up"))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// clamp cuts the message at the limit without splitting a word when a nearby
// space allows it.
func clamp(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := s[:limit]
	if idx := strings.LastIndexByte(cut, ' '); idx > limit/2 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}
