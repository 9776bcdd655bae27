package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/resilience"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/pkg/anthropic"
)

const (
	outreachSystemPrompt = `You are an SDR writing first-touch outreach for an investor-relations team. Given a company profile and a contact, write one message for the requested channel. Respond with a JSON object only: {"subject": "...", "body": "..."}. LinkedIn messages have an empty subject and stay under 300 characters. Emails have a subject under 9 words and a body under 150 words. Phone entries are a call script under 120 words.`

	outreachMaxTokens = 512
)

// channelGuidance gives the collaborator per-channel length rules.
var channelGuidance = map[model.Channel]string{
	model.ChannelLinkedIn: "LinkedIn connection note, under 300 characters, no subject",
	model.ChannelEmail:    "cold email with subject line, body under 150 words",
	model.ChannelPhone:    "call opening script, under 120 words, no subject",
}

type draftPayload struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Generator drafts outreach content per contact and channel.
type Generator struct {
	llm   anthropic.Client
	model string
}

// NewGenerator creates a Generator.
func NewGenerator(llm anthropic.Client, model string) *Generator {
	return &Generator{llm: llm, model: model}
}

// Generate produces one draft per (contact, channel). Each generation call
// is independent: a contact whose drafts fail is logged and skipped without
// blocking the others.
func (g *Generator) Generate(ctx context.Context, company model.Company, profile *model.CompanyProfile, contacts []model.Contact) []model.OutreachContent {
	log := zap.L().With(
		zap.String("stage", "outreach"),
		zap.String("company", company.Name),
	)

	var drafts []model.OutreachContent
	for _, contact := range contacts {
		if ctx.Err() != nil {
			break
		}
		for _, channel := range model.AllChannels() {
			draft, err := g.draft(ctx, company, profile, contact, channel)
			if err != nil {
				log.Warn("draft generation failed",
					zap.String("contact", contact.FullName()),
					zap.String("channel", string(channel)),
					zap.Error(err),
				)
				continue
			}
			drafts = append(drafts, *draft)
		}
	}

	log.Info("outreach generation complete",
		zap.Int("contacts", len(contacts)),
		zap.Int("drafts", len(drafts)),
	)
	return drafts
}

func (g *Generator) draft(ctx context.Context, company model.Company, profile *model.CompanyProfile, contact model.Contact, channel model.Channel) (*model.OutreachContent, error) {
	resp, err := g.llm.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.model,
		MaxTokens: outreachMaxTokens,
		System:    outreachSystemPrompt,
		Messages: []anthropic.Message{{
			Role:    "user",
			Content: draftUserPrompt(company, profile, contact, channel),
		}},
	})
	if err != nil {
		return nil, resilience.Upstream("outreach.draft", err)
	}

	var payload draftPayload
	if !decodeInto(resp.Text(), &payload) {
		return nil, resilience.Malformed("outreach.draft",
			eris.New("reply contained no parseable JSON object"))
	}
	if strings.TrimSpace(payload.Body) == "" {
		return nil, resilience.Malformed("outreach.draft", eris.New("empty draft body"))
	}

	if channel != model.ChannelEmail {
		payload.Subject = ""
	}
	return &model.OutreachContent{
		ContactID: contact.ID,
		Channel:   channel,
		Subject:   strings.TrimSpace(payload.Subject),
		Body:      strings.TrimSpace(payload.Body),
		WordCount: len(strings.Fields(payload.Body)),
		QAStatus:  model.QAStatusPending,
	}, nil
}

func draftUserPrompt(company model.Company, profile *model.CompanyProfile, contact model.Contact, channel model.Channel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Channel: %s (%s)\n", channel, channelGuidance[channel])
	fmt.Fprintf(&b, "Contact: %s, %s\n", contact.FullName(), contact.Title)
	fmt.Fprintf(&b, "Company: %s (%s)\n", company.Name, company.Domain)
	if profile != nil {
		if profile.Summary != "" {
			b.WriteString("Company summary: " + profile.Summary + "\n")
		}
		if profile.PainPoints != "" {
			b.WriteString("Pain points: " + profile.PainPoints + "\n")
		}
		if profile.BuyingTriggers != "" {
			b.WriteString("Buying triggers: " + profile.BuyingTriggers + "\n")
		}
	}
	return b.String()
}
