package research

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/resilience"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/scrape"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/pkg/anthropic"
)

const (
	profileSystemPrompt = `You are a B2B research analyst. Given raw text from a company's website, produce a JSON object with these string fields: "summary", "pain_points", "growth_signals", "tech_stack", "buying_triggers", a "sources" array of URLs, and a numeric "confidence" between 0 and 1. Respond with the JSON object only.`

	profileMaxTokens = 1024
	// maxPageChars bounds how much scraped text goes into one prompt.
	maxPageChars = 12000
)

// profilePayload is the collaborator's structured reply. The qualitative
// fields tolerate string-or-list replies.
type profilePayload struct {
	Summary        textOrList `json:"summary"`
	PainPoints     textOrList `json:"pain_points"`
	GrowthSignals  textOrList `json:"growth_signals"`
	TechStack      textOrList `json:"tech_stack"`
	BuyingTriggers textOrList `json:"buying_triggers"`
	Sources        []string   `json:"sources"`
	Confidence     float64    `json:"confidence"`
}

// Profiler builds one qualitative profile per company from scraped site
// text.
type Profiler struct {
	llm     anthropic.Client
	fetcher scrape.Fetcher
	model   string
}

// NewProfiler creates a Profiler.
func NewProfiler(llm anthropic.Client, fetcher scrape.Fetcher, model string) *Profiler {
	return &Profiler{llm: llm, fetcher: fetcher, model: model}
}

// Profile researches a company and returns its profile. The website is
// fetched for context; a fetch failure degrades to researching from the
// discovery snippet alone rather than failing the company.
func (p *Profiler) Profile(ctx context.Context, company model.Company) (*model.CompanyProfile, error) {
	log := zap.L().With(
		zap.String("stage", "research"),
		zap.String("company", company.Name),
	)

	var pageText string
	sources := []string{}
	if company.Website != "" {
		page, err := p.fetcher.Fetch(ctx, company.Website)
		if err != nil {
			log.Warn("website fetch failed, researching without page text", zap.Error(err))
		} else {
			pageText = page.Text
			sources = append(sources, page.URL)
		}
	}
	if len(pageText) > maxPageChars {
		pageText = pageText[:maxPageChars]
	}

	resp, err := p.llm.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     p.model,
		MaxTokens: profileMaxTokens,
		System:    profileSystemPrompt,
		Messages: []anthropic.Message{{
			Role:    "user",
			Content: profileUserPrompt(company, pageText),
		}},
	})
	if err != nil {
		return nil, resilience.Upstream("research.profile", err)
	}

	var payload profilePayload
	if !decodeInto(resp.Text(), &payload) {
		return nil, resilience.Malformed("research.profile",
			eris.New("reply contained no parseable JSON object"))
	}

	profile := &model.CompanyProfile{
		CompanyID:      company.ID,
		Summary:        string(payload.Summary),
		PainPoints:     string(payload.PainPoints),
		GrowthSignals:  string(payload.GrowthSignals),
		TechStack:      string(payload.TechStack),
		BuyingTriggers: string(payload.BuyingTriggers),
		Sources:        append(sources, payload.Sources...),
		Confidence:     clamp01(payload.Confidence),
	}
	log.Info("profile generated", zap.Float64("confidence", profile.Confidence))
	return profile, nil
}

func profileUserPrompt(company model.Company, pageText string) string {
	var b strings.Builder
	b.WriteString("Company: " + company.Name + "\n")
	if company.Website != "" {
		b.WriteString("Website: " + company.Website + "\n")
	}
	if len(company.DiscoveryReasons) > 0 {
		b.WriteString("Why discovered: " + strings.Join(company.DiscoveryReasons, "; ") + "\n")
	}
	if pageText != "" {
		b.WriteString("\nWebsite text:\n" + pageText + "\n")
	}
	return b.String()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
