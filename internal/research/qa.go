package research

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/pkg/anthropic"
)

const (
	qaSystemPrompt = `You are reviewing outbound sales copy. Given one outreach draft, judge whether it is specific to the recipient, free of fabricated claims, and within channel length limits. Respond with a JSON object only: {"approved": true|false, "feedback": "one sentence"}.`

	qaMaxTokens = 256
)

type qaPayload struct {
	Approved bool   `json:"approved"`
	Feedback string `json:"feedback"`
}

// Reviewer runs the QA pass over generated drafts.
type Reviewer struct {
	llm   anthropic.Client
	model string
}

// NewReviewer creates a Reviewer.
func NewReviewer(llm anthropic.Client, model string) *Reviewer {
	return &Reviewer{llm: llm, model: model}
}

// Review scores drafts in place, setting QA status and feedback on each.
// A failed or unparseable review leaves the draft pending; QA never blocks
// the pipeline.
func (r *Reviewer) Review(ctx context.Context, drafts []model.OutreachContent) {
	log := zap.L().With(zap.String("stage", "qa"))

	approved := 0
	for i := range drafts {
		if ctx.Err() != nil {
			return
		}
		draft := &drafts[i]

		resp, err := r.llm.CreateMessage(ctx, anthropic.MessageRequest{
			Model:     r.model,
			MaxTokens: qaMaxTokens,
			System:    qaSystemPrompt,
			Messages: []anthropic.Message{{
				Role:    "user",
				Content: qaUserPrompt(draft),
			}},
		})
		if err != nil {
			log.Warn("qa review failed", zap.String("channel", string(draft.Channel)), zap.Error(err))
			continue
		}

		var payload qaPayload
		if !decodeInto(resp.Text(), &payload) {
			log.Warn("qa reply contained no parseable JSON object",
				zap.String("channel", string(draft.Channel)))
			continue
		}

		if payload.Approved {
			draft.QAStatus = model.QAStatusApproved
			approved++
		} else {
			draft.QAStatus = model.QAStatusRejected
		}
		draft.QAFeedback = strings.TrimSpace(payload.Feedback)
	}

	log.Info("qa pass complete", zap.Int("drafts", len(drafts)), zap.Int("approved", approved))
}

func qaUserPrompt(draft *model.OutreachContent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Channel: %s\n", draft.Channel)
	if draft.Subject != "" {
		fmt.Fprintf(&b, "Subject: %s\n", draft.Subject)
	}
	fmt.Fprintf(&b, "Body:\n%s\n", draft.Body)
	return b.String()
}
