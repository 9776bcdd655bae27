package research

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
)

func pendingDrafts() []model.OutreachContent {
	return []model.OutreachContent{
		{ID: "d1", Channel: model.ChannelEmail, Subject: "Intro", Body: "Hi Jane", QAStatus: model.QAStatusPending},
		{ID: "d2", Channel: model.ChannelLinkedIn, Body: "Quick note", QAStatus: model.QAStatusPending},
	}
}

func TestReview_SetsStatusAndFeedback(t *testing.T) {
	llm := &scriptedLLM{replies: []string{
		`{"approved": true, "feedback": "specific and concise"}`,
		`{"approved": false, "feedback": "too generic"}`,
	}}
	drafts := pendingDrafts()

	NewReviewer(llm, "test-model").Review(context.Background(), drafts)

	assert.Equal(t, model.QAStatusApproved, drafts[0].QAStatus)
	assert.Equal(t, "specific and concise", drafts[0].QAFeedback)
	assert.Equal(t, model.QAStatusRejected, drafts[1].QAStatus)
	assert.Equal(t, "too generic", drafts[1].QAFeedback)
}

func TestReview_FailedCallLeavesPending(t *testing.T) {
	llm := &scriptedLLM{err: eris.New("overloaded")}
	drafts := pendingDrafts()

	NewReviewer(llm, "test-model").Review(context.Background(), drafts)

	for _, d := range drafts {
		assert.Equal(t, model.QAStatusPending, d.QAStatus)
		assert.Empty(t, d.QAFeedback)
	}
}

func TestReview_UnparseableReplyLeavesPending(t *testing.T) {
	llm := &scriptedLLM{replies: []string{"not json"}}
	drafts := pendingDrafts()

	NewReviewer(llm, "test-model").Review(context.Background(), drafts)

	assert.Equal(t, model.QAStatusPending, drafts[0].QAStatus)
}
