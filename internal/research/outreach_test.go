package research

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
)

func testContact() model.Contact {
	return model.Contact{
		ID:        "contact-1",
		FirstName: "Jane",
		LastName:  "Smith",
		Title:     "Managing Partner",
	}
}

func TestGenerate_OneDraftPerChannel(t *testing.T) {
	llm := &scriptedLLM{replies: []string{
		`{"subject": "ignored", "body": "Quick note about your build-to-rent fund."}`,
		`{"subject": "LP intro for Sunstone", "body": "Hi Jane, saw the new fund announcement."}`,
		`{"subject": "", "body": "Hi Jane, this is a quick call about your fund."}`,
	}}

	drafts := NewGenerator(llm, "test-model").Generate(
		context.Background(), testCompany(), nil, []model.Contact{testContact()})

	require.Len(t, drafts, 3)

	linkedin := drafts[0]
	assert.Equal(t, model.ChannelLinkedIn, linkedin.Channel)
	// Non-email channels never carry a subject.
	assert.Empty(t, linkedin.Subject)
	assert.Equal(t, "contact-1", linkedin.ContactID)
	assert.Equal(t, model.QAStatusPending, linkedin.QAStatus)

	email := drafts[1]
	assert.Equal(t, model.ChannelEmail, email.Channel)
	assert.Equal(t, "LP intro for Sunstone", email.Subject)
	assert.Equal(t, 7, email.WordCount)

	assert.Equal(t, model.ChannelPhone, drafts[2].Channel)
}

func TestGenerate_ProfileContextInPrompt(t *testing.T) {
	llm := &scriptedLLM{replies: []string{`{"subject": "", "body": "draft"}`}}
	profile := &model.CompanyProfile{
		Summary:        "LP equity firm",
		BuyingTriggers: "new fund close",
	}

	NewGenerator(llm, "test-model").Generate(
		context.Background(), testCompany(), profile, []model.Contact{testContact()})

	require.NotEmpty(t, llm.requests)
	prompt := llm.requests[0].Messages[0].Content
	assert.Contains(t, prompt, "Jane Smith")
	assert.Contains(t, prompt, "LP equity firm")
	assert.Contains(t, prompt, "new fund close")
}

func TestGenerate_FailuresSkipDraftNotContact(t *testing.T) {
	llm := &scriptedLLM{replies: []string{
		"no json in this reply",
		`{"subject": "s", "body": "good body"}`,
	}}

	drafts := NewGenerator(llm, "test-model").Generate(
		context.Background(), testCompany(), nil, []model.Contact{testContact()})

	// First channel's reply was malformed; the other two use the second
	// (repeated) reply.
	assert.Len(t, drafts, 2)
}

func TestGenerate_AllCallsFailing(t *testing.T) {
	llm := &scriptedLLM{err: eris.New("overloaded")}

	drafts := NewGenerator(llm, "test-model").Generate(
		context.Background(), testCompany(), nil, []model.Contact{testContact()})

	assert.Empty(t, drafts)
}

func TestGenerate_EmptyBodyRejected(t *testing.T) {
	llm := &scriptedLLM{replies: []string{`{"subject": "s", "body": "  "}`}}

	drafts := NewGenerator(llm, "test-model").Generate(
		context.Background(), testCompany(), nil, []model.Contact{testContact()})

	assert.Empty(t, drafts)
}
