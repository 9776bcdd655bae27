package model

import "time"

// Channel identifies the delivery medium of an outreach draft.
type Channel string

const (
	ChannelLinkedIn Channel = "linkedin"
	ChannelEmail    Channel = "email"
	ChannelPhone    Channel = "phone"
)

// AllChannels returns the channels a draft is generated for, in order.
func AllChannels() []Channel {
	return []Channel{ChannelLinkedIn, ChannelEmail, ChannelPhone}
}

// QAStatus is the review state of an outreach draft.
type QAStatus string

const (
	QAStatusPending  QAStatus = "pending"
	QAStatusApproved QAStatus = "approved"
	QAStatusRejected QAStatus = "rejected"
)

// OutreachContent is a generated outreach draft, one-to-many per contact.
// Rows are append-only per generation pass; QA mutates status and feedback
// only.
type OutreachContent struct {
	ID         string    `json:"id" db:"id"`
	ContactID  string    `json:"contact_id" db:"contact_id"`
	Channel    Channel   `json:"channel" db:"channel"`
	Subject    string    `json:"subject,omitempty" db:"subject"`
	Body       string    `json:"body" db:"body"`
	WordCount  int       `json:"word_count" db:"word_count"`
	QAStatus   QAStatus  `json:"qa_status" db:"qa_status"`
	QAFeedback string    `json:"qa_feedback,omitempty" db:"qa_feedback"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
