// Package store is the single system of record for the pipeline. All writes
// are idempotent upserts keyed by stable identifiers so a crashed and
// restarted job run is safe to retry.
package store

import (
	"context"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
)

// JobFilter specifies criteria for listing jobs.
type JobFilter struct {
	Status model.JobStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for the lead-generation pipeline.
type Store interface {
	// Jobs
	CreateJob(ctx context.Context, job *model.Job) error
	UpdateJobStatus(ctx context.Context, jobID string, status model.JobStatus, errMsg string) error
	GetJob(ctx context.Context, jobID string) (*model.Job, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]model.Job, error)

	// Companies, unique per (job, domain); an upsert keeps the higher
	// fit score.
	UpsertCompany(ctx context.Context, company *model.Company) error
	ListCompanies(ctx context.Context, jobID string) ([]model.Company, error)

	// Contacts, unique per (company, composite key).
	UpsertContact(ctx context.Context, contact *model.Contact) error
	ListContacts(ctx context.Context, companyID string) ([]model.Contact, error)

	// Profiles, one per company; re-research updates in place.
	UpsertProfile(ctx context.Context, profile *model.CompanyProfile) error
	GetProfile(ctx context.Context, companyID string) (*model.CompanyProfile, error)

	// Outreach drafts, append-only; QA mutates status and feedback only.
	InsertOutreach(ctx context.Context, draft *model.OutreachContent) error
	UpdateOutreachQA(ctx context.Context, draftID string, status model.QAStatus, feedback string) error
	ListOutreach(ctx context.Context, contactID string) ([]model.OutreachContent, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
