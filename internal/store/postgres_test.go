package store

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &PostgresStore{pool: mock}, mock
}

func TestCreateJob(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO jobs`).
		WithArgs(pgxmock.AnyArg(), "find LPs", pgxmock.AnyArg(), "pending",
			10, 7.0, "", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	job := &model.Job{Prompt: "find LPs", TargetCount: 10, QualityThreshold: 7.0}
	require.NoError(t, st.CreateJob(context.Background(), job))

	assert.NotEmpty(t, job.ID)
	assert.Equal(t, model.JobStatusPending, job.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateJobStatus_CompletedSetsCompletedAt(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE jobs SET status`).
		WithArgs("completed", "", pgxmock.AnyArg(), timeArg{}, "job-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, st.UpdateJobStatus(context.Background(), "job-1", model.JobStatusCompleted, ""))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// timeArg matches any non-nil time.Time argument.
type timeArg struct{}

func (timeArg) Match(v any) bool {
	_, ok := v.(time.Time)
	return ok
}

func TestUpdateJobStatus_FailureKeepsCompletedAtNull(t *testing.T) {
	st, mock := newMockStore(t)

	for _, status := range []model.JobStatus{model.JobStatusFailed, model.JobStatusCancelled} {
		mock.ExpectExec(`UPDATE jobs SET status`).
			WithArgs(string(status), "discovery stalled", pgxmock.AnyArg(), nil, "job-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t,
			st.UpdateJobStatus(context.Background(), "job-1", status, "discovery stalled"))
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateJobStatus_NotFound(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE jobs SET status`).
		WithArgs("running", "", pgxmock.AnyArg(), pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := st.UpdateJobStatus(context.Background(), "missing", model.JobStatusRunning, "")
	assert.ErrorContains(t, err, "job not found")
}

func TestGetJob(t *testing.T) {
	st, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .+ FROM jobs WHERE id`).
		WithArgs("job-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "prompt", "criteria", "status", "target_count",
			"quality_threshold", "error", "created_at", "updated_at", "completed_at",
		}).AddRow("job-1", "find LPs", []byte(`{"keywords":["build-to-rent"]}`),
			"running", 10, 7.0, "", now, now, nil))

	job, err := st.GetJob(context.Background(), "job-1")
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, model.JobStatusRunning, job.Status)
	assert.Equal(t, []string{"build-to-rent"}, job.Criteria.Keywords)
	assert.Nil(t, job.CompletedAt)
}

func TestGetJob_NotFound(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM jobs WHERE id`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "prompt", "criteria", "status", "target_count",
			"quality_threshold", "error", "created_at", "updated_at", "completed_at",
		}))

	job, err := st.GetJob(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestListJobs_StatusFilter(t *testing.T) {
	st, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .+ FROM jobs WHERE true AND status = \$1 ORDER BY created_at DESC LIMIT \$2`).
		WithArgs("pending", 100).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "prompt", "criteria", "status", "target_count",
			"quality_threshold", "error", "created_at", "updated_at", "completed_at",
		}).AddRow("job-1", "p", []byte(`{}`), "pending", 10, 0.0, "", now, now, nil))

	jobs, err := st.ListJobs(context.Background(), JobFilter{Status: model.JobStatusPending})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "job-1", jobs[0].ID)
}

func TestUpsertCompany_KeepsSurvivingRowID(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO "companies" .+ ON CONFLICT \("job_id", "domain"\) DO UPDATE SET .+ WHERE companies\.fit_score <= EXCLUDED\.fit_score`).
		WithArgs(pgxmock.AnyArg(), "job-1", "Sunstone Capital", "https://sunstonecp.com",
			"sunstonecp.com", "", "", "", pgxmock.AnyArg(), 0.75, 9.0,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`SELECT id FROM companies WHERE job_id = \$1 AND domain = \$2`).
		WithArgs("job-1", "sunstonecp.com").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("existing-id"))

	company := &model.Company{
		JobID:               "job-1",
		Name:                "Sunstone Capital",
		Website:             "https://sunstonecp.com",
		Domain:              "sunstonecp.com",
		DiscoveryConfidence: 0.75,
		FitScore:            9.0,
		DiscoveryReasons:    []string{"capital-partner language"},
	}
	require.NoError(t, st.UpsertCompany(context.Background(), company))

	// Conflict keeps the original row; the id read-back wins.
	assert.Equal(t, "existing-id", company.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertContact(t *testing.T) {
	st, mock := newMockStore(t)

	contact := &model.Contact{
		CompanyID: "co-1",
		FirstName: "Jane",
		LastName:  "Smith",
		Title:     "Partner",
		Seniority: model.SeniorityVP,
		Email:     "jane@acme.com",
	}

	mock.ExpectExec(`INSERT INTO "contacts" .+ ON CONFLICT \("company_id", "contact_key"\) DO UPDATE SET`).
		WithArgs(pgxmock.AnyArg(), "co-1", contact.Key(), "Jane", "Smith",
			"Partner", "vp", "jane@acme.com", "", "", 0.0, 0.0, "", "",
			pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, st.UpsertContact(context.Background(), contact))
	assert.NotEmpty(t, contact.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertProfile(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO "company_profiles" .+ ON CONFLICT \("company_id"\) DO UPDATE SET`).
		WithArgs(pgxmock.AnyArg(), "co-1", "summary", "pains", "growth",
			"stack", "triggers", pgxmock.AnyArg(), 0.8, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	profile := &model.CompanyProfile{
		CompanyID:      "co-1",
		Summary:        "summary",
		PainPoints:     "pains",
		GrowthSignals:  "growth",
		TechStack:      "stack",
		BuyingTriggers: "triggers",
		Confidence:     0.8,
	}
	require.NoError(t, st.UpsertProfile(context.Background(), profile))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertOutreach_DefaultsQAPending(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO outreach_content`).
		WithArgs(pgxmock.AnyArg(), "contact-1", "email", "Subject", "Body",
			12, "pending", "", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	draft := &model.OutreachContent{
		ContactID: "contact-1",
		Channel:   model.ChannelEmail,
		Subject:   "Subject",
		Body:      "Body",
		WordCount: 12,
	}
	require.NoError(t, st.InsertOutreach(context.Background(), draft))
	assert.Equal(t, model.QAStatusPending, draft.QAStatus)
}

func TestUpdateOutreachQA_NotFound(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE outreach_content SET qa_status`).
		WithArgs("approved", "clear and specific", "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := st.UpdateOutreachQA(context.Background(), "missing", model.QAStatusApproved, "clear and specific")
	assert.ErrorContains(t, err, "not found")
}
