package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/db"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the hottest store operations.
var preparedStatements = map[string]string{
	"update_job_status": `UPDATE jobs SET status = $1, error = $2, updated_at = $3, completed_at = $4 WHERE id = $5`,
	"get_job":           `SELECT id, prompt, criteria, status, target_count, quality_threshold, error, created_at, updated_at, completed_at FROM jobs WHERE id = $1`,
	"list_companies":    `SELECT id, job_id, name, website, domain, city, state, location, attributes, discovery_confidence, fit_score, discovery_reasons, created_at, updated_at FROM companies WHERE job_id = $1 ORDER BY fit_score DESC, domain ASC`,
	"list_contacts":     `SELECT id, company_id, first_name, last_name, title, seniority, email, phone, profile_url, fit_score, email_confidence, verification, source, created_at FROM contacts WHERE company_id = $1 ORDER BY created_at ASC`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS jobs (
	id                TEXT PRIMARY KEY,
	prompt            TEXT NOT NULL,
	criteria          JSONB NOT NULL,
	status            TEXT NOT NULL DEFAULT 'pending',
	target_count      INTEGER NOT NULL DEFAULT 10,
	quality_threshold DOUBLE PRECISION NOT NULL DEFAULT 0,
	error             TEXT NOT NULL DEFAULT '',
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	completed_at      TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS companies (
	id                   TEXT PRIMARY KEY,
	job_id               TEXT NOT NULL REFERENCES jobs(id),
	name                 TEXT NOT NULL,
	website              TEXT NOT NULL DEFAULT '',
	domain               TEXT NOT NULL,
	city                 TEXT NOT NULL DEFAULT '',
	state                TEXT NOT NULL DEFAULT '',
	location             TEXT NOT NULL DEFAULT '',
	attributes           JSONB,
	discovery_confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
	fit_score            DOUBLE PRECISION NOT NULL DEFAULT 0,
	discovery_reasons    JSONB,
	created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (job_id, domain)
);

CREATE TABLE IF NOT EXISTS contacts (
	id               TEXT PRIMARY KEY,
	company_id       TEXT NOT NULL REFERENCES companies(id),
	contact_key      TEXT NOT NULL,
	first_name       TEXT NOT NULL DEFAULT '',
	last_name        TEXT NOT NULL DEFAULT '',
	title            TEXT NOT NULL DEFAULT '',
	seniority        TEXT NOT NULL DEFAULT 'individual',
	email            TEXT NOT NULL DEFAULT '',
	phone            TEXT NOT NULL DEFAULT '',
	profile_url      TEXT NOT NULL DEFAULT '',
	fit_score        DOUBLE PRECISION NOT NULL DEFAULT 0,
	email_confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
	verification     TEXT NOT NULL DEFAULT '',
	source           TEXT NOT NULL DEFAULT '',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (company_id, contact_key)
);

CREATE TABLE IF NOT EXISTS company_profiles (
	id              TEXT PRIMARY KEY,
	company_id      TEXT NOT NULL UNIQUE REFERENCES companies(id),
	summary         TEXT NOT NULL DEFAULT '',
	pain_points     TEXT NOT NULL DEFAULT '',
	growth_signals  TEXT NOT NULL DEFAULT '',
	tech_stack      TEXT NOT NULL DEFAULT '',
	buying_triggers TEXT NOT NULL DEFAULT '',
	sources         JSONB,
	confidence      DOUBLE PRECISION NOT NULL DEFAULT 0,
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS outreach_content (
	id          TEXT PRIMARY KEY,
	contact_id  TEXT NOT NULL REFERENCES contacts(id),
	channel     TEXT NOT NULL,
	subject     TEXT NOT NULL DEFAULT '',
	body        TEXT NOT NULL,
	word_count  INTEGER NOT NULL DEFAULT 0,
	qa_status   TEXT NOT NULL DEFAULT 'pending',
	qa_feedback TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);
CREATE INDEX IF NOT EXISTS idx_companies_job_id ON companies(job_id);
CREATE INDEX IF NOT EXISTS idx_contacts_company_id ON contacts(company_id);
CREATE INDEX IF NOT EXISTS idx_outreach_contact_id ON outreach_content(contact_id);
CREATE INDEX IF NOT EXISTS idx_outreach_qa_status ON outreach_content(qa_status);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateJob(ctx context.Context, job *model.Job) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now
	if job.Status == "" {
		job.Status = model.JobStatusPending
	}

	criteriaJSON, err := json.Marshal(job.Criteria)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal criteria")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO jobs (id, prompt, criteria, status, target_count, quality_threshold, error, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		job.ID, job.Prompt, criteriaJSON, string(job.Status),
		job.TargetCount, job.QualityThreshold, job.Error, now, now,
	)
	return eris.Wrap(err, "postgres: insert job")
}

func (s *PostgresStore) UpdateJobStatus(ctx context.Context, jobID string, status model.JobStatus, errMsg string) error {
	now := time.Now().UTC()
	// Only a successful completion carries a completion timestamp; failed
	// and cancelled jobs keep it NULL.
	var completedAt any
	if status == model.JobStatusCompleted {
		completedAt = now
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, error = $2, updated_at = $3, completed_at = $4 WHERE id = $5`,
		string(status), errMsg, now, completedAt, jobID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update job status %s", jobID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("job not found: %s", jobID)
	}
	return nil
}

func (s *PostgresStore) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, prompt, criteria, status, target_count, quality_threshold, error, created_at, updated_at, completed_at
		 FROM jobs WHERE id = $1`,
		jobID,
	)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get job %s", jobID)
	}
	return job, nil
}

func (s *PostgresStore) ListJobs(ctx context.Context, filter JobFilter) ([]model.Job, error) {
	query := `SELECT id, prompt, criteria, status, target_count, quality_threshold, error, created_at, updated_at, completed_at FROM jobs WHERE true`
	args := []any{}
	argIdx := 1

	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argIdx)
		args = append(args, string(filter.Status))
		argIdx++
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list jobs")
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan job")
		}
		jobs = append(jobs, *job)
	}
	return jobs, eris.Wrap(rows.Err(), "postgres: list jobs iterate")
}

func scanJob(row pgx.Row) (*model.Job, error) {
	var j model.Job
	var criteriaJSON []byte
	if err := row.Scan(&j.ID, &j.Prompt, &criteriaJSON, &j.Status, &j.TargetCount,
		&j.QualityThreshold, &j.Error, &j.CreatedAt, &j.UpdatedAt, &j.CompletedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(criteriaJSON, &j.Criteria); err != nil {
		return nil, eris.Wrap(err, "unmarshal criteria")
	}
	return &j, nil
}

// upsertCompanySQL keeps the higher-scored row on a (job_id, domain)
// conflict.
var upsertCompanySQL = db.UpsertSQL{
	Table: "companies",
	Columns: []string{
		"id", "job_id", "name", "website", "domain", "city", "state",
		"location", "attributes", "discovery_confidence", "fit_score",
		"discovery_reasons", "created_at", "updated_at",
	},
	ConflictKeys: []string{"job_id", "domain"},
	UpdateCols: []string{
		"name", "website", "city", "state", "location", "attributes",
		"discovery_confidence", "fit_score", "discovery_reasons", "updated_at",
	},
	Where: "companies.fit_score <= EXCLUDED.fit_score",
}.Build()

var upsertContactSQL = db.UpsertSQL{
	Table: "contacts",
	Columns: []string{
		"id", "company_id", "contact_key", "first_name", "last_name", "title",
		"seniority", "email", "phone", "profile_url", "fit_score",
		"email_confidence", "verification", "source", "created_at",
	},
	ConflictKeys: []string{"company_id", "contact_key"},
	UpdateCols: []string{
		"seniority", "email", "phone", "profile_url", "fit_score",
		"email_confidence", "verification", "source",
	},
}.Build()

var upsertProfileSQL = db.UpsertSQL{
	Table: "company_profiles",
	Columns: []string{
		"id", "company_id", "summary", "pain_points", "growth_signals",
		"tech_stack", "buying_triggers", "sources", "confidence", "updated_at",
	},
	ConflictKeys: []string{"company_id"},
	UpdateCols: []string{
		"summary", "pain_points", "growth_signals", "tech_stack",
		"buying_triggers", "sources", "confidence", "updated_at",
	},
}.Build()

// UpsertCompany inserts a company or, on a (job_id, domain) conflict,
// updates the row only when the new fit score is at least as high.
func (s *PostgresStore) UpsertCompany(ctx context.Context, company *model.Company) error {
	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now

	attrsJSON, err := json.Marshal(company.Attributes)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal attributes")
	}
	reasonsJSON, err := json.Marshal(company.DiscoveryReasons)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal discovery reasons")
	}

	_, err = s.pool.Exec(ctx, upsertCompanySQL,
		company.ID, company.JobID, company.Name, company.Website, company.Domain,
		company.City, company.State, company.Location, attrsJSON,
		company.DiscoveryConfidence, company.FitScore, reasonsJSON, now, now,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: upsert company %s", company.Domain)
	}

	// The stored row keeps its original id on conflict; read it back so
	// downstream rows reference the right company.
	return s.pool.QueryRow(ctx,
		`SELECT id FROM companies WHERE job_id = $1 AND domain = $2`,
		company.JobID, company.Domain,
	).Scan(&company.ID)
}

func (s *PostgresStore) ListCompanies(ctx context.Context, jobID string) ([]model.Company, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, job_id, name, website, domain, city, state, location, attributes, discovery_confidence, fit_score, discovery_reasons, created_at, updated_at
		 FROM companies WHERE job_id = $1 ORDER BY fit_score DESC, domain ASC`,
		jobID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list companies")
	}
	defer rows.Close()

	var companies []model.Company
	for rows.Next() {
		var c model.Company
		var attrsJSON, reasonsJSON []byte
		if err := rows.Scan(&c.ID, &c.JobID, &c.Name, &c.Website, &c.Domain,
			&c.City, &c.State, &c.Location, &attrsJSON, &c.DiscoveryConfidence,
			&c.FitScore, &reasonsJSON, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan company")
		}
		if len(attrsJSON) > 0 {
			if err := json.Unmarshal(attrsJSON, &c.Attributes); err != nil {
				return nil, eris.Wrap(err, "postgres: unmarshal attributes")
			}
		}
		if len(reasonsJSON) > 0 {
			if err := json.Unmarshal(reasonsJSON, &c.DiscoveryReasons); err != nil {
				return nil, eris.Wrap(err, "postgres: unmarshal discovery reasons")
			}
		}
		companies = append(companies, c)
	}
	return companies, eris.Wrap(rows.Err(), "postgres: list companies iterate")
}

func (s *PostgresStore) UpsertContact(ctx context.Context, contact *model.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	contact.CreatedAt = now

	_, err := s.pool.Exec(ctx, upsertContactSQL,
		contact.ID, contact.CompanyID, contact.Key(), contact.FirstName,
		contact.LastName, contact.Title, string(contact.Seniority),
		contact.Email, contact.Phone, contact.ProfileURL, contact.FitScore,
		contact.EmailConfidence, contact.Verification, contact.Source, now,
	)
	return eris.Wrapf(err, "postgres: upsert contact %s", contact.FullName())
}

func (s *PostgresStore) ListContacts(ctx context.Context, companyID string) ([]model.Contact, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, company_id, first_name, last_name, title, seniority, email, phone, profile_url, fit_score, email_confidence, verification, source, created_at
		 FROM contacts WHERE company_id = $1 ORDER BY created_at ASC`,
		companyID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list contacts")
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.FirstName, &c.LastName,
			&c.Title, &c.Seniority, &c.Email, &c.Phone, &c.ProfileURL,
			&c.FitScore, &c.EmailConfidence, &c.Verification, &c.Source,
			&c.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan contact")
		}
		contacts = append(contacts, c)
	}
	return contacts, eris.Wrap(rows.Err(), "postgres: list contacts iterate")
}

func (s *PostgresStore) UpsertProfile(ctx context.Context, profile *model.CompanyProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	profile.UpdatedAt = now

	sourcesJSON, err := json.Marshal(profile.Sources)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal sources")
	}

	_, err = s.pool.Exec(ctx, upsertProfileSQL,
		profile.ID, profile.CompanyID, profile.Summary, profile.PainPoints,
		profile.GrowthSignals, profile.TechStack, profile.BuyingTriggers,
		sourcesJSON, profile.Confidence, now,
	)
	return eris.Wrapf(err, "postgres: upsert profile for company %s", profile.CompanyID)
}

func (s *PostgresStore) GetProfile(ctx context.Context, companyID string) (*model.CompanyProfile, error) {
	var p model.CompanyProfile
	var sourcesJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, company_id, summary, pain_points, growth_signals, tech_stack, buying_triggers, sources, confidence, updated_at
		 FROM company_profiles WHERE company_id = $1`,
		companyID,
	).Scan(&p.ID, &p.CompanyID, &p.Summary, &p.PainPoints, &p.GrowthSignals,
		&p.TechStack, &p.BuyingTriggers, &sourcesJSON, &p.Confidence, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "postgres: get profile")
	}
	if len(sourcesJSON) > 0 {
		if err := json.Unmarshal(sourcesJSON, &p.Sources); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal sources")
		}
	}
	return &p, nil
}

func (s *PostgresStore) InsertOutreach(ctx context.Context, draft *model.OutreachContent) error {
	if draft.ID == "" {
		draft.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	draft.CreatedAt = now
	if draft.QAStatus == "" {
		draft.QAStatus = model.QAStatusPending
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO outreach_content (id, contact_id, channel, subject, body, word_count, qa_status, qa_feedback, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		draft.ID, draft.ContactID, string(draft.Channel), draft.Subject,
		draft.Body, draft.WordCount, string(draft.QAStatus), draft.QAFeedback, now,
	)
	return eris.Wrap(err, "postgres: insert outreach")
}

func (s *PostgresStore) UpdateOutreachQA(ctx context.Context, draftID string, status model.QAStatus, feedback string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE outreach_content SET qa_status = $1, qa_feedback = $2 WHERE id = $3`,
		string(status), feedback, draftID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update outreach qa %s", draftID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("outreach draft not found: %s", draftID)
	}
	return nil
}

func (s *PostgresStore) ListOutreach(ctx context.Context, contactID string) ([]model.OutreachContent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, contact_id, channel, subject, body, word_count, qa_status, qa_feedback, created_at
		 FROM outreach_content WHERE contact_id = $1 ORDER BY created_at ASC`,
		contactID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list outreach")
	}
	defer rows.Close()

	var drafts []model.OutreachContent
	for rows.Next() {
		var d model.OutreachContent
		if err := rows.Scan(&d.ID, &d.ContactID, &d.Channel, &d.Subject,
			&d.Body, &d.WordCount, &d.QAStatus, &d.QAFeedback, &d.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan outreach")
		}
		drafts = append(drafts, d)
	}
	return drafts, eris.Wrap(rows.Err(), "postgres: list outreach iterate")
}
