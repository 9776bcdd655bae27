package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite, for local runs
// without a Postgres instance.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	sdb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := sdb.Exec(pragma); err != nil {
			sdb.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: sdb}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS jobs (
	id                TEXT PRIMARY KEY,
	prompt            TEXT NOT NULL,
	criteria          TEXT NOT NULL,
	status            TEXT NOT NULL DEFAULT 'pending',
	target_count      INTEGER NOT NULL DEFAULT 10,
	quality_threshold REAL NOT NULL DEFAULT 0,
	error             TEXT NOT NULL DEFAULT '',
	created_at        DATETIME NOT NULL,
	updated_at        DATETIME NOT NULL,
	completed_at      DATETIME
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
	attributes           TEXT,
	discovery_confidence REAL NOT NULL DEFAULT 0,
	fit_score            REAL NOT NULL DEFAULT 0,
	discovery_reasons    TEXT,
	created_at           DATETIME NOT NULL,
	updated_at           DATETIME NOT NULL,
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
	fit_score        REAL NOT NULL DEFAULT 0,
	email_confidence REAL NOT NULL DEFAULT 0,
	verification     TEXT NOT NULL DEFAULT '',
	source           TEXT NOT NULL DEFAULT '',
	created_at       DATETIME NOT NULL,
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
	sources         TEXT,
	confidence      REAL NOT NULL DEFAULT 0,
	updated_at      DATETIME NOT NULL
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
	created_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);
CREATE INDEX IF NOT EXISTS idx_companies_job_id ON companies(job_id);
CREATE INDEX IF NOT EXISTS idx_contacts_company_id ON contacts(company_id);
CREATE INDEX IF NOT EXISTS idx_outreach_contact_id ON outreach_content(contact_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateJob(ctx context.Context, job *model.Job) error {
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
		return eris.Wrap(err, "sqlite: marshal criteria")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO jobs (id, prompt, criteria, status, target_count, quality_threshold, error, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.Prompt, string(criteriaJSON), string(job.Status),
		job.TargetCount, job.QualityThreshold, job.Error, now, now,
	)
	return eris.Wrap(err, "sqlite: insert job")
}

func (s *SQLiteStore) UpdateJobStatus(ctx context.Context, jobID string, status model.JobStatus, errMsg string) error {
	now := time.Now().UTC()
	// Only a successful completion carries a completion timestamp; failed
	// and cancelled jobs keep it NULL.
	var completedAt any
	if status == model.JobStatusCompleted {
		completedAt = now
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE jobs SET status = ?, error = ?, updated_at = ?, completed_at = ? WHERE id = ?`,
		string(status), errMsg, now, completedAt, jobID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update job status %s", jobID)
	}
	return checkRowsAffected(res, "job", jobID)
}

func (s *SQLiteStore) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, prompt, criteria, status, target_count, quality_threshold, error, created_at, updated_at, completed_at
		 FROM jobs WHERE id = ?`,
		jobID,
	)
	job, err := scanSQLiteJob(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "sqlite: get job %s", jobID)
	}
	return job, nil
}

func (s *SQLiteStore) ListJobs(ctx context.Context, filter JobFilter) ([]model.Job, error) {
	query := `SELECT id, prompt, criteria, status, target_count, quality_threshold, error, created_at, updated_at, completed_at FROM jobs WHERE 1=1`
	args := []any{}

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list jobs")
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		job, err := scanSQLiteJob(rows.Scan)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan job")
		}
		jobs = append(jobs, *job)
	}
	return jobs, eris.Wrap(rows.Err(), "sqlite: list jobs iterate")
}

func scanSQLiteJob(scan func(dest ...any) error) (*model.Job, error) {
	var j model.Job
	var criteriaJSON string
	if err := scan(&j.ID, &j.Prompt, &criteriaJSON, &j.Status, &j.TargetCount,
		&j.QualityThreshold, &j.Error, &j.CreatedAt, &j.UpdatedAt, &j.CompletedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(criteriaJSON), &j.Criteria); err != nil {
		return nil, eris.Wrap(err, "unmarshal criteria")
	}
	return &j, nil
}

func (s *SQLiteStore) UpsertCompany(ctx context.Context, company *model.Company) error {
	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now

	attrsJSON, err := json.Marshal(company.Attributes)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal attributes")
	}
	reasonsJSON, err := json.Marshal(company.DiscoveryReasons)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal discovery reasons")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO companies (id, job_id, name, website, domain, city, state, location, attributes, discovery_confidence, fit_score, discovery_reasons, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (job_id, domain) DO UPDATE SET
		   name = excluded.name, website = excluded.website, city = excluded.city,
		   state = excluded.state, location = excluded.location,
		   attributes = excluded.attributes,
		   discovery_confidence = excluded.discovery_confidence,
		   fit_score = excluded.fit_score,
		   discovery_reasons = excluded.discovery_reasons,
		   updated_at = excluded.updated_at
		 WHERE companies.fit_score <= excluded.fit_score`,
		company.ID, company.JobID, company.Name, company.Website, company.Domain,
		company.City, company.State, company.Location, string(attrsJSON),
		company.DiscoveryConfidence, company.FitScore, string(reasonsJSON), now, now,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: upsert company %s", company.Domain)
	}

	return s.db.QueryRowContext(ctx,
		`SELECT id FROM companies WHERE job_id = ? AND domain = ?`,
		company.JobID, company.Domain,
	).Scan(&company.ID)
}

func (s *SQLiteStore) ListCompanies(ctx context.Context, jobID string) ([]model.Company, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, job_id, name, website, domain, city, state, location, attributes, discovery_confidence, fit_score, discovery_reasons, created_at, updated_at
		 FROM companies WHERE job_id = ? ORDER BY fit_score DESC, domain ASC`,
		jobID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list companies")
	}
	defer rows.Close()

	var companies []model.Company
	for rows.Next() {
		var c model.Company
		var attrsJSON, reasonsJSON sql.NullString
		if err := rows.Scan(&c.ID, &c.JobID, &c.Name, &c.Website, &c.Domain,
			&c.City, &c.State, &c.Location, &attrsJSON, &c.DiscoveryConfidence,
			&c.FitScore, &reasonsJSON, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan company")
		}
		if attrsJSON.Valid && attrsJSON.String != "" {
			if err := json.Unmarshal([]byte(attrsJSON.String), &c.Attributes); err != nil {
				return nil, eris.Wrap(err, "sqlite: unmarshal attributes")
			}
		}
		if reasonsJSON.Valid && reasonsJSON.String != "" {
			if err := json.Unmarshal([]byte(reasonsJSON.String), &c.DiscoveryReasons); err != nil {
				return nil, eris.Wrap(err, "sqlite: unmarshal discovery reasons")
			}
		}
		companies = append(companies, c)
	}
	return companies, eris.Wrap(rows.Err(), "sqlite: list companies iterate")
}

func (s *SQLiteStore) UpsertContact(ctx context.Context, contact *model.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	contact.CreatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (id, company_id, contact_key, first_name, last_name, title, seniority, email, phone, profile_url, fit_score, email_confidence, verification, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (company_id, contact_key) DO UPDATE SET
		   seniority = excluded.seniority, email = excluded.email,
		   phone = excluded.phone, profile_url = excluded.profile_url,
		   fit_score = excluded.fit_score,
		   email_confidence = excluded.email_confidence,
		   verification = excluded.verification, source = excluded.source`,
		contact.ID, contact.CompanyID, contact.Key(), contact.FirstName,
		contact.LastName, contact.Title, string(contact.Seniority),
		contact.Email, contact.Phone, contact.ProfileURL, contact.FitScore,
		contact.EmailConfidence, contact.Verification, contact.Source, now,
	)
	return eris.Wrapf(err, "sqlite: upsert contact %s", contact.FullName())
}

func (s *SQLiteStore) ListContacts(ctx context.Context, companyID string) ([]model.Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, company_id, first_name, last_name, title, seniority, email, phone, profile_url, fit_score, email_confidence, verification, source, created_at
		 FROM contacts WHERE company_id = ? ORDER BY created_at ASC`,
		companyID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list contacts")
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.FirstName, &c.LastName,
			&c.Title, &c.Seniority, &c.Email, &c.Phone, &c.ProfileURL,
			&c.FitScore, &c.EmailConfidence, &c.Verification, &c.Source,
			&c.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan contact")
		}
		contacts = append(contacts, c)
	}
	return contacts, eris.Wrap(rows.Err(), "sqlite: list contacts iterate")
}

func (s *SQLiteStore) UpsertProfile(ctx context.Context, profile *model.CompanyProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	profile.UpdatedAt = now

	sourcesJSON, err := json.Marshal(profile.Sources)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal sources")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO company_profiles (id, company_id, summary, pain_points, growth_signals, tech_stack, buying_triggers, sources, confidence, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (company_id) DO UPDATE SET
		   summary = excluded.summary, pain_points = excluded.pain_points,
		   growth_signals = excluded.growth_signals,
		   tech_stack = excluded.tech_stack,
		   buying_triggers = excluded.buying_triggers,
		   sources = excluded.sources, confidence = excluded.confidence,
		   updated_at = excluded.updated_at`,
		profile.ID, profile.CompanyID, profile.Summary, profile.PainPoints,
		profile.GrowthSignals, profile.TechStack, profile.BuyingTriggers,
		string(sourcesJSON), profile.Confidence, now,
	)
	return eris.Wrapf(err, "sqlite: upsert profile for company %s", profile.CompanyID)
}

func (s *SQLiteStore) GetProfile(ctx context.Context, companyID string) (*model.CompanyProfile, error) {
	var p model.CompanyProfile
	var sourcesJSON sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, company_id, summary, pain_points, growth_signals, tech_stack, buying_triggers, sources, confidence, updated_at
		 FROM company_profiles WHERE company_id = ?`,
		companyID,
	).Scan(&p.ID, &p.CompanyID, &p.Summary, &p.PainPoints, &p.GrowthSignals,
		&p.TechStack, &p.BuyingTriggers, &sourcesJSON, &p.Confidence, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, eris.Wrap(err, "sqlite: get profile")
	}
	if sourcesJSON.Valid && sourcesJSON.String != "" {
		if err := json.Unmarshal([]byte(sourcesJSON.String), &p.Sources); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal sources")
		}
	}
	return &p, nil
}

func (s *SQLiteStore) InsertOutreach(ctx context.Context, draft *model.OutreachContent) error {
	if draft.ID == "" {
		draft.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	draft.CreatedAt = now
	if draft.QAStatus == "" {
		draft.QAStatus = model.QAStatusPending
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outreach_content (id, contact_id, channel, subject, body, word_count, qa_status, qa_feedback, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		draft.ID, draft.ContactID, string(draft.Channel), draft.Subject,
		draft.Body, draft.WordCount, string(draft.QAStatus), draft.QAFeedback, now,
	)
	return eris.Wrap(err, "sqlite: insert outreach")
}

func (s *SQLiteStore) UpdateOutreachQA(ctx context.Context, draftID string, status model.QAStatus, feedback string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE outreach_content SET qa_status = ?, qa_feedback = ? WHERE id = ?`,
		string(status), feedback, draftID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update outreach qa %s", draftID)
	}
	return checkRowsAffected(res, "outreach draft", draftID)
}

func (s *SQLiteStore) ListOutreach(ctx context.Context, contactID string) ([]model.OutreachContent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, contact_id, channel, subject, body, word_count, qa_status, qa_feedback, created_at
		 FROM outreach_content WHERE contact_id = ? ORDER BY created_at ASC`,
		contactID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list outreach")
	}
	defer rows.Close()

	var drafts []model.OutreachContent
	for rows.Next() {
		var d model.OutreachContent
		if err := rows.Scan(&d.ID, &d.ContactID, &d.Channel, &d.Subject,
			&d.Body, &d.WordCount, &d.QAStatus, &d.QAFeedback, &d.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan outreach")
		}
		drafts = append(drafts, d)
	}
	return drafts, eris.Wrap(rows.Err(), "sqlite: list outreach iterate")
}

func checkRowsAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", kind, id)
	}
	return nil
}
